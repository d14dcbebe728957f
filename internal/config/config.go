package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration options for the reports service
type Config struct {
	Database    DatabaseConfig
	Server      ServerConfig
	Validation  ValidationConfig
	Logging     LoggingConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"REPORTS_DB_DIR"`
	Filename       string        `env:"REPORTS_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"REPORTS_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"REPORTS_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"REPORTS_DB_DIR_PERMISSIONS"`
	MaxOpenConns   int           `env:"REPORTS_DB_MAX_OPEN_CONNS"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	ListenAddr         string        `env:"REPORTS_LISTEN_ADDR"`
	ReadTimeout        time.Duration `env:"REPORTS_READ_TIMEOUT"`
	WriteTimeout       time.Duration `env:"REPORTS_WRITE_TIMEOUT"`
	ShutdownTimeout    time.Duration `env:"REPORTS_SHUTDOWN_TIMEOUT"`
	CORSAllowedOrigins []string      `env:"REPORTS_CORS_ALLOWED_ORIGINS"`
	RateLimitRPS       float64       `env:"REPORTS_RATE_LIMIT_RPS"`
	RateLimitBurst     int           `env:"REPORTS_RATE_LIMIT_BURST"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	BodyMaxLength     int `env:"REPORTS_VALIDATION_BODY_MAX"`
	CallSignMaxLength int `env:"REPORTS_VALIDATION_CALL_SIGN_MAX"`
	NameMaxLength     int `env:"REPORTS_VALIDATION_NAME_MAX"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `env:"REPORTS_LOG_LEVEL"`
	Format string `env:"REPORTS_LOG_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout     time.Duration `env:"REPORTS_APP_TIMEOUT"`
	Environment string        `env:"REPORTS_ENV"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".reports")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "reports.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
			MaxOpenConns:   4,
		},
		Server: ServerConfig{
			ListenAddr:         ":8080",
			ReadTimeout:        15 * time.Second,
			WriteTimeout:       30 * time.Second,
			ShutdownTimeout:    10 * time.Second,
			CORSAllowedOrigins: []string{"*"},
			RateLimitRPS:       20,
			RateLimitBurst:     40,
		},
		Validation: ValidationConfig{
			BodyMaxLength:     4096,
			CallSignMaxLength: 64,
			NameMaxLength:     255,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Application: ApplicationConfig{
			Timeout:     60 * time.Second,
			Environment: "development",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// IsProduction reports whether REPORTS_ENV is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Application.Environment, "production")
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparsable values are reported as a ConfigError.
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("REPORTS_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("REPORTS_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if err := envDuration("REPORTS_DB_QUERY_TIMEOUT", &c.Database.QueryTimeout); err != nil {
		return err
	}
	if err := envDuration("REPORTS_DB_WRITE_TIMEOUT", &c.Database.WriteTimeout); err != nil {
		return err
	}
	if perms := os.Getenv("REPORTS_DB_DIR_PERMISSIONS"); perms != "" {
		p, err := strconv.ParseUint(perms, 8, 32)
		if err != nil {
			return &ConfigError{Field: "REPORTS_DB_DIR_PERMISSIONS", Message: "must be an octal file mode"}
		}
		c.Database.DirPermissions = uint32(p)
	}
	if err := envInt("REPORTS_DB_MAX_OPEN_CONNS", &c.Database.MaxOpenConns); err != nil {
		return err
	}

	// Server configuration
	if addr := os.Getenv("REPORTS_LISTEN_ADDR"); addr != "" {
		c.Server.ListenAddr = addr
	}
	if err := envDuration("REPORTS_READ_TIMEOUT", &c.Server.ReadTimeout); err != nil {
		return err
	}
	if err := envDuration("REPORTS_WRITE_TIMEOUT", &c.Server.WriteTimeout); err != nil {
		return err
	}
	if err := envDuration("REPORTS_SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout); err != nil {
		return err
	}
	if origins := os.Getenv("REPORTS_CORS_ALLOWED_ORIGINS"); origins != "" {
		c.Server.CORSAllowedOrigins = SplitList(origins)
	}
	if rps := os.Getenv("REPORTS_RATE_LIMIT_RPS"); rps != "" {
		f, err := strconv.ParseFloat(rps, 64)
		if err != nil {
			return &ConfigError{Field: "REPORTS_RATE_LIMIT_RPS", Message: "must be a number"}
		}
		c.Server.RateLimitRPS = f
	}
	if err := envInt("REPORTS_RATE_LIMIT_BURST", &c.Server.RateLimitBurst); err != nil {
		return err
	}

	// Validation configuration
	if err := envInt("REPORTS_VALIDATION_BODY_MAX", &c.Validation.BodyMaxLength); err != nil {
		return err
	}
	if err := envInt("REPORTS_VALIDATION_CALL_SIGN_MAX", &c.Validation.CallSignMaxLength); err != nil {
		return err
	}
	if err := envInt("REPORTS_VALIDATION_NAME_MAX", &c.Validation.NameMaxLength); err != nil {
		return err
	}

	// Logging configuration
	if level := os.Getenv("REPORTS_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("REPORTS_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}

	// Application configuration
	if err := envDuration("REPORTS_APP_TIMEOUT", &c.Application.Timeout); err != nil {
		return err
	}
	if env := os.Getenv("REPORTS_ENV"); env != "" {
		c.Application.Environment = env
	}

	return nil
}

func envDuration(key string, dst *time.Duration) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return &ConfigError{Field: key, Message: "must be a duration such as 5s"}
	}
	*dst = d
	return nil
}

func envInt(key string, dst *int) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return &ConfigError{Field: key, Message: "must be an integer"}
	}
	*dst = n
	return nil
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}
	if c.Database.MaxOpenConns < 1 {
		return &ConfigError{Field: "database.max_open_conns", Message: "must allow at least one connection"}
	}

	// Validate server configuration
	if c.Server.ListenAddr == "" {
		return &ConfigError{Field: "server.listen_addr", Message: "listen address cannot be empty"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}
	if c.Server.RateLimitRPS < 0 {
		return &ConfigError{Field: "server.rate_limit_rps", Message: "rate limit cannot be negative"}
	}
	if c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst < 1 {
		return &ConfigError{Field: "server.rate_limit_burst", Message: "burst must be at least 1 when rate limiting"}
	}

	// Validate validation configuration
	if c.Validation.BodyMaxLength < 0 {
		return &ConfigError{Field: "validation.body_max_length", Message: "body maximum length cannot be negative"}
	}
	if c.Validation.CallSignMaxLength < 1 {
		return &ConfigError{Field: "validation.call_sign_max_length", Message: "call sign maximum length must be at least 1"}
	}
	if c.Validation.NameMaxLength < 1 {
		return &ConfigError{Field: "validation.name_max_length", Message: "name maximum length must be at least 1"}
	}

	// Validate logging configuration
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "log format must be text or json"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
