package cli

import (
	"context"
	"fmt"
	"io"

	"location-reports/internal/config"
	"location-reports/internal/logging"

	"github.com/spf13/cobra"
)

// Command is implemented by every subcommand handler
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand() *RootCommand {
	root := &RootCommand{}

	root.cmd = &cobra.Command{
		Use:   "reports",
		Short: "Store and search agent status reports about locations",
		Long: `reports stores status reports filed by agents about locations and
searches them by agent, location, time range and digit count.

EXAMPLES:
  reports location add London Europe/London
  reports agent add KESTREL
  reports report create --agent-id 1 --location-id 1 --status GREEN --time 2024-03-01T10:15:00Z
  reports search --location-id 1 --from 2024-03-01T00:00:00Z --digits 2
  reports serve --listen-addr :8080

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

    REPORTS_DB_DIR                 Database directory (default: ~/.reports)
    REPORTS_DB_FILENAME            Database filename (default: reports.db)
    REPORTS_DB_QUERY_TIMEOUT       Query timeout (default: 10s)
    REPORTS_DB_WRITE_TIMEOUT       Write timeout (default: 5s)
    REPORTS_LISTEN_ADDR            HTTP listen address (default: :8080)
    REPORTS_RATE_LIMIT_RPS         Per-client requests per second, 0 disables (default: 20)
    REPORTS_LOG_LEVEL              debug, info, warn or error (default: info)
    REPORTS_LOG_FORMAT             text or json (default: text)
    REPORTS_ENV                    development, testing or production
    REPORTS_DEBUG                  Force debug logging when set`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the command line in args
func (r *RootCommand) Execute(ctx context.Context, args []string) error {
	r.cmd.SetArgs(args)
	return r.cmd.ExecuteContext(ctx)
}

// SetOutput redirects command output and logs
func (r *RootCommand) SetOutput(out, errOut io.Writer) {
	r.cmd.SetOut(out)
	r.cmd.SetErr(errOut)
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory (overrides REPORTS_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides REPORTS_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides REPORTS_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides REPORTS_DB_WRITE_TIMEOUT)")

	flags.String("listen-addr", "", "HTTP listen address (overrides REPORTS_LISTEN_ADDR)")
	flags.Float64("rate-limit-rps", 0, "Per-client request rate, 0 disables (overrides REPORTS_RATE_LIMIT_RPS)")
	flags.Int("rate-limit-burst", 0, "Per-client burst size (overrides REPORTS_RATE_LIMIT_BURST)")

	flags.String("log-level", "", "Log level (overrides REPORTS_LOG_LEVEL)")
	flags.String("log-format", "", "Log format, text or json (overrides REPORTS_LOG_FORMAT)")

	flags.Duration("app-timeout", 0, "Timeout for one-shot commands (overrides REPORTS_APP_TIMEOUT)")
}

// overridesFromFlags collects the flags the user actually set
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("db-write-timeout") {
		v, _ := flags.GetDuration("db-write-timeout")
		overrides.DBWriteTimeout = &v
	}
	if flags.Changed("listen-addr") {
		v, _ := flags.GetString("listen-addr")
		overrides.ListenAddr = &v
	}
	if flags.Changed("rate-limit-rps") {
		v, _ := flags.GetFloat64("rate-limit-rps")
		overrides.RateLimitRPS = &v
	}
	if flags.Changed("rate-limit-burst") {
		v, _ := flags.GetInt("rate-limit-burst")
		overrides.RateLimitBurst = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}
	if flags.Changed("log-format") {
		v, _ := flags.GetString("log-format")
		overrides.LogFormat = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}

	return overrides
}

func (r *RootCommand) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	r.config = cfg
	return nil
}

// withApp opens an App for a one-shot command bounded by the application
// timeout.
func (r *RootCommand) withApp(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, r.config.Application.Timeout)
	defer cancel()

	return r.runApp(ctx, cmd, fn)
}

func (r *RootCommand) runApp(ctx context.Context, cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	logger := logging.New(r.config.Logging.Level, r.config.Logging.Format, cmd.ErrOrStderr())

	app, err := NewApp(ctx, r.config, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(ctx, app)
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.newServeCommand(),
		r.newMigrateCommand(),
		r.newSearchCommand(),
		r.newReportCommand(),
		r.newLocationCommand(),
		r.newAgentCommand(),
	)
}
