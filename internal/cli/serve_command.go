package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"location-reports/internal/api"
	"location-reports/internal/middleware"

	"github.com/spf13/cobra"
)

// ServeCommand runs the HTTP API until its context is cancelled or the
// process receives SIGINT or SIGTERM
type ServeCommand struct {
	app *App
	// ready is called with the bound address once the listener is open.
	ready func(addr string)
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute runs the serve command
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	cfg := c.app.config
	logger := c.app.logger

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", cfg.Server.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.ListenAddr, err)
	}

	server := &http.Server{
		Handler: api.NewRouter(ctx, api.RouterConfig{
			Services:           c.app.services,
			Logger:             logger,
			Health:             c.app.repo.DB().PingContext,
			CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
			RateLimit: middleware.RateLimitConfig{
				RequestsPerSecond: cfg.Server.RateLimitRPS,
				Burst:             cfg.Server.RateLimitBurst,
			},
			RequestTimeout: cfg.Server.WriteTimeout,
		}),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	addr := listener.Addr().String()
	logger.Info("HTTP API listening", "addr", addr, "database", cfg.GetDatabasePath())
	if c.ready != nil {
		c.ready(addr)
	}

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (r *RootCommand) newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until interrupted. In-flight requests are given the
shutdown timeout to finish.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return r.runApp(ctx, cmd, func(ctx context.Context, app *App) error {
				return NewServeCommand(app).Execute(ctx, args)
			})
		},
	}
}
