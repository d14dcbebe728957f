package cli

import (
	"context"
	"fmt"
	"io"

	"location-reports/internal/repository/sqlite/migrations"

	"github.com/spf13/cobra"
)

// MigrateCommand brings the database schema up to date and reports the
// resulting version. Opening the App applies pending migrations.
type MigrateCommand struct {
	app *App
	out io.Writer
}

// NewMigrateCommand creates a new migrate command handler
func NewMigrateCommand(app *App, out io.Writer) *MigrateCommand {
	return &MigrateCommand{app: app, out: out}
}

// Execute runs the migrate command
func (c *MigrateCommand) Execute(ctx context.Context, args []string) error {
	version, err := migrations.Version(ctx, c.app.repo.DB())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Database %s is at schema version %d\n", c.app.config.GetDatabasePath(), version)
	return nil
}

func (r *RootCommand) newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				return NewMigrateCommand(app, cmd.OutOrStdout()).Execute(ctx, args)
			})
		},
	}
}
