package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"location-reports/internal/api"
	"location-reports/internal/search"

	"github.com/spf13/cobra"
)

// SearchCommand prints matching reports as JSON lines
type SearchCommand struct {
	app          *App
	out          io.Writer
	errorHandler *ErrorHandler

	// Params holds the raw filter values keyed by search filter key.
	Params map[string]string
}

// NewSearchCommand creates a new search command handler
func NewSearchCommand(app *App, out io.Writer) *SearchCommand {
	return &SearchCommand{
		app:          app,
		out:          out,
		errorHandler: NewErrorHandler(),
		Params:       make(map[string]string),
	}
}

// Execute runs the search command
func (c *SearchCommand) Execute(ctx context.Context, args []string) error {
	reports, err := c.app.services.ReportService.SearchReports(ctx, c.Params)
	if err != nil {
		return c.errorHandler.Handle("search reports", err)
	}

	enc := json.NewEncoder(c.out)
	for _, report := range reports {
		if err := enc.Encode(api.ToReportResponse(report)); err != nil {
			return fmt.Errorf("failed to write report %d: %w", report.ID, err)
		}
	}
	return nil
}

func (r *RootCommand) newSearchCommand() *cobra.Command {
	var agentID, locationID, from, to, digits string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search reports",
		Long: `Search reports. Every filter is optional and all given filters must match.
Times need a UTC offset, for example 2024-03-01T10:15:00+01:00. Both ends of
the time range are inclusive.

Examples:
  reports search --agent-id 3
  reports search --from 2024-03-01T00:00:00Z --to 2024-03-02T00:00:00Z
  reports search --location-id 1 --digits 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				handler := NewSearchCommand(app, cmd.OutOrStdout())
				handler.Params = searchParams(agentID, locationID, from, to, digits)
				return handler.Execute(ctx, args)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&agentID, "agent-id", "", "Only reports filed by this agent")
	flags.StringVar(&locationID, "location-id", "", "Only reports about this location")
	flags.StringVar(&from, "from", "", "Earliest report time, inclusive")
	flags.StringVar(&to, "to", "", "Latest report time, inclusive")
	flags.StringVar(&digits, "digits", "", "Exact number of digits in the report body")

	return cmd
}

func searchParams(agentID, locationID, from, to, digits string) map[string]string {
	return map[string]string{
		search.KeyAgentID:      agentID,
		search.KeyLocationID:   locationID,
		search.KeyFromTime:     from,
		search.KeyToTime:       to,
		search.KeyDigitsInBody: digits,
	}
}
