package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"location-reports/internal/api"
	"location-reports/internal/errors"
	"location-reports/internal/search"
	"location-reports/internal/services"

	"github.com/spf13/cobra"
)

// ReportCreateCommand files a new report and prints it as JSON
type ReportCreateCommand struct {
	app          *App
	out          io.Writer
	errorHandler *ErrorHandler

	AgentID    int64
	LocationID int64
	Status     string
	// ReportTime is an ISO-8601 date-time with offset. Empty means now.
	ReportTime string
	Body       string
}

// NewReportCreateCommand creates a new report create command handler
func NewReportCreateCommand(app *App, out io.Writer) *ReportCreateCommand {
	return &ReportCreateCommand{app: app, out: out, errorHandler: NewErrorHandler()}
}

// Execute runs the report create command
func (c *ReportCreateCommand) Execute(ctx context.Context, args []string) error {
	reportTime := time.Now()
	if raw := strings.TrimSpace(c.ReportTime); raw != "" {
		parsed, err := search.ParseDateTime("time", raw)
		if err != nil {
			return c.errorHandler.Handle("create report", err)
		}
		reportTime = parsed
	}

	report, err := c.app.services.ReportService.CreateReport(ctx, services.ReportInput{
		AgentID:    c.AgentID,
		LocationID: c.LocationID,
		Status:     c.Status,
		ReportTime: reportTime,
		Body:       c.Body,
	})
	if err != nil {
		return c.errorHandler.Handle("create report", err)
	}

	return json.NewEncoder(c.out).Encode(api.ToReportResponse(*report))
}

// ReportGetCommand prints one report as JSON
type ReportGetCommand struct {
	app          *App
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewReportGetCommand creates a new report get command handler
func NewReportGetCommand(app *App, out io.Writer) *ReportGetCommand {
	return &ReportGetCommand{app: app, out: out, errorHandler: NewErrorHandler()}
}

// Execute runs the report get command
func (c *ReportGetCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseIDArg("report ID", args)
	if err != nil {
		return err
	}

	report, err := c.app.services.ReportService.GetReport(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("get report", err)
	}

	return json.NewEncoder(c.out).Encode(api.ToReportResponse(*report))
}

// ReportDeleteCommand deletes a report. Deleting a missing report succeeds.
type ReportDeleteCommand struct {
	app          *App
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewReportDeleteCommand creates a new report delete command handler
func NewReportDeleteCommand(app *App, out io.Writer) *ReportDeleteCommand {
	return &ReportDeleteCommand{app: app, out: out, errorHandler: NewErrorHandler()}
}

// Execute runs the report delete command
func (c *ReportDeleteCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseIDArg("report ID", args)
	if err != nil {
		return err
	}

	if err := c.app.services.ReportService.DeleteReport(ctx, id); err != nil {
		return c.errorHandler.Handle("delete report", err)
	}
	fmt.Fprintf(c.out, "Deleted report %d\n", id)
	return nil
}

func parseIDArg(name string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.NewInvalidInputError(name, args, "exactly one ID is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, errors.NewInvalidInputError(name, args[0], "must be an integer")
	}
	return id, nil
}

func (r *RootCommand) newReportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Create, show and delete reports",
	}

	create := &ReportCreateCommand{}
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "File a new report",
		Long: `File a new report. The time may be given in any offset and is stored in
the location's time zone.

Example:
  reports report create --agent-id 1 --location-id 2 --status AMBER --time 2024-03-01T10:15:00-05:00 --body "2 trucks"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				handler := NewReportCreateCommand(app, cmd.OutOrStdout())
				handler.AgentID = create.AgentID
				handler.LocationID = create.LocationID
				handler.Status = create.Status
				handler.ReportTime = create.ReportTime
				handler.Body = create.Body
				return handler.Execute(ctx, args)
			})
		},
	}
	flags := createCmd.Flags()
	flags.Int64Var(&create.AgentID, "agent-id", 0, "Reporting agent")
	flags.Int64Var(&create.LocationID, "location-id", 0, "Location reported on")
	flags.StringVar(&create.Status, "status", "", "GREEN, AMBER, RED or UNKNOWN")
	flags.StringVar(&create.ReportTime, "time", "", "Report time with UTC offset (default now)")
	flags.StringVar(&create.Body, "body", "", "Free text body")
	_ = createCmd.MarkFlagRequired("agent-id")
	_ = createCmd.MarkFlagRequired("location-id")
	_ = createCmd.MarkFlagRequired("status")

	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				return NewReportGetCommand(app, cmd.OutOrStdout()).Execute(ctx, args)
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				return NewReportDeleteCommand(app, cmd.OutOrStdout()).Execute(ctx, args)
			})
		},
	}

	reportCmd.AddCommand(createCmd, getCmd, deleteCmd)
	return reportCmd
}
