package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// LocationAddCommand registers a location
type LocationAddCommand struct {
	app          *App
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewLocationAddCommand creates a new location add command handler
func NewLocationAddCommand(app *App, out io.Writer) *LocationAddCommand {
	return &LocationAddCommand{app: app, out: out, errorHandler: NewErrorHandler()}
}

// Execute runs the location add command. args are NAME and ZONE.
func (c *LocationAddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: reports location add NAME ZONE")
	}

	location, err := c.app.services.RegistryService.CreateLocation(ctx, args[0], args[1])
	if err != nil {
		return c.errorHandler.Handle("add location", err)
	}
	fmt.Fprintf(c.out, "Added location %d: %s (%s)\n", location.ID, location.Name, location.TimeZone)
	return nil
}

// LocationListCommand prints every location
type LocationListCommand struct {
	app          *App
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewLocationListCommand creates a new location list command handler
func NewLocationListCommand(app *App, out io.Writer) *LocationListCommand {
	return &LocationListCommand{app: app, out: out, errorHandler: NewErrorHandler()}
}

// Execute runs the location list command
func (c *LocationListCommand) Execute(ctx context.Context, args []string) error {
	locations, err := c.app.services.RegistryService.ListLocations(ctx)
	if err != nil {
		return c.errorHandler.Handle("list locations", err)
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME ZONE")
	for _, l := range locations {
		fmt.Fprintf(w, "%d\t%s\t%s\n", l.ID, l.Name, l.TimeZone)
	}
	return w.Flush()
}

// AgentAddCommand registers an agent
type AgentAddCommand struct {
	app          *App
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewAgentAddCommand creates a new agent add command handler
func NewAgentAddCommand(app *App, out io.Writer) *AgentAddCommand {
	return &AgentAddCommand{app: app, out: out, errorHandler: NewErrorHandler()}
}

// Execute runs the agent add command. args is the call sign.
func (c *AgentAddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: reports agent add CALLSIGN")
	}

	agent, err := c.app.services.RegistryService.CreateAgent(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("add agent", err)
	}
	fmt.Fprintf(c.out, "Added agent %d: %s\n", agent.ID, agent.CallSign)
	return nil
}

func (r *RootCommand) newLocationCommand() *cobra.Command {
	locationCmd := &cobra.Command{
		Use:   "location",
		Short: "Manage locations",
	}

	addCmd := &cobra.Command{
		Use:     "add NAME ZONE",
		Short:   "Register a location in an IANA time zone",
		Example: "  reports location add London Europe/London",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				return NewLocationAddCommand(app, cmd.OutOrStdout()).Execute(ctx, args)
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List locations by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				return NewLocationListCommand(app, cmd.OutOrStdout()).Execute(ctx, args)
			})
		},
	}

	locationCmd.AddCommand(addCmd, listCmd)
	return locationCmd
}

func (r *RootCommand) newAgentCommand() *cobra.Command {
	agentCmd := &cobra.Command{
		Use:   "agent",
		Short: "Manage agents",
	}

	addCmd := &cobra.Command{
		Use:   "add CALLSIGN",
		Short: "Register an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(ctx context.Context, app *App) error {
				return NewAgentAddCommand(app, cmd.OutOrStdout()).Execute(ctx, args)
			})
		},
	}

	agentCmd.AddCommand(addCmd)
	return agentCmd
}
