package main

import (
	"context"
	"fmt"
	"os"

	"location-reports/internal/cli"

	// Embed the zone database so location time zones load on hosts
	// without one.
	_ "time/tzdata"
)

func main() {
	root := cli.NewRootCommand()

	if err := root.Execute(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.NewErrorHandler().ExitCode(err))
	}
}
