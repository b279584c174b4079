package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/namuve/frontdesk/internal/interfaces/cli/schema"
	"github.com/namuve/frontdesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "frontdesk",
		Short: "Frontdesk - front-desk ticketing service",
		Long:  `Frontdesk records guest, visitor and maintenance tickets in the property's record store and keeps an audit trail of every change.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		schema.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
