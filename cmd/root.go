package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the tasktracker CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "tasktracker",
		Short:        "Multi-tenant task tracker API",
		SilenceUsage: true,
	}

	// Global flag for config file path; empty means configs/config.yml
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newHashPasswordCmd())

	return cmd
}
