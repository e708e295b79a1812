package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := NewOptions()

	rootCmd := &cobra.Command{
		Use:   "checkports",
		Short: "Check MacPorts ports for pending maintainer work",
		Long: `A CLI tool for MacPorts maintainers. It checks the ports you maintain
for upstream version updates, open Trac tickets, open pull requests,
and lint complaints, and prints one report section per check.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChecks(cmd, opts)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	addCheckFlags(rootCmd, opts)

	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
