package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/tabmatch/cmd/tabmatch/cmd/columns"
	"github.com/agentstation/tabmatch/cmd/tabmatch/cmd/compare"
	"github.com/agentstation/tabmatch/cmd/tabmatch/cmd/duplicates"
	"github.com/agentstation/tabmatch/cmd/tabmatch/cmd/normalize"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Matching commands
	rootCmd.AddCommand(compare.NewCommand(a))
	rootCmd.AddCommand(duplicates.NewCommand(a))

	// Inspection commands
	rootCmd.AddCommand(columns.NewCommand(a))
	rootCmd.AddCommand(normalize.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("tabmatch %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
