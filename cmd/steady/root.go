package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "steady",
		Short: "Steady - estimate how consistently agents answer restyled prompts",
		Long: `Steady measures prompt stability: how consistently a generative agent
answers the same underlying prompt under varying stylistic framing.

It groups recorded responses by prompt and agent, measures pairwise
similarity inside each group, and runs Monte-Carlo resampling to produce a
stability estimate with a dispersion measure.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newInspectCommand())
	cmd.AddCommand(newGenerateCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
