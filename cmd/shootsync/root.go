package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var dataDirFlag string
	var rulesFlag string
	var verboseFlag bool

	ctx := newCommandContext(&dataDirFlag, &rulesFlag, &verboseFlag)

	rootCmd := &cobra.Command{
		Use:           "shootsync",
		Short:         "Reconcile photo delivery folders against booked schedules",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Agent data directory")
	rootCmd.PersistentFlags().StringVar(&rulesFlag, "rules", "", "Classification rules file (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable engine logging")

	rootCmd.AddCommand(newAnalyzeCommand(ctx))
	rootCmd.AddCommand(newScheduleCommand(ctx))
	rootCmd.AddCommand(newRunsCommand(ctx))

	return rootCmd
}
