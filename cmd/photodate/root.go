package main

import (
	"github.com/spf13/cobra"
)

type runFlags struct {
	apply     bool
	refine    bool
	verbose   bool
	noJournal bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var flags runFlags

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "photodate <archive-root>",
		Short: "Set photo file dates from the dates in their folder and file names",
		Long: `photodate reads dates such as "2018.07.14 Beach" or "2019.01-03 Winter" from
directory and file names and sets each file's modification time and embedded
capture date to match. Without --apply it only shows what would change.`,
		Example: `  photodate /photos                 # dry run
  photodate /photos --apply         # write timestamps and metadata
  photodate /photos --refine        # prefer IMG_YYYYMMDD_HHMMSS times that fit the folder date`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchive(cmd, ctx, args[0], flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().BoolVar(&flags.apply, "apply", false, "Write changes (default is a dry run)")
	rootCmd.Flags().BoolVar(&flags.refine, "refine", false, "Use IMG_YYYYMMDD_HHMMSS file timestamps that agree with the folder date")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose output and debug logging")
	rootCmd.Flags().BoolVar(&flags.noJournal, "no-journal", false, "Do not record this run in the journal")

	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newLogsCommand(ctx))

	return rootCmd
}
