package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var flags watchFlags

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "waitforfile",
		Short: "Wait for a file to appear, then run a command",
		Long: `waitforfile polls for a presence file and runs a command once it exists.
An optional auxiliary action ("Label:command") can be run at any time
while waiting, and runs once at startup unless --no-auto-unlock is set.`,
		Args:          cobra.NoArgs,
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
			return runWait(cmd, ctx, &flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Configuration file path")
	flags.register(rootCmd)

	rootCmd.AddCommand(newDoctorCommand(ctx, &flags))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
