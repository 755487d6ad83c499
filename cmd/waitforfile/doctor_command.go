package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"waitforfile/internal/preflight"
)

func newDoctorCommand(ctx *commandContext, flags *watchFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that a watch can run with the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			flags.apply(cmd, cfg)
			if err := cfg.Finalize(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			if ctx.configSeen {
				fmt.Fprintln(out, renderStatusLine("Config", statusInfo, ctx.configPath, colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("Config", statusInfo, "defaults (no file found)", colorize))
			}

			results := preflight.RunAll(cfg)
			fmt.Fprintln(out, renderChecks(results, colorize))

			failed := 0
			for _, result := range results {
				if !result.Passed {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}
}
