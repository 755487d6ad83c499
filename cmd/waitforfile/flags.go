package main

import (
	"github.com/spf13/cobra"

	"waitforfile/internal/config"
)

// watchFlags hold command-line overrides for the [watch], [ui] and
// [logging] sections. Only flags the user actually set are applied.
type watchFlags struct {
	presenceFile string
	command      string
	extraCommand string
	icon         string
	noAutoUnlock bool
	notify       bool
	noExclusive  bool
	shell        string
	mode         string
	headless     bool
	logLevel     string
}

func (f *watchFlags) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&f.presenceFile, "presence-file", "p", "", "File whose appearance triggers the command")
	flags.StringVarP(&f.command, "command", "c", "", "Command to run once the presence file exists")
	flags.StringVarP(&f.extraCommand, "extra-command", "e", "", `Auxiliary action as "Label:command"`)
	flags.StringVarP(&f.icon, "icon", "i", "", "Icon shown next to the title")
	flags.BoolVar(&f.noAutoUnlock, "no-auto-unlock", false, "Do not run the auxiliary command at startup")
	flags.BoolVar(&f.notify, "notify", false, "Use filesystem events to check between polls")
	flags.BoolVar(&f.noExclusive, "no-exclusive", false, "Allow other waiters on the same presence file")
	flags.StringVar(&f.shell, "shell", "", "Shell used to run commands")
	flags.StringVar(&f.mode, "mode", "", "Interface: auto, tui, or headless")
	flags.BoolVar(&f.headless, "headless", false, "Shorthand for --mode headless")
	flags.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, or error")
}

func (f *watchFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("presence-file") {
		cfg.Watch.PresenceFile = f.presenceFile
	}
	if changed("command") {
		cfg.Watch.Command = f.command
	}
	if changed("extra-command") {
		cfg.Watch.ExtraCommand = f.extraCommand
	}
	if changed("icon") {
		cfg.Watch.Icon = f.icon
	}
	if changed("no-auto-unlock") {
		cfg.Watch.AutoTriggerExtra = !f.noAutoUnlock
	}
	if changed("notify") {
		cfg.Watch.Notify = f.notify
	}
	if changed("no-exclusive") {
		cfg.Watch.Exclusive = !f.noExclusive
	}
	if changed("shell") {
		cfg.Watch.Shell = f.shell
	}
	if changed("mode") {
		cfg.UI.Mode = f.mode
	}
	if changed("headless") && f.headless {
		cfg.UI.Mode = config.UIModeHeadless
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
}
