package config

const (
	defaultExtraCommand = "Unlock:open-vault 120s"
	defaultShell        = "sh"
	defaultUIMode       = UIModeAuto
	defaultUITitle      = "Waiting for File"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultLogDir       = "~/.local/share/waitforfile/logs"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Watch: Watch{
			ExtraCommand:     defaultExtraCommand,
			AutoTriggerExtra: true,
			Exclusive:        true,
			Shell:            defaultShell,
		},
		UI: UI{
			Mode:  defaultUIMode,
			Title: defaultUITitle,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
	}
}
