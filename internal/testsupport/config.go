package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"waitforfile/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The presence file lives under BaseDir and does not exist yet.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Watch.PresenceFile = filepath.Join(base, "watch", "ready")
	cfgVal.Watch.Command = "true"
	cfgVal.Watch.ExtraCommand = ""
	cfgVal.Watch.AutoTriggerExtra = false
	cfgVal.Watch.LockDir = filepath.Join(base, "locks")
	cfgVal.UI.Mode = config.UIModeHeadless
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	if err := os.MkdirAll(filepath.Dir(cfgVal.Watch.PresenceFile), 0o755); err != nil {
		t.Fatalf("mkdir watch dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCommand sets the main command on the test config.
func WithCommand(command string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Watch.Command = command
	}
}

// WithExtraCommand sets the auxiliary "Label:command" and whether it fires at
// startup.
func WithExtraCommand(spec string, autoTrigger bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Watch.ExtraCommand = spec
		b.cfg.Watch.AutoTriggerExtra = autoTrigger
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Watch.PresenceFile))
}

// WriteConfig marshals cfg to path as TOML.
func WriteConfig(t testing.TB, path string, cfg *config.Config) {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}
