package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"waitforfile/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("WAITFORFILE_PRESENCE_FILE", "")
	t.Setenv("WAITFORFILE_COMMAND", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "waitforfile", "logs")
	if cfg.Logging.Dir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Logging.Dir, wantLogDir)
	}
	if cfg.Watch.ExtraCommand != "Unlock:open-vault 120s" {
		t.Fatalf("unexpected extra command default %q", cfg.Watch.ExtraCommand)
	}
	if !cfg.Watch.AutoTriggerExtra {
		t.Fatal("expected auto trigger enabled by default")
	}
	if !cfg.Watch.Exclusive {
		t.Fatal("expected exclusive watch by default")
	}
	if cfg.Watch.Shell != "sh" {
		t.Fatalf("unexpected shell %q", cfg.Watch.Shell)
	}
	if cfg.UI.Mode != config.UIModeAuto {
		t.Fatalf("unexpected ui mode %q", cfg.UI.Mode)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(cfg.Logging.Dir); err != nil || !info.IsDir() {
		t.Fatalf("expected log directory %q to exist: %v", cfg.Logging.Dir, err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "waitforfile.toml")

	type payload struct {
		Watch struct {
			PresenceFile     string `toml:"presence_file"`
			Command          string `toml:"command"`
			ExtraCommand     string `toml:"extra_command"`
			AutoTriggerExtra bool   `toml:"auto_trigger_extra"`
		} `toml:"watch"`
		UI struct {
			Mode string `toml:"mode"`
		} `toml:"ui"`
	}
	custom := payload{}
	custom.Watch.PresenceFile = filepath.Join(tempDir, "ready")
	custom.Watch.Command = "notify-send done"
	custom.Watch.ExtraCommand = "Mount:mount /mnt/vault"
	custom.Watch.AutoTriggerExtra = false
	custom.UI.Mode = "Headless"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Watch.Command != "notify-send done" {
		t.Fatalf("unexpected command %q", cfg.Watch.Command)
	}
	if cfg.Watch.AutoTriggerExtra {
		t.Fatal("expected auto trigger disabled by file")
	}
	if cfg.UI.Mode != config.UIModeHeadless {
		t.Fatalf("expected mode to be lower-cased, got %q", cfg.UI.Mode)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[watch]\npresense_file = \"/tmp/x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestValidateRejectsUnknownUIMode(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[ui]\nmode = \"gtk\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := config.Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "ui.mode") {
		t.Fatalf("expected ui.mode error, got %v", err)
	}
}

func TestFinalizeRequiresWatchFields(t *testing.T) {
	t.Setenv("WAITFORFILE_PRESENCE_FILE", "")
	t.Setenv("WAITFORFILE_COMMAND", "")

	cfg := config.Default()
	err := cfg.Finalize()
	if err == nil || !strings.Contains(err.Error(), "watch.presence_file") {
		t.Fatalf("expected presence_file error, got %v", err)
	}

	cfg.Watch.PresenceFile = filepath.Join(t.TempDir(), "ready")
	err = cfg.Finalize()
	if err == nil || !strings.Contains(err.Error(), "watch.command") {
		t.Fatalf("expected command error, got %v", err)
	}

	cfg.Watch.Command = "true"
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
}

func TestFinalizeUsesEnvironmentFallbacks(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WAITFORFILE_PRESENCE_FILE", filepath.Join(dir, "ready"))
	t.Setenv("WAITFORFILE_COMMAND", "echo hi")

	cfg := config.Default()
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if cfg.Watch.PresenceFile != filepath.Join(dir, "ready") {
		t.Fatalf("unexpected presence file %q", cfg.Watch.PresenceFile)
	}
	if cfg.Watch.Command != "echo hi" {
		t.Fatalf("unexpected command %q", cfg.Watch.Command)
	}
}

func TestLockDirPrefersRuntimeDir(t *testing.T) {
	runtimeDir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", runtimeDir)

	cfg := config.Default()
	if got, want := cfg.LockDir(), filepath.Join(runtimeDir, "waitforfile"); got != want {
		t.Fatalf("LockDir = %q, want %q", got, want)
	}

	cfg.Watch.LockDir = "/var/lock/custom"
	if got := cfg.LockDir(); got != "/var/lock/custom" {
		t.Fatalf("LockDir = %q, want explicit dir", got)
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := config.Load(target); err != nil || !exists {
		t.Fatalf("Load sample: exists=%v err=%v", exists, err)
	}
}
