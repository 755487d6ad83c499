package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary", Optional: true},
		{Name: "Empty", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for absolute path: %s", results[0].Detail)
	}
	if results[1].Available || results[1].Detail == "" || !results[1].Optional {
		t.Fatalf("unexpected status for missing binary: %#v", results[1])
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected status for empty command: %#v", results[2])
	}
}

func TestCheckBinariesReportsResolvedPath(t *testing.T) {
	binDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(binDir, "vault-open"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", binDir)

	results := CheckBinaries([]Requirement{{Name: "Aux", Command: "vault-open"}})
	if !results[0].Available || results[0].Detail != filepath.Join(binDir, "vault-open") {
		t.Fatalf("unexpected status %#v", results[0])
	}
}

func TestCommandBinary(t *testing.T) {
	tests := map[string]string{
		"open-vault 120s":               "open-vault",
		"  notify-send 'done'":          "notify-send",
		"LANG=C DISPLAY=:0 xdg-open /x": "xdg-open",
		"echo hi > /tmp/x":              "",
		"(cd /tmp && make)":             "",
		"$HOME/bin/run":                 "",
		"":                              "",
	}
	for line, want := range tests {
		if got := CommandBinary(line); got != want {
			t.Errorf("CommandBinary(%q) = %q, want %q", line, got, want)
		}
	}
}
