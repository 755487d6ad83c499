package coordinator

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"waitforfile/internal/logging"
)

func TestParseCommandSpec(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		label   string
		command string
	}{
		{name: "label and command", input: "Unlock:open-vault 120s", label: "Unlock", command: "open-vault 120s"},
		{name: "no colon", input: "justacommand", label: "Unlock", command: "justacommand"},
		{name: "split on first colon", input: "Mount:mount -o ro a:b /mnt", label: "Mount", command: "mount -o ro a:b /mnt"},
		{name: "empty label", input: ":cmd", label: "", command: "cmd"},
		{name: "empty", input: "", label: "Unlock", command: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := ParseCommandSpec(tt.input)
			if spec.Label != tt.label || spec.Command != tt.command {
				t.Fatalf("ParseCommandSpec(%q) = %+v, want label %q command %q", tt.input, spec, tt.label, tt.command)
			}
			if tt.input != "" && strings.Contains(tt.input, ":") && spec.String() != tt.input {
				t.Fatalf("String() = %q, want %q", spec.String(), tt.input)
			}
		})
	}
}

func TestRunStateIsMonotonic(t *testing.T) {
	state := NewRunState()
	if !state.Active() {
		t.Fatal("new run state should be active")
	}

	var wg sync.WaitGroup
	wins := make(chan bool, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- state.Cancel()
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for won := range wins {
		if won {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one winning cancel, got %d", count)
	}
	if state.Active() {
		t.Fatal("run state should stay inactive")
	}
	select {
	case <-state.Stopped():
	default:
		t.Fatal("stopped channel should be closed")
	}
}

func TestEventBridgeDeliversOnce(t *testing.T) {
	bridge := NewEventBridge()
	if bridge.TryReceive() {
		t.Fatal("empty bridge reported a signal")
	}
	if !bridge.Send() {
		t.Fatal("first send should succeed")
	}
	if bridge.Send() {
		t.Fatal("second send should be dropped")
	}
	if !bridge.TryReceive() {
		t.Fatal("expected the pending signal")
	}
	if bridge.TryReceive() {
		t.Fatal("signal delivered twice")
	}
}

func TestShellDispatcherRunsCommand(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	marker := filepath.Join(t.TempDir(), "launched")
	dispatcher := NewShellDispatcher("", logging.NewNop())
	if dispatcher.Shell() != DefaultShell {
		t.Fatalf("expected default shell, got %q", dispatcher.Shell())
	}

	dispatcher.Dispatch("touch '" + marker + "'")

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(marker); err == nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("dispatched command never ran")
}

func TestShellDispatcherBuildsDetachedShellCommand(t *testing.T) {
	dispatcher := NewShellDispatcher("bash", logging.NewNop())
	seen := make(chan *exec.Cmd, 1)
	dispatcher.start = func(cmd *exec.Cmd) error {
		seen <- cmd
		return nil
	}

	dispatcher.Dispatch("echo hi")

	select {
	case cmd := <-seen:
		if len(cmd.Args) != 3 || cmd.Args[0] != "bash" || cmd.Args[1] != "-c" || cmd.Args[2] != "echo hi" {
			t.Fatalf("unexpected args %v", cmd.Args)
		}
		if cmd.SysProcAttr == nil || !cmd.SysProcAttr.Setpgid {
			t.Fatal("expected command in its own process group")
		}
	case <-time.After(time.Second):
		t.Fatal("dispatch never reached start")
	}
}

func TestShellDispatcherReturnsAfterStart(t *testing.T) {
	dispatcher := NewShellDispatcher("sh", logging.NewNop())
	var started atomic.Bool
	dispatcher.start = func(*exec.Cmd) error {
		time.Sleep(time.Millisecond)
		started.Store(true)
		return nil
	}

	dispatcher.Dispatch("true")
	if !started.Load() {
		t.Fatal("Dispatch returned before the process was started")
	}
}

func TestShellDispatcherSwallowsStartErrors(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "dispatch.log")
	logger, err := logging.New(logging.Options{Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	dispatcher := NewShellDispatcher("sh", logger)
	attempted := make(chan struct{})
	dispatcher.start = func(*exec.Cmd) error {
		defer close(attempted)
		return errors.New("fork failed")
	}

	dispatcher.Dispatch("true")
	<-attempted

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "event_type=dispatch_failed") {
		t.Fatalf("expected a warning for the failed launch, got %q", data)
	}
}

func TestStateStrings(t *testing.T) {
	cases := map[State]string{
		StateIdle:      "idle",
		StateWatching:  "watching",
		stateMatching:  "watching",
		StateMatched:   "matched",
		StateCancelled: "cancelled",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", state, got, want)
		}
	}
	if StateWatching.Terminal() || !StateMatched.Terminal() || !StateCancelled.Terminal() {
		t.Fatal("unexpected Terminal results")
	}
}
