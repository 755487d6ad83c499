package coordinator

import (
	"log/slog"
	"os/exec"
	"strings"
	"syscall"

	"waitforfile/internal/logging"
)

// DefaultShell runs dispatched command strings.
const DefaultShell = "sh"

// Dispatcher launches a command string without waiting for it.
type Dispatcher interface {
	Dispatch(command string)
}

// ShellDispatcher runs commands as `<shell> -c <command>` in their own
// process group. Launch errors are logged and dropped.
type ShellDispatcher struct {
	shell  string
	logger *slog.Logger

	// start is swapped in tests to observe or fail launches.
	start func(cmd *exec.Cmd) error
}

// NewShellDispatcher builds a dispatcher. An empty shell means DefaultShell.
func NewShellDispatcher(shell string, logger *slog.Logger) *ShellDispatcher {
	shell = strings.TrimSpace(shell)
	if shell == "" {
		shell = DefaultShell
	}
	return &ShellDispatcher{
		shell:  shell,
		logger: logging.NewComponentLogger(logger, "dispatcher"),
		start:  startDetached,
	}
}

// Shell reports the interpreter used for commands.
func (d *ShellDispatcher) Shell() string {
	return d.shell
}

// Dispatch returns once the child process exists, or once the launch has
// failed. It never waits for the command to finish.
func (d *ShellDispatcher) Dispatch(command string) {
	cmd := exec.Command(d.shell, "-c", command) //nolint:gosec
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := d.start(cmd); err != nil {
		d.logger.Warn("command launch failed; continuing without it",
			logging.Error(err),
			logging.String("command", command),
			logging.String("shell", d.shell),
			logging.String(logging.FieldEventType, "dispatch_failed"),
			logging.String(logging.FieldErrorHint, "check that the shell exists and the command is on PATH"),
			logging.String(logging.FieldImpact, "command had no effect"),
		)
		return
	}

	attrs := []logging.Attr{
		logging.String("command", command),
		logging.String(logging.FieldEventType, "dispatch_started"),
	}
	if cmd.Process != nil {
		attrs = append(attrs, logging.Int("pid", cmd.Process.Pid))
	}
	d.logger.Info("command launched", logging.Args(attrs...)...)
}

// startDetached starts cmd and reaps it in the background. Exit status is not
// tracked.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
