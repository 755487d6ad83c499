package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"waitforfile/internal/config"
	"waitforfile/internal/coordinator"
	"waitforfile/internal/instance"
	"waitforfile/internal/logging"
	"waitforfile/internal/ui"
)

// errWaitCancelled ends the process with status 1 without printing anything.
var errWaitCancelled = fmt.Errorf("wait cancelled: %w", context.Canceled)

func runWait(cmd *cobra.Command, ctx *commandContext, flags *watchFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	flags.apply(cmd, cfg)
	if err := cfg.Finalize(); err != nil {
		return err
	}

	useTUI := chooseTUI(cfg.UI.Mode, cmd.InOrStdin(), cmd.OutOrStdout())

	logger, err := logging.NewFromConfig(cfg, !useTUI)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	runCtx := logging.WithRunID(cmd.Context(), uuid.NewString())
	logger = logging.WithContext(runCtx, logger)

	if cfg.Watch.Exclusive {
		lock, err := instance.Acquire(cfg.LockDir(), cfg.Watch.PresenceFile)
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("failed to release watch lock", logging.Error(err))
			}
		}()
	}

	sigCtx, stop := signal.NotifyContext(runCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	coord, err := coordinator.New(coordinator.Options{
		Watch: coordinator.WatchConfig{
			Path:   cfg.Watch.PresenceFile,
			Notify: cfg.Watch.Notify,
		},
		Command:    cfg.Watch.Command,
		Auxiliary:  auxiliarySpec(cfg.Watch.ExtraCommand),
		Dispatcher: coordinator.NewShellDispatcher(cfg.Watch.Shell, logger),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	coord.Start(sigCtx)
	if cfg.Watch.AutoTriggerExtra {
		coord.TriggerAuxiliary()
	}

	var state coordinator.State
	if useTUI {
		state, err = waitInteractive(coord, cfg)
	} else {
		state, err = waitHeadless(sigCtx, coord)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	switch state {
	case coordinator.StateMatched:
		if !useTUI {
			fmt.Fprintln(out, renderStatusLine("Presence file", statusOK, "found; command dispatched", colorize))
		}
		return nil
	default:
		if !useTUI {
			fmt.Fprintln(out, renderStatusLine("Presence file", statusWarn, "wait cancelled", colorize))
		}
		return errWaitCancelled
	}
}

func waitInteractive(coord *coordinator.Coordinator, cfg *config.Config) (coordinator.State, error) {
	outcome, err := ui.Run(coord, ui.Options{
		Title:          cfg.UI.Title,
		Icon:           cfg.Watch.Icon,
		Path:           coord.Path(),
		AuxiliaryLabel: coord.Auxiliary().Label,
	}, tea.WithAltScreen())
	if outcome == ui.OutcomePending {
		coord.Cancel()
	}
	<-coord.Done()
	if err != nil {
		return coord.State(), err
	}
	if outcome == ui.OutcomeMatched {
		return coordinator.StateMatched, nil
	}
	return coord.State(), nil
}

func waitHeadless(ctx context.Context, coord *coordinator.Coordinator) (coordinator.State, error) {
	state, err := coord.Wait(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return state, err
	}
	return state, nil
}

// auxiliarySpec returns the zero spec for an empty value so no button or
// startup action is offered.
func auxiliarySpec(value string) coordinator.CommandSpec {
	if strings.TrimSpace(value) == "" {
		return coordinator.CommandSpec{}
	}
	return coordinator.ParseCommandSpec(value)
}

func chooseTUI(mode string, in io.Reader, out io.Writer) bool {
	switch mode {
	case config.UIModeTUI:
		return true
	case config.UIModeHeadless:
		return false
	}
	return isTerminal(in) && isTerminal(out)
}

func isTerminal(stream any) bool {
	file, ok := stream.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
