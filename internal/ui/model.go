package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// PulseInterval is how often the progress bar advances.
const PulseInterval = 300 * time.Millisecond

const barWidth = 32

// Controller is the part of a coordinator the screen drives.
type Controller interface {
	Cancel() bool
	TriggerAuxiliary()
	Found() <-chan struct{}
	Done() <-chan struct{}
}

// Outcome is how the screen ended.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeMatched
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "pending"
	}
}

// Options describes what the screen shows.
type Options struct {
	Title          string
	Icon           string
	Path           string
	AuxiliaryLabel string
}

type focus int

const (
	focusAuxiliary focus = iota
	focusCancel
)

type (
	foundMsg   struct{}
	stoppedMsg struct{}
	pulseMsg   time.Time
)

// Model is the bubbletea model for the waiting screen.
type Model struct {
	ctrl   Controller
	opts   Options
	styles styles

	focus    focus
	pulse    int
	width    int
	outcome  Outcome
	quitting bool
}

// New returns a model bound to ctrl.
func New(ctrl Controller, opts Options) Model {
	m := Model{
		ctrl:   ctrl,
		opts:   opts,
		styles: defaultStyles(),
		focus:  focusCancel,
	}
	if m.hasAuxiliary() {
		m.focus = focusAuxiliary
	}
	return m
}

// Outcome reports how the screen ended. It is OutcomePending until a found
// signal arrives or the watch is cancelled.
func (m Model) Outcome() Outcome {
	return m.outcome
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForOutcome(m.ctrl), pulse()}
	if m.opts.Title != "" {
		cmds = append(cmds, tea.SetWindowTitle(m.opts.Title))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case foundMsg:
		m.outcome = OutcomeMatched
		m.quitting = true
		return m, tea.Quit

	case stoppedMsg:
		if m.outcome == OutcomePending {
			m.outcome = OutcomeCancelled
		}
		m.quitting = true
		return m, tea.Quit

	case pulseMsg:
		if m.quitting {
			return m, nil
		}
		m.pulse++
		return m, pulse()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	switch msg.String() {
	case "esc", "ctrl+c", "q":
		return m.cancel()
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.hasAuxiliary() {
			if m.focus == focusAuxiliary {
				m.focus = focusCancel
			} else {
				m.focus = focusAuxiliary
			}
		}
	case "enter", " ", "space":
		if m.focus == focusAuxiliary && m.hasAuxiliary() {
			m.ctrl.TriggerAuxiliary()
			return m, nil
		}
		return m.cancel()
	}
	return m, nil
}

// cancel quits right away when this press wins. When a match already won,
// the pending found message closes the screen instead.
func (m Model) cancel() (tea.Model, tea.Cmd) {
	if !m.ctrl.Cancel() {
		return m, nil
	}
	m.outcome = OutcomeCancelled
	m.quitting = true
	return m, tea.Quit
}

func (m Model) hasAuxiliary() bool {
	return strings.TrimSpace(m.opts.AuxiliaryLabel) != ""
}

func waitForOutcome(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctrl.Found():
			return foundMsg{}
		case <-ctrl.Done():
			select {
			case <-ctrl.Found():
				return foundMsg{}
			default:
				return stoppedMsg{}
			}
		}
	}
}

func pulse() tea.Cmd {
	return tea.Tick(PulseInterval, func(t time.Time) tea.Msg {
		return pulseMsg(t)
	})
}
