package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the waiting screen until ctrl reaches an outcome or the user
// cancels. A pending outcome with a nil error means the program was stopped
// from outside, for example by a signal.
func Run(ctrl Controller, opts Options, programOpts ...tea.ProgramOption) (Outcome, error) {
	final, err := tea.NewProgram(New(ctrl, opts), programOpts...).Run()
	if err != nil {
		return OutcomePending, fmt.Errorf("run waiting screen: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return OutcomePending, fmt.Errorf("run waiting screen: unexpected model %T", final)
	}
	return m.Outcome(), nil
}
