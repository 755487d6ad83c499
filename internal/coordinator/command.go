package coordinator

import "strings"

// DefaultAuxiliaryLabel is used when an auxiliary command string carries no
// "Label:" prefix.
const DefaultAuxiliaryLabel = "Unlock"

// CommandSpec pairs a button label with the shell command it runs.
type CommandSpec struct {
	Label   string
	Command string
}

// ParseCommandSpec splits "Label:command" on the first colon. Without a
// colon the whole string is the command and the label is DefaultAuxiliaryLabel.
func ParseCommandSpec(value string) CommandSpec {
	label, command, ok := strings.Cut(value, ":")
	if !ok {
		return CommandSpec{Label: DefaultAuxiliaryLabel, Command: value}
	}
	return CommandSpec{Label: label, Command: command}
}

// String renders the spec back into its "Label:command" form.
func (c CommandSpec) String() string {
	return c.Label + ":" + c.Command
}
