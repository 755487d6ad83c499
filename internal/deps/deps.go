// Package deps checks that the executables a watch relies on can be found.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external executable a watch relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		if path != cmd {
			status.Detail = path
		}
		results = append(results, status)
	}
	return results
}

// CommandBinary guesses the executable a shell command line starts with. It
// skips leading VAR=value assignments and strips simple quotes. Lines that
// start with a shell builtin or a subshell return "".
func CommandBinary(line string) string {
	for _, field := range strings.Fields(line) {
		if strings.Contains(field, "=") && !strings.HasPrefix(field, "=") && !strings.ContainsAny(field[:strings.Index(field, "=")], "/'\"") {
			continue
		}
		field = strings.Trim(field, `'"`)
		if field == "" || strings.ContainsAny(field[:1], "({$`!") {
			return ""
		}
		if _, ok := shellBuiltins[field]; ok {
			return ""
		}
		return field
	}
	return ""
}

var shellBuiltins = map[string]struct{}{
	"cd": {}, "echo": {}, "exec": {}, "exit": {}, "export": {}, "printf": {},
	"read": {}, "set": {}, "source": {}, ".": {}, "test": {}, "[": {},
	"true": {}, "false": {}, ":": {},
}
