package preflight

import (
	"waitforfile/internal/config"
	"waitforfile/internal/coordinator"
	"waitforfile/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check that applies to cfg.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckParentTraversable("Presence directory", cfg.Watch.PresenceFile))
	results = append(results, CheckPresence("Presence file", cfg.Watch.PresenceFile))

	for _, status := range deps.CheckBinaries(requirements(cfg)) {
		results = append(results, fromStatus(status))
	}

	if cfg.Logging.Dir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.Dir))
	}
	if cfg.Watch.Exclusive {
		results = append(results, CheckDirectoryAccess("Lock directory", cfg.LockDir()))
	}
	return results
}

func requirements(cfg *config.Config) []deps.Requirement {
	reqs := []deps.Requirement{{
		Name:        "Shell",
		Command:     cfg.Watch.Shell,
		Description: "Runs dispatched commands",
	}}
	if bin := deps.CommandBinary(cfg.Watch.Command); bin != "" {
		reqs = append(reqs, deps.Requirement{
			Name:        "Command",
			Command:     bin,
			Description: "Runs when the presence file appears",
		})
	}
	aux := coordinator.ParseCommandSpec(cfg.Watch.ExtraCommand)
	if bin := deps.CommandBinary(aux.Command); bin != "" {
		reqs = append(reqs, deps.Requirement{
			Name:        aux.Label + " command",
			Command:     bin,
			Description: "Auxiliary action",
			Optional:    true,
		})
	}
	return reqs
}

func fromStatus(status deps.Status) Result {
	detail := status.Command
	if status.Detail != "" {
		detail = status.Detail
	}
	if !status.Available && status.Optional {
		detail += " (optional)"
	}
	return Result{Name: status.Name, Passed: status.Available, Detail: detail}
}
