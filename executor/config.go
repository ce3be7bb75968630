// Package executor implements the deterministic path-sensitive
// executor: it drives symStep over a DFS worklist, decides feasibility
// of each branch through the smt layer, and caches per-path decisions.
package executor

import "gradsym/optim"

// Config carries the budgets and solver settings SExecutor runs with.
type Config struct {
	Optimizer optim.Config

	MaxSAT       int
	MaxUNSAT     int
	MaxNumTrials int

	IgnoreMemory bool
	UseDPLL      bool

	VerboseLevel int
	ReturnTrace  bool

	// MaxConcurrency bounds how many sibling subtrees of a single JmpIf
	// split run concurrently; 1 (the default) is a fully sequential DFS.
	MaxConcurrency int
}

// DefaultConfig matches the budgets a bare run() call would use absent
// any configuration: generous but finite exploration.
func DefaultConfig() Config {
	return Config{
		Optimizer:      optim.DefaultConfig(),
		MaxSAT:         1 << 20,
		MaxUNSAT:       1 << 20,
		MaxNumTrials:   5,
		UseDPLL:        false,
		MaxConcurrency: 1,
	}
}
