package prob

import "gradsym/optim"

// Config mirrors executor.Config's shape, so a caller running both
// executors over the same source can share a single set of budgets
// conceptually, even though the two Config types stay independent to
// avoid coupling prob to executor's internals.
type Config struct {
	Optimizer optim.Config

	MaxSAT       int
	MaxUNSAT     int
	MaxNumTrials int

	IgnoreMemory bool
	UseDPLL      bool

	VerboseLevel   int
	MaxConcurrency int
}

// DefaultConfig matches executor.DefaultConfig's budgets.
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
