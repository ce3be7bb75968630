// Package optim implements the gradient optimizer: it treats a
// conjunction of Sym atoms as a differentiable loss and minimises it by
// (sign) gradient descent.
package optim

import "fmt"

// Config carries the optimizer's tunables.
type Config struct {
	NumEpochs           int
	LR                  float64
	Eps                 float64
	ParamLow, ParamHigh float64
	SignGrad            bool
	InitParamUniformInt bool
	Seed                int64
}

// DefaultConfig picks generous defaults: 100 epochs, unit learning
// rate, a wide symmetric parameter range.
func DefaultConfig() Config {
	return Config{
		NumEpochs:           100,
		LR:                  1,
		Eps:                 1e-6,
		ParamLow:            -100,
		ParamHigh:           100,
		SignGrad:            true,
		InitParamUniformInt: true,
		Seed:                0,
	}
}

// Validate reports an error (built with fmt.Errorf) for nonsensical
// settings.
func (c Config) Validate() error {
	if c.NumEpochs <= 0 {
		return fmt.Errorf("optim: num_epochs must be > 0, got %d", c.NumEpochs)
	}
	if c.LR <= 0 {
		return fmt.Errorf("optim: lr must be > 0, got %g", c.LR)
	}
	if c.ParamLow > c.ParamHigh {
		return fmt.Errorf("optim: param_low (%g) > param_high (%g)", c.ParamLow, c.ParamHigh)
	}
	return nil
}
