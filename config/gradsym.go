package config

import (
	_ "embed"

	"gradsym/executor"
	"gradsym/optim"
)

//go:embed schema.cue
var schema string

// optimizerFields and executorFields mirror schema.cue's field names;
// AssignFirst decodes into these before Load maps them onto the typed
// optim.Config/executor.Config the rest of the module consumes.
type optimizerFields struct {
	NumEpochs           *int     `json:"num_epochs"`
	LR                  *float64 `json:"lr"`
	Eps                 *float64 `json:"eps"`
	ParamLow            *float64 `json:"param_low"`
	ParamHigh           *float64 `json:"param_high"`
	SignGrad            *bool    `json:"sign_grad"`
	InitParamUniformInt *bool    `json:"init_param_uniform_int"`
	Seed                *int64   `json:"seed"`
}

type executorFields struct {
	MaxSAT         *int  `json:"max_sat"`
	MaxUNSAT       *int  `json:"max_unsat"`
	MaxDepth       *int  `json:"max_depth"`
	MaxNumTrials   *int  `json:"max_num_trials"`
	UseDPLL        *bool `json:"use_dpll"`
	IgnoreMemory   *bool `json:"ignore_memory"`
	MaxConcurrency *int  `json:"max_concurrency"`
	VerboseLevel   *int  `json:"verbose_level"`
	ReturnTrace    *bool `json:"return_trace"`
}

// Load reads paths (each a CUE file validated against schema.cue) and
// decodes them the same way Decode does, for callers that have not
// already built a Loader (tests, and cmd/gradsym, which takes the paths
// from the comma-separated GRADSYM_CONFIG environment variable).
func Load(paths []string) (optim.Config, executor.Config, int, error) {
	return Decode(NewLoader(paths, schema))
}

// Decode reads the optim.Config and executor.Config loader's roots
// describe, layered over DefaultConfig() for every field left unset.
// MaxDepth, named by schema.cue's executor block, is returned
// separately since it governs SExecutor.Run rather than living on
// executor.Config itself.
func Decode(loader Loader) (optim.Config, executor.Config, int, error) {
	oc := optim.DefaultConfig()
	var of optimizerFields
	if err := loader.AssignFirst("optimizer", &of); err != nil && err != ErrValueNotFound {
		return optim.Config{}, executor.Config{}, 0, err
	}
	applyOptimizerFields(&oc, of)

	ec := executor.DefaultConfig()
	var ef executorFields
	if err := loader.AssignFirst("executor", &ef); err != nil && err != ErrValueNotFound {
		return optim.Config{}, executor.Config{}, 0, err
	}
	maxDepth := applyExecutorFields(&ec, ef)

	return oc, ec, maxDepth, nil
}

func applyOptimizerFields(oc *optim.Config, f optimizerFields) {
	if f.NumEpochs != nil {
		oc.NumEpochs = *f.NumEpochs
	}
	if f.LR != nil {
		oc.LR = *f.LR
	}
	if f.Eps != nil {
		oc.Eps = *f.Eps
	}
	if f.ParamLow != nil {
		oc.ParamLow = *f.ParamLow
	}
	if f.ParamHigh != nil {
		oc.ParamHigh = *f.ParamHigh
	}
	if f.SignGrad != nil {
		oc.SignGrad = *f.SignGrad
	}
	if f.InitParamUniformInt != nil {
		oc.InitParamUniformInt = *f.InitParamUniformInt
	}
	if f.Seed != nil {
		oc.Seed = *f.Seed
	}
}

func applyExecutorFields(ec *executor.Config, f executorFields) int {
	if f.MaxSAT != nil {
		ec.MaxSAT = *f.MaxSAT
	}
	if f.MaxUNSAT != nil {
		ec.MaxUNSAT = *f.MaxUNSAT
	}
	if f.MaxNumTrials != nil {
		ec.MaxNumTrials = *f.MaxNumTrials
	}
	if f.UseDPLL != nil {
		ec.UseDPLL = *f.UseDPLL
	}
	if f.IgnoreMemory != nil {
		ec.IgnoreMemory = *f.IgnoreMemory
	}
	if f.MaxConcurrency != nil {
		ec.MaxConcurrency = *f.MaxConcurrency
	}
	if f.VerboseLevel != nil {
		ec.VerboseLevel = *f.VerboseLevel
	}
	if f.ReturnTrace != nil {
		ec.ReturnTrace = *f.ReturnTrace
	}
	maxDepth := 64
	if f.MaxDepth != nil {
		maxDepth = *f.MaxDepth
	}
	return maxDepth
}
