package executor

import (
	"context"
	"log/slog"
	"sync"

	"gradsym/logging"
	"gradsym/smt"
	"gradsym/sym"
	"gradsym/syncs"
	"gradsym/vm"
)

// SExecutor is the deterministic path-sensitive executor: it drives
// vm.Step over a DFS worklist, consulting the smt layer at every target
// program counter with a non-empty constraint set, and stops descending
// a path on Done, on an infeasible branch, or once its budgets are
// exhausted.
type SExecutor struct {
	Config Config
	Cache  *PathConstraintsTable
	Memory smt.Memory
	Logger logging.Logger

	newSpan  logging.NewSpan
	mu       sync.Mutex
	maxSAT   int
	maxUNSAT int
}

// New builds an SExecutor with fresh budgets copied from cfg.
func New(cfg Config) *SExecutor {
	logger := cfg.logger()
	return &SExecutor{
		Config:   cfg,
		Cache:    NewPathConstraintsTable(),
		Memory:   smt.Memory{},
		Logger:   logger,
		newSpan:  logging.Module{}.NewSpan(logger),
		maxSAT:   cfg.MaxSAT,
		maxUNSAT: cfg.MaxUNSAT,
	}
}

func (c Config) logger() logging.Logger {
	return logging.New()
}

// isTargetPC reports whether pc should be checked for satisfiability:
// an empty target set, or one containing the sentinel -1, targets every
// program counter.
func isTargetPC(pc int, targetPCs []int) bool {
	if len(targetPCs) == 0 {
		return true
	}
	for _, t := range targetPCs {
		if t == -1 || t == pc {
			return true
		}
	}
	return false
}

// Run explores prog from initial up to maxDepth and returns the root
// Trace. Run always builds the full trace, whatever Config.ReturnTrace
// says; callers who don't want it can discard it.
func (e *SExecutor) Run(prog vm.Program, targetPCs []int, initial *vm.SymState, maxDepth int) *Trace {
	sem := syncs.NewSemaphore(max(1, e.Config.MaxConcurrency))
	ctx, _ := e.newSpan(context.Background(), "")
	return e.run(ctx, prog, targetPCs, initial, maxDepth, sem)
}

func (e *SExecutor) run(ctx context.Context, prog vm.Program, targetPCs []int, state *vm.SymState, maxDepth int, sem syncs.Semaphore) *Trace {
	trace := &Trace{State: state}

	pc := state.PC
	isDone := pc < 0 || pc >= len(prog) || prog[pc].Op == vm.Done

	sat := true
	if isTargetPC(pc, targetPCs) && len(state.PathConstraints) > 0 {
		sat = e.decide(ctx, state.PathConstraints)
	}

	if isDone || !sat {
		return trace
	}

	if !(maxDepth > 0 && e.budgetsRemain()) {
		e.log(ctx, slog.LevelDebug, "budget exhausted", "pc", pc, "depth", maxDepth)
		return trace
	}

	successors, outcome := vm.Step(state, prog)
	switch outcome {
	case vm.Stuck:
		e.log(ctx, slog.LevelWarn, "vm stuck: non-constant jump address", "pc", pc)
		return trace
	case vm.Unsupported:
		e.log(ctx, slog.LevelError, "unsupported instruction in symStep", "pc", pc, "op", prog[pc].Op.String())
		return trace
	case vm.Terminated:
		return trace
	}

	if e.Config.MaxConcurrency <= 1 || len(successors) < 2 {
		for _, next := range successors {
			trace.Children = append(trace.Children, e.run(ctx, prog, targetPCs, next, maxDepth-1, sem))
		}
		return trace
	}

	children := make([]*Trace, len(successors))
	var wg sync.WaitGroup
	for i, next := range successors {
		wg.Add(1)
		sem.Acquire()
		go func(i int, next *vm.SymState) {
			defer wg.Done()
			defer sem.Release()
			children[i] = e.run(ctx, prog, targetPCs, next, maxDepth-1, sem)
		}(i, next)
	}
	wg.Wait()
	trace.Children = children
	return trace
}

// budgetsRemain reports whether both global SAT/UNSAT budgets still
// allow further solver invocations.
func (e *SExecutor) budgetsRemain() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.maxSAT > 0 && e.maxUNSAT > 0
}

// decide answers "are these path constraints satisfiable", consulting
// the cache first and only invoking the SMT layer (and decrementing the
// matching budget) on a miss.
func (e *SExecutor) decide(ctx context.Context, constraints []*sym.Sym) bool {
	if dec, ok := e.Cache.Lookup(constraints); ok {
		return dec.Sat
	}

	// e.Memory is shared mutable state across sibling goroutines when
	// MaxConcurrency > 1; the mutex also protects the budget decrements
	// below, so a solver invocation is atomic end-to-end from the
	// executor's point of view.
	e.mu.Lock()
	dec := smt.Solve(e.Config.Optimizer, constraints, e.Memory, e.Config.IgnoreMemory, e.Config.UseDPLL, e.Config.MaxNumTrials)
	if dec.Sat {
		e.maxSAT--
	} else {
		e.maxUNSAT--
	}
	e.mu.Unlock()

	e.Cache.Store(constraints, dec)

	e.log(ctx, slog.LevelDebug, "solved path constraints", "sat", dec.Sat, "key", sym.ConjunctionString(constraints))
	return dec.Sat
}

func (e *SExecutor) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if e.Config.VerboseLevel <= 0 && level == slog.LevelDebug {
		return
	}
	if e.Logger == nil {
		return
	}
	e.Logger.Log(ctx, level, msg, args...)
}
