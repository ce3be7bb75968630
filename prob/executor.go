package prob

import (
	"context"
	"log/slog"
	"sync"

	"gradsym/executor"
	"gradsym/logging"
	"gradsym/smt"
	"gradsym/sym"
	"gradsym/syncs"
	"gradsym/vm"
)

// PSExecutor drives the same symStep DFS as SExecutor, but a branch
// whose constraints mention a registered random variable is resolved
// by pbranch instead of the smt layer, and every Done with a
// non-empty path constraint is recorded into a
// ProbPathConstraintsTable.
type PSExecutor struct {
	Config     Config
	RandomVars map[int]DiscreteDist
	Cache      *executor.PathConstraintsTable
	ProbTable  *ProbPathConstraintsTable
	Memory     smt.Memory
	Logger     logging.Logger

	newSpan  logging.NewSpan
	mu       sync.Mutex
	maxSAT   int
	maxUNSAT int
}

// New builds a PSExecutor with fresh budgets and an empty random
// variable set; register variables with RegisterRandomVar before Run.
func New(cfg Config) *PSExecutor {
	logger := logging.New()
	return &PSExecutor{
		Config:     cfg,
		RandomVars: map[int]DiscreteDist{},
		Cache:      executor.NewPathConstraintsTable(),
		ProbTable:  NewProbPathConstraintsTable(),
		Memory:     smt.Memory{},
		Logger:     logger,
		newSpan:    logging.Module{}.NewSpan(logger),
		maxSAT:     cfg.MaxSAT,
		maxUNSAT:   cfg.MaxUNSAT,
	}
}

// RegisterRandomVar declares varID's values as drawn from dist.
func (e *PSExecutor) RegisterRandomVar(varID int, dist DiscreteDist) {
	e.RandomVars[varID] = dist
}

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

// Run explores prog from initial up to maxDepth, writing Cache and
// ProbTable as it goes, and returns the root Trace.
func (e *PSExecutor) Run(prog vm.Program, targetPCs []int, initial *vm.SymState, maxDepth int) *executor.Trace {
	sem := syncs.NewSemaphore(max(1, e.Config.MaxConcurrency))
	ctx, _ := e.newSpan(context.Background(), "")
	return e.run(ctx, prog, targetPCs, initial, maxDepth, sem)
}

func (e *PSExecutor) run(ctx context.Context, prog vm.Program, targetPCs []int, state *vm.SymState, maxDepth int, sem syncs.Semaphore) *executor.Trace {
	pc := state.PC
	isDone := pc < 0 || pc >= len(prog) || prog[pc].Op == vm.Done

	sat := true
	if isTargetPC(pc, targetPCs) && len(state.PathConstraints) > 0 {
		if !e.hasRandomFreeVar(state.PathConstraints) {
			sat = e.decide(ctx, state.PathConstraints)
		}
	}

	trace := &executor.Trace{State: state}

	if isDone {
		if len(state.PathConstraints) > 0 {
			e.ProbTable.Append(pc, Entry{
				Constraint: conjunctionOf(state.PathConstraints),
				Mem:        state.Mem,
				P:          state.P,
			})
		}
		return trace
	}
	if !sat {
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

	if prog[pc].Op == vm.JmpIf {
		for i, next := range successors {
			if isTargetPC(next.PC, targetPCs) && e.hasRandomFreeVar(next.PathConstraints) {
				successors[i] = e.pbranch(next)
			}
		}
	}

	if e.Config.MaxConcurrency <= 1 || len(successors) < 2 {
		for _, next := range successors {
			trace.Children = append(trace.Children, e.run(ctx, prog, targetPCs, next, maxDepth-1, sem))
		}
		return trace
	}

	children := make([]*executor.Trace, len(successors))
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

func (e *PSExecutor) budgetsRemain() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.maxSAT > 0 && e.maxUNSAT > 0
}

// decide falls back to the ordinary smt layer for a branch with no
// random free variable, exactly as executor.SExecutor.decide does.
func (e *PSExecutor) decide(ctx context.Context, constraints []*sym.Sym) bool {
	if dec, ok := e.Cache.Lookup(constraints); ok {
		return dec.Sat
	}

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

func (e *PSExecutor) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if e.Config.VerboseLevel <= 0 && level == slog.LevelDebug {
		return
	}
	if e.Logger == nil {
		return
	}
	e.Logger.Log(ctx, level, msg, args...)
}
