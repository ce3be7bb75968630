package vm

import (
	"gradsym/sym"
	"gradsym/word"
)

// Mem is concrete memory: var_id -> Word.
type Mem map[int]word.Word

// SMem is symbolic memory: var_id -> Sym. At most one of Mem[a]/SMem[a]
// is set for any address a.
type SMem map[int]*sym.Sym

// SymState is the machine state symStep transitions.
type SymState struct {
	PC     int
	VarCnt int

	Mem  Mem
	SMem SMem

	Stack *word.Stack[*sym.Sym]

	PathConstraints []*sym.Sym

	Output []*sym.Sym // values popped by Print, in order

	P                sym.SymProb
	HasObservedPCond bool
}

// NewSymState returns a fresh state at pc 0 with empty memory and an
// empty operand stack.
func NewSymState() *SymState {
	return &SymState{
		Mem:   Mem{},
		SMem:  SMem{},
		Stack: word.NewStack[*sym.Sym](),
		P:     sym.OneOverOne(),
	}
}

// SetConcreteVal pre-populates concrete memory at varID, pinning an
// ordinary (non-random) input to a known value.
func (s *SymState) SetConcreteVal(varID int, v float32) {
	s.Mem[varID] = word.FromFloat(v)
}

// Copy produces a fork of s suitable for branching: Mem, SMem,
// PathConstraints are shallow-copied into fresh containers (so neither
// state can mutate the other's bindings), the operand stack is cloned
// structurally, and Sym children are shared freely since they are
// immutable after construction.
func (s *SymState) Copy() *SymState {
	mem := make(Mem, len(s.Mem))
	for k, v := range s.Mem {
		mem[k] = v
	}
	smem := make(SMem, len(s.SMem))
	for k, v := range s.SMem {
		smem[k] = v
	}
	pc := make([]*sym.Sym, len(s.PathConstraints))
	copy(pc, s.PathConstraints)
	out := make([]*sym.Sym, len(s.Output))
	copy(out, s.Output)

	return &SymState{
		PC:               s.PC,
		VarCnt:           s.VarCnt,
		Mem:              mem,
		SMem:             smem,
		Stack:            s.Stack.Clone(),
		PathConstraints:  pc,
		Output:           out,
		P:                s.P,
		HasObservedPCond: s.HasObservedPCond,
	}
}

// WithPathConstraint returns a copy of s with sym appended to
// PathConstraints, leaving s itself untouched.
func (s *SymState) WithPathConstraint(constraint *sym.Sym) *SymState {
	next := s.Copy()
	next.PathConstraints = append(next.PathConstraints, constraint)
	return next
}
