package vm

import "gradsym/sym"

// Outcome classifies what Step did, so the executor (and logging) can
// tell a normal continuation apart from termination, a dead ("stuck")
// path, or an instruction symStep does not model.
type Outcome uint8

const (
	Continue Outcome = iota
	Terminated       // Done reached
	Stuck            // Jmp/JmpIf whose address is not a literal
	Unsupported      // opcode symStep has no case for
)

// Step is the symbolic transfer function symStep: it applies one
// instruction to state and returns the states reachable from it (0 for
// Done/Stuck/Unsupported, 1 for everything but JmpIf, 2 for a JmpIf
// split, whether or not the condition folds to a constant).
func Step(state *SymState, prog Program) ([]*SymState, Outcome) {
	if state.PC < 0 || state.PC >= len(prog) {
		return nil, Terminated
	}
	instr := prog[state.PC]

	switch instr.Op {
	case Done:
		return nil, Terminated

	case Nop:
		next := state.Copy()
		next.PC++
		return []*SymState{next}, Continue

	case Not:
		next := state.Copy()
		w, _ := next.Stack.Pop()
		next.Stack.Push(sym.Not(w))
		next.PC++
		return []*SymState{next}, Continue

	case Add, Sub, Mul, And, Or, Lt, Le, Eq:
		next := state.Copy()
		r, _ := next.Stack.Pop()
		l, _ := next.Stack.Pop()
		next.Stack.Push(binOp(instr.Op, l, r))
		next.PC++
		return []*SymState{next}, Continue

	case Swap:
		next := state.Copy()
		a, _ := next.Stack.Pop()
		b, _ := next.Stack.Pop()
		next.Stack.Push(a)
		next.Stack.Push(b)
		next.PC++
		return []*SymState{next}, Continue

	case Dup:
		next := state.Copy()
		v, ok := next.Stack.Peek()
		if ok {
			next.Stack.Push(v)
		}
		next.PC++
		return []*SymState{next}, Continue

	case Pop:
		next := state.Copy()
		next.Stack.Pop()
		next.PC++
		return []*SymState{next}, Continue

	case Print:
		next := state.Copy()
		v, ok := next.Stack.Pop()
		if ok {
			next.Output = append(next.Output, v)
		}
		next.PC++
		return []*SymState{next}, Continue

	case Over:
		next := state.Copy()
		a, _ := next.Stack.Pop()
		b, _ := next.Stack.Pop()
		next.Stack.Push(b)
		next.Stack.Push(a)
		next.Stack.Push(b)
		next.PC++
		return []*SymState{next}, Continue

	case RotL:
		// ( a b c -- b c a ): the third-from-top item rotates to the top.
		next := state.Copy()
		c, _ := next.Stack.Pop()
		b, _ := next.Stack.Pop()
		a, _ := next.Stack.Pop()
		next.Stack.Push(b)
		next.Stack.Push(c)
		next.Stack.Push(a)
		next.PC++
		return []*SymState{next}, Continue

	case Push:
		next := state.Copy()
		next.Stack.Push(sym.Con(instr.Word))
		next.PC++
		return []*SymState{next}, Continue

	case Read:
		next := state.Copy()
		next.Stack.Push(sym.Any(next.VarCnt))
		next.VarCnt++
		next.PC++
		return []*SymState{next}, Continue

	case Load:
		next := state.Copy()
		addr, _ := next.Stack.Pop()
		address := int(addr.Con.Float())
		if w, ok := next.Mem[address]; ok {
			next.Stack.Push(sym.Con(w))
		} else if v, ok := next.SMem[address]; ok {
			next.Stack.Push(v)
		} else {
			next.Stack.Push(sym.Any(address))
		}
		next.PC++
		return []*SymState{next}, Continue

	case Store:
		next := state.Copy()
		w, _ := next.Stack.Pop()
		addr, _ := next.Stack.Pop()
		address := int(addr.Con.Float())
		doStore(next, address, w)
		next.PC++
		return []*SymState{next}, Continue

	case Jmp:
		next := state.Copy()
		addr, _ := next.Stack.Pop()
		if addr == nil || addr.Kind != sym.KCon {
			return nil, Stuck
		}
		next.PC += int(addr.Con.Float())
		return []*SymState{next}, Continue

	case JmpIf:
		peek := state.Stack.Clone()
		cond, _ := peek.Pop()
		addrSym, _ := peek.Pop()
		if addrSym == nil || addrSym.Kind != sym.KCon {
			return nil, Stuck
		}
		simplified := cond.Substitute(state.Mem)

		trueState := state.Copy()
		trueState.Stack.Pop()
		trueState.Stack.Pop()
		trueState.PC += int(addrSym.Con.Float()) - 2
		trueState.PathConstraints = append(trueState.PathConstraints, simplified)

		falseState := state.Copy()
		falseState.Stack.Pop()
		falseState.Stack.Pop()
		falseState.PC++
		falseState.PathConstraints = append(falseState.PathConstraints, sym.Not(simplified))

		return []*SymState{trueState, falseState}, Continue

	default:
		return nil, Unsupported
	}
}

func binOp(op Opcode, l, r *sym.Sym) *sym.Sym {
	switch op {
	case Add:
		return sym.Add(l, r)
	case Sub:
		return sym.Sub(l, r)
	case Mul:
		return sym.Mul(l, r)
	case And:
		return sym.And(l, r)
	case Or:
		return sym.Or(l, r)
	case Lt:
		return sym.Lt(l, r)
	case Le:
		return sym.Le(l, r)
	case Eq:
		return sym.Eq(l, r)
	}
	panic("binOp: not a binary opcode")
}

// doStore maintains the invariant that at most one of
// mem[address]/smem[address] holds a value after the write.
func doStore(state *SymState, address int, w *sym.Sym) {
	switch {
	case w.Kind == sym.KCon:
		state.Mem[address] = w.Con
		delete(state.SMem, address)

	case w.Kind == sym.KAny:
		if concrete, ok := state.Mem[w.Var]; ok {
			state.Mem[address] = concrete
			delete(state.SMem, address)
			return
		}
		if forwarded, ok := state.SMem[w.Var]; ok {
			state.SMem[address] = forwarded
			delete(state.Mem, address)
			return
		}
		state.SMem[address] = w
		delete(state.Mem, address)

	default:
		state.SMem[address] = w
		delete(state.Mem, address)
	}
}
