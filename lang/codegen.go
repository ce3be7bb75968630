package lang

import (
	"gradsym/vm"
	"gradsym/word"
)

// builder accumulates vm.Instruction while allowing later patches of
// jump-offset operands, since an If's relative offsets aren't known
// until both branches have been emitted.
type builder struct {
	prog vm.Program
}

func (b *builder) emit(op vm.Opcode) int {
	b.prog = append(b.prog, vm.Instruction{Op: op})
	return len(b.prog) - 1
}

func (b *builder) emitPush(w word.Word) int {
	b.prog = append(b.prog, vm.Instruction{Op: vm.Push, Word: w})
	return len(b.prog) - 1
}

func (b *builder) patchPush(idx int, v float64) {
	b.prog[idx].Word = word.FromFloat(float32(v))
}

func (b *builder) here() int { return len(b.prog) }

// Codegen compiles a parsed statement list into a vm.Program: binary
// ops generate their operands then the matching instruction, Ne is Eq
// followed by Not, and an absent else branch still emits a placeholder
// so the false path rejoins after the true branch.
func Codegen(stmts []*Node) (vm.Program, error) {
	b := &builder{}
	for _, s := range stmts {
		if err := genStmt(b, s); err != nil {
			return nil, err
		}
	}
	b.emit(vm.Done)
	return b.prog, nil
}

func genStmt(b *builder, n *Node) error {
	switch n.Kind {
	case NBlock:
		for _, s := range n.Body {
			if err := genStmt(b, s); err != nil {
				return err
			}
		}
		return nil

	case NReturn:
		// The return value is parsed but never lowered: return compiles
		// to a bare Done. Print/Over are reserved for hand-built
		// programs, not emitted by this code generator.
		b.emit(vm.Done)
		return nil

	case NIf:
		return genIf(b, n)

	default:
		// bare expression statement: assignment or a discarded value.
		if err := genExpr(b, n); err != nil {
			return err
		}
		if n.Kind != NAssign {
			b.emit(vm.Pop)
		}
		return nil
	}
}

func genIf(b *builder, n *Node) error {
	if err := genExpr(b, n.Cond); err != nil {
		return err
	}
	truePushIdx := b.emitPush(word.FromFloat(0))
	b.emit(vm.Swap)
	jmpIfIdx := b.here()
	b.emit(vm.JmpIf)

	if n.Else != nil {
		if err := genStmt(b, n.Else); err != nil {
			return err
		}
	} else {
		// absence of an else branch still costs a Nop.
		b.emit(vm.Nop)
	}
	skipPushIdx := b.emitPush(word.FromFloat(0))
	jmpIdx := b.here()
	b.emit(vm.Jmp)

	trueStart := b.here()
	if err := genStmt(b, n.Then); err != nil {
		return err
	}
	join := b.here()

	b.patchPush(truePushIdx, float64(trueStart-jmpIfIdx+2))
	b.patchPush(skipPushIdx, float64(join-jmpIdx))
	return nil
}

func genExpr(b *builder, n *Node) error {
	switch n.Kind {
	case NNum:
		b.emitPush(word.FromFloat(float32(n.Value)))
		return nil

	case NLVar:
		b.emitPush(word.FromFloat(float32(n.VarID)))
		b.emit(vm.Load)
		return nil

	case NAssign:
		if err := genExpr(b, n.RHS); err != nil {
			return err
		}
		b.emitPush(word.FromFloat(float32(n.LHS.VarID)))
		b.emit(vm.Swap)
		b.emit(vm.Store)
		return nil

	case NNot:
		if err := genExpr(b, n.LHS); err != nil {
			return err
		}
		b.emit(vm.Not)
		return nil

	case NDiv:
		return WithPos(n.Pos, "division has no VM opcode; unsupported")

	default:
		return genBinOp(b, n)
	}
}

var binOpcode = map[NodeKind]vm.Opcode{
	NAdd: vm.Add,
	NSub: vm.Sub,
	NMul: vm.Mul,
	NAnd: vm.And,
	NOr:  vm.Or,
	NLt:  vm.Lt,
	NLe:  vm.Le,
	NEq:  vm.Eq,
}

func genBinOp(b *builder, n *Node) error {
	if n.Kind == NNe {
		if err := genExpr(b, n.LHS); err != nil {
			return err
		}
		if err := genExpr(b, n.RHS); err != nil {
			return err
		}
		b.emit(vm.Eq)
		b.emit(vm.Not)
		return nil
	}
	op, ok := binOpcode[n.Kind]
	if !ok {
		return WithPos(n.Pos, "unsupported node in codegen")
	}
	if err := genExpr(b, n.LHS); err != nil {
		return err
	}
	if err := genExpr(b, n.RHS); err != nil {
		return err
	}
	b.emit(op)
	return nil
}
