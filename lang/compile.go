package lang

import "gradsym/vm"

// Result is the output of compiling one source file: the executable
// program and the variable table codegen assigned addresses from.
type Result struct {
	Program vm.Program
	Vars    *VarTable
}

// Compile tokenizes, parses, and generates code for src in one pass.
func Compile(src string) (*Result, error) {
	vars := NewVarTable()
	tok, err := NewTokenizer(src, vars).Tokenize()
	if err != nil {
		return nil, err
	}
	stmts, err := NewParser(tok).ParseProgram()
	if err != nil {
		return nil, err
	}
	prog, err := Codegen(stmts)
	if err != nil {
		return nil, err
	}
	return &Result{Program: prog, Vars: vars}, nil
}
