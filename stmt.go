package main

import "fmt"

type stmtKind int

const (
	stmtColon stmtKind = iota
	stmtIf
	stmtElse
	stmtDo
	stmtWhile
)

func (kind stmtKind) String() string {
	switch kind {
	case stmtColon:
		return ":"
	case stmtIf:
		return "if"
	case stmtElse:
		return "else"
	case stmtDo:
		return "do"
	case stmtWhile:
		return "while"
	}
	return fmt.Sprintf("stmt%d", int(kind))
}

// stmt is a pending control structure, recording the compile buffer index of
// its start, or of the branch it still needs to patch.
type stmt struct {
	kind stmtKind
	at   int
}

func (st stmt) String() string { return fmt.Sprintf("%v@%d", st.kind, st.at) }

var stmtWords = []struct {
	name string
	fn   func(vm *VM) error
}{
	{":", (*VM).colon},
	{";", (*VM).semicolon},
	{"if", (*VM).ifStmt},
	{"else", (*VM).elseStmt},
	{"then", (*VM).thenStmt},
	{"do", (*VM).doStmt},
	{"while", (*VM).whileStmt},
	{"repeat", (*VM).repeatStmt},
	{"until", (*VM).untilStmt},
}

// expectStmt checks that the innermost pending statement is one of kinds,
// leaving it in place.
func (vm *VM) expectStmt(name string, kinds ...stmtKind) (stmt, error) {
	if vm.mode == modeCompile {
		if st, ok := vm.topStmt(); ok {
			for _, kind := range kinds {
				if st.kind == kind {
					return st, nil
				}
			}
		}
	}
	return stmt{}, nameError{errSyntax, name}
}

// finishStmt completes a top-level control structure by compiling a return
// and executing the buffer; nested ones just continue compiling.
func (vm *VM) finishStmt() error {
	if vm.stmtAt > 0 {
		return nil
	}
	if err := vm.compFinish(); err != nil {
		return err
	}
	return vm.exec(vm.comp, 0)
}

func (vm *VM) colon() error {
	if vm.mode != modeInterpret {
		return nameError{errSyntax, ":"}
	}
	vm.compStart()
	return vm.pushStmt(stmtColon, vm.compAt)
}

func (vm *VM) semicolon() error {
	if _, err := vm.expectStmt(";", stmtColon); err != nil {
		return err
	}
	vm.dropStmt()
	return vm.compFinish()
}

func (vm *VM) ifStmt() error {
	if vm.mode != modeCompile {
		vm.compStart()
	}
	at, err := vm.compile(instr{op: opBranchUnless})
	if err != nil {
		return err
	}
	return vm.pushStmt(stmtIf, at)
}

func (vm *VM) elseStmt() error {
	st, err := vm.expectStmt("else", stmtIf)
	if err != nil {
		return err
	}
	at, err := vm.compile(instr{op: opBranch})
	if err != nil {
		return err
	}
	vm.dropStmt()
	vm.comp[st.at].val = at - st.at + 1
	vm.logf("stmt", "patch %v -> %v", st, vm.comp[st.at])
	return vm.pushStmt(stmtElse, at)
}

func (vm *VM) thenStmt() error {
	st, err := vm.expectStmt("then", stmtIf, stmtElse)
	if err != nil {
		return err
	}
	vm.dropStmt()
	vm.comp[st.at].val = vm.compAt - st.at
	vm.logf("stmt", "patch %v -> %v", st, vm.comp[st.at])
	return vm.finishStmt()
}

func (vm *VM) doStmt() error {
	if vm.mode != modeCompile {
		vm.compStart()
	}
	return vm.pushStmt(stmtDo, vm.compAt)
}

func (vm *VM) whileStmt() error {
	if _, err := vm.expectStmt("while", stmtDo); err != nil {
		return err
	}
	at, err := vm.compile(instr{op: opBranchUnless})
	if err != nil {
		return err
	}
	return vm.pushStmt(stmtWhile, at)
}

func (vm *VM) repeatStmt() error {
	loop, err := vm.expectStmt("repeat", stmtWhile)
	if err != nil {
		return err
	}
	if vm.stmtAt < 2 || vm.stmts[vm.stmtAt-2].kind != stmtDo {
		return nameError{errSyntax, "repeat"}
	}
	do := vm.stmts[vm.stmtAt-2]
	at, err := vm.compile(instr{op: opBranch, val: do.at - vm.compAt})
	if err != nil {
		return err
	}
	vm.stmtAt -= 2
	vm.comp[loop.at].val = at - loop.at + 1
	vm.logf("stmt", "patch %v -> %v", loop, vm.comp[loop.at])
	return vm.finishStmt()
}

func (vm *VM) untilStmt() error {
	do, err := vm.expectStmt("until", stmtDo)
	if err != nil {
		return err
	}
	if _, err := vm.compile(instr{op: opBranchUnless, val: do.at - vm.compAt}); err != nil {
		return err
	}
	vm.dropStmt()
	return vm.finishStmt()
}
