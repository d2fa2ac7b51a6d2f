package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jcorbin/gonf/internal/printf"
)

var baseWords = []struct {
	name string
	fn   func(vm *VM) error
}{
	{"dup", (*VM).dup},
	{"drop", (*VM).drop},
	{"swap", (*VM).swap},
	{"over", (*VM).over},
	{"rot", (*VM).rot},

	{"+", binaryOp(func(a, b int) int { return a + b })},
	{"-", binaryOp(func(a, b int) int { return a - b })},
	{"*", binaryOp(func(a, b int) int { return a * b })},
	{"/", binaryOp(func(a, b int) int { return a / b })},
	{"%", binaryOp(func(a, b int) int { return a % b })},

	{"&&", binaryOp(func(a, b int) int { return truth(a != 0 && b != 0) })},
	{"||", binaryOp(func(a, b int) int { return truth(a != 0 || b != 0) })},
	{"!", unaryOp(func(a int) int { return truth(a == 0) })},

	{"&", binaryOp(func(a, b int) int { return a & b })},
	{"|", binaryOp(func(a, b int) int { return a | b })},
	{"^", binaryOp(func(a, b int) int { return a ^ b })},
	{"~", unaryOp(func(a int) int { return ^a })},

	{"==", binaryOp(func(a, b int) int { return truth(a == b) })},
	{"!=", binaryOp(func(a, b int) int { return truth(a != b) })},
	{"<", binaryOp(func(a, b int) int { return truth(a < b) })},
	{">", binaryOp(func(a, b int) int { return truth(a > b) })},
	{"<=", binaryOp(func(a, b int) int { return truth(a <= b) })},
	{">=", binaryOp(func(a, b int) int { return truth(a >= b) })},

	{"exec", (*VM).execComp},
	{"def", (*VM).def},
	{"var", (*VM).defVar},
	{":=", (*VM).assign},

	{"argc", (*VM).argc},
	{"argv", (*VM).argv},

	{"printf", (*VM).printf},
	{".s", (*VM).dotS},
	{".", (*VM).dot},
	{"cr", (*VM).cr},
	{"exit", func(vm *VM) error { return errExit }},
}

func truth(b bool) int {
	if b {
		return 1
	}
	return 0
}

func unaryOp(op func(a int) int) func(vm *VM) error {
	return func(vm *VM) error {
		if err := vm.check(1, 1); err != nil {
			return err
		}
		vm.push(op(vm.pop()))
		return nil
	}
}

func binaryOp(op func(a, b int) int) func(vm *VM) error {
	return func(vm *VM) error {
		if err := vm.check(2, 1); err != nil {
			return err
		}
		b := vm.pop()
		a := vm.pop()
		vm.push(op(a, b))
		return nil
	}
}

// ( x -- x x )
func (vm *VM) dup() error {
	if err := vm.check(1, 2); err != nil {
		return err
	}
	vm.push(vm.stack[len(vm.stack)-1])
	return nil
}

// ( x -- )
func (vm *VM) drop() error {
	if err := vm.check(1, 0); err != nil {
		return err
	}
	vm.pop()
	return nil
}

// ( a b -- b a )
func (vm *VM) swap() error {
	if err := vm.check(2, 2); err != nil {
		return err
	}
	s := vm.stack[len(vm.stack)-2:]
	s[0], s[1] = s[1], s[0]
	return nil
}

// ( a b -- a b a )
func (vm *VM) over() error {
	if err := vm.check(2, 3); err != nil {
		return err
	}
	vm.push(vm.stack[len(vm.stack)-2])
	return nil
}

// ( a b c -- b c a )
func (vm *VM) rot() error {
	if err := vm.check(3, 3); err != nil {
		return err
	}
	s := vm.stack[len(vm.stack)-3:]
	s[0], s[1], s[2] = s[1], s[2], s[0]
	return nil
}

// execComp runs whatever the compile buffer last held.
func (vm *VM) execComp() error { return vm.exec(vm.comp, 0) }

// def ( s -- ) names a copy of the compile buffer up to its cursor.
func (vm *VM) def() error {
	if err := vm.check(1, 0); err != nil {
		return err
	}
	name, err := vm.string(vm.pop())
	if err != nil {
		return err
	}
	code := make([]instr, vm.compAt, vm.compAt+1)
	copy(code, vm.comp[:vm.compAt])
	if len(code) == 0 || code[len(code)-1].op != opReturn {
		code = append(code, instr{op: opReturn})
	}
	return vm.defineWord(&word{name: name, kind: wordCompiled, code: code})
}

// defVar ( n s -- ) defines a variable named s holding n.
func (vm *VM) defVar() error {
	if err := vm.check(2, 0); err != nil {
		return err
	}
	name, err := vm.string(vm.pop())
	if err != nil {
		return err
	}
	return vm.defineWord(&word{name: name, kind: wordVariable, cell: vm.pop()})
}

// assign ( n s -- ) stores n into the existing variable named s.
func (vm *VM) assign() error {
	if err := vm.check(2, 0); err != nil {
		return err
	}
	name, err := vm.string(vm.pop())
	if err != nil {
		return err
	}
	val := vm.pop()
	w := vm.lookup(name)
	if w == nil || w.kind != wordVariable {
		return nameError{errUnknownVariable, name}
	}
	w.cell = val
	return nil
}

// ( -- n )
func (vm *VM) argc() error {
	if err := vm.check(0, 1); err != nil {
		return err
	}
	vm.push(len(vm.argAddrs))
	return nil
}

// ( n -- s ) pushes 0 for an index out of range.
func (vm *VM) argv() error {
	if err := vm.check(1, 1); err != nil {
		return err
	}
	addr := 0
	if n := vm.pop(); n >= 0 && n < len(vm.argAddrs) {
		addr = vm.argAddrs[n]
	}
	vm.push(addr)
	return nil
}

// ( -- )
func (vm *VM) dotS() error {
	var sb strings.Builder
	for i, val := range vm.stack {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", val)
	}
	sb.WriteByte('\n')
	return vm.writeString(sb.String())
}

// ( x -- )
func (vm *VM) dot() error {
	if err := vm.check(1, 0); err != nil {
		return err
	}
	return vm.writeString(fmt.Sprintf("%d ", vm.pop()))
}

// ( -- )
func (vm *VM) cr() error { return vm.writeString("\n") }

// printf ( ... s -- n ) formats values pulled from the stack, one per
// conversion, and pushes the length of the full output; an invalid format
// pushes -1 after printing what preceded it.
func (vm *VM) printf() error {
	if err := vm.check(1, 1); err != nil {
		return err
	}
	format, err := vm.string(vm.stack[len(vm.stack)-1])
	if err != nil {
		return err
	}
	if err := vm.check(1+printf.Count(format), 1); err != nil {
		return err
	}
	vm.pop()

	var buf [printfBufSize]byte
	n, err := printf.Snprintf(buf[:], format, stackArgs{vm})
	out := buf[:min(n, len(buf))]
	if errors.Is(err, printf.ErrFormat) {
		n, err = -1, nil
	}
	if err != nil {
		return err
	}
	if err := vm.write(out); err != nil {
		return err
	}
	vm.push(n)
	return nil
}

// stackArgs pulls printf arguments off the data stack.
type stackArgs struct{ vm *VM }

func (sa stackArgs) NextInt() (int64, error) {
	if err := sa.vm.check(1, 0); err != nil {
		return 0, err
	}
	return int64(sa.vm.pop()), nil
}

func (sa stackArgs) NextString() (string, error) {
	if err := sa.vm.check(1, 0); err != nil {
		return "", err
	}
	return sa.vm.string(sa.vm.pop())
}
