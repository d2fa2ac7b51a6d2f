package main

import (
	"fmt"
	"strconv"

	"github.com/jcorbin/gonf/internal/mem"
)

const (
	defaultDataStackSize = 4096
	defaultStmtStackSize = 16
	defaultCompBufSize   = 2048

	maxTokenWidth = 4095
	maxNameWidth  = 31
	printfBufSize = 1024
	maxExecDepth  = 1024

	cellBytes  = strconv.IntSize / 8
	wordBytes  = maxNameWidth + 1 + 3*cellBytes
	instrBytes = 3 * cellBytes
)

// VM is a stack machine that interprets, compiles, and executes one line of
// source at a time.
type VM struct {
	ioCore
	tracer

	mode  mode
	words *word

	stack  []int
	comp   []instr
	compAt int
	stmts  []stmt
	stmtAt int

	mem      mem.Arena
	args     []string
	argAddrs []int

	dataStackSize int
	stmtStackSize int
	compBufSize   int
	prelude       bool
	haltOnError   bool

	inited bool
}

type mode int

const (
	modeInterpret mode = iota
	modeCompile
	modeExecute
)

func (m mode) String() string {
	switch m {
	case modeInterpret:
		return "interpret"
	case modeCompile:
		return "compile"
	case modeExecute:
		return "execute"
	}
	return fmt.Sprintf("mode%d", int(m))
}

func (vm *VM) withMode(m mode) func() {
	prior := vm.mode
	vm.mode = m
	return func() { vm.mode = prior }
}

// check ensures that the stack holds at least in values, and will have room
// for out values once those have been consumed.
func (vm *VM) check(in, out int) error {
	used := len(vm.stack)
	if used < in {
		return errDataStackUnderflow
	}
	if free := cap(vm.stack) - used; free+in < out {
		return errDataStackOverflow
	}
	return nil
}

// push and pop assume a prior check.
func (vm *VM) push(values ...int) { vm.stack = append(vm.stack, values...) }

func (vm *VM) pop() int {
	i := len(vm.stack) - 1
	val := vm.stack[i]
	vm.stack = vm.stack[:i]
	return val
}

func (vm *VM) pushStmt(kind stmtKind, at int) error {
	if vm.stmtAt >= len(vm.stmts) {
		return errStmtStackOverflow
	}
	vm.stmts[vm.stmtAt] = stmt{kind, at}
	vm.stmtAt++
	return nil
}

func (vm *VM) topStmt() (stmt, bool) {
	if vm.stmtAt == 0 {
		return stmt{}, false
	}
	return vm.stmts[vm.stmtAt-1], true
}

func (vm *VM) dropStmt() { vm.stmtAt-- }

func (vm *VM) compStart() {
	vm.compAt = 0
	vm.stmtAt = 0
	vm.mode = modeCompile
	vm.logf("comp", "start")
}

func (vm *VM) compFinish() error {
	vm.mode = modeInterpret
	_, err := vm.compile(instr{op: opReturn})
	return err
}

func (vm *VM) compile(in instr) (int, error) {
	if vm.compAt >= len(vm.comp) {
		return -1, errCompBufOverflow
	}
	at := vm.compAt
	vm.comp[at] = in
	vm.compAt++
	vm.logf("comp", "@%v %v", at, in)
	return at, nil
}

func (vm *VM) allocString(s string) (int, error) {
	addr, err := vm.mem.AllocString(s)
	if err != nil {
		return 0, memError(err)
	}
	return int(addr), nil
}

func (vm *VM) string(cell int) (string, error) {
	if cell < 0 {
		return "", mem.AddrError(cell)
	}
	s, err := vm.mem.String(uint(cell))
	return s, memError(err)
}

func (vm *VM) reserve(n int) error {
	_, err := vm.mem.Reserve(uint(n))
	return memError(err)
}
