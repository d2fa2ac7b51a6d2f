package main

import (
	"io"
	"strings"

	"github.com/jcorbin/gonf/internal/fileinput"
	"github.com/jcorbin/gonf/internal/flushio"
)

// VMOption customizes a VM built by New.
type VMOption interface{ apply(vm *VM) }

var defaultOptions = VMOptions(
	withInputs(strings.NewReader("")),
	withOutput(io.Discard),
	dataStackSizeOption(defaultDataStackSize),
	stmtStackSizeOption(defaultStmtStackSize),
	compBufSizeOption(defaultCompBufSize),
	promptOption{">>> ", "... "},
)

// VMOptions combines any number of options into one, applied in order.
func VMOptions(opts ...VMOption) VMOption {
	var res vmOptions
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case vmOptions:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

type vmOptions []VMOption

func (opts vmOptions) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type inputOption []io.Reader
type initOption []io.Reader
type lineSourceOption struct{ LineSource }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type argsOption []string
type dataStackSizeOption int
type stmtStackSizeOption int
type compBufSizeOption int
type memLimitOption uint
type preludeOption bool
type haltOnErrorOption bool
type promptOption struct{ prompt, cont string }

func withInputs(rs ...io.Reader) inputOption { return inputOption(rs) }
func withOutput(w io.Writer) outputOption    { return outputOption{w} }
func withTee(w io.Writer) teeOption          { return teeOption{w} }

func (rs inputOption) apply(vm *VM) {
	vm.in = &fileinput.Input{Queue: rs}
}

func (rs initOption) apply(vm *VM) {
	vm.initIn = &fileinput.Input{Queue: rs}
}

func (src lineSourceOption) apply(vm *VM) {
	vm.in = src.LineSource
}

func (o outputOption) apply(vm *VM) {
	vm.setOutput(flushio.NewWriteFlusher(o.Writer))
}

func (o teeOption) apply(vm *VM) {
	vm.setOutput(flushio.Tee(vm.out.WriteFlusher, flushio.NewWriteFlusher(o.Writer)))
}

func (args argsOption) apply(vm *VM) {
	vm.args = append(vm.args[:0], args...)
}

func (n dataStackSizeOption) apply(vm *VM) {
	if n >= 0 {
		vm.dataStackSize = int(n)
	}
}

func (n stmtStackSizeOption) apply(vm *VM) {
	if n >= 0 {
		vm.stmtStackSize = int(n)
	}
}

func (n compBufSizeOption) apply(vm *VM) {
	if n >= 0 {
		vm.compBufSize = int(n)
	}
}

func (lim memLimitOption) apply(vm *VM) {
	vm.mem.Limit = uint(lim)
}

func (b preludeOption) apply(vm *VM) {
	vm.prelude = bool(b)
}

func (b haltOnErrorOption) apply(vm *VM) {
	vm.haltOnError = bool(b)
}

func (p promptOption) apply(vm *VM) {
	vm.prompt = p.prompt
	vm.continuePrompt = p.cont
}
