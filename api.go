package main

import (
	"context"
	"errors"
	"io"
)

// New creates a VM; its vocabulary and storage are set up on first use.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Run interprets lines from any init sources, then from the input, until
// input runs out, the exit word is called, or ctx is done.
// Line errors are reported to the output as "error: ..." and interpretation
// continues, unless halting on error; only then, or when setup or reading
// input fails, does Run return an error.
func (vm *VM) Run(ctx context.Context) error {
	if err := vm.init(); err != nil {
		return err
	}
	defer vm.out.Flush()

	var err error
	if vm.initIn != nil {
		err = vm.runLines(ctx, vm.initIn)
	}
	if err == nil {
		err = vm.runLines(ctx, vm.in)
	}
	if errors.Is(err, errExit) {
		return nil
	}
	return err
}

// ExitCode returns non-zero if any errors have been reported.
func (vm *VM) ExitCode() int { return vm.log.ExitCode() }

// Prompt returns the interactive prompt for the current machine state,
// first ending any partial output line.
func (vm *VM) Prompt() string {
	vm.out.FreshLine()
	vm.out.Flush()
	if vm.mode == modeCompile {
		return vm.continuePrompt
	}
	return vm.prompt
}

func WithInput(r io.Reader) VMOption                { return withInputs(r) }
func WithInputs(rs ...io.Reader) VMOption           { return withInputs(rs...) }
func WithInit(rs ...io.Reader) VMOption             { return initOption(rs) }
func WithLineSource(src LineSource) VMOption        { return lineSourceOption{src} }
func WithOutput(w io.Writer) VMOption               { return withOutput(w) }
func WithTee(w io.Writer) VMOption                  { return withTee(w) }
func WithArgs(args ...string) VMOption              { return argsOption(args) }
func WithDataStackSize(n int) VMOption              { return dataStackSizeOption(n) }
func WithStatementStackSize(n int) VMOption         { return stmtStackSizeOption(n) }
func WithCompileBufferSize(n int) VMOption          { return compBufSizeOption(n) }
func WithMemLimit(limit uint) VMOption              { return memLimitOption(limit) }
func WithPrelude(enabled bool) VMOption             { return preludeOption(enabled) }
func WithHaltOnError(halt bool) VMOption            { return haltOnErrorOption(halt) }
func WithPrompts(prompt, continued string) VMOption { return promptOption{prompt, continued} }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
