package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jcorbin/gonf/internal/logio"
	"github.com/stretchr/testify/assert"
)

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	{
		var exclusive []vmTestCase
		for _, vmt := range vmts {
			if vmt.exclusive {
				exclusive = append(exclusive, vmt)
			}
		}
		if len(exclusive) > 0 {
			vmts = exclusive
		}
	}
	for _, vmt := range vmts {
		t.Run(vmt.name, vmt.run)
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type vmTestCase struct {
	name    string
	opts    []interface{}
	inputs  []namedReader
	setup   []func(vm *VM)
	ops     []func(vm *VM) error
	expect  []func(t *testing.T, vm *VM)
	timeout time.Duration
	wantErr error

	exclusive bool
}

type namedReader struct {
	name string
	*strings.Reader
}

func (nr namedReader) Name() string { return nr.name }

func (vmt vmTestCase) apply(wraps ...func(vmTestCase) vmTestCase) vmTestCase {
	for _, wrap := range wraps {
		vmt = wrap(vmt)
	}
	return vmt
}

func (vmt vmTestCase) exclusiveTest() vmTestCase {
	vmt.exclusive = true
	return vmt
}

func (vmt vmTestCase) withOptions(opts ...VMOption) vmTestCase {
	for _, opt := range opts {
		vmt.opts = append(vmt.opts, opt)
	}
	return vmt
}

func (vmt vmTestCase) withStack(values ...int) vmTestCase {
	vmt.setup = append(vmt.setup, func(vm *VM) {
		vm.push(values...)
	})
	return vmt
}

func (vmt vmTestCase) withString(s string) vmTestCase {
	vmt.setup = append(vmt.setup, func(vm *VM) {
		addr, err := vm.allocString(s)
		if err != nil {
			panic(err)
		}
		vm.push(addr)
	})
	return vmt
}

func (vmt vmTestCase) withArgs(args ...string) vmTestCase {
	vmt.opts = append(vmt.opts, WithArgs(args...))
	return vmt
}

func (vmt vmTestCase) withMemLimit(limit uint) vmTestCase {
	vmt.opts = append(vmt.opts, WithMemLimit(limit))
	return vmt
}

func (vmt vmTestCase) withDataStackSize(n int) vmTestCase {
	vmt.opts = append(vmt.opts, WithDataStackSize(n))
	return vmt
}

func (vmt vmTestCase) withStatementStackSize(n int) vmTestCase {
	vmt.opts = append(vmt.opts, WithStatementStackSize(n))
	return vmt
}

func (vmt vmTestCase) withCompileBufferSize(n int) vmTestCase {
	vmt.opts = append(vmt.opts, WithCompileBufferSize(n))
	return vmt
}

func (vmt vmTestCase) withPrelude(enabled bool) vmTestCase {
	vmt.opts = append(vmt.opts, WithPrelude(enabled))
	return vmt
}

// withInput queues source to be read by Run, which reports line errors to
// the output rather than returning them.
func (vmt vmTestCase) withInput(input string) vmTestCase {
	name := "input"
	if n := len(vmt.inputs); n > 0 {
		name += "_" + strconv.Itoa(n+1)
	}
	return vmt.withNamedInput(name, input)
}

func (vmt vmTestCase) withNamedInput(name string, input string) vmTestCase {
	vmt.inputs = append(vmt.inputs, namedReader{name, strings.NewReader(input)})
	return vmt
}

// interpret drives Interpret directly, stopping at the first line error.
func (vmt vmTestCase) interpret(lines ...string) vmTestCase {
	for _, line := range lines {
		line := line
		vmt.ops = append(vmt.ops, func(vm *VM) error {
			return vm.Interpret(line)
		})
	}
	return vmt
}

func (vmt vmTestCase) do(ops ...func(vm *VM) error) vmTestCase {
	vmt.ops = append(vmt.ops, ops...)
	return vmt
}

func (vmt vmTestCase) withTimeout(timeout time.Duration) vmTestCase {
	vmt.timeout = timeout
	return vmt
}

func (vmt vmTestCase) expectError(err error) vmTestCase {
	vmt.wantErr = err
	return vmt
}

func (vmt vmTestCase) expectStack(values ...int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if values == nil {
			values = []int{}
		}
		assert.Equal(t, values, vm.stack, "expected stack values")
	})
	return vmt
}

func (vmt vmTestCase) expectStackString(i int, s string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if assert.True(t, i < len(vm.stack), "expected stack value #%v", i) {
			str, err := vm.string(vm.stack[i])
			assert.NoError(t, err, "expected string @stack[%v]", i)
			assert.Equal(t, s, str, "expected string @stack[%v]", i)
		}
	})
	return vmt
}

func (vmt vmTestCase) expectMode(m mode) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, m, vm.mode, "expected machine mode")
	})
	return vmt
}

func (vmt vmTestCase) expectPending(stmts ...string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		pending := []string{}
		for _, st := range vm.stmts[:vm.stmtAt] {
			pending = append(pending, st.String())
		}
		if stmts == nil {
			stmts = []string{}
		}
		assert.Equal(t, stmts, pending, "expected pending statements")
	})
	return vmt
}

func (vmt vmTestCase) expectComp(code ...string) vmTestCase {
	if code == nil {
		code = []string{}
	}
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, code, instrStrings(vm.comp[:vm.compAt]), "expected compile buffer")
	})
	return vmt
}

func (vmt vmTestCase) expectWord(name string, code ...string) vmTestCase {
	if code == nil {
		code = []string{}
	}
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		w := vm.lookup(name)
		if assert.NotNil(t, w, "expected word %q", name) {
			assert.Equal(t, wordCompiled, w.kind, "expected %q kind", name)
			assert.Equal(t, code, instrStrings(w.code), "expected %q code", name)
		}
	})
	return vmt
}

func (vmt vmTestCase) expectVar(name string, value int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		w := vm.lookup(name)
		if assert.NotNil(t, w, "expected variable %q", name) {
			assert.Equal(t, wordVariable, w.kind, "expected %q kind", name)
			assert.Equal(t, value, w.cell, "expected %q value", name)
		}
	})
	return vmt
}

func (vmt vmTestCase) expectNoWord(name string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Nil(t, vm.lookup(name), "expected no word %q", name)
	})
	return vmt
}

func (vmt vmTestCase) expectOutput(output string) vmTestCase {
	var out strings.Builder
	vmt.opts = append(vmt.opts, WithOutput(&out))
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return vmt
}

func (vmt vmTestCase) expectExitCode(code int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, code, vm.ExitCode(), "expected exit code")
	})
	return vmt
}

func (vmt vmTestCase) expectDump(dump string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		var out strings.Builder
		vmDumper{
			vm:  vm,
			out: &out,
		}.dump()
		assert.Equal(t, dump, out.String(), "expected dump")
	})
	return vmt
}

func (vmt vmTestCase) withTestDump() vmTestCase {
	vmt.expect = append(vmt.expect, vmt.dumpToTest)
	return vmt
}

func (vmt vmTestCase) withTestOutput() vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		return WithTee(&logio.Writer{Logf: t.Logf, Prefix: "out: "})
	})
	return vmt
}

func (vmt vmTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Since(then))
	}(time.Now())

	var trace []string
	vm := vmt.buildVM(t)
	WithLogf(func(mess string, args ...interface{}) {
		trace = append(trace, fmt.Sprintf(mess, args...))
	}).apply(vm)

	defer func() {
		if t.Failed() {
			for _, line := range trace {
				t.Log(line)
			}
			vmt.dumpToTest(t, vm)
		}
	}()

	vmt.runVMTest(context.Background(), t, vm)
}

func (vmt vmTestCase) runVMTest(ctx context.Context, t *testing.T, vm *VM) {
	const defaultTimeout = time.Second
	timeout := vmt.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := vmt.runVM(ctx, vm); vmt.wantErr != nil {
		assert.True(t, errors.Is(err, vmt.wantErr), "expected error: %v\ngot: %+v", vmt.wantErr, err)
	} else {
		assert.NoError(t, err, "unexpected VM run error")
	}

	for _, expect := range vmt.expect {
		expect(t, vm)
	}
}

func (vmt vmTestCase) runVM(ctx context.Context, vm *VM) (rerr error) {
	defer func() {
		if err := vm.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("vm.Close failed: %w", err)
		}
	}()

	if err := vm.init(); err != nil {
		return err
	}
	for _, setup := range vmt.setup {
		setup(vm)
	}

	if len(vmt.ops) == 0 {
		return vm.Run(ctx)
	}

	names := make([]string, len(vmt.ops))
	for i, op := range vmt.ops {
		names[i] = runtime.FuncForPC(reflect.ValueOf(op).Pointer()).Name()
	}
	for i, op := range vmt.ops {
		vm.logf(">", "do[%v] %v", i, names[i])
		if err := op(vm); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (vmt vmTestCase) buildVM(t *testing.T) *VM {
	var opt VMOption
	for _, o := range vmt.opts {
		switch impl := o.(type) {
		case func(vmt *vmTestCase, t *testing.T) VMOption:
			opt = VMOptions(opt, impl(&vmt, t))
		case VMOption:
			opt = VMOptions(opt, impl)
		default:
			t.Logf("unsupported vmTestCase opt type %T", o)
			t.FailNow()
		}
	}
	if len(vmt.inputs) > 0 {
		rs := make([]io.Reader, len(vmt.inputs))
		for i, nr := range vmt.inputs {
			rs[i] = nr
		}
		opt = VMOptions(opt, WithInputs(rs...))
	}
	return New(opt)
}

func (vmt vmTestCase) dumpToTest(t *testing.T, vm *VM) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	vmDumper{vm: vm, out: &lw, natives: true}.dump()
}

//// utilities

func instrStrings(code []instr) []string {
	strs := make([]string, len(code))
	for i, in := range code {
		strs[i] = in.String()
	}
	return strs
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}
