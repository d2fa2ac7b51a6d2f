package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	_ "embed"

	"github.com/jcorbin/gonf/internal/fileinput"
	"github.com/jcorbin/gonf/internal/panicerr"
)

//go:embed prelude.nf
var preludeSource string

func (vm *VM) init() error {
	if vm.inited {
		return nil
	}
	vm.inited = true

	vm.stack = make([]int, 0, vm.dataStackSize)
	vm.comp = make([]instr, vm.compBufSize)
	vm.stmts = make([]stmt, vm.stmtStackSize)

	for _, bw := range baseWords {
		vm.define(&word{name: bw.name, kind: wordPrimitive, fn: bw.fn})
	}
	for _, sw := range stmtWords {
		vm.define(&word{name: sw.name, kind: wordStatement, fn: sw.fn})
	}

	vm.argAddrs = vm.argAddrs[:0]
	for _, arg := range vm.args {
		addr, err := vm.allocString(arg)
		if err != nil {
			return fmt.Errorf("unable to store arguments: %w", err)
		}
		vm.argAddrs = append(vm.argAddrs, addr)
	}

	if vm.prelude {
		sc := bufio.NewScanner(strings.NewReader(preludeSource))
		for lineno := 1; sc.Scan(); lineno++ {
			if err := vm.Interpret(sc.Text()); err != nil {
				return fmt.Errorf("prelude:%v: %w", lineno, err)
			}
		}
	}

	return nil
}

// Interpret runs one line of source: each token is executed, or compiled
// while a definition or control structure is pending.
// Any panic raised while doing so is returned as an error.
func (vm *VM) Interpret(line string) error {
	if err := vm.init(); err != nil {
		return err
	}
	return panicerr.Recover("", func() error {
		return vm.interpret(line)
	})
}

func (vm *VM) interpret(line string) error {
	vm.logf(">", "%q", line)
	for sc := (scanner{src: line}); !sc.done; {
		tok := sc.scan()
		if tok.kind != tokenEmpty {
			vm.logf("tok", "%v", tok)
		}
		if err := vm.interpretToken(tok); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) interpretToken(tok token) error {
	switch tok.kind {
	case tokenEmpty:
		return nil

	case tokenInvalid:
		return errInvalidToken

	case tokenString:
		addr, err := vm.allocString(tok.text)
		if err != nil {
			return err
		}
		return vm.literal(addr)

	case tokenNumber:
		return vm.literal(tok.num)

	case tokenWord:
		w := vm.lookup(tok.text)
		if w == nil {
			return nameError{errUnknownWord, tok.text}
		}
		if vm.mode == modeInterpret || w.kind == wordStatement {
			return vm.call(w)
		}
		_, err := vm.compile(instr{op: opCall, word: w})
		return err
	}
	return fmt.Errorf("unexpected %v token", tok.kind)
}

// literal pushes val when interpreting, otherwise compiles it.
func (vm *VM) literal(val int) error {
	if vm.mode != modeInterpret {
		_, err := vm.compile(instr{op: opLiteral, val: val})
		return err
	}
	if err := vm.check(0, 1); err != nil {
		return err
	}
	vm.push(val)
	return nil
}

func (vm *VM) runLines(ctx context.Context, src LineSource) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := src.ReadLine()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		err = vm.Interpret(line)
		if err != nil && !errors.Is(err, errExit) {
			vm.report(src, err)
		}
		if ferr := vm.out.Flush(); ferr != nil {
			return ferr
		}
		if err != nil && (vm.haltOnError || errors.Is(err, errExit)) {
			return err
		}
	}
}

func (vm *VM) report(src LineSource, err error) {
	if in, ok := src.(*fileinput.Input); ok {
		vm.logf("#", "%v: %+v", in.Last, err)
	} else {
		vm.logf("#", "%+v", err)
	}
	vm.log.ErrorIf(err)
}
