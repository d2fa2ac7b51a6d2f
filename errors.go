package main

import (
	"errors"
	"fmt"

	"github.com/jcorbin/gonf/internal/mem"
)

var (
	errUnknownWord        = errors.New("unknown word")
	errUnknownVariable    = errors.New("unknown variable")
	errDataStackUnderflow = errors.New("data stack underflow")
	errDataStackOverflow  = errors.New("data stack overflow")
	errSyntax             = errors.New("syntax error")
	errStmtStackOverflow  = errors.New("statement stack overflow")
	errCompBufOverflow    = errors.New("compilation buffer overflow")
	errInvalidToken       = errors.New("invalid token")
	errInvalidOpcode      = errors.New("invalid opcode")
	errOutOfMemory        = errors.New("out of memory")
	errNameTooLong        = errors.New("name too long")
	errExecDepth          = errors.New("execution nested too deep")

	// errExit is returned by the exit word to stop a Run normally.
	errExit = errors.New("exit")
)

// nameError annotates an error with the word name that caused it.
type nameError struct {
	err  error
	name string
}

func (ne nameError) Error() string { return fmt.Sprintf("%v: %v", ne.err, ne.name) }
func (ne nameError) Unwrap() error { return ne.err }

type opcodeError instr

func (oe opcodeError) Error() string {
	return fmt.Sprintf("%v: %d/%d", errInvalidOpcode, oe.op, oe.val)
}
func (oe opcodeError) Unwrap() error { return errInvalidOpcode }

type progError int

func (ip progError) Error() string { return fmt.Sprintf("program smashed @%d", int(ip)) }

// memError classifies arena failures: limit errors are out of memory, bad
// addresses are passed through as is.
func memError(err error) error {
	var lim mem.LimitError
	if errors.As(err, &lim) {
		return oomError{lim}
	}
	return err
}

type oomError struct{ mem.LimitError }

func (oe oomError) Error() string        { return fmt.Sprintf("%v: %v", errOutOfMemory, oe.LimitError) }
func (oe oomError) Unwrap() error        { return oe.LimitError }
func (oe oomError) Is(target error) bool { return target == errOutOfMemory }
