package main

import "fmt"

type wordKind int

const (
	wordPrimitive wordKind = iota
	wordCompiled
	wordStatement
	wordVariable
)

func (kind wordKind) String() string {
	switch kind {
	case wordPrimitive:
		return "primitive"
	case wordCompiled:
		return "compiled"
	case wordStatement:
		return "statement"
	case wordVariable:
		return "variable"
	}
	return fmt.Sprintf("kind%d", int(kind))
}

// word is a dictionary entry; each one links to the entry defined before it.
type word struct {
	name string
	kind wordKind
	fn   func(vm *VM) error
	code []instr
	cell int
	next *word
}

func (w *word) String() string {
	if w == nil {
		return "<nil word>"
	}
	return fmt.Sprintf("%v %q", w.kind, w.name)
}

// define links w as the newest word, shadowing any prior word of the same name.
func (vm *VM) define(w *word) {
	w.next = vm.words
	vm.words = w
	vm.logf("def", "%v", w)
}

// defineWord accounts for a user word's storage before defining it.
func (vm *VM) defineWord(w *word) error {
	if len(w.name) > maxNameWidth {
		return nameError{errNameTooLong, w.name}
	}
	if err := vm.reserve(wordBytes + len(w.code)*instrBytes); err != nil {
		return err
	}
	vm.define(w)
	return nil
}

// lookup returns the newest word with the given name, or nil.
func (vm *VM) lookup(name string) *word {
	for w := vm.words; w != nil; w = w.next {
		if w.name == name {
			return w
		}
	}
	return nil
}

// call invokes w: natives run their function, compiled words execute their
// code, and variables push their value.
func (vm *VM) call(w *word) error {
	if w == nil {
		return errUnknownWord
	}
	vm.logf("call", "%v", w)
	switch w.kind {
	case wordPrimitive, wordStatement:
		return w.fn(vm)
	case wordCompiled:
		return vm.exec(w.code, 0)
	case wordVariable:
		if err := vm.check(0, 1); err != nil {
			return err
		}
		vm.push(w.cell)
		return nil
	}
	return fmt.Errorf("invalid word kind %v", w.kind)
}
