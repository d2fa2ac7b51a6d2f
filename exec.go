package main

import (
	"fmt"
	"strconv"
)

type opcode int

// opReturn is zero, so that a zeroed instruction terminates execution.
const (
	opReturn opcode = iota
	opCall
	opLiteral
	opBranch
	opBranchIf
	opBranchUnless
)

var opNames = [...]string{
	opReturn:       "return",
	opCall:         "call",
	opLiteral:      "lit",
	opBranch:       "branch",
	opBranchIf:     "branch_if",
	opBranchUnless: "branch_unless",
}

func (op opcode) String() string {
	if op >= 0 && int(op) < len(opNames) {
		return opNames[op]
	}
	return "op" + strconv.Itoa(int(op))
}

// instr is a single compiled instruction. Branch offsets in val are relative
// to the branch instruction itself.
type instr struct {
	op   opcode
	val  int
	word *word
}

func (in instr) String() string {
	switch in.op {
	case opReturn:
		return in.op.String()
	case opCall:
		if in.word != nil {
			return fmt.Sprintf("%v %v", in.op, in.word.name)
		}
	case opLiteral:
		return fmt.Sprintf("%v %d", in.op, in.val)
	case opBranch, opBranchIf, opBranchUnless:
		return fmt.Sprintf("%v %+d", in.op, in.val)
	}
	return fmt.Sprintf("%v %d", in.op, in.val)
}

// exec runs code from the given index until a return instruction, or the
// first error. The prior machine mode is restored however exec ends.
// Runs may nest at most maxExecDepth deep.
func (vm *VM) exec(code []instr, at int) error {
	if vm.depth >= maxExecDepth {
		return errExecDepth
	}
	defer vm.withMode(modeExecute)()
	defer vm.nest()()

	for ip := at; ; {
		if ip < 0 || ip >= len(code) {
			return progError(ip)
		}
		in := code[ip]
		vm.logf("exec", "@%v %v -- %v", ip, in, vm.stack)

		switch in.op {
		case opReturn:
			return nil

		case opCall:
			if err := vm.call(in.word); err != nil {
				return err
			}
			ip++

		case opLiteral:
			if err := vm.check(0, 1); err != nil {
				return err
			}
			vm.push(in.val)
			ip++

		case opBranch:
			ip += in.val

		case opBranchIf, opBranchUnless:
			if err := vm.check(1, 0); err != nil {
				return err
			}
			if (vm.pop() != 0) == (in.op == opBranchIf) {
				ip += in.val
			} else {
				ip++
			}

		default:
			return opcodeError(in)
		}
	}
}
