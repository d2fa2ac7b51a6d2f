package main

import (
	"fmt"
	"io"
	"strings"
)

type vmDumper struct {
	vm  *VM
	out io.Writer

	// natives lists native words by name, rather than just counting them.
	natives bool
}

func (dump vmDumper) dump() {
	snapDumper{out: dump.out, natives: dump.natives}.dump(dump.vm.snapshot())
}

type snapDumper struct {
	out     io.Writer
	natives bool
}

func (dump snapDumper) dump(snap snapshot) {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  mode: %v\n", snap.Mode)
	fmt.Fprintf(dump.out, "  stack: %v\n", snap.Stack)
	if len(snap.Pending) > 0 {
		fmt.Fprintf(dump.out, "  pending: %v\n", snap.Pending)
	}
	fmt.Fprintf(dump.out, "  mem: %v\n", snap.MemUsed)

	if len(snap.Comp) > 0 {
		fmt.Fprintf(dump.out, "# Compile Buffer\n")
		dump.dumpCode(snap.Comp)
	}

	fmt.Fprintf(dump.out, "# Dictionary\n")
	var natives []string
	for _, w := range snap.Words {
		switch w.Kind {
		case wordCompiled.String():
			fmt.Fprintf(dump.out, "  : %v\n", w.Name)
			dump.dumpCode(w.Code)
		case wordVariable.String():
			fmt.Fprintf(dump.out, "  var %v %v\n", w.Name, w.Cell)
		default:
			natives = append(natives, w.Name)
		}
	}
	if dump.natives {
		fmt.Fprintf(dump.out, "  natives: %v\n", strings.Join(natives, " "))
	} else if len(natives) > 0 {
		fmt.Fprintf(dump.out, "  (%v natives)\n", len(natives))
	}
}

func (dump snapDumper) dumpCode(code []instrRecord) {
	width := len(fmt.Sprint(len(code) - 1))
	for i, in := range code {
		fmt.Fprintf(dump.out, "  @%*d %v", width, i, in.Op)
		switch {
		case in.Word != "":
			fmt.Fprintf(dump.out, " %v", in.Word)
		case in.Op == opLiteral.String():
			fmt.Fprintf(dump.out, " %d", in.Val)
		case strings.HasPrefix(in.Op, "branch"):
			fmt.Fprintf(dump.out, " %+d", in.Val)
		}
		fmt.Fprintln(dump.out)
	}
}
