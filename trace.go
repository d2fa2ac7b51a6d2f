package main

import (
	"fmt"
	"strings"
)

// tracer emits trace lines through an optional logging function, each under
// a short mark like "exec" or "comp". Lines from nested executor runs are
// indented.
type tracer struct {
	logfn func(mess string, args ...interface{})

	depth     int
	markWidth int
}

// nest indents trace lines one level deeper until the returned function is
// called.
func (tr *tracer) nest() func() {
	tr.depth++
	return func() { tr.depth-- }
}

func (tr *tracer) logf(mark, mess string, args ...interface{}) {
	if tr.logfn == nil {
		return
	}
	if len(mark) > tr.markWidth {
		tr.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	tr.logfn("%*s %s%s", tr.markWidth, mark, strings.Repeat("\t", tr.depth), mess)
}
