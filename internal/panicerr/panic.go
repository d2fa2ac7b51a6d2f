package panicerr

import "fmt"

// Error is a recovered panic value, along with the stack of the goroutine
// that panicked.
type Error struct {
	Name  string
	Value interface{}
	Stack []byte
}

func (pe *Error) Error() string {
	if pe.Name == "" {
		return fmt.Sprint(pe.Value)
	}
	return fmt.Sprintf("%v: %v", pe.Name, pe.Value)
}

// Format adds the panic stack under "%+v".
func (pe *Error) Format(f fmt.State, c rune) {
	fmt.Fprint(f, pe.Error())
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\nPanic stack: %s", pe.Stack)
	}
}

// Unwrap returns the panic value if it was an error, like a runtime.Error.
func (pe *Error) Unwrap() error {
	err, _ := pe.Value.(error)
	return err
}
