package panicerr

import "runtime/debug"

// Recover calls f, returning any panic as an *Error named by name.
func Recover(name string, f func() error) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = &Error{Name: name, Value: e, Stack: debug.Stack()}
		}
	}()
	return f()
}
