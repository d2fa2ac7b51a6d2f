package logio

import "bytes"

// Writer adapts a printf-style logging function, like testing.T.Logf, into
// an io.Writer: every complete line written becomes one Logf call.
type Writer struct {
	Logf   func(string, ...interface{})
	Prefix string

	partial []byte
}

func (lw *Writer) Write(p []byte) (int, error) {
	n := len(p)
	for i := bytes.IndexByte(p, '\n'); i >= 0; i = bytes.IndexByte(p, '\n') {
		lw.emit(p[:i])
		p = p[i+1:]
	}
	lw.partial = append(lw.partial, p...)
	return n, nil
}

// Flush logs any partial last line.
func (lw *Writer) Flush() error {
	if len(lw.partial) > 0 {
		lw.emit(nil)
	}
	return nil
}

// Close calls Flush.
func (lw *Writer) Close() error { return lw.Flush() }

func (lw *Writer) emit(line []byte) {
	if len(lw.partial) > 0 {
		line = append(lw.partial, line...)
		lw.partial = lw.partial[:0]
	}
	lw.Logf("%s%s", lw.Prefix, line)
}
