package flushio

import "bytes"

// ColumnWriter tracks how many bytes have been written since the last line
// feed, so that callers may start a fresh line only when needed.
type ColumnWriter struct {
	WriteFlusher
	col int
}

// NewColumnWriter wraps wf, starting at column 0.
func NewColumnWriter(wf WriteFlusher) *ColumnWriter {
	return &ColumnWriter{WriteFlusher: wf}
}

func (cw *ColumnWriter) Write(p []byte) (int, error) {
	n, err := cw.WriteFlusher.Write(p)
	if i := bytes.LastIndexByte(p[:n], '\n'); i >= 0 {
		cw.col = n - i - 1
	} else {
		cw.col += n
	}
	return n, err
}

// Column returns the number of bytes written since the last line feed.
func (cw *ColumnWriter) Column() int { return cw.col }

// FreshLine writes a line feed unless already at column 0.
func (cw *ColumnWriter) FreshLine() error {
	if cw.col == 0 {
		return nil
	}
	_, err := cw.Write([]byte{'\n'})
	return err
}
