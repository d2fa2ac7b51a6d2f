package logio_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jcorbin/gonf/internal/logio"
	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var out strings.Builder
	log := logio.Logger{Output: &out}

	log.Printf("", "plain")
	log.Printf("info", "hello %v", "world")
	log.Printf("info", "%d%%", 100)
	assert.Equal(t, 0, log.ExitCode())

	log.ErrorIf(nil)
	log.ErrorIf(errors.New("unknown word: foo"))
	log.Errorf("already terminated\n")

	assert.Equal(t, 1, log.ExitCode())
	assert.Equal(t, 2, log.Errors())
	assert.Equal(t, strings.Join([]string{
		"plain",
		"info: hello world",
		"info: 100%",
		"error: unknown word: foo",
		"error: already terminated",
		"",
	}, "\n"), out.String())
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("nope") }

func TestLogger_ioError(t *testing.T) {
	log := logio.Logger{Output: failWriter{}}
	log.Errorf("lost")
	assert.Equal(t, 2, log.ExitCode(), "expected write failure to escalate the exit code")
}

func TestWriter(t *testing.T) {
	var lines []string
	lw := logio.Writer{
		Prefix: "> ",
		Logf: func(mess string, args ...interface{}) {
			lines = append(lines, fmt.Sprintf(mess, args...))
		},
	}
	fmt.Fprintf(&lw, "one\ntw")
	fmt.Fprintf(&lw, "o\nthree")
	assert.Equal(t, []string{"> one", "> two"}, lines)
	lw.Flush()
	assert.Equal(t, []string{"> one", "> two", "> three"}, lines)
}
