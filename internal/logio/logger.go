package logio

import (
	"fmt"
	"io"
	"strings"
)

// Logger writes one line per message to Output, remembering any errors so
// that a session may exit non-zero. It is not safe for concurrent use.
type Logger struct {
	Output io.Writer

	errors   int
	exitCode int
}

// ExitCode returns a code to pass to os.Exit: 1 after any error has been
// logged, 2 if a log line could not be written at all.
func (log *Logger) ExitCode() int { return log.exitCode }

// Errors returns how many errors have been logged.
func (log *Logger) Errors() int { return log.errors }

// ErrorIf logs any non-nil error through Errorf.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.Errorf("%v", err)
	}
}

// Errorf logs an "error: ..." line.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.errors++
	log.exitCode = max(log.exitCode, 1)
	log.Printf("error", mess, args...)
}

// Printf writes a line like "level: message\n"; mess is used verbatim when
// there are no args.
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	var sb strings.Builder
	if level != "" {
		sb.WriteString(level)
		sb.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&sb, mess, args...)
	} else {
		sb.WriteString(mess)
	}
	if !strings.HasSuffix(sb.String(), "\n") {
		sb.WriteByte('\n')
	}
	if log.Output == nil {
		return
	}
	if _, err := io.WriteString(log.Output, sb.String()); err != nil {
		log.exitCode = 2
	}
}
