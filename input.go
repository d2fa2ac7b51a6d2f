package main

import (
	"io"
	"os"

	"golang.org/x/term"
)

// termInput reads lines from an interactive terminal with line editing,
// prompting before each one. Output written through it gets the terminal's
// line ending translation.
type termInput struct {
	*term.Terminal
	fd     int
	state  *term.State
	prompt func() string
}

func isTerminal(f *os.File) bool { return term.IsTerminal(int(f.Fd())) }

// newTermInput puts in into raw mode until Close.
func newTermInput(in, out *os.File) (*termInput, error) {
	fd := int(in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{in, out}, "")
	if width, height, err := term.GetSize(fd); err == nil {
		t.SetSize(width, height)
	}
	return &termInput{Terminal: t, fd: fd, state: state}, nil
}

func (ti *termInput) ReadLine() (string, error) {
	if ti.prompt != nil {
		ti.SetPrompt(ti.prompt())
	}
	return ti.Terminal.ReadLine()
}

func (ti *termInput) Close() error { return term.Restore(ti.fd, ti.state) }
