package main

import (
	"io"

	"github.com/jcorbin/gonf/internal/flushio"
	"github.com/jcorbin/gonf/internal/logio"
)

// LineSource supplies source text one line at a time, returning io.EOF once
// exhausted.
type LineSource interface {
	ReadLine() (string, error)
}

type ioCore struct {
	in     LineSource
	initIn LineSource
	out    *flushio.ColumnWriter
	log    logio.Logger

	prompt         string
	continuePrompt string
}

func (ioc *ioCore) Close() (err error) {
	if ioc.out != nil {
		err = ioc.out.Flush()
	}
	for _, src := range []LineSource{ioc.initIn, ioc.in} {
		if cl, ok := src.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	return err
}

func (ioc *ioCore) setOutput(wf flushio.WriteFlusher) {
	if ioc.out != nil {
		ioc.out.Flush()
	}
	ioc.out = flushio.NewColumnWriter(wf)
	ioc.log.Output = ioc.out
}

func (ioc *ioCore) write(p []byte) error {
	_, err := ioc.out.Write(p)
	return err
}

func (ioc *ioCore) writeString(s string) error {
	_, err := io.WriteString(ioc.out, s)
	return err
}
