package logger

import (
	"fmt"
	"io"
	"os"
)

// stdErr prints plain "[LEVEL] message" lines.
// It never writes to stdout: when the server runs over stdio,
// stdout carries the protocol stream.
type stdErr struct {
	print func(msg string)
}

var _ Logger = &stdErr{}

func NewStdErr() Logger {
	return NewWriter(os.Stderr)
}

func NewWriter(w io.Writer) Logger {
	return &stdErr{
		print: func(msg string) {
			_, _ = fmt.Fprintln(w, msg)
		},
	}
}

func (p *stdErr) Debugf(format string, args ...any) {
	p.print(fmt.Sprintf("[DEBUG] "+format, args...))
}

func (p *stdErr) Infof(format string, args ...any) {
	p.print(fmt.Sprintf("[INFO] "+format, args...))
}

func (p *stdErr) Warnf(format string, args ...any) {
	p.print(fmt.Sprintf("[WARN] "+format, args...))
}

func (p *stdErr) Errorf(format string, args ...any) {
	p.print(fmt.Sprintf("[ERROR] "+format, args...))
}
