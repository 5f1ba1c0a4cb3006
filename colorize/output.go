package colorize

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// MsgType classifies a message so it can be given a canned, coloured
// [TAG] prefix.
type MsgType int

const (
	MsgError MsgType = iota
	MsgWarning
	MsgInfo
	MsgConfirm
	MsgSuccess
)

func (t MsgType) prefix() string {
	switch t {
	case MsgError:
		return "[#ERROR#ERROR#RST#] "
	case MsgWarning:
		return "[#WARNING#WARNING#RST#] "
	case MsgInfo:
		return "[#INFO#INFO#RST#] "
	case MsgConfirm:
		return "[#CONFIRM#CONFIRMATION#RST#] "
	case MsgSuccess:
		return "[#SUCCESS#OK#RST#] "
	}
	return ""
}

// Printer writes markup-expanded text to a destination. The colour
// decision is made once at construction and the Printer is read-only
// afterwards.
type Printer struct {
	w      io.Writer
	colors bool
}

// NewPrinter binds a Printer to w. Auto resolves to colours on only
// when w is a terminal.
func NewPrinter(w io.Writer, mode Mode) *Printer {
	p := &Printer{w: w}

	switch mode {
	case On:
		p.colors = true
	case Off:
	default:
		if f, ok := w.(*os.File); ok {
			p.colors = isatty.IsTerminal(f.Fd()) ||
				isatty.IsCygwinTerminal(f.Fd())
		}
	}

	return p
}

// Colors reports whether this Printer emits escape codes.
func (p *Printer) Colors() bool {
	return p.colors
}

// Printf materialises the format string, expands any #NAME# markup
// (including markup brought in by substituted arguments) and writes the
// result in a single write.
func (p *Printer) Printf(format string, a ...any) {
	io.WriteString(p.w, Expand(fmt.Sprintf(format, a...), p.colors))
}

// Msgf is Printf with the canned prefix for t prepended to the format
// string before expansion.
func (p *Printer) Msgf(t MsgType, format string, a ...any) {
	p.Printf(t.prefix()+format, a...)
}

func (p *Printer) Errorf(format string, a ...any)   { p.Msgf(MsgError, format, a...) }
func (p *Printer) Warnf(format string, a ...any)    { p.Msgf(MsgWarning, format, a...) }
func (p *Printer) Infof(format string, a ...any)    { p.Msgf(MsgInfo, format, a...) }
func (p *Printer) Confirmf(format string, a ...any) { p.Msgf(MsgConfirm, format, a...) }
func (p *Printer) Successf(format string, a ...any) { p.Msgf(MsgSuccess, format, a...) }
