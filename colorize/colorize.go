// Package colorize expands inline #COLORNAME# markup in program output
// into ANSI terminal escape sequences.
package colorize

import "os"

const esc = "["

// 256-colour escape codes bound to the symbolic names used in format
// strings throughout the tool.
const (
	hiYellow = esc + "38;5;11m"
	hiGreen  = esc + "38;5;10m"
	hiRed    = esc + "38;5;9m"
	hiBlue   = esc + "38;5;33m"
	green    = esc + "38;5;40m"
	red      = esc + "38;5;160m"
	blue     = esc + "38;5;75m"
	charc    = esc + "38;5;8m"
	tang     = esc + "38;5;220m"

	bold  = esc + "1m"
	reset = esc + "0m"
)

var colors = map[string]string{
	"HI_YELLOW": hiYellow,
	"HI_GREEN":  hiGreen,
	"HI_RED":    hiRed,
	"HI_BLUE":   hiBlue,
	"GREEN":     green,
	"RED":       red,
	"BLUE":      blue,
	"CHARC":     charc,
	"TANG":      tang,

	"BOLD": bold,
	"RST":  reset,

	"MSG_INFO": hiBlue,
	"MSG_WARN": hiYellow,
	"MSG_ERR":  hiRed,

	"INFO":    blue,
	"CONFIRM": charc,
	"WARNING": hiYellow,
	"SUCCESS": hiGreen,
	"ERROR":   hiRed,

	"STRUE":  hiGreen,
	"SFALSE": hiRed,
}

func lookup(name string) (string, bool) {
	code, ok := colors[name]
	return code, ok
}

// Mode selects whether escape codes are emitted. Auto defers to whether
// the destination is a terminal; On and Off force the decision.
type Mode int

const (
	Auto Mode = iota
	On
	Off
)

// ModeEnvVar is consulted once at startup to pick the colouring mode.
const ModeEnvVar = "ITSA_COLOR"

// ParseMode maps an environment value to a Mode. The first character
// decides: t/T/y/Y forces colours on, f/F/n/N forces them off, anything
// else (including the empty string) is Auto.
func ParseMode(v string) Mode {
	if v == "" {
		return Auto
	}
	switch v[0] {
	case 't', 'T', 'y', 'Y':
		return On
	case 'f', 'F', 'n', 'N':
		return Off
	}
	return Auto
}

// ModeFromEnv resolves the colouring mode from ModeEnvVar.
func ModeFromEnv() Mode {
	return ParseMode(os.Getenv(ModeEnvVar))
}

const (
	allocSize    = 64
	maxColorName = 32
)

// buffer is a byte buffer grown manually in allocSize increments. The
// capacity always exceeds the content length so a byte can be placed at
// the write cursor before growing for the next one. Positions into the
// buffer are held as offsets, never slices of b, so they stay valid
// across growth.
type buffer struct {
	b []byte
	n int // write cursor
}

func (o *buffer) grow(extra int) {
	need := o.n + extra
	if need < len(o.b) {
		return
	}
	size := len(o.b)
	for need >= size {
		size += allocSize
	}
	nb := make([]byte, size)
	copy(nb, o.b[:o.n])
	o.b = nb
}

// Expand transforms markup of the form #NAME# into the escape code bound
// to NAME. With colours disabled every token is consumed and elided.
//
// A token whose name is not recognised is not an error: the bytes
// scanned so far stay in the output verbatim and the closing '#' is
// re-examined as the opener of a new prospective token, which resolves
// chains like #NOTACOLOR##RED#text. A token still open when the input
// ends is flushed as the literal text accumulated so far.
func Expand(s string, withColors bool) string {
	out := buffer{b: make([]byte, allocSize)}
	var name [maxColorName]byte
	nameLen := 0
	overflow := false
	inToken := false
	mark := 0 // offset of the pending token's '#'

	for i := 0; i < len(s); i++ {
		c := s[i]

		out.grow(1)
		out.b[out.n] = c // tentative; token handling may back up over it

		switch {
		case c == '#' && !inToken:
			mark = out.n
			nameLen = 0
			overflow = false
			inToken = true
		case inToken && c != '#':
			if nameLen < maxColorName {
				name[nameLen] = c
				nameLen++
			} else {
				// Too long to be a colour name; resolved as
				// unknown when the token closes.
				overflow = true
			}
		case !inToken:
			// Plain byte, already in place.
		default:
			// Closing '#'.
			inToken = false

			code := ""
			known := false
			if overflow {
				// resolved as unknown
			} else if !withColors {
				known = true // consume the token, emit nothing
			} else {
				code, known = lookup(string(name[:nameLen]))
			}

			switch {
			case known && code == "":
				// Elide the whole #NAME# span.
				out.n = mark - 1
			case known:
				out.n = mark
				out.grow(len(code))
				copy(out.b[out.n:], code)
				out.n += len(code) - 1
			default:
				// Not a colour. Keep what was written and
				// rescan this '#' as a token opener.
				i--
				out.n--
			}
		}

		out.n++
	}

	return string(out.b[:out.n])
}
