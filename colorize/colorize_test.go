package colorize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in       string
		expected Mode
	}{
		{"", Auto},
		{"true", On},
		{"T", On},
		{"yes", On},
		{"Y", On},
		{"false", Off},
		{"F", Off},
		{"no", Off},
		{"N", Off},
		{"1", Auto},
		{"on", Auto},
		{"auto", Auto},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseMode(tt.in), "ParseMode(%q)", tt.in)
	}
}

func TestExpandPassThrough(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"",
		"plain text",
		"multi\nline\ttext",
		strings.Repeat("no tokens here ", 100),
	}

	for _, in := range inputs {
		assert.Equal(t, in, Expand(in, true))
		assert.Equal(t, in, Expand(in, false))
	}
}

func TestExpandTokens(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		in         string
		withColors bool
		expected   string
	}{
		{
			name:       "single token",
			in:         "#RED#text#RST#",
			withColors: true,
			expected:   red + "text" + reset,
		},
		{
			name:       "token mid string",
			in:         "a #BOLD#b#RST# c",
			withColors: true,
			expected:   "a " + bold + "b" + reset + " c",
		},
		{
			name:       "adjacent tokens",
			in:         "#HI_GREEN##BOLD#ok#RST#",
			withColors: true,
			expected:   hiGreen + bold + "ok" + reset,
		},
		{
			name:       "alias names",
			in:         "#STRUE#t#RST# #SFALSE#f#RST#",
			withColors: true,
			expected:   hiGreen + "t" + reset + " " + hiRed + "f" + reset,
		},
		{
			name:       "colors off elides tokens",
			in:         "#RED#text#RST#",
			withColors: false,
			expected:   "text",
		},
		{
			name:       "colors off elides unknown names too",
			in:         "x#NOTACOLOR#y",
			withColors: false,
			expected:   "xy",
		},
		{
			name:       "unknown name kept verbatim",
			in:         "cost is #42#",
			withColors: true,
			expected:   "cost is #42#",
		},
		{
			name:       "unknown then known",
			in:         "#NOTACOLOR##RED#text#RST#",
			withColors: true,
			expected:   "#NOTACOLOR#" + red + "text" + reset,
		},
		{
			name:       "empty token name",
			in:         "a##b",
			withColors: true,
			expected:   "a##b",
		},
		{
			name:       "lookup is case sensitive",
			in:         "#red#text",
			withColors: true,
			expected:   "#red#text",
		},
		{
			name:       "unterminated trailing token",
			in:         "abc#RED",
			withColors: true,
			expected:   "abc#RED",
		},
		{
			name:       "lone hash",
			in:         "100#",
			withColors: true,
			expected:   "100#",
		},
		{
			name:       "over-length name treated as unknown",
			in:         "#" + strings.Repeat("A", maxColorName+8) + "#x",
			withColors: true,
			expected:   "#" + strings.Repeat("A", maxColorName+8) + "#x",
		},
		{
			name:       "over-length name kept even with colors off",
			in:         "#" + strings.Repeat("A", maxColorName+8) + "#x",
			withColors: false,
			expected:   "#" + strings.Repeat("A", maxColorName+8) + "#x",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Expand(tt.in, tt.withColors))
		})
	}
}

func TestExpandAllNames(t *testing.T) {
	t.Parallel()
	for name, code := range colors {
		in := "#" + name + "#text#RST#"
		assert.Equal(t, code+"text"+reset, Expand(in, true), "name %s", name)
		assert.Equal(t, "text", Expand(in, false), "name %s", name)
	}
}

// A fully expanded string contains no further tokens, so a second pass
// must be the identity.
func TestExpandStability(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"plain",
		"#RED#text#RST#",
		"#NOTACOLOR##RED#text#RST#",
		"a##b",
		"abc#RED",
		strings.Repeat("#GREEN#x#RST#", 50),
	}

	for _, in := range inputs {
		once := Expand(in, true)
		assert.Equal(t, once, Expand(once, true), "input %q", in)
	}
}

// Buffer growth across many reallocations must never corrupt or drop
// bytes.
func TestExpandGrowth(t *testing.T) {
	t.Parallel()

	const reps = 1200
	in := strings.Repeat("#RED#x#RST#", reps)
	expected := strings.Repeat(red+"x"+reset, reps)
	require.Equal(t, expected, Expand(in, true))
	require.Equal(t, strings.Repeat("x", reps), Expand(in, false))

	long := strings.Repeat("y", 10*allocSize)
	require.Equal(t, long, Expand(long, true))
}

func TestBufferGrow(t *testing.T) {
	t.Parallel()

	o := buffer{b: make([]byte, allocSize)}
	for i := 0; i < 3*allocSize; i++ {
		o.grow(1)
		require.Less(t, o.n, len(o.b))
		o.b[o.n] = byte('a' + i%26)
		o.n++
	}
	assert.Equal(t, 3*allocSize, o.n)
	// Capacity always exceeds content length.
	assert.Greater(t, len(o.b), o.n)
}
