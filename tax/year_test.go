package tax

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestYear(t *testing.T) {
	t.Parallel()
	tests := []struct {
		date     string
		expected string
	}{
		{"2021-04-05", "2020-21"}, // last day of the old year
		{"2021-04-06", "2021-22"}, // first day of the new year
		{"2021-01-01", "2020-21"},
		{"2021-12-31", "2021-22"},
		{"2022-03-15", "2021-22"},
		{"2000-04-06", "2000-01"},
		{"1999-04-05", "1998-99"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Year(date(t, tt.date)), "date %s", tt.date)
	}
}

func TestNowPinned(t *testing.T) {
	t.Setenv("ITSA_SET_DATE", "2021-07-14")
	assert.Equal(t, date(t, "2021-07-14"), Now())

	t.Setenv("ITSA_SET_DATE", "not-a-date")
	assert.WithinDuration(t, time.Now(), Now(), time.Minute)
}

func TestPeriodColor(t *testing.T) {
	t.Parallel()

	start := "2021-04-06"
	end := "2021-07-05"
	due := "2021-08-05"

	tests := []struct {
		name     string
		now      string
		met      bool
		expected string
	}{
		{"fulfilled and past due", "2021-09-01", true, "#GREEN#"},
		{"ended, inside due window", "2021-07-20", false, "#TANG#"},
		{"due date itself still counts", "2021-08-05", false, "#TANG#"},
		{"currently open", "2021-05-01", false, ""},
		{"open on the start day", "2021-04-06", false, ""},
		{"open on the end day", "2021-07-05", false, ""},
		{"missed", "2021-09-01", false, "#RED#"},
		{"future period", "2021-01-01", false, "#CHARC#"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := PeriodColor(date(t, start), date(t, end), date(t, due),
				tt.met, date(t, tt.now))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatBool(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "#STRUE#t#RST#", FormatBool(true))
	assert.Equal(t, "#SFALSE#f#RST#", FormatBool(false))
}
