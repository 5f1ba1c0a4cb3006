// Package tax holds UK tax-year arithmetic and obligation status
// helpers shared by the commands.
package tax

import (
	"fmt"
	"os"
	"time"
)

// DateFormat is the YYYY-MM-DD form used by the MTD API.
const DateFormat = "2006-01-02"

// ParseDate parses an API date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.Local)
}

// Now returns the current time, unless ITSA_SET_DATE (YYYY-MM-DD) is set
// to pin "today" for working against known periods.
func Now() time.Time {
	d := os.Getenv("ITSA_SET_DATE")
	if d == "" {
		return time.Now()
	}

	t, err := ParseDate(d)
	if err != nil {
		return time.Now()
	}
	return t
}

// Year returns the UK tax year containing t, e.g. "2021-22". Tax years
// run from the 6th of April to the following 5th of April.
func Year(t time.Time) string {
	y := t.Year()
	if t.Month() < time.April ||
		(t.Month() == time.April && t.Day() <= 5) {
		return fmt.Sprintf("%d-%02d", y-1, y%100)
	}
	return fmt.Sprintf("%d-%02d", y, (y+1)%100)
}

// PeriodColor returns the markup token for an obligation's status at
// time now: fulfilled and past due is green, ended but still within the
// due date is tangerine, currently open is uncoloured, missed is red and
// anything else (a future period) is charcoal.
//
// end and due are treated as running until 23:59:59 on the day in
// question.
func PeriodColor(start, end, due time.Time, met bool, now time.Time) string {
	endOfDay := 24*time.Hour - time.Second
	et := end.Add(endOfDay)
	dt := due.Add(endOfDay)

	switch {
	case met && now.After(dt):
		return "#GREEN#"
	case now.After(et) && !now.After(dt):
		return "#TANG#"
	case !now.Before(start) && !now.After(et):
		return ""
	case !met && now.After(dt):
		return "#RED#"
	}

	return "#CHARC#"
}

// FormatBool renders a boolean as a coloured single letter, t or f.
func FormatBool(b bool) string {
	if b {
		return "#STRUE#t#RST#"
	}
	return "#SFALSE#f#RST#"
}
