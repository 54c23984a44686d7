package dataset

import (
	"fmt"
	"time"
)

// Date layouts used by the scrobble files and the UI.
const (
	dateTimeLayout  = "2006-01-02 15:04:05"
	timeLabelLayout = "Jan 02 15:04"
	dateLength      = len("2006-01-02")
)

// ParseDateTime converts a "YYYY-MM-DD HH:MM:SS" string to unix milliseconds.
func ParseDateTime(s string, loc *time.Location) (int64, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(dateTimeLayout, s, loc)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t.UnixMilli(), nil
}

// DatePart returns the "YYYY-MM-DD" prefix of a date-time string.
func DatePart(s string) string {
	if len(s) < dateLength {
		return s
	}
	return s[:dateLength]
}

// FormatTimeLabel renders a timestamp the way time-axis labels show it,
// e.g. "Mar 07 09:05".
func FormatTimeLabel(ts int64, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(ts).In(loc).Format(timeLabelLayout)
}
