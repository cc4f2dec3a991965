package utils

import (
	"fmt"
	"time"
)

// SlotLayout is the format of slot starts and of naive booking datetimes.
const SlotLayout = "2006-01-02T15:04:05"

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDateTime parses an ISO-8601 date-time. Values carrying a trailing Z or
// an explicit offset come back with aware=true; bare values are interpreted
// in server local time, matching how "now" is evaluated against them.
func ParseDateTime(s string) (t time.Time, aware bool, err error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, false, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("invalid datetime %q", s)
}

// ParseDate accepts a date or a full date-time and returns the date component
// as local midnight. Offset-aware inputs keep their wall-clock date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	t, _, err := ParseDateTime(s)
	if err != nil {
		return time.Time{}, err
	}
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local), nil
}

// SameDate reports whether two moments share a calendar date, each read in
// its own location.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
