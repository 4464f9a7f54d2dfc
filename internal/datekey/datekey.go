// Package datekey holds the calendar-day identifier used for habit completions.
package datekey

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the canonical day format, zero padded.
const Layout = "2006-01-02"

var ErrInvalidDateKey = errors.New("invalid date key")

// DateKey is a calendar day in the YYYY-MM-DD form.
// Canonical keys sort lexicographically in chronological order.
type DateKey string

// FromTime returns the day of t, as seen in t's own location.
func FromTime(t time.Time) DateKey {
	return DateKey(t.Format(Layout))
}

// Parse accepts only the canonical form, so "2024-1-5" is rejected.
func Parse(s string) (DateKey, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	if t.Format(Layout) != s {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	return DateKey(s), nil
}

func (d DateKey) IsValid() bool {
	_, err := Parse(string(d))
	return err == nil
}

func (d DateKey) String() string {
	return string(d)
}

// Time returns midnight UTC of the day. Invalid keys yield the zero time.
func (d DateKey) Time() time.Time {
	t, err := time.Parse(Layout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays moves by whole calendar days; n may be negative.
func (d DateKey) AddDays(n int) DateKey {
	return FromTime(d.Time().AddDate(0, 0, n))
}

func (d DateKey) Prev() DateKey {
	return d.AddDays(-1)
}

// DayName is the three letter English weekday, e.g. "Mon".
func (d DateKey) DayName() string {
	return d.Time().Weekday().String()[:3]
}

// Window returns the n consecutive days ending at end, oldest first.
func Window(end DateKey, n int) []DateKey {
	if n <= 0 {
		return nil
	}
	days := make([]DateKey, n)
	for i := 0; i < n; i++ {
		days[i] = end.AddDays(i - (n - 1))
	}
	return days
}
