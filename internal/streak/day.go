// Package streak turns raw GitHub activity into contribution-streak
// statistics: a day-by-day contribution map, the currently active streak,
// and the longest streak on record.
//
// Everything here is pure computation over in-memory data. Fetching events,
// rendering cards, and persistence all live elsewhere — this package never
// performs I/O.
package streak

import (
	"fmt"
	"time"
)

// dayLayout is the canonical YYYY-MM-DD form used for parsing and display.
const dayLayout = "2006-01-02"

// Day is a calendar date with no time-of-day component. The zero value is
// invalid; construct via NewDay, ParseDay, or LocalDay. Day is comparable
// and usable as a map key.
type Day struct {
	Year  int
	Month time.Month
	Dom   int
}

// NewDay builds a Day from its components.
func NewDay(year int, month time.Month, dom int) Day {
	return Day{Year: year, Month: month, Dom: dom}
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("parsing day %q: %w", s, err)
	}
	return dayOf(t), nil
}

// LocalDay returns the calendar date of t as observed at a fixed UTC offset
// given in whole hours. A push at 23:30 UTC lands on the next day at +2.
func LocalDay(t time.Time, offsetHours int) Day {
	zone := time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*3600)
	return dayOf(t.In(zone))
}

func dayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Dom: d}
}

// time converts d to a time.Time at midnight UTC, which makes calendar
// arithmetic exact regardless of the offset the day was bucketed under.
func (d Day) time() time.Time {
	return time.Date(d.Year, d.Month, d.Dom, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the day n calendar days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return dayOf(d.time().AddDate(0, 0, n))
}

// Sub returns the number of calendar days from other to d. The result is
// negative when d is earlier than other.
func (d Day) Sub(other Day) int {
	return int(d.time().Sub(other.time()).Hours() / 24)
}

// Before reports whether d is earlier than other.
func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Dom < other.Dom
}

// String renders d as YYYY-MM-DD.
func (d Day) String() string {
	return d.time().Format(dayLayout)
}
