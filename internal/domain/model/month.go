package model

import (
	"fmt"
	"time"
)

// Month is a calendar month in UTC. Snapshots are keyed by Month.
type Month struct {
	Year int
	Mon  time.Month
}

// MonthOf returns the calendar month containing t (UTC).
func MonthOf(t time.Time) Month {
	u := t.UTC()
	return Month{Year: u.Year(), Mon: u.Month()}
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	if m.Mon == time.December {
		return Month{Year: m.Year + 1, Mon: time.January}
	}
	return Month{Year: m.Year, Mon: m.Mon + 1}
}

// Before reports whether m precedes other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Mon < other.Mon
}

// Start returns the first instant of the month.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Mon, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the end-of-month instant (the first instant of the
// following month).
func (m Month) End() time.Time {
	n := m.Next()
	return time.Date(n.Year, n.Mon, 1, 0, 0, 0, 0, time.UTC)
}

// String renders the month as "2025-07".
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Mon))
}
