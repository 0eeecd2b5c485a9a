package value

import (
	"fmt"
	"time"
)

// Date is an ISO 8601 calendar date.
type Date struct {
	Year  int
	Month int // 1-12
	Day   int
}

// String renders d as "YYYY-MM-DD".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Equal reports whether d and o denote the same calendar date.
func (d Date) Equal(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

// Compare returns -1, 0 or 1 as d is before, equal to, or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(d.Month, o.Month)
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// Time is wall-clock time of day with millisecond precision.
type Time struct {
	Hour   int
	Minute int
	Second int
	Millis int
}

// String renders t as "HH:MM:SS.mmm" (milliseconds omitted when zero).
func (t Time) String() string {
	if t.Millis == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d", t.Hour, t.Minute, t.Second, t.Millis)
}

// Equal reports whether t and o denote the same time of day.
func (t Time) Equal(o Time) bool {
	return t.Hour == o.Hour && t.Minute == o.Minute && t.Second == o.Second && t.Millis == o.Millis
}

// Compare returns -1, 0 or 1 as t is before, equal to, or after o.
func (t Time) Compare(o Time) int {
	switch {
	case t.Hour != o.Hour:
		return cmpInt(t.Hour, o.Hour)
	case t.Minute != o.Minute:
		return cmpInt(t.Minute, o.Minute)
	case t.Second != o.Second:
		return cmpInt(t.Second, o.Second)
	default:
		return cmpInt(t.Millis, o.Millis)
	}
}

// DateTime is an instant with an explicit IANA time-zone name, e.g.
// "2021-01-01T12:00:00-05:00 New_York". The zone name is part of its
// identity: two DateTimes at the same instant but different zone names
// are not Equal.
type DateTime struct {
	Instant time.Time
	Zone    string
}

// Equal reports whether dt and o denote the same instant with the same
// zone name.
func (dt DateTime) Equal(o DateTime) bool {
	return dt.Instant.Equal(o.Instant) && dt.Zone == o.Zone
}

// Compare orders two DateTimes by instant only, ignoring zone name.
func (dt DateTime) Compare(o DateTime) int {
	switch {
	case dt.Instant.Before(o.Instant):
		return -1
	case dt.Instant.After(o.Instant):
		return 1
	default:
		return 0
	}
}

// Coordinate is a latitude/longitude pair.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Equal reports whether c and o denote the same coordinate.
func (c Coordinate) Equal(o Coordinate) bool {
	return c.Lat == o.Lat && c.Lng == o.Lng
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
