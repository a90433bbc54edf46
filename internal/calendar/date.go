// Package calendar provides local calendar days and week arithmetic.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// KeyLayout is the layout of a day key.
const KeyLayout = "2006-01-02"

// zonedLayouts carry an explicit offset; the instant is converted to local time.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// localLayouts carry no zone and are read as local wall-clock time.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	KeyLayout,
}

// Date is a local calendar day with no time-of-day component.
// The zero Date is not a valid day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the Date for year, month and day, normalizing overflow the way
// time.Date does (January 32 becomes February 1).
func New(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// FromTime returns the calendar day of t as observed in the local timezone.
func FromTime(t time.Time) Date {
	y, m, d := t.In(time.Local).Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current local calendar day.
func Today() Date {
	return FromTime(time.Now())
}

// ParseKey parses a YYYY-MM-DD key.
func ParseKey(key string) (Date, bool) {
	t, err := time.Parse(KeyLayout, strings.TrimSpace(key))
	if err != nil {
		return Date{}, false
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, true
}

// ParseTime resolves a date-like value to a local instant. Supported inputs
// are Date, time.Time, *time.Time, strings in RFC 3339 or zone-less
// YYYY-MM-DD[ T]HH:MM[:SS] / YYYY-MM-DD form, and int64/int Unix milliseconds.
// Zone-less strings are read in local time.
func ParseTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case Date:
		if val.IsZero() {
			return time.Time{}, false
		}
		return val.Time(), true
	case *Date:
		if val == nil {
			return time.Time{}, false
		}
		return ParseTime(*val)
	case time.Time:
		if val.IsZero() {
			return time.Time{}, false
		}
		return val.In(time.Local), true
	case *time.Time:
		if val == nil {
			return time.Time{}, false
		}
		return ParseTime(*val)
	case string:
		return parseString(val)
	case int64:
		return time.UnixMilli(val).In(time.Local), true
	case int:
		return time.UnixMilli(int64(val)).In(time.Local), true
	default:
		return time.Time{}, false
	}
}

// Normalize canonicalizes a date-like value to its local calendar day.
// It reports false when v cannot be read as a date.
func Normalize(v any) (Date, bool) {
	t, ok := ParseTime(v)
	if !ok {
		return Date{}, false
	}
	return FromTime(t), true
}

func parseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(time.Local), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Key returns the stable YYYY-MM-DD form of d.
func (d Date) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return d.Key()
}

// Time returns local midnight of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

// Format formats local midnight of d with a time layout.
func (d Date) Format(layout string) string {
	return d.Time().Format(layout)
}

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return New(d.Year, d.Month, d.Day+n)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Weekday()
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

// Before reports whether d is before other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// After reports whether d is after other.
func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

// SameMonth reports whether d and other fall in the same year and month.
func (d Date) SameMonth(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, ok := ParseKey(string(text))
	if !ok {
		return fmt.Errorf("invalid day key %q (expected YYYY-MM-DD)", string(text))
	}
	*d = parsed
	return nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
