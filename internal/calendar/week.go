package calendar

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// StartOfWeek returns the Sunday at or before d.
func StartOfWeek(d Date) Date {
	return d.AddDays(-int(d.Weekday()))
}

// EndOfWeek returns the Saturday of the week containing d.
// Range filters over timestamps must use EndOfWeek(d).AddDays(1) as an
// exclusive bound.
func EndOfWeek(d Date) Date {
	return StartOfWeek(d).AddDays(6)
}

// FirstOfMonth returns the first day of d's month.
func FirstOfMonth(d Date) Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// LastOfMonth returns the last day of d's month.
func LastOfMonth(d Date) Date {
	return New(d.Year, d.Month+1, 0)
}

// AddMonths returns the first day of the month n months away from d.
func AddMonths(d Date, n int) Date {
	return New(d.Year, d.Month+time.Month(n), 1)
}

// DaySet is a set of calendar days.
type DaySet map[Date]struct{}

// NewDaySet returns a set holding days.
func NewDaySet(days ...Date) DaySet {
	set := make(DaySet, len(days))
	for _, d := range days {
		set.Add(d)
	}
	return set
}

// Add inserts d.
func (s DaySet) Add(d Date) {
	s[d] = struct{}{}
}

// Has reports whether d is in the set. A nil set has no days.
func (s DaySet) Has(d Date) bool {
	_, ok := s[d]
	return ok
}

// Len returns the number of days in the set.
func (s DaySet) Len() int {
	return len(s)
}

// Sorted returns the days in ascending order.
func (s DaySet) Sorted() []Date {
	out := make([]Date, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Before(out[j])
	})
	return out
}

// Keys returns the ascending YYYY-MM-DD keys of the set.
func (s DaySet) Keys() []string {
	days := s.Sorted()
	keys := make([]string, len(days))
	for i, d := range days {
		keys[i] = d.Key()
	}
	return keys
}

// MarshalJSON encodes the set as an ascending array of day keys.
func (s DaySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Keys())
}

// UnmarshalJSON decodes an array of day keys.
func (s *DaySet) UnmarshalJSON(data []byte) error {
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	set := make(DaySet, len(keys))
	for _, key := range keys {
		d, ok := ParseKey(key)
		if !ok {
			return fmt.Errorf("invalid day key %q (expected YYYY-MM-DD)", key)
		}
		set.Add(d)
	}
	*s = set
	return nil
}
