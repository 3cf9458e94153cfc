package dates

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

// Key is a calendar date in strict "YYYY-MM-DD" form, built from local
// calendar fields (not UTC). It is the index type for every per-date
// structure in the planner: projection buckets, skip-date sets, due dates.
type Key string

const keyLayout = "2006-01-02"

var errBadKey = errors.New("dates: malformed date key")

// ToKey formats t's local calendar date as a Key.
func ToKey(t time.Time) Key {
	return Key(fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day()))
}

// ParseKey parses a Key back into a local-midnight time.Time.
//
// The key must match the strict YYYY-MM-DD shape and denote a real calendar
// date; "2025-02-31" and "2025-1-5" are both rejected. Callers holding
// strings from outside the grid functions must check the error.
func ParseKey(k Key) (time.Time, error) {
	t, err := time.ParseInLocation(keyLayout, string(k), time.Local)
	if err != nil {
		return time.Time{}, errBadKey
	}
	// time.Parse normalizes out-of-range components; round-trip to catch them.
	if ToKey(t) != k {
		return time.Time{}, errBadKey
	}
	return t, nil
}

// Valid reports whether k is a well-formed date key.
func (k Key) Valid() bool {
	_, err := ParseKey(k)
	return err == nil
}

// AddDays returns t shifted by n calendar days, keeping local midnight.
func AddDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location())
}

// Midnight truncates t to local midnight.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday on or before t, at local midnight.
// A Sunday date maps to the Monday six days earlier.
func StartOfWeek(t time.Time) time.Time {
	diff := int(t.Weekday()) - int(time.Monday)
	if t.Weekday() == time.Sunday {
		diff = 6
	}
	return AddDays(Midnight(t), -diff)
}

// WeekDates returns the 7 dates of the Monday-to-Sunday week containing t.
func WeekDates(t time.Time) []time.Time {
	start := StartOfWeek(t)
	out := make([]time.Time, 7)
	for i := range out {
		out[i] = AddDays(start, i)
	}
	return out
}

// MonthGrid returns the 42 cells (6 full Monday-to-Sunday weeks) covering the
// month containing anchor. The first cell is the Monday on or before the 1st
// of that month, so leading/trailing days from adjacent months always appear.
func MonthGrid(anchor time.Time) []time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	start := StartOfWeek(first)
	out := make([]time.Time, 42)
	for i := range out {
		out[i] = AddDays(start, i)
	}
	return out
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// Weekday is one of the seven weekday tags, Monday-first.
type Weekday string

const (
	Mon Weekday = "Mon"
	Tue Weekday = "Tue"
	Wed Weekday = "Wed"
	Thu Weekday = "Thu"
	Fri Weekday = "Fri"
	Sat Weekday = "Sat"
	Sun Weekday = "Sun"
)

// Weekdays lists the tags in Monday-first calendar order.
var Weekdays = []Weekday{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

var timeToTag = map[time.Weekday]Weekday{
	time.Monday:    Mon,
	time.Tuesday:   Tue,
	time.Wednesday: Wed,
	time.Thursday:  Thu,
	time.Friday:    Fri,
	time.Saturday:  Sat,
	time.Sunday:    Sun,
}

var tagToTime = map[Weekday]time.Weekday{
	Mon: time.Monday,
	Tue: time.Tuesday,
	Wed: time.Wednesday,
	Thu: time.Thursday,
	Fri: time.Friday,
	Sat: time.Saturday,
	Sun: time.Sunday,
}

// WeekdayOf returns the tag for t's local calendar weekday.
func WeekdayOf(t time.Time) Weekday {
	return timeToTag[t.Weekday()]
}

// Valid reports whether w is one of the seven tags.
func (w Weekday) Valid() bool {
	_, ok := tagToTime[w]
	return ok
}

// Time converts the tag to the stdlib weekday.
func (w Weekday) Time() time.Weekday {
	return tagToTime[w]
}

// MinutesOfDay parses an "HH:MM" clock string into minutes since midnight.
func MinutesOfDay(clock string) (int, error) {
	if len(clock) != 5 || clock[2] != ':' {
		return 0, fmt.Errorf("dates: bad clock %q", clock)
	}
	digits := [4]int{}
	for i, pos := range [4]int{0, 1, 3, 4} {
		c := clock[pos]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("dates: bad clock %q", clock)
		}
		digits[i] = int(c - '0')
	}
	h := digits[0]*10 + digits[1]
	m := digits[2]*10 + digits[3]
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("dates: bad clock %q", clock)
	}
	return h*60 + m, nil
}

// ValidClock reports whether clock is a well-formed "HH:MM" string.
func ValidClock(clock string) bool {
	_, err := MinutesOfDay(clock)
	return err == nil
}

// KeySet is a set of date keys with sorted-array JSON encoding. The planner
// uses it for per-meeting skip dates.
type KeySet map[Key]struct{}

// NewKeySet builds a set from the given keys.
func NewKeySet(keys ...Key) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s KeySet) Has(k Key) bool {
	_, ok := s[k]
	return ok
}

// With returns a copy of s that also contains k. The receiver is never
// mutated; adding an already-present key returns an equal copy.
func (s KeySet) With(k Key) KeySet {
	out := make(KeySet, len(s)+1)
	for key := range s {
		out[key] = struct{}{}
	}
	out[k] = struct{}{}
	return out
}

// Sorted returns the members in ascending order.
func (s KeySet) Sorted() []Key {
	out := make([]Key, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MarshalJSON encodes the set as a sorted JSON array of keys.
func (s KeySet) MarshalJSON() ([]byte, error) {
	keys := s.Sorted()
	buf := make([]byte, 0, len(keys)*13+2)
	buf = append(buf, '[')
	for i, k := range keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, '"')
		buf = append(buf, k...)
		buf = append(buf, '"')
	}
	return append(buf, ']'), nil
}

// UnmarshalJSON decodes a JSON array of keys into the set.
func (s *KeySet) UnmarshalJSON(data []byte) error {
	var keys []Key
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*s = NewKeySet(keys...)
	return nil
}
