package plan

import (
	"sort"

	"studycal/internal/dates"
	"studycal/internal/model"
)

// EventsOnDate projects the ordered event list for a single date.
//
// A meeting is included when it is a one-off on exactly that date, or a
// recurring rule whose weekday matches, whose course term window contains the
// date, and whose skip-date set does not suppress it. An assignment is
// included when its due date equals the key exactly.
//
// Ordering contract: meeting events precede assignment events; meetings sort
// ascending by start time in minutes, assignments lexicographically by title;
// ties keep encounter order. The function is pure — identical input yields
// identical output — so callers may invoke it once per grid cell or memoize
// per key, purely as an optimization.
func EventsOnDate(courses []*model.Course, key dates.Key) []Event {
	if _, err := dates.ParseKey(key); err != nil {
		return nil
	}
	day := weekdayOfKey(key)

	var events []Event
	for _, c := range courses {
		if c == nil {
			continue
		}
		inTerm := c.InTerm(key)

		for _, m := range c.Meetings {
			switch m.Kind {
			case model.OneOff:
				if m.Date != key {
					continue
				}
			case model.Recurring:
				if m.Day != day || !inTerm || m.SkipDates.Has(key) {
					continue
				}
			default:
				continue
			}
			events = append(events, meetingEvent(c, m))
		}

		for _, a := range c.Assignments {
			if a.DueDate == "" || a.DueDate != key {
				continue
			}
			events = append(events, assignmentEvent(c, a))
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return eventLess(events[i], events[j])
	})
	return events
}

// EventsInRange projects each of the given dates, keyed by date. It is a
// per-cell memo for the month/week grids; correctness never depends on it.
func EventsInRange(courses []*model.Course, keys []dates.Key) map[dates.Key][]Event {
	out := make(map[dates.Key][]Event, len(keys))
	for _, k := range keys {
		if _, ok := out[k]; ok {
			continue
		}
		out[k] = EventsOnDate(courses, k)
	}
	return out
}

func eventLess(a, b Event) bool {
	aM := a.Type == EventMeeting
	bM := b.Type == EventMeeting
	if aM != bM {
		return aM
	}
	if aM {
		return startMinutes(a.Start) < startMinutes(b.Start)
	}
	return a.Title < b.Title
}

// startMinutes is forgiving on purpose: a malformed clock sorts first rather
// than breaking the projection.
func startMinutes(clock string) int {
	n, err := dates.MinutesOfDay(clock)
	if err != nil {
		return -1
	}
	return n
}

func weekdayOfKey(key dates.Key) dates.Weekday {
	t, err := dates.ParseKey(key)
	if err != nil {
		return ""
	}
	return dates.WeekdayOf(t)
}
