package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"studycal/internal/dates"
)

// AssignmentStatus is the tracking state of an assignment.
type AssignmentStatus string

const (
	StatusNotStarted AssignmentStatus = "not-started"
	StatusInProgress AssignmentStatus = "in-progress"
	StatusDone       AssignmentStatus = "done"
)

// Valid reports whether s is one of the three known statuses.
func (s AssignmentStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// DefaultColor is applied to courses without an explicit color.
const DefaultColor = "#3B82F6"

// Course owns its meetings and assignments; nothing else holds a copy.
// The planner engine reads identity/color/term fields and writes back into
// Meetings and Assignments through copy-on-write snapshots.
type Course struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`

	// Term window. Recurring meetings are only active within
	// [TermStart, TermEnd]; an empty bound is unbounded on that side.
	Term      string    `json:"term,omitempty"`
	TermStart dates.Key `json:"termStart,omitempty"`
	TermEnd   dates.Key `json:"termEnd,omitempty"`

	WeeklyGoalMinutes    int `json:"weeklyGoalMinutes,omitempty"`
	StudyMinutesThisWeek int `json:"studyMinutesThisWeek,omitempty"`

	Meetings    []Meeting    `json:"meetings,omitempty"`
	Assignments []Assignment `json:"assignments,omitempty"`
}

// MeetingKind discriminates the two meeting variants.
type MeetingKind string

const (
	// OneOff meetings carry an explicit Date and no weekday or skip dates.
	OneOff MeetingKind = "one-off"
	// Recurring meetings carry a weekday tag and a skip-date set; they never
	// carry an explicit Date. A recurring record never becomes one-off (or
	// the reverse): moving a single occurrence spawns a sibling OneOff.
	Recurring MeetingKind = "recurring"
)

// Meeting is a single schedule record: either a weekly rule for one weekday
// or a one-off occurrence on an explicit date. Records created together by
// one "repeat weekly" action share a SeriesID, one record per weekday.
type Meeting struct {
	ID       string
	SeriesID string // recurring only; empty for one-offs

	Kind MeetingKind

	Date      dates.Key     // one-off only
	Day       dates.Weekday // recurring only
	SkipDates dates.KeySet  // recurring only; dates where this rule is suppressed

	Start    string // "HH:MM"
	End      string // "HH:MM"
	Location string
}

// meetingJSON is the wire/fixture shape of a Meeting: a single record with
// optional day/date fields, as the original data files store it.
type meetingJSON struct {
	ID        string        `json:"id"`
	SeriesID  string        `json:"seriesId,omitempty"`
	Day       dates.Weekday `json:"day,omitempty"`
	Date      dates.Key     `json:"date,omitempty"`
	Start     string        `json:"start"`
	End       string        `json:"end"`
	Location  string        `json:"location,omitempty"`
	SkipDates dates.KeySet  `json:"skipDates,omitempty"`
}

// MarshalJSON encodes the meeting in fixture shape, emitting only the fields
// meaningful for its kind.
func (m Meeting) MarshalJSON() ([]byte, error) {
	out := meetingJSON{
		ID:       m.ID,
		Start:    m.Start,
		End:      m.End,
		Location: m.Location,
	}
	switch m.Kind {
	case OneOff:
		out.Date = m.Date
	case Recurring:
		out.SeriesID = m.SeriesID
		out.Day = m.Day
		out.SkipDates = m.SkipDates
	default:
		return nil, fmt.Errorf("model: meeting %s has unknown kind %q", m.ID, m.Kind)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes fixture shape into the tagged variant. A record with
// an explicit date is a one-off regardless of any weekday field; a record
// with only a weekday is recurring; a record with neither is rejected.
func (m *Meeting) UnmarshalJSON(data []byte) error {
	var in meetingJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.ID == "" {
		return errors.New("model: meeting without id")
	}
	out := Meeting{
		ID:       in.ID,
		Start:    in.Start,
		End:      in.End,
		Location: in.Location,
	}
	switch {
	case in.Date != "":
		if !in.Date.Valid() {
			return fmt.Errorf("model: meeting %s has malformed date %q", in.ID, in.Date)
		}
		out.Kind = OneOff
		out.Date = in.Date
	case in.Day != "":
		if !in.Day.Valid() {
			return fmt.Errorf("model: meeting %s has unknown weekday %q", in.ID, in.Day)
		}
		for k := range in.SkipDates {
			if !k.Valid() {
				return fmt.Errorf("model: meeting %s has malformed skip date %q", in.ID, k)
			}
		}
		out.Kind = Recurring
		out.SeriesID = in.SeriesID
		out.Day = in.Day
		out.SkipDates = in.SkipDates
		if out.SkipDates == nil {
			out.SkipDates = dates.KeySet{}
		}
	default:
		return fmt.Errorf("model: meeting %s has neither date nor day", in.ID)
	}
	*m = out
	return nil
}

// Clone returns a deep copy of the meeting (the skip-date set included).
func (m Meeting) Clone() Meeting {
	out := m
	if m.SkipDates != nil {
		out.SkipDates = make(dates.KeySet, len(m.SkipDates))
		for k := range m.SkipDates {
			out.SkipDates[k] = struct{}{}
		}
	}
	return out
}

// Assignment is a dated piece of work with effort tracking. MinutesCompleted
// stays within [0, EstimatedMinutes] on direct edits; due-date moves never
// touch the effort fields.
type Assignment struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	DueDate          dates.Key        `json:"dueDate"`
	Status           AssignmentStatus `json:"status"`
	Notes            string           `json:"notes,omitempty"`
	EstimatedMinutes int              `json:"estimatedMinutes"`
	MinutesCompleted int              `json:"minutesCompleted"`
}

// InTerm reports whether the date key falls within the course's term window.
// A missing bound is unbounded on that side. Keys compare lexicographically,
// which for the strict YYYY-MM-DD shape is date order.
func (c *Course) InTerm(k dates.Key) bool {
	if c.TermStart != "" && k < c.TermStart {
		return false
	}
	if c.TermEnd != "" && k > c.TermEnd {
		return false
	}
	return true
}

// ColorOrDefault returns the course color, falling back to DefaultColor.
func (c *Course) ColorOrDefault() string {
	if c.Color == "" {
		return DefaultColor
	}
	return c.Color
}

// User is the authenticated account: whatever Google's ID token tells us,
// keyed on the Google subject.
type User struct {
	GoogleID  string `json:"googleId" db:"google_id"`
	Email     string `json:"email" db:"email"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Picture   string `json:"picture,omitempty" db:"picture"`
	CreatedAt int64  `json:"createdAt" db:"created_at"` // unix seconds
}
