package plan

import (
	"strings"

	"github.com/google/uuid"

	"studycal/internal/dates"
	"studycal/internal/model"
)

// ValidationError is a user-correctable input problem. The snapshot is left
// untouched whenever one is returned; the message is meant for inline
// display next to the offending form.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErr(msg string) error { return &ValidationError{Msg: msg} }

// Mutation operations take the current course snapshot and return the next
// one. They are copy-on-write: a course whose meetings or assignments change
// is replaced by a fresh *Course (with fresh slices), while untouched courses
// keep their original pointers so reactive views can change-detect by
// identity. Malformed references (unknown course/meeting ids, corrupt drag
// payloads) are silent no-ops returning the snapshot unchanged.

// newID mints a prefixed random identifier ("m-", "s-", "a-", "c-").
func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// updateCourse replaces the course with the given id using fn, sharing every
// other element. When the id does not resolve the original slice is returned
// as-is (same backing array, same pointers).
func updateCourse(courses []*model.Course, id string, fn func(c *model.Course) *model.Course) []*model.Course {
	idx := -1
	for i, c := range courses {
		if c != nil && c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return courses
	}
	next := make([]*model.Course, len(courses))
	copy(next, courses)
	next[idx] = fn(courses[idx])
	return next
}

func findCourse(courses []*model.Course, id string) *model.Course {
	for _, c := range courses {
		if c != nil && c.ID == id {
			return c
		}
	}
	return nil
}

// cloneCourseMeetings shallow-copies the course with a fresh meetings slice.
func cloneCourseMeetings(c *model.Course) *model.Course {
	out := *c
	out.Meetings = make([]model.Meeting, len(c.Meetings))
	copy(out.Meetings, c.Meetings)
	return &out
}

// cloneCourseAssignments shallow-copies the course with a fresh assignments slice.
func cloneCourseAssignments(c *model.Course) *model.Course {
	out := *c
	out.Assignments = make([]model.Assignment, len(c.Assignments))
	copy(out.Assignments, c.Assignments)
	return &out
}

// MeetingInput carries the shared fields of a new meeting.
type MeetingInput struct {
	Start    string // "HH:MM", required
	End      string // "HH:MM", required
	Location string
}

// MeetingSchedule picks the variant for AddMeeting: a one-off explicit date,
// or a weekly repeat over a set of weekday tags.
type MeetingSchedule struct {
	oneOff dates.Key
	weekly []dates.Weekday
	repeat bool
}

// OneOffOn schedules a single occurrence on the given date.
func OneOffOn(date dates.Key) MeetingSchedule {
	return MeetingSchedule{oneOff: date}
}

// WeeklyOn schedules a weekly repeat on the given weekdays. An empty day set
// falls back to the weekday of the anchor date passed to AddMeeting.
func WeeklyOn(days ...dates.Weekday) MeetingSchedule {
	return MeetingSchedule{weekly: days, repeat: true}
}

// AddMeeting appends a meeting to the course. A one-off schedule creates one
// record with its explicit date. A weekly schedule creates one recurring
// record per picked weekday, all sharing a freshly minted series id and each
// starting with an empty skip-date set.
//
// anchor is the date the user was acting on; it supplies the default weekday
// when a weekly schedule has no days picked.
func AddMeeting(courses []*model.Course, courseID string, in MeetingInput, sched MeetingSchedule, anchor dates.Key) ([]*model.Course, error) {
	if courseID == "" || findCourse(courses, courseID) == nil {
		return courses, validationErr("Pick a course.")
	}
	if in.Start == "" || in.End == "" {
		return courses, validationErr("Start/end time required.")
	}
	if !dates.ValidClock(in.Start) || !dates.ValidClock(in.End) {
		return courses, validationErr("Start/end time must be HH:MM.")
	}
	location := strings.TrimSpace(in.Location)

	if !sched.repeat {
		if !sched.oneOff.Valid() {
			return courses, validationErr("A date is required for a one-off meeting.")
		}
		next := updateCourse(courses, courseID, func(c *model.Course) *model.Course {
			out := cloneCourseMeetings(c)
			out.Meetings = append(out.Meetings, model.Meeting{
				ID:       newID("m"),
				Kind:     model.OneOff,
				Date:     sched.oneOff,
				Start:    in.Start,
				End:      in.End,
				Location: location,
			})
			return out
		})
		return next, nil
	}

	days := make([]dates.Weekday, 0, len(sched.weekly))
	for _, d := range sched.weekly {
		if d.Valid() {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		// Default to the weekday the user was looking at.
		if d := weekdayOfKey(anchor); d != "" {
			days = []dates.Weekday{d}
		} else {
			days = []dates.Weekday{dates.Mon}
		}
	}

	seriesID := newID("s")
	next := updateCourse(courses, courseID, func(c *model.Course) *model.Course {
		out := cloneCourseMeetings(c)
		for _, day := range days {
			out.Meetings = append(out.Meetings, model.Meeting{
				ID:        newID("m"),
				SeriesID:  seriesID,
				Kind:      model.Recurring,
				Day:       day,
				SkipDates: dates.KeySet{},
				Start:     in.Start,
				End:       in.End,
				Location:  location,
			})
		}
		return out
	})
	return next, nil
}

// AssignmentInput carries a new assignment's fields; the due date comes from
// the caller (the date cell the user was acting on).
type AssignmentInput struct {
	Title            string
	Status           model.AssignmentStatus
	Notes            string
	EstimatedMinutes int
}

// AddAssignment attaches a new assignment with the given due date.
func AddAssignment(courses []*model.Course, courseID string, in AssignmentInput, due dates.Key) ([]*model.Course, error) {
	if courseID == "" || findCourse(courses, courseID) == nil {
		return courses, validationErr("Pick a course.")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return courses, validationErr("Assignment title is required.")
	}
	if !due.Valid() {
		return courses, validationErr("A due date is required.")
	}
	status := in.Status
	if !status.Valid() {
		status = model.StatusNotStarted
	}
	est := in.EstimatedMinutes
	if est < 0 {
		est = 0
	}

	next := updateCourse(courses, courseID, func(c *model.Course) *model.Course {
		out := cloneCourseAssignments(c)
		out.Assignments = append(out.Assignments, model.Assignment{
			ID:               newID("a"),
			Title:            title,
			DueDate:          due,
			Status:           status,
			Notes:            strings.TrimSpace(in.Notes),
			EstimatedMinutes: est,
			MinutesCompleted: 0,
		})
		return out
	})
	return next, nil
}

// DeleteMeetingSeries removes the meeting record outright. For a one-off that
// is its only occurrence; for a recurring rule it removes that weekday's rule
// while sibling weekday records of the same series stay untouched. Unknown
// ids are silent no-ops.
func DeleteMeetingSeries(courses []*model.Course, courseID, meetingID string) []*model.Course {
	if courseID == "" || meetingID == "" {
		return courses
	}
	c := findCourse(courses, courseID)
	if c == nil || !hasMeeting(c, meetingID) {
		return courses
	}
	return updateCourse(courses, courseID, func(c *model.Course) *model.Course {
		out := *c
		out.Meetings = make([]model.Meeting, 0, len(c.Meetings))
		for _, m := range c.Meetings {
			if m.ID != meetingID {
				out.Meetings = append(out.Meetings, m)
			}
		}
		return &out
	})
}

// DeleteMeetingOccurrence suppresses a single date of the given meeting
// event. One-offs are deleted outright (that date is their only occurrence);
// recurring rules get the date added to their skip-date set, leaving every
// other date intact. Adding an already-present skip date is a no-op.
func DeleteMeetingOccurrence(courses []*model.Course, courseID string, ev Event, key dates.Key) []*model.Course {
	if courseID == "" || ev.MeetingID == "" || key == "" {
		return courses
	}
	if ev.Date != "" {
		return DeleteMeetingSeries(courses, courseID, ev.MeetingID)
	}
	c := findCourse(courses, courseID)
	if c == nil {
		return courses
	}
	m, ok := meetingByID(c, ev.MeetingID)
	if !ok || m.Kind != model.Recurring || m.SkipDates.Has(key) {
		return courses
	}
	return updateCourse(courses, courseID, func(c *model.Course) *model.Course {
		out := cloneCourseMeetings(c)
		for i, m := range out.Meetings {
			if m.ID == ev.MeetingID {
				next := m.Clone()
				next.SkipDates = next.SkipDates.With(key)
				out.Meetings[i] = next
			}
		}
		return out
	})
}

// MoveEvent relocates a dragged event to target.
//
// Assignments move their due date; one-off meetings move their date. For a
// recurring meeting the rule itself never moves: the source date joins the
// rule's skip-date set and a brand-new one-off carrying the same start, end
// and location appears on the target date, so every other occurrence of the
// series is unaffected.
//
// Dropping on the source date is a no-op, as is any payload with missing or
// stale identity — a corrupted drag is dropped, not surfaced.
func MoveEvent(courses []*model.Course, p Payload, target dates.Key) []*model.Course {
	if !target.Valid() || p.CourseID == "" {
		return courses
	}
	if p.SourceISO != "" && p.SourceISO == target {
		return courses
	}

	switch p.Type {
	case string(EventAssignment):
		if p.AssignmentID == "" {
			return courses
		}
		c := findCourse(courses, p.CourseID)
		if c == nil || !hasAssignment(c, p.AssignmentID) {
			return courses
		}
		return updateCourse(courses, p.CourseID, func(c *model.Course) *model.Course {
			out := cloneCourseAssignments(c)
			for i, a := range out.Assignments {
				if a.ID == p.AssignmentID {
					a.DueDate = target
					out.Assignments[i] = a
				}
			}
			return out
		})

	case string(EventMeeting):
		if p.MeetingID == "" {
			return courses
		}
		c := findCourse(courses, p.CourseID)
		if c == nil {
			return courses
		}
		m, ok := meetingByID(c, p.MeetingID)
		if !ok {
			return courses
		}

		if m.Kind == model.OneOff {
			return updateCourse(courses, p.CourseID, func(c *model.Course) *model.Course {
				out := cloneCourseMeetings(c)
				for i, mm := range out.Meetings {
					if mm.ID == p.MeetingID {
						mm.Date = target
						out.Meetings[i] = mm
					}
				}
				return out
			})
		}

		// Recurring: split the occurrence off the rule.
		if p.SourceISO == "" || !p.SourceISO.Valid() {
			return courses
		}
		return updateCourse(courses, p.CourseID, func(c *model.Course) *model.Course {
			out := cloneCourseMeetings(c)
			for i, mm := range out.Meetings {
				if mm.ID == p.MeetingID && !mm.SkipDates.Has(p.SourceISO) {
					next := mm.Clone()
					next.SkipDates = next.SkipDates.With(p.SourceISO)
					out.Meetings[i] = next
				}
			}
			out.Meetings = append(out.Meetings, model.Meeting{
				ID:       newID("m"),
				Kind:     model.OneOff,
				Date:     target,
				Start:    m.Start,
				End:      m.End,
				Location: m.Location,
			})
			return out
		})
	}
	return courses
}

func hasMeeting(c *model.Course, id string) bool {
	_, ok := meetingByID(c, id)
	return ok
}

func meetingByID(c *model.Course, id string) (model.Meeting, bool) {
	for _, m := range c.Meetings {
		if m.ID == id {
			return m, true
		}
	}
	return model.Meeting{}, false
}

func hasAssignment(c *model.Course, id string) bool {
	for _, a := range c.Assignments {
		if a.ID == id {
			return true
		}
	}
	return false
}
