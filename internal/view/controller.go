package view

import (
	"time"

	"studycal/internal/dates"
	"studycal/internal/model"
	"studycal/internal/plan"
)

// Mode selects which projection of the calendar is visible.
type Mode string

const (
	ModeMonth Mode = "month"
	ModeWeek  Mode = "week"
	ModeDay   Mode = "day"
)

// Valid reports whether m is a known view mode.
func (m Mode) Valid() bool {
	return m == ModeMonth || m == ModeWeek || m == ModeDay
}

// Direction is a navigation step relative to the anchor date.
type Direction string

const (
	Prev  Direction = "prev"
	Next  Direction = "next"
	Today Direction = "today"
)

// FormKind names the add-form currently open in the day detail.
type FormKind string

const (
	FormNone       FormKind = ""
	FormMeeting    FormKind = "meeting"
	FormAssignment FormKind = "assignment"
)

// DeleteScope is the user's answer to the delete-meeting confirmation.
type DeleteScope string

const (
	DeleteOccurrence DeleteScope = "occurrence"
	DeleteSeries     DeleteScope = "series"
)

// MeetingForm is the add-meeting form state. A weekly repeat with no days
// picked falls back to the weekday of the detail date.
type MeetingForm struct {
	CourseID     string          `json:"courseId"`
	Start        string          `json:"start"`
	End          string          `json:"end"`
	Location     string          `json:"location"`
	RepeatWeekly bool            `json:"repeatWeekly"`
	Days         []dates.Weekday `json:"days"`
}

// AssignmentForm is the add-assignment form state.
type AssignmentForm struct {
	CourseID         string                 `json:"courseId"`
	Title            string                 `json:"title"`
	Status           model.AssignmentStatus `json:"status"`
	Notes            string                 `json:"notes"`
	EstimatedMinutes int                    `json:"estimatedMinutes"`
}

// DeletePrompt is the pending two-choice delete confirmation: delete only the
// occurrence on Date, or the whole meeting record.
type DeletePrompt struct {
	Meeting plan.Event
	Date    dates.Key
}

// Controller orchestrates the visible date range, the open detail/forms and
// the routing of UI mutations into the planner engine. It owns the current
// course snapshot and holds only presentation state of its own — every
// domain transition goes through the plan package.
//
// The controller is single-writer by design and does no locking; callers
// running it behind a server serialize access themselves.
type Controller struct {
	courses []*model.Course

	mode   Mode
	anchor time.Time // always local midnight

	detail         dates.Key // "" when no day detail is open
	openForm       FormKind
	errText        string
	deletePrompt   *DeletePrompt
	meetingForm    MeetingForm
	assignmentForm AssignmentForm
}

// NewController starts in month mode anchored on now's date.
func NewController(courses []*model.Course, now time.Time) *Controller {
	return &Controller{
		courses: courses,
		mode:    ModeMonth,
		anchor:  dates.Midnight(now),
	}
}

// Courses returns the current snapshot.
func (c *Controller) Courses() []*model.Course { return c.courses }

// SetCourses replaces the snapshot (fixture load, external refresh).
func (c *Controller) SetCourses(courses []*model.Course) { c.courses = courses }

// Mode returns the active view mode.
func (c *Controller) Mode() Mode { return c.mode }

// Anchor returns the anchor date at local midnight.
func (c *Controller) Anchor() time.Time { return c.anchor }

// Detail returns the open day-detail date, or "" when closed.
func (c *Controller) Detail() dates.Key { return c.detail }

// OpenForm returns which add-form is showing.
func (c *Controller) OpenForm() FormKind { return c.openForm }

// Err returns the current inline validation error text.
func (c *Controller) Err() string { return c.errText }

// DeletePromptState returns the pending delete confirmation, if any.
func (c *Controller) DeletePromptState() *DeletePrompt { return c.deletePrompt }

// MeetingFormState returns the current add-meeting form.
func (c *Controller) MeetingFormState() MeetingForm { return c.meetingForm }

// AssignmentFormState returns the current add-assignment form.
func (c *Controller) AssignmentFormState() AssignmentForm { return c.assignmentForm }

// SetViewMode switches the projection. Leaving day mode closes the day
// detail; entering day mode opens it implicitly for the anchor date.
func (c *Controller) SetViewMode(m Mode) {
	if !m.Valid() {
		return
	}
	c.mode = m
	c.openForm = FormNone
	c.errText = ""
	if m == ModeDay {
		c.openDetail(dates.ToKey(c.anchor))
		return
	}
	c.detail = ""
}

// Navigate steps the anchor: ±1 day in day mode, ±7 days in week mode, ±1
// calendar month in month mode (landing on the 1st), or back to today. In
// day mode the day detail follows the anchor.
func (c *Controller) Navigate(d Direction) {
	switch d {
	case Today:
		c.anchor = dates.Midnight(time.Now())
	case Prev, Next:
		step := 1
		if d == Prev {
			step = -1
		}
		switch c.mode {
		case ModeDay:
			c.anchor = dates.AddDays(c.anchor, step)
		case ModeWeek:
			c.anchor = dates.AddDays(c.anchor, 7*step)
		default:
			c.anchor = time.Date(c.anchor.Year(), c.anchor.Month()+time.Month(step), 1, 0, 0, 0, 0, c.anchor.Location())
		}
	default:
		return
	}
	if c.mode == ModeDay {
		c.openDetail(dates.ToKey(c.anchor))
	}
}

// OpenDetail opens the day detail for the given date and seeds both add
// forms with defaults for it. Malformed keys are ignored.
func (c *Controller) OpenDetail(key dates.Key) {
	if !key.Valid() {
		return
	}
	c.openDetail(key)
}

func (c *Controller) openDetail(key dates.Key) {
	c.detail = key
	c.openForm = FormNone
	c.errText = ""

	day := dates.Mon
	if t, err := dates.ParseKey(key); err == nil {
		day = dates.WeekdayOf(t)
	}
	firstCourse := ""
	if len(c.courses) > 0 && c.courses[0] != nil {
		firstCourse = c.courses[0].ID
	}
	c.meetingForm = MeetingForm{
		CourseID:     firstCourse,
		Start:        "10:00",
		End:          "11:00",
		RepeatWeekly: true,
		Days:         []dates.Weekday{day},
	}
	c.assignmentForm = AssignmentForm{
		CourseID: firstCourse,
		Status:   model.StatusNotStarted,
		EstimatedMinutes: 60,
	}
}

// CloseDetail dismisses the day detail overlay. In day mode the panel is
// persistent, so closing is a no-op there.
func (c *Controller) CloseDetail() {
	if c.mode == ModeDay {
		return
	}
	c.detail = ""
	c.openForm = FormNone
	c.errText = ""
}

// ToggleForm shows or hides one of the add-forms in the open detail.
func (c *Controller) ToggleForm(f FormKind) {
	if c.detail == "" {
		return
	}
	if c.openForm == f {
		c.openForm = FormNone
	} else {
		c.openForm = f
	}
	c.errText = ""
}

// VisibleKeys returns the date keys of the active projection: 42 for the
// month grid, 7 for the week row, 1 for the day panel.
func (c *Controller) VisibleKeys() []dates.Key {
	var ds []time.Time
	switch c.mode {
	case ModeWeek:
		ds = dates.WeekDates(c.anchor)
	case ModeDay:
		ds = []time.Time{c.anchor}
	default:
		ds = dates.MonthGrid(c.anchor)
	}
	keys := make([]dates.Key, len(ds))
	for i, d := range ds {
		keys[i] = dates.ToKey(d)
	}
	return keys
}

// EventsByDate projects every visible date once.
func (c *Controller) EventsByDate() map[dates.Key][]plan.Event {
	return plan.EventsInRange(c.courses, c.VisibleKeys())
}

// DetailEvents projects the open detail date, or nil when closed.
func (c *Controller) DetailEvents() []plan.Event {
	if c.detail == "" {
		return nil
	}
	return plan.EventsOnDate(c.courses, c.detail)
}

// SubmitMeeting saves the add-meeting form against the open detail date.
// Validation failures surface as inline error text and leave state alone;
// success closes the form and clears the error.
func (c *Controller) SubmitMeeting(f MeetingForm) error {
	if c.detail == "" {
		return nil
	}
	sched := plan.OneOffOn(c.detail)
	if f.RepeatWeekly {
		sched = plan.WeeklyOn(f.Days...)
	}
	next, err := plan.AddMeeting(c.courses, f.CourseID, plan.MeetingInput{
		Start:    f.Start,
		End:      f.End,
		Location: f.Location,
	}, sched, c.detail)
	if err != nil {
		c.errText = err.Error()
		return err
	}
	c.courses = next
	c.meetingForm = f
	c.openForm = FormNone
	c.errText = ""
	return nil
}

// SubmitAssignment saves the add-assignment form with the open detail date
// as the due date.
func (c *Controller) SubmitAssignment(f AssignmentForm) error {
	if c.detail == "" {
		return nil
	}
	next, err := plan.AddAssignment(c.courses, f.CourseID, plan.AssignmentInput{
		Title:            f.Title,
		Status:           f.Status,
		Notes:            f.Notes,
		EstimatedMinutes: f.EstimatedMinutes,
	}, c.detail)
	if err != nil {
		c.errText = err.Error()
		return err
	}
	c.courses = next
	f.Title = ""
	f.Notes = ""
	c.assignmentForm = f
	c.openForm = FormNone
	c.errText = ""
	return nil
}

// HandleDrop decodes a drag payload dropped on target and routes it into
// MoveEvent. Unparseable payloads are ignored — a corrupted drag is not a
// user-facing error.
func (c *Controller) HandleDrop(raw []byte, target dates.Key) {
	p, err := plan.ParsePayload(raw)
	if err != nil {
		return
	}
	c.courses = plan.MoveEvent(c.courses, p, target)
}

// RequestDeleteMeeting opens the delete confirmation for a meeting event
// rendered on the given date.
func (c *Controller) RequestDeleteMeeting(ev plan.Event, key dates.Key) {
	if ev.Type != plan.EventMeeting || ev.MeetingID == "" {
		return
	}
	c.deletePrompt = &DeletePrompt{Meeting: ev, Date: key}
}

// ConfirmDelete commits the pending delete with the chosen scope and closes
// the prompt. Without a pending prompt it is a no-op.
func (c *Controller) ConfirmDelete(scope DeleteScope) {
	p := c.deletePrompt
	if p == nil {
		return
	}
	switch scope {
	case DeleteOccurrence:
		c.courses = plan.DeleteMeetingOccurrence(c.courses, p.Meeting.CourseID, p.Meeting, p.Date)
	case DeleteSeries:
		c.courses = plan.DeleteMeetingSeries(c.courses, p.Meeting.CourseID, p.Meeting.MeetingID)
	default:
		return
	}
	c.deletePrompt = nil
}

// CancelDelete dismisses the confirmation without touching state.
func (c *Controller) CancelDelete() { c.deletePrompt = nil }
