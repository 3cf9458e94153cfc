package plan

import (
	"studycal/internal/dates"
	"studycal/internal/model"
)

// EventType discriminates projected calendar events.
type EventType string

const (
	EventMeeting    EventType = "meeting"
	EventAssignment EventType = "assignment"
)

// Event is one projected calendar entry for a single date. Events are
// derived, never stored: every render recomputes them from the current
// course snapshot, and they double as the drag-and-drop payload shape.
type Event struct {
	Type EventType `json:"type"`

	CourseID   string `json:"courseId"`
	CourseCode string `json:"courseCode"`
	CourseName string `json:"courseName"`
	Color      string `json:"color"`

	// Meeting fields.
	MeetingID string        `json:"meetingId,omitempty"`
	SeriesID  string        `json:"seriesId,omitempty"`
	Start     string        `json:"start,omitempty"`
	End       string        `json:"end,omitempty"`
	Location  string        `json:"location,omitempty"`
	Date      dates.Key     `json:"date,omitempty"` // one-off origin date
	Day       dates.Weekday `json:"day,omitempty"`  // recurring weekday tag

	// Assignment fields.
	AssignmentID     string                 `json:"id,omitempty"`
	Title            string                 `json:"title,omitempty"`
	DueDate          dates.Key              `json:"dueDate,omitempty"`
	Status           model.AssignmentStatus `json:"status,omitempty"`
	Notes            string                 `json:"notes,omitempty"`
	EstimatedMinutes int                    `json:"estimatedMinutes,omitempty"`
	MinutesCompleted int                    `json:"minutesCompleted,omitempty"`
}

func meetingEvent(c *model.Course, m model.Meeting) Event {
	return Event{
		Type:       EventMeeting,
		CourseID:   c.ID,
		CourseCode: c.Code,
		CourseName: c.Name,
		Color:      c.ColorOrDefault(),
		MeetingID:  m.ID,
		SeriesID:   m.SeriesID,
		Start:      m.Start,
		End:        m.End,
		Location:   m.Location,
		Date:       m.Date,
		Day:        m.Day,
	}
}

func assignmentEvent(c *model.Course, a model.Assignment) Event {
	title := a.Title
	if title == "" {
		title = "Untitled assignment"
	}
	status := a.Status
	if status == "" {
		status = model.StatusNotStarted
	}
	return Event{
		Type:             EventAssignment,
		CourseID:         c.ID,
		CourseCode:       c.Code,
		CourseName:       c.Name,
		Color:            c.ColorOrDefault(),
		AssignmentID:     a.ID,
		Title:            title,
		DueDate:          a.DueDate,
		Status:           status,
		Notes:            a.Notes,
		EstimatedMinutes: a.EstimatedMinutes,
		MinutesCompleted: a.MinutesCompleted,
	}
}
