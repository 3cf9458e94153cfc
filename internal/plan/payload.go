package plan

import (
	"encoding/json"
	"errors"

	"studycal/internal/dates"
)

// Payload is the drag-and-drop transfer encoding: a JSON object naming the
// event type, its owning course, the type-specific identity and the source
// date. Extra fields are tolerated; missing identity fields reject the whole
// payload. It deliberately mirrors the Event JSON shape so a projected event
// can be serialized straight into a drag operation.
type Payload struct {
	Type      string    `json:"type"`
	CourseID  string    `json:"courseId"`
	SourceISO dates.Key `json:"sourceISO"`

	// Meeting identity and carry-over fields for series splitting.
	MeetingID string        `json:"meetingId,omitempty"`
	Date      dates.Key     `json:"date,omitempty"` // set for one-off origins
	Day       dates.Weekday `json:"day,omitempty"`  // set for recurring origins
	Start     string        `json:"start,omitempty"`
	End       string        `json:"end,omitempty"`
	Location  string        `json:"location,omitempty"`

	// Assignment identity.
	AssignmentID string `json:"id,omitempty"`
}

var errBadPayload = errors.New("plan: malformed drag payload")

// ParsePayload decodes and validates a drag payload. Any shape mismatch
// returns an error; callers treat that as a dropped drag event and no-op.
func ParsePayload(raw []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, errBadPayload
	}
	if err := p.Validate(); err != nil {
		return Payload{}, err
	}
	return p, nil
}

// Validate checks the identity fields required for the payload's type.
func (p Payload) Validate() error {
	if p.CourseID == "" {
		return errBadPayload
	}
	switch p.Type {
	case string(EventMeeting):
		if p.MeetingID == "" {
			return errBadPayload
		}
	case string(EventAssignment):
		if p.AssignmentID == "" {
			return errBadPayload
		}
	default:
		return errBadPayload
	}
	return nil
}

// PayloadFromEvent builds the transfer payload for an event rendered on
// sourceISO. This is the serialization side of the drag boundary.
func PayloadFromEvent(ev Event, sourceISO dates.Key) Payload {
	return Payload{
		Type:         string(ev.Type),
		CourseID:     ev.CourseID,
		SourceISO:    sourceISO,
		MeetingID:    ev.MeetingID,
		Date:         ev.Date,
		Day:          ev.Day,
		Start:        ev.Start,
		End:          ev.End,
		Location:     ev.Location,
		AssignmentID: ev.AssignmentID,
	}
}
