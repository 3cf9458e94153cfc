package plan

import (
	"reflect"
	"testing"

	"studycal/internal/dates"
	"studycal/internal/model"
)

// termCourse builds the fixture used across the projection tests: one course
// with a Wednesday rule active 2025-01-06..2025-01-20.
func termCourse() *model.Course {
	return &model.Course{
		ID:        "c1",
		Code:      "CS101",
		Name:      "Intro to Computer Science",
		TermStart: "2025-01-06",
		TermEnd:   "2025-01-20",
		Meetings: []model.Meeting{
			{
				ID:        "m1",
				SeriesID:  "s1",
				Kind:      model.Recurring,
				Day:       dates.Wed,
				SkipDates: dates.KeySet{},
				Start:     "10:00",
				End:       "11:00",
				Location:  "Room 12",
			},
		},
	}
}

func TestProjectionRecurrenceContainment(t *testing.T) {
	courses := []*model.Course{termCourse()}

	tests := []struct {
		key  dates.Key
		want int
	}{
		{"2025-01-08", 1}, // first in-term Wednesday
		{"2025-01-15", 1}, // second in-term Wednesday
		{"2025-01-01", 0}, // Wednesday before the term
		{"2025-01-22", 0}, // Wednesday after the term
		{"2025-01-06", 0}, // in term, wrong weekday (Monday)
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got := EventsOnDate(courses, tt.key)
			if len(got) != tt.want {
				t.Errorf("EventsOnDate(%s) returned %d events, want %d", tt.key, len(got), tt.want)
			}
		})
	}
}

func TestProjectionUnboundedTermSides(t *testing.T) {
	c := termCourse()
	c.TermStart = ""
	c.TermEnd = ""
	courses := []*model.Course{c}

	for _, key := range []dates.Key{"2024-12-25", "2026-07-01"} {
		if got := EventsOnDate(courses, key); len(got) != 1 {
			t.Errorf("EventsOnDate(%s) with open term = %d events, want 1", key, len(got))
		}
	}
}

func TestProjectionSkipDateSuppression(t *testing.T) {
	c := termCourse()
	c.Meetings[0].SkipDates = dates.NewKeySet("2025-01-08")
	courses := []*model.Course{c}

	if got := EventsOnDate(courses, "2025-01-08"); len(got) != 0 {
		t.Errorf("skipped date still projected %d events", len(got))
	}
	if got := EventsOnDate(courses, "2025-01-15"); len(got) != 1 {
		t.Errorf("unskipped date projected %d events, want 1", len(got))
	}
}

func TestProjectionDeterminism(t *testing.T) {
	c := termCourse()
	c.Assignments = []model.Assignment{
		{ID: "a1", Title: "Lab 3", DueDate: "2025-01-08", Status: model.StatusNotStarted},
		{ID: "a2", Title: "Essay", DueDate: "2025-01-08", Status: model.StatusInProgress},
	}
	courses := []*model.Course{c}

	first := EventsOnDate(courses, "2025-01-08")
	second := EventsOnDate(courses, "2025-01-08")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two identical calls differ:\n%v\n%v", first, second)
	}
}

func TestProjectionOrdering(t *testing.T) {
	c := termCourse()
	c.Meetings = append(c.Meetings,
		model.Meeting{ID: "m2", Kind: model.OneOff, Date: "2025-01-08", Start: "08:30", End: "09:30"},
		model.Meeting{ID: "m3", Kind: model.OneOff, Date: "2025-01-08", Start: "14:00", End: "15:00"},
	)
	c.Assignments = []model.Assignment{
		{ID: "a1", Title: "Zeta report", DueDate: "2025-01-08"},
		{ID: "a2", Title: "Alpha quiz", DueDate: "2025-01-08"},
	}
	courses := []*model.Course{c}

	got := EventsOnDate(courses, "2025-01-08")
	if len(got) != 5 {
		t.Fatalf("projected %d events, want 5", len(got))
	}

	wantOrder := []string{"m2", "m1", "m3"} // 08:30, 10:00, 14:00
	for i, id := range wantOrder {
		if got[i].Type != EventMeeting || got[i].MeetingID != id {
			t.Errorf("position %d = %s/%s, want meeting %s", i, got[i].Type, got[i].MeetingID, id)
		}
	}
	if got[3].Type != EventAssignment || got[3].Title != "Alpha quiz" {
		t.Errorf("position 3 = %s/%s, want assignment Alpha quiz", got[3].Type, got[3].Title)
	}
	if got[4].Type != EventAssignment || got[4].Title != "Zeta report" {
		t.Errorf("position 4 = %s/%s, want assignment Zeta report", got[4].Type, got[4].Title)
	}
}

func TestProjectionDefaults(t *testing.T) {
	courses := []*model.Course{{
		ID: "c1",
		Assignments: []model.Assignment{
			{ID: "a1", DueDate: "2025-01-08"}, // no title, no status
		},
	}}
	got := EventsOnDate(courses, "2025-01-08")
	if len(got) != 1 {
		t.Fatalf("projected %d events, want 1", len(got))
	}
	if got[0].Title != "Untitled assignment" {
		t.Errorf("Title = %q, want default", got[0].Title)
	}
	if got[0].Status != model.StatusNotStarted {
		t.Errorf("Status = %q, want not-started", got[0].Status)
	}
	if got[0].Color != model.DefaultColor {
		t.Errorf("Color = %q, want default", got[0].Color)
	}
}

func TestProjectionMalformedKey(t *testing.T) {
	courses := []*model.Course{termCourse()}
	if got := EventsOnDate(courses, "2025-13-99"); got != nil {
		t.Errorf("malformed key projected %v", got)
	}
}

func TestEventsInRange(t *testing.T) {
	courses := []*model.Course{termCourse()}
	keys := []dates.Key{"2025-01-08", "2025-01-09", "2025-01-08"}
	m := EventsInRange(courses, keys)
	if len(m) != 2 {
		t.Fatalf("range map has %d keys, want 2", len(m))
	}
	if len(m["2025-01-08"]) != 1 || len(m["2025-01-09"]) != 0 {
		t.Errorf("range projection wrong: %v", m)
	}
}
