package plan

import (
	"errors"
	"testing"

	"studycal/internal/model"
)

func TestAddUpdateDeleteCourse(t *testing.T) {
	courses, err := AddCourse(nil, CourseInput{
		Code:      "CS101",
		Name:      "Intro to Computer Science",
		Term:      "Spring 2025",
		TermStart: "2025-01-06",
		TermEnd:   "2025-05-01",
	})
	if err != nil {
		t.Fatalf("AddCourse() error = %v", err)
	}
	if len(courses) != 1 || courses[0].ID == "" {
		t.Fatalf("courses = %+v", courses)
	}

	id := courses[0].ID
	updated, err := UpdateCourse(courses, id, CourseInput{Code: "CS102", Name: "Data Structures"})
	if err != nil {
		t.Fatalf("UpdateCourse() error = %v", err)
	}
	if updated[0].Code != "CS102" || updated[0].ID != id {
		t.Errorf("updated = %+v", updated[0])
	}
	if courses[0].Code != "CS101" {
		t.Error("UpdateCourse mutated the old snapshot")
	}

	if _, err := UpdateCourse(courses, id, CourseInput{Code: "X", Name: "Y", TermStart: "2025-05-01", TermEnd: "2025-01-01"}); err == nil {
		t.Error("inverted term window accepted")
	}

	gone := DeleteCourse(updated, id)
	if len(gone) != 0 {
		t.Errorf("DeleteCourse left %d courses", len(gone))
	}
	if got := DeleteCourse(updated, "nope"); !sameCoursePointers(got, updated) {
		t.Error("deleting an unknown course changed the snapshot")
	}
}

func TestAddCourseValidation(t *testing.T) {
	tests := []struct {
		name string
		in   CourseInput
	}{
		{"empty code", CourseInput{Name: "X"}},
		{"empty name", CourseInput{Code: "X"}},
		{"bad term start", CourseInput{Code: "X", Name: "Y", TermStart: "06-01-2025"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AddCourse(nil, tt.in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("AddCourse() error = %v, want ValidationError", err)
			}
		})
	}
}

func progressCourse() []*model.Course {
	return []*model.Course{{
		ID:   "c1",
		Code: "CS101",
		Name: "Intro",
		Assignments: []model.Assignment{
			{ID: "a1", Title: "Lab", DueDate: "2025-02-01", Status: model.StatusNotStarted, EstimatedMinutes: 60, MinutesCompleted: 0},
		},
	}}
}

func TestUpdateAssignmentClampsCompleted(t *testing.T) {
	next, err := UpdateAssignment(progressCourse(), "c1", "a1", AssignmentEdit{
		Title:            "Lab",
		DueDate:          "2025-02-01",
		Status:           model.StatusInProgress,
		EstimatedMinutes: 60,
		MinutesCompleted: 500,
	})
	if err != nil {
		t.Fatalf("UpdateAssignment() error = %v", err)
	}
	if got := next[0].Assignments[0].MinutesCompleted; got != 60 {
		t.Errorf("MinutesCompleted = %d, want clamped to 60", got)
	}

	next, err = UpdateAssignment(progressCourse(), "c1", "a1", AssignmentEdit{
		Title: "Lab", DueDate: "2025-02-01", EstimatedMinutes: 60, MinutesCompleted: -10,
	})
	if err != nil {
		t.Fatalf("UpdateAssignment() error = %v", err)
	}
	if got := next[0].Assignments[0].MinutesCompleted; got != 0 {
		t.Errorf("MinutesCompleted = %d, want clamped to 0", got)
	}
}

func TestBumpAssignmentProgress(t *testing.T) {
	courses := progressCourse()

	next := BumpAssignmentProgress(courses, "c1", "a1", 25)
	a := next[0].Assignments[0]
	if a.MinutesCompleted != 25 || a.Status != model.StatusInProgress {
		t.Errorf("after bump: %+v", a)
	}

	next = BumpAssignmentProgress(next, "c1", "a1", 100)
	a = next[0].Assignments[0]
	if a.MinutesCompleted != 60 || a.Status != model.StatusDone {
		t.Errorf("after overshoot bump: %+v", a)
	}

	if got := BumpAssignmentProgress(courses, "c1", "aX", 10); !sameCoursePointers(got, courses) {
		t.Error("bump of unknown assignment changed the snapshot")
	}
}

func TestNextDueSkipsDone(t *testing.T) {
	c := &model.Course{Assignments: []model.Assignment{
		{ID: "a1", Title: "Done early", DueDate: "2025-01-01", Status: model.StatusDone},
		{ID: "a2", Title: "Soon", DueDate: "2025-02-01", Status: model.StatusInProgress},
		{ID: "a3", Title: "Later", DueDate: "2025-03-01", Status: model.StatusNotStarted},
		{ID: "a4", Title: "No date", Status: model.StatusNotStarted},
	}}
	got, ok := NextDue(c)
	if !ok || got.ID != "a2" {
		t.Errorf("NextDue() = %+v, %v; want a2", got, ok)
	}

	if _, ok := NextDue(&model.Course{}); ok {
		t.Error("NextDue() on empty course reported a result")
	}
}

func TestWeeklyGoalPercent(t *testing.T) {
	tests := []struct {
		name string
		c    model.Course
		want int
	}{
		{"zero goal", model.Course{StudyMinutesThisWeek: 100}, 0},
		{"half", model.Course{WeeklyGoalMinutes: 200, StudyMinutesThisWeek: 100}, 50},
		{"overshoot clamps", model.Course{WeeklyGoalMinutes: 100, StudyMinutesThisWeek: 250}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeeklyGoalPercent(&tt.c); got != tt.want {
				t.Errorf("WeeklyGoalPercent() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUpcomingMinutesAndSortedAssignments(t *testing.T) {
	c := &model.Course{Assignments: []model.Assignment{
		{ID: "a1", Title: "B", DueDate: "2025-02-01", EstimatedMinutes: 30},
		{ID: "a2", Title: "A", DueDate: "2025-02-01", EstimatedMinutes: 45, Status: model.StatusDone},
		{ID: "a3", Title: "C", DueDate: "2025-01-01", EstimatedMinutes: 15},
	}}
	if got := UpcomingMinutes(c); got != 45 {
		t.Errorf("UpcomingMinutes() = %d, want 45", got)
	}
	sorted := SortedAssignments(c)
	if sorted[0].ID != "a3" || sorted[1].ID != "a2" || sorted[2].ID != "a1" {
		t.Errorf("SortedAssignments() order = %s,%s,%s", sorted[0].ID, sorted[1].ID, sorted[2].ID)
	}
	if c.Assignments[0].ID != "a1" {
		t.Error("SortedAssignments mutated stored order")
	}
}
