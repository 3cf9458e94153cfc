package plan

import (
	"sort"
	"strings"

	"studycal/internal/dates"
	"studycal/internal/model"
)

// Course bookkeeping for the Courses and course-detail screens. Same
// copy-on-write contract as the meeting/assignment mutations.

// CourseInput carries the editable course fields.
type CourseInput struct {
	Code              string
	Name              string
	Color             string
	Term              string
	TermStart         dates.Key
	TermEnd           dates.Key
	WeeklyGoalMinutes int
}

func (in *CourseInput) validate() error {
	if strings.TrimSpace(in.Code) == "" {
		return validationErr("Course code is required.")
	}
	if strings.TrimSpace(in.Name) == "" {
		return validationErr("Course name is required.")
	}
	if in.TermStart != "" && !in.TermStart.Valid() {
		return validationErr("Term start must be YYYY-MM-DD.")
	}
	if in.TermEnd != "" && !in.TermEnd.Valid() {
		return validationErr("Term end must be YYYY-MM-DD.")
	}
	if in.TermStart != "" && in.TermEnd != "" && in.TermEnd < in.TermStart {
		return validationErr("Term end must not be before term start.")
	}
	return nil
}

// AddCourse appends a new course with no meetings or assignments.
func AddCourse(courses []*model.Course, in CourseInput) ([]*model.Course, error) {
	if err := in.validate(); err != nil {
		return courses, err
	}
	c := &model.Course{
		ID:                newID("c"),
		Code:              strings.TrimSpace(in.Code),
		Name:              strings.TrimSpace(in.Name),
		Color:             in.Color,
		Term:              strings.TrimSpace(in.Term),
		TermStart:         in.TermStart,
		TermEnd:           in.TermEnd,
		WeeklyGoalMinutes: in.WeeklyGoalMinutes,
	}
	next := make([]*model.Course, len(courses), len(courses)+1)
	copy(next, courses)
	return append(next, c), nil
}

// UpdateCourse edits display and term fields, keeping meetings/assignments.
func UpdateCourse(courses []*model.Course, courseID string, in CourseInput) ([]*model.Course, error) {
	if courseID == "" || findCourse(courses, courseID) == nil {
		return courses, validationErr("Pick a course.")
	}
	if err := in.validate(); err != nil {
		return courses, err
	}
	next := updateCourse(courses, courseID, func(c *model.Course) *model.Course {
		out := *c
		out.Code = strings.TrimSpace(in.Code)
		out.Name = strings.TrimSpace(in.Name)
		out.Color = in.Color
		out.Term = strings.TrimSpace(in.Term)
		out.TermStart = in.TermStart
		out.TermEnd = in.TermEnd
		out.WeeklyGoalMinutes = in.WeeklyGoalMinutes
		return &out
	})
	return next, nil
}

// DeleteCourse removes the course and everything it owns. Unknown ids are
// silent no-ops.
func DeleteCourse(courses []*model.Course, courseID string) []*model.Course {
	if findCourse(courses, courseID) == nil {
		return courses
	}
	next := make([]*model.Course, 0, len(courses)-1)
	for _, c := range courses {
		if c == nil || c.ID != courseID {
			next = append(next, c)
		}
	}
	return next
}

// AssignmentEdit carries the editable assignment fields for a direct edit.
type AssignmentEdit struct {
	Title            string
	DueDate          dates.Key
	Status           model.AssignmentStatus
	Notes            string
	EstimatedMinutes int
	MinutesCompleted int
}

// UpdateAssignment edits an assignment in place. Completed minutes are
// clamped to [0, estimated] here — only direct edits clamp; due-date moves
// leave effort fields alone.
func UpdateAssignment(courses []*model.Course, courseID, assignmentID string, in AssignmentEdit) ([]*model.Course, error) {
	c := findCourse(courses, courseID)
	if c == nil {
		return courses, validationErr("Pick a course.")
	}
	if !hasAssignment(c, assignmentID) {
		return courses, validationErr("Assignment not found.")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return courses, validationErr("Assignment title is required.")
	}
	if !in.DueDate.Valid() {
		return courses, validationErr("A due date is required.")
	}
	status := in.Status
	if !status.Valid() {
		status = model.StatusNotStarted
	}

	next := updateCourse(courses, courseID, func(c *model.Course) *model.Course {
		out := cloneCourseAssignments(c)
		for i, a := range out.Assignments {
			if a.ID != assignmentID {
				continue
			}
			a.Title = title
			a.DueDate = in.DueDate
			a.Status = status
			a.Notes = strings.TrimSpace(in.Notes)
			a.EstimatedMinutes = clamp(in.EstimatedMinutes, 0, 1<<30)
			a.MinutesCompleted = clamp(in.MinutesCompleted, 0, a.EstimatedMinutes)
			out.Assignments[i] = a
		}
		return out
	})
	return next, nil
}

// BumpAssignmentProgress adds delta minutes of completed work (delta may be
// negative), clamped to [0, estimated]. An assignment that reaches its
// estimate is marked done; one bumped off zero while not-started moves to
// in-progress.
func BumpAssignmentProgress(courses []*model.Course, courseID, assignmentID string, delta int) []*model.Course {
	c := findCourse(courses, courseID)
	if c == nil || !hasAssignment(c, assignmentID) {
		return courses
	}
	return updateCourse(courses, courseID, func(c *model.Course) *model.Course {
		out := cloneCourseAssignments(c)
		for i, a := range out.Assignments {
			if a.ID != assignmentID {
				continue
			}
			a.MinutesCompleted = clamp(a.MinutesCompleted+delta, 0, a.EstimatedMinutes)
			switch {
			case a.EstimatedMinutes > 0 && a.MinutesCompleted >= a.EstimatedMinutes:
				a.Status = model.StatusDone
			case a.MinutesCompleted > 0 && a.Status == model.StatusNotStarted:
				a.Status = model.StatusInProgress
			}
			out.Assignments[i] = a
		}
		return out
	})
}

// DeleteAssignment removes an assignment. Unknown ids are silent no-ops.
func DeleteAssignment(courses []*model.Course, courseID, assignmentID string) []*model.Course {
	c := findCourse(courses, courseID)
	if c == nil || !hasAssignment(c, assignmentID) {
		return courses
	}
	return updateCourse(courses, courseID, func(c *model.Course) *model.Course {
		out := *c
		out.Assignments = make([]model.Assignment, 0, len(c.Assignments))
		for _, a := range c.Assignments {
			if a.ID != assignmentID {
				out.Assignments = append(out.Assignments, a)
			}
		}
		return &out
	})
}

// NextDue returns the earliest not-done assignment with a due date, for the
// course card's "next due" line. ok is false when none qualifies.
func NextDue(c *model.Course) (model.Assignment, bool) {
	var best model.Assignment
	found := false
	for _, a := range c.Assignments {
		if a.Status == model.StatusDone || a.DueDate == "" {
			continue
		}
		if !found || a.DueDate < best.DueDate {
			best = a
			found = true
		}
	}
	return best, found
}

// WeeklyGoalPercent is the study-time progress toward the weekly goal,
// clamped to [0, 100]. A zero goal reads as zero progress.
func WeeklyGoalPercent(c *model.Course) int {
	if c.WeeklyGoalMinutes <= 0 {
		return 0
	}
	return clamp(c.StudyMinutesThisWeek*100/c.WeeklyGoalMinutes, 0, 100)
}

// UpcomingMinutes totals the estimated minutes of not-done assignments.
func UpcomingMinutes(c *model.Course) int {
	total := 0
	for _, a := range c.Assignments {
		if a.Status != model.StatusDone {
			total += a.EstimatedMinutes
		}
	}
	return total
}

// SortedAssignments returns the course's assignments ordered by due date,
// then title, without touching the stored order.
func SortedAssignments(c *model.Course) []model.Assignment {
	out := make([]model.Assignment, len(c.Assignments))
	copy(out, c.Assignments)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DueDate != out[j].DueDate {
			return out[i].DueDate < out[j].DueDate
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
