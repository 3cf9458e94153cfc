package digest

import (
	"bytes"
	"strings"
	"testing"
	"time"

	appLog "studycal/internal/log"
	"studycal/internal/model"
)

func digestCourses() []*model.Course {
	return []*model.Course{
		{
			ID:   "c1",
			Code: "CS 310",
			Name: "Algorithms",
			Assignments: []model.Assignment{
				{ID: "a1", Title: "Problem set 3", DueDate: "2026-03-09",
					Status: model.StatusInProgress},
				{ID: "a2", Title: "Old quiz", DueDate: "2026-03-01",
					Status: model.StatusNotStarted},
				{ID: "a3", Title: "Finished essay", DueDate: "2026-03-10",
					Status: model.StatusDone},
				{ID: "a4", Title: "Far away", DueDate: "2026-04-20",
					Status: model.StatusNotStarted},
			},
		},
	}
}

func TestRunLogsAssignmentsInHorizon(t *testing.T) {
	var buf bytes.Buffer
	appLog.SetOutput(&buf)
	defer appLog.SetOutput(nil)

	courses := digestCourses()
	j := New(func() []*model.Course { return courses }, 7)
	j.now = func() time.Time {
		return time.Date(2026, 3, 8, 9, 30, 0, 0, time.UTC)
	}

	j.Run()
	out := buf.String()

	if !strings.Contains(out, "Problem set 3") {
		t.Error("due assignment not logged")
	}
	if strings.Contains(out, "Old quiz") {
		t.Error("past-due assignment outside horizon was logged")
	}
	if strings.Contains(out, "Finished essay") {
		t.Error("done assignment was logged")
	}
	if strings.Contains(out, "Far away") {
		t.Error("assignment beyond horizon was logged")
	}
	if !strings.Contains(out, "due_count=1") {
		t.Errorf("unexpected due count in output:\n%s", out)
	}
}

func TestStartWithEmptySpecIsDisabled(t *testing.T) {
	j := New(func() []*model.Course { return nil }, 3)
	if err := j.Start(""); err != nil {
		t.Fatalf("Start with empty spec: %v", err)
	}
	j.Stop()
}

func TestStartRejectsBadSpec(t *testing.T) {
	j := New(func() []*model.Course { return nil }, 3)
	if err := j.Start("not a cron spec"); err == nil {
		t.Fatal("expected error for malformed schedule")
	}
}
