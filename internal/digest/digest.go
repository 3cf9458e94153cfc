package digest

import (
	"errors"
	"time"

	"github.com/robfig/cron/v3"

	"studycal/internal/dates"
	appLog "studycal/internal/log"
	"studycal/internal/model"
	"studycal/internal/plan"
)

// Snapshot returns the current course collection. The web layer supplies its
// live session state so the digest sees drag-and-drop edits.
type Snapshot func() []*model.Course

// Job periodically projects the next few days and logs assignments coming
// due. It is the server-side consumer of the projection engine.
type Job struct {
	snapshot Snapshot
	days     int
	cron     *cron.Cron
	now      func() time.Time
}

// New builds a digest job. days is how far ahead the digest looks.
func New(snapshot Snapshot, days int) *Job {
	if days <= 0 {
		days = 7
	}
	return &Job{
		snapshot: snapshot,
		days:     days,
		cron:     cron.New(),
		now:      time.Now,
	}
}

// Start registers the job on the given cron schedule and launches the
// scheduler. An empty spec disables the digest.
func (j *Job) Start(spec string) error {
	if spec == "" {
		appLog.Info("digest disabled, no schedule configured")
		return nil
	}
	if j.snapshot == nil {
		return errors.New("digest: nil snapshot source")
	}
	if _, err := j.cron.AddFunc(spec, j.Run); err != nil {
		return err
	}
	j.cron.Start()
	appLog.Info("digest scheduled", "spec", spec, "days", j.days)
	return nil
}

// Stop halts the scheduler. Safe to call when Start was never called.
func (j *Job) Stop() {
	j.cron.Stop()
}

// Run projects the horizon once and logs every assignment due in it. Exposed
// for the --once mode and for tests.
func (j *Job) Run() {
	courses := j.snapshot()
	today := dates.Midnight(j.now())

	keys := make([]dates.Key, 0, j.days)
	for i := 0; i < j.days; i++ {
		keys = append(keys, dates.ToKey(dates.AddDays(today, i)))
	}

	byDate := plan.EventsInRange(courses, keys)
	count := 0
	for _, k := range keys {
		for _, ev := range byDate[k] {
			if ev.Type != plan.EventAssignment {
				continue
			}
			if ev.Status == model.StatusDone {
				continue
			}
			count++
			appLog.Info("assignment due soon",
				"date", string(k),
				"course", ev.CourseID,
				"title", ev.Title,
				"status", string(ev.Status),
			)
		}
	}
	appLog.Info("digest run complete", "days", j.days, "due_count", count)
}
