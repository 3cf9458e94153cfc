package ics

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"studycal/internal/dates"
	appLog "studycal/internal/log"
	"studycal/internal/model"
)

// exportHorizonYears bounds unbounded weekly rules so the feed stays finite.
const exportHorizonYears = 1

var rruleDays = map[dates.Weekday]rrule.Weekday{
	dates.Mon: rrule.MO,
	dates.Tue: rrule.TU,
	dates.Wed: rrule.WE,
	dates.Thu: rrule.TH,
	dates.Fri: rrule.FR,
	dates.Sat: rrule.SA,
	dates.Sun: rrule.SU,
}

// Export serializes the course collection to an iCalendar feed. Weekly
// meetings become RRULE VEVENTs with EXDATEs for skipped dates, one-off
// meetings become plain timed VEVENTs, and assignment due dates become
// all-day VEVENTs.
//
// Records with malformed clock times or term windows are skipped with a log
// line rather than poisoning the whole feed.
func Export(courses []*model.Course, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//studycal//planner//EN")

	for _, c := range courses {
		label := c.Code
		if label == "" {
			label = c.Name
		}
		for _, m := range c.Meetings {
			if err := addMeeting(cal, c, label, m, now); err != nil {
				appLog.Error("ics export: skipping meeting", err,
					"course", c.ID, "meeting", m.ID)
			}
		}
		for _, a := range c.Assignments {
			if err := addAssignment(cal, label, a); err != nil {
				appLog.Error("ics export: skipping assignment", err,
					"course", c.ID, "assignment", a.ID)
			}
		}
	}

	return []byte(cal.Serialize()), nil
}

func addMeeting(cal *ical.Calendar, c *model.Course, label string, m model.Meeting, now time.Time) error {
	startMin, err := dates.MinutesOfDay(m.Start)
	if err != nil {
		return fmt.Errorf("malformed start clock: %w", err)
	}
	endMin, err := dates.MinutesOfDay(m.End)
	if err != nil {
		return fmt.Errorf("malformed end clock: %w", err)
	}

	var firstDate time.Time
	switch m.Kind {
	case model.OneOff:
		d, err := dates.ParseKey(m.Date)
		if err != nil {
			return err
		}
		firstDate = d
	case model.Recurring:
		anchor := dates.Midnight(now)
		if c.TermStart != "" {
			d, err := dates.ParseKey(c.TermStart)
			if err != nil {
				return err
			}
			anchor = d
		}
		// First occurrence on or after the anchor.
		for dates.WeekdayOf(anchor) != m.Day {
			anchor = dates.AddDays(anchor, 1)
		}
		firstDate = anchor
	default:
		return fmt.Errorf("unknown meeting kind %q", m.Kind)
	}

	start := firstDate.Add(time.Duration(startMin) * time.Minute)
	end := firstDate.Add(time.Duration(endMin) * time.Minute)

	ev := cal.AddEvent(fmt.Sprintf("%s-%s@studycal", c.ID, m.ID))
	ev.SetDtStampTime(now)
	ev.SetStartAt(start)
	ev.SetEndAt(end)
	ev.SetSummary(label)
	if m.Location != "" {
		ev.SetLocation(m.Location)
	}

	if m.Kind != model.Recurring {
		return nil
	}

	until := dates.AddDays(firstDate, 365*exportHorizonYears)
	if c.TermEnd != "" {
		d, err := dates.ParseKey(c.TermEnd)
		if err != nil {
			return err
		}
		until = d
	}
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rruleDays[m.Day]},
		Dtstart:   start,
		Until:     until.Add(24*time.Hour - time.Second),
	})
	if err != nil {
		return fmt.Errorf("build rrule: %w", err)
	}
	// String() may carry a DTSTART line and RRULE: prefix; the property
	// value must be the bare rule.
	rule := r.String()
	if i := strings.LastIndex(rule, "RRULE:"); i >= 0 {
		rule = rule[i+len("RRULE:"):]
	}
	ev.AddRrule(rule)

	for _, skip := range m.SkipDates.Sorted() {
		d, err := dates.ParseKey(skip)
		if err != nil {
			return err
		}
		ex := d.Add(time.Duration(startMin) * time.Minute)
		ev.AddExdate(ex.Format("20060102T150405"))
	}
	return nil
}

func addAssignment(cal *ical.Calendar, label string, a model.Assignment) error {
	if a.DueDate == "" {
		// Undated assignments have no place on a calendar feed.
		return nil
	}
	due, err := dates.ParseKey(a.DueDate)
	if err != nil {
		return err
	}

	title := a.Title
	if title == "" {
		title = "Untitled assignment"
	}

	ev := cal.AddEvent(fmt.Sprintf("%s@studycal", a.ID))
	ev.SetDtStampTime(due)
	ev.SetAllDayStartAt(due)
	ev.SetAllDayEndAt(dates.AddDays(due, 1))
	ev.SetSummary(fmt.Sprintf("%s: %s due", label, title))
	if a.Notes != "" {
		ev.SetDescription(a.Notes)
	}
	return nil
}
