package store

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"studycal/internal/model"
)

//go:embed seed.json
var seedJSON []byte

// LoadFixture reads a course-collection fixture from path. An empty path
// loads the built-in seed.
func LoadFixture(path string) ([]*model.Course, error) {
	if path == "" {
		return parseFixture(seedJSON)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	courses, err := parseFixture(data)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return courses, nil
}

func parseFixture(data []byte) ([]*model.Course, error) {
	var courses []*model.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(courses))
	for i, c := range courses {
		if c == nil {
			return nil, fmt.Errorf("course %d is null", i)
		}
		if c.ID == "" {
			return nil, fmt.Errorf("course %d has no id", i)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate course id %q", c.ID)
		}
		seen[c.ID] = true

		if c.Code == "" && c.Name == "" {
			return nil, fmt.Errorf("course %q has neither code nor name", c.ID)
		}
		if c.TermEnd != "" && c.TermStart != "" && c.TermEnd < c.TermStart {
			return nil, fmt.Errorf("course %q: term ends before it starts", c.ID)
		}

		// The engine assumes non-nil slices on every snapshot.
		if c.Meetings == nil {
			c.Meetings = []model.Meeting{}
		}
		if c.Assignments == nil {
			c.Assignments = []model.Assignment{}
		}
		for j, m := range c.Meetings {
			if m.ID == "" {
				return nil, fmt.Errorf("course %q: meeting %d has no id", c.ID, j)
			}
		}
		for j, a := range c.Assignments {
			if a.ID == "" {
				return nil, fmt.Errorf("course %q: assignment %d has no id", c.ID, j)
			}
		}
	}
	return courses, nil
}
