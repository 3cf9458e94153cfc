package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"studycal/internal/model"
)

func TestLoadFixtureSeed(t *testing.T) {
	courses, err := LoadFixture("")
	if err != nil {
		t.Fatalf("LoadFixture(seed): %v", err)
	}
	if len(courses) == 0 {
		t.Fatal("seed fixture is empty")
	}
	for _, c := range courses {
		if c.Meetings == nil || c.Assignments == nil {
			t.Errorf("course %s has nil slices", c.ID)
		}
		for _, m := range c.Meetings {
			switch m.Kind {
			case model.OneOff:
				if m.Date == "" {
					t.Errorf("one-off %s has no date", m.ID)
				}
			case model.Recurring:
				if m.Day == "" {
					t.Errorf("recurring %s has no weekday", m.ID)
				}
				if m.SkipDates == nil {
					t.Errorf("recurring %s has nil skip set", m.ID)
				}
			default:
				t.Errorf("meeting %s has kind %q", m.ID, m.Kind)
			}
		}
	}
}

func TestLoadFixtureFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.json")
	data := `[{"id":"c1","code":"CS 101","name":"Intro",
		"meetings":[{"id":"m1","day":"Mon","start":"09:00","end":"10:00"}]}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	courses, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if len(courses) != 1 || courses[0].ID != "c1" {
		t.Fatalf("unexpected courses: %+v", courses)
	}
	if courses[0].Assignments == nil {
		t.Error("missing assignments not defaulted to empty")
	}
}

func TestLoadFixtureRejectsBadData(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"no id", `[{"code":"X"}]`, "no id"},
		{"duplicate id", `[{"id":"c1","code":"A"},{"id":"c1","code":"B"}]`, "duplicate"},
		{"no code or name", `[{"id":"c1"}]`, "neither code nor name"},
		{"inverted term", `[{"id":"c1","code":"A","termStart":"2026-05-01","termEnd":"2026-01-01"}]`, "term ends before"},
		{"meeting without day or date", `[{"id":"c1","code":"A","meetings":[{"id":"m1","start":"09:00","end":"10:00"}]}]`, "neither date nor day"},
		{"malformed date", `[{"id":"c1","code":"A","meetings":[{"id":"m1","date":"2026-3-9","start":"09:00","end":"10:00"}]}]`, "malformed date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseFixture([]byte(tc.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestUsersUpsertAndGet(t *testing.T) {
	users, err := OpenUsers(filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("OpenUsers: %v", err)
	}
	defer users.Close()

	missing, err := users.ByGoogleID("nobody")
	if err != nil {
		t.Fatalf("ByGoogleID: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown user, got %+v", missing)
	}

	first, err := users.Upsert(model.User{
		GoogleID:  "sub-1",
		Email:     "ada@example.edu",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if first.CreatedAt == 0 {
		t.Error("CreatedAt not set on first login")
	}

	second, err := users.Upsert(model.User{
		GoogleID: "sub-1",
		Email:    "ada@new.example.edu",
		Picture:  "https://example.edu/ada.png",
	})
	if err != nil {
		t.Fatalf("Upsert (again): %v", err)
	}
	if second.Email != "ada@new.example.edu" || second.Picture == "" {
		t.Errorf("profile fields not refreshed: %+v", second)
	}
	if second.CreatedAt != first.CreatedAt {
		t.Errorf("CreatedAt changed on re-login: %d != %d", second.CreatedAt, first.CreatedAt)
	}
}
