package dates

import (
	"encoding/json"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestKeyRoundTrip(t *testing.T) {
	d := date(2025, time.January, 6)
	k := ToKey(d)
	if k != "2025-01-06" {
		t.Fatalf("ToKey() = %q, want 2025-01-06", k)
	}
	back, err := ParseKey(k)
	if err != nil {
		t.Fatalf("ParseKey() error = %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("ParseKey() = %v, want %v", back, d)
	}
}

func TestParseKeyRejectsMalformed(t *testing.T) {
	tests := []Key{
		"",
		"2025-1-5",
		"2025/01/05",
		"2025-02-31",
		"20250105",
		"2025-01-05T00:00:00",
		"not-a-date",
	}
	for _, k := range tests {
		t.Run(string(k), func(t *testing.T) {
			if _, err := ParseKey(k); err == nil {
				t.Errorf("ParseKey(%q) accepted a malformed key", k)
			}
			if k.Valid() {
				t.Errorf("Key(%q).Valid() = true", k)
			}
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday stays", date(2025, time.January, 6), date(2025, time.January, 6)},
		{"wednesday back to monday", date(2025, time.January, 8), date(2025, time.January, 6)},
		{"sunday goes six back", date(2025, time.January, 12), date(2025, time.January, 6)},
		{"saturday", date(2025, time.January, 11), date(2025, time.January, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfWeek(tt.in); !got.Equal(tt.want) {
				t.Errorf("StartOfWeek(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMonthGrid(t *testing.T) {
	anchors := []time.Time{
		date(2025, time.January, 15),
		date(2025, time.February, 1),
		date(2024, time.February, 29), // leap month
		date(2025, time.June, 30),
		date(2025, time.December, 31),
	}
	for _, anchor := range anchors {
		t.Run(string(ToKey(anchor)), func(t *testing.T) {
			grid := MonthGrid(anchor)
			if len(grid) != 42 {
				t.Fatalf("MonthGrid() returned %d cells, want 42", len(grid))
			}
			if grid[0].Weekday() != time.Monday {
				t.Errorf("grid starts on %v, want Monday", grid[0].Weekday())
			}
			first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.Local)
			if grid[0].After(first) {
				t.Errorf("grid start %v is after the 1st %v", grid[0], first)
			}
			for i := 1; i < len(grid); i++ {
				if !grid[i].Equal(AddDays(grid[i-1], 1)) {
					t.Fatalf("grid cell %d is not consecutive", i)
				}
			}
		})
	}
}

func TestWeekdayBucketing(t *testing.T) {
	// 2025-01-06 is a Monday; walking forward covers the full bijection.
	start := date(2025, time.January, 6)
	for i, want := range Weekdays {
		got := WeekdayOf(AddDays(start, i))
		if got != want {
			t.Errorf("WeekdayOf(+%d) = %q, want %q", i, got, want)
		}
		if got.Time() != AddDays(start, i).Weekday() {
			t.Errorf("%q.Time() = %v, want %v", got, got.Time(), AddDays(start, i).Weekday())
		}
	}
	if (Weekday("Monday")).Valid() {
		t.Error("long-form weekday accepted")
	}
}

func TestMinutesOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"10:30", 630, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"10:60", 0, true},
		{"9:30", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := MinutesOfDay(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MinutesOfDay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("MinutesOfDay(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestKeySetJSON(t *testing.T) {
	s := NewKeySet("2025-01-15", "2025-01-08")
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `["2025-01-08","2025-01-15"]` {
		t.Errorf("Marshal() = %s, want sorted array", data)
	}

	var back KeySet
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.Has("2025-01-08") || !back.Has("2025-01-15") || len(back) != 2 {
		t.Errorf("round trip lost members: %v", back)
	}
}

func TestKeySetWithDoesNotMutate(t *testing.T) {
	s := NewKeySet("2025-01-08")
	s2 := s.With("2025-01-15")
	if s.Has("2025-01-15") {
		t.Error("With() mutated the receiver")
	}
	if !s2.Has("2025-01-08") || !s2.Has("2025-01-15") {
		t.Errorf("With() result missing members: %v", s2)
	}
}
