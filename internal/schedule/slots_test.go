package schedule

import (
	"testing"
	"time"
)

// Monday 2026-03-02 is a convenient weekday anchor.
var monday = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

func TestGenerateFutureDateAllSlots(t *testing.T) {
	now := time.Date(2026, time.February, 27, 14, 45, 0, 0, time.UTC)
	slots := Generate(monday, now)

	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
	if got := slots[0].Time.Format("15:04"); got != "09:00" {
		t.Errorf("first slot = %s, want 09:00", got)
	}
	if got := slots[len(slots)-1].Time.Format("15:04"); got != "16:30" {
		t.Errorf("last slot = %s, want 16:30", got)
	}
}

func TestGenerateTodayExcludesPast(t *testing.T) {
	now := time.Date(2026, time.March, 2, 14, 45, 0, 0, time.UTC)
	slots := Generate(monday, now)

	if len(slots) == 0 {
		t.Fatal("expected slots at 14:45")
	}
	for _, s := range slots {
		if s.Time.Hour() < 15 {
			t.Errorf("slot %s is before 15:00", s.Formatted)
		}
	}
	// 15:00, 15:30, 16:00, 16:30
	if len(slots) != 4 {
		t.Errorf("expected 4 remaining slots, got %d", len(slots))
	}
}

func TestGenerateTodayAfterHours(t *testing.T) {
	now := time.Date(2026, time.March, 2, 18, 0, 0, 0, time.UTC)
	slots := Generate(monday, now)
	if len(slots) != 0 {
		t.Fatalf("expected no slots after 17:00, got %d", len(slots))
	}
	if !Group(slots).Empty() {
		t.Error("grouping of zero slots should report empty")
	}
}

func TestGenerateExactBoundaryKept(t *testing.T) {
	// A slot equal to the current time is not strictly in the past.
	now := time.Date(2026, time.March, 2, 14, 30, 0, 0, time.UTC)
	slots := Generate(monday, now)
	if slots[0].Time.Format("15:04") != "14:30" {
		t.Errorf("14:30 slot should be offered at exactly 14:30, got %s", slots[0].Formatted)
	}
}

func TestPeriodClassification(t *testing.T) {
	now := time.Date(2026, time.February, 27, 8, 0, 0, 0, time.UTC)
	g := Group(Generate(monday, now))

	if len(g.Morning) != 6 { // 09:00–11:30
		t.Errorf("morning slots = %d, want 6", len(g.Morning))
	}
	if len(g.Afternoon) != 6 { // 12:00–14:30
		t.Errorf("afternoon slots = %d, want 6", len(g.Afternoon))
	}
	if len(g.Evening) != 4 { // 15:00–16:30
		t.Errorf("evening slots = %d, want 4", len(g.Evening))
	}
	for _, s := range g.Morning {
		if s.Period != Morning {
			t.Errorf("slot %s misclassified as %s", s.Formatted, s.Period)
		}
	}
}

func TestGroupOmitsEmptyPeriods(t *testing.T) {
	now := time.Date(2026, time.March, 2, 15, 10, 0, 0, time.UTC)
	g := Group(Generate(monday, now))
	if g.Morning != nil || g.Afternoon != nil {
		t.Error("past periods should be nil")
	}
	if len(g.Evening) == 0 {
		t.Error("evening should have remaining slots")
	}
}

func TestDateAvailable(t *testing.T) {
	now := monday
	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"today", monday, true},
		{"yesterday", monday.AddDate(0, 0, -1), false},
		{"next friday", monday.AddDate(0, 0, 4), true},
		{"saturday", monday.AddDate(0, 0, 5), false},
		{"sunday", monday.AddDate(0, 0, 6), false},
		{"next monday", monday.AddDate(0, 0, 7), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateAvailable(tt.date, now); got != tt.want {
				t.Errorf("DateAvailable(%s) = %v, want %v", tt.date.Weekday(), got, tt.want)
			}
		})
	}
}

func TestFirstAvailableDate(t *testing.T) {
	if got := FirstAvailableDate(monday.Add(10 * time.Hour)); !got.Equal(monday) {
		t.Errorf("weekday should return today, got %s", got)
	}

	saturday := monday.AddDate(0, 0, 5)
	want := monday.AddDate(0, 0, 7)
	if got := FirstAvailableDate(saturday); !got.Equal(want) {
		t.Errorf("saturday should return next monday, got %s", got)
	}

	sunday := monday.AddDate(0, 0, 6)
	if got := FirstAvailableDate(sunday); !got.Equal(want) {
		t.Errorf("sunday should return next monday, got %s", got)
	}
}
