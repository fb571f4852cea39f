package schedule

import (
	"time"
)

// Period classifies a slot for grouped display.
type Period string

const (
	Morning   Period = "morning"   // before 12:00
	Afternoon Period = "afternoon" // 12:00–14:59
	Evening   Period = "evening"   // 15:00–16:59
)

// Slot is one bookable half-hour instant.
type Slot struct {
	Time      time.Time `json:"time"`
	Formatted string    `json:"formatted"`
	Period    Period    `json:"period"`
}

const (
	startHour = 9  // first slot 09:00
	endHour   = 17 // last slot 16:30
)

// Generate produces the half-hour slots for date, every 30 minutes from
// 09:00 up to but not including 17:00. When date is the same day as
// now, slots strictly before the current time are omitted. The result
// is derived state: recompute it whenever the selected date changes.
func Generate(date, now time.Time) []Slot {
	slots := make([]Slot, 0, (endHour-startHour)*2)
	sameDay := isSameDay(date, now)

	for hour := startHour; hour < endHour; hour++ {
		for _, minute := range []int{0, 30} {
			if sameDay {
				if hour < now.Hour() || (hour == now.Hour() && minute < now.Minute()) {
					continue
				}
			}
			t := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
			slots = append(slots, Slot{
				Time:      t,
				Formatted: t.Format("3:04 PM"),
				Period:    periodOf(hour),
			})
		}
	}
	return slots
}

func periodOf(hour int) Period {
	switch {
	case hour < 12:
		return Morning
	case hour < 15:
		return Afternoon
	default:
		return Evening
	}
}

// Grouped holds slots bucketed by day-part. Periods with no slots stay
// nil so the display layer can omit them.
type Grouped struct {
	Morning   []Slot `json:"morning,omitempty"`
	Afternoon []Slot `json:"afternoon,omitempty"`
	Evening   []Slot `json:"evening,omitempty"`
}

// Empty reports the distinct no-availability state: a date that yields
// zero slots in every day-part.
func (g Grouped) Empty() bool {
	return len(g.Morning) == 0 && len(g.Afternoon) == 0 && len(g.Evening) == 0
}

// Group buckets slots by day-part, preserving order within each bucket.
func Group(slots []Slot) Grouped {
	var g Grouped
	for _, s := range slots {
		switch s.Period {
		case Morning:
			g.Morning = append(g.Morning, s)
		case Afternoon:
			g.Afternoon = append(g.Afternoon, s)
		case Evening:
			g.Evening = append(g.Evening, s)
		}
	}
	return g
}

// DateAvailable reports whether date can be selected at all: not before
// today and not a weekend. Availability of individual times within the
// day is Generate's concern.
func DateAvailable(date, now time.Time) bool {
	if isWeekend(date) {
		return false
	}
	return !startOfDay(date).Before(startOfDay(now))
}

// FirstAvailableDate returns today when it is a weekday, otherwise the
// next weekday within the following seven days. The trailing fallback
// to today cannot trigger under a seven-day week; it is kept as a
// defensive catch.
func FirstAvailableDate(now time.Time) time.Time {
	today := startOfDay(now)
	if !isWeekend(today) {
		return today
	}
	for days := 1; days <= 7; days++ {
		next := today.AddDate(0, 0, days)
		if !isWeekend(next) {
			return next
		}
	}
	return today
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func isSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
