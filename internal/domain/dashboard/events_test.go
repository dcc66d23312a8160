package dashboard

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence(t *testing.T) {
	today := date(2025, time.June, 15)

	tests := []struct {
		name   string
		anchor time.Time
		want   time.Time
	}{
		{name: "later this year", anchor: date(1990, time.August, 3), want: date(2025, time.August, 3)},
		{name: "already passed rolls to next year", anchor: date(1990, time.February, 10), want: date(2026, time.February, 10)},
		{name: "today counts", anchor: date(1990, time.June, 15), want: date(2025, time.June, 15)},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := nextOccurrence(tc.anchor, today); !got.Equal(tc.want) {
				t.Fatalf("nextOccurrence = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestUpcomingFiltersAndSorts(t *testing.T) {
	today := date(2025, time.June, 15)
	people := []person{
		{ID: "1", Name: "Zara", Anchor: date(1992, time.June, 20)},
		{ID: "2", Name: "Arun", Anchor: date(1988, time.June, 18)},
		{ID: "3", Name: "Meena", Anchor: date(1995, time.December, 25)},
	}

	events := upcoming(people, today, false)
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2 inside the %d-day window", len(events), LookaheadDays)
	}
	if events[0].Name != "Arun" || events[1].Name != "Zara" {
		t.Fatalf("events must sort by date, got %+v", events)
	}
	if events[0].Years != 0 {
		t.Fatalf("birthday events carry no years, got %d", events[0].Years)
	}
}

func TestUpcomingAnniversaryYears(t *testing.T) {
	today := date(2025, time.June, 15)
	people := []person{
		{ID: "1", Name: "Dev", Anchor: date(2020, time.July, 1)},
	}

	events := upcoming(people, today, true)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Years != 5 {
		t.Fatalf("years = %d, want 5", events[0].Years)
	}
}

func TestUpcomingTieBreaksOnName(t *testing.T) {
	today := date(2025, time.June, 15)
	people := []person{
		{ID: "1", Name: "Ravi", Anchor: date(1990, time.June, 20)},
		{ID: "2", Name: "Anil", Anchor: date(1985, time.June, 20)},
	}

	events := upcoming(people, today, false)
	if len(events) != 2 || events[0].Name != "Anil" {
		t.Fatalf("same-day events must sort by name, got %+v", events)
	}
}
