package dashboard

import (
	"sort"
	"time"
)

// LookaheadDays is how far the birthday and anniversary cards look forward.
const LookaheadDays = 30

// nextOccurrence returns the next calendar occurrence of anchor's month and
// day on or after today. Feb 29 anchors land on Mar 1 in common years.
func nextOccurrence(anchor, today time.Time) time.Time {
	today = today.Truncate(24 * time.Hour)
	next := time.Date(today.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, today.Location())
	if next.Before(today) {
		next = time.Date(today.Year()+1, anchor.Month(), anchor.Day(), 0, 0, 0, 0, today.Location())
	}
	return next
}

func upcoming(people []person, today time.Time, withYears bool) []UpcomingEvent {
	horizon := today.Truncate(24 * time.Hour).AddDate(0, 0, LookaheadDays)

	var out []UpcomingEvent
	for _, p := range people {
		next := nextOccurrence(p.Anchor, today)
		if next.After(horizon) {
			continue
		}
		evt := UpcomingEvent{
			EmployeeID:  p.ID,
			Name:        p.Name,
			Designation: p.Designation,
			Date:        next,
		}
		if withYears {
			evt.Years = next.Year() - p.Anchor.Year()
		}
		out = append(out, evt)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].Name < out[j].Name
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
