package shared

import (
	"net/http"
	"strconv"
	"time"
)

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

// ParsePeriod reads the month/year query parameters, defaulting to the
// current period when absent.
func ParsePeriod(r *http.Request) (month, year int) {
	now := time.Now()
	month = int(now.Month())
	year = now.Year()
	if raw := r.URL.Query().Get("month"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			month = v
		}
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			year = v
		}
	}
	return month, year
}

var monthNames = [...]string{"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}

func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month]
}
