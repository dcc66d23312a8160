package shared

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-06-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got.Year() != 2025 || got.Month() != time.June || got.Day() != 15 {
		t.Fatalf("ParseDate = %v", got)
	}

	if _, err := ParseDate("2025-06-15T10:30:00Z"); err != nil {
		t.Fatalf("RFC3339 input must parse: %v", err)
	}

	if _, err := ParseDate("15/06/2025"); err == nil {
		t.Fatal("unsupported format must fail")
	}
}

func TestParsePeriod(t *testing.T) {
	r := httptest.NewRequest("GET", "/?month=3&year=2024", nil)
	month, year := ParsePeriod(r)
	if month != 3 || year != 2024 {
		t.Fatalf("ParsePeriod = (%d, %d), want (3, 2024)", month, year)
	}

	r = httptest.NewRequest("GET", "/", nil)
	month, year = ParsePeriod(r)
	now := time.Now()
	if month != int(now.Month()) || year != now.Year() {
		t.Fatalf("ParsePeriod default = (%d, %d), want current period", month, year)
	}
}

func TestMonthName(t *testing.T) {
	if got := MonthName(1); got != "January" {
		t.Fatalf("MonthName(1) = %q", got)
	}
	if got := MonthName(13); got != "" {
		t.Fatalf("MonthName(13) = %q, want empty", got)
	}
}
