package disciplinary

import (
	"testing"
	"time"
)

func TestDaysLeftInReview(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		action Action
		want   int
	}{
		{
			name: "mid window",
			action: Action{
				Status:           StatusReview,
				ReviewPeriodDays: 30,
				ActionDate:       now.AddDate(0, 0, -10),
			},
			want: 20,
		},
		{
			name: "window expired",
			action: Action{
				Status:           StatusActive,
				ReviewPeriodDays: 7,
				ActionDate:       now.AddDate(0, 0, -30),
			},
			want: 0,
		},
		{
			name: "resolved has nothing left",
			action: Action{
				Status:           StatusResolved,
				ReviewPeriodDays: 30,
				ActionDate:       now.AddDate(0, 0, -1),
			},
			want: 0,
		},
		{
			name: "no review period",
			action: Action{
				Status:     StatusActive,
				ActionDate: now,
			},
			want: 0,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysLeftInReview(tc.action, now); got != tc.want {
				t.Fatalf("DaysLeftInReview = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestReviewDue(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	dueSoon := Action{
		Status:           StatusActive,
		ReviewPeriodDays: 30,
		ActionDate:       now.AddDate(0, 0, -25),
	}
	if !ReviewDue(dueSoon, now, 14) {
		t.Fatal("action with 5 days left must be due within a 14-day horizon")
	}

	farOff := Action{
		Status:           StatusActive,
		ReviewPeriodDays: 90,
		ActionDate:       now,
	}
	if ReviewDue(farOff, now, 14) {
		t.Fatal("action with 90 days left must not be due within a 14-day horizon")
	}

	resolved := Action{
		Status:           StatusResolved,
		ReviewPeriodDays: 30,
		ActionDate:       now.AddDate(0, 0, -25),
	}
	if ReviewDue(resolved, now, 14) {
		t.Fatal("resolved actions are never due")
	}
}
