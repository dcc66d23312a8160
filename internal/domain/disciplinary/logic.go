package disciplinary

import "time"

// DaysLeftInReview derives how many review days remain for an action. The
// review window starts on the action date; resolved actions and actions
// without a review period have nothing left.
func DaysLeftInReview(action Action, now time.Time) int {
	if action.Status == StatusResolved || action.ReviewPeriodDays <= 0 {
		return 0
	}
	deadline := action.ActionDate.AddDate(0, 0, action.ReviewPeriodDays)
	remaining := int(deadline.Sub(now).Hours() / 24)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ReviewDue reports whether the action's review window ends within the next
// horizon days.
func ReviewDue(action Action, now time.Time, horizonDays int) bool {
	if action.Status == StatusResolved || action.ReviewPeriodDays <= 0 {
		return false
	}
	left := DaysLeftInReview(action, now)
	return left > 0 && left <= horizonDays
}
