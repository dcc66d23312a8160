package disciplinary

import "time"

const (
	TypeWarning     = "Warning"
	TypeSuspension  = "Suspension"
	TypeTermination = "Termination Notice"

	StatusActive   = "Active"
	StatusReview   = "Review"
	StatusResolved = "Resolved"

	MaxReviewPeriodDays = 365
)

var (
	Types    = []string{TypeWarning, TypeSuspension, TypeTermination}
	Statuses = []string{StatusActive, StatusReview, StatusResolved}
)

type Action struct {
	ID               string    `json:"id"`
	EmployeeID       string    `json:"employeeId"`
	FirstName        string    `json:"firstName,omitempty"`
	LastName         string    `json:"lastName,omitempty"`
	Type             string    `json:"type"`
	Reason           string    `json:"reason"`
	Status           string    `json:"status"`
	ReviewPeriodDays int       `json:"reviewPeriodDays"`
	ActionDate       time.Time `json:"date"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
