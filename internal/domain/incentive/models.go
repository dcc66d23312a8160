package incentive

import "time"

// TeamIncentive is one allocation per (team, month, year): a pot of money
// and the member shares it is split into.
type TeamIncentive struct {
	ID          string        `json:"id"`
	Team        string        `json:"team"`
	Month       int           `json:"month"`
	Year        int           `json:"year"`
	TotalAmount float64       `json:"totalAmount"`
	Members     []MemberShare `json:"members"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type MemberShare struct {
	EmployeeID string  `json:"employeeId"`
	FirstName  string  `json:"firstName,omitempty"`
	LastName   string  `json:"lastName,omitempty"`
	Amount     float64 `json:"amount"`
}

// MemberLookup is the payroll-facing view of one employee's share for a
// period. Enabled defaults to whether a positive share exists.
type MemberLookup struct {
	Amount  float64 `json:"amount"`
	Enabled bool    `json:"enableTeamIncentive"`
}
