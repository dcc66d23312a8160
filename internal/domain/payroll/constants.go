package payroll

const (
	StatusNotProcessed = "Not Processed"
	StatusPending      = "Pending"
	StatusPaid         = "Paid"

	// legacyStatusProcessed appeared in an earlier iteration of the payroll
	// screens; it is accepted on input and migrated to Paid.
	legacyStatusProcessed = "Processed"
)

// Statuses is the canonical lifecycle: Not Processed -> Pending -> Paid.
var Statuses = []string{StatusNotProcessed, StatusPending, StatusPaid}

const (
	// CompanyIncentiveAmount is the flat company-wide bonus unlocked for a
	// period when the company rating reaches the threshold.
	CompanyIncentiveAmount = 4000.0
	CompanyRatingThreshold = 4.5

	DefaultTotalDays = 30
	MaxTotalDays     = 366
)
