package payroll

import "time"

// Record is the single payroll document per (employee, month, year). Upserts
// replace the whole document; there is no partial-field merge.
type Record struct {
	ID         string `json:"id,omitempty"`
	EmployeeID string `json:"employeeId"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`

	BasicSalary         float64 `json:"basicSalary"`
	HRA                 float64 `json:"hra"`
	MedicalAllowance    float64 `json:"medicalAllowance"`
	ConveyanceAllowance float64 `json:"conveyanceAllowance"`
	Salary              float64 `json:"salary"`

	TotalDays     int `json:"totalDays"`
	Leaves        int `json:"leaves"`
	LeaveAdjusted int `json:"leaveAdjusted"`
	Absent        int `json:"absent"`
	LateIn        int `json:"lateIn"`
	LateAdjusted  int `json:"lateAdjusted"`
	PayableDays   int `json:"payableDays"`

	Deductions    float64 `json:"deductions"`
	Reimbursement float64 `json:"reimbursement"`

	// The three contributions keep their stored numbers even while disabled;
	// a disabled flag only removes the number from the summed totals.
	IndividualIncentive        float64 `json:"individualIncentive"`
	IndividualIncentiveEnabled bool    `json:"individualIncentiveEnabled"`
	TeamIncentive              float64 `json:"teamIncentive"`
	TeamIncentiveEnabled       bool    `json:"teamIncentiveEnabled"`
	CompanyIncentive           float64 `json:"companyIncentive"`
	CompanyIncentiveEnabled    bool    `json:"companyIncentiveEnabled"`

	Incentive float64 `json:"incentive"`
	Total     float64 `json:"total"`
	Status    string  `json:"status"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// ListRow is one line of the monthly payroll list: every active employee,
// with their payroll figures when a record exists for the period.
type ListRow struct {
	EmployeeID  string  `json:"employeeId"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Department  string  `json:"department"`
	Designation string  `json:"designation"`
	Salary      float64 `json:"salary"`
	PayableDays int     `json:"payableDays"`
	Payable     float64 `json:"payable"`
	Status      string  `json:"status"`
}

// CalculatedIncentive is the individual-incentive calculation surface: the
// rating-derived percentage applied to the employee's monthly salary.
type CalculatedIncentive struct {
	TotalSalary      float64 `json:"totalSalary"`
	IncentivePercent float64 `json:"incentivePercent"`
	IncentiveAmount  float64 `json:"incentiveAmount"`
	AverageRating    float64 `json:"averageRating"`
}

// Prefill is everything the payroll form needs for one (employee, month,
// year): the saved record or create-mode defaults, plus the collaborator
// figures fetched alongside it.
type Prefill struct {
	Record        Record              `json:"record"`
	Exists        bool                `json:"exists"`
	FirstName     string              `json:"firstName"`
	LastName      string              `json:"lastName"`
	Department    string              `json:"department"`
	TeamShare     float64             `json:"teamShare"`
	TeamEnabled   bool                `json:"teamEnabled"`
	CompanyRating float64             `json:"companyRating"`
	CompanyRated  bool                `json:"companyRated"`
	Calculated    CalculatedIncentive `json:"calculated"`
}

// SlipData is the salary-slip view: the paid record plus directory fields.
type SlipData struct {
	Record      Record    `json:"salaryDetails"`
	Name        string    `json:"name"`
	Department  string    `json:"department"`
	Designation string    `json:"designation"`
	JoiningDate time.Time `json:"joiningDate"`
}
