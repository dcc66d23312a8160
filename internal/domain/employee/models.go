package employee

import "time"

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type Employee struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone,omitempty"`
	Department     string     `json:"department"`
	Designation    string     `json:"designation"`
	EmploymentType string     `json:"employmentType"`
	Status         string     `json:"status"`
	JoiningDate    time.Time  `json:"joiningDate"`
	LastWorkingDay *time.Time `json:"lastWorkingDay,omitempty"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Bank           BankInfo   `json:"bank"`
	Salary         SalaryInfo `json:"salary"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type BankInfo struct {
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	IFSC          string `json:"ifsc,omitempty"`
}

// SalaryInfo carries the monthly base components that payroll composes.
type SalaryInfo struct {
	BasicSalary         float64 `json:"basicSalary"`
	HRA                 float64 `json:"hra"`
	MedicalAllowance    float64 `json:"medicalAllowance"`
	ConveyanceAllowance float64 `json:"conveyanceAllowance"`
}

// Monthly is the gross of the base components.
func (s SalaryInfo) Monthly() float64 {
	return s.BasicSalary + s.HRA + s.MedicalAllowance + s.ConveyanceAllowance
}

// Profile bundles the directory record with the derived badges the profile
// screen shows.
type Profile struct {
	Employee            Employee `json:"employee"`
	LatestAverageScore  *float64 `json:"latestAverageScore,omitempty"`
	ActiveDisciplinary  int      `json:"activeDisciplinary"`
	TenureMonths        int      `json:"tenureMonths"`
	UpcomingAnniversary bool     `json:"upcomingAnniversary"`
}
