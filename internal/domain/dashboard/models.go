package dashboard

import "time"

// DepartmentStat is one bar of the headcount widget.
type DepartmentStat struct {
	Department    string `json:"department"`
	EmployeeCount int    `json:"employeeCount"`
}

// UpcomingEvent is a birthday or work anniversary inside the lookahead
// window, already formatted for the card lists.
type UpcomingEvent struct {
	EmployeeID  string    `json:"employeeId"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
	Date        time.Time `json:"date"`
	// Years is the completed years of service; zero for birthdays.
	Years int `json:"years,omitempty"`
}

type person struct {
	ID          string
	Name        string
	Designation string
	Anchor      time.Time
}
