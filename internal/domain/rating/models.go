package rating

import "time"

// Categories holds the seven scored dimensions. A nil field means the rater
// left that category blank; blank categories stay out of the average.
type Categories struct {
	Ethics     *float64 `json:"ethics,omitempty"`
	Discipline *float64 `json:"discipline,omitempty"`
	WorkEthics *float64 `json:"workEthics,omitempty"`
	Output     *float64 `json:"output,omitempty"`
	TeamPlay   *float64 `json:"teamPlay,omitempty"`
	Leadership *float64 `json:"leadership,omitempty"`
	ExtraMile  *float64 `json:"extraMile,omitempty"`
}

func (c Categories) fields() []*float64 {
	return []*float64{c.Ethics, c.Discipline, c.WorkEthics, c.Output, c.TeamPlay, c.Leadership, c.ExtraMile}
}

// Present returns the values of the filled-in categories.
func (c Categories) Present() []float64 {
	var out []float64
	for _, field := range c.fields() {
		if field != nil {
			out = append(out, *field)
		}
	}
	return out
}

// Clamped returns a copy with every present value forced into [0, 5].
// Scores clamp silently on input rather than rejecting; this is the one
// field family with that policy.
func (c Categories) Clamped() Categories {
	clamp := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		clamped := Clamp(*v)
		return &clamped
	}
	return Categories{
		Ethics:     clamp(c.Ethics),
		Discipline: clamp(c.Discipline),
		WorkEthics: clamp(c.WorkEthics),
		Output:     clamp(c.Output),
		TeamPlay:   clamp(c.TeamPlay),
		Leadership: clamp(c.Leadership),
		ExtraMile:  clamp(c.ExtraMile),
	}
}

type MonthlyRating struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	Month        int        `json:"month"`
	Year         int        `json:"year"`
	Categories   Categories `json:"categories"`
	AverageScore float64    `json:"averageScore"`
	Department   string     `json:"department,omitempty"`
	RatedBy      string     `json:"ratedBy,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type MonthPoint struct {
	Month     int     `json:"month"`
	AvgRating float64 `json:"avgRating"`
}

type DepartmentAverage struct {
	Department string  `json:"department"`
	AvgRating  float64 `json:"avgRating"`
	Employees  int     `json:"employees"`
}

type EmployeeRatingRow struct {
	EmployeeID   string  `json:"employeeId"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Department   string  `json:"department"`
	Designation  string  `json:"designation"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	AverageScore float64 `json:"averageScore"`
}
