package payroll

import (
	"bytes"
	"testing"
	"time"
)

func TestSlipPDF(t *testing.T) {
	data := SlipData{
		Record: Compose(Record{
			EmployeeID:                 "e-1",
			Month:                      6,
			Year:                       2025,
			BasicSalary:                20000,
			HRA:                        8000,
			MedicalAllowance:           3000,
			ConveyanceAllowance:        2500,
			TotalDays:                  30,
			IndividualIncentive:        2680,
			IndividualIncentiveEnabled: true,
			Status:                     StatusPaid,
		}),
		Name:        "Asha Verma",
		Department:  "Design",
		Designation: "Senior Designer",
		JoiningDate: time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	pdf, err := SlipPDF(data, "Madmen Marketing", "New Delhi, India")
	if err != nil {
		t.Fatalf("SlipPDF: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("empty PDF output")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header: %q", pdf[:8])
	}
}
