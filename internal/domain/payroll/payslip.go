package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// SlipPDF renders the salary slip for a saved payroll record. The document
// is built in memory and streamed to the client; nothing is written to disk.
func SlipPDF(data SlipData, companyName, companyAddress string) ([]byte, error) {
	rec := data.Record

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, companyName)
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, companyAddress)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Salary Slip - %s %d", monthName(rec.Month), rec.Year))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Employee: %s", data.Name))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Department: %s | Designation: %s", data.Department, data.Designation))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Joining Date: %s", data.JoiningDate.Format("2006-01-02")))
	pdf.Ln(10)

	line := func(label string, amount float64) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(110, 7, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, fmt.Sprintf("%.2f", amount), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	line("Basic Salary", rec.BasicSalary)
	line("HRA", rec.HRA)
	line("Medical Allowance", rec.MedicalAllowance)
	line("Conveyance Allowance", rec.ConveyanceAllowance)
	line("Reimbursement", rec.Reimbursement)
	line("Incentive", rec.Incentive)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	line("Total Deductions", rec.Deductions)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Total Days: %d | Payable Days: %d", rec.TotalDays, rec.PayableDays))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Net Salary Payable: %.2f", rec.Total))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var monthNames = [...]string{"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}

func monthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month]
}
