package payroll

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PayableDays derives the days an employee is paid for:
//
//	totalDays - absent - leaves + leaveAdjusted
//
// leaveAdjusted reduces the effective leave penalty. The result is clamped
// to [0, totalDays]; the clamp is a floor/ceiling on the derived figure, not
// on the user's raw entry (raw day counts are validated with the reject
// policy instead).
func PayableDays(totalDays, absent, leaves, leaveAdjusted int) int {
	days := totalDays - absent - leaves + leaveAdjusted
	if days < 0 {
		return 0
	}
	if days > totalDays {
		return totalDays
	}
	return days
}

// IncentivePercent maps the monthly average rating to the individual
// incentive percentage band.
func IncentivePercent(averageRating float64) float64 {
	switch {
	case averageRating >= 4.5:
		return 10
	case averageRating >= 4.0:
		return 8
	case averageRating >= 3.5:
		return 5
	case averageRating >= 3.0:
		return 3
	default:
		return 0
	}
}

// IndividualIncentive is round(totalSalary * percent / 100) to the nearest
// whole currency unit.
func IndividualIncentive(totalSalary, percent float64) float64 {
	amount := decimal.NewFromFloat(totalSalary).
		Mul(decimal.NewFromFloat(percent)).
		Div(decimal.NewFromInt(100)).
		Round(0)
	out, _ := amount.Float64()
	return out
}

// CompanyIncentive returns the flat company bonus when the company rating
// meets the threshold. A previously saved override wins over the automatic
// amount; the threshold is checked with exact decimal comparison so 4.4999
// stays below 4.5.
func CompanyIncentive(companyRating float64, override *float64) float64 {
	if override != nil && *override > 0 {
		return *override
	}
	rating := decimal.NewFromFloat(companyRating)
	threshold := decimal.NewFromFloat(CompanyRatingThreshold)
	if rating.GreaterThanOrEqual(threshold) {
		return CompanyIncentiveAmount
	}
	return 0
}

// Compose recomputes every derived field of a record from its inputs:
// payable days, the incentive sum of the enabled contributions, and the net
// payable total. Disabled contributions keep their stored numbers but
// contribute zero. Compose is pure, so submitting the same record twice
// yields the same totals.
func Compose(rec Record) Record {
	rec.Status = canonicalStatus(rec.Status)
	rec.PayableDays = PayableDays(rec.TotalDays, rec.Absent, rec.Leaves, rec.LeaveAdjusted)

	incentive := decimal.Zero
	if rec.IndividualIncentiveEnabled {
		incentive = incentive.Add(decimal.NewFromFloat(rec.IndividualIncentive))
	}
	if rec.TeamIncentiveEnabled {
		incentive = incentive.Add(decimal.NewFromFloat(rec.TeamIncentive))
	}
	if rec.CompanyIncentiveEnabled {
		incentive = incentive.Add(decimal.NewFromFloat(rec.CompanyIncentive))
	}
	rec.Incentive, _ = incentive.Round(2).Float64()

	rec.Salary, _ = decimal.NewFromFloat(rec.BasicSalary).
		Add(decimal.NewFromFloat(rec.HRA)).
		Add(decimal.NewFromFloat(rec.MedicalAllowance)).
		Add(decimal.NewFromFloat(rec.ConveyanceAllowance)).
		Round(2).Float64()

	total := decimal.NewFromFloat(rec.Salary).
		Sub(decimal.NewFromFloat(rec.Deductions)).
		Add(decimal.NewFromFloat(rec.Reimbursement)).
		Add(incentive)
	rec.Total, _ = total.Round(2).Float64()

	return rec
}

// NormalizeStatus validates a submitted status against the canonical
// enumeration, mapping the legacy Processed value to Paid. Empty input
// defaults to Not Processed.
func NormalizeStatus(status string) (string, error) {
	trimmed := strings.TrimSpace(status)
	if trimmed == "" {
		return StatusNotProcessed, nil
	}
	normalized := canonicalStatus(trimmed)
	for _, known := range Statuses {
		if normalized == known {
			return normalized, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, status)
}

func canonicalStatus(status string) string {
	if strings.EqualFold(strings.TrimSpace(status), legacyStatusProcessed) {
		return StatusPaid
	}
	return strings.TrimSpace(status)
}
