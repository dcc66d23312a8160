package payroll

import (
	"errors"
	"testing"
)

func TestPayableDays(t *testing.T) {
	tests := []struct {
		name          string
		totalDays     int
		absent        int
		leaves        int
		leaveAdjusted int
		want          int
	}{
		{name: "no absences", totalDays: 30, want: 30},
		{name: "absent and leaves subtract", totalDays: 30, absent: 2, leaves: 3, want: 25},
		{name: "leave adjustment restores days", totalDays: 30, absent: 0, leaves: 4, leaveAdjusted: 2, want: 28},
		{name: "clamped at zero", totalDays: 30, absent: 20, leaves: 15, want: 0},
		{name: "clamped at total days", totalDays: 30, leaveAdjusted: 5, want: 30},
		{name: "zero total days", totalDays: 0, absent: 1, want: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := PayableDays(tc.totalDays, tc.absent, tc.leaves, tc.leaveAdjusted)
			if got != tc.want {
				t.Fatalf("PayableDays = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestIncentivePercent(t *testing.T) {
	tests := []struct {
		rating float64
		want   float64
	}{
		{rating: 4.5, want: 10},
		{rating: 4.9, want: 10},
		{rating: 4.0, want: 8},
		{rating: 4.49, want: 8},
		{rating: 3.5, want: 5},
		{rating: 3.0, want: 3},
		{rating: 2.99, want: 0},
		{rating: 0, want: 0},
	}

	for _, tc := range tests {
		if got := IncentivePercent(tc.rating); got != tc.want {
			t.Fatalf("IncentivePercent(%v) = %v, want %v", tc.rating, got, tc.want)
		}
	}
}

func TestIndividualIncentive(t *testing.T) {
	// 33500 at 8% is 2680 exactly.
	if got := IndividualIncentive(33500, 8); got != 2680 {
		t.Fatalf("IndividualIncentive = %v, want 2680", got)
	}
	// 33333 at 3% is 999.99, rounded to 1000.
	if got := IndividualIncentive(33333, 3); got != 1000 {
		t.Fatalf("IndividualIncentive = %v, want 1000", got)
	}
	if got := IndividualIncentive(50000, 0); got != 0 {
		t.Fatalf("IndividualIncentive = %v, want 0", got)
	}
}

func TestCompanyIncentive(t *testing.T) {
	if got := CompanyIncentive(4.5, nil); got != CompanyIncentiveAmount {
		t.Fatalf("at threshold = %v, want %v", got, CompanyIncentiveAmount)
	}
	// 4.4999 must stay below the threshold; float comparison would be
	// too forgiving here.
	if got := CompanyIncentive(4.4999, nil); got != 0 {
		t.Fatalf("below threshold = %v, want 0", got)
	}
	override := 2500.0
	if got := CompanyIncentive(3.0, &override); got != 2500 {
		t.Fatalf("override = %v, want 2500", got)
	}
}

func TestCompose(t *testing.T) {
	rec := Record{
		BasicSalary:         20000,
		HRA:                 8000,
		MedicalAllowance:    3000,
		ConveyanceAllowance: 2500,
		TotalDays:           30,
		Absent:              1,
		Leaves:              2,
		LeaveAdjusted:       1,
		Deductions:          1200,
		Reimbursement:       700,

		IndividualIncentive:        2680,
		IndividualIncentiveEnabled: true,
		TeamIncentive:              1500,
		TeamIncentiveEnabled:       true,
		CompanyIncentive:           4000,
		CompanyIncentiveEnabled:    false,
	}

	got := Compose(rec)

	if got.PayableDays != 28 {
		t.Fatalf("payableDays = %d, want 28", got.PayableDays)
	}
	if got.Salary != 33500 {
		t.Fatalf("salary = %v, want 33500", got.Salary)
	}
	// Disabled company incentive keeps its number but adds nothing.
	if got.Incentive != 4180 {
		t.Fatalf("incentive = %v, want 4180", got.Incentive)
	}
	if got.CompanyIncentive != 4000 {
		t.Fatalf("companyIncentive = %v, want stored 4000", got.CompanyIncentive)
	}
	if got.Total != 37180 {
		t.Fatalf("total = %v, want 37180", got.Total)
	}
}

func TestComposeIdempotent(t *testing.T) {
	rec := Record{
		BasicSalary:                15000,
		HRA:                        5000,
		TotalDays:                  30,
		Leaves:                     3,
		IndividualIncentive:        600,
		IndividualIncentiveEnabled: true,
		Status:                     "Processed",
	}

	once := Compose(rec)
	twice := Compose(once)
	if once != twice {
		t.Fatalf("Compose is not idempotent:\nonce  %+v\ntwice %+v", once, twice)
	}
	if twice.Status != StatusPaid {
		t.Fatalf("status = %q, want %q", twice.Status, StatusPaid)
	}
}

func TestComposeEnableFlagRestores(t *testing.T) {
	rec := Record{
		BasicSalary:          10000,
		TotalDays:            30,
		TeamIncentive:        2000,
		TeamIncentiveEnabled: false,
	}

	disabled := Compose(rec)
	if disabled.Incentive != 0 {
		t.Fatalf("disabled incentive = %v, want 0", disabled.Incentive)
	}

	rec.TeamIncentiveEnabled = true
	enabled := Compose(rec)
	if enabled.Incentive != 2000 {
		t.Fatalf("re-enabled incentive = %v, want the stored 2000", enabled.Incentive)
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty defaults", input: "", want: StatusNotProcessed},
		{name: "canonical pending", input: "Pending", want: StatusPending},
		{name: "canonical paid", input: "Paid", want: StatusPaid},
		{name: "legacy processed maps to paid", input: "Processed", want: StatusPaid},
		{name: "legacy processed case-insensitive", input: "processed", want: StatusPaid},
		{name: "whitespace trimmed", input: "  Pending ", want: StatusPending},
		{name: "unknown rejected", input: "Queued", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeStatus(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownStatus) {
					t.Fatalf("err = %v, want ErrUnknownStatus", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("NormalizeStatus(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
