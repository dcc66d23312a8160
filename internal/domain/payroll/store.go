package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store owns the payroll_records table. The table carries a unique index on
// (employee_id, month, year); the store never creates a second record for a
// key, it replaces the existing one.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const recordColumns = `
  id, employee_id, month, year,
  basic_salary, hra, medical_allowance, conveyance_allowance, salary,
  total_days, leaves, leave_adjusted, absent, late_in, late_adjusted, payable_days,
  deductions, reimbursement,
  individual_incentive, individual_incentive_enabled,
  team_incentive, team_incentive_enabled,
  company_incentive, company_incentive_enabled,
  incentive, total, status, created_at, updated_at
`

func scanRecord(row pgx.Row) (Record, error) {
	var r Record
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Month, &r.Year,
		&r.BasicSalary, &r.HRA, &r.MedicalAllowance, &r.ConveyanceAllowance, &r.Salary,
		&r.TotalDays, &r.Leaves, &r.LeaveAdjusted, &r.Absent, &r.LateIn, &r.LateAdjusted, &r.PayableDays,
		&r.Deductions, &r.Reimbursement,
		&r.IndividualIncentive, &r.IndividualIncentiveEnabled,
		&r.TeamIncentive, &r.TeamIncentiveEnabled,
		&r.CompanyIncentive, &r.CompanyIncentiveEnabled,
		&r.Incentive, &r.Total, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// Upsert replaces the full document for (employee, month, year).
func (s *Store) Upsert(ctx context.Context, r Record) (Record, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO payroll_records (
      employee_id, month, year,
      basic_salary, hra, medical_allowance, conveyance_allowance, salary,
      total_days, leaves, leave_adjusted, absent, late_in, late_adjusted, payable_days,
      deductions, reimbursement,
      individual_incentive, individual_incentive_enabled,
      team_incentive, team_incentive_enabled,
      company_incentive, company_incentive_enabled,
      incentive, total, status
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26)
    ON CONFLICT (employee_id, month, year) DO UPDATE SET
      basic_salary = EXCLUDED.basic_salary,
      hra = EXCLUDED.hra,
      medical_allowance = EXCLUDED.medical_allowance,
      conveyance_allowance = EXCLUDED.conveyance_allowance,
      salary = EXCLUDED.salary,
      total_days = EXCLUDED.total_days,
      leaves = EXCLUDED.leaves,
      leave_adjusted = EXCLUDED.leave_adjusted,
      absent = EXCLUDED.absent,
      late_in = EXCLUDED.late_in,
      late_adjusted = EXCLUDED.late_adjusted,
      payable_days = EXCLUDED.payable_days,
      deductions = EXCLUDED.deductions,
      reimbursement = EXCLUDED.reimbursement,
      individual_incentive = EXCLUDED.individual_incentive,
      individual_incentive_enabled = EXCLUDED.individual_incentive_enabled,
      team_incentive = EXCLUDED.team_incentive,
      team_incentive_enabled = EXCLUDED.team_incentive_enabled,
      company_incentive = EXCLUDED.company_incentive,
      company_incentive_enabled = EXCLUDED.company_incentive_enabled,
      incentive = EXCLUDED.incentive,
      total = EXCLUDED.total,
      status = EXCLUDED.status,
      updated_at = now()
    RETURNING `+recordColumns,
		r.EmployeeID, r.Month, r.Year,
		r.BasicSalary, r.HRA, r.MedicalAllowance, r.ConveyanceAllowance, r.Salary,
		r.TotalDays, r.Leaves, r.LeaveAdjusted, r.Absent, r.LateIn, r.LateAdjusted, r.PayableDays,
		r.Deductions, r.Reimbursement,
		r.IndividualIncentive, r.IndividualIncentiveEnabled,
		r.TeamIncentive, r.TeamIncentiveEnabled,
		r.CompanyIncentive, r.CompanyIncentiveEnabled,
		r.Incentive, r.Total, r.Status)
	return scanRecord(row)
}

func (s *Store) Get(ctx context.Context, employeeID string, month, year int) (Record, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+recordColumns+`
    FROM payroll_records
    WHERE employee_id = $1 AND month = $2 AND year = $3
  `, employeeID, month, year)
	r, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return r, err
}

// ListForPeriod returns one row per active employee for the period; the
// payroll figures are zero-valued with status Not Processed when no record
// has been saved yet.
func (s *Store) ListForPeriod(ctx context.Context, month, year int) ([]ListRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.first_name, e.last_name, e.department, e.designation,
           COALESCE(p.salary, e.basic_salary + e.hra + e.medical_allowance + e.conveyance_allowance),
           COALESCE(p.payable_days, 0),
           COALESCE(p.total, 0),
           COALESCE(p.status, $3)
    FROM employees e
    LEFT JOIN payroll_records p
      ON p.employee_id = e.id AND p.month = $1 AND p.year = $2
    WHERE e.status = 'Active'
    ORDER BY e.first_name, e.last_name
  `, month, year, StatusNotProcessed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ListRow
	for rows.Next() {
		var row ListRow
		if err := rows.Scan(&row.EmployeeID, &row.FirstName, &row.LastName, &row.Department,
			&row.Designation, &row.Salary, &row.PayableDays, &row.Payable, &row.Status); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Slip returns the salary-slip bundle for a saved payroll record.
func (s *Store) Slip(ctx context.Context, employeeID string, month, year int) (SlipData, error) {
	rec, err := s.Get(ctx, employeeID, month, year)
	if err != nil {
		return SlipData{}, err
	}

	var data SlipData
	data.Record = rec
	err = s.DB.QueryRow(ctx, `
    SELECT first_name || ' ' || last_name, department, designation, joining_date
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&data.Name, &data.Department, &data.Designation, &data.JoiningDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return SlipData{}, ErrNotFound
	}
	if err != nil {
		return SlipData{}, err
	}
	return data, nil
}

// History lists every saved payroll record for an employee, newest first.
func (s *Store) History(ctx context.Context, employeeID string) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+recordColumns+`
    FROM payroll_records
    WHERE employee_id = $1
    ORDER BY year DESC, month DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
