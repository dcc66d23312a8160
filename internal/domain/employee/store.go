package employee

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
  id, first_name, last_name, email, COALESCE(phone, ''),
  department, designation, employment_type, status,
  joining_date, last_working_day, date_of_birth,
  COALESCE(bank_name, ''), COALESCE(account_number, ''), COALESCE(ifsc, ''),
  basic_salary, hra, medical_allowance, conveyance_allowance,
  created_at, updated_at
`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
		&e.Department, &e.Designation, &e.EmploymentType, &e.Status,
		&e.JoiningDate, &e.LastWorkingDay, &e.DateOfBirth,
		&e.Bank.BankName, &e.Bank.AccountNumber, &e.Bank.IFSC,
		&e.Salary.BasicSalary, &e.Salary.HRA, &e.Salary.MedicalAllowance, &e.Salary.ConveyanceAllowance,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (s *Store) Create(ctx context.Context, e Employee) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO employees (
      first_name, last_name, email, phone, department, designation,
      employment_type, status, joining_date, last_working_day, date_of_birth,
      bank_name, account_number, ifsc,
      basic_salary, hra, medical_allowance, conveyance_allowance
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
    RETURNING `+employeeColumns,
		e.FirstName, e.LastName, e.Email, e.Phone, e.Department, e.Designation,
		e.EmploymentType, e.Status, e.JoiningDate, e.LastWorkingDay, e.DateOfBirth,
		e.Bank.BankName, e.Bank.AccountNumber, e.Bank.IFSC,
		e.Salary.BasicSalary, e.Salary.HRA, e.Salary.MedicalAllowance, e.Salary.ConveyanceAllowance)
	created, err := scanEmployee(row)
	if isUniqueViolation(err) {
		return Employee{}, ErrEmailExists
	}
	return created, err
}

func (s *Store) Update(ctx context.Context, e Employee) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE employees SET
      first_name = $2, last_name = $3, email = $4, phone = $5,
      department = $6, designation = $7, employment_type = $8, status = $9,
      joining_date = $10, last_working_day = $11, date_of_birth = $12,
      bank_name = $13, account_number = $14, ifsc = $15,
      basic_salary = $16, hra = $17, medical_allowance = $18, conveyance_allowance = $19,
      updated_at = now()
    WHERE id = $1
    RETURNING `+employeeColumns,
		e.ID, e.FirstName, e.LastName, e.Email, e.Phone,
		e.Department, e.Designation, e.EmploymentType, e.Status,
		e.JoiningDate, e.LastWorkingDay, e.DateOfBirth,
		e.Bank.BankName, e.Bank.AccountNumber, e.Bank.IFSC,
		e.Salary.BasicSalary, e.Salary.HRA, e.Salary.MedicalAllowance, e.Salary.ConveyanceAllowance)
	updated, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if isUniqueViolation(err) {
		return Employee{}, ErrEmailExists
	}
	return updated, err
}

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = $1", id)
	e, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return e, err
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+employeeColumns+" FROM employees ORDER BY first_name, last_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEmployees(rows)
}

func (s *Store) ByDepartment(ctx context.Context, department string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE department = $1 AND status = 'Active'
    ORDER BY first_name, last_name
  `, department)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEmployees(rows)
}

func (s *Store) Departments(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, "SELECT DISTINCT department FROM employees ORDER BY department")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var department string
		if err := rows.Scan(&department); err != nil {
			return nil, err
		}
		out = append(out, department)
	}
	return out, rows.Err()
}

// Profile loads the directory record plus the derived badges shown on the
// profile screen: latest rating average and the count of active
// disciplinary actions.
func (s *Store) Profile(ctx context.Context, id string, now time.Time) (Profile, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}

	var latestScore *float64
	err = s.DB.QueryRow(ctx, `
    SELECT average_score
    FROM monthly_ratings
    WHERE employee_id = $1
    ORDER BY year DESC, month DESC
    LIMIT 1
  `, id).Scan(&latestScore)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, err
	}

	var activeDisciplinary int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM disciplinary_actions
    WHERE employee_id = $1 AND status IN ('Active', 'Review')
  `, id).Scan(&activeDisciplinary); err != nil {
		return Profile{}, err
	}

	months := int(now.Sub(e.JoiningDate).Hours() / (24 * 30))
	if months < 0 {
		months = 0
	}

	anniversary := e.JoiningDate.Month() == now.Month()

	return Profile{
		Employee:            e,
		LatestAverageScore:  latestScore,
		ActiveDisciplinary:  activeDisciplinary,
		TenureMonths:        months,
		UpcomingAnniversary: anniversary,
	}, nil
}

func collectEmployees(rows pgx.Rows) ([]Employee, error) {
	var out []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// 23505 is the Postgres unique_violation code.
	type sqlState interface{ SQLState() string }
	var state sqlState
	if errors.As(err, &state) {
		return state.SQLState() == "23505"
	}
	return false
}
