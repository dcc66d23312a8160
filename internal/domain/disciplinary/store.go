package disciplinary

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("disciplinary action not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const actionColumns = `
  a.id, a.employee_id, e.first_name, e.last_name,
  a.action_type, a.reason, a.status, a.review_period_days, a.action_date,
  a.created_at, a.updated_at
`

func scanAction(row pgx.Row) (Action, error) {
	var a Action
	err := row.Scan(&a.ID, &a.EmployeeID, &a.FirstName, &a.LastName,
		&a.Type, &a.Reason, &a.Status, &a.ReviewPeriodDays, &a.ActionDate,
		&a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (s *Store) Create(ctx context.Context, a Action) (Action, error) {
	row := s.DB.QueryRow(ctx, `
    WITH inserted AS (
      INSERT INTO disciplinary_actions (employee_id, action_type, reason, status, review_period_days, action_date)
      VALUES ($1,$2,$3,$4,$5,$6)
      RETURNING *
    )
    SELECT `+actionColumns+`
    FROM inserted a
    JOIN employees e ON e.id = a.employee_id
  `, a.EmployeeID, a.Type, a.Reason, a.Status, a.ReviewPeriodDays, a.ActionDate)
	return scanAction(row)
}

func (s *Store) Update(ctx context.Context, a Action) (Action, error) {
	row := s.DB.QueryRow(ctx, `
    WITH updated AS (
      UPDATE disciplinary_actions
      SET action_type = $2, reason = $3, status = $4, review_period_days = $5, action_date = $6, updated_at = now()
      WHERE id = $1
      RETURNING *
    )
    SELECT `+actionColumns+`
    FROM updated a
    JOIN employees e ON e.id = a.employee_id
  `, a.ID, a.Type, a.Reason, a.Status, a.ReviewPeriodDays, a.ActionDate)
	updated, err := scanAction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Action{}, ErrNotFound
	}
	return updated, err
}

func (s *Store) Get(ctx context.Context, id string) (Action, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+actionColumns+`
    FROM disciplinary_actions a
    JOIN employees e ON e.id = a.employee_id
    WHERE a.id = $1
  `, id)
	a, err := scanAction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Action{}, ErrNotFound
	}
	return a, err
}

func (s *Store) List(ctx context.Context, status string) ([]Action, error) {
	query := `
    SELECT ` + actionColumns + `
    FROM disciplinary_actions a
    JOIN employees e ON e.id = a.employee_id
  `
	args := []any{}
	if status != "" {
		query += " WHERE a.status = $1"
		args = append(args, status)
	}
	query += " ORDER BY a.action_date DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActions(rows)
}

func (s *Store) ByEmployee(ctx context.Context, employeeID string) ([]Action, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+actionColumns+`
    FROM disciplinary_actions a
    JOIN employees e ON e.id = a.employee_id
    WHERE a.employee_id = $1
    ORDER BY a.action_date DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActions(rows)
}

// Unresolved lists the actions still in their review window; callers apply
// the days-left derivation.
func (s *Store) Unresolved(ctx context.Context) ([]Action, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+actionColumns+`
    FROM disciplinary_actions a
    JOIN employees e ON e.id = a.employee_id
    WHERE a.status IN ($1, $2) AND a.review_period_days > 0
    ORDER BY a.action_date ASC
  `, StatusActive, StatusReview)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActions(rows)
}

func collectActions(rows pgx.Rows) ([]Action, error) {
	var out []Action
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
