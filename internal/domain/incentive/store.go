package incentive

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, t TeamIncentive) (string, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id string
	err = tx.QueryRow(ctx, `
    INSERT INTO team_incentives (team, month, year, total_amount)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, t.Team, t.Month, t.Year, t.TotalAmount).Scan(&id)
	if err != nil {
		return "", err
	}

	for _, member := range t.Members {
		if _, err := tx.Exec(ctx, `
      INSERT INTO team_incentive_members (incentive_id, employee_id, amount)
      VALUES ($1,$2,$3)
    `, id, member.EmployeeID, member.Amount); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

// Update replaces the allocation and its member shares wholesale.
func (s *Store) Update(ctx context.Context, t TeamIncentive) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE team_incentives
    SET team = $2, month = $3, year = $4, total_amount = $5, updated_at = now()
    WHERE id = $1
  `, t.ID, t.Team, t.Month, t.Year, t.TotalAmount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, "DELETE FROM team_incentive_members WHERE incentive_id = $1", t.ID); err != nil {
		return err
	}
	for _, member := range t.Members {
		if _, err := tx.Exec(ctx, `
      INSERT INTO team_incentive_members (incentive_id, employee_id, amount)
      VALUES ($1,$2,$3)
    `, t.ID, member.EmployeeID, member.Amount); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) Get(ctx context.Context, id string) (TeamIncentive, error) {
	var t TeamIncentive
	err := s.DB.QueryRow(ctx, `
    SELECT id, team, month, year, total_amount, created_at, updated_at
    FROM team_incentives
    WHERE id = $1
  `, id).Scan(&t.ID, &t.Team, &t.Month, &t.Year, &t.TotalAmount, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return TeamIncentive{}, ErrNotFound
	}
	if err != nil {
		return TeamIncentive{}, err
	}

	members, err := s.members(ctx, id)
	if err != nil {
		return TeamIncentive{}, err
	}
	t.Members = members
	return t, nil
}

func (s *Store) List(ctx context.Context, month, year int) ([]TeamIncentive, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, team, month, year, total_amount, created_at, updated_at
    FROM team_incentives
    WHERE month = $1 AND year = $2
    ORDER BY team
  `, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TeamIncentive
	for rows.Next() {
		var t TeamIncentive
		if err := rows.Scan(&t.ID, &t.Team, &t.Month, &t.Year, &t.TotalAmount, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		members, err := s.members(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Members = members
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM team_incentives WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MemberShare is the payroll lookup: the employee's share for the period, or
// a zero/disabled result when no allocation names them.
func (s *Store) MemberShare(ctx context.Context, employeeID string, month, year int) (MemberLookup, error) {
	var amount float64
	err := s.DB.QueryRow(ctx, `
    SELECT m.amount
    FROM team_incentive_members m
    JOIN team_incentives t ON t.id = m.incentive_id
    WHERE m.employee_id = $1 AND t.month = $2 AND t.year = $3
  `, employeeID, month, year).Scan(&amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return MemberLookup{Amount: 0, Enabled: false}, nil
	}
	if err != nil {
		return MemberLookup{}, err
	}
	return MemberLookup{Amount: amount, Enabled: amount > 0}, nil
}

func (s *Store) members(ctx context.Context, incentiveID string) ([]MemberShare, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT m.employee_id, e.first_name, e.last_name, m.amount
    FROM team_incentive_members m
    JOIN employees e ON e.id = m.employee_id
    WHERE m.incentive_id = $1
    ORDER BY e.first_name
  `, incentiveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MemberShare
	for rows.Next() {
		var m MemberShare
		if err := rows.Scan(&m.EmployeeID, &m.FirstName, &m.LastName, &m.Amount); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
