package user

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

const userColumns = `
  id, name, email, role, status, COALESCE(employee_id::text, ''), last_login_at, created_at
`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Status, &u.EmployeeID, &u.LastLoginAt, &u.CreatedAt)
	return u, err
}

func (s *Store) Create(ctx context.Context, u User, passwordHash string) (User, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO users (name, email, password_hash, role, status, employee_id)
    VALUES ($1,$2,$3,$4,$5,NULLIF($6,'')::uuid)
    RETURNING `+userColumns, u.Name, u.Email, passwordHash, u.Role, u.Status, u.EmployeeID)
	created, err := scanUser(row)
	if isUniqueViolation(err) {
		return User{}, ErrEmailExists
	}
	return created, err
}

func (s *Store) Update(ctx context.Context, u User) (User, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE users
    SET name = $2, email = $3, role = $4, employee_id = NULLIF($5,'')::uuid
    WHERE id = $1
    RETURNING `+userColumns, u.ID, u.Name, u.Email, u.Role, u.EmployeeID)
	updated, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if isUniqueViolation(err) {
		return User{}, ErrEmailExists
	}
	return updated, err
}

func (s *Store) SetStatus(ctx context.Context, id, status string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE users SET status = $2 WHERE id = $1", id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (User, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (s *Store) List(ctx context.Context) ([]User, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// FindByEmail returns the account and its password hash for login.
func (s *Store) FindByEmail(ctx context.Context, email string) (User, string, error) {
	var u User
	var hash string
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, email, role, status, COALESCE(employee_id::text, ''), last_login_at, created_at, password_hash
    FROM users
    WHERE lower(email) = lower($1)
  `, email).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Status, &u.EmployeeID, &u.LastLoginAt, &u.CreatedAt, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, "", ErrNotFound
	}
	if err != nil {
		return User{}, "", err
	}
	return u, hash, nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login_at = now() WHERE id = $1", id)
	return err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	type sqlState interface{ SQLState() string }
	var state sqlState
	if errors.As(err, &state) {
		return state.SQLState() == "23505"
	}
	return false
}
