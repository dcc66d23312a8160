package holiday

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("holiday not found")

type Holiday struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	Optional    bool      `json:"optional"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const holidayColumns = "id, name, holiday_date, COALESCE(description, ''), optional, created_at"

func scanHoliday(row pgx.Row) (Holiday, error) {
	var h Holiday
	err := row.Scan(&h.ID, &h.Name, &h.Date, &h.Description, &h.Optional, &h.CreatedAt)
	return h, err
}

func (s *Store) Create(ctx context.Context, h Holiday) (Holiday, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO holidays (name, holiday_date, description, optional)
    VALUES ($1,$2,$3,$4)
    RETURNING `+holidayColumns, h.Name, h.Date, h.Description, h.Optional)
	return scanHoliday(row)
}

func (s *Store) Update(ctx context.Context, h Holiday) (Holiday, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE holidays
    SET name = $2, holiday_date = $3, description = $4, optional = $5
    WHERE id = $1
    RETURNING `+holidayColumns, h.ID, h.Name, h.Date, h.Description, h.Optional)
	updated, err := scanHoliday(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Holiday{}, ErrNotFound
	}
	return updated, err
}

func (s *Store) Get(ctx context.Context, id string) (Holiday, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+holidayColumns+" FROM holidays WHERE id = $1", id)
	h, err := scanHoliday(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Holiday{}, ErrNotFound
	}
	return h, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM holidays WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) List(ctx context.Context, year int) ([]Holiday, error) {
	query := "SELECT " + holidayColumns + " FROM holidays"
	args := []any{}
	if year > 0 {
		query += " WHERE EXTRACT(YEAR FROM holiday_date) = $1"
		args = append(args, year)
	}
	query += " ORDER BY holiday_date"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// ForMonth lists the holidays in a calendar month, for the dashboard card.
func (s *Store) ForMonth(ctx context.Context, month, year int) ([]Holiday, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+holidayColumns+`
    FROM holidays
    WHERE EXTRACT(MONTH FROM holiday_date) = $1 AND EXTRACT(YEAR FROM holiday_date) = $2
    ORDER BY holiday_date
  `, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows pgx.Rows) ([]Holiday, error) {
	var out []Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
