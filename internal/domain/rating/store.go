package rating

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

const ratingColumns = `
  id, employee_id, month, year,
  ethics, discipline, work_ethics, output, team_play, leadership, extra_mile,
  average_score, COALESCE(rated_by::text, ''), created_at, updated_at
`

func scanRating(row pgx.Row) (MonthlyRating, error) {
	var r MonthlyRating
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Month, &r.Year,
		&r.Categories.Ethics, &r.Categories.Discipline, &r.Categories.WorkEthics,
		&r.Categories.Output, &r.Categories.TeamPlay, &r.Categories.Leadership,
		&r.Categories.ExtraMile,
		&r.AverageScore, &r.RatedBy, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// Upsert writes the single rating record for (employee, month, year),
// replacing all category scores in place.
func (s *Store) Upsert(ctx context.Context, r MonthlyRating) (MonthlyRating, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO monthly_ratings (
      employee_id, month, year,
      ethics, discipline, work_ethics, output, team_play, leadership, extra_mile,
      average_score, rated_by
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NULLIF($12,'')::uuid)
    ON CONFLICT (employee_id, month, year) DO UPDATE SET
      ethics = EXCLUDED.ethics,
      discipline = EXCLUDED.discipline,
      work_ethics = EXCLUDED.work_ethics,
      output = EXCLUDED.output,
      team_play = EXCLUDED.team_play,
      leadership = EXCLUDED.leadership,
      extra_mile = EXCLUDED.extra_mile,
      average_score = EXCLUDED.average_score,
      rated_by = EXCLUDED.rated_by,
      updated_at = now()
    RETURNING `+ratingColumns, r.EmployeeID, r.Month, r.Year,
		r.Categories.Ethics, r.Categories.Discipline, r.Categories.WorkEthics,
		r.Categories.Output, r.Categories.TeamPlay, r.Categories.Leadership,
		r.Categories.ExtraMile, r.AverageScore, r.RatedBy)
	return scanRating(row)
}

func (s *Store) SingleMonth(ctx context.Context, employeeID string, month, year int) (MonthlyRating, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+ratingColumns+`
    FROM monthly_ratings
    WHERE employee_id = $1 AND month = $2 AND year = $3
  `, employeeID, month, year)
	r, err := scanRating(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return MonthlyRating{}, ErrNotFound
	}
	return r, err
}

func (s *Store) History(ctx context.Context, employeeID string) ([]MonthlyRating, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+ratingColumns+`
    FROM monthly_ratings
    WHERE employee_id = $1
    ORDER BY year DESC, month DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyRating
	for rows.Next() {
		r, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Yearly(ctx context.Context, employeeID string, year int) ([]MonthlyRating, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+ratingColumns+`
    FROM monthly_ratings
    WHERE employee_id = $1 AND year = $2
    ORDER BY month ASC
  `, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyRating
	for rows.Next() {
		r, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// EmployeeWise lists each employee's rating for a period alongside directory
// attributes, for the ratings report screen.
func (s *Store) EmployeeWise(ctx context.Context, month, year int) ([]EmployeeRatingRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.first_name, e.last_name, e.department, e.designation,
           r.month, r.year, r.average_score
    FROM monthly_ratings r
    JOIN employees e ON e.id = r.employee_id
    WHERE r.month = $1 AND r.year = $2
    ORDER BY e.department, e.first_name
  `, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EmployeeRatingRow
	for rows.Next() {
		var row EmployeeRatingRow
		if err := rows.Scan(&row.EmployeeID, &row.FirstName, &row.LastName, &row.Department,
			&row.Designation, &row.Month, &row.Year, &row.AverageScore); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// CompanyAverage is the mean averageScore across every rated employee for
// the period. found is false when nobody was rated, which callers must not
// confuse with a company rating of zero.
func (s *Store) CompanyAverage(ctx context.Context, month, year int) (avg float64, found bool, err error) {
	var value *float64
	err = s.DB.QueryRow(ctx, `
    SELECT ROUND(AVG(average_score), 2)
    FROM monthly_ratings
    WHERE month = $1 AND year = $2
  `, month, year).Scan(&value)
	if err != nil {
		return 0, false, err
	}
	if value == nil {
		return 0, false, nil
	}
	return *value, true, nil
}

func (s *Store) DepartmentAverages(ctx context.Context, month, year int) ([]DepartmentAverage, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.department, ROUND(AVG(r.average_score), 2), COUNT(1)
    FROM monthly_ratings r
    JOIN employees e ON e.id = r.employee_id
    WHERE r.month = $1 AND r.year = $2
    GROUP BY e.department
    ORDER BY e.department
  `, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DepartmentAverage
	for rows.Next() {
		var row DepartmentAverage
		if err := rows.Scan(&row.Department, &row.AvgRating, &row.Employees); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
