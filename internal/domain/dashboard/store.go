package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) DepartmentStats(ctx context.Context) ([]DepartmentStat, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT department, COUNT(*)
    FROM employees
    WHERE status = 'Active'
    GROUP BY department
    ORDER BY department
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DepartmentStat
	for rows.Next() {
		var st DepartmentStat
		if err := rows.Scan(&st.Department, &st.EmployeeCount); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *Store) birthdayPeople(ctx context.Context) ([]person, error) {
	return s.people(ctx, `
    SELECT id, first_name || ' ' || last_name, designation, date_of_birth
    FROM employees
    WHERE status = 'Active' AND date_of_birth IS NOT NULL
  `)
}

func (s *Store) anniversaryPeople(ctx context.Context) ([]person, error) {
	return s.people(ctx, `
    SELECT id, first_name || ' ' || last_name, designation, joining_date
    FROM employees
    WHERE status = 'Active'
  `)
}

func (s *Store) people(ctx context.Context, query string) ([]person, error) {
	rows, err := s.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []person
	for rows.Next() {
		var p person
		if err := rows.Scan(&p.ID, &p.Name, &p.Designation, &p.Anchor); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
