package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/madmenmarketingindia/mad-rating/internal/domain/rating"
)

type Service struct {
	store   *Store
	ratings *rating.Store
}

func NewService(store *Store, ratings *rating.Store) *Service {
	return &Service{store: store, ratings: ratings}
}

func (s *Service) DepartmentStats(ctx context.Context) ([]DepartmentStat, error) {
	return s.store.DepartmentStats(ctx)
}

func (s *Service) DepartmentRatings(ctx context.Context, month, year int) ([]rating.DepartmentAverage, error) {
	return s.ratings.DepartmentAverages(ctx, month, year)
}

func (s *Service) UpcomingBirthdays(ctx context.Context, today time.Time) ([]UpcomingEvent, error) {
	people, err := s.store.birthdayPeople(ctx)
	if err != nil {
		return nil, err
	}
	return upcoming(people, today, false), nil
}

func (s *Service) UpcomingAnniversaries(ctx context.Context, today time.Time) ([]UpcomingEvent, error) {
	people, err := s.store.anniversaryPeople(ctx)
	if err != nil {
		return nil, err
	}
	return upcoming(people, today, true), nil
}

// EmployeeMonthly is the self view: the signed-in employee's rating for the
// given period. A missing month comes back as nil rather than an error so
// the card can render empty.
func (s *Service) EmployeeMonthly(ctx context.Context, employeeID string, month, year int) (*rating.MonthlyRating, error) {
	r, err := s.ratings.SingleMonth(ctx, employeeID, month, year)
	if err != nil {
		if errors.Is(err, rating.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

// EmployeeYearly returns a dense twelve-point series for the chart; months
// without a rating carry a zero.
func (s *Service) EmployeeYearly(ctx context.Context, employeeID string, year int) ([]rating.MonthPoint, error) {
	ratings, err := s.ratings.Yearly(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}
	return rating.YearlySeries(ratings, true), nil
}
