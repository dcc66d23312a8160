package payroll

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/madmenmarketingindia/mad-rating/internal/domain/employee"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/incentive"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/rating"
	"github.com/madmenmarketingindia/mad-rating/internal/platform/latest"
)

// Service merges the payroll record with its collaborator figures (ratings,
// team shares, company rating) and owns the upsert lifecycle.
type Service struct {
	store      *Store
	employees  *employee.Store
	ratings    *rating.Store
	incentives *incentive.Store
	fetches    *latest.Group
}

func NewService(store *Store, employees *employee.Store, ratings *rating.Store, incentives *incentive.Store) *Service {
	return &Service{
		store:      store,
		employees:  employees,
		ratings:    ratings,
		incentives: incentives,
		fetches:    latest.NewGroup(),
	}
}

// Prefill assembles the payroll form for one (employee, month, year). The
// fan-out is registered with the latest-wins group: changing the period
// filter fires a new Prefill that cancels and supersedes the previous one,
// so a stale response can never land after a fresh one.
func (s *Service) Prefill(ctx context.Context, employeeID string, month, year int) (Prefill, error) {
	key := fmt.Sprintf("prefill:%s:%d:%d", employeeID, month, year)
	fetchCtx, token := s.fetches.Begin(ctx, key)
	defer token.Done()

	emp, err := s.employees.Get(fetchCtx, employeeID)
	if err != nil {
		return Prefill{}, err
	}

	var (
		rec           Record
		exists        bool
		share         incentive.MemberLookup
		companyRating float64
		companyRated  bool
		calc          CalculatedIncentive
	)

	g, gctx := errgroup.WithContext(fetchCtx)
	g.Go(func() error {
		saved, err := s.store.Get(gctx, employeeID, month, year)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		rec = saved
		exists = true
		return nil
	})
	g.Go(func() error {
		var err error
		share, err = s.incentives.MemberShare(gctx, employeeID, month, year)
		return err
	})
	g.Go(func() error {
		var err error
		companyRating, companyRated, err = s.ratings.CompanyAverage(gctx, month, year)
		return err
	})
	g.Go(func() error {
		var err error
		calc, err = s.calculate(gctx, emp, month, year)
		return err
	})
	if err := g.Wait(); err != nil {
		if !token.Valid() {
			return Prefill{}, ErrSuperseded
		}
		return Prefill{}, err
	}
	if !token.Valid() {
		return Prefill{}, ErrSuperseded
	}

	if !exists {
		rec = s.createDefaults(emp, month, year, share, companyRating, calc)
	}

	return Prefill{
		Record:        rec,
		Exists:        exists,
		FirstName:     emp.FirstName,
		LastName:      emp.LastName,
		Department:    emp.Department,
		TeamShare:     share.Amount,
		TeamEnabled:   share.Enabled,
		CompanyRating: companyRating,
		CompanyRated:  companyRated,
		Calculated:    calc,
	}, nil
}

// createDefaults is create mode: no saved record exists for the period, so
// the form starts from the directory salary components and the computed
// incentive figures.
func (s *Service) createDefaults(emp employee.Employee, month, year int, share incentive.MemberLookup, companyRating float64, calc CalculatedIncentive) Record {
	rec := Record{
		EmployeeID:          emp.ID,
		Month:               month,
		Year:                year,
		BasicSalary:         emp.Salary.BasicSalary,
		HRA:                 emp.Salary.HRA,
		MedicalAllowance:    emp.Salary.MedicalAllowance,
		ConveyanceAllowance: emp.Salary.ConveyanceAllowance,
		TotalDays:           DefaultTotalDays,
		Status:              StatusNotProcessed,

		IndividualIncentive:        calc.IncentiveAmount,
		IndividualIncentiveEnabled: calc.IncentiveAmount > 0,
		TeamIncentive:              share.Amount,
		TeamIncentiveEnabled:       share.Enabled,
	}
	rec.CompanyIncentive = CompanyIncentive(companyRating, nil)
	rec.CompanyIncentiveEnabled = rec.CompanyIncentive > 0
	return Compose(rec)
}

// CalculateIncentive exposes the individual-incentive calculation used by
// the form's calculator dialog.
func (s *Service) CalculateIncentive(ctx context.Context, employeeID string, month, year int) (CalculatedIncentive, error) {
	emp, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return CalculatedIncentive{}, err
	}
	return s.calculate(ctx, emp, month, year)
}

func (s *Service) calculate(ctx context.Context, emp employee.Employee, month, year int) (CalculatedIncentive, error) {
	averageRating := 0.0
	monthRating, err := s.ratings.SingleMonth(ctx, emp.ID, month, year)
	if err != nil && !errors.Is(err, rating.ErrNotFound) {
		return CalculatedIncentive{}, err
	}
	if err == nil {
		averageRating = monthRating.AverageScore
	}

	totalSalary := emp.Salary.Monthly()
	percent := IncentivePercent(averageRating)
	return CalculatedIncentive{
		TotalSalary:      totalSalary,
		IncentivePercent: percent,
		IncentiveAmount:  IndividualIncentive(totalSalary, percent),
		AverageRating:    averageRating,
	}, nil
}

// Upsert validates the status, recomputes the derived figures, and replaces
// the record for the key. Identical payloads produce identical persisted
// totals.
func (s *Service) Upsert(ctx context.Context, rec Record) (Record, error) {
	status, err := NormalizeStatus(rec.Status)
	if err != nil {
		return Record{}, err
	}
	rec.Status = status
	rec = Compose(rec)
	return s.store.Upsert(ctx, rec)
}

func (s *Service) Single(ctx context.Context, employeeID string, month, year int) (Record, error) {
	return s.store.Get(ctx, employeeID, month, year)
}

func (s *Service) ListForPeriod(ctx context.Context, month, year int) ([]ListRow, error) {
	return s.store.ListForPeriod(ctx, month, year)
}

func (s *Service) History(ctx context.Context, employeeID string) ([]Record, error) {
	return s.store.History(ctx, employeeID)
}

func (s *Service) Slip(ctx context.Context, employeeID string, month, year int) (SlipData, error) {
	return s.store.Slip(ctx, employeeID, month, year)
}

// ExportCSV streams the monthly payroll register.
func (s *Service) ExportCSV(ctx context.Context, month, year int, w io.Writer) error {
	rows, err := s.store.ListForPeriod(ctx, month, year)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Employee", "Department", "Designation", "Salary", "Payable Days", "Payable", "Status"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.FirstName + " " + row.LastName,
			row.Department,
			row.Designation,
			strconv.FormatFloat(row.Salary, 'f', 2, 64),
			strconv.Itoa(row.PayableDays),
			strconv.FormatFloat(row.Payable, 'f', 2, 64),
			row.Status,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
