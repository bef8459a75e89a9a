package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bayanihr/payroll-backend-go/internal/domain/notification"
	"github.com/bayanihr/payroll-backend-go/internal/domain/payroll"
)

var twelve = decimal.NewFromInt(12)

// GenerateThirteenth computes the 13th-month pay for the employee and target
// year: total base earnings over the configured 12-month window divided by
// twelve. The row is upserted once per year; an approved row blocks
// regeneration.
func (s *Service) GenerateThirteenth(ctx context.Context, req payroll.GenerateThirteenthRequest) (payroll.ThirteenthResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ThirteenthResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.ThirteenthResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	existing, err := s.thirteenthRepo.GetByEmployeeYear(ctx, req.EmployeeID, req.Year)
	if err != nil {
		return payroll.ThirteenthResponse{}, fmt.Errorf("failed to get existing 13th month pay: %w", err)
	}
	if existing != nil && existing.Status == payroll.StatusApproved {
		return payroll.ThirteenthResponse{}, payroll.ErrThirteenthMonthExists
	}

	from, to, err := s.thirteenthWindow(req.Year)
	if err != nil {
		return payroll.ThirteenthResponse{}, err
	}

	monthly, err := s.payrollRepo.ListMonthlyEarnings(ctx, req.EmployeeID, from, to)
	if err != nil {
		return payroll.ThirteenthResponse{}, fmt.Errorf("failed to list monthly earnings: %w", err)
	}

	months := make(map[string]decimal.Decimal, len(monthly))
	basic := decimal.Zero
	for _, m := range monthly {
		months[m.Month] = round2(m.Earnings)
		basic = basic.Add(m.Earnings)
	}
	basic = round2(basic)

	row := payroll.ThirteenthMonthPay{
		ID:            uuid.New().String(),
		EmployeeID:    req.EmployeeID,
		Year:          req.Year,
		BasicEarnings: basic,
		MonthsCovered: months,
		Pay:           round2(basic.Div(twelve)),
		Status:        payroll.StatusPending,
	}
	if existing != nil {
		row.ID = existing.ID
	}

	saved, err := s.thirteenthRepo.Upsert(ctx, row)
	if err != nil {
		return payroll.ThirteenthResponse{}, fmt.Errorf("failed to upsert 13th month pay: %w", err)
	}

	s.dispatcher.Dispatch(ctx, notification.Event{
		Type:        notification.TypeThirteenthGenerated,
		RecipientID: saved.EmployeeID,
		Title:       "13th month pay generated",
		Message:     fmt.Sprintf("Your 13th month pay for %d has been generated.", saved.Year),
		Data: map[string]interface{}{
			"thirteenth_id": saved.ID,
			"pay":           saved.Pay.String(),
		},
	})

	return payroll.ToThirteenthResponse(saved), nil
}

// GetThirteenth returns the 13th-month row for the employee and year.
func (s *Service) GetThirteenth(ctx context.Context, employeeID string, year int) (payroll.ThirteenthResponse, error) {
	row, err := s.thirteenthRepo.GetByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return payroll.ThirteenthResponse{}, fmt.Errorf("failed to get 13th month pay: %w", err)
	}
	if row == nil {
		return payroll.ThirteenthResponse{}, payroll.ErrThirteenthMonthNotFound
	}
	return payroll.ToThirteenthResponse(*row), nil
}

// thirteenthWindow derives the 12-month earnings window for a target year
// from the configured month-day anchors. The start anchor falls in the year
// before the target year.
func (s *Service) thirteenthWindow(year int) (time.Time, time.Time, error) {
	start, err := time.Parse("01-02", s.cfg.ThirteenthMonthStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid 13th month window start: %w", err)
	}
	end, err := time.Parse("01-02", s.cfg.ThirteenthMonthEnd)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid 13th month window end: %w", err)
	}

	from := time.Date(year-1, start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(year, end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return from, to, nil
}
