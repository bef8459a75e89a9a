package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bayanihr/payroll-backend-go/internal/domain/payroll"
	"github.com/bayanihr/payroll-backend-go/internal/pkg/database"
)

type thirteenthRepositoryImpl struct {
	db *database.DB
}

func NewThirteenthRepository(db *database.DB) payroll.ThirteenthRepository {
	return &thirteenthRepositoryImpl{db: db}
}

func (r *thirteenthRepositoryImpl) GetByEmployeeYear(ctx context.Context, employeeID string, year int) (*payroll.ThirteenthMonthPay, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year, basic_earnings, months_covered, pay, status, created_at, updated_at
		FROM thirteenth_month_pays
		WHERE employee_id = $1 AND year = $2
	`

	var row payroll.ThirteenthMonthPay
	var monthsJSON []byte
	err := q.QueryRow(ctx, query, employeeID, year).Scan(
		&row.ID,
		&row.EmployeeID,
		&row.Year,
		&row.BasicEarnings,
		&monthsJSON,
		&row.Pay,
		&row.Status,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if len(monthsJSON) > 0 {
		if err := json.Unmarshal(monthsJSON, &row.MonthsCovered); err != nil {
			return nil, fmt.Errorf("failed to decode months_covered: %w", err)
		}
	}
	return &row, nil
}

func (r *thirteenthRepositoryImpl) Upsert(ctx context.Context, row payroll.ThirteenthMonthPay) (payroll.ThirteenthMonthPay, error) {
	q := GetQuerier(ctx, r.db)

	months := row.MonthsCovered
	if months == nil {
		months = map[string]decimal.Decimal{}
	}
	monthsJSON, err := json.Marshal(months)
	if err != nil {
		return payroll.ThirteenthMonthPay{}, fmt.Errorf("failed to encode months_covered: %w", err)
	}

	// The (employee_id, year) unique constraint makes the upsert the
	// once-per-year guarantee; approved rows are excluded from the update arm.
	query := `
		INSERT INTO thirteenth_month_pays (
			id, employee_id, year, basic_earnings, months_covered, pay, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (employee_id, year) DO UPDATE
		SET basic_earnings = EXCLUDED.basic_earnings,
			months_covered = EXCLUDED.months_covered,
			pay = EXCLUDED.pay,
			updated_at = NOW()
		WHERE thirteenth_month_pays.status = 'Pending'
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		row.ID,
		row.EmployeeID,
		row.Year,
		row.BasicEarnings,
		monthsJSON,
		row.Pay,
		row.Status,
	).Scan(&row.ID, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ThirteenthMonthPay{}, payroll.ErrThirteenthMonthExists
		}
		return payroll.ThirteenthMonthPay{}, err
	}
	return row, nil
}
