package payroll

import (
	"context"
	"time"
)

// Repository defines data access for payroll rows.
type Repository interface {
	Create(ctx context.Context, p Payroll) (Payroll, error)

	// Update overwrites a Pending row; the implementation must refuse to
	// touch Approved rows and return ErrPayrollApproved instead.
	Update(ctx context.Context, p Payroll) error

	GetByID(ctx context.Context, id string) (Payroll, error)

	// GetByEmployeePeriod returns nil without error when no row exists for
	// the exact period yet.
	GetByEmployeePeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (*Payroll, error)

	// Approve flips Pending to Approved atomically, failing with
	// ErrPayrollAlreadyApproved when the row is not Pending.
	Approve(ctx context.Context, id string, approvedBy string) (Payroll, error)

	// ListMonthlyEarnings aggregates base pay + allowance per calendar month
	// over payroll rows whose period start falls in [from, to].
	ListMonthlyEarnings(ctx context.Context, employeeID string, from, to time.Time) ([]MonthlyEarnings, error)

	ListByPeriod(ctx context.Context, periodStart, periodEnd time.Time) ([]Payroll, error)
}

// LoanRepository exposes the loan amortizations due within a pay period.
type LoanRepository interface {
	ListDueInPeriod(ctx context.Context, employeeID string, from, to time.Time) ([]LoanPayrollDeduction, error)
}

// StatutoryRepository loads the statutory deduction brackets. Implementations
// fall back to configured defaults when the tables are empty.
type StatutoryRepository interface {
	GetTables(ctx context.Context) (StatutoryTables, error)
}

// ThirteenthRepository persists 13th-month rows, one per employee per year.
type ThirteenthRepository interface {
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) (*ThirteenthMonthPay, error)

	// Upsert inserts or overwrites the Pending row for (employee, year).
	Upsert(ctx context.Context, row ThirteenthMonthPay) (ThirteenthMonthPay, error)
}
