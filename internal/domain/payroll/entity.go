package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum. Pending rows may be recomputed in place; Approved rows are
// immutable.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
)

// Payroll is one employee pay-period row with every computed monetary
// component itemized. All amounts are fixed-point decimals rounded to two
// fractional digits.
type Payroll struct {
	ID          string
	EmployeeID  string
	PeriodStart time.Time
	PeriodEnd   time.Time

	// Earnings
	BasePay      decimal.Decimal
	Allowance    decimal.Decimal
	OvertimePay  decimal.Decimal
	HolidayPay   decimal.Decimal
	NightDiffPay decimal.Decimal
	LeaveWithPay decimal.Decimal

	// Deductions
	SSSDeduction         decimal.Decimal
	PhilHealthDeduction  decimal.Decimal
	PagIbigDeduction     decimal.Decimal
	WithholdingTax       decimal.Decimal
	UndertimeDeduction   decimal.Decimal
	AbsenceDeduction     decimal.Decimal
	UnpaidLeaveDeduction decimal.Decimal
	LoanDeduction        decimal.Decimal

	// Manual adjustments applied on top of the computed figures.
	GrossAdjustments     decimal.Decimal
	DeductionAdjustments decimal.Decimal

	GrossPay        decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal

	// Attendance counters the amounts were derived from, kept for audit.
	WorkingDays    int
	AbsentDays     int
	UndertimeHours float64
	OvertimeHours  float64

	Status     Status
	ApprovedBy *string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LoanPayrollDeduction is one scheduled loan amortization due within a pay
// period.
type LoanPayrollDeduction struct {
	ID         int64
	LoanID     int64
	EmployeeID string
	Amount     decimal.Decimal
	DueDate    time.Time
	CreatedAt  time.Time
}

// RateBracket maps a monthly-salary range to a fixed employee-share amount.
// Ceiling is nil for the open-ended top bracket.
type RateBracket struct {
	SalaryFloor   decimal.Decimal
	SalaryCeiling *decimal.Decimal
	Amount        decimal.Decimal
}

// StatutoryTables holds the government-mandated deduction brackets, keyed by
// monthly basic salary.
type StatutoryTables struct {
	SSS            []RateBracket
	PhilHealth     []RateBracket
	PagIbig        []RateBracket
	WithholdingTax []RateBracket
}

// Lookup finds the bracket amount for salary within brackets, or
// ErrNoRateBracket when no bracket covers it.
func Lookup(brackets []RateBracket, salary decimal.Decimal) (decimal.Decimal, error) {
	for _, b := range brackets {
		if salary.LessThan(b.SalaryFloor) {
			continue
		}
		if b.SalaryCeiling != nil && salary.GreaterThan(*b.SalaryCeiling) {
			continue
		}
		return b.Amount, nil
	}
	return decimal.Zero, ErrNoRateBracket
}

// ThirteenthMonthPay is one employee-year row: the earnings window breakdown
// and the pro-rated result (basic earnings divided by twelve).
type ThirteenthMonthPay struct {
	ID            string
	EmployeeID    string
	Year          int
	BasicEarnings decimal.Decimal
	// MonthsCovered maps "2006-01" month keys to that month's earnings.
	MonthsCovered map[string]decimal.Decimal
	Pay           decimal.Decimal
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// MonthlyEarnings is the per-month aggregate of base pay plus allowance from
// approved payroll rows, the input to the 13th-month calculation.
type MonthlyEarnings struct {
	Month    string // "2006-01"
	Earnings decimal.Decimal
}
