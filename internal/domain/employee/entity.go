package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayFrequency determines both the pay-period length and how base pay is
// derived: weekly employees are paid per attended day, semi-monthly employees
// receive a fixed fraction of their basic salary.
type PayFrequency string

const (
	PayFrequencyWeekly      PayFrequency = "weekly"
	PayFrequencySemiMonthly PayFrequency = "semi-monthly"
)

var PayFrequencyValues = []string{
	string(PayFrequencyWeekly),
	string(PayFrequencySemiMonthly),
}

type Employee struct {
	ID           string
	FullName     string
	BasicSalary  decimal.Decimal
	DailyRate    decimal.Decimal
	Allowance    decimal.Decimal
	PayFrequency PayFrequency
	SiteID       *string
	DepartmentID *string
	PositionID   *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
