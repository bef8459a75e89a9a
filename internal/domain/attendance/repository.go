package attendance

import (
	"context"
	"time"
)

// Repository defines data access for the derived attendance records.
// Queries are keyed by (employee_id, date); the table carries an index on
// that pair.
type Repository interface {
	Create(ctx context.Context, record Record) (Record, error)

	// GetByEmployeeAndDate returns nil without error when no record exists
	// for that day yet.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	Update(ctx context.Context, record Record) error

	// UpdateUndertime overwrites only the derived undertime field, keeping
	// the nightly batch job idempotent.
	UpdateUndertime(ctx context.Context, recordID int64, hours float64) error

	ListByDate(ctx context.Context, date time.Time) ([]Record, error)

	ListByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
}

// LogRepository is the append-only punch ledger. Append is the only write.
type LogRepository interface {
	Append(ctx context.Context, event PunchEvent) (PunchEvent, error)

	// ListByRecord returns the day's events ordered by timestamp ascending.
	ListByRecord(ctx context.Context, recordID int64) ([]PunchEvent, error)
}
