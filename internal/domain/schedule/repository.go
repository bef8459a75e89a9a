package schedule

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, sched Schedule) (Schedule, error)

	// GetValidOnDate returns every schedule for the employee whose validity
	// interval covers date, ordered by id descending so the most recently
	// defined schedule comes first.
	GetValidOnDate(ctx context.Context, employeeID string, date time.Time) ([]Schedule, error)

	GetByEmployee(ctx context.Context, employeeID string) ([]Schedule, error)
}
