package employee

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListActive returns every employee the batch jobs and payroll runs
	// iterate over.
	ListActive(ctx context.Context) ([]Employee, error)
}
