package leave

import (
	"context"
	"time"
)

type Repository interface {
	// ListApprovedBetween returns approved leave requests whose span
	// intersects [from, to].
	ListApprovedBetween(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error)
}
