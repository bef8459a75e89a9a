package leave

import "time"

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

type LeaveRequest struct {
	ID         int64
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	WithPay    bool
	Status     Status
	Reason     *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
