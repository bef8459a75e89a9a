package attendance

import "time"

// Day statuses produced by the classifier. Holiday variants carry the
// "holiday-" prefix in front of the base status.
const (
	StatusAbsent        = "absent"
	StatusPresent       = "present"
	StatusFull          = "full"
	StatusMorningOnly   = "morning-only"
	StatusAfternoonOnly = "afternoon-only"
	StatusPartial       = "partial"
	StatusWeekendOff    = "weekend-off"
	StatusHoliday       = "holiday"

	HolidayPrefix = "holiday-"
)

// Record is one employee-day row. It is a derived projection: every aggregate
// field on it can be recomputed from the punch log, and the nightly batch job
// does exactly that for undertime.
type Record struct {
	ID             int64
	EmployeeID     string
	Date           time.Time
	PunchIn        *time.Time
	PunchOut       *time.Time
	BreakHours     float64
	OvertimeHours  float64
	UndertimeHours float64
	Status         string
	SiteID         *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type PunchType string

const (
	PunchIn  PunchType = "in"
	PunchOut PunchType = "out"
)

// PunchEvent is one entry in the append-only punch log, the source of truth
// for worked and break time. Events are never updated or deleted.
type PunchEvent struct {
	ID         int64
	EmployeeID string
	RecordID   int64
	Timestamp  time.Time
	Type       PunchType
}
