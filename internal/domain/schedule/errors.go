package schedule

import "errors"

var (
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrNoScheduleFound means no schedule covers the requested date, or the
	// winning flexible schedule has no entry for that weekday.
	ErrNoScheduleFound = errors.New("no schedule found for this date")

	ErrInvalidKind = errors.New("schedule kind must be fixed or flexible")
)
