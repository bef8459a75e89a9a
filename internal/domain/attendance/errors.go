package attendance

import "errors"

// Attendance domain errors
var (
	// Punch state conflicts, surfaced synchronously to the caller.
	ErrAlreadyPunchedIn = errors.New("there is already an open punch-in for today")
	ErrNotPunchedIn     = errors.New("no open punch-in to close")

	ErrRecordNotFound = errors.New("attendance record not found")
)
