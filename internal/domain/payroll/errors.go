package payroll

import "errors"

var (
	ErrPayrollNotFound = errors.New("payroll record not found")

	// ErrPayrollApproved guards the immutability of approved rows: any
	// mutation attempt after approval is rejected.
	ErrPayrollApproved = errors.New("payroll record is approved and can no longer be modified")

	ErrPayrollAlreadyApproved = errors.New("payroll record has already been approved")

	// ErrNoRateBracket is a configuration error: the statutory table has no
	// bracket covering the employee's salary. The affected employee is
	// skipped with a zero contribution, never aborting the whole run.
	ErrNoRateBracket = errors.New("no statutory rate bracket for salary")

	ErrThirteenthMonthExists = errors.New("13th month pay already generated for this year")
	ErrThirteenthMonthNotFound = errors.New("13th month pay record not found")
)
