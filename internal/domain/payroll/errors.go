package payroll

import "errors"

var (
	ErrPeriodNotFound       = errors.New("payroll period not found")
	ErrPeriodFinalized      = errors.New("payroll period already finalized")
	ErrDuplicatePeriod      = errors.New("payroll period already exists for that month")
	ErrInvalidPeriod        = errors.New("year and month out of range")
	ErrFinalizeInvalidState = errors.New("payroll period must be processed before finalize")
	ErrFinalizeNoResults    = errors.New("payroll period has no results")
	ErrReopenInvalidState   = errors.New("only finalized periods can be reopened")
)
