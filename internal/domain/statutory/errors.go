package statutory

import "errors"

var (
	ErrNoRatesForDate = errors.New("no statutory rates in force for date")

	ErrMissingBasicSalary  = errors.New("basic salary is required")
	ErrBelowMinimumWage    = errors.New("basic salary is below the statutory minimum wage")
	ErrNegativeAllowances  = errors.New("allowances must not be negative")
	ErrInvalidContractType = errors.New("unknown contract type")
	ErrNegativePremium     = errors.New("insurance premiums must not be negative")
	ErrNegativeMortgage    = errors.New("mortgage interest must not be negative")

	ErrNegativeOvertimeHours    = errors.New("overtime hours must not be negative")
	ErrInvalidOvertimeType      = errors.New("unknown overtime type")
	ErrUnpaidDaysOutOfRange     = errors.New("unpaid days must be between 0 and 31")
	ErrNegativeCustomDeductions = errors.New("custom deductions must not be negative")
	ErrNegativeBonuses          = errors.New("bonuses must not be negative")
)
