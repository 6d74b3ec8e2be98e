package payroll

import "time"

// PeriodEndDate is the last day of the period's month. Rate selection uses
// it, so a regime effective mid-month governs the payroll that closes after
// the effective date.
func PeriodEndDate(year, month int) time.Time {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
}

func ValidPeriod(year, month int) bool {
	return year >= 2000 && year <= 2100 && month >= 1 && month <= 12
}
