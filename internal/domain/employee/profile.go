package employee

import "github.com/mwendaalphonce/pactiPay-sub001/internal/domain/statutory"

// CompensationParams maps an employee record onto constructor parameters.
// Field presence carries through unchanged: a column that was never set
// stays nil so the constructor can apply its own defaults or reject the
// record, rather than each caller re-deciding what absence means.
func CompensationParams(emp Employee) statutory.ProfileParams {
	return statutory.ProfileParams{
		BasicSalary:      emp.BasicSalary,
		Allowances:       emp.Allowances,
		ContractType:     emp.ContractType,
		LifePremium:      emp.LifePremium,
		EducationPremium: emp.EducationPremium,
		HealthPremium:    emp.HealthPremium,
		MortgageInterest: emp.MortgageInterest,
	}
}
