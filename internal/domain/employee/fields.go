package employee

import "github.com/mwendaalphonce/pactiPay-sub001/internal/domain/auth"

// FilterFields strips compensation and identifier fields from records the
// viewer has no business seeing. HR and admin see everything, everyone else
// sees the full record only for themselves and a directory entry for others.
func FilterFields(emp *Employee, user auth.UserContext, isSelf bool) {
	if user.RoleName == auth.RoleHR || user.RoleName == auth.RoleAdmin {
		return
	}
	if isSelf {
		return
	}

	emp.KRAPin = ""
	emp.NSSFNumber = ""
	emp.SHIFNumber = ""
	emp.BankName = ""
	emp.BankAccount = ""
	emp.BasicSalary = nil
	emp.Allowances = nil
	emp.LifePremium = nil
	emp.EducationPremium = nil
	emp.HealthPremium = nil
	emp.MortgageInterest = nil
}
