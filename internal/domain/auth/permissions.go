package auth

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

const (
	PermEmployeesRead   = "employees.read"
	PermEmployeesWrite  = "employees.write"
	PermPayrollRead     = "payroll.read"
	PermPayrollWrite    = "payroll.write"
	PermPayrollRun      = "payroll.run"
	PermPayrollFinalize = "payroll.finalize"
	PermReportsRead     = "reports.read"
	PermRatesRead       = "rates.read"
	PermSystemAdmin     = "admin.system"
)

var DefaultPermissions = []string{
	PermEmployeesRead,
	PermEmployeesWrite,
	PermPayrollRead,
	PermPayrollWrite,
	PermPayrollRun,
	PermPayrollFinalize,
	PermReportsRead,
	PermRatesRead,
	PermSystemAdmin,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermEmployeesRead,
		PermPayrollRead,
		PermRatesRead,
	},
	RoleHR: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermPayrollRead,
		PermPayrollWrite,
		PermPayrollRun,
		PermPayrollFinalize,
		PermReportsRead,
		PermRatesRead,
	},
	RoleAdmin: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermPayrollRead,
		PermPayrollWrite,
		PermPayrollRun,
		PermPayrollFinalize,
		PermReportsRead,
		PermRatesRead,
		PermSystemAdmin,
	},
}
