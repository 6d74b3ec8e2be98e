package payroll

import (
	"context"
)

type StoreAPI interface {
	CreatePeriod(ctx context.Context, year, month int) (string, error)
	GetPeriod(ctx context.Context, periodID string) (Period, error)
	CountPeriods(ctx context.Context) (int, error)
	ListPeriods(ctx context.Context, limit, offset int) ([]Period, error)
	UpdatePeriodStatus(ctx context.Context, periodID, status string) error
	SetPeriodProcessed(ctx context.Context, periodID, ratesVersion string) error
	FinalizePeriod(ctx context.Context, periodID string) error
	UpsertInput(ctx context.Context, periodID string, input Input) error
	CountInputs(ctx context.Context, periodID string) (int, error)
	ListInputs(ctx context.Context, periodID string, limit, offset int) ([]Input, error)
	InputForEmployee(ctx context.Context, periodID, employeeID string) (*Input, error)
	ListActiveEmployeesForRun(ctx context.Context) ([]RunEmployee, error)
	UpsertResult(ctx context.Context, periodID string, res Result) error
	ListResults(ctx context.Context, periodID string) ([]Result, error)
	ResultForEmployee(ctx context.Context, periodID, employeeID string) (*Result, error)
	CountResults(ctx context.Context, periodID string) (int, error)
	LatestNet(ctx context.Context, employeeID, excludePeriodID string) (float64, error)
	ReplaceRunErrors(ctx context.Context, periodID string, failures []RunError) error
	ListRunErrors(ctx context.Context, periodID string) ([]RunError, error)
	PeriodSummary(ctx context.Context, periodID string) (PeriodSummary, error)
	DeleteResultsForPeriod(ctx context.Context, periodID string) error
	DeleteRunErrorsForPeriod(ctx context.Context, periodID string) error
	CreatePayslipsForPeriod(ctx context.Context, periodID string) error
	ListPayslipKeys(ctx context.Context, periodID string) ([]PayslipKey, error)
	UpdatePayslipFileURL(ctx context.Context, payslipID, fileURL string) error
	CountPayslips(ctx context.Context, employeeID string) (int, error)
	ListPayslips(ctx context.Context, employeeID string, limit, offset int) ([]Payslip, error)
	PayslipInfo(ctx context.Context, payslipID string) (string, string, error)
	PayslipEmployeePeriod(ctx context.Context, payslipID string) (string, string, error)
	DeletePayslipsForPeriod(ctx context.Context, periodID string) error
	PayslipPDFData(ctx context.Context, periodID, employeeID string) (PayslipPDFData, error)
}
