package payroll

import (
	"time"

	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/statutory"
)

// Period is one calendar month of payroll. Statutory rates are selected by
// the period's last day, so a mid-month regime change applies to the payroll
// that closes after it.
type Period struct {
	ID           string     `json:"id"`
	Year         int        `json:"year"`
	Month        int        `json:"month"`
	Status       string     `json:"status"`
	RatesVersion string     `json:"ratesVersion,omitempty"`
	FinalizedAt  *time.Time `json:"finalizedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Input holds one employee's variable figures for a period. At most one row
// per employee per period; re-submitting replaces the previous row.
type Input struct {
	EmployeeID       string  `json:"employeeId"`
	OvertimeHours    float64 `json:"overtimeHours"`
	OvertimeType     string  `json:"overtimeType,omitempty"`
	UnpaidDays       int     `json:"unpaidDays"`
	CustomDeductions float64 `json:"customDeductions"`
	Bonuses          float64 `json:"bonuses"`
	Source           string  `json:"source"`
}

// Result is the persisted outcome for one employee in one period. The
// headline figures are denormalized for report queries; Breakdown carries
// the full engine output.
type Result struct {
	EmployeeID      string                      `json:"employeeId"`
	GrossPay        float64                     `json:"grossPay"`
	TotalDeductions float64                     `json:"totalDeductions"`
	NetPay          float64                     `json:"netPay"`
	PAYE            float64                     `json:"paye"`
	NSSF            float64                     `json:"nssf"`
	SHIF            float64                     `json:"shif"`
	HousingLevy     float64                     `json:"housingLevy"`
	Warnings        []string                    `json:"warnings,omitempty"`
	Breakdown       statutory.CalculationResult `json:"breakdown"`
}

type RunError struct {
	EmployeeID string `json:"employeeId"`
	Reason     string `json:"reason"`
}

// RunSummary is what a processing run reports back: every active employee
// either produced a result or a run error.
type RunSummary struct {
	PeriodID     string     `json:"periodId"`
	Status       string     `json:"status"`
	RatesVersion string     `json:"ratesVersion"`
	Processed    int        `json:"processed"`
	Failed       []RunError `json:"failed"`
}

type Payslip struct {
	ID         string    `json:"id"`
	PeriodID   string    `json:"periodId"`
	EmployeeID string    `json:"employeeId"`
	GrossPay   float64   `json:"grossPay"`
	Deductions float64   `json:"deductions"`
	NetPay     float64   `json:"netPay"`
	FileURL    string    `json:"fileUrl"`
	CreatedAt  time.Time `json:"createdAt"`
}

type PayslipKey struct {
	ID         string
	EmployeeID string
}

type PayslipPDFData struct {
	FirstName      string
	LastName       string
	Email          string
	EmployeeNumber string
	KRAPinPlain    string
	KRAPinEnc      []byte
	Year           int
	Month          int
	Breakdown      statutory.CalculationResult
}

type PeriodSummary struct {
	TotalGross       float64        `json:"totalGross"`
	TotalDeductions  float64        `json:"totalDeductions"`
	TotalNet         float64        `json:"totalNet"`
	TotalPAYE        float64        `json:"totalPaye"`
	TotalNSSF        float64        `json:"totalNssf"`
	TotalSHIF        float64        `json:"totalShif"`
	TotalHousingLevy float64        `json:"totalHousingLevy"`
	EmployeeCount    int            `json:"employeeCount"`
	FailureCount     int            `json:"failureCount"`
	Warnings         map[string]int `json:"warnings"`
}
