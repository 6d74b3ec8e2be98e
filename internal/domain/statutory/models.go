package statutory

// InsurancePremiums holds the qualifying monthly premiums an employee pays
// per policy type. The zero value means no policies.
type InsurancePremiums struct {
	Life      float64 `json:"life"`
	Education float64 `json:"education"`
	Health    float64 `json:"health"`
}

func (p InsurancePremiums) Total() float64 {
	return p.Life + p.Education + p.Health
}

// CompensationProfile is the employee-level input to a calculation. Build it
// through NewCompensationProfile; the calculators assume a validated profile.
type CompensationProfile struct {
	BasicSalary      float64           `json:"basicSalary"`
	Allowances       float64           `json:"allowances"`
	ContractType     ContractType      `json:"contractType"`
	Insurance        InsurancePremiums `json:"insurancePremiums"`
	MortgageInterest float64           `json:"mortgageInterest"`
}

// PeriodInputs are the per-month variable inputs for one employee.
type PeriodInputs struct {
	OvertimeHours    float64      `json:"overtimeHours"`
	OvertimeType     OvertimeType `json:"overtimeType"`
	UnpaidDays       int          `json:"unpaidDays"`
	CustomDeductions float64      `json:"customDeductions"`
	Bonuses          float64      `json:"bonuses"`
}

type NSSFContribution struct {
	EmployeeContribution float64 `json:"employeeContribution"`
	EmployerContribution float64 `json:"employerContribution"`
}

type SHIFContribution struct {
	EmployeeContribution float64 `json:"employeeContribution"`
	EmployerContribution float64 `json:"employerContribution"`
	TotalContribution    float64 `json:"totalContribution"`
	IsMinimumApplied     bool    `json:"isMinimumApplied"`
	EffectiveRate        float64 `json:"effectiveRate"`
}

type HousingLevyContribution struct {
	EmployeeContribution float64 `json:"employeeContribution"`
	EmployerContribution float64 `json:"employerContribution"`
}

type PAYEResult struct {
	GrossTax        float64 `json:"grossTax"`
	PersonalRelief  float64 `json:"personalRelief"`
	InsuranceRelief float64 `json:"insuranceRelief"`
	PAYE            float64 `json:"paye"`
}

type WorktimeResult struct {
	WorkingDays     int     `json:"workingDays"`
	DailyRate       float64 `json:"dailyRate"`
	HourlyRate      float64 `json:"hourlyRate"`
	OvertimePay     float64 `json:"overtimePay"`
	UnpaidDeduction float64 `json:"unpaidDeduction"`
}

type Earnings struct {
	BasicSalary float64 `json:"basicSalary"`
	Allowances  float64 `json:"allowances"`
	Overtime    float64 `json:"overtime"`
	Bonuses     float64 `json:"bonuses"`
	GrossPay    float64 `json:"grossPay"`
}

type Deductions struct {
	NSSF             float64 `json:"nssf"`
	SHIF             float64 `json:"shif"`
	HousingLevy      float64 `json:"housingLevy"`
	TaxableIncome    float64 `json:"taxableIncome"`
	GrossTax         float64 `json:"grossTax"`
	PersonalRelief   float64 `json:"personalRelief"`
	InsuranceRelief  float64 `json:"insuranceRelief"`
	PAYE             float64 `json:"paye"`
	CustomDeductions float64 `json:"customDeductions"`
	TotalStatutory   float64 `json:"totalStatutory"`
	TotalDeductions  float64 `json:"totalDeductions"`
}

type EmployerContributions struct {
	NSSF        float64 `json:"nssf"`
	SHIF        float64 `json:"shif"`
	HousingLevy float64 `json:"housingLevy"`
}

// RateBreakdown reports the derived rates behind the monetary figures.
type RateBreakdown struct {
	WorkingDays      int     `json:"workingDays"`
	DailyRate        float64 `json:"dailyRate"`
	HourlyRate       float64 `json:"hourlyRate"`
	UnpaidDeduction  float64 `json:"unpaidDeduction"`
	EffectiveTaxRate float64 `json:"effectiveTaxRate"`
}

// CalculationResult is the full payroll breakdown for one employee for one
// period. The engine never persists it; storage is the caller's concern.
type CalculationResult struct {
	Earnings              Earnings              `json:"earnings"`
	Deductions            Deductions            `json:"deductions"`
	EmployerContributions EmployerContributions `json:"employerContributions"`
	NetPay                float64               `json:"netPay"`
	Calculations          RateBreakdown         `json:"calculations"`
	Warnings              []string              `json:"warnings,omitempty"`
	RatesVersion          string                `json:"ratesVersion"`
}

// BatchItem pairs one employee's raw fields with their period inputs for a
// bulk run. Profiles are constructed inside the batch so that a record the
// constructor rejects becomes a failure entry instead of aborting the run.
type BatchItem struct {
	EmployeeID string        `json:"employeeId"`
	Params     ProfileParams `json:"params"`
	Inputs     PeriodInputs  `json:"inputs"`
}

type EmployeeCalculation struct {
	EmployeeID string            `json:"employeeId"`
	Result     CalculationResult `json:"result"`
}

type CalculationFailure struct {
	EmployeeID string `json:"employeeId"`
	Reason     string `json:"reason"`
}

type BatchResult struct {
	Successful []EmployeeCalculation `json:"successful"`
	Failed     []CalculationFailure  `json:"failed"`
}
