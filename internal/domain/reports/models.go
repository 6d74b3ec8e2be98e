package reports

// RegisterRow is one employee line of the payroll register for a period.
type RegisterRow struct {
	EmployeeID      string
	EmployeeNumber  string
	FirstName       string
	LastName        string
	GrossPay        float64
	PAYE            float64
	NSSF            float64
	SHIF            float64
	HousingLevy     float64
	TotalDeductions float64
	NetPay          float64
}

// P10Row is one employee line of the monthly P10-style PAYE return.
// KRAPin is resolved from the encrypted column by the service before
// rendering.
type P10Row struct {
	EmployeeNumber  string
	FirstName       string
	LastName        string
	KRAPin          string
	GrossPay        float64
	TaxableIncome   float64
	GrossTax        float64
	PersonalRelief  float64
	InsuranceRelief float64
	PAYE            float64

	kraPinPlain string
	kraPinEnc   []byte
}

// BankRow is one employee line of the net-pay bank file. BankAccount is
// resolved like P10Row.KRAPin.
type BankRow struct {
	EmployeeNumber string
	FirstName      string
	LastName       string
	BankName       string
	BankAccount    string
	NetPay         float64

	bankPlain string
	bankEnc   []byte
}

// StatutoryRow is one employee line of the combined statutory remittance
// summary (NSSF, SHIF, housing levy, both sides).
type StatutoryRow struct {
	EmployeeNumber  string
	FirstName       string
	LastName        string
	NSSFNumber      string
	SHIFNumber      string
	NSSFEmployee    float64
	NSSFEmployer    float64
	SHIFEmployee    float64
	SHIFEmployer    float64
	HousingEmployee float64
	HousingEmployer float64
}
