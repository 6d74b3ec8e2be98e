package statutory

// ProfileParams carries the raw, possibly-absent fields of an employee record.
// Pointer fields distinguish "not captured" from zero.
type ProfileParams struct {
	BasicSalary      *float64 `json:"basicSalary,omitempty"`
	Allowances       *float64 `json:"allowances,omitempty"`
	ContractType     string   `json:"contractType,omitempty"`
	LifePremium      *float64 `json:"lifeInsurancePremium,omitempty"`
	EducationPremium *float64 `json:"educationInsurancePremium,omitempty"`
	HealthPremium    *float64 `json:"healthInsurancePremium,omitempty"`
	MortgageInterest *float64 `json:"mortgageInterest,omitempty"`
}

// NewCompensationProfile is the single place where employee data becomes a
// calculation input. All field-presence and default-value decisions live
// here: absent allowances and premiums default to zero, an absent contract
// type defaults to permanent, and an absent salary is an error.
func NewCompensationProfile(params ProfileParams, rates StatutoryRates) (CompensationProfile, error) {
	if params.BasicSalary == nil {
		return CompensationProfile{}, ErrMissingBasicSalary
	}
	basic := *params.BasicSalary
	if basic < rates.MinimumMonthlyWage {
		return CompensationProfile{}, ErrBelowMinimumWage
	}

	allowances := 0.0
	if params.Allowances != nil {
		allowances = *params.Allowances
	}
	if allowances < 0 {
		return CompensationProfile{}, ErrNegativeAllowances
	}

	contract := ContractType(params.ContractType)
	if contract == "" {
		contract = ContractPermanent
	}
	if !ValidContractType(contract) {
		return CompensationProfile{}, ErrInvalidContractType
	}

	premiums := InsurancePremiums{
		Life:      deref(params.LifePremium),
		Education: deref(params.EducationPremium),
		Health:    deref(params.HealthPremium),
	}
	if premiums.Life < 0 || premiums.Education < 0 || premiums.Health < 0 {
		return CompensationProfile{}, ErrNegativePremium
	}

	mortgage := deref(params.MortgageInterest)
	if mortgage < 0 {
		return CompensationProfile{}, ErrNegativeMortgage
	}

	return CompensationProfile{
		BasicSalary:      basic,
		Allowances:       allowances,
		ContractType:     contract,
		Insurance:        premiums,
		MortgageInterest: mortgage,
	}, nil
}

// Validate checks the per-period variable inputs. An empty overtime type is
// allowed and treated as weekday by the calculator.
func (in PeriodInputs) Validate() error {
	if in.OvertimeHours < 0 {
		return ErrNegativeOvertimeHours
	}
	if in.OvertimeType != "" && !ValidOvertimeType(in.OvertimeType) {
		return ErrInvalidOvertimeType
	}
	if in.UnpaidDays < 0 || in.UnpaidDays > MaxUnpaidDays {
		return ErrUnpaidDaysOutOfRange
	}
	if in.CustomDeductions < 0 {
		return ErrNegativeCustomDeductions
	}
	if in.Bonuses < 0 {
		return ErrNegativeBonuses
	}
	return nil
}

func deref(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
