package statutory

// Calculate runs the full statutory sequence for one employee: gross pay,
// allowable deductions, taxable income, PAYE, totals, net. It is pure and
// total: the same inputs always produce the identical result and it never
// returns an error; impossible values are clamped and flagged instead.
//
// The invariant netPay + totalDeductions == grossPay holds for every result,
// so a net made negative by custom deductions is reported as-is with a
// warning rather than clamped.
func Calculate(profile CompensationProfile, inputs PeriodInputs, rates StatutoryRates) CalculationResult {
	var warnings []string

	work := CalculateWorktime(profile.BasicSalary, inputs.OvertimeHours, inputs.OvertimeType, inputs.UnpaidDays, rates)

	basic := round2(profile.BasicSalary)
	if basic < 0 {
		basic = 0
	}
	allowances := round2(profile.Allowances)
	if allowances < 0 {
		allowances = 0
	}
	bonuses := round2(inputs.Bonuses)
	if bonuses < 0 {
		bonuses = 0
	}

	grossPay := round2(basic + allowances + work.OvertimePay + bonuses - work.UnpaidDeduction)
	if grossPay < 0 {
		grossPay = 0
		warnings = append(warnings, WarningUnpaidExceedsPay)
	}

	nssf := CalculateNSSF(basic, rates)
	shif := CalculateSHIF(grossPay, rates)
	housing := CalculateHousingLevy(grossPay, rates)

	allowable := nssf.EmployeeContribution
	if rates.SHIFDeductible {
		allowable += shif.EmployeeContribution
	}
	if rates.HousingLevyDeductible {
		allowable += housing.EmployeeContribution
	}
	mortgage := profile.MortgageInterest
	if mortgage < 0 {
		mortgage = 0
	}
	if mortgage > rates.MortgageInterestCap {
		mortgage = rates.MortgageInterestCap
	}

	taxableIncome := round2(grossPay - allowable - mortgage)
	if taxableIncome < 0 {
		taxableIncome = 0
	}

	paye := CalculatePAYE(taxableIncome, profile.Insurance, rates)

	custom := round2(inputs.CustomDeductions)
	if custom < 0 {
		custom = 0
	}

	totalStatutory := round2(nssf.EmployeeContribution + shif.EmployeeContribution + housing.EmployeeContribution + paye.PAYE)
	totalDeductions := round2(totalStatutory + custom)
	netPay := round2(grossPay - totalDeductions)
	if netPay < 0 {
		warnings = append(warnings, WarningNegativeNet)
	}

	effectiveTaxRate := 0.0
	if grossPay > 0 {
		effectiveTaxRate = round2(paye.PAYE / grossPay * 100)
	}

	return CalculationResult{
		Earnings: Earnings{
			BasicSalary: basic,
			Allowances:  allowances,
			Overtime:    work.OvertimePay,
			Bonuses:     bonuses,
			GrossPay:    grossPay,
		},
		Deductions: Deductions{
			NSSF:             nssf.EmployeeContribution,
			SHIF:             shif.EmployeeContribution,
			HousingLevy:      housing.EmployeeContribution,
			TaxableIncome:    taxableIncome,
			GrossTax:         paye.GrossTax,
			PersonalRelief:   paye.PersonalRelief,
			InsuranceRelief:  paye.InsuranceRelief,
			PAYE:             paye.PAYE,
			CustomDeductions: custom,
			TotalStatutory:   totalStatutory,
			TotalDeductions:  totalDeductions,
		},
		EmployerContributions: EmployerContributions{
			NSSF:        nssf.EmployerContribution,
			SHIF:        shif.EmployerContribution,
			HousingLevy: housing.EmployerContribution,
		},
		NetPay: netPay,
		Calculations: RateBreakdown{
			WorkingDays:      work.WorkingDays,
			DailyRate:        work.DailyRate,
			HourlyRate:       work.HourlyRate,
			UnpaidDeduction:  work.UnpaidDeduction,
			EffectiveTaxRate: effectiveTaxRate,
		},
		Warnings:     warnings,
		RatesVersion: rates.Version,
	}
}

// CalculateBatch runs the engine over many employees. A record the profile
// constructor rejects, or with invalid period inputs, becomes a failure
// entry with the employee's ID and the reason; it never aborts the rest of
// the batch. Input order is preserved in both slices.
func CalculateBatch(items []BatchItem, rates StatutoryRates) BatchResult {
	result := BatchResult{
		Successful: []EmployeeCalculation{},
		Failed:     []CalculationFailure{},
	}
	for _, item := range items {
		profile, err := NewCompensationProfile(item.Params, rates)
		if err != nil {
			result.Failed = append(result.Failed, CalculationFailure{EmployeeID: item.EmployeeID, Reason: err.Error()})
			continue
		}
		if err := item.Inputs.Validate(); err != nil {
			result.Failed = append(result.Failed, CalculationFailure{EmployeeID: item.EmployeeID, Reason: err.Error()})
			continue
		}
		result.Successful = append(result.Successful, EmployeeCalculation{
			EmployeeID: item.EmployeeID,
			Result:     Calculate(profile, item.Inputs, rates),
		})
	}
	return result
}
