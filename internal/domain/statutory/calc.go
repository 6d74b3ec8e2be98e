package statutory

import "math"

// round2 rounds to two decimals. Every published figure passes through it so
// downstream stages always consume already-rounded values.
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// CalculateNSSF splits pensionable earnings across the two NSSF tiers at the
// regime rate. Earnings below the lower limit contribute proportionally with
// no floor; the upper limit caps the combined contribution. Employer matches
// employee shilling for shilling.
func CalculateNSSF(pensionableEarnings float64, rates StatutoryRates) NSSFContribution {
	if pensionableEarnings < 0 {
		pensionableEarnings = 0
	}
	tierOne := math.Min(pensionableEarnings, rates.NSSFLowerEarningsLimit) * rates.NSSFRate
	tierTwo := 0.0
	if pensionableEarnings > rates.NSSFLowerEarningsLimit {
		capped := math.Min(pensionableEarnings, rates.NSSFUpperEarningsLimit)
		tierTwo = (capped - rates.NSSFLowerEarningsLimit) * rates.NSSFRate
	}
	employee := round2(tierOne + tierTwo)
	return NSSFContribution{
		EmployeeContribution: employee,
		EmployerContribution: employee,
	}
}

// CalculateSHIF applies the flat SHIF rate with a minimum floor and no
// ceiling. Zero gross yields zero; the floor only applies to positive pay.
func CalculateSHIF(grossSalary float64, rates StatutoryRates) SHIFContribution {
	if grossSalary <= 0 {
		return SHIFContribution{}
	}
	amount := round2(grossSalary * rates.SHIFRate)
	minimumApplied := false
	if amount < rates.SHIFMinimum {
		amount = rates.SHIFMinimum
		minimumApplied = true
	}
	return SHIFContribution{
		EmployeeContribution: amount,
		EmployerContribution: amount,
		TotalContribution:    round2(amount * 2),
		IsMinimumApplied:     minimumApplied,
		EffectiveRate:        round2(amount / grossSalary * 100),
	}
}

// CalculateHousingLevy applies the affordable housing levy rate to gross pay,
// matched by the employer.
func CalculateHousingLevy(grossSalary float64, rates StatutoryRates) HousingLevyContribution {
	if grossSalary < 0 {
		grossSalary = 0
	}
	amount := round2(grossSalary * rates.HousingLevyRate)
	return HousingLevyContribution{
		EmployeeContribution: amount,
		EmployerContribution: amount,
	}
}

// CalculatePAYE walks taxable income through the graduated bands, then nets
// off personal and insurance relief. Relief never drives the result below
// zero, and negative taxable income is treated as zero.
func CalculatePAYE(taxableIncome float64, premiums InsurancePremiums, rates StatutoryRates) PAYEResult {
	if taxableIncome < 0 {
		taxableIncome = 0
	}

	var grossTax float64
	for _, band := range rates.TaxBands {
		if taxableIncome <= band.Lower {
			break
		}
		upper := band.Upper
		if upper <= 0 || upper > taxableIncome {
			upper = taxableIncome
		}
		grossTax += (upper - band.Lower) * band.Rate
	}
	grossTax = round2(grossTax)

	insuranceRelief := round2(math.Min(premiums.Total()*rates.InsuranceReliefRate, rates.InsuranceReliefCap))
	paye := round2(grossTax - rates.PersonalRelief - insuranceRelief)
	if paye < 0 {
		paye = 0
	}

	return PAYEResult{
		GrossTax:        grossTax,
		PersonalRelief:  rates.PersonalRelief,
		InsuranceRelief: insuranceRelief,
		PAYE:            paye,
	}
}

// CalculateWorktime derives the daily and hourly rates from basic salary and
// converts overtime hours and unpaid days into money. Unpaid days clamp to
// the calendar maximum; an unknown overtime type falls back to the weekday
// multiplier.
func CalculateWorktime(basicSalary, overtimeHours float64, overtimeType OvertimeType, unpaidDays int, rates StatutoryRates) WorktimeResult {
	if basicSalary < 0 {
		basicSalary = 0
	}
	if overtimeHours < 0 {
		overtimeHours = 0
	}
	if unpaidDays < 0 {
		unpaidDays = 0
	}
	if unpaidDays > MaxUnpaidDays {
		unpaidDays = MaxUnpaidDays
	}

	days := rates.WorkingDaysPerMonth
	if days <= 0 {
		days = 26
	}
	hours := rates.StandardHoursPerDay
	if hours <= 0 {
		hours = 8
	}

	dailyRate := round2(basicSalary / float64(days))
	hourlyRate := round2(dailyRate / float64(hours))

	multiplier := rates.WeekdayOvertimeRate
	if overtimeType == OvertimeHoliday {
		multiplier = rates.HolidayOvertimeRate
	}

	return WorktimeResult{
		WorkingDays:     days,
		DailyRate:       dailyRate,
		HourlyRate:      hourlyRate,
		OvertimePay:     round2(hourlyRate * overtimeHours * multiplier),
		UnpaidDeduction: round2(dailyRate * float64(unpaidDays)),
	}
}
