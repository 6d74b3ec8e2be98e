package statutory

import "time"

// TaxBand is one slice of the graduated monthly PAYE scale. Upper is the
// cumulative income ceiling for the band; zero means the band is unbounded.
type TaxBand struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Rate  float64 `json:"rate"`
}

// StatutoryRates carries every constant the calculators depend on for one
// legal regime. Rows are immutable once published; a change in law is a new
// row with a later EffectiveFrom, never an edit to an existing one.
type StatutoryRates struct {
	Version       string    `json:"version"`
	EffectiveFrom time.Time `json:"effectiveFrom"`

	// NSSF Act 2013 tier limits. Tier I covers pensionable pay up to the
	// lower earnings limit, Tier II the slice between the two limits.
	NSSFRate               float64 `json:"nssfRate"`
	NSSFLowerEarningsLimit float64 `json:"nssfLowerEarningsLimit"`
	NSSFUpperEarningsLimit float64 `json:"nssfUpperEarningsLimit"`

	SHIFRate    float64 `json:"shifRate"`
	SHIFMinimum float64 `json:"shifMinimum"`

	HousingLevyRate float64 `json:"housingLevyRate"`

	TaxBands            []TaxBand `json:"taxBands"`
	PersonalRelief      float64   `json:"personalRelief"`
	InsuranceReliefRate float64   `json:"insuranceReliefRate"`
	InsuranceReliefCap  float64   `json:"insuranceReliefCap"`
	MortgageInterestCap float64   `json:"mortgageInterestCap"`

	// The Tax Laws (Amendment) Act 2024 made SHIF and the housing levy
	// deductible before PAYE from 27 Dec 2024. NSSF has been deductible
	// throughout.
	SHIFDeductible        bool `json:"shifDeductible"`
	HousingLevyDeductible bool `json:"housingLevyDeductible"`

	MinimumMonthlyWage float64 `json:"minimumMonthlyWage"`

	WorkingDaysPerMonth int     `json:"workingDaysPerMonth"`
	StandardHoursPerDay int     `json:"standardHoursPerDay"`
	WeekdayOvertimeRate float64 `json:"weekdayOvertimeRate"`
	HolidayOvertimeRate float64 `json:"holidayOvertimeRate"`
}

// Monthly PAYE bands in force since February 2021 and unchanged through the
// 2024 amendments.
var payeBands2021 = []TaxBand{
	{Lower: 0, Upper: 24000, Rate: 0.10},
	{Lower: 24000, Upper: 32333, Rate: 0.25},
	{Lower: 32333, Upper: 500000, Rate: 0.30},
	{Lower: 500000, Upper: 800000, Rate: 0.325},
	{Lower: 800000, Upper: 0, Rate: 0.35},
}

// rateTables holds every published regime in ascending EffectiveFrom order.
var rateTables = []StatutoryRates{
	{
		Version:                "2024-10",
		EffectiveFrom:          time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC),
		NSSFRate:               0.06,
		NSSFLowerEarningsLimit: 7000,
		NSSFUpperEarningsLimit: 36000,
		SHIFRate:               0.0275,
		SHIFMinimum:            300,
		HousingLevyRate:        0.015,
		TaxBands:               payeBands2021,
		PersonalRelief:         2400,
		InsuranceReliefRate:    0.15,
		InsuranceReliefCap:     5000,
		MortgageInterestCap:    25000,
		SHIFDeductible:         false,
		HousingLevyDeductible:  false,
		MinimumMonthlyWage:     15201.65,
		WorkingDaysPerMonth:    26,
		StandardHoursPerDay:    8,
		WeekdayOvertimeRate:    1.5,
		HolidayOvertimeRate:    2.0,
	},
	{
		Version:                "2024-12",
		EffectiveFrom:          time.Date(2024, time.December, 27, 0, 0, 0, 0, time.UTC),
		NSSFRate:               0.06,
		NSSFLowerEarningsLimit: 7000,
		NSSFUpperEarningsLimit: 36000,
		SHIFRate:               0.0275,
		SHIFMinimum:            300,
		HousingLevyRate:        0.015,
		TaxBands:               payeBands2021,
		PersonalRelief:         2400,
		InsuranceReliefRate:    0.15,
		InsuranceReliefCap:     5000,
		MortgageInterestCap:    25000,
		SHIFDeductible:         true,
		HousingLevyDeductible:  true,
		MinimumMonthlyWage:     16113.75,
		WorkingDaysPerMonth:    26,
		StandardHoursPerDay:    8,
		WeekdayOvertimeRate:    1.5,
		HolidayOvertimeRate:    2.0,
	},
	{
		Version:                "2025-02",
		EffectiveFrom:          time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
		NSSFRate:               0.06,
		NSSFLowerEarningsLimit: 8000,
		NSSFUpperEarningsLimit: 72000,
		SHIFRate:               0.0275,
		SHIFMinimum:            300,
		HousingLevyRate:        0.015,
		TaxBands:               payeBands2021,
		PersonalRelief:         2400,
		InsuranceReliefRate:    0.15,
		InsuranceReliefCap:     5000,
		MortgageInterestCap:    25000,
		SHIFDeductible:         true,
		HousingLevyDeductible:  true,
		MinimumMonthlyWage:     16113.75,
		WorkingDaysPerMonth:    26,
		StandardHoursPerDay:    8,
		WeekdayOvertimeRate:    1.5,
		HolidayOvertimeRate:    2.0,
	},
}

// CurrentRates returns the latest published regime.
func CurrentRates() StatutoryRates {
	return rateTables[len(rateTables)-1]
}

// RatesFor returns the regime in force on the given date.
func RatesFor(date time.Time) (StatutoryRates, error) {
	for i := len(rateTables) - 1; i >= 0; i-- {
		if !date.Before(rateTables[i].EffectiveFrom) {
			return rateTables[i], nil
		}
	}
	return StatutoryRates{}, ErrNoRatesForDate
}

// RatesByVersion looks a regime up by its version label.
func RatesByVersion(version string) (StatutoryRates, error) {
	for _, rates := range rateTables {
		if rates.Version == version {
			return rates, nil
		}
	}
	return StatutoryRates{}, ErrNoRatesForDate
}

// Versions lists every published regime, oldest first.
func Versions() []StatutoryRates {
	out := make([]StatutoryRates, len(rateTables))
	copy(out, rateTables)
	return out
}
