package statutory

import "testing"

func TestCalculateNSSFTierSplit(t *testing.T) {
	got := CalculateNSSF(50000, CurrentRates())
	if got.EmployeeContribution != 3000 {
		t.Fatalf("expected employee contribution 3000, got %v", got.EmployeeContribution)
	}
	if got.EmployerContribution != 3000 {
		t.Fatalf("expected employer contribution 3000, got %v", got.EmployerContribution)
	}
}

func TestCalculateNSSFCapsAtUpperLimit(t *testing.T) {
	got := CalculateNSSF(250000, CurrentRates())
	if got.EmployeeContribution != 4320 {
		t.Fatalf("expected capped contribution 4320, got %v", got.EmployeeContribution)
	}
	if got.EmployeeContribution != got.EmployerContribution {
		t.Fatalf("expected matched contributions, got %v vs %v", got.EmployeeContribution, got.EmployerContribution)
	}
}

func TestCalculateNSSFBelowLowerLimit(t *testing.T) {
	got := CalculateNSSF(5000, CurrentRates())
	if got.EmployeeContribution != 300 {
		t.Fatalf("expected proportional contribution 300, got %v", got.EmployeeContribution)
	}
}

func TestCalculateNSSFNegativeEarnings(t *testing.T) {
	got := CalculateNSSF(-100, CurrentRates())
	if got.EmployeeContribution != 0 {
		t.Fatalf("expected zero contribution, got %v", got.EmployeeContribution)
	}
}

func TestCalculateSHIFStandardRate(t *testing.T) {
	got := CalculateSHIF(65000, CurrentRates())
	if got.EmployeeContribution != 1787.5 {
		t.Fatalf("expected employee contribution 1787.50, got %v", got.EmployeeContribution)
	}
	if got.EmployerContribution != 1787.5 {
		t.Fatalf("expected employer contribution 1787.50, got %v", got.EmployerContribution)
	}
	if got.TotalContribution != 3575 {
		t.Fatalf("expected total contribution 3575, got %v", got.TotalContribution)
	}
	if got.IsMinimumApplied {
		t.Fatal("did not expect minimum floor to apply")
	}
	if got.EffectiveRate != 2.75 {
		t.Fatalf("expected effective rate 2.75, got %v", got.EffectiveRate)
	}
}

func TestCalculateSHIFMinimumFloor(t *testing.T) {
	got := CalculateSHIF(8000, CurrentRates())
	if got.EmployeeContribution != 300 {
		t.Fatalf("expected floor contribution 300, got %v", got.EmployeeContribution)
	}
	if !got.IsMinimumApplied {
		t.Fatal("expected minimum floor to apply")
	}
	if got.EffectiveRate != 3.75 {
		t.Fatalf("expected effective rate 3.75, got %v", got.EffectiveRate)
	}
}

func TestCalculateSHIFZeroGross(t *testing.T) {
	got := CalculateSHIF(0, CurrentRates())
	if got.EmployeeContribution != 0 || got.EmployerContribution != 0 || got.TotalContribution != 0 {
		t.Fatalf("expected zero contributions for zero gross, got %+v", got)
	}
	if got.IsMinimumApplied {
		t.Fatal("floor must not apply to zero gross")
	}
}

func TestCalculateSHIFHasNoCeiling(t *testing.T) {
	got := CalculateSHIF(1000000, CurrentRates())
	if got.EmployeeContribution != 27500 {
		t.Fatalf("expected contribution 27500, got %v", got.EmployeeContribution)
	}
}

func TestCalculateHousingLevyMatched(t *testing.T) {
	got := CalculateHousingLevy(65000, CurrentRates())
	if got.EmployeeContribution != 975 {
		t.Fatalf("expected employee levy 975, got %v", got.EmployeeContribution)
	}
	if got.EmployerContribution != 975 {
		t.Fatalf("expected employer levy 975, got %v", got.EmployerContribution)
	}
}

func TestCalculateHousingLevyZeroGross(t *testing.T) {
	got := CalculateHousingLevy(0, CurrentRates())
	if got.EmployeeContribution != 0 || got.EmployerContribution != 0 {
		t.Fatalf("expected zero levy, got %+v", got)
	}
}

func TestCalculatePAYEBandApplication(t *testing.T) {
	got := CalculatePAYE(59237.50, InsurancePremiums{}, CurrentRates())
	if got.GrossTax != 12554.60 {
		t.Fatalf("expected gross tax 12554.60, got %v", got.GrossTax)
	}
	if got.PersonalRelief != 2400 {
		t.Fatalf("expected personal relief 2400, got %v", got.PersonalRelief)
	}
	if got.PAYE != 10154.60 {
		t.Fatalf("expected PAYE 10154.60, got %v", got.PAYE)
	}
}

func TestCalculatePAYEReliefFloorsAtZero(t *testing.T) {
	got := CalculatePAYE(10000, InsurancePremiums{}, CurrentRates())
	if got.GrossTax != 1000 {
		t.Fatalf("expected gross tax 1000, got %v", got.GrossTax)
	}
	if got.PAYE != 0 {
		t.Fatalf("expected PAYE floored at zero, got %v", got.PAYE)
	}
}

func TestCalculatePAYEInsuranceReliefCap(t *testing.T) {
	premiums := InsurancePremiums{Life: 20000, Health: 30000}
	got := CalculatePAYE(100000, premiums, CurrentRates())
	if got.InsuranceRelief != 5000 {
		t.Fatalf("expected insurance relief capped at 5000, got %v", got.InsuranceRelief)
	}
	if got.PAYE != 17383.35 {
		t.Fatalf("expected PAYE 17383.35, got %v", got.PAYE)
	}
}

func TestCalculatePAYEInsuranceReliefUnderCap(t *testing.T) {
	premiums := InsurancePremiums{Life: 4000}
	got := CalculatePAYE(100000, premiums, CurrentRates())
	if got.InsuranceRelief != 600 {
		t.Fatalf("expected insurance relief 600, got %v", got.InsuranceRelief)
	}
}

func TestCalculatePAYENegativeTaxableClamps(t *testing.T) {
	got := CalculatePAYE(-500, InsurancePremiums{}, CurrentRates())
	if got.GrossTax != 0 || got.PAYE != 0 {
		t.Fatalf("expected zero tax for negative taxable income, got %+v", got)
	}
}

func TestCalculatePAYEMonotonic(t *testing.T) {
	previous := -1.0
	for income := 0.0; income <= 900000; income += 7000 {
		got := CalculatePAYE(income, InsurancePremiums{}, CurrentRates())
		if got.PAYE < previous {
			t.Fatalf("PAYE decreased at income %v: %v < %v", income, got.PAYE, previous)
		}
		previous = got.PAYE
	}
}

func TestCalculateWorktimeRates(t *testing.T) {
	got := CalculateWorktime(52000, 0, OvertimeWeekday, 0, CurrentRates())
	if got.WorkingDays != 26 {
		t.Fatalf("expected 26 working days, got %v", got.WorkingDays)
	}
	if got.DailyRate != 2000 {
		t.Fatalf("expected daily rate 2000, got %v", got.DailyRate)
	}
	if got.HourlyRate != 250 {
		t.Fatalf("expected hourly rate 250, got %v", got.HourlyRate)
	}
}

func TestCalculateWorktimeWeekdayOvertime(t *testing.T) {
	got := CalculateWorktime(52000, 10, OvertimeWeekday, 0, CurrentRates())
	if got.OvertimePay != 3750 {
		t.Fatalf("expected weekday overtime 3750, got %v", got.OvertimePay)
	}
}

func TestCalculateWorktimeHolidayOvertime(t *testing.T) {
	got := CalculateWorktime(52000, 10, OvertimeHoliday, 0, CurrentRates())
	if got.OvertimePay != 5000 {
		t.Fatalf("expected holiday overtime 5000, got %v", got.OvertimePay)
	}
}

func TestCalculateWorktimeUnpaidDays(t *testing.T) {
	got := CalculateWorktime(52000, 0, OvertimeWeekday, 3, CurrentRates())
	if got.UnpaidDeduction != 6000 {
		t.Fatalf("expected unpaid deduction 6000, got %v", got.UnpaidDeduction)
	}
}

func TestCalculateWorktimeClampsUnpaidDays(t *testing.T) {
	got := CalculateWorktime(52000, 0, OvertimeWeekday, 45, CurrentRates())
	if got.UnpaidDeduction != 62000 {
		t.Fatalf("expected unpaid deduction clamped to 31 days (62000), got %v", got.UnpaidDeduction)
	}
}

func TestCalculateWorktimeRoundsDailyRate(t *testing.T) {
	got := CalculateWorktime(50000, 0, OvertimeWeekday, 0, CurrentRates())
	if got.DailyRate != 1923.08 {
		t.Fatalf("expected daily rate 1923.08, got %v", got.DailyRate)
	}
}

func TestCalculateWorktimeUnknownTypeUsesWeekday(t *testing.T) {
	got := CalculateWorktime(52000, 4, "", 0, CurrentRates())
	if got.OvertimePay != 1500 {
		t.Fatalf("expected weekday multiplier for empty type (1500), got %v", got.OvertimePay)
	}
}
