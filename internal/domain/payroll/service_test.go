package payroll

import (
	"testing"

	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/statutory"
)

func TestPeriodInputsNil(t *testing.T) {
	inputs := periodInputs(nil)
	if inputs.OvertimeHours != 0 || inputs.UnpaidDays != 0 || inputs.CustomDeductions != 0 || inputs.Bonuses != 0 {
		t.Fatalf("expected zero inputs for missing row, got %+v", inputs)
	}
}

func TestPeriodInputsMapsFields(t *testing.T) {
	inputs := periodInputs(&Input{
		EmployeeID:       "emp-001",
		OvertimeHours:    10,
		OvertimeType:     "holiday",
		UnpaidDays:       2,
		CustomDeductions: 1500,
		Bonuses:          3000,
	})
	if inputs.OvertimeHours != 10 {
		t.Fatalf("expected overtime hours 10, got %v", inputs.OvertimeHours)
	}
	if inputs.OvertimeType != statutory.OvertimeHoliday {
		t.Fatalf("expected holiday overtime type, got %v", inputs.OvertimeType)
	}
	if inputs.UnpaidDays != 2 {
		t.Fatalf("expected 2 unpaid days, got %v", inputs.UnpaidDays)
	}
	if inputs.CustomDeductions != 1500 {
		t.Fatalf("expected custom deductions 1500, got %v", inputs.CustomDeductions)
	}
	if inputs.Bonuses != 3000 {
		t.Fatalf("expected bonuses 3000, got %v", inputs.Bonuses)
	}
}

func TestResultFromCopiesHeadlineFigures(t *testing.T) {
	basic := 50000.0
	allowances := 15000.0
	profile, err := statutory.NewCompensationProfile(statutory.ProfileParams{
		BasicSalary: &basic,
		Allowances:  &allowances,
	}, statutory.CurrentRates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	breakdown := statutory.Calculate(profile, statutory.PeriodInputs{}, statutory.CurrentRates())

	res := resultFrom(statutory.EmployeeCalculation{EmployeeID: "emp-001", Result: breakdown})
	if res.EmployeeID != "emp-001" {
		t.Fatalf("expected employee id emp-001, got %s", res.EmployeeID)
	}
	if res.GrossPay != breakdown.Earnings.GrossPay {
		t.Fatalf("expected gross %v, got %v", breakdown.Earnings.GrossPay, res.GrossPay)
	}
	if res.NetPay != breakdown.NetPay {
		t.Fatalf("expected net %v, got %v", breakdown.NetPay, res.NetPay)
	}
	if res.PAYE != breakdown.Deductions.PAYE {
		t.Fatalf("expected paye %v, got %v", breakdown.Deductions.PAYE, res.PAYE)
	}
	if res.TotalDeductions != breakdown.Deductions.TotalDeductions {
		t.Fatalf("expected total deductions %v, got %v", breakdown.Deductions.TotalDeductions, res.TotalDeductions)
	}
}

func TestNullIfEmpty(t *testing.T) {
	if value := nullIfEmpty(""); value != nil {
		t.Fatal("expected nil for empty string")
	}
	if value := nullIfEmpty("value"); value == nil {
		t.Fatal("expected value for non-empty string")
	}
}
