package payroll

import (
	"context"
	"log"

	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/statutory"
)

// Run processes a period: every active employee either produces a stored
// result or lands on the period's run error list. Results from an earlier
// run of the same period are overwritten, so re-running is safe. The rate
// regime is picked by the period's last calendar day.
func (s *Service) Run(ctx context.Context, periodID string) (RunSummary, error) {
	period, err := s.store.GetPeriod(ctx, periodID)
	if err != nil {
		return RunSummary{}, err
	}
	if period.Status == PeriodStatusFinalized {
		return RunSummary{}, ErrPeriodFinalized
	}

	rates, err := statutory.RatesFor(PeriodEndDate(period.Year, period.Month))
	if err != nil {
		return RunSummary{}, err
	}

	employees, err := s.store.ListActiveEmployeesForRun(ctx)
	if err != nil {
		return RunSummary{}, err
	}

	items := make([]statutory.BatchItem, 0, len(employees))
	banks := make(map[string]string, len(employees))
	for _, emp := range employees {
		input, err := s.store.InputForEmployee(ctx, periodID, emp.EmployeeID)
		if err != nil {
			return RunSummary{}, err
		}
		items = append(items, statutory.BatchItem{
			EmployeeID: emp.EmployeeID,
			Params: statutory.ProfileParams{
				BasicSalary:      emp.BasicSalary,
				Allowances:       emp.Allowances,
				ContractType:     emp.ContractType,
				LifePremium:      emp.LifePremium,
				EducationPremium: emp.EducationPremium,
				HealthPremium:    emp.HealthPremium,
				MortgageInterest: emp.MortgageInterest,
			},
			Inputs: periodInputs(input),
		})
		banks[emp.EmployeeID] = s.bankAccount(emp)
	}

	batch := statutory.CalculateBatch(items, rates)

	summary := RunSummary{
		PeriodID:     periodID,
		Status:       PeriodStatusProcessed,
		RatesVersion: rates.Version,
		Failed:       []RunError{},
	}
	for _, calc := range batch.Successful {
		res := resultFrom(calc)
		if banks[calc.EmployeeID] == "" {
			res.Warnings = append(res.Warnings, WarningMissingBank)
		}
		previousNet, err := s.store.LatestNet(ctx, calc.EmployeeID, periodID)
		if err != nil {
			log.Printf("previous net lookup failed: %v", err)
		}
		if previousNet > 0 {
			diff := res.NetPay - previousNet
			if diff < 0 {
				diff = -diff
			}
			if diff/previousNet > 0.5 {
				res.Warnings = append(res.Warnings, WarningNetVariance)
			}
		}
		if err := s.store.UpsertResult(ctx, periodID, res); err != nil {
			return RunSummary{}, err
		}
		summary.Processed++
	}
	for _, failure := range batch.Failed {
		summary.Failed = append(summary.Failed, RunError{EmployeeID: failure.EmployeeID, Reason: failure.Reason})
	}

	if err := s.store.ReplaceRunErrors(ctx, periodID, summary.Failed); err != nil {
		return RunSummary{}, err
	}
	if err := s.store.SetPeriodProcessed(ctx, periodID, rates.Version); err != nil {
		return RunSummary{}, err
	}
	return summary, nil
}

func resultFrom(calc statutory.EmployeeCalculation) Result {
	breakdown := calc.Result
	return Result{
		EmployeeID:      calc.EmployeeID,
		GrossPay:        breakdown.Earnings.GrossPay,
		TotalDeductions: breakdown.Deductions.TotalDeductions,
		NetPay:          breakdown.NetPay,
		PAYE:            breakdown.Deductions.PAYE,
		NSSF:            breakdown.Deductions.NSSF,
		SHIF:            breakdown.Deductions.SHIF,
		HousingLevy:     breakdown.Deductions.HousingLevy,
		Warnings:        append([]string(nil), breakdown.Warnings...),
		Breakdown:       breakdown,
	}
}

func (s *Service) bankAccount(emp RunEmployee) string {
	if s.crypto != nil && s.crypto.Configured() && len(emp.BankEnc) > 0 {
		if plain, err := s.crypto.DecryptString(emp.BankEnc); err == nil {
			return plain
		}
	}
	return emp.BankPlain
}
