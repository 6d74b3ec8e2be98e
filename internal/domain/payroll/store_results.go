package payroll

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) UpsertResult(ctx context.Context, periodID string, res Result) error {
	breakdownJSON, err := json.Marshal(res.Breakdown)
	if err != nil {
		return err
	}
	warningsJSON, err := json.Marshal(res.Warnings)
	if err != nil {
		warningsJSON = []byte("[]")
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO payroll_results (period_id, employee_id, gross_pay, total_deductions, net_pay,
      paye, nssf, shif, housing_levy, warnings_json, breakdown_json)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    ON CONFLICT (period_id, employee_id)
    DO UPDATE SET gross_pay = EXCLUDED.gross_pay,
                  total_deductions = EXCLUDED.total_deductions,
                  net_pay = EXCLUDED.net_pay,
                  paye = EXCLUDED.paye,
                  nssf = EXCLUDED.nssf,
                  shif = EXCLUDED.shif,
                  housing_levy = EXCLUDED.housing_levy,
                  warnings_json = EXCLUDED.warnings_json,
                  breakdown_json = EXCLUDED.breakdown_json
  `, periodID, res.EmployeeID, res.GrossPay, res.TotalDeductions, res.NetPay,
		res.PAYE, res.NSSF, res.SHIF, res.HousingLevy, warningsJSON, breakdownJSON)
	return err
}

func (s *Store) ListResults(ctx context.Context, periodID string) ([]Result, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_id, gross_pay, total_deductions, net_pay, paye, nssf, shif, housing_levy,
           warnings_json, breakdown_json
    FROM payroll_results
    WHERE period_id = $1
    ORDER BY employee_id
  `, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (s *Store) ResultForEmployee(ctx context.Context, periodID, employeeID string) (*Result, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT employee_id, gross_pay, total_deductions, net_pay, paye, nssf, shif, housing_levy,
           warnings_json, breakdown_json
    FROM payroll_results
    WHERE period_id = $1 AND employee_id = $2
  `, periodID, employeeID)
	res, err := scanResult(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *Store) CountResults(ctx context.Context, periodID string) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM payroll_results WHERE period_id = $1", periodID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) LatestNet(ctx context.Context, employeeID, excludePeriodID string) (float64, error) {
	var previousNet float64
	err := s.DB.QueryRow(ctx, `
    SELECT net_pay
    FROM payroll_results
    WHERE employee_id = $1 AND period_id <> $2
    ORDER BY created_at DESC
    LIMIT 1
  `, employeeID, excludePeriodID).Scan(&previousNet)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return previousNet, nil
}

func (s *Store) ReplaceRunErrors(ctx context.Context, periodID string, failures []RunError) error {
	if _, err := s.DB.Exec(ctx, "DELETE FROM payroll_run_errors WHERE period_id = $1", periodID); err != nil {
		return err
	}
	for _, failure := range failures {
		if _, err := s.DB.Exec(ctx, `
      INSERT INTO payroll_run_errors (period_id, employee_id, reason)
      VALUES ($1,$2,$3)
    `, periodID, failure.EmployeeID, failure.Reason); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ListRunErrors(ctx context.Context, periodID string) ([]RunError, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_id, reason
    FROM payroll_run_errors
    WHERE period_id = $1
    ORDER BY created_at
  `, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunError
	for rows.Next() {
		var failure RunError
		if err := rows.Scan(&failure.EmployeeID, &failure.Reason); err != nil {
			return nil, err
		}
		out = append(out, failure)
	}
	return out, rows.Err()
}

func (s *Store) PeriodSummary(ctx context.Context, periodID string) (PeriodSummary, error) {
	var summary PeriodSummary
	if err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(gross_pay),0), COALESCE(SUM(total_deductions),0), COALESCE(SUM(net_pay),0),
           COALESCE(SUM(paye),0), COALESCE(SUM(nssf),0), COALESCE(SUM(shif),0), COALESCE(SUM(housing_levy),0),
           COUNT(1)
    FROM payroll_results
    WHERE period_id = $1
  `, periodID).Scan(
		&summary.TotalGross, &summary.TotalDeductions, &summary.TotalNet,
		&summary.TotalPAYE, &summary.TotalNSSF, &summary.TotalSHIF, &summary.TotalHousingLevy,
		&summary.EmployeeCount,
	); err != nil {
		return summary, err
	}

	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM payroll_run_errors WHERE period_id = $1", periodID).Scan(&summary.FailureCount); err != nil {
		return summary, err
	}

	summary.Warnings = map[string]int{}
	rows, err := s.DB.Query(ctx, `
    SELECT warnings_json
    FROM payroll_results
    WHERE period_id = $1
  `, periodID)
	if err != nil {
		return summary, nil
	}
	defer rows.Close()
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			continue
		}
		var warnings []string
		if err := json.Unmarshal(raw, &warnings); err != nil {
			continue
		}
		for _, key := range warnings {
			summary.Warnings[key]++
		}
	}
	return summary, nil
}

func (s *Store) DeleteResultsForPeriod(ctx context.Context, periodID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM payroll_results WHERE period_id = $1", periodID)
	return err
}

func (s *Store) DeleteRunErrorsForPeriod(ctx context.Context, periodID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM payroll_run_errors WHERE period_id = $1", periodID)
	return err
}

func scanResult(row rowScanner) (Result, error) {
	var res Result
	var warningsJSON, breakdownJSON []byte
	err := row.Scan(
		&res.EmployeeID, &res.GrossPay, &res.TotalDeductions, &res.NetPay,
		&res.PAYE, &res.NSSF, &res.SHIF, &res.HousingLevy,
		&warningsJSON, &breakdownJSON,
	)
	if err != nil {
		return Result{}, err
	}
	if len(warningsJSON) > 0 {
		if err := json.Unmarshal(warningsJSON, &res.Warnings); err != nil {
			res.Warnings = nil
		}
	}
	if len(breakdownJSON) > 0 {
		if err := json.Unmarshal(breakdownJSON, &res.Breakdown); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}
