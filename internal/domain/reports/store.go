package reports

import (
	"context"
	"encoding/json"

	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/statutory"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) RegisterRows(ctx context.Context, periodID string) ([]RegisterRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, COALESCE(e.employee_number, ''), e.first_name, e.last_name,
           r.gross_pay, r.paye, r.nssf, r.shif, r.housing_levy,
           r.total_deductions, r.net_pay
    FROM payroll_results r
    JOIN employees e ON r.employee_id = e.id
    WHERE r.period_id = $1
    ORDER BY e.last_name, e.first_name
  `, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RegisterRow
	for rows.Next() {
		var row RegisterRow
		if err := rows.Scan(
			&row.EmployeeID, &row.EmployeeNumber, &row.FirstName, &row.LastName,
			&row.GrossPay, &row.PAYE, &row.NSSF, &row.SHIF, &row.HousingLevy,
			&row.TotalDeductions, &row.NetPay,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) P10Rows(ctx context.Context, periodID string) ([]P10Row, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT COALESCE(e.employee_number, ''), e.first_name, e.last_name,
           COALESCE(e.kra_pin, ''), e.kra_pin_enc,
           r.gross_pay, r.paye, r.breakdown_json
    FROM payroll_results r
    JOIN employees e ON r.employee_id = e.id
    WHERE r.period_id = $1
    ORDER BY e.last_name, e.first_name
  `, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []P10Row
	for rows.Next() {
		var row P10Row
		var breakdownJSON []byte
		if err := rows.Scan(
			&row.EmployeeNumber, &row.FirstName, &row.LastName,
			&row.kraPinPlain, &row.kraPinEnc,
			&row.GrossPay, &row.PAYE, &breakdownJSON,
		); err != nil {
			return nil, err
		}
		var breakdown statutory.CalculationResult
		if len(breakdownJSON) > 0 {
			if err := json.Unmarshal(breakdownJSON, &breakdown); err != nil {
				return nil, err
			}
		}
		row.TaxableIncome = breakdown.Deductions.TaxableIncome
		row.GrossTax = breakdown.Deductions.GrossTax
		row.PersonalRelief = breakdown.Deductions.PersonalRelief
		row.InsuranceRelief = breakdown.Deductions.InsuranceRelief
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) BankRows(ctx context.Context, periodID string) ([]BankRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT COALESCE(e.employee_number, ''), e.first_name, e.last_name,
           COALESCE(e.bank_name, ''),
           COALESCE(e.bank_account, ''), e.bank_account_enc,
           r.net_pay
    FROM payroll_results r
    JOIN employees e ON r.employee_id = e.id
    WHERE r.period_id = $1
    ORDER BY e.last_name, e.first_name
  `, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BankRow
	for rows.Next() {
		var row BankRow
		if err := rows.Scan(
			&row.EmployeeNumber, &row.FirstName, &row.LastName,
			&row.BankName, &row.bankPlain, &row.bankEnc,
			&row.NetPay,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) StatutoryRows(ctx context.Context, periodID string) ([]StatutoryRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT COALESCE(e.employee_number, ''), e.first_name, e.last_name,
           COALESCE(e.nssf_number, ''), COALESCE(e.shif_number, ''),
           r.breakdown_json
    FROM payroll_results r
    JOIN employees e ON r.employee_id = e.id
    WHERE r.period_id = $1
    ORDER BY e.last_name, e.first_name
  `, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StatutoryRow
	for rows.Next() {
		var row StatutoryRow
		var breakdownJSON []byte
		if err := rows.Scan(
			&row.EmployeeNumber, &row.FirstName, &row.LastName,
			&row.NSSFNumber, &row.SHIFNumber, &breakdownJSON,
		); err != nil {
			return nil, err
		}
		var breakdown statutory.CalculationResult
		if len(breakdownJSON) > 0 {
			if err := json.Unmarshal(breakdownJSON, &breakdown); err != nil {
				return nil, err
			}
		}
		row.NSSFEmployee = breakdown.Deductions.NSSF
		row.NSSFEmployer = breakdown.EmployerContributions.NSSF
		row.SHIFEmployee = breakdown.Deductions.SHIF
		row.SHIFEmployer = breakdown.EmployerContributions.SHIF
		row.HousingEmployee = breakdown.Deductions.HousingLevy
		row.HousingEmployer = breakdown.EmployerContributions.HousingLevy
		out = append(out, row)
	}
	return out, rows.Err()
}
