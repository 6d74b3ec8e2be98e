package payroll

import (
	"context"
	"encoding/json"
)

func (s *Store) CreatePayslipsForPeriod(ctx context.Context, periodID string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO payslips (period_id, employee_id)
    SELECT period_id, employee_id
    FROM payroll_results
    WHERE period_id = $1
    ON CONFLICT DO NOTHING
  `, periodID)
	return err
}

func (s *Store) ListPayslipKeys(ctx context.Context, periodID string) ([]PayslipKey, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id
    FROM payslips
    WHERE period_id = $1
  `, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PayslipKey
	for rows.Next() {
		var key PayslipKey
		if err := rows.Scan(&key.ID, &key.EmployeeID); err != nil {
			return nil, err
		}
		out = append(out, key)
	}
	return out, rows.Err()
}

func (s *Store) UpdatePayslipFileURL(ctx context.Context, payslipID, fileURL string) error {
	_, err := s.DB.Exec(ctx, "UPDATE payslips SET file_url = $1 WHERE id = $2", fileURL, payslipID)
	return err
}

func (s *Store) CountPayslips(ctx context.Context, employeeID string) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM payslips WHERE employee_id = $1", employeeID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) ListPayslips(ctx context.Context, employeeID string, limit, offset int) ([]Payslip, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT p.id, p.period_id, p.employee_id, r.gross_pay, r.total_deductions, r.net_pay,
           COALESCE(p.file_url, ''), p.created_at
    FROM payslips p
    JOIN payroll_results r ON p.period_id = r.period_id AND p.employee_id = r.employee_id
    WHERE p.employee_id = $1
    ORDER BY p.created_at DESC
    LIMIT $2 OFFSET $3
  `, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slips []Payslip
	for rows.Next() {
		var slip Payslip
		if err := rows.Scan(&slip.ID, &slip.PeriodID, &slip.EmployeeID, &slip.GrossPay, &slip.Deductions, &slip.NetPay, &slip.FileURL, &slip.CreatedAt); err != nil {
			return nil, err
		}
		slips = append(slips, slip)
	}
	return slips, rows.Err()
}

func (s *Store) PayslipInfo(ctx context.Context, payslipID string) (string, string, error) {
	var employeeID, fileURL string
	if err := s.DB.QueryRow(ctx, `
    SELECT employee_id, COALESCE(file_url, '')
    FROM payslips
    WHERE id = $1
  `, payslipID).Scan(&employeeID, &fileURL); err != nil {
		return "", "", err
	}
	return employeeID, fileURL, nil
}

func (s *Store) PayslipEmployeePeriod(ctx context.Context, payslipID string) (string, string, error) {
	var employeeID, periodID string
	if err := s.DB.QueryRow(ctx, `
    SELECT employee_id, period_id
    FROM payslips
    WHERE id = $1
  `, payslipID).Scan(&employeeID, &periodID); err != nil {
		return "", "", err
	}
	return employeeID, periodID, nil
}

func (s *Store) DeletePayslipsForPeriod(ctx context.Context, periodID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM payslips WHERE period_id = $1", periodID)
	return err
}

func (s *Store) PayslipPDFData(ctx context.Context, periodID, employeeID string) (PayslipPDFData, error) {
	var data PayslipPDFData
	var breakdownJSON []byte
	err := s.DB.QueryRow(ctx, `
    SELECT e.first_name, e.last_name, e.email,
           COALESCE(e.employee_number, ''),
           COALESCE(e.kra_pin, ''),
           e.kra_pin_enc,
           p.year, p.month,
           r.breakdown_json
    FROM payroll_results r
    JOIN employees e ON r.employee_id = e.id
    JOIN payroll_periods p ON r.period_id = p.id
    WHERE r.period_id = $1 AND r.employee_id = $2
  `, periodID, employeeID).Scan(
		&data.FirstName, &data.LastName, &data.Email, &data.EmployeeNumber,
		&data.KRAPinPlain, &data.KRAPinEnc, &data.Year, &data.Month, &breakdownJSON,
	)
	if err != nil {
		return PayslipPDFData{}, err
	}
	if len(breakdownJSON) > 0 {
		if err := json.Unmarshal(breakdownJSON, &data.Breakdown); err != nil {
			return PayslipPDFData{}, err
		}
	}
	return data, nil
}
