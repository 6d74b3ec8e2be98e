package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mwendaalphonce/pactiPay-sub001/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) CreatePeriod(ctx context.Context, year, month int) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payroll_periods (year, month)
    VALUES ($1,$2)
    RETURNING id
  `, year, month).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrDuplicatePeriod
		}
		return "", err
	}
	return id, nil
}

func (s *Store) GetPeriod(ctx context.Context, periodID string) (Period, error) {
	var period Period
	err := s.DB.QueryRow(ctx, `
    SELECT id, year, month, status, COALESCE(rates_version, ''), finalized_at, created_at
    FROM payroll_periods
    WHERE id = $1
  `, periodID).Scan(&period.ID, &period.Year, &period.Month, &period.Status, &period.RatesVersion, &period.FinalizedAt, &period.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Period{}, ErrPeriodNotFound
	}
	if err != nil {
		return Period{}, err
	}
	return period, nil
}

func (s *Store) CountPeriods(ctx context.Context) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM payroll_periods").Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) ListPeriods(ctx context.Context, limit, offset int) ([]Period, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, year, month, status, COALESCE(rates_version, ''), finalized_at, created_at
    FROM payroll_periods
    ORDER BY year DESC, month DESC
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []Period
	for rows.Next() {
		var period Period
		if err := rows.Scan(&period.ID, &period.Year, &period.Month, &period.Status, &period.RatesVersion, &period.FinalizedAt, &period.CreatedAt); err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}
	return periods, rows.Err()
}

func (s *Store) UpdatePeriodStatus(ctx context.Context, periodID, status string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE payroll_periods SET status = $1 WHERE id = $2
  `, status, periodID)
	return err
}

func (s *Store) SetPeriodProcessed(ctx context.Context, periodID, ratesVersion string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE payroll_periods SET status = $1, rates_version = $2 WHERE id = $3
  `, PeriodStatusProcessed, ratesVersion, periodID)
	return err
}

// FinalizePeriod flips a processed period to finalized. The status guard in
// the WHERE clause makes concurrent finalize attempts resolve to one winner.
func (s *Store) FinalizePeriod(ctx context.Context, periodID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE payroll_periods
    SET status = $1, finalized_at = now()
    WHERE id = $2 AND status = $3
  `, PeriodStatusFinalized, periodID, PeriodStatusProcessed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFinalizeInvalidState
	}
	return nil
}

func (s *Store) UpsertInput(ctx context.Context, periodID string, input Input) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO payroll_inputs (period_id, employee_id, overtime_hours, overtime_type, unpaid_days, custom_deductions, bonuses, source)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    ON CONFLICT (period_id, employee_id)
    DO UPDATE SET overtime_hours = EXCLUDED.overtime_hours,
                  overtime_type = EXCLUDED.overtime_type,
                  unpaid_days = EXCLUDED.unpaid_days,
                  custom_deductions = EXCLUDED.custom_deductions,
                  bonuses = EXCLUDED.bonuses,
                  source = EXCLUDED.source
  `, periodID, input.EmployeeID, input.OvertimeHours, nullIfEmpty(input.OvertimeType), input.UnpaidDays, input.CustomDeductions, input.Bonuses, input.Source)
	return err
}

func (s *Store) CountInputs(ctx context.Context, periodID string) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM payroll_inputs WHERE period_id = $1", periodID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) ListInputs(ctx context.Context, periodID string, limit, offset int) ([]Input, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_id, overtime_hours, COALESCE(overtime_type, ''), unpaid_days, custom_deductions, bonuses, source
    FROM payroll_inputs
    WHERE period_id = $1
    ORDER BY created_at DESC
    LIMIT $2 OFFSET $3
  `, periodID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inputs []Input
	for rows.Next() {
		var input Input
		if err := rows.Scan(&input.EmployeeID, &input.OvertimeHours, &input.OvertimeType, &input.UnpaidDays, &input.CustomDeductions, &input.Bonuses, &input.Source); err != nil {
			return nil, err
		}
		inputs = append(inputs, input)
	}
	return inputs, rows.Err()
}

func (s *Store) InputForEmployee(ctx context.Context, periodID, employeeID string) (*Input, error) {
	var input Input
	err := s.DB.QueryRow(ctx, `
    SELECT employee_id, overtime_hours, COALESCE(overtime_type, ''), unpaid_days, custom_deductions, bonuses, source
    FROM payroll_inputs
    WHERE period_id = $1 AND employee_id = $2
  `, periodID, employeeID).Scan(&input.EmployeeID, &input.OvertimeHours, &input.OvertimeType, &input.UnpaidDays, &input.CustomDeductions, &input.Bonuses, &input.Source)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &input, nil
}

// RunEmployee carries the compensation columns a processing run needs.
// Encrypted bank fields travel as stored; the service decrypts.
type RunEmployee struct {
	EmployeeID       string
	BasicSalary      *float64
	Allowances       *float64
	ContractType     string
	LifePremium      *float64
	EducationPremium *float64
	HealthPremium    *float64
	MortgageInterest *float64
	BankPlain        string
	BankEnc          []byte
}

func (s *Store) ListActiveEmployeesForRun(ctx context.Context) ([]RunEmployee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, basic_salary, allowances,
           COALESCE(contract_type, ''),
           life_premium, education_premium, health_premium, mortgage_interest,
           COALESCE(bank_account, ''), bank_account_enc
    FROM employees
    WHERE status = $1
    ORDER BY last_name, first_name
  `, "active")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunEmployee
	for rows.Next() {
		var emp RunEmployee
		if err := rows.Scan(
			&emp.EmployeeID, &emp.BasicSalary, &emp.Allowances, &emp.ContractType,
			&emp.LifePremium, &emp.EducationPremium, &emp.HealthPremium, &emp.MortgageInterest,
			&emp.BankPlain, &emp.BankEnc,
		); err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
