package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	cryptoutil "github.com/mwendaalphonce/pactiPay-sub001/internal/platform/crypto"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/platform/querier"
)

// Store persists employee records. The KRA PIN and bank account are
// encrypted at rest when an encryption key is configured; plaintext
// columns remain as a fallback for rows written before the key existed.
type Store struct {
	DB     querier.Querier
	Crypto *cryptoutil.Service
}

func NewStore(db querier.Querier, crypto *cryptoutil.Service) *Store {
	return &Store{DB: db, Crypto: crypto}
}

const employeeColumns = `
    id,
    COALESCE(user_id::text, ''),
    COALESCE(employee_number, ''),
    first_name, last_name, email,
    COALESCE(phone, ''),
    COALESCE(kra_pin, ''),
    kra_pin_enc,
    COALESCE(nssf_number, ''),
    COALESCE(shif_number, ''),
    COALESCE(bank_name, ''),
    COALESCE(bank_account, ''),
    bank_account_enc,
    basic_salary, allowances,
    COALESCE(contract_type, ''),
    life_premium, education_premium, health_premium, mortgage_interest,
    start_date, end_date, status, created_at, updated_at`

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, employeeID)
	return s.scanEmployee(row)
}

func (s *Store) GetEmployeeByUserID(ctx context.Context, userID string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE user_id = $1
  `, userID)
	return s.scanEmployee(row)
}

func (s *Store) EmployeeIDByNumber(ctx context.Context, employeeNumber string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    SELECT id FROM employees WHERE employee_number = $1
  `, employeeNumber).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListEmployees(ctx context.Context, status string) ([]Employee, error) {
	query := `
    SELECT ` + employeeColumns + `
    FROM employees`
	args := []any{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY last_name, first_name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := s.scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (string, error) {
	pinEnc, bankEnc := s.encryptSensitive(emp)
	var pinPlain, bankPlain any = emp.KRAPin, emp.BankAccount
	if s.Crypto != nil && s.Crypto.Configured() {
		pinPlain = nil
		bankPlain = nil
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (user_id, employee_number, first_name, last_name, email, phone,
      kra_pin, kra_pin_enc, nssf_number, shif_number, bank_name, bank_account, bank_account_enc,
      basic_salary, allowances, contract_type,
      life_premium, education_premium, health_premium, mortgage_interest,
      start_date, end_date, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
    RETURNING id
  `,
		nullIfEmpty(emp.UserID), nullIfEmpty(emp.EmployeeNumber), emp.FirstName, emp.LastName, emp.Email, emp.Phone,
		pinPlain, pinEnc, nullIfEmpty(emp.NSSFNumber), nullIfEmpty(emp.SHIFNumber), nullIfEmpty(emp.BankName), bankPlain, bankEnc,
		emp.BasicSalary, emp.Allowances, emp.ContractType,
		emp.LifePremium, emp.EducationPremium, emp.HealthPremium, emp.MortgageInterest,
		emp.StartDate, emp.EndDate, emp.Status,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, employeeID string, emp Employee) error {
	pinEnc, bankEnc := s.encryptSensitive(emp)
	var pinPlain, bankPlain any = emp.KRAPin, emp.BankAccount
	if s.Crypto != nil && s.Crypto.Configured() {
		pinPlain = nil
		bankPlain = nil
	}
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET employee_number = $1,
        first_name = $2,
        last_name = $3,
        email = $4,
        phone = $5,
        kra_pin = $6,
        kra_pin_enc = $7,
        nssf_number = $8,
        shif_number = $9,
        bank_name = $10,
        bank_account = $11,
        bank_account_enc = $12,
        basic_salary = $13,
        allowances = $14,
        contract_type = $15,
        life_premium = $16,
        education_premium = $17,
        health_premium = $18,
        mortgage_interest = $19,
        start_date = $20,
        end_date = $21,
        status = $22,
        updated_at = now()
    WHERE id = $23
  `,
		emp.EmployeeNumber, emp.FirstName, emp.LastName, emp.Email, emp.Phone,
		pinPlain, pinEnc, nullIfEmpty(emp.NSSFNumber), nullIfEmpty(emp.SHIFNumber), nullIfEmpty(emp.BankName), bankPlain, bankEnc,
		emp.BasicSalary, emp.Allowances, emp.ContractType,
		emp.LifePremium, emp.EducationPremium, emp.HealthPremium, emp.MortgageInterest,
		emp.StartDate, emp.EndDate, emp.Status, employeeID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetStatus(ctx context.Context, employeeID, status string, endDate any) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET status = $1, end_date = $2, updated_at = now()
    WHERE id = $3
  `, status, endDate, employeeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanEmployee(row rowScanner) (*Employee, error) {
	var emp Employee
	var pinEnc, bankEnc []byte
	var pinPlain, bankPlain string
	err := row.Scan(
		&emp.ID, &emp.UserID, &emp.EmployeeNumber, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Phone,
		&pinPlain, &pinEnc, &emp.NSSFNumber, &emp.SHIFNumber, &emp.BankName, &bankPlain, &bankEnc,
		&emp.BasicSalary, &emp.Allowances, &emp.ContractType,
		&emp.LifePremium, &emp.EducationPremium, &emp.HealthPremium, &emp.MortgageInterest,
		&emp.StartDate, &emp.EndDate, &emp.Status, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	emp.KRAPin = decryptFallback(s.Crypto, pinEnc, pinPlain)
	emp.BankAccount = decryptFallback(s.Crypto, bankEnc, bankPlain)
	return &emp, nil
}

func (s *Store) encryptSensitive(emp Employee) ([]byte, []byte) {
	if s.Crypto == nil || !s.Crypto.Configured() {
		return nil, nil
	}
	pinEnc, _ := s.Crypto.EncryptString(emp.KRAPin)
	bankEnc, _ := s.Crypto.EncryptString(emp.BankAccount)
	return pinEnc, bankEnc
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func decryptFallback(crypto *cryptoutil.Service, encrypted []byte, plain string) string {
	if crypto == nil || !crypto.Configured() || len(encrypted) == 0 {
		return plain
	}
	decrypted, err := crypto.DecryptString(encrypted)
	if err != nil {
		return plain
	}
	return decrypted
}
