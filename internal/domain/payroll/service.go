package payroll

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/statutory"
	cryptoutil "github.com/mwendaalphonce/pactiPay-sub001/internal/platform/crypto"
)

type Service struct {
	store      *Store
	crypto     *cryptoutil.Service
	payslipDir string
}

func NewService(store *Store, crypto *cryptoutil.Service, payslipDir string) *Service {
	if payslipDir == "" {
		payslipDir = "storage/payslips"
	}
	return &Service{store: store, crypto: crypto, payslipDir: payslipDir}
}

func (s *Service) CreatePeriod(ctx context.Context, year, month int) (string, error) {
	if !ValidPeriod(year, month) {
		return "", ErrInvalidPeriod
	}
	return s.store.CreatePeriod(ctx, year, month)
}

func (s *Service) GetPeriod(ctx context.Context, periodID string) (Period, error) {
	return s.store.GetPeriod(ctx, periodID)
}

func (s *Service) CountPeriods(ctx context.Context) (int, error) {
	return s.store.CountPeriods(ctx)
}

func (s *Service) ListPeriods(ctx context.Context, limit, offset int) ([]Period, error) {
	return s.store.ListPeriods(ctx, limit, offset)
}

// SubmitInput records one employee's variable figures for a period,
// replacing any earlier submission. Finalized periods reject new inputs.
func (s *Service) SubmitInput(ctx context.Context, periodID string, input Input) error {
	period, err := s.store.GetPeriod(ctx, periodID)
	if err != nil {
		return err
	}
	if period.Status == PeriodStatusFinalized {
		return ErrPeriodFinalized
	}
	if err := periodInputs(&input).Validate(); err != nil {
		return err
	}
	return s.store.UpsertInput(ctx, periodID, input)
}

func (s *Service) CountInputs(ctx context.Context, periodID string) (int, error) {
	return s.store.CountInputs(ctx, periodID)
}

func (s *Service) ListInputs(ctx context.Context, periodID string, limit, offset int) ([]Input, error) {
	return s.store.ListInputs(ctx, periodID, limit, offset)
}

func (s *Service) ListResults(ctx context.Context, periodID string) ([]Result, error) {
	return s.store.ListResults(ctx, periodID)
}

func (s *Service) ResultForEmployee(ctx context.Context, periodID, employeeID string) (*Result, error) {
	return s.store.ResultForEmployee(ctx, periodID, employeeID)
}

func (s *Service) ListRunErrors(ctx context.Context, periodID string) ([]RunError, error) {
	return s.store.ListRunErrors(ctx, periodID)
}

func (s *Service) PeriodSummary(ctx context.Context, periodID string) (PeriodSummary, error) {
	return s.store.PeriodSummary(ctx, periodID)
}

func (s *Service) CountPayslips(ctx context.Context, employeeID string) (int, error) {
	return s.store.CountPayslips(ctx, employeeID)
}

func (s *Service) ListPayslips(ctx context.Context, employeeID string, limit, offset int) ([]Payslip, error) {
	return s.store.ListPayslips(ctx, employeeID, limit, offset)
}

func (s *Service) PayslipInfo(ctx context.Context, payslipID string) (string, string, error) {
	return s.store.PayslipInfo(ctx, payslipID)
}

func (s *Service) PayslipEmployeePeriod(ctx context.Context, payslipID string) (string, string, error) {
	return s.store.PayslipEmployeePeriod(ctx, payslipID)
}

func (s *Service) UpdatePayslipFileURL(ctx context.Context, payslipID, fileURL string) error {
	return s.store.UpdatePayslipFileURL(ctx, payslipID, fileURL)
}

// Finalize locks a processed period and generates payslips from its stored
// results. PDF generation failures are logged per payslip, not fatal; the
// download path regenerates missing files on demand.
func (s *Service) Finalize(ctx context.Context, periodID string) error {
	period, err := s.store.GetPeriod(ctx, periodID)
	if err != nil {
		return err
	}
	if period.Status != PeriodStatusProcessed {
		return ErrFinalizeInvalidState
	}
	count, err := s.store.CountResults(ctx, periodID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrFinalizeNoResults
	}

	if err := s.store.FinalizePeriod(ctx, periodID); err != nil {
		return err
	}
	if err := s.store.CreatePayslipsForPeriod(ctx, periodID); err != nil {
		return err
	}

	keys, err := s.store.ListPayslipKeys(ctx, periodID)
	if err != nil {
		log.Printf("payslip list failed: %v", err)
		return nil
	}
	for _, key := range keys {
		fileURL, err := s.GeneratePayslipPDF(ctx, periodID, key.EmployeeID, key.ID)
		if err != nil {
			log.Printf("payslip pdf generation failed: %v", err)
			continue
		}
		if err := s.store.UpdatePayslipFileURL(ctx, key.ID, fileURL); err != nil {
			log.Printf("payslip file url update failed: %v", err)
		}
	}
	return nil
}

// Reopen returns a finalized period to draft and discards its results and
// payslips so the next run starts clean.
func (s *Service) Reopen(ctx context.Context, periodID string) error {
	period, err := s.store.GetPeriod(ctx, periodID)
	if err != nil {
		return err
	}
	if period.Status != PeriodStatusFinalized {
		return ErrReopenInvalidState
	}
	if err := s.store.UpdatePeriodStatus(ctx, periodID, PeriodStatusDraft); err != nil {
		return err
	}
	if err := s.store.DeleteResultsForPeriod(ctx, periodID); err != nil {
		log.Printf("payroll results delete failed: %v", err)
	}
	if err := s.store.DeleteRunErrorsForPeriod(ctx, periodID); err != nil {
		log.Printf("payroll run errors delete failed: %v", err)
	}
	if err := s.store.DeletePayslipsForPeriod(ctx, periodID); err != nil {
		log.Printf("payslips delete failed: %v", err)
	}
	return nil
}

func (s *Service) GeneratePayslipPDF(ctx context.Context, periodID, employeeID, payslipID string) (string, error) {
	data, err := s.store.PayslipPDFData(ctx, periodID, employeeID)
	if err != nil {
		return "", err
	}

	kraPin := data.KRAPinPlain
	if s.crypto != nil && s.crypto.Configured() && len(data.KRAPinEnc) > 0 {
		if plain, err := s.crypto.DecryptString(data.KRAPinEnc); err == nil {
			kraPin = plain
		}
	}

	if err := os.MkdirAll(s.payslipDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.payslipDir, payslipID+".pdf")

	breakdown := data.Breakdown
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", data.FirstName, data.LastName))
	pdf.Ln(7)
	if data.EmployeeNumber != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Employee No: %s", data.EmployeeNumber))
		pdf.Ln(7)
	}
	if kraPin != "" {
		pdf.Cell(0, 8, fmt.Sprintf("KRA PIN: %s", kraPin))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", data.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %04d-%02d", data.Year, data.Month))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Basic Salary: %.2f KES", breakdown.Earnings.BasicSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Allowances: %.2f KES", breakdown.Earnings.Allowances))
	pdf.Ln(7)
	if breakdown.Earnings.Overtime > 0 {
		pdf.Cell(0, 8, fmt.Sprintf("Overtime: %.2f KES", breakdown.Earnings.Overtime))
		pdf.Ln(7)
	}
	if breakdown.Earnings.Bonuses > 0 {
		pdf.Cell(0, 8, fmt.Sprintf("Bonuses: %.2f KES", breakdown.Earnings.Bonuses))
		pdf.Ln(7)
	}
	if breakdown.Calculations.UnpaidDeduction > 0 {
		pdf.Cell(0, 8, fmt.Sprintf("Unpaid Days: -%.2f KES", breakdown.Calculations.UnpaidDeduction))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Gross Pay: %.2f KES", breakdown.Earnings.GrossPay))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("PAYE: %.2f KES", breakdown.Deductions.PAYE))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("NSSF: %.2f KES", breakdown.Deductions.NSSF))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("SHIF: %.2f KES", breakdown.Deductions.SHIF))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Housing Levy: %.2f KES", breakdown.Deductions.HousingLevy))
	pdf.Ln(7)
	if breakdown.Deductions.CustomDeductions > 0 {
		pdf.Cell(0, 8, fmt.Sprintf("Other Deductions: %.2f KES", breakdown.Deductions.CustomDeductions))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Total Deductions: %.2f KES", breakdown.Deductions.TotalDeductions))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net Pay: %.2f KES", breakdown.NetPay))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}

	if s.crypto != nil && s.crypto.Configured() {
		raw, err := os.ReadFile(filePath)
		if err != nil {
			return "", err
		}
		encrypted, err := s.crypto.Encrypt(raw)
		if err != nil {
			return "", err
		}
		encryptedPath := filePath + ".enc"
		if err := os.WriteFile(encryptedPath, encrypted, 0o600); err != nil {
			return "", err
		}
		if err := os.Remove(filePath); err != nil {
			return "", err
		}
		return encryptedPath, nil
	}

	return filePath, nil
}

// ReadPayslipFile loads a generated payslip from disk, transparently
// decrypting files written with encryption at rest enabled.
func (s *Service) ReadPayslipFile(fileURL string) ([]byte, error) {
	data, err := os.ReadFile(fileURL)
	if err != nil {
		return nil, err
	}
	if s.crypto != nil && s.crypto.Configured() && filepath.Ext(fileURL) == ".enc" {
		return s.crypto.Decrypt(data)
	}
	return data, nil
}

func periodInputs(input *Input) statutory.PeriodInputs {
	if input == nil {
		return statutory.PeriodInputs{}
	}
	return statutory.PeriodInputs{
		OvertimeHours:    input.OvertimeHours,
		OvertimeType:     statutory.OvertimeType(input.OvertimeType),
		UnpaidDays:       input.UnpaidDays,
		CustomDeductions: input.CustomDeductions,
		Bonuses:          input.Bonuses,
	}
}
