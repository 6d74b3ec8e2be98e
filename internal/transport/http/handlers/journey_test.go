package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/mwendaalphonce/pactiPay-sub001/internal/app/server"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/auth"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/payroll"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error any             `json:"error"`
}

func TestHRPayrollJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	client := ts.Client()
	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	employeeEmail := fmt.Sprintf("journey-%d@example.com", time.Now().UnixNano())
	employeeID := createEmployee(t, client, ts.URL, token, employeeEmail)

	periodID := createPayrollPeriod(t, client, ts.URL, token, 2026, 1)

	submitOvertimeInput(t, client, ts.URL, token, periodID, employeeID)

	runStatus := runPayroll(t, client, ts.URL, token, periodID)
	if runStatus != payroll.PeriodStatusProcessed {
		t.Fatalf("expected payroll status processed, got %s", runStatus)
	}

	result := findResult(t, client, ts.URL, token, periodID, employeeID)
	gross, _ := result["grossPay"].(float64)
	deductions, _ := result["totalDeductions"].(float64)
	net, _ := result["netPay"].(float64)
	if gross <= 0 || net <= 0 {
		t.Fatalf("expected positive gross and net pay, got gross=%v net=%v", gross, net)
	}
	if math.Abs(net+deductions-gross) > 0.005 {
		t.Fatalf("expected net %v + deductions %v to equal gross %v", net, deductions, gross)
	}

	summary := getJSON(t, client, ts.URL+"/api/v1/payroll/periods/"+periodID+"/summary", token)
	var summaryPayload map[string]any
	if err := json.Unmarshal(summary.Data, &summaryPayload); err != nil {
		t.Fatalf("failed to decode summary response: %v", err)
	}
	if totalNet, _ := summaryPayload["totalNet"].(float64); totalNet <= 0 {
		t.Fatalf("expected positive total net in summary, got %v", summaryPayload["totalNet"])
	}

	finalStatus := finalizePayroll(t, client, ts.URL, token, periodID, "journey-finalize-key")
	if finalStatus != payroll.PeriodStatusFinalized {
		t.Fatalf("expected payroll status finalized, got %s", finalStatus)
	}

	lateInput := postJSONStatus(t, client, ts.URL+"/api/v1/payroll/periods/"+periodID+"/inputs", token, map[string]any{
		"employeeId": employeeID,
		"bonuses":    1000,
	}, http.StatusBadRequest)
	if code := envelopeErrorCode(lateInput); code != "invalid_state" {
		t.Fatalf("expected invalid_state for input after finalize, got %+v", lateInput.Error)
	}

	payslips := listPayslips(t, client, ts.URL, token, employeeID)
	if len(payslips) == 0 {
		t.Fatal("expected payslips to be generated")
	}
	payslipID, _ := payslips[0]["id"].(string)
	if payslipID == "" {
		t.Fatal("expected payslip id")
	}
	downloadPayslip(t, client, ts.URL, token, payslipID)
}

func TestPayrollReopenClearsResults(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	employeeEmail := fmt.Sprintf("reopen-%d@example.com", time.Now().UnixNano())
	_ = createEmployee(t, client, ts.URL, token, employeeEmail)

	periodID := createPayrollPeriod(t, client, ts.URL, token, 2026, 10)
	if runPayroll(t, client, ts.URL, token, periodID) != payroll.PeriodStatusProcessed {
		t.Fatal("expected processed payroll period before finalize")
	}

	earlyReopen := postJSONStatus(t, client, ts.URL+"/api/v1/payroll/periods/"+periodID+"/reopen", token, map[string]any{
		"reason": "too early",
	}, http.StatusBadRequest)
	if code := envelopeErrorCode(earlyReopen); code != "invalid_state" {
		t.Fatalf("expected invalid_state for reopen before finalize, got %+v", earlyReopen.Error)
	}

	if finalizePayroll(t, client, ts.URL, token, periodID, "reopen-test-key") != payroll.PeriodStatusFinalized {
		t.Fatal("expected finalized payroll period")
	}

	missingReason := postJSONStatus(t, client, ts.URL+"/api/v1/payroll/periods/"+periodID+"/reopen", token, map[string]any{}, http.StatusBadRequest)
	if code := envelopeErrorCode(missingReason); code != "invalid_payload" {
		t.Fatalf("expected invalid_payload for reopen without reason, got %+v", missingReason.Error)
	}

	reopenResp := postJSON(t, client, ts.URL+"/api/v1/payroll/periods/"+periodID+"/reopen", token, map[string]any{
		"reason": "correcting employee inputs",
	})
	var reopenPayload map[string]any
	if err := json.Unmarshal(reopenResp.Data, &reopenPayload); err != nil {
		t.Fatalf("failed to decode reopen response: %v", err)
	}
	if status, _ := reopenPayload["status"].(string); status != payroll.PeriodStatusDraft {
		t.Fatalf("expected draft status after reopen, got %v", reopenPayload["status"])
	}

	var resultCount int
	if err := app.DB.QueryRow(context.Background(), "SELECT COUNT(1) FROM payroll_results WHERE period_id = $1", periodID).Scan(&resultCount); err != nil {
		t.Fatalf("failed to count results after reopen: %v", err)
	}
	if resultCount != 0 {
		t.Fatalf("expected reopen to clear results, found %d", resultCount)
	}

	var payslipCount int
	if err := app.DB.QueryRow(context.Background(), "SELECT COUNT(1) FROM payslips WHERE period_id = $1", periodID).Scan(&payslipCount); err != nil {
		t.Fatalf("failed to count payslips after reopen: %v", err)
	}
	if payslipCount != 0 {
		t.Fatalf("expected reopen to clear payslips, found %d", payslipCount)
	}

	if runPayroll(t, client, ts.URL, token, periodID) != payroll.PeriodStatusProcessed {
		t.Fatal("expected reopened period to process again")
	}
}

func TestEmployeeRoleSeesOnlyOwnPayroll(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ctx := context.Background()
	var employeeRoleID string
	if err := app.DB.QueryRow(ctx, "SELECT id FROM roles WHERE name = $1", auth.RoleEmployee).Scan(&employeeRoleID); err != nil {
		t.Fatalf("failed to load employee role: %v", err)
	}

	staffEmail := fmt.Sprintf("staff-%d@example.com", time.Now().UnixNano())
	staffPassword := "Staff123!"
	hash, err := auth.HashPassword(staffPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	var staffUserID string
	if err := app.DB.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, role_id)
    VALUES ($1,$2,$3)
    RETURNING id
  `, staffEmail, hash, employeeRoleID).Scan(&staffUserID); err != nil {
		t.Fatalf("failed to create staff user: %v", err)
	}

	var staffEmployeeID string
	if err := app.DB.QueryRow(ctx, `
    INSERT INTO employees (user_id, first_name, last_name, email, basic_salary, status)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, staffUserID, "Staff", "Member", staffEmail, 45000, "active").Scan(&staffEmployeeID); err != nil {
		t.Fatalf("failed to create staff employee: %v", err)
	}

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	adminToken := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	otherEmail := fmt.Sprintf("other-%d@example.com", time.Now().UnixNano())
	otherEmployeeID := createEmployee(t, client, ts.URL, adminToken, otherEmail)

	periodID := createPayrollPeriod(t, client, ts.URL, adminToken, 2026, 9)
	if runPayroll(t, client, ts.URL, adminToken, periodID) != payroll.PeriodStatusProcessed {
		t.Fatal("expected processed payroll period")
	}

	staffToken := login(t, client, ts.URL, staffEmail, staffPassword)

	results := getJSON(t, client, ts.URL+"/api/v1/payroll/periods/"+periodID+"/results", staffToken)
	var resultRows []map[string]any
	if err := json.Unmarshal(results.Data, &resultRows); err != nil {
		t.Fatalf("failed to decode results response: %v", err)
	}
	if len(resultRows) != 1 {
		t.Fatalf("expected exactly own result, got %d rows", len(resultRows))
	}
	if id, _ := resultRows[0]["employeeId"].(string); id != staffEmployeeID {
		t.Fatalf("expected own employee id %s, got %s", staffEmployeeID, id)
	}

	getJSONStatus(t, client, ts.URL+"/api/v1/payroll/periods/"+periodID+"/inputs", staffToken, http.StatusForbidden)
	getJSONStatus(t, client, ts.URL+"/api/v1/payroll/periods/"+periodID+"/summary", staffToken, http.StatusForbidden)
	getJSONStatus(t, client, ts.URL+"/api/v1/reports/periods/"+periodID+"/register", staffToken, http.StatusForbidden)
	postJSONStatus(t, client, ts.URL+"/api/v1/payroll/periods", staffToken, map[string]any{
		"year": 2030, "month": 1,
	}, http.StatusForbidden)

	// The employeeId filter is HR-only; everyone else gets their own slips.
	slips := getJSON(t, client, ts.URL+"/api/v1/payroll/payslips?employeeId="+otherEmployeeID, staffToken)
	var slipRows []map[string]any
	if err := json.Unmarshal(slips.Data, &slipRows); err != nil {
		t.Fatalf("failed to decode payslips response: %v", err)
	}
	for _, slip := range slipRows {
		if id, _ := slip["employeeId"].(string); id != staffEmployeeID {
			t.Fatalf("expected only own payslips, saw employee %v", slip["employeeId"])
		}
	}
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatal("expected token")
	}
	return token
}

func createEmployee(t *testing.T, client *http.Client, baseURL, token, email string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/employees", token, map[string]any{
		"firstName":            "Journey",
		"lastName":             "Tester",
		"email":                email,
		"employeeNumber":       fmt.Sprintf("EMP-%d", time.Now().UnixNano()),
		"status":               "active",
		"basicSalary":          60000,
		"allowances":           15000,
		"contractType":         "permanent",
		"kraPin":               "A012345678Z",
		"nssfNumber":           "NSSF-100",
		"shifNumber":           "SHIF-100",
		"bankName":             "Equity Bank",
		"bankAccount":          "0123456789",
		"lifeInsurancePremium": 2000,
		"mortgageInterest":     10000,
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode employee response: %v", err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatal("expected employee id")
	}
	return id
}

func createPayrollPeriod(t *testing.T, client *http.Client, baseURL, token string, year, month int) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/payroll/periods", token, map[string]any{
		"year":  year,
		"month": month,
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode payroll period response: %v", err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatal("expected payroll period id")
	}
	return id
}

func submitOvertimeInput(t *testing.T, client *http.Client, baseURL, token, periodID, employeeID string) {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/payroll/periods/"+periodID+"/inputs", token, map[string]any{
		"employeeId":    employeeID,
		"overtimeHours": 10,
		"overtimeType":  "weekday",
		"unpaidDays":    2,
		"bonuses":       5000,
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode input response: %v", err)
	}
	if status, _ := payload["status"].(string); status != "recorded" {
		t.Fatalf("expected recorded input, got %v", payload["status"])
	}
}

func runPayroll(t *testing.T, client *http.Client, baseURL, token, periodID string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/payroll/periods/"+periodID+"/run", token, map[string]any{})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode payroll run response: %v", err)
	}
	status, _ := payload["status"].(string)
	return status
}

func finalizePayroll(t *testing.T, client *http.Client, baseURL, token, periodID, idempotencyKey string) string {
	t.Helper()
	status, env := postJSONAnyStatusWithHeaders(t, client, baseURL+"/api/v1/payroll/periods/"+periodID+"/finalize", token, map[string]any{}, map[string]string{
		"Idempotency-Key": idempotencyKey,
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200 for finalize, got %d: %+v", status, env.Error)
	}
	return envelopeDataStatus(t, env)
}

func findResult(t *testing.T, client *http.Client, baseURL, token, periodID, employeeID string) map[string]any {
	t.Helper()
	resp := getJSON(t, client, baseURL+"/api/v1/payroll/periods/"+periodID+"/results", token)
	var rows []map[string]any
	if err := json.Unmarshal(resp.Data, &rows); err != nil {
		t.Fatalf("failed to decode results response: %v", err)
	}
	for _, row := range rows {
		if id, _ := row["employeeId"].(string); id == employeeID {
			return row
		}
	}
	t.Fatalf("expected result for employee %s in period %s", employeeID, periodID)
	return nil
}

func listPayslips(t *testing.T, client *http.Client, baseURL, token, employeeID string) []map[string]any {
	t.Helper()
	resp := getJSON(t, client, baseURL+"/api/v1/payroll/payslips?employeeId="+employeeID, token)
	var payload []map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode payslips response: %v", err)
	}
	return payload
}

func downloadPayslip(t *testing.T, client *http.Client, baseURL, token, payslipID string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/v1/payroll/payslips/"+payslipID+"/download", nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read payslip body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for payslip download, got %d: %s", resp.StatusCode, string(raw))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", ct)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatal("expected PDF payload")
	}
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(http.MethodPost, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.StatusCode >= 400 {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	return env
}

func getJSON(t *testing.T, client *http.Client, url, token string) envelope {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.StatusCode >= 400 {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	return env
}

func getJSONStatus(t *testing.T, client *http.Client, url, token string, want int) envelope {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, string(raw))
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}
