package handlers_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mwendaalphonce/pactiPay-sub001/internal/app/server"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/payroll"
)

func TestPayrollReportsExportCSV(t *testing.T) {
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

	adminToken := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	employeeEmail := fmt.Sprintf("reports-%d@example.com", time.Now().UnixNano())
	_ = createEmployee(t, client, ts.URL, adminToken, employeeEmail)

	periodID := createPayrollPeriod(t, client, ts.URL, adminToken, 2026, 7)
	if runPayroll(t, client, ts.URL, adminToken, periodID) != payroll.PeriodStatusProcessed {
		t.Fatal("expected processed payroll period before exporting reports")
	}

	register := fetchCSVReport(t, client, ts.URL+"/api/v1/reports/periods/"+periodID+"/register", adminToken)
	if len(register) < 3 {
		t.Fatalf("expected register with header, data and totals rows, got %d rows", len(register))
	}
	if register[0][0] != "employee_id" {
		t.Fatalf("expected register header to start with employee_id, got %q", register[0][0])
	}
	assertTotalsRow(t, "register", register)

	p10 := fetchCSVReport(t, client, ts.URL+"/api/v1/reports/periods/"+periodID+"/p10", adminToken)
	if p10[0][0] != "employee_number" {
		t.Fatalf("expected p10 header to start with employee_number, got %q", p10[0][0])
	}
	assertTotalsRow(t, "p10", p10)

	bankFile := fetchCSVReport(t, client, ts.URL+"/api/v1/reports/periods/"+periodID+"/bank-file", adminToken)
	if bankFile[0][0] != "employee_number" {
		t.Fatalf("expected bank file header to start with employee_number, got %q", bankFile[0][0])
	}
	foundAccount := false
	for _, row := range bankFile[1 : len(bankFile)-1] {
		if len(row) > 4 && row[4] == "0123456789" {
			foundAccount = true
			break
		}
	}
	if !foundAccount {
		t.Fatal("expected bank file to carry the plaintext account number for payment processing")
	}
	assertTotalsRow(t, "bank file", bankFile)

	statutoryReturn := fetchCSVReport(t, client, ts.URL+"/api/v1/reports/periods/"+periodID+"/statutory", adminToken)
	if statutoryReturn[0][0] != "employee_number" {
		t.Fatalf("expected statutory return header to start with employee_number, got %q", statutoryReturn[0][0])
	}
	assertTotalsRow(t, "statutory return", statutoryReturn)
}

func TestPayrollPeriodsListSetsTotalCount(t *testing.T) {
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

	adminToken := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	_ = createPayrollPeriod(t, client, ts.URL, adminToken, 2026, 12)

	env, total := getJSONWithMetaStatus(t, client, ts.URL+"/api/v1/payroll/periods?limit=1", adminToken, http.StatusOK)
	var periods []json.RawMessage
	if err := json.Unmarshal(env.Data, &periods); err != nil {
		t.Fatalf("failed to decode period list: %v", err)
	}
	if len(periods) > 1 {
		t.Fatalf("expected limit=1 to cap the page, got %d rows", len(periods))
	}
	if total < 1 {
		t.Fatalf("expected X-Total-Count of at least 1, got %d", total)
	}
	if total > 1 && len(periods) != 1 {
		t.Fatalf("expected a full page when more periods exist, got %d rows for total %d", len(periods), total)
	}
}

func fetchCSVReport(t *testing.T, client *http.Client, url, token string) [][]string {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to build report request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("report request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for %s, got %d", url, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("expected text/csv content type, got %q", ct)
	}

	records, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse csv export: %v", err)
	}
	if len(records) < 2 {
		t.Fatalf("expected csv export with header and totals, got %d rows", len(records))
	}
	return records
}

func assertTotalsRow(t *testing.T, name string, records [][]string) {
	t.Helper()

	last := records[len(records)-1]
	for _, cell := range last {
		if strings.Contains(cell, "TOTALS") {
			return
		}
	}
	t.Fatalf("expected %s export to end with a TOTALS row, got %+v", name, last)
}

func getJSONWithMetaStatus(t *testing.T, client *http.Client, url, token string, want int) (envelope, int) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	if resp.StatusCode != want {
		t.Fatalf("expected status %d for %s, got %d (error=%+v)", want, url, resp.StatusCode, env.Error)
	}

	total := 0
	if raw := resp.Header.Get("X-Total-Count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			t.Fatalf("invalid X-Total-Count header %q: %v", raw, err)
		}
		total = parsed
	}
	return env, total
}
