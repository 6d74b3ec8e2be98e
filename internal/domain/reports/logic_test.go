package reports

import "testing"

func TestRegisterCSVTotals(t *testing.T) {
	rows := []RegisterRow{
		{
			EmployeeID: "emp-001", EmployeeNumber: "E001", FirstName: "Grace", LastName: "Wanjiku",
			GrossPay: 65000, PAYE: 10154.60, NSSF: 3000, SHIF: 1787.50, HousingLevy: 975,
			TotalDeductions: 15917.10, NetPay: 49082.90,
		},
		{
			EmployeeID: "emp-002", EmployeeNumber: "E002", FirstName: "Brian", LastName: "Otieno",
			GrossPay: 40000, PAYE: 3153.35, NSSF: 2400, SHIF: 1100, HousingLevy: 600,
			TotalDeductions: 7253.35, NetPay: 32746.65,
		},
	}
	records := RegisterCSV(rows)
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	header := records[0]
	if header[0] != "employee_id" || header[len(header)-1] != "net_pay" {
		t.Fatalf("unexpected header: %v", header)
	}
	if records[1][4] != "65000.00" {
		t.Fatalf("expected gross cell 65000.00, got %s", records[1][4])
	}
	totals := records[3]
	if totals[3] != "TOTALS" {
		t.Fatalf("expected totals marker, got %v", totals)
	}
	if totals[4] != "105000.00" {
		t.Fatalf("expected gross total 105000.00, got %s", totals[4])
	}
	if totals[5] != "13307.95" {
		t.Fatalf("expected paye total 13307.95, got %s", totals[5])
	}
	if totals[10] != "81829.55" {
		t.Fatalf("expected net total 81829.55, got %s", totals[10])
	}
}

func TestRegisterCSVEmpty(t *testing.T) {
	records := RegisterCSV(nil)
	if len(records) != 2 {
		t.Fatalf("expected header and totals only, got %d records", len(records))
	}
	if records[1][4] != "0.00" {
		t.Fatalf("expected zero total, got %s", records[1][4])
	}
}

func TestP10CSV(t *testing.T) {
	rows := []P10Row{
		{
			EmployeeNumber: "E001", FirstName: "Grace", LastName: "Wanjiku", KRAPin: "A012345678Z",
			GrossPay: 65000, TaxableIncome: 59237.50, GrossTax: 12554.60,
			PersonalRelief: 2400, InsuranceRelief: 0, PAYE: 10154.60,
		},
	}
	records := P10CSV(rows)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[1][3] != "A012345678Z" {
		t.Fatalf("expected kra pin cell, got %s", records[1][3])
	}
	if records[1][5] != "59237.50" {
		t.Fatalf("expected taxable cell 59237.50, got %s", records[1][5])
	}
	totals := records[2]
	if totals[9] != "10154.60" {
		t.Fatalf("expected paye total 10154.60, got %s", totals[9])
	}
}

func TestBankFileCSVSumsExactly(t *testing.T) {
	rows := []BankRow{
		{EmployeeNumber: "E001", FirstName: "Grace", LastName: "Wanjiku", BankName: "Equity", BankAccount: "0100123456", NetPay: 0.10},
		{EmployeeNumber: "E002", FirstName: "Brian", LastName: "Otieno", BankName: "KCB", BankAccount: "1100654321", NetPay: 0.20},
		{EmployeeNumber: "E003", FirstName: "Amina", LastName: "Yusuf", BankName: "Co-op", BankAccount: "0112345678", NetPay: 0.30},
	}
	records := BankFileCSV(rows)
	total := records[len(records)-1]
	if total[5] != "0.60" {
		t.Fatalf("expected exact net total 0.60, got %s", total[5])
	}
	if records[1][4] != "0100123456" {
		t.Fatalf("expected bank account cell, got %s", records[1][4])
	}
}

func TestStatutoryCSVTotals(t *testing.T) {
	rows := []StatutoryRow{
		{
			EmployeeNumber: "E001", FirstName: "Grace", LastName: "Wanjiku",
			NSSFNumber: "NSSF001", SHIFNumber: "SHIF001",
			NSSFEmployee: 3000, NSSFEmployer: 3000,
			SHIFEmployee: 1787.50, SHIFEmployer: 1787.50,
			HousingEmployee: 975, HousingEmployer: 975,
		},
		{
			EmployeeNumber: "E002", FirstName: "Brian", LastName: "Otieno",
			NSSFNumber: "NSSF002", SHIFNumber: "SHIF002",
			NSSFEmployee: 2400, NSSFEmployer: 2400,
			SHIFEmployee: 1100, SHIFEmployer: 1100,
			HousingEmployee: 600, HousingEmployer: 600,
		},
	}
	records := StatutoryCSV(rows)
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	totals := records[3]
	if totals[4] != "TOTALS" {
		t.Fatalf("expected totals marker, got %v", totals)
	}
	if totals[5] != "5400.00" || totals[6] != "5400.00" {
		t.Fatalf("expected nssf totals 5400.00, got %s and %s", totals[5], totals[6])
	}
	if totals[7] != "2887.50" {
		t.Fatalf("expected shif employee total 2887.50, got %s", totals[7])
	}
	if totals[9] != "1575.00" {
		t.Fatalf("expected housing employee total 1575.00, got %s", totals[9])
	}
}
