package reports

import "github.com/shopspring/decimal"

// CSV builders return complete record sets (header, employee rows, totals
// row). Totals are accumulated with decimal arithmetic so the footer always
// equals the sum of the printed cells.

func RegisterCSV(rows []RegisterRow) [][]string {
	records := [][]string{{
		"employee_id", "employee_number", "first_name", "last_name",
		"gross_pay", "paye", "nssf", "shif", "housing_levy",
		"total_deductions", "net_pay",
	}}
	totals := make([]decimal.Decimal, 7)
	for _, row := range rows {
		values := []float64{row.GrossPay, row.PAYE, row.NSSF, row.SHIF, row.HousingLevy, row.TotalDeductions, row.NetPay}
		record := []string{row.EmployeeID, row.EmployeeNumber, row.FirstName, row.LastName}
		for i, value := range values {
			record = append(record, money(value))
			totals[i] = totals[i].Add(decimal.NewFromFloat(value))
		}
		records = append(records, record)
	}
	return append(records, totalsRecord([]string{"", "", "", "TOTALS"}, totals))
}

func P10CSV(rows []P10Row) [][]string {
	records := [][]string{{
		"employee_number", "first_name", "last_name", "kra_pin",
		"gross_pay", "taxable_income", "gross_tax",
		"personal_relief", "insurance_relief", "paye",
	}}
	totals := make([]decimal.Decimal, 6)
	for _, row := range rows {
		values := []float64{row.GrossPay, row.TaxableIncome, row.GrossTax, row.PersonalRelief, row.InsuranceRelief, row.PAYE}
		record := []string{row.EmployeeNumber, row.FirstName, row.LastName, row.KRAPin}
		for i, value := range values {
			record = append(record, money(value))
			totals[i] = totals[i].Add(decimal.NewFromFloat(value))
		}
		records = append(records, record)
	}
	return append(records, totalsRecord([]string{"", "", "", "TOTALS"}, totals))
}

func BankFileCSV(rows []BankRow) [][]string {
	records := [][]string{{
		"employee_number", "first_name", "last_name",
		"bank_name", "bank_account", "net_pay",
	}}
	total := decimal.Zero
	for _, row := range rows {
		records = append(records, []string{
			row.EmployeeNumber, row.FirstName, row.LastName,
			row.BankName, row.BankAccount, money(row.NetPay),
		})
		total = total.Add(decimal.NewFromFloat(row.NetPay))
	}
	return append(records, []string{"", "", "", "", "TOTALS", total.StringFixed(2)})
}

func StatutoryCSV(rows []StatutoryRow) [][]string {
	records := [][]string{{
		"employee_number", "first_name", "last_name",
		"nssf_number", "shif_number",
		"nssf_employee", "nssf_employer",
		"shif_employee", "shif_employer",
		"housing_employee", "housing_employer",
	}}
	totals := make([]decimal.Decimal, 6)
	for _, row := range rows {
		values := []float64{row.NSSFEmployee, row.NSSFEmployer, row.SHIFEmployee, row.SHIFEmployer, row.HousingEmployee, row.HousingEmployer}
		record := []string{row.EmployeeNumber, row.FirstName, row.LastName, row.NSSFNumber, row.SHIFNumber}
		for i, value := range values {
			record = append(record, money(value))
			totals[i] = totals[i].Add(decimal.NewFromFloat(value))
		}
		records = append(records, record)
	}
	return append(records, totalsRecord([]string{"", "", "", "", "TOTALS"}, totals))
}

func totalsRecord(prefix []string, totals []decimal.Decimal) []string {
	record := prefix
	for _, total := range totals {
		record = append(record, total.StringFixed(2))
	}
	return record
}

func money(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2)
}
