package employee

import "time"

type Employee struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	EmployeeNumber   string     `json:"employeeNumber"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	KRAPin           string     `json:"kraPin,omitempty"`
	NSSFNumber       string     `json:"nssfNumber,omitempty"`
	SHIFNumber       string     `json:"shifNumber,omitempty"`
	BankName         string     `json:"bankName,omitempty"`
	BankAccount      string     `json:"bankAccount,omitempty"`
	BasicSalary      *float64   `json:"basicSalary,omitempty"`
	Allowances       *float64   `json:"allowances,omitempty"`
	ContractType     string     `json:"contractType"`
	LifePremium      *float64   `json:"lifeInsurancePremium,omitempty"`
	EducationPremium *float64   `json:"educationInsurancePremium,omitempty"`
	HealthPremium    *float64   `json:"healthInsurancePremium,omitempty"`
	MortgageInterest *float64   `json:"mortgageInterest,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
