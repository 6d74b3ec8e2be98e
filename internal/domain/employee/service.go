package employee

import (
	"context"

	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/statutory"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) GetEmployee(ctx context.Context, employeeID string) (*Employee, error) {
	return s.store.GetEmployee(ctx, employeeID)
}

func (s *Service) GetEmployeeByUserID(ctx context.Context, userID string) (*Employee, error) {
	return s.store.GetEmployeeByUserID(ctx, userID)
}

func (s *Service) EmployeeIDByNumber(ctx context.Context, employeeNumber string) (string, error) {
	return s.store.EmployeeIDByNumber(ctx, employeeNumber)
}

func (s *Service) ListEmployees(ctx context.Context, status string) ([]Employee, error) {
	return s.store.ListEmployees(ctx, status)
}

func (s *Service) ListActiveEmployees(ctx context.Context) ([]Employee, error) {
	return s.store.ListEmployees(ctx, StatusActive)
}

func (s *Service) CreateEmployee(ctx context.Context, emp Employee) (string, error) {
	return s.store.CreateEmployee(ctx, emp)
}

func (s *Service) UpdateEmployee(ctx context.Context, employeeID string, emp Employee) error {
	return s.store.UpdateEmployee(ctx, employeeID, emp)
}

func (s *Service) SetStatus(ctx context.Context, employeeID, status string, endDate any) error {
	return s.store.SetStatus(ctx, employeeID, status, endDate)
}

// CompensationProfile resolves an employee's stored compensation fields
// into a validated profile under the given rates.
func (s *Service) CompensationProfile(ctx context.Context, employeeID string, rates statutory.StatutoryRates) (statutory.CompensationProfile, error) {
	emp, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return statutory.CompensationProfile{}, err
	}
	return statutory.NewCompensationProfile(CompensationParams(*emp), rates)
}
