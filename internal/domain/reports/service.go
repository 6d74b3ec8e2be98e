package reports

import (
	"context"

	cryptoutil "github.com/mwendaalphonce/pactiPay-sub001/internal/platform/crypto"
)

type Service struct {
	Store  *Store
	Crypto *cryptoutil.Service
}

func NewService(store *Store, crypto *cryptoutil.Service) *Service {
	return &Service{Store: store, Crypto: crypto}
}

func (s *Service) Register(ctx context.Context, periodID string) ([][]string, error) {
	rows, err := s.Store.RegisterRows(ctx, periodID)
	if err != nil {
		return nil, err
	}
	return RegisterCSV(rows), nil
}

func (s *Service) P10(ctx context.Context, periodID string) ([][]string, error) {
	rows, err := s.Store.P10Rows(ctx, periodID)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].KRAPin = s.resolve(rows[i].kraPinEnc, rows[i].kraPinPlain)
	}
	return P10CSV(rows), nil
}

func (s *Service) BankFile(ctx context.Context, periodID string) ([][]string, error) {
	rows, err := s.Store.BankRows(ctx, periodID)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].BankAccount = s.resolve(rows[i].bankEnc, rows[i].bankPlain)
	}
	return BankFileCSV(rows), nil
}

func (s *Service) StatutoryReturn(ctx context.Context, periodID string) ([][]string, error) {
	rows, err := s.Store.StatutoryRows(ctx, periodID)
	if err != nil {
		return nil, err
	}
	return StatutoryCSV(rows), nil
}

func (s *Service) resolve(encrypted []byte, plain string) string {
	if s.Crypto != nil && s.Crypto.Configured() && len(encrypted) > 0 {
		if value, err := s.Crypto.DecryptString(encrypted); err == nil {
			return value
		}
	}
	return plain
}
