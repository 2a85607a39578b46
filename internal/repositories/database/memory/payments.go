package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
)

func (s *Store) ListPaymentsByDemand(_ context.Context, demandID string) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Payment{}, s.payments[demandID]...), nil
}

func (s *Store) ApplyPayment(_ context.Context, p domain.Payment) (*domain.Payment, *domain.Demand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.demands[p.DemandID]
	if !ok {
		return nil, nil, apperrors.NewNotFoundError(fmt.Sprintf("demand %s not found", p.DemandID))
	}
	if err := d.ApplyPayment(p.Amount, p.CashierID, p.CreatedAt); err != nil {
		return nil, nil, err
	}
	if err := d.CheckBalance(); err != nil {
		return nil, nil, err
	}
	p.ReceiptNumber = s.nextNumber(domain.ReceiptNumberPrefix, domain.FinancialYearOf(p.PaymentDate))
	s.demands[d.DemandID] = d
	s.payments[d.DemandID] = append(s.payments[d.DemandID], p)
	return &p, cloneDemand(d), nil
}
