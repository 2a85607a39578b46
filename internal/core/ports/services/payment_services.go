package services

import (
	"context"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/SscSPs/municipal_tax_app/internal/dto"
)

// PaymentSvcFacade is the payment ledger.
type PaymentSvcFacade interface {
	// ApplyPayment records a payment and credits the demand atomically.
	ApplyPayment(ctx context.Context, caller domain.Caller, demandID string, req dto.ApplyPaymentRequest) (*domain.Payment, *domain.Demand, error)

	// ListPaymentsByDemand retrieves the receipts issued against a demand.
	ListPaymentsByDemand(ctx context.Context, caller domain.Caller, demandID string) ([]domain.Payment, error)
}
