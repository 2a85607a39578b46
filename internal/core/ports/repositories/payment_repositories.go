package repositories

import (
	"context"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// ListPaymentsByDemand retrieves the payments against a demand in receipt order.
	ListPaymentsByDemand(ctx context.Context, demandID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// ApplyPayment credits the demand with a server-side conditional update, assigns the
	// receipt number and inserts the payment, all in one transaction. It fails with
	// ErrOverpayment when the balance at write time is smaller than the amount.
	ApplyPayment(ctx context.Context, payment domain.Payment) (*domain.Payment, *domain.Demand, error)
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
