package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/municipal_tax_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
	"github.com/SscSPs/municipal_tax_app/internal/dto"
	"github.com/google/uuid"
)

type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
	demandRepo  portsrepo.DemandReader
	escalation  portssvc.EscalationSvc
}

// NewPaymentService creates the payment ledger service.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, demandRepo portsrepo.DemandReader, escalation portssvc.EscalationSvc, opts ...ServiceOption) portssvc.PaymentSvcFacade {
	return &paymentService{
		BaseService: newBaseService(opts),
		paymentRepo: paymentRepo,
		demandRepo:  demandRepo,
		escalation:  escalation,
	}
}

// Ensure paymentService implements the portssvc.PaymentSvcFacade interface
var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) ApplyPayment(ctx context.Context, caller domain.Caller, demandID string, req dto.ApplyPaymentRequest) (*domain.Payment, *domain.Demand, error) {
	if err := s.Authorize(ctx, caller, domain.ActionApplyPayment); err != nil {
		return nil, nil, err
	}
	logger := s.GetLogger(ctx).With(slog.String("demand_id", demandID))

	now := s.Now()
	p := domain.Payment{
		PaymentID:     uuid.NewString(),
		DemandID:      demandID,
		Amount:        req.Amount,
		PaymentMode:   req.PaymentMode,
		PaymentDate:   now,
		ChequeNumber:  req.ChequeNumber,
		ChequeDate:    req.ChequeDate,
		BankName:      req.BankName,
		TransactionID: req.TransactionID,
		CashierID:     caller.UserID,
		Remarks:       req.Remarks,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.UserID,
		},
	}
	if req.PaymentDate != nil {
		p.PaymentDate = req.PaymentDate.UTC()
	}
	if err := p.Validate(); err != nil {
		s.Metrics.IncrementPaymentRejection(apperrors.KindOf(err))
		return nil, nil, err
	}

	d, err := s.demandRepo.FindDemandByID(ctx, demandID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to load demand for payment", slog.String("demand_id", demandID))
		return nil, nil, err
	}
	if d.IsVoided() {
		s.Metrics.IncrementPaymentRejection("invalid_state")
		return nil, nil, apperrors.NewInvalidStateError(fmt.Sprintf("demand %s has been voided", d.DemandNumber))
	}
	if err := d.ValidateAmount(p.Amount); err != nil {
		s.Metrics.IncrementPaymentRejection(apperrors.KindOf(err))
		logger.Warn("Payment rejected", slog.String("amount", p.Amount.StringFixed(2)), slog.String("balance", d.BalanceAmount.StringFixed(2)))
		return nil, nil, err
	}

	// The repository re-checks the balance at write time; a concurrent payment can still lose here.
	saved, updated, err := s.paymentRepo.ApplyPayment(ctx, p)
	if err != nil {
		if errors.Is(err, apperrors.ErrOverpayment) {
			s.Metrics.IncrementPaymentRejection(apperrors.KindOf(err))
			logger.Warn("Payment lost a concurrent balance race", slog.String("amount", p.Amount.StringFixed(2)))
			return nil, nil, err
		}
		s.LogFailure(ctx, err, "Failed to apply payment", slog.String("demand_id", demandID))
		return nil, nil, err
	}
	updated.RefreshStatus(now)

	s.Metrics.ObservePayment(string(saved.PaymentMode), saved.Amount)
	logger.Info("Payment applied",
		slog.String("receipt_number", saved.ReceiptNumber),
		slog.String("amount", saved.Amount.StringFixed(2)),
		slog.String("balance", updated.BalanceAmount.StringFixed(2)),
		slog.String("status", string(updated.Status)))

	if !updated.BalanceAmount.IsPositive() && s.escalation != nil {
		// The payment is committed; a failure here leaves notices open for a later retry.
		if _, err := s.escalation.ResolveDemandNotices(ctx, updated, caller.UserID); err != nil {
			logger.Error("Failed to resolve notices after full payment", slog.String("error", err.Error()))
		}
	}
	return saved, updated, nil
}

func (s *paymentService) ListPaymentsByDemand(ctx context.Context, caller domain.Caller, demandID string) ([]domain.Payment, error) {
	if err := s.RequireCaller(caller); err != nil {
		return nil, err
	}
	if _, err := s.demandRepo.FindDemandByID(ctx, demandID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListPaymentsByDemand(ctx, demandID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("demand_id", demandID))
		return nil, err
	}
	return payments, nil
}
