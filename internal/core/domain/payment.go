package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PaymentMode is the instrument a payment was made with.
type PaymentMode string

const (
	PaymentCash   PaymentMode = "cash"
	PaymentCheque PaymentMode = "cheque"
	PaymentDD     PaymentMode = "dd"
	PaymentCard   PaymentMode = "card"
	PaymentOnline PaymentMode = "online"
)

// Payment is an append-only receipt applied against a demand's balance.
type Payment struct {
	PaymentID     string          `json:"paymentID"`
	ReceiptNumber string          `json:"receiptNumber"`
	DemandID      string          `json:"demandID"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMode   PaymentMode     `json:"paymentMode"`
	PaymentDate   time.Time       `json:"paymentDate"`
	ChequeNumber  *string         `json:"chequeNumber,omitempty"`
	ChequeDate    *time.Time      `json:"chequeDate,omitempty"`
	BankName      *string         `json:"bankName,omitempty"`
	TransactionID *string         `json:"transactionID,omitempty"`
	CashierID     string          `json:"cashierID"`
	Remarks       string          `json:"remarks"`
	AuditFields
}

// Validate checks the amount and the instrument fields required by the payment mode.
func (p *Payment) Validate() error {
	if !p.Amount.IsPositive() {
		return apperrors.NewValidationError("payment amount must be greater than zero")
	}
	if !p.Amount.Round(2).Equal(p.Amount) {
		return apperrors.NewValidationError("payment amount must have at most two decimal places")
	}
	switch p.PaymentMode {
	case PaymentCash:
	case PaymentCheque, PaymentDD:
		if isBlank(p.ChequeNumber) || isBlank(p.BankName) {
			return apperrors.NewValidationError(fmt.Sprintf("%s payments require chequeNumber and bankName", p.PaymentMode))
		}
	case PaymentCard, PaymentOnline:
		if isBlank(p.TransactionID) {
			return apperrors.NewValidationError(fmt.Sprintf("%s payments require transactionId", p.PaymentMode))
		}
	default:
		return apperrors.NewValidationError(fmt.Sprintf("unknown payment mode %q", p.PaymentMode))
	}
	return nil
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}
