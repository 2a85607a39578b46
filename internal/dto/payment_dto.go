package dto

import (
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApplyPaymentRequest defines the data needed to apply a payment to a demand.
type ApplyPaymentRequest struct {
	Amount        decimal.Decimal    `json:"amount"`
	PaymentMode   domain.PaymentMode `json:"paymentMode" binding:"required,oneof=cash cheque dd card online"`
	PaymentDate   *time.Time         `json:"paymentDate"` // defaults to now
	ChequeNumber  *string            `json:"chequeNumber"`
	ChequeDate    *time.Time         `json:"chequeDate"`
	BankName      *string            `json:"bankName"`
	TransactionID *string            `json:"transactionId"`
	Remarks       string             `json:"remarks" binding:"max=500"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID     string             `json:"paymentID"`
	ReceiptNumber string             `json:"receiptNumber"`
	DemandID      string             `json:"demandID"`
	Amount        decimal.Decimal    `json:"amount"`
	PaymentMode   domain.PaymentMode `json:"paymentMode"`
	PaymentDate   time.Time          `json:"paymentDate"`
	ChequeNumber  *string            `json:"chequeNumber,omitempty"`
	ChequeDate    *time.Time         `json:"chequeDate,omitempty"`
	BankName      *string            `json:"bankName,omitempty"`
	TransactionID *string            `json:"transactionID,omitempty"`
	CashierID     string             `json:"cashierID"`
	Remarks       string             `json:"remarks"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		ReceiptNumber: p.ReceiptNumber,
		DemandID:      p.DemandID,
		Amount:        p.Amount,
		PaymentMode:   p.PaymentMode,
		PaymentDate:   p.PaymentDate,
		ChequeNumber:  p.ChequeNumber,
		ChequeDate:    p.ChequeDate,
		BankName:      p.BankName,
		TransactionID: p.TransactionID,
		CashierID:     p.CashierID,
		Remarks:       p.Remarks,
		CreatedAt:     p.CreatedAt,
	}
}

// ToListPaymentResponse converts a slice of domain.Payment to response DTOs
func ToListPaymentResponse(items []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(items))
	for i := range items {
		res[i] = ToPaymentResponse(&items[i])
	}
	return res
}

// ApplyPaymentResponse returns the receipt together with the updated demand.
type ApplyPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Demand  DemandResponse  `json:"demand"`
}
