package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DemandServiceType identifies the revenue stream a demand bills.
type DemandServiceType string

const (
	HouseTax DemandServiceType = "HOUSE_TAX"
	WaterTax DemandServiceType = "WATER_TAX"
	ShopTax  DemandServiceType = "SHOP_TAX"
	D2DC     DemandServiceType = "D2DC"
)

// DemandStatus is derived from the demand's amounts and due date.
type DemandStatus string

const (
	DemandPending       DemandStatus = "pending"
	DemandPartiallyPaid DemandStatus = "partially_paid"
	DemandPaid          DemandStatus = "paid"
	DemandOverdue       DemandStatus = "overdue"
)

// DemandItem is one billed line on a demand.
type DemandItem struct {
	TaxType      DemandServiceType `json:"taxType"`
	Description  string            `json:"description"`
	Amount       decimal.Decimal   `json:"amount"`
	SubjectID    string            `json:"subjectID"` // property, connection, shop or D2DC month
	AssessmentID *string           `json:"assessmentID,omitempty"`
}

// Demand is a billable claim against a property for a service and financial year.
type Demand struct {
	DemandID       string            `json:"demandID"`
	DemandNumber   string            `json:"demandNumber"`
	ServiceType    DemandServiceType `json:"serviceType"`
	PropertyID     string            `json:"propertyID"`
	FinancialYear  string            `json:"financialYear"`
	DueDate        time.Time         `json:"dueDate"`
	Items          []DemandItem      `json:"items"`
	BaseAmount     decimal.Decimal   `json:"baseAmount"`
	PenaltyAmount  decimal.Decimal   `json:"penaltyAmount"`
	InterestAmount decimal.Decimal   `json:"interestAmount"`
	TotalAmount    decimal.Decimal   `json:"totalAmount"`
	PaidAmount     decimal.Decimal   `json:"paidAmount"`
	BalanceAmount  decimal.Decimal   `json:"balanceAmount"`
	Status         DemandStatus      `json:"status"`
	AssessmentIDs  []string          `json:"assessmentIDs"`
	UnifiedGroupID *string           `json:"unifiedGroupID,omitempty"`
	VoidedAt       *time.Time        `json:"voidedAt,omitempty"`
	VoidReason     *string           `json:"voidReason,omitempty"`
	AuditFields
}

// DeriveDemandStatus applies the status rule: paid at zero balance, overdue past due with balance,
// partially paid while some but not all is paid, otherwise pending.
func DeriveDemandStatus(total, paid, balance decimal.Decimal, dueDate, now time.Time) DemandStatus {
	switch {
	case balance.IsZero():
		return DemandPaid
	case now.After(dueDate):
		return DemandOverdue
	case paid.IsPositive() && paid.LessThan(total):
		return DemandPartiallyPaid
	default:
		return DemandPending
	}
}

// RefreshStatus recomputes Status as of now.
func (d *Demand) RefreshStatus(now time.Time) {
	d.Status = DeriveDemandStatus(d.TotalAmount, d.PaidAmount, d.BalanceAmount, d.DueDate, now)
}

// IsOverdue reports whether the demand carries a balance past its due date.
func (d *Demand) IsOverdue(now time.Time) bool {
	return d.BalanceAmount.IsPositive() && now.After(d.DueDate)
}

// IsVoided reports whether the demand has been voided.
func (d *Demand) IsVoided() bool {
	return d.VoidedAt != nil
}

// Price fills the monetary fields of a freshly built demand from its items and the tariff.
func (d *Demand) Price(t Tariff, now time.Time) {
	base := decimal.Zero
	for _, it := range d.Items {
		base = base.Add(it.Amount)
	}
	d.BaseAmount = base
	d.PenaltyAmount, d.InterestAmount = t.Charges(base, d.DueDate, now)
	d.TotalAmount = base.Add(d.PenaltyAmount).Add(d.InterestAmount)
	d.PaidAmount = decimal.Zero
	d.BalanceAmount = d.TotalAmount
	d.RefreshStatus(now)
}

// ValidateAmount rejects non-positive payments and payments larger than the balance.
func (d *Demand) ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.NewValidationError("payment amount must be greater than zero")
	}
	if amount.GreaterThan(d.BalanceAmount) {
		return apperrors.NewAppError(422, fmt.Sprintf("payment of %s exceeds outstanding balance %s on demand %s", amount.StringFixed(2), d.BalanceAmount.StringFixed(2), d.DemandNumber), apperrors.ErrOverpayment)
	}
	return nil
}

// ApplyPayment credits amount against the balance and recomputes status.
func (d *Demand) ApplyPayment(amount decimal.Decimal, by string, now time.Time) error {
	if d.IsVoided() {
		return apperrors.NewInvalidStateError(fmt.Sprintf("demand %s has been voided", d.DemandNumber))
	}
	if err := d.ValidateAmount(amount); err != nil {
		return err
	}
	d.PaidAmount = d.PaidAmount.Add(amount)
	d.BalanceAmount = d.TotalAmount.Sub(d.PaidAmount)
	d.RefreshStatus(now)
	d.LastUpdatedAt = now
	d.LastUpdatedBy = by
	return nil
}

// CheckBalance verifies paid + balance == total with neither side negative.
func (d *Demand) CheckBalance() error {
	if d.BalanceAmount.IsNegative() || d.PaidAmount.IsNegative() {
		return fmt.Errorf("demand %s has a negative amount", d.DemandID)
	}
	if !d.PaidAmount.Add(d.BalanceAmount).Equal(d.TotalAmount) {
		return fmt.Errorf("demand %s: paid %s + balance %s != total %s", d.DemandID, d.PaidAmount, d.BalanceAmount, d.TotalAmount)
	}
	return nil
}

// BillingKey is the idempotency slot a billed stream claims for one financial year.
type BillingKey struct {
	PropertyID    string            `json:"propertyID"`
	FinancialYear string            `json:"financialYear"`
	ServiceType   DemandServiceType `json:"serviceType"`
	SubjectID     string            `json:"subjectID"`
}

func (k BillingKey) String() string {
	return fmt.Sprintf("%s|%s|%s|%s", k.PropertyID, k.FinancialYear, k.ServiceType, k.SubjectID)
}

// BillingKeys returns one key per item; a demand holds all of its keys or none.
func (d *Demand) BillingKeys() []BillingKey {
	keys := make([]BillingKey, 0, len(d.Items))
	for _, it := range d.Items {
		keys = append(keys, BillingKey{
			PropertyID:    d.PropertyID,
			FinancialYear: d.FinancialYear,
			ServiceType:   it.TaxType,
			SubjectID:     it.SubjectID,
		})
	}
	return keys
}

// GenerationMode selects between billing one assessment and bundling a property's streams.
type GenerationMode string

const (
	GenerateSingle  GenerationMode = "single"
	GenerateUnified GenerationMode = "unified"
)

// SiblingResult reports the outcome of one independently generated sibling demand.
type SiblingResult struct {
	ServiceType    DemandServiceType `json:"serviceType"`
	SubjectID      string            `json:"subjectID"`
	Demand         *Demand           `json:"demand,omitempty"`
	AlreadyExisted bool              `json:"alreadyExisted"`
	Error          error             `json:"-"`
}

// GenerationResult is what the demand generator returns for one call.
type GenerationResult struct {
	Demand         *Demand         `json:"demand,omitempty"`
	AlreadyExisted bool            `json:"alreadyExisted"`
	Siblings       []SiblingResult `json:"siblings,omitempty"`
}
