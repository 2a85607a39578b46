package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AssessmentServiceType identifies the revenue stream an assessment values.
type AssessmentServiceType string

const (
	AssessmentProperty AssessmentServiceType = "property"
	AssessmentWater    AssessmentServiceType = "water"
	AssessmentShop     AssessmentServiceType = "shop"
)

// IsValid reports whether t is a known assessment service type.
func (t AssessmentServiceType) IsValid() bool {
	return t == AssessmentProperty || t == AssessmentWater || t == AssessmentShop
}

// DemandServiceType returns the demand stream billed from assessments of this type.
func (t AssessmentServiceType) DemandServiceType() DemandServiceType {
	switch t {
	case AssessmentWater:
		return WaterTax
	case AssessmentShop:
		return ShopTax
	default:
		return HouseTax
	}
}

// AssessmentStatus is the workflow state of an assessment.
type AssessmentStatus string

const (
	AssessmentDraft    AssessmentStatus = "draft"
	AssessmentPending  AssessmentStatus = "pending"
	AssessmentApproved AssessmentStatus = "approved"
	AssessmentRejected AssessmentStatus = "rejected"
)

// Valuation holds the inputs an assessment's tax is computed from.
type Valuation struct {
	AssessedValue   decimal.Decimal `json:"assessedValue"`
	LandValue       decimal.Decimal `json:"landValue"`     // property only
	BuildingValue   decimal.Decimal `json:"buildingValue"` // property only
	Depreciation    decimal.Decimal `json:"depreciation"`
	ExemptionAmount decimal.Decimal `json:"exemptionAmount"`
	TaxRate         decimal.Decimal `json:"taxRate"` // percent
}

// Assessment is the valuation and rate computation a Demand is generated from.
type Assessment struct {
	AssessmentID      string                `json:"assessmentID"`
	AssessmentNumber  string                `json:"assessmentNumber"`
	ServiceType       AssessmentServiceType `json:"serviceType"`
	PropertyID        string                `json:"propertyID"`
	WaterConnectionID *string               `json:"waterConnectionID,omitempty"`
	ShopID            *string               `json:"shopID,omitempty"`
	AssessmentYear    int                   `json:"assessmentYear"`
	FinancialYear     string                `json:"financialYear"`
	Valuation
	NetAssessedValue decimal.Decimal  `json:"netAssessedValue"`
	AnnualTaxAmount  decimal.Decimal  `json:"annualTaxAmount"`
	Status           AssessmentStatus `json:"status"`
	RevisionNumber   int              `json:"revisionNumber"`
	RevisionOf       *string          `json:"revisionOf,omitempty"`
	SupersededAt     *time.Time       `json:"supersededAt,omitempty"`
	AssessorID       string           `json:"assessorID"`
	ApproverID       *string          `json:"approverID,omitempty"`
	ApprovalDate     *time.Time       `json:"approvalDate,omitempty"`
	RejectionRemarks *string          `json:"rejectionRemarks,omitempty"`
	AuditFields
}

// SubjectID is the id of the thing being taxed: the property, connection or shop.
func (a *Assessment) SubjectID() string {
	switch a.ServiceType {
	case AssessmentWater:
		if a.WaterConnectionID != nil {
			return *a.WaterConnectionID
		}
	case AssessmentShop:
		if a.ShopID != nil {
			return *a.ShopID
		}
	}
	return a.PropertyID
}

// IsActive reports whether the assessment counts toward the one-active-per-subject rule.
func (a *Assessment) IsActive() bool {
	switch a.Status {
	case AssessmentPending:
		return true
	case AssessmentApproved:
		return a.SupersededAt == nil
	}
	return false
}

// IsBillable reports whether the demand generator may bill this assessment.
func (a *Assessment) IsBillable() bool {
	return a.Status == AssessmentApproved && a.SupersededAt == nil
}

// ApplyValuation replaces the valuation inputs and recomputes the derived amounts.
func (a *Assessment) ApplyValuation(v Valuation) error {
	if a.ServiceType == AssessmentProperty && v.AssessedValue.IsZero() {
		v.AssessedValue = v.LandValue.Add(v.BuildingValue)
	}
	for _, f := range []struct {
		name string
		amt  decimal.Decimal
	}{
		{"assessedValue", v.AssessedValue},
		{"landValue", v.LandValue},
		{"buildingValue", v.BuildingValue},
		{"depreciation", v.Depreciation},
		{"exemptionAmount", v.ExemptionAmount},
		{"taxRate", v.TaxRate},
	} {
		if f.amt.IsNegative() {
			return apperrors.NewValidationError(fmt.Sprintf("%s must not be negative", f.name))
		}
	}
	net := v.AssessedValue.Sub(v.Depreciation).Sub(v.ExemptionAmount)
	if net.IsNegative() {
		return apperrors.NewValidationError("netAssessedValue must not be negative: depreciation and exemption exceed assessed value")
	}
	a.Valuation = v
	a.NetAssessedValue = net.Round(2)
	a.AnnualTaxAmount = AnnualTax(net, v.TaxRate)
	return nil
}

// AnnualTax computes net × rate / 100 rounded to paise, never negative.
func AnnualTax(net, ratePercent decimal.Decimal) decimal.Decimal {
	tax := net.Mul(ratePercent).Div(decimal.NewFromInt(100)).Round(2)
	if tax.IsNegative() {
		return decimal.Zero
	}
	return tax
}

// ValidateSubject checks that exactly the subject reference matching the service type is set.
func (a *Assessment) ValidateSubject() error {
	if !a.ServiceType.IsValid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown service type %q", a.ServiceType))
	}
	if a.PropertyID == "" {
		return apperrors.NewValidationError("propertyId is required")
	}
	hasConn := a.WaterConnectionID != nil && *a.WaterConnectionID != ""
	hasShop := a.ShopID != nil && *a.ShopID != ""
	switch a.ServiceType {
	case AssessmentProperty:
		if hasConn || hasShop {
			return apperrors.NewValidationError("property assessments must not reference a connection or shop")
		}
	case AssessmentWater:
		if !hasConn || hasShop {
			return apperrors.NewValidationError("water assessments require waterConnectionId and no shopId")
		}
	case AssessmentShop:
		if !hasShop || hasConn {
			return apperrors.NewValidationError("shop assessments require shopId and no waterConnectionId")
		}
	}
	return nil
}

// Submit moves a draft to pending.
func (a *Assessment) Submit(by string, now time.Time) error {
	if a.Status != AssessmentDraft {
		return apperrors.NewInvalidStateError(fmt.Sprintf("assessment %s is %s, only draft can be submitted", a.AssessmentNumber, a.Status))
	}
	a.Status = AssessmentPending
	a.touch(by, now)
	return nil
}

// Approve moves a pending assessment to approved and records the approver.
func (a *Assessment) Approve(by string, now time.Time) error {
	if a.Status != AssessmentPending {
		return apperrors.NewInvalidStateError(fmt.Sprintf("assessment %s is %s, only pending can be approved", a.AssessmentNumber, a.Status))
	}
	a.Status = AssessmentApproved
	a.ApproverID = &by
	a.ApprovalDate = &now
	a.touch(by, now)
	return nil
}

// Reject moves a pending assessment to rejected with the reviewer's remarks.
func (a *Assessment) Reject(by, remarks string, now time.Time) error {
	if a.Status != AssessmentPending {
		return apperrors.NewInvalidStateError(fmt.Sprintf("assessment %s is %s, only pending can be rejected", a.AssessmentNumber, a.Status))
	}
	if remarks == "" {
		return apperrors.NewValidationError("rejection remarks are required")
	}
	a.Status = AssessmentRejected
	a.RejectionRemarks = &remarks
	a.touch(by, now)
	return nil
}

// EnsureEditable fails unless the assessment is still a draft.
func (a *Assessment) EnsureEditable() error {
	if a.Status != AssessmentDraft {
		return apperrors.NewAppError(409, fmt.Sprintf("assessment %s is %s and can no longer be edited", a.AssessmentNumber, a.Status), apperrors.ErrImmutableState)
	}
	return nil
}

// NewRevision builds the next draft in this assessment's revision chain.
func (a *Assessment) NewRevision(id, by string, now time.Time) (Assessment, error) {
	if a.Status != AssessmentApproved && a.Status != AssessmentRejected {
		return Assessment{}, apperrors.NewInvalidStateError(fmt.Sprintf("assessment %s is %s, only approved or rejected assessments can be revised", a.AssessmentNumber, a.Status))
	}
	if a.SupersededAt != nil {
		return Assessment{}, apperrors.NewInvalidStateError(fmt.Sprintf("assessment %s has already been superseded", a.AssessmentNumber))
	}
	prev := a.AssessmentID
	rev := Assessment{
		AssessmentID:      id,
		ServiceType:       a.ServiceType,
		PropertyID:        a.PropertyID,
		WaterConnectionID: a.WaterConnectionID,
		ShopID:            a.ShopID,
		AssessmentYear:    a.AssessmentYear,
		FinancialYear:     a.FinancialYear,
		Valuation:         a.Valuation,
		NetAssessedValue:  a.NetAssessedValue,
		AnnualTaxAmount:   a.AnnualTaxAmount,
		Status:            AssessmentDraft,
		RevisionNumber:    a.RevisionNumber + 1,
		RevisionOf:        &prev,
		AssessorID:        by,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     by,
			LastUpdatedAt: now,
			LastUpdatedBy: by,
		},
	}
	return rev, nil
}

// ActiveKey identifies the slot guarded by the one-active-assessment rule.
type ActiveKey struct {
	ServiceType    AssessmentServiceType
	SubjectID      string
	AssessmentYear int
}

// ActiveKey returns the uniqueness slot this assessment occupies while active.
func (a *Assessment) ActiveKey() ActiveKey {
	return ActiveKey{ServiceType: a.ServiceType, SubjectID: a.SubjectID(), AssessmentYear: a.AssessmentYear}
}

// LatestRevisionNumber returns the highest revision number among assessments
// occupying key, or zero when none do.
func LatestRevisionNumber(assessments []Assessment, key ActiveKey) int {
	latest := 0
	for i := range assessments {
		if assessments[i].ActiveKey() == key && assessments[i].RevisionNumber > latest {
			latest = assessments[i].RevisionNumber
		}
	}
	return latest
}

func (a *Assessment) touch(by string, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = by
}
