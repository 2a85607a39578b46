package dto

import (
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAssessmentRequest defines the data needed to create a draft assessment.
type CreateAssessmentRequest struct {
	ServiceType       domain.AssessmentServiceType `json:"serviceType" binding:"required,oneof=property water shop"`
	PropertyID        string                       `json:"propertyId" binding:"required"`
	WaterConnectionID *string                      `json:"waterConnectionId"` // water only
	ShopID            *string                      `json:"shopId"`            // shop only
	AssessmentYear    int                          `json:"assessmentYear" binding:"required,gte=1900,lte=2999"`
	FinancialYear     string                       `json:"financialYear" binding:"required,financialyear"`
	AssessedValue     decimal.Decimal              `json:"assessedValue"`
	LandValue         decimal.Decimal              `json:"landValue"`
	BuildingValue     decimal.Decimal              `json:"buildingValue"`
	Depreciation      decimal.Decimal              `json:"depreciation"`
	ExemptionAmount   decimal.Decimal              `json:"exemptionAmount"`
	TaxRate           decimal.Decimal              `json:"taxRate"`
}

// Valuation extracts the valuation inputs of the request.
func (r CreateAssessmentRequest) Valuation() domain.Valuation {
	return domain.Valuation{
		AssessedValue:   r.AssessedValue,
		LandValue:       r.LandValue,
		BuildingValue:   r.BuildingValue,
		Depreciation:    r.Depreciation,
		ExemptionAmount: r.ExemptionAmount,
		TaxRate:         r.TaxRate,
	}
}

// UpdateAssessmentRequest defines the valuation fields that may change on a draft.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAssessmentRequest struct {
	AssessedValue   *decimal.Decimal `json:"assessedValue"`
	LandValue       *decimal.Decimal `json:"landValue"`
	BuildingValue   *decimal.Decimal `json:"buildingValue"`
	Depreciation    *decimal.Decimal `json:"depreciation"`
	ExemptionAmount *decimal.Decimal `json:"exemptionAmount"`
	TaxRate         *decimal.Decimal `json:"taxRate"`
}

// MergeInto overlays the provided fields onto v.
func (r UpdateAssessmentRequest) MergeInto(v domain.Valuation) domain.Valuation {
	set := func(dst *decimal.Decimal, src *decimal.Decimal) {
		if src != nil {
			*dst = *src
		}
	}
	set(&v.AssessedValue, r.AssessedValue)
	set(&v.LandValue, r.LandValue)
	set(&v.BuildingValue, r.BuildingValue)
	set(&v.Depreciation, r.Depreciation)
	set(&v.ExemptionAmount, r.ExemptionAmount)
	set(&v.TaxRate, r.TaxRate)
	return v
}

// RejectAssessmentRequest carries the reviewer's remarks.
type RejectAssessmentRequest struct {
	Remarks string `json:"remarks" binding:"required"`
}

// ListAssessmentsParams defines query parameters for listing a property's assessments.
type ListAssessmentsParams struct {
	FinancialYear *string `form:"financialYear" binding:"omitempty,financialyear"`
}

// AssessmentResponse defines the data returned for an assessment.
type AssessmentResponse struct {
	AssessmentID      string                       `json:"assessmentID"`
	AssessmentNumber  string                       `json:"assessmentNumber"`
	ServiceType       domain.AssessmentServiceType `json:"serviceType"`
	PropertyID        string                       `json:"propertyID"`
	WaterConnectionID *string                      `json:"waterConnectionID,omitempty"`
	ShopID            *string                      `json:"shopID,omitempty"`
	AssessmentYear    int                          `json:"assessmentYear"`
	FinancialYear     string                       `json:"financialYear"`
	AssessedValue     decimal.Decimal              `json:"assessedValue"`
	LandValue         decimal.Decimal              `json:"landValue"`
	BuildingValue     decimal.Decimal              `json:"buildingValue"`
	Depreciation      decimal.Decimal              `json:"depreciation"`
	ExemptionAmount   decimal.Decimal              `json:"exemptionAmount"`
	TaxRate           decimal.Decimal              `json:"taxRate"`
	NetAssessedValue  decimal.Decimal              `json:"netAssessedValue"`
	AnnualTaxAmount   decimal.Decimal              `json:"annualTaxAmount"`
	Status            domain.AssessmentStatus      `json:"status"`
	RevisionNumber    int                          `json:"revisionNumber"`
	RevisionOf        *string                      `json:"revisionOf,omitempty"`
	Superseded        bool                         `json:"superseded"`
	AssessorID        string                       `json:"assessorID"`
	ApproverID        *string                      `json:"approverID,omitempty"`
	ApprovalDate      *time.Time                   `json:"approvalDate,omitempty"`
	RejectionRemarks  *string                      `json:"rejectionRemarks,omitempty"`
	CreatedAt         time.Time                    `json:"createdAt"`
	CreatedBy         string                       `json:"createdBy"`
	LastUpdatedAt     time.Time                    `json:"lastUpdatedAt"`
	LastUpdatedBy     string                       `json:"lastUpdatedBy"`
}

// ToAssessmentResponse converts a domain.Assessment to AssessmentResponse DTO
func ToAssessmentResponse(a *domain.Assessment) AssessmentResponse {
	return AssessmentResponse{
		AssessmentID:      a.AssessmentID,
		AssessmentNumber:  a.AssessmentNumber,
		ServiceType:       a.ServiceType,
		PropertyID:        a.PropertyID,
		WaterConnectionID: a.WaterConnectionID,
		ShopID:            a.ShopID,
		AssessmentYear:    a.AssessmentYear,
		FinancialYear:     a.FinancialYear,
		AssessedValue:     a.AssessedValue,
		LandValue:         a.LandValue,
		BuildingValue:     a.BuildingValue,
		Depreciation:      a.Depreciation,
		ExemptionAmount:   a.ExemptionAmount,
		TaxRate:           a.TaxRate,
		NetAssessedValue:  a.NetAssessedValue,
		AnnualTaxAmount:   a.AnnualTaxAmount,
		Status:            a.Status,
		RevisionNumber:    a.RevisionNumber,
		RevisionOf:        a.RevisionOf,
		Superseded:        a.SupersededAt != nil,
		AssessorID:        a.AssessorID,
		ApproverID:        a.ApproverID,
		ApprovalDate:      a.ApprovalDate,
		RejectionRemarks:  a.RejectionRemarks,
		CreatedAt:         a.CreatedAt,
		CreatedBy:         a.CreatedBy,
		LastUpdatedAt:     a.LastUpdatedAt,
		LastUpdatedBy:     a.LastUpdatedBy,
	}
}

// ToListAssessmentResponse converts a slice of domain.Assessment to response DTOs
func ToListAssessmentResponse(items []domain.Assessment) []AssessmentResponse {
	res := make([]AssessmentResponse, len(items))
	for i := range items {
		res[i] = ToAssessmentResponse(&items[i])
	}
	return res
}
