package dto

import (
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GenerateDemandRequest selects single-assessment or unified generation.
type GenerateDemandRequest struct {
	Mode               domain.GenerationMode `json:"mode" binding:"required,oneof=single unified"`
	AssessmentID       string                `json:"assessmentId" binding:"required_if=Mode single"`
	PropertyID         string                `json:"propertyId" binding:"required_if=Mode unified"`
	FinancialYear      string                `json:"financialYear" binding:"omitempty,financialyear"`
	DueDate            time.Time             `json:"dueDate" binding:"required"`
	IncludeHouseTax    bool                  `json:"includeHouseTax"`
	IncludeWaterTax    bool                  `json:"includeWaterTax"`
	IncludeD2DC        bool                  `json:"includeD2DC"`
	IncludeShopDemands bool                  `json:"includeShopDemands"`
	D2DCPeriod         string                `json:"d2dcPeriod" binding:"omitempty,datetime=2006-01"` // YYYY-MM, defaults to the due date's month
}

// VoidDemandRequest carries the reason an unpaid demand is withdrawn.
type VoidDemandRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListDemandsParams defines query parameters for listing a property's demands.
type ListDemandsParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// DemandItemResponse is one billed line.
type DemandItemResponse struct {
	TaxType      domain.DemandServiceType `json:"taxType"`
	Description  string                   `json:"description"`
	Amount       decimal.Decimal          `json:"amount"`
	SubjectID    string                   `json:"subjectID"`
	AssessmentID *string                  `json:"assessmentID,omitempty"`
}

// DemandResponse defines the data returned for a demand.
type DemandResponse struct {
	DemandID       string                   `json:"demandID"`
	DemandNumber   string                   `json:"demandNumber"`
	ServiceType    domain.DemandServiceType `json:"serviceType"`
	PropertyID     string                   `json:"propertyID"`
	FinancialYear  string                   `json:"financialYear"`
	DueDate        time.Time                `json:"dueDate"`
	Items          []DemandItemResponse     `json:"items"`
	BaseAmount     decimal.Decimal          `json:"baseAmount"`
	PenaltyAmount  decimal.Decimal          `json:"penaltyAmount"`
	InterestAmount decimal.Decimal          `json:"interestAmount"`
	TotalAmount    decimal.Decimal          `json:"totalAmount"`
	PaidAmount     decimal.Decimal          `json:"paidAmount"`
	BalanceAmount  decimal.Decimal          `json:"balanceAmount"`
	Status         domain.DemandStatus      `json:"status"`
	AssessmentIDs  []string                 `json:"assessmentIDs"`
	UnifiedGroupID *string                  `json:"unifiedGroupID,omitempty"`
	VoidedAt       *time.Time               `json:"voidedAt,omitempty"`
	VoidReason     *string                  `json:"voidReason,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
	CreatedBy      string                   `json:"createdBy"`
	LastUpdatedAt  time.Time                `json:"lastUpdatedAt"`
	LastUpdatedBy  string                   `json:"lastUpdatedBy"`
}

// ToDemandResponse converts a domain.Demand to DemandResponse DTO
func ToDemandResponse(d *domain.Demand) DemandResponse {
	items := make([]DemandItemResponse, len(d.Items))
	for i, it := range d.Items {
		items[i] = DemandItemResponse{
			TaxType:      it.TaxType,
			Description:  it.Description,
			Amount:       it.Amount,
			SubjectID:    it.SubjectID,
			AssessmentID: it.AssessmentID,
		}
	}
	return DemandResponse{
		DemandID:       d.DemandID,
		DemandNumber:   d.DemandNumber,
		ServiceType:    d.ServiceType,
		PropertyID:     d.PropertyID,
		FinancialYear:  d.FinancialYear,
		DueDate:        d.DueDate,
		Items:          items,
		BaseAmount:     d.BaseAmount,
		PenaltyAmount:  d.PenaltyAmount,
		InterestAmount: d.InterestAmount,
		TotalAmount:    d.TotalAmount,
		PaidAmount:     d.PaidAmount,
		BalanceAmount:  d.BalanceAmount,
		Status:         d.Status,
		AssessmentIDs:  d.AssessmentIDs,
		UnifiedGroupID: d.UnifiedGroupID,
		VoidedAt:       d.VoidedAt,
		VoidReason:     d.VoidReason,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
		LastUpdatedAt:  d.LastUpdatedAt,
		LastUpdatedBy:  d.LastUpdatedBy,
	}
}

// ListDemandsResponse wraps a page of demands.
type ListDemandsResponse struct {
	Demands   []DemandResponse `json:"demands"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// SiblingDemandResponse reports one independently generated sibling demand.
type SiblingDemandResponse struct {
	ServiceType    domain.DemandServiceType `json:"serviceType"`
	SubjectID      string                   `json:"subjectID"`
	Demand         *DemandResponse          `json:"demand,omitempty"`
	AlreadyExisted bool                     `json:"alreadyExisted"`
	Error          *ErrorResponse           `json:"error,omitempty"`
}

// GenerateDemandResponse is returned by demand generation.
type GenerateDemandResponse struct {
	Demand         *DemandResponse         `json:"demand,omitempty"`
	AlreadyExisted bool                    `json:"alreadyExisted"`
	Siblings       []SiblingDemandResponse `json:"siblings,omitempty"`
}

// ToGenerateDemandResponse converts a domain.GenerationResult, rendering per-sibling failures.
func ToGenerateDemandResponse(r *domain.GenerationResult) GenerateDemandResponse {
	res := GenerateDemandResponse{AlreadyExisted: r.AlreadyExisted}
	if r.Demand != nil {
		d := ToDemandResponse(r.Demand)
		res.Demand = &d
	}
	for _, s := range r.Siblings {
		sib := SiblingDemandResponse{
			ServiceType:    s.ServiceType,
			SubjectID:      s.SubjectID,
			AlreadyExisted: s.AlreadyExisted,
		}
		if s.Demand != nil {
			d := ToDemandResponse(s.Demand)
			sib.Demand = &d
		}
		if s.Error != nil {
			e := NewErrorResponse(s.Error)
			sib.Error = &e
		}
		res.Siblings = append(res.Siblings, sib)
	}
	return res
}
