package dto

import (
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IssueNoticeRequest defines a manual notice on a demand.
type IssueNoticeRequest struct {
	NoticeType domain.NoticeType `json:"noticeType" binding:"required,oneof=reminder demand penalty final_warrant"`
}

// UpdateNoticeStatusRequest requests a delivery or escalation status change.
type UpdateNoticeStatusRequest struct {
	Status domain.NoticeStatus `json:"status" binding:"required,oneof=sent viewed escalated"`
}

// NoticeResponse defines the data returned for a notice.
type NoticeResponse struct {
	NoticeID           string              `json:"noticeID"`
	NoticeNumber       string              `json:"noticeNumber"`
	DemandID           string              `json:"demandID"`
	PropertyID         string              `json:"propertyID"`
	FinancialYear      string              `json:"financialYear"`
	NoticeType         domain.NoticeType   `json:"noticeType"`
	Status             domain.NoticeStatus `json:"status"`
	AmountDue          decimal.Decimal     `json:"amountDue"`
	PenaltyAmount      decimal.Decimal     `json:"penaltyAmount"`
	NoticeDate         time.Time           `json:"noticeDate"`
	DueDate            time.Time           `json:"dueDate"`
	PreviousNoticeID   *string             `json:"previousNoticeID,omitempty"`
	TriggeredByVisitID *string             `json:"triggeredByVisitID,omitempty"`
	ResolvedAt         *time.Time          `json:"resolvedAt,omitempty"`
	CreatedBy          string              `json:"createdBy"`
	LastUpdatedAt      time.Time           `json:"lastUpdatedAt"`
}

// ToNoticeResponse converts a domain.Notice to NoticeResponse DTO
func ToNoticeResponse(n *domain.Notice) NoticeResponse {
	return NoticeResponse{
		NoticeID:           n.NoticeID,
		NoticeNumber:       n.NoticeNumber,
		DemandID:           n.DemandID,
		PropertyID:         n.PropertyID,
		FinancialYear:      n.FinancialYear,
		NoticeType:         n.NoticeType,
		Status:             n.Status,
		AmountDue:          n.AmountDue,
		PenaltyAmount:      n.PenaltyAmount,
		NoticeDate:         n.NoticeDate,
		DueDate:            n.DueDate,
		PreviousNoticeID:   n.PreviousNoticeID,
		TriggeredByVisitID: n.TriggeredByVisitID,
		ResolvedAt:         n.ResolvedAt,
		CreatedBy:          n.CreatedBy,
		LastUpdatedAt:      n.LastUpdatedAt,
	}
}

// ToListNoticeResponse converts a slice of domain.Notice to response DTOs
func ToListNoticeResponse(items []domain.Notice) []NoticeResponse {
	res := make([]NoticeResponse, len(items))
	for i := range items {
		res[i] = ToNoticeResponse(&items[i])
	}
	return res
}
