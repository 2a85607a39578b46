package dto

import (
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
)

// RecordVisitRequest defines the data a collector submits after a visit.
type RecordVisitRequest struct {
	CollectorID         string                 `json:"collectorId"` // admin only; collectors always record as themselves
	VisitType           domain.VisitType       `json:"visitType" binding:"required,oneof=reminder payment_collection warning final_warning"`
	CitizenResponse     domain.CitizenResponse `json:"citizenResponse" binding:"required,oneof=will_pay_today will_pay_later refused_to_pay not_available"`
	ExpectedPaymentDate *time.Time             `json:"expectedPaymentDate"`
	Remarks             string                 `json:"remarks" binding:"required"`
	Latitude            *float64               `json:"latitude" binding:"required_with=Longitude"`
	Longitude           *float64               `json:"longitude" binding:"required_with=Latitude"`
	ProofPhotoURL       *string                `json:"proofPhotoUrl" binding:"omitempty,url"`
	ProofNote           *string                `json:"proofNote"`
}

// FieldVisitResponse defines the data returned for a visit.
type FieldVisitResponse struct {
	VisitID             string                 `json:"visitID"`
	DemandID            string                 `json:"demandID"`
	CollectorID         string                 `json:"collectorID"`
	VisitNumber         int                    `json:"visitNumber"`
	VisitType           domain.VisitType       `json:"visitType"`
	CitizenResponse     domain.CitizenResponse `json:"citizenResponse"`
	ExpectedPaymentDate *time.Time             `json:"expectedPaymentDate,omitempty"`
	Remarks             string                 `json:"remarks"`
	Location            *domain.GeoPoint       `json:"location,omitempty"`
	ProofPhotoURL       *string                `json:"proofPhotoURL,omitempty"`
	ProofNote           *string                `json:"proofNote,omitempty"`
	VisitedAt           time.Time              `json:"visitedAt"`
}

// ToFieldVisitResponse converts a domain.FieldVisit to FieldVisitResponse DTO
func ToFieldVisitResponse(v *domain.FieldVisit) FieldVisitResponse {
	return FieldVisitResponse{
		VisitID:             v.VisitID,
		DemandID:            v.DemandID,
		CollectorID:         v.CollectorID,
		VisitNumber:         v.VisitNumber,
		VisitType:           v.VisitType,
		CitizenResponse:     v.CitizenResponse,
		ExpectedPaymentDate: v.ExpectedPaymentDate,
		Remarks:             v.Remarks,
		Location:            v.Location,
		ProofPhotoURL:       v.ProofPhotoURL,
		ProofNote:           v.ProofNote,
		VisitedAt:           v.VisitedAt,
	}
}

// ToListFieldVisitResponse converts a slice of domain.FieldVisit to response DTOs
func ToListFieldVisitResponse(items []domain.FieldVisit) []FieldVisitResponse {
	res := make([]FieldVisitResponse, len(items))
	for i := range items {
		res[i] = ToFieldVisitResponse(&items[i])
	}
	return res
}

// FollowUpResponse defines the data returned for a follow-up.
type FollowUpResponse struct {
	FollowUpID        string                  `json:"followUpID"`
	DemandID          string                  `json:"demandID"`
	CollectorID       string                  `json:"collectorID"`
	VisitCount        int                     `json:"visitCount"`
	LastVisitDate     *time.Time              `json:"lastVisitDate,omitempty"`
	EscalationStatus  domain.EscalationStatus `json:"escalationStatus"`
	ExpectedNextVisit domain.VisitType        `json:"expectedNextVisit"`
}

// ToFollowUpResponse converts a domain.FollowUp to FollowUpResponse DTO
func ToFollowUpResponse(f *domain.FollowUp) FollowUpResponse {
	return FollowUpResponse{
		FollowUpID:        f.FollowUpID,
		DemandID:          f.DemandID,
		CollectorID:       f.CollectorID,
		VisitCount:        f.VisitCount,
		LastVisitDate:     f.LastVisitDate,
		EscalationStatus:  f.EscalationStatus,
		ExpectedNextVisit: domain.ExpectedVisitType(f.VisitCount),
	}
}

// RecordVisitResponse reports the stored visit and whether it fired an escalation.
type RecordVisitResponse struct {
	Visit               FieldVisitResponse `json:"visit"`
	FollowUp            FollowUpResponse   `json:"followUp"`
	EscalationTriggered bool               `json:"escalationTriggered"`
	Notice              *NoticeResponse    `json:"notice,omitempty"`
}

// ToRecordVisitResponse converts a persisted domain.VisitRecord.
func ToRecordVisitResponse(r *domain.VisitRecord) RecordVisitResponse {
	res := RecordVisitResponse{
		Visit:               ToFieldVisitResponse(&r.Visit),
		FollowUp:            ToFollowUpResponse(&r.FollowUp),
		EscalationTriggered: r.Notice != nil,
	}
	if r.Notice != nil {
		n := ToNoticeResponse(r.Notice)
		res.Notice = &n
	}
	return res
}

// UploadProofResponse returns where an uploaded proof photo can be fetched.
type UploadProofResponse struct {
	URL string `json:"url"`
}
