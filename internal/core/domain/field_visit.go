package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
)

// VisitType is the level of a collector's visit.
type VisitType string

const (
	VisitReminder          VisitType = "reminder"
	VisitPaymentCollection VisitType = "payment_collection"
	VisitWarning           VisitType = "warning"
	VisitFinalWarning      VisitType = "final_warning"
)

// VisitSequence is the fixed order visits must follow for one follow-up.
var VisitSequence = []VisitType{VisitReminder, VisitPaymentCollection, VisitWarning, VisitFinalWarning}

// ExpectedVisitType returns the visit type due after visitCount visits, repeating final_warning.
func ExpectedVisitType(visitCount int) VisitType {
	if visitCount < 0 {
		visitCount = 0
	}
	if visitCount >= len(VisitSequence) {
		visitCount = len(VisitSequence) - 1
	}
	return VisitSequence[visitCount]
}

// CitizenResponse records what the citizen said during a visit.
type CitizenResponse string

const (
	WillPayToday CitizenResponse = "will_pay_today"
	WillPayLater CitizenResponse = "will_pay_later"
	RefusedToPay CitizenResponse = "refused_to_pay"
	NotAvailable CitizenResponse = "not_available"
)

// IsValid reports whether r is a known response.
func (r CitizenResponse) IsValid() bool {
	switch r {
	case WillPayToday, WillPayLater, RefusedToPay, NotAvailable:
		return true
	}
	return false
}

// IsNonCompliant reports whether the response counts toward escalation.
func (r CitizenResponse) IsNonCompliant() bool {
	return r == RefusedToPay || r == NotAvailable
}

// EscalationStatus summarises how far a follow-up has progressed.
type EscalationStatus string

const (
	EscalationNormal    EscalationStatus = "normal"
	EscalationWatch     EscalationStatus = "watch"
	EscalationEscalated EscalationStatus = "escalated"
)

// MinRemarksLength is the minimum number of characters a visit's remarks must carry.
const MinRemarksLength = 10

// FollowUp tracks visit progress for one (demand, collector) pair.
type FollowUp struct {
	FollowUpID       string           `json:"followUpID"`
	DemandID         string           `json:"demandID"`
	CollectorID      string           `json:"collectorID"`
	VisitCount       int              `json:"visitCount"`
	LastVisitDate    *time.Time       `json:"lastVisitDate,omitempty"`
	EscalationStatus EscalationStatus `json:"escalationStatus"`
	AuditFields
}

// NewFollowUp starts a fresh follow-up with no visits.
func NewFollowUp(id, demandID, collectorID string) FollowUp {
	return FollowUp{
		FollowUpID:       id,
		DemandID:         demandID,
		CollectorID:      collectorID,
		EscalationStatus: EscalationNormal,
	}
}

// CheckSequence fails with a sequence violation unless visitType is the next one due.
func (f *FollowUp) CheckSequence(visitType VisitType) error {
	expected := ExpectedVisitType(f.VisitCount)
	if visitType != expected {
		return apperrors.NewAppError(422, fmt.Sprintf("visit %d for this demand must be %s, got %s", f.VisitCount+1, expected, visitType), apperrors.ErrSequenceViolation)
	}
	return nil
}

// Advance records one more visit of visitType at now.
func (f *FollowUp) Advance(visitType VisitType, by string, now time.Time) {
	f.VisitCount++
	f.LastVisitDate = &now
	if f.EscalationStatus != EscalationEscalated && (visitType == VisitWarning || visitType == VisitFinalWarning) {
		f.EscalationStatus = EscalationWatch
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
		f.CreatedBy = by
	}
	f.LastUpdatedAt = now
	f.LastUpdatedBy = by
}

// GeoPoint is an optional visit location.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// FieldVisit is an immutable record of one collector visit.
type FieldVisit struct {
	VisitID             string          `json:"visitID"`
	DemandID            string          `json:"demandID"`
	CollectorID         string          `json:"collectorID"`
	FollowUpID          string          `json:"followUpID"`
	VisitNumber         int             `json:"visitNumber"`
	VisitType           VisitType       `json:"visitType"`
	CitizenResponse     CitizenResponse `json:"citizenResponse"`
	ExpectedPaymentDate *time.Time      `json:"expectedPaymentDate,omitempty"`
	Remarks             string          `json:"remarks"`
	Location            *GeoPoint       `json:"location,omitempty"`
	ProofPhotoURL       *string         `json:"proofPhotoURL,omitempty"`
	ProofNote           *string         `json:"proofNote,omitempty"`
	VisitedAt           time.Time       `json:"visitedAt"`
	CreatedAt           time.Time       `json:"createdAt"`
	CreatedBy           string          `json:"createdBy"`
}

// Validate checks the response, remarks, promised date and location of a visit.
func (v *FieldVisit) Validate(now time.Time) error {
	if !v.CitizenResponse.IsValid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown citizen response %q", v.CitizenResponse))
	}
	if utf8.RuneCountInString(v.Remarks) < MinRemarksLength {
		return apperrors.NewValidationError(fmt.Sprintf("remarks must be at least %d characters", MinRemarksLength))
	}
	if v.CitizenResponse == WillPayLater {
		if v.ExpectedPaymentDate == nil {
			return apperrors.NewValidationError("expectedPaymentDate is required when the citizen will pay later")
		}
		if !v.ExpectedPaymentDate.After(now) {
			return apperrors.NewValidationError("expectedPaymentDate must be in the future")
		}
	}
	if v.Location != nil {
		if v.Location.Latitude < -90 || v.Location.Latitude > 90 || v.Location.Longitude < -180 || v.Location.Longitude > 180 {
			return apperrors.NewValidationError("location is out of range")
		}
	}
	return nil
}

// TriggersEscalation reports whether this visit, on a demand still owing, warrants a final warrant.
func (v *FieldVisit) TriggersEscalation(d *Demand) bool {
	return v.VisitType == VisitFinalWarning && v.CitizenResponse.IsNonCompliant() && d.BalanceAmount.IsPositive()
}

// VisitRecord is everything one recordVisit call persists atomically.
type VisitRecord struct {
	Visit           FieldVisit
	FollowUp        FollowUp
	ExpectedCount   int     // follow-up visitCount read before this visit; zero means create
	Notice          *Notice // escalation notice to create alongside the visit
	EscalatedNotice *string // open lower-severity notice superseded by Notice
}
