package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// NoticeType is the kind of enforcement notice, ordered by severity.
type NoticeType string

const (
	NoticeReminder     NoticeType = "reminder"
	NoticeDemand       NoticeType = "demand"
	NoticePenalty      NoticeType = "penalty"
	NoticeFinalWarrant NoticeType = "final_warrant"
)

// Severity ranks notice types; zero means unknown.
func (t NoticeType) Severity() int {
	switch t {
	case NoticeReminder:
		return 1
	case NoticeDemand:
		return 2
	case NoticePenalty:
		return 3
	case NoticeFinalWarrant:
		return 4
	}
	return 0
}

// NoticeStatus is the delivery and enforcement state of a notice.
type NoticeStatus string

const (
	NoticeGenerated NoticeStatus = "generated"
	NoticeSent      NoticeStatus = "sent"
	NoticeViewed    NoticeStatus = "viewed"
	NoticeResolved  NoticeStatus = "resolved"
	NoticeEscalated NoticeStatus = "escalated"
)

// IsOpen reports whether the notice is still awaiting payment or escalation.
func (s NoticeStatus) IsOpen() bool {
	return s == NoticeGenerated || s == NoticeSent || s == NoticeViewed
}

// Notice is an enforcement notice issued against an unpaid demand.
type Notice struct {
	NoticeID           string          `json:"noticeID"`
	NoticeNumber       string          `json:"noticeNumber"`
	DemandID           string          `json:"demandID"`
	PropertyID         string          `json:"propertyID"`
	FinancialYear      string          `json:"financialYear"`
	NoticeType         NoticeType      `json:"noticeType"`
	Status             NoticeStatus    `json:"status"`
	AmountDue          decimal.Decimal `json:"amountDue"`
	PenaltyAmount      decimal.Decimal `json:"penaltyAmount"`
	NoticeDate         time.Time       `json:"noticeDate"`
	DueDate            time.Time       `json:"dueDate"`
	PreviousNoticeID   *string         `json:"previousNoticeID,omitempty"`
	TriggeredByVisitID *string         `json:"triggeredByVisitID,omitempty"`
	ResolvedAt         *time.Time      `json:"resolvedAt,omitempty"`
	AuditFields
}

// CanTransitionTo reports whether an externally requested status change is allowed.
// Resolution is driven by payments only and is never accepted here.
func (n *Notice) CanTransitionTo(to NoticeStatus) bool {
	switch to {
	case NoticeSent:
		return n.Status == NoticeGenerated
	case NoticeViewed:
		return n.Status == NoticeSent
	case NoticeEscalated:
		return n.Status.IsOpen()
	}
	return false
}

// TransitionTo applies an externally requested status change.
func (n *Notice) TransitionTo(to NoticeStatus, by string, now time.Time) error {
	if !n.CanTransitionTo(to) {
		return apperrors.NewInvalidStateError(fmt.Sprintf("notice %s cannot move from %s to %s", n.NoticeNumber, n.Status, to))
	}
	n.Status = to
	n.LastUpdatedAt = now
	n.LastUpdatedBy = by
	return nil
}

// NewNotice builds a generated notice against d with the given grace period.
func NewNotice(id string, d *Demand, noticeType NoticeType, grace time.Duration, by string, now time.Time) Notice {
	return Notice{
		NoticeID:      id,
		DemandID:      d.DemandID,
		PropertyID:    d.PropertyID,
		FinancialYear: d.FinancialYear,
		NoticeType:    noticeType,
		Status:        NoticeGenerated,
		AmountDue:     d.BalanceAmount,
		PenaltyAmount: d.PenaltyAmount,
		NoticeDate:    now,
		DueDate:       now.Add(grace),
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     by,
			LastUpdatedAt: now,
			LastUpdatedBy: by,
		},
	}
}

// NoticePlan is the outcome of checking whether a new notice may be issued.
type NoticePlan struct {
	Previous *Notice // latest lower-severity notice, linked as previousNotice
	Escalate bool    // Previous is open and must be marked escalated with the new notice
}

// PlanNotice decides whether a notice of noticeType may join existing for the same demand.
// A notice of the same or higher severity that is not resolved blocks the new one.
// An open lower-severity notice must already be escalated, unless automatic is set,
// in which case the new notice escalates it.
func PlanNotice(existing []Notice, noticeType NoticeType, automatic bool) (NoticePlan, error) {
	sev := noticeType.Severity()
	if sev == 0 {
		return NoticePlan{}, apperrors.NewValidationError(fmt.Sprintf("unknown notice type %q", noticeType))
	}
	var plan NoticePlan
	for i := range existing {
		n := &existing[i]
		if n.Status == NoticeResolved {
			continue
		}
		if n.NoticeType.Severity() >= sev {
			return NoticePlan{}, apperrors.NewInvalidStateError(fmt.Sprintf("notice %s (%s) already covers this demand", n.NoticeNumber, n.NoticeType))
		}
		if plan.Previous == nil || n.NoticeDate.After(plan.Previous.NoticeDate) ||
			(n.NoticeDate.Equal(plan.Previous.NoticeDate) && n.CreatedAt.After(plan.Previous.CreatedAt)) {
			plan.Previous = n
		}
	}
	for i := range existing {
		n := &existing[i]
		if !n.Status.IsOpen() {
			continue
		}
		if !automatic {
			return NoticePlan{}, apperrors.NewInvalidStateError(fmt.Sprintf("notice %s is still %s and must be escalated first", n.NoticeNumber, n.Status))
		}
		if n == plan.Previous {
			plan.Escalate = true
		}
	}
	return plan, nil
}
