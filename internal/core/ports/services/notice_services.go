package services

import (
	"context"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
)

// EscalationSvc decides on and issues enforcement notices
type EscalationSvc interface {
	// PlanEscalation returns the notice a recorded visit should fire, if any, and the open
	// notice it supersedes. Nothing is written.
	PlanEscalation(ctx context.Context, demand *domain.Demand, visit *domain.FieldVisit) (*domain.Notice, *string, error)

	// ResolveDemandNotices marks open notices resolved once the demand is fully paid.
	ResolveDemandNotices(ctx context.Context, demand *domain.Demand, userID string) ([]domain.Notice, error)

	// Publish hands a generated notice to the notification sink.
	Publish(ctx context.Context, notice domain.Notice)
}

// NoticeSvcFacade exposes notices to the API
type NoticeSvcFacade interface {
	EscalationSvc

	// IssueNotice creates a manual notice on a demand.
	IssueNotice(ctx context.Context, caller domain.Caller, demandID string, noticeType domain.NoticeType) (*domain.Notice, error)

	// UpdateNoticeStatus applies a delivery or escalation status change.
	UpdateNoticeStatus(ctx context.Context, caller domain.Caller, noticeID string, status domain.NoticeStatus) (*domain.Notice, error)

	GetNoticeByID(ctx context.Context, caller domain.Caller, noticeID string) (*domain.Notice, error)
	ListNoticesByDemand(ctx context.Context, caller domain.Caller, demandID string) ([]domain.Notice, error)
}
