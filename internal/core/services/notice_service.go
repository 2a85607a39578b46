package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/municipal_tax_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// Notice origins reported on the notices counter.
const (
	noticeOriginManual    = "manual"
	noticeOriginEscalated = "visit"
)

type noticeService struct {
	BaseService
	noticeRepo portsrepo.NoticeRepositoryFacade
	demandRepo portsrepo.DemandReader
	notifier   portssvc.NoticeNotifier
	grace      time.Duration
}

// NewNoticeService creates the escalation trigger and notice service. notifier may be nil.
func NewNoticeService(noticeRepo portsrepo.NoticeRepositoryFacade, demandRepo portsrepo.DemandReader, notifier portssvc.NoticeNotifier, grace time.Duration, opts ...ServiceOption) portssvc.NoticeSvcFacade {
	return &noticeService{
		BaseService: newBaseService(opts),
		noticeRepo:  noticeRepo,
		demandRepo:  demandRepo,
		notifier:    notifier,
		grace:       grace,
	}
}

// Ensure noticeService implements the portssvc.NoticeSvcFacade interface
var _ portssvc.NoticeSvcFacade = (*noticeService)(nil)

func (s *noticeService) PlanEscalation(ctx context.Context, demand *domain.Demand, visit *domain.FieldVisit) (*domain.Notice, *string, error) {
	if !visit.TriggersEscalation(demand) {
		return nil, nil, nil
	}
	existing, err := s.noticeRepo.ListNoticesByDemand(ctx, demand.DemandID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load notices for escalation", slog.String("demand_id", demand.DemandID))
		return nil, nil, err
	}
	plan, err := domain.PlanNotice(existing, domain.NoticeFinalWarrant, true)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			s.LogDebug(ctx, "Final warrant already issued, escalation skipped", slog.String("demand_id", demand.DemandID))
			return nil, nil, nil
		}
		return nil, nil, err
	}

	now := s.Now()
	n := domain.NewNotice(uuid.NewString(), demand, domain.NoticeFinalWarrant, s.grace, visit.CollectorID, now)
	visitID := visit.VisitID
	n.TriggeredByVisitID = &visitID
	var escalates *string
	if plan.Previous != nil {
		prev := plan.Previous.NoticeID
		n.PreviousNoticeID = &prev
		if plan.Escalate {
			escalates = &prev
		}
	}
	return &n, escalates, nil
}

func (s *noticeService) ResolveDemandNotices(ctx context.Context, demand *domain.Demand, userID string) ([]domain.Notice, error) {
	if demand.BalanceAmount.IsPositive() {
		return nil, nil
	}
	resolved, err := s.noticeRepo.ResolveOpenNotices(ctx, demand.DemandID, userID, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve notices", slog.String("demand_id", demand.DemandID))
		return nil, err
	}
	if len(resolved) > 0 {
		s.LogInfo(ctx, "Notices resolved on full payment",
			slog.String("demand_id", demand.DemandID),
			slog.Int("count", len(resolved)))
	}
	return resolved, nil
}

func (s *noticeService) Publish(ctx context.Context, notice domain.Notice) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyNotice(ctx, notice); err != nil {
		s.LogError(ctx, err, "Failed to publish notice",
			slog.String("notice_id", notice.NoticeID),
			slog.String("notice_type", string(notice.NoticeType)))
	}
}

func (s *noticeService) IssueNotice(ctx context.Context, caller domain.Caller, demandID string, noticeType domain.NoticeType) (*domain.Notice, error) {
	if err := s.Authorize(ctx, caller, domain.ActionManageNotice); err != nil {
		return nil, err
	}
	d, err := s.demandRepo.FindDemandByID(ctx, demandID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to load demand for notice", slog.String("demand_id", demandID))
		return nil, err
	}
	if d.IsVoided() {
		return nil, apperrors.NewInvalidStateError(fmt.Sprintf("demand %s has been voided", d.DemandNumber))
	}
	if !d.BalanceAmount.IsPositive() {
		return nil, apperrors.NewInvalidStateError(fmt.Sprintf("demand %s is fully paid", d.DemandNumber))
	}

	existing, err := s.noticeRepo.ListNoticesByDemand(ctx, demandID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load notices", slog.String("demand_id", demandID))
		return nil, err
	}
	plan, err := domain.PlanNotice(existing, noticeType, false)
	if err != nil {
		s.LogWarn(ctx, err, "Notice rejected", slog.String("demand_id", demandID), slog.String("notice_type", string(noticeType)))
		return nil, err
	}

	n := domain.NewNotice(uuid.NewString(), d, noticeType, s.grace, caller.UserID, s.Now())
	if plan.Previous != nil {
		prev := plan.Previous.NoticeID
		n.PreviousNoticeID = &prev
	}
	saved, err := s.noticeRepo.CreateNotice(ctx, n, nil)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create notice", slog.String("demand_id", demandID))
		return nil, err
	}
	s.Metrics.IncrementNotice(string(noticeType), noticeOriginManual)
	s.LogInfo(ctx, "Notice issued",
		slog.String("notice_id", saved.NoticeID),
		slog.String("notice_number", saved.NoticeNumber),
		slog.String("notice_type", string(saved.NoticeType)))
	s.Publish(ctx, *saved)
	return saved, nil
}

func (s *noticeService) UpdateNoticeStatus(ctx context.Context, caller domain.Caller, noticeID string, status domain.NoticeStatus) (*domain.Notice, error) {
	if err := s.Authorize(ctx, caller, domain.ActionManageNotice); err != nil {
		return nil, err
	}
	n, err := s.noticeRepo.FindNoticeByID(ctx, noticeID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to load notice", slog.String("notice_id", noticeID))
		return nil, err
	}
	from := n.Status
	now := s.Now()
	if err := n.TransitionTo(status, caller.UserID, now); err != nil {
		s.LogWarn(ctx, err, "Notice transition rejected", slog.String("notice_id", noticeID))
		return nil, err
	}
	if err := s.noticeRepo.UpdateNoticeStatus(ctx, noticeID, from, status, caller.UserID, now); err != nil {
		s.LogFailure(ctx, err, "Failed to update notice status", slog.String("notice_id", noticeID))
		return nil, err
	}
	s.LogInfo(ctx, "Notice status updated",
		slog.String("notice_id", noticeID),
		slog.String("from", string(from)),
		slog.String("to", string(status)))
	return n, nil
}

func (s *noticeService) GetNoticeByID(ctx context.Context, caller domain.Caller, noticeID string) (*domain.Notice, error) {
	if err := s.RequireCaller(caller); err != nil {
		return nil, err
	}
	return s.noticeRepo.FindNoticeByID(ctx, noticeID)
}

func (s *noticeService) ListNoticesByDemand(ctx context.Context, caller domain.Caller, demandID string) ([]domain.Notice, error) {
	if err := s.RequireCaller(caller); err != nil {
		return nil, err
	}
	if _, err := s.demandRepo.FindDemandByID(ctx, demandID); err != nil {
		return nil, err
	}
	return s.noticeRepo.ListNoticesByDemand(ctx, demandID)
}
