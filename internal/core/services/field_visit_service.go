package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/municipal_tax_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
	"github.com/SscSPs/municipal_tax_app/internal/dto"
	"github.com/SscSPs/municipal_tax_app/internal/utils"
	"github.com/google/uuid"
)

// proofExtensions lists the accepted proof photo content types.
var proofExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type fieldVisitService struct {
	BaseService
	visitRepo    portsrepo.FieldVisitRepositoryFacade
	demandRepo   portsrepo.DemandReader
	escalation   portssvc.EscalationSvc
	proofs       portssvc.ProofStorage
	maxProofSize int64
}

// NewFieldVisitService creates the field-visit tracker. proofs may be nil, which disables uploads.
func NewFieldVisitService(visitRepo portsrepo.FieldVisitRepositoryFacade, demandRepo portsrepo.DemandReader, escalation portssvc.EscalationSvc, proofs portssvc.ProofStorage, maxProofSize int64, opts ...ServiceOption) portssvc.FieldVisitSvcFacade {
	return &fieldVisitService{
		BaseService:  newBaseService(opts),
		visitRepo:    visitRepo,
		demandRepo:   demandRepo,
		escalation:   escalation,
		proofs:       proofs,
		maxProofSize: maxProofSize,
	}
}

// Ensure fieldVisitService implements the portssvc.FieldVisitSvcFacade interface
var _ portssvc.FieldVisitSvcFacade = (*fieldVisitService)(nil)

func (s *fieldVisitService) collectorFor(caller domain.Caller, requested string) (string, error) {
	if requested == "" || requested == caller.UserID {
		return caller.UserID, nil
	}
	if !caller.IsAdmin() {
		return "", apperrors.NewForbiddenError("collectors may only record their own visits")
	}
	return requested, nil
}

func (s *fieldVisitService) RecordVisit(ctx context.Context, caller domain.Caller, demandID string, req dto.RecordVisitRequest) (*domain.VisitRecord, error) {
	if err := s.Authorize(ctx, caller, domain.ActionRecordVisit); err != nil {
		return nil, err
	}
	collectorID, err := s.collectorFor(caller, req.CollectorID)
	if err != nil {
		return nil, err
	}
	logger := s.GetLogger(ctx).With(slog.String("demand_id", demandID), slog.String("collector_id", collectorID))

	d, err := s.demandRepo.FindDemandByID(ctx, demandID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to load demand for visit", slog.String("demand_id", demandID))
		return nil, err
	}
	now := s.Now()
	if d.IsVoided() {
		return nil, apperrors.NewInvalidStateError(fmt.Sprintf("demand %s has been voided", d.DemandNumber))
	}
	if !d.IsOverdue(now) {
		return nil, apperrors.NewInvalidStateError(fmt.Sprintf("demand %s is not overdue", d.DemandNumber))
	}

	followUp, err := s.visitRepo.FindFollowUp(ctx, demandID, collectorID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		fresh := domain.NewFollowUp(uuid.NewString(), demandID, collectorID)
		followUp = &fresh
	case err != nil:
		s.LogError(ctx, err, "Failed to load follow-up", slog.String("demand_id", demandID))
		return nil, err
	}
	expectedCount := followUp.VisitCount

	if err := followUp.CheckSequence(req.VisitType); err != nil {
		logger.Warn("Visit out of sequence", slog.String("visit_type", string(req.VisitType)), slog.Int("visit_count", expectedCount))
		return nil, err
	}

	visit := domain.FieldVisit{
		VisitID:             uuid.NewString(),
		DemandID:            demandID,
		CollectorID:         collectorID,
		FollowUpID:          followUp.FollowUpID,
		VisitType:           req.VisitType,
		CitizenResponse:     req.CitizenResponse,
		ExpectedPaymentDate: req.ExpectedPaymentDate,
		Remarks:             req.Remarks,
		ProofPhotoURL:       req.ProofPhotoURL,
		ProofNote:           req.ProofNote,
		VisitedAt:           now,
		CreatedAt:           now,
		CreatedBy:           caller.UserID,
	}
	if req.Latitude != nil && req.Longitude != nil {
		visit.Location = &domain.GeoPoint{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}
	if err := visit.Validate(now); err != nil {
		return nil, err
	}

	followUp.Advance(req.VisitType, caller.UserID, now)
	visit.VisitNumber = followUp.VisitCount

	record := domain.VisitRecord{Visit: visit, FollowUp: *followUp, ExpectedCount: expectedCount}
	if s.escalation != nil {
		notice, escalates, err := s.escalation.PlanEscalation(ctx, d, &visit)
		if err != nil {
			return nil, err
		}
		if notice != nil {
			record.Notice = notice
			record.EscalatedNotice = escalates
			record.FollowUp.EscalationStatus = domain.EscalationEscalated
		}
	}

	saved, err := s.visitRepo.RecordVisit(ctx, record)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to record visit", slog.String("demand_id", demandID))
		return nil, err
	}

	s.Metrics.IncrementVisit(string(visit.VisitType), string(visit.CitizenResponse))
	logger.Info("Field visit recorded",
		slog.String("visit_id", saved.Visit.VisitID),
		slog.Int("visit_number", saved.Visit.VisitNumber),
		slog.String("visit_type", string(saved.Visit.VisitType)),
		slog.String("citizen_response", string(saved.Visit.CitizenResponse)))
	if saved.Notice != nil {
		s.Metrics.IncrementNotice(string(saved.Notice.NoticeType), noticeOriginEscalated)
		logger.Info("Visit escalated to notice",
			slog.String("notice_id", saved.Notice.NoticeID),
			slog.String("notice_number", saved.Notice.NoticeNumber))
		s.escalation.Publish(ctx, *saved.Notice)
	}
	return saved, nil
}

func (s *fieldVisitService) ListVisitsByDemand(ctx context.Context, caller domain.Caller, demandID string) ([]domain.FieldVisit, error) {
	if err := s.RequireCaller(caller); err != nil {
		return nil, err
	}
	if _, err := s.demandRepo.FindDemandByID(ctx, demandID); err != nil {
		return nil, err
	}
	return s.visitRepo.ListVisitsByDemand(ctx, demandID)
}

func (s *fieldVisitService) GetFollowUp(ctx context.Context, caller domain.Caller, demandID, collectorID string) (*domain.FollowUp, error) {
	if err := s.RequireCaller(caller); err != nil {
		return nil, err
	}
	if collectorID == "" {
		collectorID = caller.UserID
	}
	return s.visitRepo.FindFollowUp(ctx, demandID, collectorID)
}

func (s *fieldVisitService) UploadProof(ctx context.Context, caller domain.Caller, filename, contentType string, size int64, body io.Reader) (string, error) {
	if err := s.Authorize(ctx, caller, domain.ActionRecordVisit); err != nil {
		return "", err
	}
	if s.proofs == nil {
		return "", apperrors.NewInvalidStateError("proof uploads are not configured")
	}
	ext, ok := proofExtensions[contentType]
	if !ok {
		return "", apperrors.NewValidationError(fmt.Sprintf("unsupported proof content type %q", contentType))
	}
	if size <= 0 || (s.maxProofSize > 0 && size > s.maxProofSize) {
		return "", apperrors.NewValidationError(fmt.Sprintf("proof must be between 1 and %d bytes", s.maxProofSize))
	}

	suffix, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate proof key")
		return "", err
	}
	key := fmt.Sprintf("proofs/%s/%s/%s%s", s.Now().Format("2006/01"), caller.UserID, suffix, ext)
	url, err := s.proofs.Save(ctx, key, contentType, size, body)
	if err != nil {
		s.LogError(ctx, err, "Failed to store proof", slog.String("key", key), slog.String("filename", filename))
		return "", err
	}
	s.LogInfo(ctx, "Proof uploaded", slog.String("key", key), slog.Int64("size", size))
	return url, nil
}
