package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/municipal_tax_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
	"github.com/SscSPs/municipal_tax_app/internal/dto"
	"github.com/google/uuid"
)

// assessmentService owns the assessment store and its approval workflow.
type assessmentService struct {
	BaseService
	assessmentRepo portsrepo.AssessmentRepositoryFacade
}

// NewAssessmentService creates a new assessment service.
func NewAssessmentService(repo portsrepo.AssessmentRepositoryFacade, opts ...ServiceOption) portssvc.AssessmentSvcFacade {
	return &assessmentService{
		BaseService:    newBaseService(opts),
		assessmentRepo: repo,
	}
}

// Ensure assessmentService implements the portssvc.AssessmentSvcFacade interface
var _ portssvc.AssessmentSvcFacade = (*assessmentService)(nil)

func (s *assessmentService) CreateAssessment(ctx context.Context, caller domain.Caller, req dto.CreateAssessmentRequest) (*domain.Assessment, error) {
	if err := s.Authorize(ctx, caller, domain.ActionManageAssessment); err != nil {
		return nil, err
	}
	if _, err := domain.ParseFinancialYear(req.FinancialYear); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	now := s.Now()
	a := domain.Assessment{
		AssessmentID:      uuid.NewString(),
		ServiceType:       req.ServiceType,
		PropertyID:        req.PropertyID,
		WaterConnectionID: req.WaterConnectionID,
		ShopID:            req.ShopID,
		AssessmentYear:    req.AssessmentYear,
		FinancialYear:     req.FinancialYear,
		Status:            domain.AssessmentDraft,
		RevisionNumber:    1,
		AssessorID:        caller.UserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.UserID,
		},
	}
	if err := a.ValidateSubject(); err != nil {
		return nil, err
	}
	if err := a.ApplyValuation(req.Valuation()); err != nil {
		return nil, err
	}

	created, err := s.assessmentRepo.CreateAssessment(ctx, a)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create assessment", slog.String("property_id", a.PropertyID))
		return nil, err
	}
	s.LogInfo(ctx, "Assessment created",
		slog.String("assessment_id", created.AssessmentID),
		slog.String("assessment_number", created.AssessmentNumber),
		slog.String("service_type", string(created.ServiceType)))
	s.Metrics.IncrementAssessmentTransition(string(domain.AssessmentDraft))
	return created, nil
}

func (s *assessmentService) UpdateAssessment(ctx context.Context, caller domain.Caller, assessmentID string, req dto.UpdateAssessmentRequest) (*domain.Assessment, error) {
	if err := s.Authorize(ctx, caller, domain.ActionManageAssessment); err != nil {
		return nil, err
	}
	a, err := s.loadOwned(ctx, caller, assessmentID)
	if err != nil {
		return nil, err
	}
	if err := a.EnsureEditable(); err != nil {
		return nil, err
	}
	if err := a.ApplyValuation(req.MergeInto(a.Valuation)); err != nil {
		return nil, err
	}
	a.LastUpdatedAt = s.Now()
	a.LastUpdatedBy = caller.UserID

	if err := s.assessmentRepo.UpdateAssessmentValuation(ctx, *a); err != nil {
		s.LogFailure(ctx, err, "Failed to update assessment", slog.String("assessment_id", assessmentID))
		return nil, err
	}
	return a, nil
}

func (s *assessmentService) SubmitAssessment(ctx context.Context, caller domain.Caller, assessmentID string) (*domain.Assessment, error) {
	if err := s.Authorize(ctx, caller, domain.ActionManageAssessment); err != nil {
		return nil, err
	}
	a, err := s.loadOwned(ctx, caller, assessmentID)
	if err != nil {
		return nil, err
	}
	if err := a.Submit(caller.UserID, s.Now()); err != nil {
		return nil, err
	}

	// A revision of a live approved assessment takes its place once submitted.
	var supersedes *string
	prev, err := s.approvedAncestor(ctx, a)
	if err != nil {
		return nil, err
	}
	if prev != nil && prev.IsBillable() {
		supersedes = &prev.AssessmentID
	}

	if err := s.assessmentRepo.SubmitAssessment(ctx, *a, supersedes); err != nil {
		s.LogFailure(ctx, err, "Failed to submit assessment", slog.String("assessment_id", assessmentID))
		return nil, err
	}
	s.LogInfo(ctx, "Assessment submitted", slog.String("assessment_id", assessmentID))
	s.Metrics.IncrementAssessmentTransition(string(a.Status))
	return a, nil
}

func (s *assessmentService) ApproveAssessment(ctx context.Context, caller domain.Caller, assessmentID string) (*domain.Assessment, error) {
	if err := s.Authorize(ctx, caller, domain.ActionReviewAssessment); err != nil {
		return nil, err
	}
	a, err := s.load(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if err := a.Approve(caller.UserID, s.Now()); err != nil {
		return nil, err
	}
	if err := s.assessmentRepo.ApproveAssessment(ctx, *a); err != nil {
		s.LogFailure(ctx, err, "Failed to approve assessment", slog.String("assessment_id", assessmentID))
		return nil, err
	}
	s.LogInfo(ctx, "Assessment approved",
		slog.String("assessment_id", assessmentID),
		slog.String("annual_tax", a.AnnualTaxAmount.StringFixed(2)))
	s.Metrics.IncrementAssessmentTransition(string(a.Status))
	return a, nil
}

func (s *assessmentService) RejectAssessment(ctx context.Context, caller domain.Caller, assessmentID string, remarks string) (*domain.Assessment, error) {
	if err := s.Authorize(ctx, caller, domain.ActionReviewAssessment); err != nil {
		return nil, err
	}
	a, err := s.load(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	if err := a.Reject(caller.UserID, remarks, now); err != nil {
		return nil, err
	}

	// Rejecting a revision hands the slot back to the assessment it superseded.
	var restores *string
	prev, err := s.approvedAncestor(ctx, a)
	if err != nil {
		return nil, err
	}
	if prev != nil && prev.SupersededAt != nil {
		restores = &prev.AssessmentID
	}

	if err := s.assessmentRepo.RejectAssessment(ctx, *a, restores, now); err != nil {
		s.LogFailure(ctx, err, "Failed to reject assessment", slog.String("assessment_id", assessmentID))
		return nil, err
	}
	s.LogInfo(ctx, "Assessment rejected", slog.String("assessment_id", assessmentID))
	s.Metrics.IncrementAssessmentTransition(string(a.Status))
	return a, nil
}

func (s *assessmentService) ReviseAssessment(ctx context.Context, caller domain.Caller, assessmentID string) (*domain.Assessment, error) {
	if err := s.Authorize(ctx, caller, domain.ActionManageAssessment); err != nil {
		return nil, err
	}
	a, err := s.load(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	rev, err := a.NewRevision(uuid.NewString(), caller.UserID, s.Now())
	if err != nil {
		return nil, err
	}
	fy := a.FinancialYear
	others, err := s.assessmentRepo.ListAssessmentsByProperty(ctx, a.PropertyID, &fy)
	if err != nil {
		s.LogError(ctx, err, "Failed to load revision history", slog.String("assessment_id", assessmentID))
		return nil, err
	}
	if latest := domain.LatestRevisionNumber(others, a.ActiveKey()); latest >= rev.RevisionNumber {
		rev.RevisionNumber = latest + 1
	}
	created, err := s.assessmentRepo.CreateAssessment(ctx, rev)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create assessment revision", slog.String("revision_of", assessmentID))
		return nil, err
	}
	s.LogInfo(ctx, "Assessment revision opened",
		slog.String("assessment_id", created.AssessmentID),
		slog.String("revision_of", assessmentID),
		slog.Int("revision_number", created.RevisionNumber))
	return created, nil
}

func (s *assessmentService) GetAssessmentByID(ctx context.Context, caller domain.Caller, assessmentID string) (*domain.Assessment, error) {
	if err := s.RequireCaller(caller); err != nil {
		return nil, err
	}
	return s.load(ctx, assessmentID)
}

func (s *assessmentService) ListAssessmentsByProperty(ctx context.Context, caller domain.Caller, propertyID string, params dto.ListAssessmentsParams) ([]domain.Assessment, error) {
	if err := s.RequireCaller(caller); err != nil {
		return nil, err
	}
	items, err := s.assessmentRepo.ListAssessmentsByProperty(ctx, propertyID, params.FinancialYear)
	if err != nil {
		s.LogError(ctx, err, "Failed to list assessments", slog.String("property_id", propertyID))
		return nil, err
	}
	return items, nil
}

// approvedAncestor follows RevisionOf past rejected revisions and returns the
// approved assessment the chain hangs off, or nil when there is none.
func (s *assessmentService) approvedAncestor(ctx context.Context, a *domain.Assessment) (*domain.Assessment, error) {
	next := a.RevisionOf
	for next != nil {
		prev, err := s.assessmentRepo.FindAssessmentByID(ctx, *next)
		if err != nil {
			s.LogError(ctx, err, "Failed to load revised assessment", slog.String("revision_of", *next))
			return nil, err
		}
		switch prev.Status {
		case domain.AssessmentApproved:
			return prev, nil
		case domain.AssessmentRejected:
			next = prev.RevisionOf
		default:
			return nil, nil
		}
	}
	return nil, nil
}

func (s *assessmentService) load(ctx context.Context, assessmentID string) (*domain.Assessment, error) {
	a, err := s.assessmentRepo.FindAssessmentByID(ctx, assessmentID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to load assessment", slog.String("assessment_id", assessmentID))
		return nil, err
	}
	return a, nil
}

// loadOwned loads an assessment the caller may edit: their own, or any for an admin.
func (s *assessmentService) loadOwned(ctx context.Context, caller domain.Caller, assessmentID string) (*domain.Assessment, error) {
	a, err := s.load(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && a.AssessorID != caller.UserID {
		return nil, apperrors.NewForbiddenError("only the owning assessor or an admin may change this assessment")
	}
	return a, nil
}
