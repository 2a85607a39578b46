package services

import (
	"context"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/SscSPs/municipal_tax_app/internal/dto"
)

// AssessmentReaderSvc defines read operations for assessments
type AssessmentReaderSvc interface {
	// GetAssessmentByID retrieves a specific assessment by its ID.
	GetAssessmentByID(ctx context.Context, caller domain.Caller, assessmentID string) (*domain.Assessment, error)

	// ListAssessmentsByProperty retrieves the assessments on a property.
	ListAssessmentsByProperty(ctx context.Context, caller domain.Caller, propertyID string, params dto.ListAssessmentsParams) ([]domain.Assessment, error)
}

// AssessmentWriterSvc defines the draft editing operations
type AssessmentWriterSvc interface {
	// CreateAssessment creates a draft owned by the caller.
	CreateAssessment(ctx context.Context, caller domain.Caller, req dto.CreateAssessmentRequest) (*domain.Assessment, error)

	// UpdateAssessment changes valuation inputs of a draft and recomputes its tax.
	UpdateAssessment(ctx context.Context, caller domain.Caller, assessmentID string, req dto.UpdateAssessmentRequest) (*domain.Assessment, error)

	// ReviseAssessment opens a new draft revision of an approved or rejected assessment.
	ReviseAssessment(ctx context.Context, caller domain.Caller, assessmentID string) (*domain.Assessment, error)
}

// AssessmentWorkflowSvc defines the draft → pending → approved/rejected transitions
type AssessmentWorkflowSvc interface {
	SubmitAssessment(ctx context.Context, caller domain.Caller, assessmentID string) (*domain.Assessment, error)
	ApproveAssessment(ctx context.Context, caller domain.Caller, assessmentID string) (*domain.Assessment, error)
	RejectAssessment(ctx context.Context, caller domain.Caller, assessmentID string, remarks string) (*domain.Assessment, error)
}

// AssessmentSvcFacade combines all assessment-related service interfaces
type AssessmentSvcFacade interface {
	AssessmentReaderSvc
	AssessmentWriterSvc
	AssessmentWorkflowSvc
}
