package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
)

// AssessmentReader defines read operations for assessment data
type AssessmentReader interface {
	// FindAssessmentByID retrieves a specific assessment by its unique identifier.
	FindAssessmentByID(ctx context.Context, assessmentID string) (*domain.Assessment, error)

	// ListAssessmentsByProperty retrieves every assessment on a property, optionally narrowed to one financial year.
	ListAssessmentsByProperty(ctx context.Context, propertyID string, financialYear *string) ([]domain.Assessment, error)

	// FindBillableAssessments retrieves approved, non-superseded assessments of one service type
	// for a property and financial year, latest revision first.
	FindBillableAssessments(ctx context.Context, propertyID, financialYear string, serviceType domain.AssessmentServiceType) ([]domain.Assessment, error)
}

// AssessmentWriter defines write operations for assessment data
type AssessmentWriter interface {
	// CreateAssessment inserts a draft assessment and assigns its assessment number.
	CreateAssessment(ctx context.Context, assessment domain.Assessment) (*domain.Assessment, error)

	// UpdateAssessmentValuation rewrites valuation fields of a draft. It fails with
	// ErrImmutableState when the stored assessment is no longer a draft.
	UpdateAssessmentValuation(ctx context.Context, assessment domain.Assessment) error

	// SubmitAssessment moves a draft to pending. When supersedes is set, that approved
	// predecessor is marked superseded in the same transaction. A clash with another
	// active assessment yields ErrDuplicateActiveAssessment.
	SubmitAssessment(ctx context.Context, assessment domain.Assessment, supersedes *string) error

	// ApproveAssessment moves a pending assessment to approved.
	ApproveAssessment(ctx context.Context, assessment domain.Assessment) error

	// RejectAssessment moves a pending assessment to rejected. When restores is set, the
	// superseded predecessor becomes active again in the same transaction.
	RejectAssessment(ctx context.Context, assessment domain.Assessment, restores *string, restoredAt time.Time) error
}

// AssessmentRepositoryFacade combines all assessment-related repository interfaces
type AssessmentRepositoryFacade interface {
	AssessmentReader
	AssessmentWriter
}
