package repositories

import (
	"context"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
)

// FieldVisitReader defines read operations for field visit data
type FieldVisitReader interface {
	// FindFollowUp retrieves the follow-up for a (demand, collector) pair.
	FindFollowUp(ctx context.Context, demandID, collectorID string) (*domain.FollowUp, error)

	// ListVisitsByDemand retrieves all visits on a demand, oldest first.
	ListVisitsByDemand(ctx context.Context, demandID string) ([]domain.FieldVisit, error)
}

// FieldVisitWriter defines write operations for field visit data
type FieldVisitWriter interface {
	// RecordVisit persists the visit, the advanced follow-up and any escalation notice in one
	// transaction. The follow-up write is guarded by record.ExpectedCount and fails with
	// ErrConflict when another visit was recorded first.
	RecordVisit(ctx context.Context, record domain.VisitRecord) (*domain.VisitRecord, error)
}

// FieldVisitRepositoryFacade combines all field visit repository interfaces
type FieldVisitRepositoryFacade interface {
	FieldVisitReader
	FieldVisitWriter
}
