package services

import (
	"context"
	"io"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/SscSPs/municipal_tax_app/internal/dto"
)

// FieldVisitReaderSvc defines read operations for visits and follow-ups
type FieldVisitReaderSvc interface {
	ListVisitsByDemand(ctx context.Context, caller domain.Caller, demandID string) ([]domain.FieldVisit, error)
	GetFollowUp(ctx context.Context, caller domain.Caller, demandID, collectorID string) (*domain.FollowUp, error)
}

// FieldVisitWriterSvc records visits
type FieldVisitWriterSvc interface {
	// RecordVisit enforces the visit sequence, stores the visit and evaluates escalation.
	RecordVisit(ctx context.Context, caller domain.Caller, demandID string, req dto.RecordVisitRequest) (*domain.VisitRecord, error)

	// UploadProof stores a proof photo and returns its URL.
	UploadProof(ctx context.Context, caller domain.Caller, filename, contentType string, size int64, body io.Reader) (string, error)
}

// FieldVisitSvcFacade combines all field-visit service interfaces
type FieldVisitSvcFacade interface {
	FieldVisitReaderSvc
	FieldVisitWriterSvc
}
