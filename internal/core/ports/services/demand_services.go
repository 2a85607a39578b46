package services

import (
	"context"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/SscSPs/municipal_tax_app/internal/dto"
)

// DemandReaderSvc defines read operations for demands
type DemandReaderSvc interface {
	// GetDemandByID retrieves a demand with its status refreshed to now.
	GetDemandByID(ctx context.Context, caller domain.Caller, demandID string) (*domain.Demand, error)

	// ListDemandsByProperty retrieves a page of demands on a property.
	ListDemandsByProperty(ctx context.Context, caller domain.Caller, propertyID string, params dto.ListDemandsParams) (*dto.ListDemandsResponse, error)
}

// DemandGeneratorSvc produces demands from approved assessments
type DemandGeneratorSvc interface {
	// GenerateDemand bills one assessment or bundles a property's streams. Repeating a
	// generation returns the existing demand with AlreadyExisted set.
	GenerateDemand(ctx context.Context, caller domain.Caller, req dto.GenerateDemandRequest) (*domain.GenerationResult, error)

	// VoidDemand withdraws an unpaid demand and frees its streams for billing again.
	VoidDemand(ctx context.Context, caller domain.Caller, demandID string, reason string) (*domain.Demand, error)
}

// OverdueRefresherSvc recomputes overdue statuses in bulk
type OverdueRefresherSvc interface {
	RefreshOverdue(ctx context.Context, now time.Time) (int64, error)
}

// DemandSvcFacade combines all demand-related service interfaces
type DemandSvcFacade interface {
	DemandReaderSvc
	DemandGeneratorSvc
	OverdueRefresherSvc
}
