package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
)

// DemandReader defines read operations for demand data
type DemandReader interface {
	// FindDemandByID retrieves a specific demand by its unique identifier.
	FindDemandByID(ctx context.Context, demandID string) (*domain.Demand, error)

	// ListDemandsByProperty retrieves a paginated list of demands on a property using token-based pagination.
	// It returns the demands, a token for the next page, and an error.
	ListDemandsByProperty(ctx context.Context, propertyID string, limit int, nextToken *string) ([]domain.Demand, *string, error)
}

// DemandWriter defines write operations for demand data
type DemandWriter interface {
	// CreateDemand claims the demand's billing keys and inserts it in one transaction.
	// When any key is already held by a live demand nothing is written and that demand
	// is returned with created == false.
	CreateDemand(ctx context.Context, demand domain.Demand) (result *domain.Demand, created bool, err error)

	// VoidDemand marks an unpaid demand voided and releases its billing keys.
	VoidDemand(ctx context.Context, demandID, reason, userID string, at time.Time) (*domain.Demand, error)

	// RefreshOverdueStatuses sets status to overdue on every live demand with a balance past its due date.
	RefreshOverdueStatuses(ctx context.Context, now time.Time) (int64, error)
}

// DemandRepositoryFacade combines all demand-related repository interfaces
type DemandRepositoryFacade interface {
	DemandReader
	DemandWriter
}
