package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
)

// NoticeReader defines read operations for notice data
type NoticeReader interface {
	// FindNoticeByID retrieves a specific notice by its unique identifier.
	FindNoticeByID(ctx context.Context, noticeID string) (*domain.Notice, error)

	// ListNoticesByDemand retrieves all notices on a demand, oldest first.
	ListNoticesByDemand(ctx context.Context, demandID string) ([]domain.Notice, error)
}

// NoticeWriter defines write operations for notice data
type NoticeWriter interface {
	// CreateNotice assigns the notice number and inserts the notice. When escalates is set,
	// that notice is moved to escalated in the same transaction.
	CreateNotice(ctx context.Context, notice domain.Notice, escalates *string) (*domain.Notice, error)

	// UpdateNoticeStatus moves a notice from one status to another, failing with
	// ErrInvalidState when the stored status is no longer from.
	UpdateNoticeStatus(ctx context.Context, noticeID string, from, to domain.NoticeStatus, userID string, at time.Time) error

	// ResolveOpenNotices marks every open notice on a demand resolved and returns them.
	ResolveOpenNotices(ctx context.Context, demandID, userID string, at time.Time) ([]domain.Notice, error)
}

// NoticeRepositoryFacade combines all notice-related repository interfaces
type NoticeRepositoryFacade interface {
	NoticeReader
	NoticeWriter
}
