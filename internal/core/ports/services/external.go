package services

import (
	"context"
	"io"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
)

// NoticeNotifier delivers generated notices to downstream channels.
type NoticeNotifier interface {
	NotifyNotice(ctx context.Context, notice domain.Notice) error
}

// ProofStorage persists uploaded proof photos and returns a URL for them.
type ProofStorage interface {
	Save(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error)
}
