package notify

import (
	"context"
	"errors"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
)

// Multi fans a notice out to every channel and reports all failures together.
type Multi []portssvc.NoticeNotifier

func (m Multi) NotifyNotice(ctx context.Context, notice domain.Notice) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyNotice(ctx, notice); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
