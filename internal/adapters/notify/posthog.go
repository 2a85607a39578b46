// Package notify delivers generated notices to the channels configured at startup.
package notify

import (
	"context"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
	utils "github.com/SscSPs/municipal_tax_app/internal/utils"
)

const noticeGeneratedEvent = "notice_generated"

var _ portssvc.NoticeNotifier = (*PosthogNotifier)(nil)

// PosthogNotifier records each generated notice as a product-analytics event keyed by property.
type PosthogNotifier struct {
	client *utils.PosthogClientWrapper
}

func NewPosthogNotifier(client *utils.PosthogClientWrapper) *PosthogNotifier {
	return &PosthogNotifier{client: client}
}

func (n *PosthogNotifier) NotifyNotice(_ context.Context, notice domain.Notice) error {
	props := map[string]any{
		"notice_id":      notice.NoticeID,
		"notice_number":  notice.NoticeNumber,
		"notice_type":    string(notice.NoticeType),
		"demand_id":      notice.DemandID,
		"financial_year": notice.FinancialYear,
		"amount_due":     notice.AmountDue.StringFixed(2),
		"due_date":       notice.DueDate.Format("2006-01-02"),
	}
	if notice.TriggeredByVisitID != nil {
		props["visit_id"] = *notice.TriggeredByVisitID
	}
	return n.client.Enqueue(notice.PropertyID, noticeGeneratedEvent, props)
}
