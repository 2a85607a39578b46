package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
	"github.com/SscSPs/municipal_tax_app/internal/platform/config"
	"gopkg.in/gomail.v2"
)

var _ portssvc.NoticeNotifier = (*EmailNotifier)(nil)

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier mails a copy of every generated notice to the revenue office.
type EmailNotifier struct {
	sender mailSender
	from   string
	to     []string
}

func NewEmailNotifier(cfg config.SMTPConfig) *EmailNotifier {
	return newEmailNotifier(gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password), cfg.From, cfg.NoticeTo)
}

func newEmailNotifier(sender mailSender, from string, to []string) *EmailNotifier {
	return &EmailNotifier{sender: sender, from: from, to: to}
}

func (n *EmailNotifier) NotifyNotice(ctx context.Context, notice domain.Notice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to...)
	m.SetHeader("Subject", noticeSubject(notice))
	m.SetBody("text/plain", noticeBody(notice))
	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to mail notice %s: %w", notice.NoticeNumber, err)
	}
	return nil
}

func noticeSubject(notice domain.Notice) string {
	title := strings.ReplaceAll(string(notice.NoticeType), "_", " ")
	return fmt.Sprintf("%s notice %s for property %s", strings.ToUpper(title[:1])+title[1:], notice.NoticeNumber, notice.PropertyID)
}

func noticeBody(notice domain.Notice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Notice number: %s\n", notice.NoticeNumber)
	fmt.Fprintf(&b, "Property: %s\n", notice.PropertyID)
	fmt.Fprintf(&b, "Financial year: %s\n", notice.FinancialYear)
	fmt.Fprintf(&b, "Amount due: %s\n", notice.AmountDue.StringFixed(2))
	if notice.PenaltyAmount.IsPositive() {
		fmt.Fprintf(&b, "Penalty included: %s\n", notice.PenaltyAmount.StringFixed(2))
	}
	fmt.Fprintf(&b, "Pay by: %s\n", notice.DueDate.Format("02 Jan 2006"))
	if notice.TriggeredByVisitID != nil {
		fmt.Fprintf(&b, "Issued after field visit %s\n", *notice.TriggeredByVisitID)
	}
	return b.String()
}
