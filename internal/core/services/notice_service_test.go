package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/SscSPs/municipal_tax_app/internal/core/services"
	"github.com/SscSPs/municipal_tax_app/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedDemand(t *testing.T, store *memory.Store, due time.Time) *domain.Demand {
	t.Helper()
	d := domain.Demand{
		DemandID:      "d-1",
		ServiceType:   domain.HouseTax,
		PropertyID:    "prop-1",
		FinancialYear: "2024-25",
		DueDate:       due,
		Items:         []domain.DemandItem{{TaxType: domain.HouseTax, Amount: decimal.NewFromInt(1500), SubjectID: "prop-1"}},
	}
	d.Price(domain.Tariff{}, due.Add(-time.Hour))
	saved, created, err := store.CreateDemand(context.Background(), d)
	require.NoError(t, err)
	require.True(t, created)
	return saved
}

func TestNoticeService_NotifierFailureDoesNotFailIssue(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	d := seedDemand(t, store, now.AddDate(0, -1, 0))

	notifier := new(MockNoticeNotifier)
	notifier.On("NotifyNotice", mock.Anything, mock.MatchedBy(func(n domain.Notice) bool {
		return n.NoticeType == domain.NoticePenalty
	})).Return(errors.New("smtp unavailable")).Once()

	svc := services.NewNoticeService(store, store, notifier, 72*time.Hour, services.WithClock(func() time.Time { return now }))
	n, err := svc.IssueNotice(ctx, officer, d.DemandID, domain.NoticePenalty)

	require.NoError(t, err)
	assert.Equal(t, domain.NoticeGenerated, n.Status)
	assert.Equal(t, now.Add(72*time.Hour), n.DueDate)
	notifier.AssertExpectations(t)
}

func TestNoticeService_PlanEscalationOnlyForNonCompliantFinalWarning(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	d := seedDemand(t, store, now.AddDate(0, -1, 0))
	svc := services.NewNoticeService(store, store, nil, 0, services.WithClock(func() time.Time { return now }))

	cases := []struct {
		name     string
		visit    domain.FieldVisit
		expected bool
	}{
		{"warning refused", domain.FieldVisit{VisitID: "v-1", VisitType: domain.VisitWarning, CitizenResponse: domain.RefusedToPay}, false},
		{"final warning will pay", domain.FieldVisit{VisitID: "v-2", VisitType: domain.VisitFinalWarning, CitizenResponse: domain.WillPayToday}, false},
		{"final warning not available", domain.FieldVisit{VisitID: "v-3", VisitType: domain.VisitFinalWarning, CitizenResponse: domain.NotAvailable}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, escalates, err := svc.PlanEscalation(ctx, d, &tc.visit)
			require.NoError(t, err)
			assert.Nil(t, escalates)
			if tc.expected {
				require.NotNil(t, n)
				assert.Equal(t, domain.NoticeFinalWarrant, n.NoticeType)
				assert.Equal(t, tc.visit.VisitID, *n.TriggeredByVisitID)
			} else {
				assert.Nil(t, n)
			}
		})
	}
}

func TestNoticeService_NoEscalationOnPaidDemand(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	d := seedDemand(t, store, now.AddDate(0, -1, 0))
	d.BalanceAmount = decimal.Zero
	svc := services.NewNoticeService(store, store, nil, 0)

	n, _, err := svc.PlanEscalation(ctx, d, &domain.FieldVisit{VisitType: domain.VisitFinalWarning, CitizenResponse: domain.RefusedToPay})

	require.NoError(t, err)
	assert.Nil(t, n)
}
