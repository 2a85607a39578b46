package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/SscSPs/municipal_tax_app/internal/core/services"
	"github.com/SscSPs/municipal_tax_app/internal/platform/config"
	"github.com/SscSPs/municipal_tax_app/internal/platform/metrics"
	"github.com/SscSPs/municipal_tax_app/internal/repositories/database/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_RecordsMetrics(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	d := seedDemand(t, store, now.AddDate(0, 1, 0))

	m := metrics.New(prometheus.NewRegistry())
	svc := services.NewServiceContainer(&config.Config{}, store.Repositories(), services.Externals{},
		services.WithMetrics(m), services.WithClock(func() time.Time { return now }))

	_, updated, err := svc.Payment.ApplyPayment(ctx, cashier, d.DemandID, cash("250.75"))
	require.NoError(t, err)
	assert.Equal(t, "1249.25", updated.BalanceAmount.StringFixed(2))
	assert.Equal(t, domain.DemandPartiallyPaid, updated.Status)

	_, _, err = svc.Payment.ApplyPayment(ctx, cashier, d.DemandID, cash("5000"))
	require.ErrorIs(t, err, apperrors.ErrOverpayment)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaymentsApplied.WithLabelValues(string(domain.PaymentCash))))
	assert.InDelta(t, 250.75, testutil.ToFloat64(m.PaymentAmount), 1e-9)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaymentRejections.WithLabelValues("overpayment")))
}
