package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveDemandStatus(t *testing.T) {
	due := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	before := due.Add(-24 * time.Hour)
	after := due.Add(24 * time.Hour)
	tests := []struct {
		name                 string
		total, paid, balance string
		now                  time.Time
		want                 domain.DemandStatus
	}{
		{"untouched", "2500", "0", "2500", before, domain.DemandPending},
		{"part paid", "2500", "1000", "1500", before, domain.DemandPartiallyPaid},
		{"fully paid", "2500", "2500", "0", after, domain.DemandPaid},
		{"overdue beats partial", "2500", "1000", "1500", after, domain.DemandOverdue},
		{"overdue untouched", "2500", "0", "2500", after, domain.DemandOverdue},
		{"on due date is not overdue", "2500", "0", "2500", due, domain.DemandPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DeriveDemandStatus(dec(tt.total), dec(tt.paid), dec(tt.balance), due, tt.now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDemand_PriceAndPay(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	d := domain.Demand{
		DemandNumber: "DMD/2024-25/000001",
		DueDate:      now.AddDate(0, 1, 0),
		Items: []domain.DemandItem{
			{TaxType: domain.HouseTax, Amount: dec("1500")},
			{TaxType: domain.WaterTax, Amount: dec("600"), SubjectID: "c1"},
			{TaxType: domain.WaterTax, Amount: dec("400"), SubjectID: "c2"},
		},
	}
	d.Price(domain.Tariff{PenaltyRatePerMonth: dec("2"), InterestRatePerAnnum: dec("12")}, now)

	assert.True(t, d.BaseAmount.Equal(dec("2500")))
	assert.True(t, d.PenaltyAmount.IsZero())
	assert.True(t, d.TotalAmount.Equal(dec("2500")))
	assert.Equal(t, domain.DemandPending, d.Status)

	require.NoError(t, d.ApplyPayment(dec("1000"), "cashier-1", now))
	assert.True(t, d.BalanceAmount.Equal(dec("1500")))
	assert.Equal(t, domain.DemandPartiallyPaid, d.Status)
	require.NoError(t, d.CheckBalance())

	err := d.ApplyPayment(dec("1500.01"), "cashier-1", now)
	assert.ErrorIs(t, err, apperrors.ErrOverpayment)
	assert.True(t, d.PaidAmount.Equal(dec("1000")))

	assert.ErrorIs(t, d.ApplyPayment(decimal.Zero, "cashier-1", now), apperrors.ErrValidation)

	require.NoError(t, d.ApplyPayment(dec("1500"), "cashier-1", now))
	assert.True(t, d.BalanceAmount.IsZero())
	assert.Equal(t, domain.DemandPaid, d.Status)
	require.NoError(t, d.CheckBalance())
}

func TestDemand_BillingKeys(t *testing.T) {
	d := domain.Demand{
		PropertyID:    "p1",
		FinancialYear: "2024-25",
		Items: []domain.DemandItem{
			{TaxType: domain.HouseTax, SubjectID: "p1"},
			{TaxType: domain.WaterTax, SubjectID: "c1"},
		},
	}
	keys := d.BillingKeys()
	require.Len(t, keys, 2)
	assert.Equal(t, domain.BillingKey{PropertyID: "p1", FinancialYear: "2024-25", ServiceType: domain.HouseTax, SubjectID: "p1"}, keys[0])
	assert.Equal(t, "p1|2024-25|WATER_TAX|c1", keys[1].String())
}

func TestTariff_Charges(t *testing.T) {
	tariff := domain.Tariff{PenaltyRatePerMonth: dec("2"), InterestRatePerAnnum: dec("18")}
	due := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	p, i := tariff.Charges(dec("1000"), due, due.Add(-time.Hour))
	assert.True(t, p.IsZero())
	assert.True(t, i.IsZero())

	p, i = tariff.Charges(dec("1000"), due, due.AddDate(0, 0, 60))
	assert.True(t, dec("40").Equal(p), "penalty: %s", p)
	assert.True(t, dec("29.59").Equal(i), "interest: %s", i)

	assert.Equal(t, int64(0), domain.OverdueDays(due, due.Add(23*time.Hour)))
	assert.Equal(t, int64(1), domain.OverdueDays(due, due.Add(25*time.Hour)))
}

func TestFinancialYear(t *testing.T) {
	start, err := domain.ParseFinancialYear("2024-25")
	require.NoError(t, err)
	assert.Equal(t, 2024, start)

	_, err = domain.ParseFinancialYear("2024-26")
	assert.Error(t, err)
	_, err = domain.ParseFinancialYear("2024/25")
	assert.Error(t, err)
	start, err = domain.ParseFinancialYear("1999-00")
	require.NoError(t, err)
	assert.Equal(t, 1999, start)

	assert.Equal(t, "2023-24", domain.FinancialYearOf(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-25", domain.FinancialYearOf(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
}
