package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tariff carries the externally configured rates the core applies.
type Tariff struct {
	PenaltyRatePerMonth  decimal.Decimal // percent of base per 30 overdue days
	InterestRatePerAnnum decimal.Decimal // percent of base per 365 overdue days
	D2DCMonthlyFee       decimal.Decimal
	NoticeGracePeriod    time.Duration
}

var (
	hundred      = decimal.NewFromInt(100)
	daysPerMonth = decimal.NewFromInt(30)
	daysPerYear  = decimal.NewFromInt(365)
)

// OverdueDays counts whole days elapsed since dueDate, zero when not yet due.
func OverdueDays(dueDate, now time.Time) int64 {
	if !now.After(dueDate) {
		return 0
	}
	return int64(now.Sub(dueDate) / (24 * time.Hour))
}

// Charges computes the demand-level penalty and interest on base for the days overdue.
func (t Tariff) Charges(base decimal.Decimal, dueDate, now time.Time) (penalty, interest decimal.Decimal) {
	days := decimal.NewFromInt(OverdueDays(dueDate, now))
	if days.IsZero() || !base.IsPositive() {
		return decimal.Zero, decimal.Zero
	}
	penalty = base.Mul(t.PenaltyRatePerMonth).Div(hundred).Mul(days).Div(daysPerMonth).Round(2)
	interest = base.Mul(t.InterestRatePerAnnum).Div(hundred).Mul(days).Div(daysPerYear).Round(2)
	return penalty, interest
}
