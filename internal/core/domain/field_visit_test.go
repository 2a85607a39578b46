package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestExpectedVisitType(t *testing.T) {
	assert.Equal(t, domain.VisitReminder, domain.ExpectedVisitType(0))
	assert.Equal(t, domain.VisitPaymentCollection, domain.ExpectedVisitType(1))
	assert.Equal(t, domain.VisitWarning, domain.ExpectedVisitType(2))
	assert.Equal(t, domain.VisitFinalWarning, domain.ExpectedVisitType(3))
	assert.Equal(t, domain.VisitFinalWarning, domain.ExpectedVisitType(7))
}

func TestFollowUp_SequenceAndAdvance(t *testing.T) {
	now := time.Now()
	f := domain.NewFollowUp("f1", "d1", "collector-1")

	assert.ErrorIs(t, f.CheckSequence(domain.VisitWarning), apperrors.ErrSequenceViolation)

	for i, vt := range domain.VisitSequence {
		assert.NoError(t, f.CheckSequence(vt))
		f.Advance(vt, "collector-1", now)
		assert.Equal(t, i+1, f.VisitCount)
	}
	assert.Equal(t, domain.EscalationWatch, f.EscalationStatus)
	assert.ErrorIs(t, f.CheckSequence(domain.VisitReminder), apperrors.ErrSequenceViolation)
	assert.NoError(t, f.CheckSequence(domain.VisitFinalWarning))
}

func TestFollowUp_EscalationStatusProgression(t *testing.T) {
	now := time.Now()
	f := domain.NewFollowUp("f1", "d1", "c1")
	f.Advance(domain.VisitReminder, "c1", now)
	f.Advance(domain.VisitPaymentCollection, "c1", now)
	assert.Equal(t, domain.EscalationNormal, f.EscalationStatus)
	f.Advance(domain.VisitWarning, "c1", now)
	assert.Equal(t, domain.EscalationWatch, f.EscalationStatus)

	f.EscalationStatus = domain.EscalationEscalated
	f.Advance(domain.VisitFinalWarning, "c1", now)
	assert.Equal(t, domain.EscalationEscalated, f.EscalationStatus)
}

func TestFieldVisit_Validate(t *testing.T) {
	now := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)
	tests := []struct {
		name    string
		visit   domain.FieldVisit
		wantErr bool
	}{
		{"ok", domain.FieldVisit{CitizenResponse: domain.RefusedToPay, Remarks: "owner refused politely"}, false},
		{"short remarks", domain.FieldVisit{CitizenResponse: domain.NotAvailable, Remarks: "locked"}, true},
		{"multibyte remarks counted by rune", domain.FieldVisit{CitizenResponse: domain.NotAvailable, Remarks: "घर बंद था आज"}, false},
		{"later without date", domain.FieldVisit{CitizenResponse: domain.WillPayLater, Remarks: "promised next week"}, true},
		{"later with past date", domain.FieldVisit{CitizenResponse: domain.WillPayLater, Remarks: "promised next week", ExpectedPaymentDate: &now}, true},
		{"later with future date", domain.FieldVisit{CitizenResponse: domain.WillPayLater, Remarks: "promised next week", ExpectedPaymentDate: &tomorrow}, false},
		{"unknown response", domain.FieldVisit{CitizenResponse: "maybe", Remarks: "long enough remark"}, true},
		{"bad location", domain.FieldVisit{CitizenResponse: domain.WillPayToday, Remarks: "long enough remark", Location: &domain.GeoPoint{Latitude: 91}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.visit.Validate(now)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFieldVisit_TriggersEscalation(t *testing.T) {
	owing := &domain.Demand{BalanceAmount: dec("100")}
	settled := &domain.Demand{BalanceAmount: dec("0")}

	v := domain.FieldVisit{VisitType: domain.VisitFinalWarning, CitizenResponse: domain.RefusedToPay}
	assert.True(t, v.TriggersEscalation(owing))
	assert.False(t, v.TriggersEscalation(settled))

	v.CitizenResponse = domain.WillPayToday
	assert.False(t, v.TriggersEscalation(owing))

	v = domain.FieldVisit{VisitType: domain.VisitWarning, CitizenResponse: domain.NotAvailable}
	assert.False(t, v.TriggersEscalation(owing))
}
