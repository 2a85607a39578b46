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

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func stringPtr(s string) *string {
	return &s
}

func TestAssessment_ApplyValuation(t *testing.T) {
	tests := []struct {
		name       string
		svc        domain.AssessmentServiceType
		valuation  domain.Valuation
		wantNet    string
		wantAnnual string
		wantErr    error
	}{
		{
			name:       "plain property assessment",
			svc:        domain.AssessmentProperty,
			valuation:  domain.Valuation{AssessedValue: dec("100000"), TaxRate: dec("1.5")},
			wantNet:    "100000",
			wantAnnual: "1500",
		},
		{
			name:       "assessed value defaults to land plus building",
			svc:        domain.AssessmentProperty,
			valuation:  domain.Valuation{LandValue: dec("60000"), BuildingValue: dec("40000"), Depreciation: dec("10000"), TaxRate: dec("2")},
			wantNet:    "90000",
			wantAnnual: "1800",
		},
		{
			name:       "exemption and depreciation reduce net",
			svc:        domain.AssessmentWater,
			valuation:  domain.Valuation{AssessedValue: dec("5000"), Depreciation: dec("500"), ExemptionAmount: dec("500"), TaxRate: dec("12.5")},
			wantNet:    "4000",
			wantAnnual: "500",
		},
		{
			name:      "negative net is rejected",
			svc:       domain.AssessmentShop,
			valuation: domain.Valuation{AssessedValue: dec("1000"), ExemptionAmount: dec("1500"), TaxRate: dec("3")},
			wantErr:   apperrors.ErrValidation,
		},
		{
			name:      "negative rate is rejected",
			svc:       domain.AssessmentShop,
			valuation: domain.Valuation{AssessedValue: dec("1000"), TaxRate: dec("-1")},
			wantErr:   apperrors.ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := domain.Assessment{ServiceType: tt.svc}
			err := a.ApplyValuation(tt.valuation)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, dec(tt.wantNet).Equal(a.NetAssessedValue), "net: %s", a.NetAssessedValue)
			assert.True(t, dec(tt.wantAnnual).Equal(a.AnnualTaxAmount), "annual: %s", a.AnnualTaxAmount)
		})
	}
}

func TestAssessment_Workflow(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	a := domain.Assessment{AssessmentNumber: "ASMT/2024-25/000001", Status: domain.AssessmentDraft}

	assert.ErrorIs(t, a.Approve("admin-1", now), apperrors.ErrInvalidState)

	require.NoError(t, a.Submit("assessor-1", now))
	assert.Equal(t, domain.AssessmentPending, a.Status)
	assert.ErrorIs(t, a.Submit("assessor-1", now), apperrors.ErrInvalidState)
	assert.ErrorIs(t, a.EnsureEditable(), apperrors.ErrImmutableState)

	assert.ErrorIs(t, a.Reject("admin-1", "", now), apperrors.ErrValidation)

	require.NoError(t, a.Approve("admin-1", now))
	assert.Equal(t, domain.AssessmentApproved, a.Status)
	require.NotNil(t, a.ApproverID)
	assert.Equal(t, "admin-1", *a.ApproverID)
	assert.Equal(t, now, *a.ApprovalDate)
	assert.ErrorIs(t, a.Reject("admin-1", "late objection", now), apperrors.ErrInvalidState)
}

func TestAssessment_NewRevision(t *testing.T) {
	now := time.Now()
	draft := domain.Assessment{AssessmentID: "a1", Status: domain.AssessmentDraft, RevisionNumber: 1}
	_, err := draft.NewRevision("a2", "assessor-1", now)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	rejected := domain.Assessment{
		AssessmentID:   "a1",
		ServiceType:    domain.AssessmentProperty,
		PropertyID:     "p1",
		Status:         domain.AssessmentRejected,
		RevisionNumber: 1,
		Valuation:      domain.Valuation{AssessedValue: dec("1000"), TaxRate: dec("1")},
	}
	rev, err := rejected.NewRevision("a2", "assessor-2", now)
	require.NoError(t, err)
	assert.Equal(t, domain.AssessmentDraft, rev.Status)
	assert.Equal(t, 2, rev.RevisionNumber)
	assert.Equal(t, "a1", *rev.RevisionOf)
	assert.Equal(t, "assessor-2", rev.AssessorID)
	assert.True(t, rev.AssessedValue.Equal(dec("1000")))
}

func TestLatestRevisionNumber(t *testing.T) {
	conn := "conn-1"
	house := domain.Assessment{ServiceType: domain.AssessmentProperty, PropertyID: "p1", AssessmentYear: 2024}
	all := []domain.Assessment{
		{ServiceType: domain.AssessmentProperty, PropertyID: "p1", AssessmentYear: 2024, RevisionNumber: 1},
		{ServiceType: domain.AssessmentProperty, PropertyID: "p1", AssessmentYear: 2024, RevisionNumber: 3},
		{ServiceType: domain.AssessmentProperty, PropertyID: "p1", AssessmentYear: 2023, RevisionNumber: 5},
		{ServiceType: domain.AssessmentWater, PropertyID: "p1", WaterConnectionID: &conn, AssessmentYear: 2024, RevisionNumber: 9},
	}

	assert.Equal(t, 3, domain.LatestRevisionNumber(all, house.ActiveKey()))
	assert.Equal(t, 0, domain.LatestRevisionNumber(nil, house.ActiveKey()))
}

func TestAssessment_ValidateSubject(t *testing.T) {
	tests := []struct {
		name    string
		a       domain.Assessment
		wantErr bool
	}{
		{"property ok", domain.Assessment{ServiceType: domain.AssessmentProperty, PropertyID: "p1"}, false},
		{"water needs connection", domain.Assessment{ServiceType: domain.AssessmentWater, PropertyID: "p1"}, true},
		{"water ok", domain.Assessment{ServiceType: domain.AssessmentWater, PropertyID: "p1", WaterConnectionID: stringPtr("c1")}, false},
		{"shop with connection", domain.Assessment{ServiceType: domain.AssessmentShop, PropertyID: "p1", ShopID: stringPtr("s1"), WaterConnectionID: stringPtr("c1")}, true},
		{"missing property", domain.Assessment{ServiceType: domain.AssessmentShop, ShopID: stringPtr("s1")}, true},
		{"unknown type", domain.Assessment{ServiceType: "land", PropertyID: "p1"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.a.ValidateSubject()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAssessment_IsActive(t *testing.T) {
	now := time.Now()
	assert.False(t, (&domain.Assessment{Status: domain.AssessmentDraft}).IsActive())
	assert.True(t, (&domain.Assessment{Status: domain.AssessmentPending}).IsActive())
	assert.True(t, (&domain.Assessment{Status: domain.AssessmentApproved}).IsActive())
	assert.False(t, (&domain.Assessment{Status: domain.AssessmentApproved, SupersededAt: &now}).IsActive())
	assert.False(t, (&domain.Assessment{Status: domain.AssessmentRejected}).IsActive())
}
