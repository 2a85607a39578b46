package services_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
	"github.com/SscSPs/municipal_tax_app/internal/core/services"
	"github.com/SscSPs/municipal_tax_app/internal/dto"
	"github.com/SscSPs/municipal_tax_app/internal/platform/config"
	"github.com/SscSPs/municipal_tax_app/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	officer   = domain.Caller{UserID: "officer-1", Role: domain.RoleOfficer}
	collector = domain.Caller{UserID: "collector-1", Role: domain.RoleFieldCollector}
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []domain.Notice
}

func (n *recordingNotifier) NotifyNotice(_ context.Context, notice domain.Notice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	return nil
}

func (n *recordingNotifier) types() []domain.NoticeType {
	n.mu.Lock()
	defer n.mu.Unlock()
	res := make([]domain.NoticeType, 0, len(n.notices))
	for _, x := range n.notices {
		res = append(res, x.NoticeType)
	}
	return res
}

type lifecycle struct {
	ctx      context.Context
	clock    *testClock
	notifier *recordingNotifier
	svc      *portssvc.ServiceContainer
}

func newLifecycle(t *testing.T) *lifecycle {
	t.Helper()
	clock := &testClock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	notifier := &recordingNotifier{}
	cfg := &config.Config{
		Tariff: domain.Tariff{
			PenaltyRatePerMonth:  decimal.NewFromInt(2),
			InterestRatePerAnnum: decimal.NewFromInt(12),
			D2DCMonthlyFee:       decimal.NewFromInt(60),
			NoticeGracePeriod:    15 * 24 * time.Hour,
		},
		MaxProofSize: 1 << 20,
	}
	store := memory.NewStore()
	svc := services.NewServiceContainer(cfg, store.Repositories(), services.Externals{Notifier: notifier}, services.WithClock(clock.Now))
	return &lifecycle{ctx: context.Background(), clock: clock, notifier: notifier, svc: svc}
}

func (l *lifecycle) approve(t *testing.T, req dto.CreateAssessmentRequest) *domain.Assessment {
	t.Helper()
	a, err := l.svc.Assessment.CreateAssessment(l.ctx, assessor, req)
	require.NoError(t, err)
	_, err = l.svc.Assessment.SubmitAssessment(l.ctx, assessor, a.AssessmentID)
	require.NoError(t, err)
	a, err = l.svc.Assessment.ApproveAssessment(l.ctx, admin, a.AssessmentID)
	require.NoError(t, err)
	return a
}

func houseReq(value int64, rate string) dto.CreateAssessmentRequest {
	return dto.CreateAssessmentRequest{
		ServiceType:    domain.AssessmentProperty,
		PropertyID:     "prop-1",
		AssessmentYear: 2024,
		FinancialYear:  "2024-25",
		AssessedValue:  decimal.NewFromInt(value),
		TaxRate:        decimal.RequireFromString(rate),
	}
}

func subjectReq(serviceType domain.AssessmentServiceType, subject string, value int64, rate string) dto.CreateAssessmentRequest {
	req := houseReq(value, rate)
	req.ServiceType = serviceType
	if serviceType == domain.AssessmentWater {
		req.WaterConnectionID = &subject
	} else {
		req.ShopID = &subject
	}
	return req
}

func (l *lifecycle) unified(dueIn time.Duration) dto.GenerateDemandRequest {
	return dto.GenerateDemandRequest{
		Mode:            domain.GenerateUnified,
		PropertyID:      "prop-1",
		FinancialYear:   "2024-25",
		DueDate:         l.clock.Now().Add(dueIn),
		IncludeHouseTax: true,
		IncludeWaterTax: true,
	}
}

func cash(amount string) dto.ApplyPaymentRequest {
	return dto.ApplyPaymentRequest{Amount: decimal.RequireFromString(amount), PaymentMode: domain.PaymentCash}
}

func TestLifecycle_AssessmentComputesAnnualTax(t *testing.T) {
	l := newLifecycle(t)

	a := l.approve(t, houseReq(100000, "1.5"))

	assert.Equal(t, "1500.00", a.AnnualTaxAmount.StringFixed(2))
	assert.Equal(t, domain.AssessmentApproved, a.Status)
}

func TestLifecycle_UnifiedDemandPaidInTwoInstallments(t *testing.T) {
	l := newLifecycle(t)
	l.approve(t, houseReq(100000, "1.5"))
	l.approve(t, subjectReq(domain.AssessmentWater, "conn-1", 40000, "1.5"))
	l.approve(t, subjectReq(domain.AssessmentWater, "conn-2", 40000, "1"))

	res, err := l.svc.Demand.GenerateDemand(l.ctx, clerk, l.unified(30*24*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, res.Demand)
	d := res.Demand
	assert.False(t, res.AlreadyExisted)
	assert.Equal(t, domain.HouseTax, d.ServiceType)
	assert.Len(t, d.Items, 3)
	assert.Equal(t, "2500.00", d.TotalAmount.StringFixed(2))
	assert.NotNil(t, d.UnifiedGroupID)

	_, d, err = l.svc.Payment.ApplyPayment(l.ctx, cashier, d.DemandID, cash("1000"))
	require.NoError(t, err)
	assert.Equal(t, "1500.00", d.BalanceAmount.StringFixed(2))
	assert.Equal(t, domain.DemandPartiallyPaid, d.Status)

	reminder, err := l.svc.Notice.IssueNotice(l.ctx, officer, d.DemandID, domain.NoticeReminder)
	require.NoError(t, err)
	assert.Equal(t, "1500.00", reminder.AmountDue.StringFixed(2))

	p, d, err := l.svc.Payment.ApplyPayment(l.ctx, cashier, d.DemandID, cash("1500"))
	require.NoError(t, err)
	assert.Equal(t, "RCT/2024-25/000002", p.ReceiptNumber)
	assert.True(t, d.BalanceAmount.IsZero())
	assert.Equal(t, domain.DemandPaid, d.Status)

	notices, err := l.svc.Notice.ListNoticesByDemand(l.ctx, officer, d.DemandID)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, domain.NoticeResolved, notices[0].Status)
	assert.NotNil(t, notices[0].ResolvedAt)

	payments, err := l.svc.Payment.ListPaymentsByDemand(l.ctx, cashier, d.DemandID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestLifecycle_GenerationIsIdempotent(t *testing.T) {
	l := newLifecycle(t)
	house := l.approve(t, houseReq(100000, "1.5"))
	l.approve(t, subjectReq(domain.AssessmentWater, "conn-1", 40000, "1.5"))

	first, err := l.svc.Demand.GenerateDemand(l.ctx, clerk, l.unified(30*24*time.Hour))
	require.NoError(t, err)

	again, err := l.svc.Demand.GenerateDemand(l.ctx, clerk, l.unified(30*24*time.Hour))
	require.NoError(t, err)
	assert.True(t, again.AlreadyExisted)
	assert.Equal(t, first.Demand.DemandID, again.Demand.DemandID)

	// The house stream is already billed by the unified demand.
	single, err := l.svc.Demand.GenerateDemand(l.ctx, clerk, dto.GenerateDemandRequest{
		Mode:         domain.GenerateSingle,
		AssessmentID: house.AssessmentID,
		DueDate:      l.clock.Now().Add(30 * 24 * time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, single.AlreadyExisted)
	assert.Equal(t, first.Demand.DemandID, single.Demand.DemandID)

	list, err := l.svc.Demand.ListDemandsByProperty(l.ctx, clerk, "prop-1", dto.ListDemandsParams{Limit: 20})
	require.NoError(t, err)
	assert.Len(t, list.Demands, 1)
}

func TestLifecycle_UnifiedBillsStreamsNotYetBilled(t *testing.T) {
	l := newLifecycle(t)
	l.approve(t, houseReq(100000, "1.5"))
	conn1 := l.approve(t, subjectReq(domain.AssessmentWater, "conn-1", 40000, "1.5"))
	l.approve(t, subjectReq(domain.AssessmentWater, "conn-2", 40000, "1"))

	single, err := l.svc.Demand.GenerateDemand(l.ctx, clerk, dto.GenerateDemandRequest{
		Mode:         domain.GenerateSingle,
		AssessmentID: conn1.AssessmentID,
		DueDate:      l.clock.Now().Add(30 * 24 * time.Hour),
	})
	require.NoError(t, err)
	require.False(t, single.AlreadyExisted)

	res, err := l.svc.Demand.GenerateDemand(l.ctx, clerk, l.unified(30*24*time.Hour))
	require.NoError(t, err)
	assert.False(t, res.AlreadyExisted)
	require.NotNil(t, res.Demand)
	assert.NotEqual(t, single.Demand.DemandID, res.Demand.DemandID)
	assert.Equal(t, domain.HouseTax, res.Demand.ServiceType)
	assert.Len(t, res.Demand.Items, 2)
	assert.Equal(t, "1900.00", res.Demand.TotalAmount.StringFixed(2))

	require.Len(t, res.Siblings, 1)
	held := res.Siblings[0]
	assert.Equal(t, domain.WaterTax, held.ServiceType)
	assert.Equal(t, "conn-1", held.SubjectID)
	assert.True(t, held.AlreadyExisted)
	require.NotNil(t, held.Demand)
	assert.Equal(t, single.Demand.DemandID, held.Demand.DemandID)

	again, err := l.svc.Demand.GenerateDemand(l.ctx, clerk, l.unified(30*24*time.Hour))
	require.NoError(t, err)
	assert.True(t, again.AlreadyExisted)
	assert.Equal(t, res.Demand.DemandID, again.Demand.DemandID)
	require.Len(t, again.Siblings, 1)
	assert.Equal(t, single.Demand.DemandID, again.Siblings[0].Demand.DemandID)

	list, err := l.svc.Demand.ListDemandsByProperty(l.ctx, clerk, "prop-1", dto.ListDemandsParams{Limit: 20})
	require.NoError(t, err)
	assert.Len(t, list.Demands, 2)
}

func TestLifecycle_UnifiedSiblings(t *testing.T) {
	l := newLifecycle(t)
	l.approve(t, houseReq(100000, "1.5"))
	l.approve(t, subjectReq(domain.AssessmentShop, "shop-1", 20000, "2"))
	l.approve(t, subjectReq(domain.AssessmentShop, "shop-2", 10000, "2"))

	req := l.unified(30 * 24 * time.Hour)
	req.IncludeWaterTax = false
	req.IncludeShopDemands = true
	req.IncludeD2DC = true

	res, err := l.svc.Demand.GenerateDemand(l.ctx, clerk, req)
	require.NoError(t, err)
	require.NotNil(t, res.Demand)
	require.Len(t, res.Siblings, 3)
	for _, sib := range res.Siblings {
		require.NoError(t, sib.Error)
		require.NotNil(t, sib.Demand)
		assert.False(t, sib.AlreadyExisted)
		assert.Equal(t, *res.Demand.UnifiedGroupID, *sib.Demand.UnifiedGroupID)
	}
	assert.Equal(t, domain.ShopTax, res.Siblings[0].ServiceType)
	assert.Equal(t, domain.D2DC, res.Siblings[2].ServiceType)
	assert.Equal(t, "2024-07", res.Siblings[2].SubjectID)
	assert.Equal(t, "60.00", res.Siblings[2].Demand.TotalAmount.StringFixed(2))

	again, err := l.svc.Demand.GenerateDemand(l.ctx, clerk, req)
	require.NoError(t, err)
	assert.True(t, again.AlreadyExisted)
	for _, sib := range again.Siblings {
		assert.True(t, sib.AlreadyExisted)
	}
}

func TestLifecycle_UnifiedWithoutApprovalCreatesNothing(t *testing.T) {
	l := newLifecycle(t)
	l.approve(t, houseReq(100000, "1.5"))

	_, err := l.svc.Demand.GenerateDemand(l.ctx, clerk, l.unified(30*24*time.Hour))
	require.ErrorIs(t, err, apperrors.ErrNoApprovedAssessment)

	list, err := l.svc.Demand.ListDemandsByProperty(l.ctx, clerk, "prop-1", dto.ListDemandsParams{Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, list.Demands)
}

func TestLifecycle_OverpaymentRejected(t *testing.T) {
	l := newLifecycle(t)
	l.approve(t, houseReq(100000, "1.5"))
	req := l.unified(30 * 24 * time.Hour)
	req.IncludeWaterTax = false
	res, err := l.svc.Demand.GenerateDemand(l.ctx, clerk, req)
	require.NoError(t, err)

	_, _, err = l.svc.Payment.ApplyPayment(l.ctx, cashier, res.Demand.DemandID, cash("1500.01"))
	require.ErrorIs(t, err, apperrors.ErrOverpayment)
	assert.Equal(t, 422, apperrors.StatusOf(err))

	d, err := l.svc.Demand.GetDemandByID(l.ctx, cashier, res.Demand.DemandID)
	require.NoError(t, err)
	assert.Equal(t, "1500.00", d.BalanceAmount.StringFixed(2))
}

func TestLifecycle_ConcurrentPaymentsNeverOverpay(t *testing.T) {
	l := newLifecycle(t)
	l.approve(t, houseReq(100000, "1.5"))
	req := l.unified(30 * 24 * time.Hour)
	req.IncludeWaterTax = false
	res, err := l.svc.Demand.GenerateDemand(l.ctx, clerk, req)
	require.NoError(t, err)

	var ok, rejected int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := l.svc.Payment.ApplyPayment(l.ctx, cashier, res.Demand.DemandID, cash("500"))
			if err == nil {
				atomic.AddInt32(&ok, 1)
			} else if assert.ErrorIs(t, err, apperrors.ErrOverpayment) {
				atomic.AddInt32(&rejected, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(3), ok)
	assert.Equal(t, int32(5), rejected)
	d, err := l.svc.Demand.GetDemandByID(l.ctx, cashier, res.Demand.DemandID)
	require.NoError(t, err)
	assert.True(t, d.BalanceAmount.IsZero())
	assert.NoError(t, d.CheckBalance())
}

func TestLifecycle_VoidReleasesBillingKeys(t *testing.T) {
	l := newLifecycle(t)
	house := l.approve(t, houseReq(100000, "1.5"))
	single := dto.GenerateDemandRequest{
		Mode:         domain.GenerateSingle,
		AssessmentID: house.AssessmentID,
		DueDate:      l.clock.Now().Add(30 * 24 * time.Hour),
	}
	first, err := l.svc.Demand.GenerateDemand(l.ctx, clerk, single)
	require.NoError(t, err)

	voided, err := l.svc.Demand.VoidDemand(l.ctx, admin, first.Demand.DemandID, "raised against wrong owner")
	require.NoError(t, err)
	assert.True(t, voided.IsVoided())

	_, _, err = l.svc.Payment.ApplyPayment(l.ctx, cashier, first.Demand.DemandID, cash("10"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	second, err := l.svc.Demand.GenerateDemand(l.ctx, clerk, single)
	require.NoError(t, err)
	assert.False(t, second.AlreadyExisted)
	assert.NotEqual(t, first.Demand.DemandID, second.Demand.DemandID)

	_, _, err = l.svc.Payment.ApplyPayment(l.ctx, cashier, second.Demand.DemandID, cash("10"))
	require.NoError(t, err)
	_, err = l.svc.Demand.VoidDemand(l.ctx, admin, second.Demand.DemandID, "paid demands stay")
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestLifecycle_OverdueSweep(t *testing.T) {
	l := newLifecycle(t)
	l.approve(t, houseReq(100000, "1.5"))
	req := l.unified(24 * time.Hour)
	req.IncludeWaterTax = false
	res, err := l.svc.Demand.GenerateDemand(l.ctx, clerk, req)
	require.NoError(t, err)
	assert.Equal(t, domain.DemandPending, res.Demand.Status)

	l.clock.Advance(48 * time.Hour)
	n, err := l.svc.Demand.RefreshOverdue(l.ctx, l.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = l.svc.Demand.RefreshOverdue(l.ctx, l.clock.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLifecycle_RevisionSupersedesAndRejectionRestores(t *testing.T) {
	l := newLifecycle(t)
	original := l.approve(t, houseReq(100000, "1.5"))

	// A second active assessment for the same subject and year is refused.
	dup, err := l.svc.Assessment.CreateAssessment(l.ctx, assessor, houseReq(90000, "1.5"))
	require.NoError(t, err)
	_, err = l.svc.Assessment.SubmitAssessment(l.ctx, assessor, dup.AssessmentID)
	require.ErrorIs(t, err, apperrors.ErrDuplicateActiveAssessment)

	rev, err := l.svc.Assessment.ReviseAssessment(l.ctx, assessor, original.AssessmentID)
	require.NoError(t, err)
	rate := decimal.NewFromInt(2)
	_, err = l.svc.Assessment.UpdateAssessment(l.ctx, assessor, rev.AssessmentID, dto.UpdateAssessmentRequest{TaxRate: &rate})
	require.NoError(t, err)
	_, err = l.svc.Assessment.SubmitAssessment(l.ctx, assessor, rev.AssessmentID)
	require.NoError(t, err)

	prev, err := l.svc.Assessment.GetAssessmentByID(l.ctx, assessor, original.AssessmentID)
	require.NoError(t, err)
	assert.NotNil(t, prev.SupersededAt)

	_, err = l.svc.Assessment.RejectAssessment(l.ctx, admin, rev.AssessmentID, "rate not yet notified")
	require.NoError(t, err)

	prev, err = l.svc.Assessment.GetAssessmentByID(l.ctx, assessor, original.AssessmentID)
	require.NoError(t, err)
	assert.Nil(t, prev.SupersededAt)
	assert.True(t, prev.IsBillable())

	// Correcting the rejected revision continues the chain and replaces the original.
	second, err := l.svc.Assessment.ReviseAssessment(l.ctx, assessor, rev.AssessmentID)
	require.NoError(t, err)
	assert.Equal(t, 3, second.RevisionNumber)
	require.NotNil(t, second.RevisionOf)
	assert.Equal(t, rev.AssessmentID, *second.RevisionOf)

	_, err = l.svc.Assessment.SubmitAssessment(l.ctx, assessor, second.AssessmentID)
	require.NoError(t, err)
	prev, err = l.svc.Assessment.GetAssessmentByID(l.ctx, assessor, original.AssessmentID)
	require.NoError(t, err)
	assert.NotNil(t, prev.SupersededAt)

	approved, err := l.svc.Assessment.ApproveAssessment(l.ctx, admin, second.AssessmentID)
	require.NoError(t, err)
	assert.True(t, approved.IsBillable())

	// Revising the original again is refused once it has been superseded.
	_, err = l.svc.Assessment.ReviseAssessment(l.ctx, assessor, original.AssessmentID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func (l *lifecycle) overdueDemand(t *testing.T) *domain.Demand {
	t.Helper()
	l.approve(t, houseReq(100000, "1.5"))
	req := l.unified(24 * time.Hour)
	req.IncludeWaterTax = false
	res, err := l.svc.Demand.GenerateDemand(l.ctx, clerk, req)
	require.NoError(t, err)
	l.clock.Advance(10 * 24 * time.Hour)
	return res.Demand
}

func visit(visitType domain.VisitType, response domain.CitizenResponse) dto.RecordVisitRequest {
	return dto.RecordVisitRequest{
		VisitType:       visitType,
		CitizenResponse: response,
		Remarks:         "Met the occupant at the gate",
	}
}

func TestLifecycle_FieldVisitsEscalateOnce(t *testing.T) {
	l := newLifecycle(t)
	d := l.overdueDemand(t)

	reminder, err := l.svc.Notice.IssueNotice(l.ctx, officer, d.DemandID, domain.NoticeReminder)
	require.NoError(t, err)

	_, err = l.svc.FieldVisit.RecordVisit(l.ctx, collector, d.DemandID, visit(domain.VisitWarning, domain.RefusedToPay))
	require.ErrorIs(t, err, apperrors.ErrSequenceViolation)

	later := l.clock.Now().Add(7 * 24 * time.Hour)
	promise := visit(domain.VisitPaymentCollection, domain.WillPayLater)
	promise.ExpectedPaymentDate = &later

	steps := []dto.RecordVisitRequest{
		visit(domain.VisitReminder, domain.NotAvailable),
		promise,
		visit(domain.VisitWarning, domain.RefusedToPay),
	}
	for i, step := range steps {
		rec, err := l.svc.FieldVisit.RecordVisit(l.ctx, collector, d.DemandID, step)
		require.NoError(t, err)
		assert.Equal(t, i+1, rec.Visit.VisitNumber)
		assert.Nil(t, rec.Notice)
	}

	rec, err := l.svc.FieldVisit.RecordVisit(l.ctx, collector, d.DemandID, visit(domain.VisitFinalWarning, domain.RefusedToPay))
	require.NoError(t, err)
	require.NotNil(t, rec.Notice)
	assert.Equal(t, domain.NoticeFinalWarrant, rec.Notice.NoticeType)
	assert.Equal(t, domain.EscalationEscalated, rec.FollowUp.EscalationStatus)
	require.NotNil(t, rec.Notice.PreviousNoticeID)
	assert.Equal(t, reminder.NoticeID, *rec.Notice.PreviousNoticeID)
	assert.Equal(t, rec.Visit.VisitID, *rec.Notice.TriggeredByVisitID)

	escalated, err := l.svc.Notice.GetNoticeByID(l.ctx, officer, reminder.NoticeID)
	require.NoError(t, err)
	assert.Equal(t, domain.NoticeEscalated, escalated.Status)

	rec, err = l.svc.FieldVisit.RecordVisit(l.ctx, collector, d.DemandID, visit(domain.VisitFinalWarning, domain.NotAvailable))
	require.NoError(t, err)
	assert.Nil(t, rec.Notice)
	assert.Equal(t, 5, rec.FollowUp.VisitCount)

	assert.Equal(t, []domain.NoticeType{domain.NoticeReminder, domain.NoticeFinalWarrant}, l.notifier.types())

	visits, err := l.svc.FieldVisit.ListVisitsByDemand(l.ctx, officer, d.DemandID)
	require.NoError(t, err)
	assert.Len(t, visits, 5)
}

func TestLifecycle_VisitRules(t *testing.T) {
	l := newLifecycle(t)
	l.approve(t, houseReq(100000, "1.5"))
	req := l.unified(30 * 24 * time.Hour)
	req.IncludeWaterTax = false
	res, err := l.svc.Demand.GenerateDemand(l.ctx, clerk, req)
	require.NoError(t, err)

	_, err = l.svc.FieldVisit.RecordVisit(l.ctx, collector, res.Demand.DemandID, visit(domain.VisitReminder, domain.NotAvailable))
	assert.ErrorIs(t, err, apperrors.ErrInvalidState, "demand is not overdue yet")

	l.clock.Advance(40 * 24 * time.Hour)

	short := visit(domain.VisitReminder, domain.NotAvailable)
	short.Remarks = "gone"
	_, err = l.svc.FieldVisit.RecordVisit(l.ctx, collector, res.Demand.DemandID, short)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	past := l.clock.Now().Add(-time.Hour)
	late := visit(domain.VisitReminder, domain.WillPayLater)
	late.ExpectedPaymentDate = &past
	_, err = l.svc.FieldVisit.RecordVisit(l.ctx, collector, res.Demand.DemandID, late)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	other := visit(domain.VisitReminder, domain.NotAvailable)
	other.CollectorID = "collector-2"
	_, err = l.svc.FieldVisit.RecordVisit(l.ctx, collector, res.Demand.DemandID, other)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	rec, err := l.svc.FieldVisit.RecordVisit(l.ctx, admin, res.Demand.DemandID, other)
	require.NoError(t, err)
	assert.Equal(t, "collector-2", rec.Visit.CollectorID)

	// Follow-ups are per collector.
	rec, err = l.svc.FieldVisit.RecordVisit(l.ctx, collector, res.Demand.DemandID, visit(domain.VisitReminder, domain.NotAvailable))
	require.NoError(t, err)
	assert.Equal(t, 1, rec.FollowUp.VisitCount)
}

func TestLifecycle_ManualNoticeOrdering(t *testing.T) {
	l := newLifecycle(t)
	d := l.overdueDemand(t)

	reminder, err := l.svc.Notice.IssueNotice(l.ctx, officer, d.DemandID, domain.NoticeReminder)
	require.NoError(t, err)
	assert.Equal(t, "NTC/2024-25/000001", reminder.NoticeNumber)

	_, err = l.svc.Notice.IssueNotice(l.ctx, officer, d.DemandID, domain.NoticeDemand)
	require.ErrorIs(t, err, apperrors.ErrInvalidState, "reminder still open")

	_, err = l.svc.Notice.UpdateNoticeStatus(l.ctx, officer, reminder.NoticeID, domain.NoticeViewed)
	require.ErrorIs(t, err, apperrors.ErrInvalidState, "generated cannot jump to viewed")

	sent, err := l.svc.Notice.UpdateNoticeStatus(l.ctx, officer, reminder.NoticeID, domain.NoticeSent)
	require.NoError(t, err)
	assert.Equal(t, domain.NoticeSent, sent.Status)

	_, err = l.svc.Notice.UpdateNoticeStatus(l.ctx, officer, reminder.NoticeID, domain.NoticeEscalated)
	require.NoError(t, err)

	demandNotice, err := l.svc.Notice.IssueNotice(l.ctx, officer, d.DemandID, domain.NoticeDemand)
	require.NoError(t, err)
	require.NotNil(t, demandNotice.PreviousNoticeID)
	assert.Equal(t, reminder.NoticeID, *demandNotice.PreviousNoticeID)

	_, err = l.svc.Notice.IssueNotice(l.ctx, cashier, d.DemandID, domain.NoticePenalty)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = l.svc.Notice.UpdateNoticeStatus(l.ctx, officer, demandNotice.NoticeID, domain.NoticeResolved)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}
