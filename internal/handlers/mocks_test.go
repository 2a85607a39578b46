package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
	"github.com/SscSPs/municipal_tax_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AssessmentService ---
type MockAssessmentService struct {
	mock.Mock
}

func (m *MockAssessmentService) assessment(args mock.Arguments) (*domain.Assessment, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assessment), args.Error(1)
}

func (m *MockAssessmentService) GetAssessmentByID(ctx context.Context, caller domain.Caller, assessmentID string) (*domain.Assessment, error) {
	return m.assessment(m.Called(ctx, caller, assessmentID))
}
func (m *MockAssessmentService) ListAssessmentsByProperty(ctx context.Context, caller domain.Caller, propertyID string, params dto.ListAssessmentsParams) ([]domain.Assessment, error) {
	args := m.Called(ctx, caller, propertyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Assessment), args.Error(1)
}
func (m *MockAssessmentService) CreateAssessment(ctx context.Context, caller domain.Caller, req dto.CreateAssessmentRequest) (*domain.Assessment, error) {
	return m.assessment(m.Called(ctx, caller, req))
}
func (m *MockAssessmentService) UpdateAssessment(ctx context.Context, caller domain.Caller, assessmentID string, req dto.UpdateAssessmentRequest) (*domain.Assessment, error) {
	return m.assessment(m.Called(ctx, caller, assessmentID, req))
}
func (m *MockAssessmentService) ReviseAssessment(ctx context.Context, caller domain.Caller, assessmentID string) (*domain.Assessment, error) {
	return m.assessment(m.Called(ctx, caller, assessmentID))
}
func (m *MockAssessmentService) SubmitAssessment(ctx context.Context, caller domain.Caller, assessmentID string) (*domain.Assessment, error) {
	return m.assessment(m.Called(ctx, caller, assessmentID))
}
func (m *MockAssessmentService) ApproveAssessment(ctx context.Context, caller domain.Caller, assessmentID string) (*domain.Assessment, error) {
	return m.assessment(m.Called(ctx, caller, assessmentID))
}
func (m *MockAssessmentService) RejectAssessment(ctx context.Context, caller domain.Caller, assessmentID string, remarks string) (*domain.Assessment, error) {
	return m.assessment(m.Called(ctx, caller, assessmentID, remarks))
}

var _ portssvc.AssessmentSvcFacade = (*MockAssessmentService)(nil)

// --- Mock DemandService ---
type MockDemandService struct {
	mock.Mock
}

func (m *MockDemandService) GetDemandByID(ctx context.Context, caller domain.Caller, demandID string) (*domain.Demand, error) {
	args := m.Called(ctx, caller, demandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Demand), args.Error(1)
}
func (m *MockDemandService) ListDemandsByProperty(ctx context.Context, caller domain.Caller, propertyID string, params dto.ListDemandsParams) (*dto.ListDemandsResponse, error) {
	args := m.Called(ctx, caller, propertyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListDemandsResponse), args.Error(1)
}
func (m *MockDemandService) GenerateDemand(ctx context.Context, caller domain.Caller, req dto.GenerateDemandRequest) (*domain.GenerationResult, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerationResult), args.Error(1)
}
func (m *MockDemandService) VoidDemand(ctx context.Context, caller domain.Caller, demandID string, reason string) (*domain.Demand, error) {
	args := m.Called(ctx, caller, demandID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Demand), args.Error(1)
}
func (m *MockDemandService) RefreshOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.DemandSvcFacade = (*MockDemandService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ApplyPayment(ctx context.Context, caller domain.Caller, demandID string, req dto.ApplyPaymentRequest) (*domain.Payment, *domain.Demand, error) {
	args := m.Called(ctx, caller, demandID, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Payment), args.Get(1).(*domain.Demand), args.Error(2)
}
func (m *MockPaymentService) ListPaymentsByDemand(ctx context.Context, caller domain.Caller, demandID string) ([]domain.Payment, error) {
	args := m.Called(ctx, caller, demandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Mock FieldVisitService ---
type MockFieldVisitService struct {
	mock.Mock
}

func (m *MockFieldVisitService) ListVisitsByDemand(ctx context.Context, caller domain.Caller, demandID string) ([]domain.FieldVisit, error) {
	args := m.Called(ctx, caller, demandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FieldVisit), args.Error(1)
}
func (m *MockFieldVisitService) GetFollowUp(ctx context.Context, caller domain.Caller, demandID, collectorID string) (*domain.FollowUp, error) {
	args := m.Called(ctx, caller, demandID, collectorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FollowUp), args.Error(1)
}
func (m *MockFieldVisitService) RecordVisit(ctx context.Context, caller domain.Caller, demandID string, req dto.RecordVisitRequest) (*domain.VisitRecord, error) {
	args := m.Called(ctx, caller, demandID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VisitRecord), args.Error(1)
}
func (m *MockFieldVisitService) UploadProof(ctx context.Context, caller domain.Caller, filename, contentType string, size int64, body io.Reader) (string, error) {
	args := m.Called(ctx, caller, filename, contentType, size, body)
	return args.String(0), args.Error(1)
}

var _ portssvc.FieldVisitSvcFacade = (*MockFieldVisitService)(nil)

// --- Mock NoticeService ---
type MockNoticeService struct {
	mock.Mock
}

func (m *MockNoticeService) notice(args mock.Arguments) (*domain.Notice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notice), args.Error(1)
}

func (m *MockNoticeService) PlanEscalation(ctx context.Context, demand *domain.Demand, visit *domain.FieldVisit) (*domain.Notice, *string, error) {
	args := m.Called(ctx, demand, visit)
	var escalates *string
	if s, ok := args.Get(1).(*string); ok {
		escalates = s
	}
	if args.Get(0) == nil {
		return nil, escalates, args.Error(2)
	}
	return args.Get(0).(*domain.Notice), escalates, args.Error(2)
}
func (m *MockNoticeService) ResolveDemandNotices(ctx context.Context, demand *domain.Demand, userID string) ([]domain.Notice, error) {
	args := m.Called(ctx, demand, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notice), args.Error(1)
}
func (m *MockNoticeService) Publish(ctx context.Context, notice domain.Notice) {
	m.Called(ctx, notice)
}
func (m *MockNoticeService) IssueNotice(ctx context.Context, caller domain.Caller, demandID string, noticeType domain.NoticeType) (*domain.Notice, error) {
	return m.notice(m.Called(ctx, caller, demandID, noticeType))
}
func (m *MockNoticeService) UpdateNoticeStatus(ctx context.Context, caller domain.Caller, noticeID string, status domain.NoticeStatus) (*domain.Notice, error) {
	return m.notice(m.Called(ctx, caller, noticeID, status))
}
func (m *MockNoticeService) GetNoticeByID(ctx context.Context, caller domain.Caller, noticeID string) (*domain.Notice, error) {
	return m.notice(m.Called(ctx, caller, noticeID))
}
func (m *MockNoticeService) ListNoticesByDemand(ctx context.Context, caller domain.Caller, demandID string) ([]domain.Notice, error) {
	args := m.Called(ctx, caller, demandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notice), args.Error(1)
}

var _ portssvc.NoticeSvcFacade = (*MockNoticeService)(nil)
