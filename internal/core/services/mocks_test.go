package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock AssessmentRepository ---
type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) FindAssessmentByID(ctx context.Context, assessmentID string) (*domain.Assessment, error) {
	args := m.Called(ctx, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) ListAssessmentsByProperty(ctx context.Context, propertyID string, financialYear *string) ([]domain.Assessment, error) {
	args := m.Called(ctx, propertyID, financialYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) FindBillableAssessments(ctx context.Context, propertyID, financialYear string, serviceType domain.AssessmentServiceType) ([]domain.Assessment, error) {
	args := m.Called(ctx, propertyID, financialYear, serviceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) CreateAssessment(ctx context.Context, a domain.Assessment) (*domain.Assessment, error) {
	args := m.Called(ctx, a)
	if fn, ok := args.Get(0).(func(context.Context, domain.Assessment) *domain.Assessment); ok {
		return fn(ctx, a), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) UpdateAssessmentValuation(ctx context.Context, a domain.Assessment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssessmentRepository) SubmitAssessment(ctx context.Context, a domain.Assessment, supersedes *string) error {
	args := m.Called(ctx, a, supersedes)
	return args.Error(0)
}

func (m *MockAssessmentRepository) ApproveAssessment(ctx context.Context, a domain.Assessment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssessmentRepository) RejectAssessment(ctx context.Context, a domain.Assessment, restores *string, restoredAt time.Time) error {
	args := m.Called(ctx, a, restores, restoredAt)
	return args.Error(0)
}

// --- Mock DemandRepository ---
type MockDemandRepository struct {
	mock.Mock
}

func (m *MockDemandRepository) FindDemandByID(ctx context.Context, demandID string) (*domain.Demand, error) {
	args := m.Called(ctx, demandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Demand), args.Error(1)
}

func (m *MockDemandRepository) ListDemandsByProperty(ctx context.Context, propertyID string, limit int, nextToken *string) ([]domain.Demand, *string, error) {
	args := m.Called(ctx, propertyID, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Demand), next, args.Error(2)
}

func (m *MockDemandRepository) CreateDemand(ctx context.Context, d domain.Demand) (*domain.Demand, bool, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Demand), args.Bool(1), args.Error(2)
}

func (m *MockDemandRepository) VoidDemand(ctx context.Context, demandID, reason, userID string, at time.Time) (*domain.Demand, error) {
	args := m.Called(ctx, demandID, reason, userID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Demand), args.Error(1)
}

func (m *MockDemandRepository) RefreshOverdueStatuses(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock NoticeNotifier ---
type MockNoticeNotifier struct {
	mock.Mock
}

func (m *MockNoticeNotifier) NotifyNotice(ctx context.Context, notice domain.Notice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}
