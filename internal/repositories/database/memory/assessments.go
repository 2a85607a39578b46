package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
)

func (s *Store) FindAssessmentByID(_ context.Context, assessmentID string) (*domain.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assessments[assessmentID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("assessment %s not found", assessmentID))
	}
	return &a, nil
}

func (s *Store) ListAssessmentsByProperty(_ context.Context, propertyID string, financialYear *string) ([]domain.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := []domain.Assessment{}
	for _, a := range s.assessments {
		if a.PropertyID != propertyID {
			continue
		}
		if financialYear != nil && a.FinancialYear != *financialYear {
			continue
		}
		res = append(res, a)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].FinancialYear != res[j].FinancialYear {
			return res[i].FinancialYear > res[j].FinancialYear
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func (s *Store) FindBillableAssessments(_ context.Context, propertyID, financialYear string, serviceType domain.AssessmentServiceType) ([]domain.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := []domain.Assessment{}
	for _, a := range s.assessments {
		if a.PropertyID == propertyID && a.FinancialYear == financialYear && a.ServiceType == serviceType && a.IsBillable() {
			res = append(res, a)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].RevisionNumber != res[j].RevisionNumber {
			return res[i].RevisionNumber > res[j].RevisionNumber
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func (s *Store) CreateAssessment(_ context.Context, a domain.Assessment) (*domain.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.assessments[a.AssessmentID]; exists {
		return nil, apperrors.NewAppError(409, fmt.Sprintf("assessment %s already exists", a.AssessmentID), apperrors.ErrDuplicate)
	}
	a.AssessmentNumber = s.nextNumber(domain.AssessmentNumberPrefix, a.FinancialYear)
	s.assessments[a.AssessmentID] = a
	return &a, nil
}

func (s *Store) UpdateAssessmentValuation(_ context.Context, a domain.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.assessments[a.AssessmentID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("assessment %s not found", a.AssessmentID))
	}
	if err := stored.EnsureEditable(); err != nil {
		return err
	}
	stored.Valuation = a.Valuation
	stored.NetAssessedValue = a.NetAssessedValue
	stored.AnnualTaxAmount = a.AnnualTaxAmount
	stored.LastUpdatedAt = a.LastUpdatedAt
	stored.LastUpdatedBy = a.LastUpdatedBy
	s.assessments[a.AssessmentID] = stored
	return nil
}

func (s *Store) SubmitAssessment(_ context.Context, a domain.Assessment, supersedes *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.assessments[a.AssessmentID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("assessment %s not found", a.AssessmentID))
	}
	if stored.Status != domain.AssessmentDraft {
		return apperrors.NewInvalidStateError(fmt.Sprintf("assessment %s is %s", stored.AssessmentNumber, stored.Status))
	}
	key := a.ActiveKey()
	for id, other := range s.assessments {
		if id == a.AssessmentID || (supersedes != nil && id == *supersedes) {
			continue
		}
		if other.IsActive() && other.ActiveKey() == key {
			return apperrors.NewAppError(409, fmt.Sprintf("assessment %s is already active for %s %s in %d", other.AssessmentNumber, key.ServiceType, key.SubjectID, key.AssessmentYear), apperrors.ErrDuplicateActiveAssessment)
		}
	}
	if supersedes != nil {
		prev, ok := s.assessments[*supersedes]
		if !ok || !prev.IsBillable() {
			return apperrors.NewAppError(409, fmt.Sprintf("assessment %s is no longer active", *supersedes), apperrors.ErrConflict)
		}
		at := a.LastUpdatedAt
		prev.SupersededAt = &at
		prev.LastUpdatedAt = at
		prev.LastUpdatedBy = a.LastUpdatedBy
		s.assessments[prev.AssessmentID] = prev
	}
	s.assessments[a.AssessmentID] = a
	return nil
}

func (s *Store) ApproveAssessment(_ context.Context, a domain.Assessment) error {
	return s.review(a, nil, time.Time{})
}

func (s *Store) RejectAssessment(_ context.Context, a domain.Assessment, restores *string, restoredAt time.Time) error {
	return s.review(a, restores, restoredAt)
}

func (s *Store) review(a domain.Assessment, restores *string, restoredAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.assessments[a.AssessmentID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("assessment %s not found", a.AssessmentID))
	}
	if stored.Status != domain.AssessmentPending {
		return apperrors.NewInvalidStateError(fmt.Sprintf("assessment %s is %s", stored.AssessmentNumber, stored.Status))
	}
	if restores != nil {
		if prev, ok := s.assessments[*restores]; ok {
			prev.SupersededAt = nil
			prev.LastUpdatedAt = restoredAt
			prev.LastUpdatedBy = a.LastUpdatedBy
			s.assessments[prev.AssessmentID] = prev
		}
	}
	s.assessments[a.AssessmentID] = a
	return nil
}
