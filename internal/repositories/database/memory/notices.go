package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
)

func (s *Store) FindNoticeByID(_ context.Context, noticeID string) (*domain.Notice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notices[noticeID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("notice %s not found", noticeID))
	}
	return &n, nil
}

func (s *Store) ListNoticesByDemand(_ context.Context, demandID string) ([]domain.Notice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.noticeOrder[demandID]
	res := make([]domain.Notice, 0, len(ids))
	for _, id := range ids {
		res = append(res, s.notices[id])
	}
	return res, nil
}

func (s *Store) CreateNotice(_ context.Context, n domain.Notice, escalates *string) (*domain.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertNotice(n, escalates)
}

// insertNotice must be called with mu held for writing.
func (s *Store) insertNotice(n domain.Notice, escalates *string) (*domain.Notice, error) {
	for _, id := range s.noticeOrder[n.DemandID] {
		other := s.notices[id]
		if other.NoticeType == n.NoticeType && other.Status != domain.NoticeResolved {
			return nil, apperrors.NewAppError(409, fmt.Sprintf("a %s notice is already outstanding on this demand", n.NoticeType), apperrors.ErrConflict)
		}
	}
	if escalates != nil {
		prev, ok := s.notices[*escalates]
		if !ok || !prev.Status.IsOpen() {
			return nil, apperrors.NewAppError(409, fmt.Sprintf("notice %s is no longer open", *escalates), apperrors.ErrConflict)
		}
		prev.Status = domain.NoticeEscalated
		prev.LastUpdatedAt = n.CreatedAt
		prev.LastUpdatedBy = n.CreatedBy
		s.notices[prev.NoticeID] = prev
	}
	n.NoticeNumber = s.nextNumber(domain.NoticeNumberPrefix, n.FinancialYear)
	s.notices[n.NoticeID] = n
	s.noticeOrder[n.DemandID] = append(s.noticeOrder[n.DemandID], n.NoticeID)
	return &n, nil
}

func (s *Store) UpdateNoticeStatus(_ context.Context, noticeID string, from, to domain.NoticeStatus, userID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notices[noticeID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("notice %s not found", noticeID))
	}
	if n.Status != from {
		return apperrors.NewInvalidStateError(fmt.Sprintf("notice %s is %s, expected %s", n.NoticeNumber, n.Status, from))
	}
	n.Status = to
	n.LastUpdatedAt = at
	n.LastUpdatedBy = userID
	s.notices[noticeID] = n
	return nil
}

func (s *Store) ResolveOpenNotices(_ context.Context, demandID, userID string, at time.Time) ([]domain.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resolved := []domain.Notice{}
	for _, id := range s.noticeOrder[demandID] {
		n := s.notices[id]
		if !n.Status.IsOpen() {
			continue
		}
		n.Status = domain.NoticeResolved
		n.ResolvedAt = &at
		n.LastUpdatedAt = at
		n.LastUpdatedBy = userID
		s.notices[id] = n
		resolved = append(resolved, n)
	}
	return resolved, nil
}
