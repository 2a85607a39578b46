package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
)

func followUpKey(demandID, collectorID string) string {
	return demandID + "|" + collectorID
}

func (s *Store) FindFollowUp(_ context.Context, demandID, collectorID string) (*domain.FollowUp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.followUps[followUpKey(demandID, collectorID)]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no follow-up for collector %s on demand %s", collectorID, demandID))
	}
	return &f, nil
}

func (s *Store) ListVisitsByDemand(_ context.Context, demandID string) ([]domain.FieldVisit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.FieldVisit{}, s.visits[demandID]...), nil
}

func (s *Store) RecordVisit(_ context.Context, record domain.VisitRecord) (*domain.VisitRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := followUpKey(record.FollowUp.DemandID, record.FollowUp.CollectorID)
	current, exists := s.followUps[key]
	if exists != (record.ExpectedCount > 0) || (exists && current.VisitCount != record.ExpectedCount) {
		return nil, apperrors.NewAppError(409, "another visit was recorded for this follow-up, reload and retry", apperrors.ErrConflict)
	}
	if record.Notice != nil {
		saved, err := s.insertNotice(*record.Notice, record.EscalatedNotice)
		if err != nil {
			return nil, err
		}
		record.Notice = saved
	}
	s.followUps[key] = record.FollowUp
	s.visits[record.Visit.DemandID] = append(s.visits[record.Visit.DemandID], record.Visit)
	return &record, nil
}
