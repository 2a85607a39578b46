package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	"github.com/SscSPs/municipal_tax_app/internal/utils/pagination"
)

func (s *Store) FindDemandByID(_ context.Context, demandID string) (*domain.Demand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.demands[demandID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("demand %s not found", demandID))
	}
	return cloneDemand(d), nil
}

func (s *Store) ListDemandsByProperty(_ context.Context, propertyID string, limit int, nextToken *string) ([]domain.Demand, *string, error) {
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError(err.Error())
		}
		cursor = &c
	}

	s.mu.RLock()
	all := []domain.Demand{}
	for _, d := range s.demands {
		if d.PropertyID != propertyID {
			continue
		}
		if cursor != nil && !cursor.Before(d.DueDate, d.CreatedAt, d.DemandID) {
			continue
		}
		all = append(all, *cloneDemand(d))
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.After(b.DueDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.DemandID > b.DemandID
	})

	var next *string
	if limit > 0 && len(all) > limit {
		all = all[:limit]
		last := all[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{SortTime: last.DueDate, CreatedAt: last.CreatedAt, ID: last.DemandID})
		next = &token
	}
	return all, next, nil
}

func (s *Store) CreateDemand(_ context.Context, d domain.Demand) (*domain.Demand, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := d.BillingKeys()
	for _, k := range keys {
		if holder, ok := s.billingKeys[k.String()]; ok {
			return cloneDemand(s.demands[holder]), false, nil
		}
	}
	d.DemandNumber = s.nextNumber(domain.DemandNumberPrefix, d.FinancialYear)
	for _, k := range keys {
		s.billingKeys[k.String()] = d.DemandID
	}
	s.demands[d.DemandID] = *cloneDemand(d)
	return cloneDemand(d), true, nil
}

func (s *Store) VoidDemand(_ context.Context, demandID, reason, userID string, at time.Time) (*domain.Demand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.demands[demandID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("demand %s not found", demandID))
	}
	if d.IsVoided() {
		return nil, apperrors.NewInvalidStateError(fmt.Sprintf("demand %s is already voided", d.DemandNumber))
	}
	if !d.PaidAmount.IsZero() {
		return nil, apperrors.NewInvalidStateError(fmt.Sprintf("demand %s has payments and cannot be voided", d.DemandNumber))
	}
	d.VoidedAt = &at
	d.VoidReason = &reason
	d.LastUpdatedAt = at
	d.LastUpdatedBy = userID
	for _, k := range d.BillingKeys() {
		if s.billingKeys[k.String()] == demandID {
			delete(s.billingKeys, k.String())
		}
	}
	s.demands[demandID] = d
	return cloneDemand(d), nil
}

func (s *Store) RefreshOverdueStatuses(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, d := range s.demands {
		if d.IsVoided() || d.Status == domain.DemandOverdue || !d.IsOverdue(now) {
			continue
		}
		d.Status = domain.DemandOverdue
		d.LastUpdatedAt = now
		s.demands[id] = d
		n++
	}
	return n, nil
}
