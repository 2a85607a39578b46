// Package memory is an in-process implementation of every repository port.
// A single mutex serialises writes, which gives the same atomicity the
// postgres adapter gets from transactions and conditional updates.
package memory

import (
	"sync"

	"github.com/SscSPs/municipal_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/municipal_tax_app/internal/core/ports/repositories"
)

// Store holds all lifecycle records in memory.
type Store struct {
	mu sync.RWMutex

	sequences   map[string]int64
	assessments map[string]domain.Assessment
	demands     map[string]domain.Demand
	billingKeys map[string]string // BillingKey.String() -> demand ID
	payments    map[string][]domain.Payment
	followUps   map[string]domain.FollowUp // demandID|collectorID
	visits      map[string][]domain.FieldVisit
	notices     map[string]domain.Notice
	noticeOrder map[string][]string // demand ID -> notice IDs in creation order
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		sequences:   make(map[string]int64),
		assessments: make(map[string]domain.Assessment),
		demands:     make(map[string]domain.Demand),
		billingKeys: make(map[string]string),
		payments:    make(map[string][]domain.Payment),
		followUps:   make(map[string]domain.FollowUp),
		visits:      make(map[string][]domain.FieldVisit),
		notices:     make(map[string]domain.Notice),
		noticeOrder: make(map[string][]string),
	}
}

// Repositories exposes the store through every repository port.
func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AssessmentRepo: s,
		DemandRepo:     s,
		PaymentRepo:    s,
		FieldVisitRepo: s,
		NoticeRepo:     s,
	}
}

var (
	_ portsrepo.AssessmentRepositoryFacade = (*Store)(nil)
	_ portsrepo.DemandRepositoryFacade     = (*Store)(nil)
	_ portsrepo.PaymentRepositoryFacade    = (*Store)(nil)
	_ portsrepo.FieldVisitRepositoryFacade = (*Store)(nil)
	_ portsrepo.NoticeRepositoryFacade     = (*Store)(nil)
)

// nextNumber must be called with mu held for writing.
func (s *Store) nextNumber(prefix, financialYear string) string {
	key := prefix + "|" + financialYear
	s.sequences[key]++
	return domain.FormatDocumentNumber(prefix, financialYear, s.sequences[key])
}

func cloneDemand(d domain.Demand) *domain.Demand {
	d.Items = append([]domain.DemandItem(nil), d.Items...)
	d.AssessmentIDs = append([]string(nil), d.AssessmentIDs...)
	return &d
}
