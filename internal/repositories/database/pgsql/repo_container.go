package pgsql

import (
	portsrepo "github.com/SscSPs/municipal_tax_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AssessmentRepo: newPgxAssessmentRepository(dbPool),
		DemandRepo:     newPgxDemandRepository(dbPool),
		PaymentRepo:    newPgxPaymentRepository(dbPool),
		FieldVisitRepo: newPgxFieldVisitRepository(dbPool),
		NoticeRepo:     newPgxNoticeRepository(dbPool),
	}
}
