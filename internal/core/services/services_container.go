package services

import (
	portsrepo "github.com/SscSPs/municipal_tax_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
	"github.com/SscSPs/municipal_tax_app/internal/platform/config"
)

// Externals carries the adapters services reach outside the database through. Both may be nil.
type Externals struct {
	Notifier portssvc.NoticeNotifier
	Proofs   portssvc.ProofStorage
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, ext Externals, opts ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Assessment = NewAssessmentService(repos.AssessmentRepo, opts...)
	container.Demand = NewDemandService(repos.AssessmentRepo, repos.DemandRepo, cfg.Tariff, opts...)

	// Payments and visits both drive the notice lifecycle, so the notice service comes first.
	container.Notice = NewNoticeService(repos.NoticeRepo, repos.DemandRepo, ext.Notifier, cfg.Tariff.NoticeGracePeriod, opts...)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.DemandRepo, container.Notice, opts...)
	container.FieldVisit = NewFieldVisitService(repos.FieldVisitRepo, repos.DemandRepo, container.Notice, ext.Proofs, cfg.MaxProofSize, opts...)

	return container
}
