package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AssessmentRepo AssessmentRepositoryFacade
	DemandRepo     DemandRepositoryFacade
	PaymentRepo    PaymentRepositoryFacade
	FieldVisitRepo FieldVisitRepositoryFacade
	NoticeRepo     NoticeRepositoryFacade
}
