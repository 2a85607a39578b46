package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Metrics holds the Prometheus collectors for the tax demand lifecycle.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	AssessmentTransitions *prometheus.CounterVec
	DemandsGenerated      *prometheus.CounterVec
	PaymentsApplied       *prometheus.CounterVec
	PaymentAmount         prometheus.Counter
	PaymentRejections     *prometheus.CounterVec
	VisitsRecorded        *prometheus.CounterVec
	NoticesIssued         *prometheus.CounterVec
	OverdueSweepUpdated   prometheus.Counter
	HTTPDuration          *prometheus.HistogramVec
}

// New creates and registers all metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AssessmentTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mta_assessment_transitions_total",
			Help: "Assessment workflow transitions by target status",
		}, []string{"status"}),

		DemandsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mta_demands_generated_total",
			Help: "Demand generation outcomes by service type and whether the demand already existed",
		}, []string{"service_type", "already_existed"}),

		PaymentsApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mta_payments_applied_total",
			Help: "Payments applied by payment mode",
		}, []string{"mode"}),

		PaymentAmount: factory.NewCounter(prometheus.CounterOpts{
			Name: "mta_payment_amount_total",
			Help: "Sum of applied payment amounts",
		}),

		PaymentRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mta_payment_rejections_total",
			Help: "Rejected payments by error kind",
		}, []string{"kind"}),

		VisitsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mta_field_visits_total",
			Help: "Recorded field visits by visit type and citizen response",
		}, []string{"visit_type", "response"}),

		NoticesIssued: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mta_notices_issued_total",
			Help: "Notices issued by type and origin (visit or manual)",
		}, []string{"notice_type", "origin"}),

		OverdueSweepUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "mta_overdue_sweep_updated_total",
			Help: "Demands moved to overdue by the scheduled sweep",
		}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mta_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status class",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
	}
}

// IncrementAssessmentTransition records an assessment reaching status.
func (m *Metrics) IncrementAssessmentTransition(status string) {
	if m != nil {
		m.AssessmentTransitions.WithLabelValues(status).Inc()
	}
}

// IncrementDemandGenerated records one generation outcome.
func (m *Metrics) IncrementDemandGenerated(serviceType string, alreadyExisted bool) {
	if m != nil {
		existed := "false"
		if alreadyExisted {
			existed = "true"
		}
		m.DemandsGenerated.WithLabelValues(serviceType, existed).Inc()
	}
}

// ObservePayment records an applied payment. The amount counter is approximate;
// the ledger itself stays in exact decimals.
func (m *Metrics) ObservePayment(mode string, amount decimal.Decimal) {
	if m != nil {
		m.PaymentsApplied.WithLabelValues(mode).Inc()
		m.PaymentAmount.Add(amount.InexactFloat64())
	}
}

// IncrementPaymentRejection records a rejected payment.
func (m *Metrics) IncrementPaymentRejection(kind string) {
	if m != nil {
		m.PaymentRejections.WithLabelValues(kind).Inc()
	}
}

// IncrementVisit records a field visit.
func (m *Metrics) IncrementVisit(visitType, response string) {
	if m != nil {
		m.VisitsRecorded.WithLabelValues(visitType, response).Inc()
	}
}

// IncrementNotice records an issued notice.
func (m *Metrics) IncrementNotice(noticeType, origin string) {
	if m != nil {
		m.NoticesIssued.WithLabelValues(noticeType, origin).Inc()
	}
}

// AddOverdueSwept records demands moved to overdue by a sweep.
func (m *Metrics) AddOverdueSwept(n int64) {
	if m != nil && n > 0 {
		m.OverdueSweepUpdated.Add(float64(n))
	}
}

// ObserveHTTP records one request's latency.
func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m != nil {
		m.HTTPDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
	}
}
