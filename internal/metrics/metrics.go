package metrics

import "github.com/prometheus/client_golang/prometheus"

// Domain counters for the certificate pipeline. They are created unregistered
// so unit tests can exercise the services without touching a global registry;
// main registers them next to the HTTP metrics.
var (
	CertificatesSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "certificates_submitted_total",
		Help: "Total number of certificates accepted for processing.",
	})

	MLResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "certificate_ml_results_total",
		Help: "Total number of ML verification results applied, by status.",
	}, []string{"status"})

	MLFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "certificate_ml_failures_total",
		Help: "Total number of failed ML verification calls.",
	})

	ReviewDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "certificate_review_decisions_total",
		Help: "Total number of faculty review decisions, by outcome.",
	}, []string{"decision"})
)

// Register attaches the domain counters to the given registry.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		CertificatesSubmitted,
		MLResults,
		MLFailures,
		ReviewDecisions,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
