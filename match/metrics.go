// Tracks run-wide matching counters such as:
// proposals, admissions, evictions, rejections and exhausted applicants.

package match

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics aggregates counters about a matching run on a private registry so
// that several engines (tests, repeated CLI runs) never collide.
type Metrics struct {
	Proposals  prometheus.Counter
	Admissions prometheus.Counter
	Evictions  prometheus.Counter
	Rejections prometheus.Counter
	Exhausted  prometheus.Counter
	Iterations prometheus.Gauge
	Matched    prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates the metric set and registers it on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Proposals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "projmatch_proposals_total",
			Help: "Total number of proposals made by applicants",
		}),
		Admissions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "projmatch_admissions_total",
			Help: "Proposals admitted into a free seat",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "projmatch_evictions_total",
			Help: "Incumbents displaced by a strictly higher-scoring proposer",
		}),
		Rejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "projmatch_rejections_total",
			Help: "Proposals rejected by a full project",
		}),
		Exhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "projmatch_exhausted_total",
			Help: "Iterations where the applicant had no eligible project left",
		}),
		Iterations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "projmatch_iterations",
			Help: "Iterations consumed by the run",
		}),
		Matched: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "projmatch_matched_applicants",
			Help: "Applicants holding an assignment",
		}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.Proposals, m.Admissions, m.Evictions, m.Rejections,
		m.Exhausted, m.Iterations, m.Matched)
	return m
}

// WriteTextfile writes all metrics in the Prometheus text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
