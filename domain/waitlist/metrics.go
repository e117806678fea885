package waitlist

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeAccepted  = "accepted"
	outcomeDuplicate = "duplicate"
	outcomeInvalid   = "invalid"
	outcomeFailed    = "failed"
)

type Metrics struct {
	submissions *prometheus.CounterVec
}

// NewMetrics registers waitlist_submissions_total on reg, reusing an
// existing collector when one is already registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	submissions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waitlist_submissions_total",
			Help: "Waitlist submissions by outcome.",
		},
		[]string{"outcome"},
	)

	if reg != nil {
		if err := reg.Register(submissions); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
					submissions = existing
				}
			}
		}
	}

	return &Metrics{submissions: submissions}
}

func (m *Metrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}
