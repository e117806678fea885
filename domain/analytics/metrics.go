package analytics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viewmark/viewmark/internal/models"
)

type Metrics struct {
	pageViews    *prometheus.CounterVec
	interactions *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		pageViews: registerCounterVec(reg, prometheus.CounterOpts{
			Name: "page_views_tracked_total",
			Help: "Page views received by outcome.",
		}, "outcome"),
		interactions: registerCounterVec(reg, prometheus.CounterOpts{
			Name: "interactions_tracked_total",
			Help: "Interactions received by type and outcome.",
		}, "type", "outcome"),
	}
}

func registerCounterVec(reg prometheus.Registerer, opts prometheus.CounterOpts, labels ...string) *prometheus.CounterVec {
	vec := prometheus.NewCounterVec(opts, labels)
	if reg == nil {
		return vec
	}

	if err := reg.Register(vec); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
	}
	return vec
}

func outcome(err error) string {
	if err != nil {
		return "failed"
	}
	return "stored"
}

func (m *Metrics) observePageView(err error) {
	if m == nil {
		return
	}
	m.pageViews.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) observeInteraction(kind string, err error) {
	if m == nil {
		return
	}
	switch kind {
	case models.InteractionTypePageView, models.InteractionTypeEmailSignup:
	default:
		kind = "other"
	}
	m.interactions.WithLabelValues(kind, outcome(err)).Inc()
}
