package store

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation labels of the cache metrics.
const (
	opQuery      = "query"
	opResource   = "resource"
	opResults    = "results"
	opResult     = "result"
	opComments   = "comments"
	opVocabulary = "vocabulary"
	opProjects   = "projects"
)

type metrics struct {
	lookups *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catalog",
		Subsystem: "store",
		Name:      "lookups_total",
		Help:      "Cache lookups by operation and outcome (hit, miss, refresh).",
	}, []string{"op", "outcome"})

	if reg != nil {
		if err := reg.Register(lookups); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				panic(err)
			}
			lookups = are.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	return &metrics{lookups: lookups}
}

func (m *metrics) hit(op string)  { m.lookups.WithLabelValues(op, "hit").Inc() }
func (m *metrics) miss(op string) { m.lookups.WithLabelValues(op, "miss").Inc() }

// fetch records a miss, or a refresh when the caller bypassed the cache.
func (m *metrics) fetch(op string, forced bool) {
	if forced {
		m.lookups.WithLabelValues(op, "refresh").Inc()
		return
	}
	m.miss(op)
}
