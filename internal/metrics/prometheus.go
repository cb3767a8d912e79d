package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusRecorder exports entity lifecycle counters to Prometheus.
type PrometheusRecorder struct {
	created *prometheus.CounterVec
	updated *prometheus.CounterVec
	deleted *prometheus.CounterVec
}

// NewPrometheus registers the entity counters with reg.
func NewPrometheus(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		created: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recetario_entities_created_total",
				Help: "Total number of created records by entity",
			},
			[]string{"entity"},
		),
		updated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recetario_entities_updated_total",
				Help: "Total number of updated records by entity",
			},
			[]string{"entity"},
		),
		deleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recetario_entities_deleted_total",
				Help: "Total number of deleted records by entity, cascades included",
			},
			[]string{"entity"},
		),
	}
}

// IncCreated increments the created counter for entity.
func (p *PrometheusRecorder) IncCreated(entity string) {
	p.created.WithLabelValues(entity).Inc()
}

// IncUpdated increments the updated counter for entity.
func (p *PrometheusRecorder) IncUpdated(entity string) {
	p.updated.WithLabelValues(entity).Inc()
}

// AddDeleted adds n to the deleted counter for entity.
func (p *PrometheusRecorder) AddDeleted(entity string, n int64) {
	if n <= 0 {
		return
	}
	p.deleted.WithLabelValues(entity).Add(float64(n))
}
