package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/diillson/envcheck-reports/internal/domain/repository"
)

// PrometheusRepositoryImpl implementa o MetricsRepository com um registry próprio,
// gravado no formato textfile do node_exporter ao final da execução.
type PrometheusRepositoryImpl struct {
	registry  *prometheus.Registry
	uploads   *prometheus.CounterVec
	lifecycle *prometheus.CounterVec
	records   *prometheus.CounterVec
}

// NewPrometheusRepository cria uma nova implementação do MetricsRepository.
func NewPrometheusRepository() repository.MetricsRepository {
	r := &PrometheusRepositoryImpl{
		registry: prometheus.NewRegistry(),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "envchecker",
			Name:      "uploads_total",
			Help:      "Report uploads to the object store by kind and outcome.",
		}, []string{"kind", "outcome"}),
		lifecycle: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "envchecker",
			Name:      "lifecycle_reconciliations_total",
			Help:      "Bucket expiration rule reconciliations by action.",
		}, []string{"action"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "envchecker",
			Name:      "result_records_total",
			Help:      "Validation result records appended to the result dump.",
		}, []string{"validation"}),
	}
	r.registry.MustRegister(r.uploads, r.lifecycle, r.records)
	return r
}

func (r *PrometheusRepositoryImpl) ObserveUpload(kind, outcome string) {
	r.uploads.WithLabelValues(kind, outcome).Inc()
}

func (r *PrometheusRepositoryImpl) ObserveLifecycle(action string) {
	r.lifecycle.WithLabelValues(action).Inc()
}

func (r *PrometheusRepositoryImpl) ObserveRecord(validation string) {
	r.records.WithLabelValues(validation).Inc()
}

// Flush grava as métricas em path. Path vazio não faz nada.
func (r *PrometheusRepositoryImpl) Flush(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("error writing metrics textfile: %w", err)
	}
	return nil
}
