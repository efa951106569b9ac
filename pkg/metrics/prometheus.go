// Package metrics records Prometheus metrics for score conversions and
// precision evaluations.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Recorder struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	conversions        *prometheus.CounterVec
	evaluations        *prometheus.CounterVec
	failures           *prometheus.CounterVec
	evaluationDuration *prometheus.HistogramVec
	population         *prometheus.GaugeVec
	precision          *prometheus.GaugeVec
}

// NewRecorder creates a recorder on its own registry unless WithRegistry is given.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: "trialscore",
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}

	auto := promauto.With(r.registry)
	r.conversions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "conversions_total",
		Help:      "Score artifacts converted, by input and output format",
	}, []string{"from", "to"})

	r.evaluations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "evaluations_total",
		Help:      "Precision evaluations completed, by metric",
	}, []string{"metric"})

	r.failures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "failures_total",
		Help:      "Failed operations, by operation and failure kind",
	}, []string{"operation", "kind"})

	r.evaluationDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "evaluation_duration_seconds",
		Help:      "Time spent ranking and aggregating one evaluation",
		Buckets:   r.buckets,
	}, []string{"metric"})

	r.population = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "last_population",
		Help:      "Population size of the most recent evaluation",
	}, []string{"metric"})

	r.precision = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "last_precision",
		Help:      "Precision@K of the most recent evaluation",
	}, []string{"metric", "k"})

	return r
}

func (r *Recorder) ObserveConversion(from, to string) {
	r.conversions.WithLabelValues(from, to).Inc()
}

func (r *Recorder) ObserveEvaluation(metric string, population int, precision map[int]float64, took time.Duration) {
	r.evaluations.WithLabelValues(metric).Inc()
	r.evaluationDuration.WithLabelValues(metric).Observe(took.Seconds())
	r.population.WithLabelValues(metric).Set(float64(population))
	for k, p := range precision {
		r.precision.WithLabelValues(metric, strconv.Itoa(k)).Set(p)
	}
}

func (r *Recorder) ObserveFailure(operation, kind string) {
	r.failures.WithLabelValues(operation, kind).Inc()
}

// Handler serves the recorder's registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

func (r *Recorder) Conversions() *prometheus.CounterVec { return r.conversions }
func (r *Recorder) Evaluations() *prometheus.CounterVec { return r.evaluations }
func (r *Recorder) Failures() *prometheus.CounterVec    { return r.failures }
