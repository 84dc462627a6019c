// Package metrics exposes Prometheus counters and histograms for the
// ingest, query, and garbage-collection paths.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the process-wide metrics container.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	InstancesUploadedTotal prometheus.Counter
	InstancesDeletedTotal  prometheus.Counter
	SolutionsUploadedTotal *prometheus.CounterVec // label: result_kind

	OrphanInstanceDataGCTotal prometheus.Counter
	OrphanSolutionDataGCTotal prometheus.Counter

	DependencyErrorsTotal *prometheus.CounterVec // label: dependency

	InstanceNodesTotal prometheus.Histogram
	InstanceEdgesTotal prometheus.Histogram

	ServiceInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

func InitMetrics(namespace, subsystem string) *Metrics {
	nodesHist := promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "instance_nodes",
		Help:      "Node count of uploaded instances",
		Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000, 100000},
	})
	edgesHist := promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "instance_edges",
		Help:      "Edge count of uploaded instances",
		Buckets:   []float64{20, 100, 500, 1000, 5000, 10000, 50000, 100000, 500000},
	})

	m := &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"route", "method"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),

		InstancesUploadedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "instances_uploaded_total",
				Help:      "Total number of instance upload operations committed",
			},
		),

		InstancesDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "instances_deleted_total",
				Help:      "Total number of instance delete operations committed",
			},
		),

		SolutionsUploadedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solutions_uploaded_total",
				Help:      "Total number of solution upload operations, by result kind",
			},
			[]string{"result_kind"},
		),

		OrphanInstanceDataGCTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orphan_instance_data_gc_total",
				Help:      "Total number of InstanceData rows garbage-collected as orphans",
			},
		),

		OrphanSolutionDataGCTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orphan_solution_data_gc_total",
				Help:      "Total number of SolutionData rows garbage-collected as orphans",
			},
		),

		DependencyErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "dependency_errors_total",
				Help:      "Total number of failures talking to an external dependency",
			},
			[]string{"dependency"},
		),

		InstanceNodesTotal: nodesHist,
		InstanceEdgesTotal: edgesHist,

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "service_info",
				Help:      "Service build information",
			},
			[]string{"version", "environment"},
		),
	}

	defaultMetrics = m
	return m
}

func Get() *Metrics {
	if defaultMetrics == nil {
		return InitMetrics("pacebench", "")
	}
	return defaultMetrics
}

func (m *Metrics) RecordHTTPRequest(route, method, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(route, method, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

func (m *Metrics) RecordInstanceUploaded(nodes, edges int) {
	m.InstancesUploadedTotal.Inc()
	m.InstanceNodesTotal.Observe(float64(nodes))
	m.InstanceEdgesTotal.Observe(float64(edges))
}

func (m *Metrics) RecordInstanceDeleted() {
	m.InstancesDeletedTotal.Inc()
}

func (m *Metrics) RecordSolutionUploaded(resultKind string) {
	m.SolutionsUploadedTotal.WithLabelValues(resultKind).Inc()
}

func (m *Metrics) RecordOrphanInstanceDataGC(count int) {
	m.OrphanInstanceDataGCTotal.Add(float64(count))
}

func (m *Metrics) RecordOrphanSolutionDataGC(count int) {
	m.OrphanSolutionDataGCTotal.Add(float64(count))
}

func (m *Metrics) RecordDependencyError(dependency string) {
	m.DependencyErrorsTotal.WithLabelValues(dependency).Inc()
}

func (m *Metrics) SetServiceInfo(version, environment string) {
	m.ServiceInfo.WithLabelValues(version, environment).Set(1)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func StartMetricsServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}
