package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	backtestsTotal   *prometheus.CounterVec
	backtestDuration prometheus.Histogram
	signalsTotal     *prometheus.CounterVec
	tradesRecorded   prometheus.Counter
	jobsActive       prometheus.Gauge
	archiveWrites    *prometheus.CounterVec
	collectorFetches *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.backtestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hindsight_backtests_total",
			Help: "Total number of backtests",
		},
		[]string{"strategy", "status"},
	)
	r.backtestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hindsight_backtest_duration_seconds",
			Help:    "Backtest duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)
	r.signalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hindsight_signals_total",
			Help: "Total number of signals emitted during simulations",
		},
		[]string{"strategy", "signal"},
	)
	r.tradesRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hindsight_trades_recorded_total",
			Help: "Total number of trades recorded in ledgers",
		},
	)
	r.jobsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hindsight_jobs_active",
			Help: "Number of backtest jobs currently running",
		},
	)
	r.archiveWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hindsight_archive_writes_total",
			Help: "Total number of report archive writes",
		},
		[]string{"backend", "status"},
	)
	r.collectorFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hindsight_collector_fetches_total",
			Help: "Total number of price history fetches",
		},
		[]string{"provider", "status"},
	)

	reg.MustRegister(r.backtestsTotal)
	reg.MustRegister(r.backtestDuration)
	reg.MustRegister(r.signalsTotal)
	reg.MustRegister(r.tradesRecorded)
	reg.MustRegister(r.jobsActive)
	reg.MustRegister(r.archiveWrites)
	reg.MustRegister(r.collectorFetches)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordBacktest records a backtest completion.
func (r *Registry) RecordBacktest(strategy, status string, duration float64) {
	r.backtestsTotal.WithLabelValues(strategy, status).Inc()
	r.backtestDuration.Observe(duration)
}

// RecordSignals adds a run's tally for one signal kind.
func (r *Registry) RecordSignals(strategy, signal string, count int) {
	if count <= 0 {
		return
	}
	r.signalsTotal.WithLabelValues(strategy, signal).Add(float64(count))
}

// RecordTrades records trades added to a ledger.
func (r *Registry) RecordTrades(count int) {
	r.tradesRecorded.Add(float64(count))
}

// JobStarted increments the active job gauge.
func (r *Registry) JobStarted() {
	r.jobsActive.Inc()
}

// JobFinished decrements the active job gauge.
func (r *Registry) JobFinished() {
	r.jobsActive.Dec()
}

// RecordArchiveWrite records a report archive write.
func (r *Registry) RecordArchiveWrite(backend, status string) {
	r.archiveWrites.WithLabelValues(backend, status).Inc()
}

// RecordFetch records a price history fetch.
func (r *Registry) RecordFetch(provider, status string) {
	r.collectorFetches.WithLabelValues(provider, status).Inc()
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
