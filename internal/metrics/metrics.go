package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Account metrics

	UsersRegisteredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "uptask",
		Name:      "users_registered_total",
		Help:      "Accounts created through registration.",
	})

	EmailsSentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "uptask",
		Name:      "emails_sent_total",
		Help:      "Auth emails handed to the sender, by kind and outcome.",
	}, []string{"kind", "outcome"})

	// Writes that run alongside a primary write and whose failure is only logged.
	BestEffortWriteFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "uptask",
		Name:      "best_effort_write_failures_total",
		Help:      "Secondary writes that failed after their primary write succeeded.",
	}, []string{"op"})

	// Janitor metrics

	TokensReapedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "uptask",
		Name:      "tokens_reaped_total",
		Help:      "Expired confirmation and reset tokens deleted by the janitor.",
	})

	JanitorCycleDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "uptask",
		Name:      "janitor_cycle_duration_seconds",
		Help:      "Time taken for one janitor sweep.",
		Buckets:   prometheus.DefBuckets,
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "uptask",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "uptask",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	AccessRejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "uptask",
		Name:      "access_rejections_total",
		Help:      "Requests stopped by the resource resolver chain, by stage.",
	}, []string{"stage"})
)

func Register() {
	prometheus.MustRegister(
		UsersRegisteredTotal,
		EmailsSentTotal,
		BestEffortWriteFailuresTotal,
		TokensReapedTotal,
		JanitorCycleDuration,
		HTTPRequestDuration,
		HTTPRequestsTotal,
		AccessRejectionsTotal,
	)
}

// NewServer serves /metrics plus any extra ops handlers (health probes) on addr.
func NewServer(addr string, extra map[string]http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	for path, h := range extra {
		mux.Handle(path, h)
	}
	return &http.Server{Addr: addr, Handler: mux}
}
