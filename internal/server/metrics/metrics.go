// Package metrics owns the server's Prometheus collectors. Collectors are
// registered on a private registry so tests can build as many as they need.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcomes. Unknown user and wrong password share OutcomeRejected.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Identity resolution outcomes.
const (
	IdentityValid   = "valid"
	IdentityExpired = "expired"
	IdentityInvalid = "invalid"
)

type Metrics struct {
	registry            *prometheus.Registry
	loginAttempts       *prometheus.CounterVec
	registrations       *prometheus.CounterVec
	identityResolutions *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskkeeper",
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskkeeper",
			Name:      "registrations_total",
			Help:      "User registrations by outcome.",
		}, []string{"outcome"}),
		identityResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskkeeper",
			Name:      "identity_resolutions_total",
			Help:      "Bearer token resolutions by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskkeeper",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "taskkeeper",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		m.loginAttempts,
		m.registrations,
		m.identityResolutions,
		m.httpRequests,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) LoginAttempt(outcome string) {
	m.loginAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Registration(outcome string) {
	m.registrations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IdentityResolution(outcome string) {
	m.identityResolutions.WithLabelValues(outcome).Inc()
}

// ObserveHTTP records one finished request. route is the mux pattern, not
// the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(route string, code int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
