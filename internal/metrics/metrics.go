// Package metrics exposes Prometheus counters for the session flows and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	signIn       *prometheus.CounterVec
	rotate       *prometheus.CounterVec
	signOut      *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signIn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "petstat_auth_sign_in_total",
			Help: "Sign-in attempts by outcome.",
		}, []string{"outcome"}),
		rotate: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "petstat_auth_rotate_total",
			Help: "Refresh token rotations by outcome.",
		}, []string{"outcome"}),
		signOut: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "petstat_auth_sign_out_total",
			Help: "Sign-outs by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "petstat_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "petstat_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(c.signIn, c.rotate, c.signOut, c.httpRequests, c.httpLatency)
	return c
}

func (c *Collector) RecordSignIn(outcome string)  { c.signIn.WithLabelValues(outcome).Inc() }
func (c *Collector) RecordRotate(outcome string)  { c.rotate.WithLabelValues(outcome).Inc() }
func (c *Collector) RecordSignOut(outcome string) { c.signOut.WithLabelValues(outcome).Inc() }

func (c *Collector) ObserveHTTP(method, route string, status int, d time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
