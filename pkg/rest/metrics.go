/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rest

import (
	"net/http"
	"strconv"
	"time"

	kitmetrics "github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// serverMetrics records request counts and latencies per resource type. The
// collectors live in the server's own registry so multiple servers can run in
// one process.
type serverMetrics struct {
	registry  *prom.Registry
	requests  kitmetrics.Counter
	durations kitmetrics.Histogram
}

func newServerMetrics() *serverMetrics {
	registry := prom.NewRegistry()

	requestsVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: "composer",
		Subsystem: "rest",
		Name:      "requests_total",
		Help:      "Total number of REST requests served.",
	}, []string{"type", "method", "status"})
	durationsVec := prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "composer",
		Subsystem: "rest",
		Name:      "request_duration_seconds",
		Help:      "REST request latency in seconds.",
		Buckets:   prom.DefBuckets,
	}, []string{"type", "method"})
	registry.MustRegister(requestsVec, durationsVec)

	return &serverMetrics{
		registry:  registry,
		requests:  kitprometheus.NewCounter(requestsVec),
		durations: kitprometheus.NewHistogram(durationsVec),
	}
}

func (m *serverMetrics) observe(resourceType, method string, status int, elapsed time.Duration) {
	m.requests.With("type", resourceType, "method", method, "status", strconv.Itoa(status)).Add(1)
	m.durations.With("type", resourceType, "method", method).Observe(elapsed.Seconds())
}

func (m *serverMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
