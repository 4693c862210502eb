package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cours-de-latin/reducer/lexicon"
)

// metrics holds the server's Prometheus collectors. Each server has its
// own registry.
type metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	reductions     *prometheus.CounterVec
	ambiguity      prometheus.Histogram
}

func newMetrics(cache *lexicon.Cache) *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	m := &metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reducer_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		requestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reducer_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		reductions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reducer_reductions_total",
			Help: "Forest reductions by outcome.",
		}, []string{"outcome"}),
		ambiguity: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "reducer_forest_ambiguous_nodes",
			Help:    "Ambiguous nodes per forest before reduction.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	if cache != nil {
		factory.NewCounterFunc(prometheus.CounterOpts{
			Name: "reducer_lexicon_cache_hits_total",
			Help: "Word form lookups served from the cache.",
		}, func() float64 {
			hits, _ := cache.Stats()
			return float64(hits)
		})
		factory.NewCounterFunc(prometheus.CounterOpts{
			Name: "reducer_lexicon_cache_misses_total",
			Help: "Word form lookups that missed the cache.",
		}, func() float64 {
			_, misses := cache.Stats()
			return float64(misses)
		})
	}
	return m
}
