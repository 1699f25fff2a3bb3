// Package metrics holds the Prometheus collectors shared by the pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubjectCache counts subject resolution lookups by result ("hit" or "miss")
	SubjectCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curious_subject_cache_total",
		Help: "Subject resolution cache lookups by result",
	}, []string{"result"})

	// LLMRepairs counts repair passes by outcome ("fixed" or "failed")
	LLMRepairs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curious_llm_repairs_total",
		Help: "LLM output repair passes by outcome",
	}, []string{"outcome"})

	LLMLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "curious_llm_request_duration_seconds",
		Help:    "Subject resolution LLM latency in seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	})

	// SearchRequests counts provider searches by source and outcome ("ok" or "degraded")
	SearchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curious_search_requests_total",
		Help: "Search provider calls by source and outcome",
	}, []string{"source", "outcome"})

	SearchLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "curious_search_request_duration_seconds",
		Help:    "Search provider latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"source"})

	// ContentsPersisted counts content rows written by the fan-out
	ContentsPersisted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curious_contents_persisted_total",
		Help: "Content rows persisted by source",
	}, []string{"source"})

	PromptsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curious_prompts_processed_total",
		Help: "Prompts run through the fan-out by outcome",
	}, []string{"outcome"})
)
