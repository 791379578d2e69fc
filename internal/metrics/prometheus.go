package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChatRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_chat_requests_total",
			Help: "Total chat requests processed",
		},
		[]string{"language", "status"},
	)

	ChatRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chatbot_chat_request_duration_seconds",
			Help:    "Chat request processing duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	MatchConfidence = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chatbot_match_confidence",
			Help:    "FAQ match confidence scores",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
	)

	FallbackResponsesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatbot_fallback_responses_total",
			Help: "Total queries answered with the fallback response",
		},
	)

	TranslationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_translations_total",
			Help: "Total translation backend calls",
		},
		[]string{"direction", "status"},
	)

	TranslationCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatbot_translation_cache_hits_total",
			Help: "Total translation cache hits",
		},
	)

	TranslationCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatbot_translation_cache_misses_total",
			Help: "Total translation cache misses",
		},
	)

	LogWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatbot_log_write_failures_total",
			Help: "Total query log writes that failed",
		},
	)
)

func Init() {
	prometheus.MustRegister(ChatRequestsTotal)
	prometheus.MustRegister(ChatRequestDuration)
	prometheus.MustRegister(MatchConfidence)
	prometheus.MustRegister(FallbackResponsesTotal)
	prometheus.MustRegister(TranslationsTotal)
	prometheus.MustRegister(TranslationCacheHits)
	prometheus.MustRegister(TranslationCacheMisses)
	prometheus.MustRegister(LogWriteFailures)
}

func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
