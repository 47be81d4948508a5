package metrics

import "github.com/prometheus/client_golang/prometheus"

var HttpRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests received",
	},
	[]string{"endpoint", "status", "method"},
)

var HttpRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"endpoint", "method"},
)

var HttpRateLimitRejectionsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "http_rate_limit_rejections_total",
		Help: "Total number of HTTP requests rejected due to rate limiting",
	},
)

var QuotaDenialsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "quota_denials_total",
		Help: "Total number of generation requests denied by the daily quota",
	},
)

var ModelCallsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "model_calls_total",
		Help: "Total number of text-generation model calls by pipeline stage",
	},
	[]string{"stage", "status"},
)

var ModelCallDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "model_call_duration_seconds",
		Help:    "Duration of text-generation model calls in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"stage"},
)

var BlockedPromptsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "blocked_prompts_total",
		Help: "Total number of prompts rejected by the injection filter",
	},
)

func Init() {
	prometheus.MustRegister(HttpRequestsTotal)
	prometheus.MustRegister(HttpRequestDuration)
	prometheus.MustRegister(HttpRateLimitRejectionsTotal)
	prometheus.MustRegister(QuotaDenialsTotal)
	prometheus.MustRegister(ModelCallsTotal)
	prometheus.MustRegister(ModelCallDuration)
	prometheus.MustRegister(BlockedPromptsTotal)
}
