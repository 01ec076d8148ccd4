package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Latency of the behavior-log ingest handler
	BehaviorLogLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cognilearn_behavior_log_latency_seconds",
		Help:    "Latency of behavior log ingest handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of behavior logs received, by outcome
	BehaviorLogRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cognilearn_behavior_log_requests_total",
		Help: "Total number of behavior log ingest requests",
	}, []string{"outcome"})

	once sync.Once
)

func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			BehaviorLogLatency,
			BehaviorLogRequests,
		)
	})
}
