package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	commandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "queryctl",
			Subsystem: "query",
			Name:      "commands_total",
			Help:      "Total query commands sent, by verb and reply outcome.",
		},
		[]string{"adapter", "verb", "outcome"},
	)
	commandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "queryctl",
			Subsystem: "query",
			Name:      "command_duration_seconds",
			Help:      "Command round-trip duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"adapter", "verb"},
	)
	wireLines = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "queryctl",
			Subsystem: "wire",
			Name:      "lines_total",
			Help:      "Lines crossing the transport, by direction.",
		},
		[]string{"adapter", "direction"},
	)
	wireBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "queryctl",
			Subsystem: "wire",
			Name:      "bytes_total",
			Help:      "Bytes crossing the transport, by direction.",
		},
		[]string{"adapter", "direction"},
	)
	eventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "queryctl",
			Subsystem: "query",
			Name:      "events_total",
			Help:      "Asynchronous notifications received, by kind.",
		},
		[]string{"adapter", "kind"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(commandsTotal, commandDuration, wireLines, wireBytes, eventsTotal)
	})
}

func RecordCommand(adapter, verb, outcome string, duration time.Duration) {
	RegisterMetrics()
	commandsTotal.WithLabelValues(adapter, verb, outcome).Inc()
	commandDuration.WithLabelValues(adapter, verb).Observe(duration.Seconds())
}

func RecordLineSent(adapter string, bytes int) {
	RegisterMetrics()
	wireLines.WithLabelValues(adapter, "sent").Inc()
	wireBytes.WithLabelValues(adapter, "sent").Add(float64(bytes))
}

func RecordLineRead(adapter string, bytes int) {
	RegisterMetrics()
	wireLines.WithLabelValues(adapter, "read").Inc()
	wireBytes.WithLabelValues(adapter, "read").Add(float64(bytes))
}

func RecordEvent(adapter, kind string) {
	RegisterMetrics()
	eventsTotal.WithLabelValues(adapter, kind).Inc()
}
