// Package metrics exposes Prometheus instrumentation for the stream engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	streamsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "streamkas",
		Subsystem: "engine",
		Name:      "streams_created_total",
		Help:      "Count of streams admitted by the engine.",
	})

	streamsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "streamkas",
		Subsystem: "engine",
		Name:      "streams_completed_total",
		Help:      "Count of streams that reached their committed total.",
	})

	activeStreams = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "streamkas",
		Subsystem: "engine",
		Name:      "active_streams",
		Help:      "Number of streams currently ticking.",
	})

	transfersSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "streamkas",
		Subsystem: "engine",
		Name:      "transfers_sent_total",
		Help:      "Count of transfers the gateway accepted.",
	})

	transferFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "streamkas",
		Subsystem: "engine",
		Name:      "transfer_failures_total",
		Help:      "Count of transfers the gateway rejected.",
	})

	sompiSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "streamkas",
		Subsystem: "engine",
		Name:      "sompi_sent_total",
		Help:      "Total base units moved across all streams.",
	})

	verificationResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "streamkas",
		Subsystem: "engine",
		Name:      "verification_results_total",
		Help:      "Terminal outcomes of on-chain verification polls.",
	}, []string{"result"})
)

// Engine records engine activity. The zero value is not usable; construct
// with NewEngine.
type Engine struct{}

// NewEngine constructs the engine metrics recorder. Collectors are
// registered on the default registry at package init.
func NewEngine() *Engine {
	return &Engine{}
}

func (m *Engine) StreamCreated() {
	if m == nil {
		return
	}
	streamsCreatedTotal.Inc()
}

func (m *Engine) StreamCompleted() {
	if m == nil {
		return
	}
	streamsCompletedTotal.Inc()
}

// SetActiveStreams updates the gauge of currently ticking streams.
func (m *Engine) SetActiveStreams(n int) {
	if m == nil {
		return
	}
	activeStreams.Set(float64(n))
}

func (m *Engine) TransferSent(amount int64) {
	if m == nil {
		return
	}
	transfersSentTotal.Inc()
	sompiSentTotal.Add(float64(amount))
}

func (m *Engine) TransferFailed() {
	if m == nil {
		return
	}
	transferFailuresTotal.Inc()
}

// VerificationResult records a terminal poll outcome ("accepted" or
// "not_found").
func (m *Engine) VerificationResult(result string) {
	if m == nil {
		return
	}
	verificationResultsTotal.WithLabelValues(result).Inc()
}
