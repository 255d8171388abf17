package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK = "ok"
)

type ledgerPromMetrics struct {
	startUnixSeconds  prometheus.Gauge
	executedTotal     *prometheus.CounterVec
	executionDuration prometheus.Histogram
	eventsPublished   *prometheus.CounterVec
	lamportsDonated   prometheus.Counter
	lamportsWithdrawn prometheus.Counter
	committedSequence prometheus.Gauge
	panicCount        prometheus.Counter
}

func newLedgerPromMetrics(reg prometheus.Registerer) *ledgerPromMetrics {
	factory := promauto.With(reg)
	return &ledgerPromMetrics{
		startUnixSeconds: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "crowdfund_start_timestamp_unix_seconds",
				Help: "Unix timestamp of the process start",
			},
		),
		executedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crowdfund_executed_instructions_total",
				Help: "Executed instructions by program and result (ok or error code)",
			},
			[]string{"program", "result"},
		),
		executionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "crowdfund_execution_duration_seconds",
				Help:    "Time spent executing and committing one instruction",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
		eventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crowdfund_events_published_total",
				Help: "Ledger events published after commit",
			},
			[]string{"type"},
		),
		lamportsDonated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "crowdfund_lamports_donated_total",
				Help: "Lamports swept from donation records into campaigns",
			},
		),
		lamportsWithdrawn: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "crowdfund_lamports_withdrawn_total",
				Help: "Lamports withdrawn by campaign admins",
			},
		),
		committedSequence: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "crowdfund_committed_sequence",
				Help: "Sequence number of the last committed instruction",
			},
		),
		panicCount: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "crowdfund_panic_count",
				Help: "Panics recovered in background goroutines",
			},
		),
	}
}

var (
	ledgerMetrics *ledgerPromMetrics
	initOnce      sync.Once
)

// InitMetrics registers the ledger metrics on the default registry. Recording
// before InitMetrics is a no-op.
func InitMetrics() {
	initOnce.Do(func() {
		ledgerMetrics = newLedgerPromMetrics(prometheus.DefaultRegisterer)
		ledgerMetrics.startUnixSeconds.SetToCurrentTime()
	})
}

func RecordExecution(program, result string, duration time.Duration) {
	if ledgerMetrics == nil {
		return
	}
	ledgerMetrics.executedTotal.With(prometheus.Labels{
		"program": program,
		"result":  result,
	}).Inc()
	ledgerMetrics.executionDuration.Observe(duration.Seconds())
}

func RecordEvent(eventType string) {
	if ledgerMetrics == nil {
		return
	}
	ledgerMetrics.eventsPublished.With(prometheus.Labels{
		"type": eventType,
	}).Inc()
}

func AddDonated(amount uint64) {
	if ledgerMetrics == nil {
		return
	}
	ledgerMetrics.lamportsDonated.Add(float64(amount))
}

func AddWithdrawn(amount uint64) {
	if ledgerMetrics == nil {
		return
	}
	ledgerMetrics.lamportsWithdrawn.Add(float64(amount))
}

func SetCommittedSequence(seq uint64) {
	if ledgerMetrics == nil {
		return
	}
	ledgerMetrics.committedSequence.Set(float64(seq))
}

func IncreasePanicCount() {
	if ledgerMetrics == nil {
		return
	}
	ledgerMetrics.panicCount.Inc()
}
