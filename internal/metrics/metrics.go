// Package metrics holds the host's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dtabridge"

var (
	MessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_total",
		Help:      "Inbound messages by type and result (ok, error, panic).",
	}, []string{"type", "result"})

	MessageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "message_duration_seconds",
		Help:      "Time spent handling one inbound message.",
		Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
	}, []string{"type"})

	TransfersStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transfers_started_total",
		Help:      "Transfers registered with download_start.",
	})

	TransfersFinished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transfers_finished_total",
		Help:      "Transfers that reached a terminal state, by state.",
	}, []string{"state"})

	ActiveTransfers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_transfers",
		Help:      "Transfers currently running or paused.",
	})

	BytesDownloaded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "downloaded_bytes_total",
		Help:      "Bytes written to transfer destinations.",
	})

	JournalErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "journal_errors_total",
		Help:      "Failed writes to the transfer journal.",
	})
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		MessagesTotal,
		MessageDuration,
		TransfersStarted,
		TransfersFinished,
		ActiveTransfers,
		BytesDownloaded,
		JournalErrors,
	)
}
