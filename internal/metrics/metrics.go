// Package metrics defines the Prometheus metrics of the backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TelegramMessages counts handled Telegram messages by outcome:
	// the intent kind, "link", "miss" or "error".
	TelegramMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "centavo_telegram_messages_total",
		Help: "Handled Telegram messages by outcome",
	}, []string{"outcome"})

	// TransactionsCreated counts stored transaction records by type.
	TransactionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "centavo_transactions_created_total",
		Help: "Created transactions by type",
	}, []string{"type"})

	// JobRuns counts background job executions by job and result.
	JobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "centavo_job_runs_total",
		Help: "Background job executions by job and result",
	}, []string{"job", "result"})

	// NotificationsSent counts Telegram notifications pushed by the
	// alert job.
	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "centavo_notifications_sent_total",
		Help: "Telegram notifications sent by the alert job",
	})
)
