package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Total number of chat messages processed, by resolved intent",
		},
		[]string{"intent"},
	)

	ChatHandlerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_handler_failures_total",
			Help: "Total number of handler faults converted to degraded replies",
		},
		[]string{"intent", "error_code"},
	)

	ChatHandlerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chat_handler_duration_seconds",
			Help: "Duration of intent handler execution in seconds",
		},
		[]string{"intent"},
	)

	ChatAccessDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_access_denials_total",
			Help: "Total number of section access denials returned to users",
		},
		[]string{"intent"},
	)
)
