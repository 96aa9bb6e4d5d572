// Package metrics - счетчики prometheus для ядра.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SparksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sparks_created_total",
		Help: "Number of sparks created.",
	})

	SparksExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sparks_expired_total",
		Help: "Number of sparks evicted after their 24h lifetime.",
	})

	MessagesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "messages_posted_total",
		Help: "Number of messages appended to spark logs.",
	})

	MessagesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "messages_rejected_total",
		Help: "Number of rejected posts by reason.",
	}, []string{"reason"})
)
