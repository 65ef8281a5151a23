package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels for RecordUpdates.
const (
	ResultUpdated   = "updated"
	ResultNotFound  = "not_found"
	ResultAmbiguous = "ambiguous"
	ResultError     = "error"
)

// Result labels for Notifications.
const (
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultSkipped = "skipped"
)

var (
	RecordUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ddns_record_updates_total",
			Help: "DNS record update attempts by record type and result",
		},
		[]string{"type", "result"},
	)

	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ddns_notifications_total",
			Help: "Update notifications by delivery result",
		},
		[]string{"result"},
	)
)
