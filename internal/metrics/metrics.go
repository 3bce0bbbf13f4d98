package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Relay direction label values.
const (
	DirectionSubscriberToAdmin = "subscriber_to_admin"
	DirectionAdminToSubscriber = "admin_to_subscriber"
)

var (
	// RelayedMessages counts successfully relayed copies per direction.
	RelayedMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vincent_relayed_messages_total",
		Help: "Number of messages copied across the relay boundary.",
	}, []string{"direction"})

	// HandlerErrors counts update handlers that returned an error.
	HandlerErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vincent_handler_errors_total",
		Help: "Number of update handlers that failed.",
	})

	// TrackedUpdates counts inbound updates that went through user tracking.
	TrackedUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vincent_tracked_updates_total",
		Help: "Number of inbound updates with a resolvable sender.",
	})
)
