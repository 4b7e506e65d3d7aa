// Package metrics defines all custom Prometheus metrics for the freelance
// marketplace API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry via promauto;
// the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "freelance"

// ProjectsCreatedTotal counts newly posted projects.
// Label:
//   - category: the project category (e.g. "logo", "ui-ux")
var ProjectsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created, by category.",
	},
	[]string{"category"},
)

// ResponsesCreatedTotal counts submitted bids.
var ResponsesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "responses_created_total",
		Help:      "Total number of responses (bids) submitted.",
	},
)

// ResponsesApprovedTotal counts approvals granted by project owners.
var ResponsesApprovedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "responses_approved_total",
		Help:      "Total number of responses approved.",
	},
)

// ChatMessagesSentTotal counts chat messages appended.
var ChatMessagesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_messages_sent_total",
		Help:      "Total number of chat messages sent.",
	},
)

// ActivityEventsTotal counts audit-trail events that were persisted.
// Label:
//   - kind: the activity kind (e.g. "project_created", "message_sent")
var ActivityEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_events_total",
		Help:      "Total number of activity events persisted, by kind.",
	},
	[]string{"kind"},
)

// ActivityErrorsTotal counts audit-trail events that failed to persist.
var ActivityErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity events that failed to persist.",
	},
)
