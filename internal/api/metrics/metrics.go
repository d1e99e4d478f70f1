// Package metrics defines all custom Prometheus metrics for the e-service
// platform. It is the single source of truth for metric names, labels, and
// help strings; metrics register themselves with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eservice"

// SignupsTotal counts successfully registered accounts.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successfully registered accounts.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure" (bad credentials), or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RequestsCreatedTotal counts newly created document requests.
// Label:
//   - document_type: "CNI", "PASSEPORT", or "PERMIS"
var RequestsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_created_total",
		Help:      "Total number of document requests created, by document type.",
	},
	[]string{"document_type"},
)

// RequestTransitionsTotal counts lifecycle transition attempts.
// Labels:
//   - operation: "submit", "reject", or "approve"
//   - result: "success", "invalid_transition", "not_found", or "error"
var RequestTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_transitions_total",
		Help:      "Total number of request status transition attempts, by operation and result.",
	},
	[]string{"operation", "result"},
)
