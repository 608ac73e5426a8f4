// Package metrics defines the custom Prometheus metrics for the storefront
// API. It is the single source of truth for metric names, labels and help
// strings. All metrics are registered with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Session and auth metrics ──────────────────────────────────────────────────

// SessionEventsTotal counts session lifecycle announcements.
// Label:
//   - reason: "created" or "deleted"
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session created/deleted announcements.",
	},
	[]string{"reason"},
)

// RateLimitedTotal counts auth attempts rejected by the rate limiter.
// Label:
//   - operation: "register", "login" or "forgot"
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of auth attempts rejected by the rate limiter.",
	},
	[]string{"operation"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

var CartOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Total number of cart reducer operations, by operation.",
	},
	[]string{"operation"},
)

// CartPersistErrorsTotal counts cart saves that failed. The client still gets
// the reduced cart, so this is the only trace of a lost write.
var CartPersistErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_persist_errors_total",
		Help:      "Total number of failed cart store writes.",
	},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts placed orders.
// Label:
//   - collection_method: "pickup" or "delivery"
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created, by collection method.",
	},
	[]string{"collection_method"},
)

var OrderStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_updates_total",
		Help:      "Total number of order status changes, by new status.",
	},
	[]string{"status"},
)

// ── Print order metrics ───────────────────────────────────────────────────────

var PrintOrdersSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "print_orders_submitted_total",
		Help:      "Total number of print orders submitted, by paper size and color type.",
	},
	[]string{"paper_size", "color_type"},
)

var PrintOrderStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "print_order_status_updates_total",
		Help:      "Total number of print order status changes, by new status.",
	},
	[]string{"status"},
)

// ── Event dispatch metrics ────────────────────────────────────────────────────

// EventsQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventsPublishedTotal counts sink deliveries.
// Labels:
//   - type: domain event type (e.g. "order.created")
//   - result: "ok" or "error"
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of domain events handed to the sink, by type and result.",
	},
	[]string{"type", "result"},
)

// EventsDroppedTotal counts events discarded because their worker queue was
// full or the dispatcher was stopped.
var EventsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Total number of domain events dropped before delivery.",
	},
	[]string{"type"},
)

// EventDeliveryDuration measures one sink delivery.
var EventDeliveryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "event_delivery_duration_seconds",
		Help:      "Duration of a single event delivery to the sink.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"type"},
)
