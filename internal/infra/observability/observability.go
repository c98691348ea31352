// Package observability holds the Prometheus metric set for the order
// flow. Metrics are registered on the default registry and exposed by the
// API server's /metrics endpoint when enabled in config.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is the instrument set the sales service reports into.
type Metrics struct {
	OrdersCreated     *prometheus.CounterVec // by customer type
	OrdersBlocked     *prometheus.CounterVec // by reason (overdue, over_limit)
	StatusTransitions *prometheus.CounterVec // by target status
	PaymentsConfirmed prometheus.Counter
	RevenueCollected  prometheus.Counter // đồng received, paidAmount sum
	DiscountGranted   prometheus.Counter // đồng given away at order creation
}

// New registers and returns the metric set. Call once per process.
func New() *Metrics {
	return &Metrics{
		OrdersCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "voltdesk_orders_created_total",
			Help: "Orders created, by customer type.",
		}, []string{"customer_type"}),
		OrdersBlocked: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "voltdesk_orders_blocked_total",
			Help: "Agent orders rejected by credit policy, by reason.",
		}, []string{"reason"}),
		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "voltdesk_order_transitions_total",
			Help: "Order status transitions applied, by target status.",
		}, []string{"to"}),
		PaymentsConfirmed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "voltdesk_payments_confirmed_total",
			Help: "Payments confirmed.",
		}),
		RevenueCollected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "voltdesk_revenue_collected_dong",
			Help: "Total đồng collected through confirmed payments.",
		}),
		DiscountGranted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "voltdesk_discount_granted_dong",
			Help: "Total đồng of volume discount granted at order creation.",
		}),
	}
}

// Nop returns an unregistered metric set for tests, so parallel test
// packages do not collide on the default registry.
func Nop() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		OrdersCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voltdesk_orders_created_total", Help: "test",
		}, []string{"customer_type"}),
		OrdersBlocked: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voltdesk_orders_blocked_total", Help: "test",
		}, []string{"reason"}),
		StatusTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "voltdesk_order_transitions_total", Help: "test",
		}, []string{"to"}),
		PaymentsConfirmed: f.NewCounter(prometheus.CounterOpts{
			Name: "voltdesk_payments_confirmed_total", Help: "test",
		}),
		RevenueCollected: f.NewCounter(prometheus.CounterOpts{
			Name: "voltdesk_revenue_collected_dong", Help: "test",
		}),
		DiscountGranted: f.NewCounter(prometheus.CounterOpts{
			Name: "voltdesk_discount_granted_dong", Help: "test",
		}),
	}
}
