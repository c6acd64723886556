// Package metrics содержит счётчики Prometheus для оформления заказов.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CheckoutOrders — количество успешно оформленных заказов.
var CheckoutOrders = promauto.NewCounter(prometheus.CounterOpts{
	Name: "checkout_orders_total",
	Help: "Number of successfully placed orders.",
})

// CheckoutRejected — количество отклонённых оформлений по причинам.
var CheckoutRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "checkout_rejected_total",
	Help: "Number of rejected checkout attempts by reason.",
}, []string{"reason"})
