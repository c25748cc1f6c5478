package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ordersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_total",
			Help: "Orders by status (pending/processing/completed/rejected).",
		},
		[]string{"status"},
	)

	orderAmount = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_amount",
			Help:    "Distribution of computed order amounts.",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
	)
)

func init() {
	register(ordersTotal, orderAmount)
}

func IncOrder(status string) {
	ordersTotal.WithLabelValues(norm(status)).Inc()
}

func ObserveOrderAmount(amount float64) {
	orderAmount.Observe(amount)
}
