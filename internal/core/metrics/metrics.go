package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Events 业务事件计数，label 取 events 包里的类型名
	Events = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shop", Name: "events_total", Help: "Count of committed business events"},
		[]string{"event"},
	)
	PurchaseAmount = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "shop", Name: "purchase_amount_total", Help: "Sum of created purchase totals"},
	)
	PurchaseItems = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "shop",
			Name:      "purchase_line_items",
			Help:      "Line items per created purchase",
			Buckets:   []float64{1, 2, 3, 5, 10, 20, 50},
		},
	)
)

func init() { prometheus.MustRegister(Events, PurchaseAmount, PurchaseItems) }
