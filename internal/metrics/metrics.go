package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSucceeded = "succeeded"
	ResultRejected  = "rejected" // empty cart, unavailable product, insufficient stock
	ResultFailed    = "failed"   // persistence-level failures
)

var (
	checkouts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "puredairy",
		Name:      "checkouts_total",
		Help:      "Checkout attempts by result.",
	}, []string{"result"})

	orderValue = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "puredairy",
		Name:      "checkout_order_value",
		Help:      "Value of successfully committed orders.",
		Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
	})
)

func init() {
	prometheus.MustRegister(checkouts, orderValue)
}

func RecordCheckout(result string) {
	checkouts.WithLabelValues(result).Inc()
}

func ObserveOrderValue(total float64) {
	orderValue.Observe(total)
}

// Handler serves the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
