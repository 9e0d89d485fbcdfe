package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "restaurant_supply"

// Metrics holds every collector the server exports. A nil *Metrics is valid and records nothing.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	stockMovements  *prometheus.CounterVec
	ordersSubmitted *prometheus.CounterVec
	lineItems       *prometheus.CounterVec
	casRetries      prometheus.Counter
	gatherer        prometheus.Gatherer
}

// New registers the collectors on registerer. Pass prometheus.NewRegistry() in tests.
func New(registerer prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		stockMovements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_movements_total",
			Help:      "Recorded stock movements by type and whether the out movement was clamped at zero.",
		}, []string{"type", "clamped"}),
		ordersSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_submitted_total",
			Help:      "Submitted orders by urgency.",
		}, []string{"urgent"}),
		lineItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "line_item_transitions_total",
			Help:      "Line item fulfillment transitions by resulting status.",
		}, []string{"status"}),
		casRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_version_conflicts_total",
			Help:      "Order writes retried after a concurrent update.",
		}),
		gatherer: gatherer,
	}
	registerer.MustRegister(m.requests, m.requestDuration, m.stockMovements, m.ordersSubmitted, m.lineItems, m.casRetries)
	return m
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) StockMovementRecorded(movementType string, clamped bool) {
	if m == nil {
		return
	}
	m.stockMovements.WithLabelValues(movementType, strconv.FormatBool(clamped)).Inc()
}

func (m *Metrics) OrderSubmitted(urgent bool) {
	if m == nil {
		return
	}
	m.ordersSubmitted.WithLabelValues(strconv.FormatBool(urgent)).Inc()
}

func (m *Metrics) LineItemTransitioned(status string) {
	if m == nil {
		return
	}
	m.lineItems.WithLabelValues(status).Inc()
}

func (m *Metrics) OrderVersionConflict() {
	if m == nil {
		return
	}
	m.casRetries.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	g := prometheus.DefaultGatherer
	if m != nil {
		g = m.gatherer
	}
	h := promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
