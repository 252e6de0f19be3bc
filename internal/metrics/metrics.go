// AngelaMos | 2026
// metrics.go

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they like.
// All recording methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	inFlight        prometheus.Gauge

	companiesCreated *prometheus.CounterVec
	ordersCreated    *prometheus.CounterVec
	responsesCreated *prometheus.CounterVec
	responseStatus   *prometheus.CounterVec
	reviewsCreated   *prometheus.CounterVec
	eventsPublished  *prometheus.CounterVec
}

func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}),

		companiesCreated: domainCounter(namespace, "companies_created_total",
			"Companies registered.", "category"),
		ordersCreated: domainCounter(namespace, "orders_created_total",
			"Orders posted.", "category"),
		responsesCreated: domainCounter(namespace, "order_responses_created_total",
			"Responses submitted to orders.", "category"),
		responseStatus: domainCounter(namespace, "order_response_status_changes_total",
			"Order response status transitions.", "status"),
		reviewsCreated: domainCounter(namespace, "reviews_created_total",
			"Company reviews left.", "rating"),
		eventsPublished: domainCounter(namespace, "events_total",
			"Domain events handed to the event publisher.", "result"),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration,
		m.requestTotal,
		m.inFlight,
		m.companiesCreated,
		m.ordersCreated,
		m.responsesCreated,
		m.responseStatus,
		m.reviewsCreated,
		m.eventsPublished,
	)

	return m
}

func domainCounter(namespace, name, help, label string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "marketplace",
			Name:      name,
			Help:      help,
		},
		[]string{label},
	)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RequestStarted() {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

func (m *Metrics) RequestFinished(
	method, route string,
	status int,
	elapsed time.Duration,
) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.inFlight.Dec()
	m.requestDuration.WithLabelValues(method, route, code).
		Observe(elapsed.Seconds())
	m.requestTotal.WithLabelValues(method, route, code).Inc()
}

func (m *Metrics) CompanyCreated(category string) {
	if m == nil {
		return
	}
	m.companiesCreated.WithLabelValues(category).Inc()
}

func (m *Metrics) OrderCreated(category string) {
	if m == nil {
		return
	}
	m.ordersCreated.WithLabelValues(category).Inc()
}

func (m *Metrics) ResponseCreated(category string) {
	if m == nil {
		return
	}
	m.responsesCreated.WithLabelValues(category).Inc()
}

func (m *Metrics) ResponseStatusChanged(status string) {
	if m == nil {
		return
	}
	m.responseStatus.WithLabelValues(status).Inc()
}

func (m *Metrics) ReviewCreated(rating int) {
	if m == nil {
		return
	}
	m.reviewsCreated.WithLabelValues(strconv.Itoa(rating)).Inc()
}

// EventPublished records the outcome of handing an event to the publisher:
// "queued", "dropped" or "failed".
func (m *Metrics) EventPublished(result string) {
	if m == nil {
		return
	}
	m.eventsPublished.WithLabelValues(result).Inc()
}
