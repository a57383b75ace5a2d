package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

const namespace = "shop"

// Module provides the process-wide metrics recorder.
var Module = fx.Provide(NewRecorder)

// Recorder owns a private registry with HTTP and order pipeline collectors.
type Recorder struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	ordersPlaced  prometheus.Counter
	notifications *prometheus.CounterVec
	resends       *prometheus.CounterVec
}

// NewRecorder registers all collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		ordersPlaced: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Orders committed by the placement pipeline.",
		}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_notifications_total",
			Help:      "Delivery note notifications after placement, by outcome.",
		}, []string{"status"}),
		resends: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_resent_total",
			Help:      "Delivery note resend attempts, by result.",
		}, []string{"result"}),
	}
}

// ObserveHTTP records one finished request.
func (r *Recorder) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	r.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.latency.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func (r *Recorder) OrderPlaced() {
	r.ordersPlaced.Inc()
}

func (r *Recorder) Notification(status string) {
	r.notifications.WithLabelValues(status).Inc()
}

func (r *Recorder) DocumentResent(result string) {
	r.resends.WithLabelValues(result).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
