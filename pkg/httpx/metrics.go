package httpx

import (
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments outbound calls to the identity service.
type Metrics struct {
	inFlight prometheus.Gauge
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the client collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "client_in_flight_requests",
			Help:      "In-flight requests to the identity service.",
		}),
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "client_requests_total",
				Help:      "Total number of requests to the identity service.",
			},
			[]string{"method", "action", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "client_request_duration_seconds",
				Help:      "Identity service request latencies in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "action", "status"},
		),
	}

	for _, c := range []prometheus.Collector{m.inFlight, m.total, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Middleware records count, latency and in-flight requests. The action label
// is the last path segment ("get-users", "enforce"), which keeps label
// cardinality bounded by the API surface. Transport failures are recorded
// with status "error".
func (m *Metrics) Middleware() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			action := path.Base(r.URL.Path)

			m.inFlight.Inc()
			defer m.inFlight.Dec()

			start := time.Now()
			resp, err := next.RoundTrip(r)

			status := "error"
			if err == nil {
				status = strconv.Itoa(resp.StatusCode)
			}

			m.duration.WithLabelValues(r.Method, action, status).Observe(time.Since(start).Seconds())
			m.total.WithLabelValues(r.Method, action, status).Inc()
			return resp, err
		})
	}
}
