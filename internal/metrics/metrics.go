package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "walletdash",
			Name:      "api_requests_seconds",
			Help:      "Time taken by requests to the dashboard API",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint", "method", "error"},
	)

	ResponsesCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "walletdash",
			Name:      "api_responses_total",
			Help:      "Responses received from the dashboard API by status class",
		}, []string{"endpoint", "class"},
	)
)

func CollectRequestsMetric(endpoint, method string, err error, start time.Time) {
	RequestsHistogram.
		WithLabelValues(endpoint, method, errLabelValue(err)).
		Observe(time.Since(start).Seconds())
}

func CollectResponse(endpoint string, statusCode int) {
	ResponsesCounter.
		WithLabelValues(endpoint, statusClass(statusCode)).
		Inc()
}

// WriteTextfile dumps every registered metric to path in the text exposition
// format, ready for a node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func errLabelValue(err error) string {
	if err != nil {
		return "true"
	}
	return "false"
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	case code >= 200:
		return "2xx"
	default:
		return "other"
	}
}
