package metrics

import (
	"net/http"
	"time"
)

// RequestWatcher is an http.RoundTripper that records latency and status
// class for every request it forwards.
type RequestWatcher struct {
	next http.RoundTripper
}

func NewRequestWatcher(next http.RoundTripper) *RequestWatcher {
	if next == nil {
		next = http.DefaultTransport
	}
	return &RequestWatcher{next: next}
}

func (m *RequestWatcher) RoundTrip(r *http.Request) (*http.Response, error) {
	var err error
	endpoint := r.URL.Path
	defer func(start time.Time) {
		CollectRequestsMetric(endpoint, r.Method, err, start)
	}(time.Now())

	resp, err := m.next.RoundTrip(r)
	if err != nil {
		return nil, err
	}

	CollectResponse(endpoint, resp.StatusCode)
	return resp, nil
}
