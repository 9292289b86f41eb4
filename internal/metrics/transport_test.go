package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestWatcherRecordsResponsesByClass(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/me" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client := &http.Client{Transport: NewRequestWatcher(server.Client().Transport)}

	before401 := testutil.ToFloat64(ResponsesCounter.WithLabelValues("/api/auth/me", "4xx"))
	before200 := testutil.ToFloat64(ResponsesCounter.WithLabelValues("/api/auth/login", "2xx"))

	resp, err := client.Get(server.URL + "/api/auth/me")
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp, err = client.Post(server.URL+"/api/auth/login", "application/json", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, before401+1, testutil.ToFloat64(ResponsesCounter.WithLabelValues("/api/auth/me", "4xx")))
	assert.Equal(t, before200+1, testutil.ToFloat64(ResponsesCounter.WithLabelValues("/api/auth/login", "2xx")))
	assert.Positive(t, testutil.CollectAndCount(RequestsHistogram))
}

func TestRequestWatcherPropagatesTransportErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := &http.Client{Transport: NewRequestWatcher(nil)}

	_, err := client.Get(url + "/api/auth/me")
	require.Error(t, err)
}

func TestStatusClass(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{code: 200, want: "2xx"},
		{code: 201, want: "2xx"},
		{code: 302, want: "3xx"},
		{code: 403, want: "4xx"},
		{code: 502, want: "5xx"},
		{code: 0, want: "other"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusClass(tt.code))
	}
}

func TestWriteTextfileExportsRecordedRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	client := &http.Client{Transport: NewRequestWatcher(server.Client().Transport)}
	resp, err := client.Get(server.URL + "/api/auth/signup")
	require.NoError(t, err)
	_ = resp.Body.Close()

	path := filepath.Join(t.TempDir(), "textfile", "wd.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "walletdash_api_requests_seconds_count")
	assert.Contains(t, string(data), `walletdash_api_responses_total{class="2xx",endpoint="/api/auth/signup"}`)
}
