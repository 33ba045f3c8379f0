package openmeteo

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/travel-query-service/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Current_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "12.9716", q.Get("latitude"))
		assert.Equal(t, "77.5946", q.Get("longitude"))
		assert.Equal(t, "temperature_2m,precipitation_probability", q.Get("current"))
		assert.Equal(t, "1", q.Get("forecast_days"))

		_, _ = w.Write([]byte(`{"latitude":12.97,"longitude":77.59,"current":{"time":"2024-06-01T09:00","interval":900,"temperature_2m":24.6,"precipitation_probability":35}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	w, err := c.Current(context.Background(), 12.9716, 77.5946)
	require.NoError(t, err)
	require.NotNil(t, w.TemperatureC)
	assert.InDelta(t, 24.6, *w.TemperatureC, 1e-9)
	assert.InDelta(t, 35, w.PrecipitationProbability, 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.ProviderRequests.WithLabelValues(provider, "success")), 0)
}

func TestClient_Current_MissingFields(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"current":{"time":"2024-06-01T09:00","precipitation_probability":null}}`)

	w, err := testClient(srv.URL).Current(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Nil(t, w.TemperatureC)
	assert.Zero(t, w.PrecipitationProbability)
}

func TestClient_Current_NoCurrentBlock(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"latitude":1,"longitude":2}`)

	c := testClient(srv.URL)
	_, err := c.Current(context.Background(), 1, 2)
	require.ErrorIs(t, err, ErrNoCurrentConditions)
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.ProviderRequests.WithLabelValues(provider, "empty")), 0)
}

func TestClient_Current_APIError(t *testing.T) {
	srv := serve(t, http.StatusBadRequest, `{"error":true,"reason":"Latitude must be in range of -90 to 90°."}`)

	c := testClient(srv.URL)
	_, err := c.Current(context.Background(), 100, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "Latitude must be")
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.ProviderRequests.WithLabelValues(provider, "error")), 0)
}

func TestClient_Current_InvalidJSON(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"current":`)

	_, err := testClient(srv.URL).Current(context.Background(), 1, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_Current_ContextCancelled(t *testing.T) {
	srv := serve(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(srv.URL).Current(ctx, 1, 2)
	require.Error(t, err)
}
