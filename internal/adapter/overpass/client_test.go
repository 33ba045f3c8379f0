package overpass

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/travel-query-service/internal/domain"
	"github.com/couchcryptid/travel-query-service/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_Nearby_Success(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		gotQuery = r.PostForm.Get("data")

		_, _ = w.Write([]byte(`{"elements":[
			{"type":"node","id":1,"tags":{"name":"Louvre Museum","tourism":"museum"}},
			{"type":"way","id":2,"tags":{"tourism":"viewpoint"}},
			{"type":"relation","id":3,"tags":{"name":"  Eiffel Tower  "}},
			{"type":"node","id":4}
		]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	names, err := c.Nearby(context.Background(), 48.8566, 2.3522, domain.AttractionRadiusMeters, domain.AttractionCategories())
	require.NoError(t, err)
	assert.Equal(t, []string{"Louvre Museum", "Eiffel Tower"}, names)

	assert.Contains(t, gotQuery, "[out:json][timeout:25];")
	assert.Contains(t, gotQuery, `node["tourism"~"^(attraction|museum|zoo|theme_park|gallery|monument|viewpoint)$"](around:10000,48.8566,2.3522);`)
	assert.Contains(t, gotQuery, `way["tourism"~`)
	assert.Contains(t, gotQuery, `relation["tourism"~`)
	assert.Contains(t, gotQuery, "out center;")
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.ProviderRequests.WithLabelValues(provider, "success")), 0)
}

func TestClient_Nearby_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"elements":[]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	names, err := c.Nearby(context.Background(), 1, 2, 10000, []string{"museum"})
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.ProviderRequests.WithLabelValues(provider, "empty")), 0)
}

func TestClient_Nearby_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`rate_limited`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Nearby(context.Background(), 1, 2, 10000, []string{"museum"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.ProviderRequests.WithLabelValues(provider, "error")), 0)
}

func TestClient_Nearby_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<?xml version="1.0"?>`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Nearby(context.Background(), 1, 2, 10000, []string{"museum"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_ElementTags(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotQuery = r.PostForm.Get("data")
		_, _ = w.Write([]byte(`{"elements":[
			{"type":"way","id":10,"tags":{"name":"Qutub Minar","heritage":"2","opening_hours":"Mo-Su 07:00-17:00"}},
			{"type":"node","id":11,"tags":{"name":"Qutub Minar Metro"}}
		]}`))
	}))
	defer srv.Close()

	tags, err := testClient(srv.URL).ElementTags(context.Background(), "Qutub Minar", 28.5245, 77.1855, 1000)
	require.NoError(t, err)
	assert.Equal(t, "2", tags["heritage"])
	assert.Equal(t, "Mo-Su 07:00-17:00", tags["opening_hours"])

	assert.Contains(t, gotQuery, `node["name"~"Qutub Minar",i](around:1000,28.5245,77.1855);`)
	assert.Contains(t, gotQuery, "out body;")
}

func TestClient_ElementTags_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"elements":[]}`))
	}))
	defer srv.Close()

	tags, err := testClient(srv.URL).ElementTags(context.Background(), "Nowhere", 1, 2, 1000)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestQuoteRegex(t *testing.T) {
	assert.Equal(t, "Qutub Minar", quoteRegex("Qutub Minar"))
	assert.Equal(t, `St\\. Paul's`, quoteRegex("St. Paul's"))
	assert.Equal(t, `The \"Gherkin\"`, quoteRegex(`The "Gherkin"`))
}
