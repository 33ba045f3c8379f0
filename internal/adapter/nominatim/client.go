package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/travel-query-service/internal/config"
	"github.com/couchcryptid/travel-query-service/internal/domain"
	"github.com/couchcryptid/travel-query-service/internal/observability"
	"golang.org/x/time/rate"
)

const provider = "nominatim"

// Client implements domain.Geocoder using the Nominatim search API.
// Requests are throttled by a token bucket to respect the public usage policy.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Nominatim geocoding client.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   cfg.NominatimURL,
		userAgent: cfg.NominatimUserAgent,
		httpClient: &http.Client{
			Timeout: cfg.NominatimTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.NominatimRateLimit), 1),
		metrics: metrics,
		logger:  logger,
	}
}

// Search returns up to limit candidates for a free-text query, in provider
// ranking order. No match is an empty slice, not an error.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.GeocodeResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("nominatim rate limit: %w", err)
	}

	params := url.Values{
		"q":              {query},
		"format":         {"json"},
		"limit":          {strconv.Itoa(limit)},
		"addressdetails": {"1"},
		"namedetails":    {"1"},
		"extratags":      {"1"},
	}

	start := time.Now()
	results, err := c.doRequest(ctx, c.baseURL+"/search?"+params.Encode())
	c.metrics.ProviderDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		c.metrics.ProviderRequests.WithLabelValues(provider, "error").Inc()
		return nil, err
	case len(results) == 0:
		c.metrics.ProviderRequests.WithLabelValues(provider, "empty").Inc()
	default:
		c.metrics.ProviderRequests.WithLabelValues(provider, "success").Inc()
	}
	c.logger.Debug("nominatim search", "query", query, "results", len(results))
	return results, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) ([]domain.GeocodeResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("nominatim API error: status %d: %s", resp.StatusCode, body)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]domain.GeocodeResult, 0, len(places))
	for _, p := range places {
		r, err := p.toResult()
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// Nominatim API response types.

type place struct {
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Class       string            `json:"class"`
	Type        string            `json:"type"`
	Importance  float64           `json:"importance"`
	DisplayName string            `json:"display_name"`
	Name        string            `json:"name"`
	NameDetails map[string]string `json:"namedetails"`
	ExtraTags   map[string]string `json:"extratags"`
}

func (p place) toResult() (domain.GeocodeResult, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("parse lat %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("parse lon %q: %w", p.Lon, err)
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = strings.TrimSpace(p.NameDetails["name"])
	}

	return domain.GeocodeResult{
		Lat:         lat,
		Lon:         lon,
		Type:        p.Type,
		Class:       p.Class,
		Importance:  p.Importance,
		DisplayName: p.DisplayName,
		Name:        name,
		Tags:        p.ExtraTags,
		AltNames:    p.NameDetails,
	}, nil
}
