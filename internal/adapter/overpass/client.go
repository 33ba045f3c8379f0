package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/couchcryptid/travel-query-service/internal/config"
	"github.com/couchcryptid/travel-query-service/internal/observability"
)

const provider = "overpass"

// Client implements domain.PlacesProvider using the Overpass API.
type Client struct {
	endpoint   string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an Overpass client.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		endpoint: cfg.OverpassURL,
		httpClient: &http.Client{
			Timeout: cfg.OverpassTimeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Nearby lists the names of tourism features of the given categories within
// radiusMeters of a point. Names are returned raw, in provider order.
func (c *Client) Nearby(ctx context.Context, lat, lon float64, radiusMeters int, categories []string) ([]string, error) {
	elements, err := c.run(ctx, nearbyQuery(lat, lon, radiusMeters, categories))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(elements))
	for _, e := range elements {
		if name := strings.TrimSpace(e.Tags["name"]); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// ElementTags returns the tags of the first feature within radiusMeters whose
// name matches name case-insensitively. No match is an empty map.
func (c *Client) ElementTags(ctx context.Context, name string, lat, lon float64, radiusMeters int) (map[string]string, error) {
	elements, err := c.run(ctx, detailQuery(name, lat, lon, radiusMeters))
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 || elements[0].Tags == nil {
		return map[string]string{}, nil
	}
	return elements[0].Tags, nil
}

func nearbyQuery(lat, lon float64, radiusMeters int, categories []string) string {
	filter := fmt.Sprintf(`["tourism"~"^(%s)$"](around:%d,%g,%g)`, strings.Join(categories, "|"), radiusMeters, lat, lon)
	return "[out:json][timeout:25];\n(\n" +
		"  node" + filter + ";\n" +
		"  way" + filter + ";\n" +
		"  relation" + filter + ";\n" +
		");\nout center;"
}

func detailQuery(name string, lat, lon float64, radiusMeters int) string {
	filter := fmt.Sprintf(`["name"~"%s",i](around:%d,%g,%g)`, quoteRegex(name), radiusMeters, lat, lon)
	return "[out:json][timeout:25];\n(\n" +
		"  node" + filter + ";\n" +
		"  way" + filter + ";\n" +
		"  relation" + filter + ";\n" +
		");\nout body;"
}

// quoteRegex makes name a literal regex inside an Overpass string.
func quoteRegex(name string) string {
	q := regexp.QuoteMeta(name)
	q = strings.ReplaceAll(q, `\`, `\\`)
	return strings.ReplaceAll(q, `"`, `\"`)
}

func (c *Client) run(ctx context.Context, query string) ([]element, error) {
	start := time.Now()
	elements, err := c.doRequest(ctx, query)
	c.metrics.ProviderDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		c.metrics.ProviderRequests.WithLabelValues(provider, "error").Inc()
	case len(elements) == 0:
		c.metrics.ProviderRequests.WithLabelValues(provider, "empty").Inc()
	default:
		c.metrics.ProviderRequests.WithLabelValues(provider, "success").Inc()
	}
	return elements, err
}

func (c *Client) doRequest(ctx context.Context, query string) ([]element, error) {
	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("overpass API error: status %d: %s", resp.StatusCode, body)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.Elements, nil
}

// Overpass API response types.

type response struct {
	Elements []element `json:"elements"`
}

type element struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Tags map[string]string `json:"tags"`
}
