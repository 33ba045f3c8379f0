package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/travel-query-service/internal/config"
	"github.com/couchcryptid/travel-query-service/internal/domain"
	"github.com/couchcryptid/travel-query-service/internal/observability"
)

const provider = "open_meteo"

// ErrNoCurrentConditions is returned when the forecast carries no "current" block.
var ErrNoCurrentConditions = errors.New("open-meteo response has no current conditions")

// Client implements domain.WeatherProvider using the Open-Meteo forecast API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an Open-Meteo weather client.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.OpenMeteoURL,
		httpClient: &http.Client{
			Timeout: cfg.OpenMeteoTimeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Current returns the current temperature and precipitation probability.
func (c *Client) Current(ctx context.Context, lat, lon float64) (domain.Weather, error) {
	params := url.Values{
		"latitude":      {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude":     {strconv.FormatFloat(lon, 'f', -1, 64)},
		"current":       {"temperature_2m,precipitation_probability"},
		"forecast_days": {"1"},
	}

	start := time.Now()
	w, err := c.doRequest(ctx, c.baseURL+"/v1/forecast?"+params.Encode())
	c.metrics.ProviderDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, ErrNoCurrentConditions):
		c.metrics.ProviderRequests.WithLabelValues(provider, "empty").Inc()
	case err != nil:
		c.metrics.ProviderRequests.WithLabelValues(provider, "error").Inc()
	default:
		c.metrics.ProviderRequests.WithLabelValues(provider, "success").Inc()
	}
	return w, err
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (domain.Weather, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("open-meteo forecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Weather{}, fmt.Errorf("open-meteo API error: status %d: %s", resp.StatusCode, body)
	}

	var forecast response
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return domain.Weather{}, fmt.Errorf("decode response: %w", err)
	}
	if forecast.Current == nil {
		return domain.Weather{}, ErrNoCurrentConditions
	}

	w := domain.Weather{TemperatureC: forecast.Current.Temperature}
	if p := forecast.Current.PrecipitationProbability; p != nil {
		w.PrecipitationProbability = *p
	}
	return w, nil
}

// Open-Meteo API response types.

type response struct {
	Current *current `json:"current"`
}

type current struct {
	Temperature              *float64 `json:"temperature_2m"`
	PrecipitationProbability *float64 `json:"precipitation_probability"`
}
