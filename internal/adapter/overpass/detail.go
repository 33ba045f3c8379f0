package overpass

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/couchcryptid/travel-query-service/internal/domain"
)

// detailRadiusMeters bounds the tag lookup around the geocoded attraction.
const detailRadiusMeters = 1000

type elementTagger interface {
	ElementTags(ctx context.Context, name string, lat, lon float64, radiusMeters int) (map[string]string, error)
}

// DetailProvider implements domain.PlaceDetailProvider. It locates the
// attraction with the geocoder, then enriches it with the tags of the
// matching OpenStreetMap feature.
type DetailProvider struct {
	geocoder domain.Geocoder
	tags     elementTagger
	logger   *slog.Logger
}

// NewDetailProvider creates a DetailProvider.
func NewDetailProvider(geocoder domain.Geocoder, tags *Client, logger *slog.Logger) *DetailProvider {
	return &DetailProvider{geocoder: geocoder, tags: tags, logger: logger}
}

func (p *DetailProvider) Describe(ctx context.Context, name, city string) (domain.PlaceDetails, error) {
	query := name
	if city != "" {
		query = name + ", " + city
	}

	candidates, err := p.geocoder.Search(ctx, query, domain.GeocodeCandidateLimit)
	if err != nil {
		return domain.PlaceDetails{}, fmt.Errorf("locate attraction %q: %w", name, err)
	}
	best, ok := domain.SelectAttractionMatch(name, candidates)
	if !ok || (best.Lat == 0 && best.Lon == 0) {
		return domain.PlaceDetails{}, domain.ErrPlaceNotFound
	}

	details := domain.PlaceDetails{
		Name:        strings.TrimSpace(best.Name),
		DisplayName: best.DisplayName,
		Lat:         best.Lat,
		Lon:         best.Lon,
	}
	if details.Name == "" {
		details.Name = name
	}

	tags, err := p.tags.ElementTags(ctx, name, best.Lat, best.Lon, detailRadiusMeters)
	if err != nil {
		p.logger.Warn("overpass detail lookup failed, using geocoder tags", "place", name, "error", err)
	}
	details = domain.MergeDetailTags(details, tags)
	return domain.MergeDetailTags(details, best.Tags), nil
}
