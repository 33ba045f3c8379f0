package domain

import (
	"context"
	"strings"
)

// GeocodeResult is one candidate location returned by a geocoding provider.
type GeocodeResult struct {
	Lat         float64           `json:"lat"`
	Lon         float64           `json:"lon"`
	Type        string            `json:"type"`
	Class       string            `json:"class"`
	Importance  float64           `json:"importance"` // 0.0–1.0 provider prominence score
	DisplayName string            `json:"display_name"`
	Name        string            `json:"name"`
	Tags        map[string]string `json:"tags,omitempty"`
	AltNames    map[string]string `json:"alt_names,omitempty"` // e.g. "name:en" → "Munich"
}

// EnglishName returns the explicit English name of the location, if the
// provider supplied one.
func (r GeocodeResult) EnglishName() string {
	for _, key := range []string{"name:en", "name_en"} {
		if v := strings.TrimSpace(r.AltNames[key]); v != "" {
			return v
		}
		if v := strings.TrimSpace(r.Tags[key]); v != "" {
			return v
		}
	}
	return ""
}

// Geocoder resolves free text to ranked candidate locations.
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]GeocodeResult, error)
}

// Weather holds point-in-time conditions for a coordinate.
type Weather struct {
	TemperatureC             *float64 `json:"temperature_c,omitempty"`
	PrecipitationProbability float64  `json:"precipitation_probability"`
}

// WeatherProvider fetches current conditions for a coordinate.
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (Weather, error)
}

// PlacesProvider lists raw attraction names near a coordinate. Names may be
// duplicated or vary in spelling; callers deduplicate.
type PlacesProvider interface {
	Nearby(ctx context.Context, lat, lon float64, radiusMeters int, categories []string) ([]string, error)
}

// PlaceDetails describes a single named attraction. Empty fields are unknown.
type PlaceDetails struct {
	Name         string  `json:"name"`
	DisplayName  string  `json:"display_name"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Description  string  `json:"description,omitempty"`
	Website      string  `json:"website,omitempty"`
	Phone        string  `json:"phone,omitempty"`
	OpeningHours string  `json:"opening_hours,omitempty"`
	Fee          string  `json:"fee,omitempty"`
	Wikipedia    string  `json:"wikipedia,omitempty"`
	Historic     string  `json:"historic,omitempty"`
	Heritage     string  `json:"heritage,omitempty"`
	Tourism      string  `json:"tourism,omitempty"`
}

// PlaceDetailProvider looks up structured details for a named attraction,
// optionally narrowed to a city. It returns ErrPlaceNotFound when nothing
// matches.
type PlaceDetailProvider interface {
	Describe(ctx context.Context, name, city string) (PlaceDetails, error)
}

const (
	// AttractionRadiusMeters bounds the attraction search around a city centre.
	AttractionRadiusMeters = 10000
	// MaxAttractions caps the number of attractions in a reply.
	MaxAttractions = 5
	// GeocodeCandidateLimit is how many candidates are requested per lookup.
	GeocodeCandidateLimit = 5
)

// AttractionCategories are the tourism categories searched for attractions.
func AttractionCategories() []string {
	return []string{"attraction", "museum", "zoo", "theme_park", "gallery", "monument", "viewpoint"}
}
