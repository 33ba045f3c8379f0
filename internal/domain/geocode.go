package domain

import (
	"regexp"
	"strings"
)

// majorCities are well-known cities that providers often return as
// administrative boundaries rather than as places.
var majorCities = newSet(
	"london", "paris", "tokyo", "baku", "istanbul", "moscow", "cairo",
	"delhi", "mumbai", "bangalore", "kolkata", "chennai", "hyderabad",
	"new york", "los angeles", "chicago", "houston", "phoenix",
	"sydney", "melbourne", "toronto", "vancouver", "montreal",
	"berlin", "madrid", "rome", "amsterdam", "vienna", "prague",
	"dubai", "riyadh", "doha", "singapore", "hong kong", "seoul",
	"beijing", "shanghai", "bangkok", "jakarta", "manila",
	"mexico city", "sao paulo", "rio de janeiro", "buenos aires",
	"lagos", "nairobi", "johannesburg", "cape town",
)

// ScoreCandidate ranks a geocode candidate for the free-text place name.
// Settlements outrank administrative boundaries unless the boundary looks
// like a city.
func ScoreCandidate(place string, r GeocodeResult) float64 {
	place = strings.ToLower(strings.TrimSpace(place))
	typ := strings.ToLower(r.Type)
	class := strings.ToLower(r.Class)
	display := strings.ToLower(r.DisplayName)

	var score float64
	switch {
	case typ == "city" || typ == "town":
		score += 100
	case typ == "village":
		score += 50
	case class == "place":
		score += 75
	case class == "boundary" && typ == "administrative":
		switch {
		case inSet(majorCities, place):
			score += 90
		case r.Importance > 0.6:
			score += 80
		case strings.Contains(display, "city") || strings.Contains(display, "town"):
			score += 70
		case r.Importance > 0.4:
			score += 60
		default:
			score += 20
		}
	}

	score += r.Importance * 10

	if display != "" && strings.Contains(displaySegments(display)[0], place) {
		score += 15
	}
	return score
}

// SelectCandidate picks the best-scoring candidate for place. Ties keep the
// first candidate; an empty list selects nothing.
func SelectCandidate(place string, candidates []GeocodeResult) (GeocodeResult, bool) {
	return selectBest(candidates, func(r GeocodeResult) float64 { return ScoreCandidate(place, r) })
}

var parentheticalSuffixRe = regexp.MustCompile(`\s*\([^)]+\)\s*$`)

// DisplayName returns the user-facing name for a resolved location. It
// prefers an English name, avoids non-Latin scripts by falling back to the
// first ASCII segment of the display name, and drops suffixes like "(urban)".
func DisplayName(r GeocodeResult, query string) string {
	name := r.EnglishName()
	if name == "" {
		name = strings.TrimSpace(r.Name)
	}
	if name == "" {
		name = strings.TrimSpace(query)
	}

	if !isASCII(name) {
		for _, seg := range displaySegments(r.DisplayName) {
			if seg != "" && isASCII(seg) {
				name = seg
				break
			}
		}
	}

	name = strings.TrimSpace(parentheticalSuffixRe.ReplaceAllString(name, ""))
	if len([]rune(name)) < 2 {
		return titleCase(strings.TrimSpace(query))
	}
	return name
}
