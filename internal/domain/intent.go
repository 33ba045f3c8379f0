package domain

import "strings"

// Intent records what a query asks for. The flags are independent; Timing
// alone decides the reply when set.
type Intent struct {
	Weather     bool
	Places      bool
	Timing      bool
	PlaceDetail bool
}

// Keywords match as plain substrings, so they also fire inside longer words:
// "open" in "Copenhagen" flags a timing question and "hot" in "Hotan" flags
// weather. Place names carrying a keyword need different wording.
var (
	timingKeywords      = []string{"timing", "hours", "open", "closed", "schedule", "when", "time to visit", "visiting hours", "opening hours"}
	placeDetailKeywords = []string{"tell me about", "information about", "details about", "what is", "tell me more", "about", "info"}
	weatherKeywords     = []string{"temperature", "temperture", "temprature", "temp", "weather", "rain", "forecast", "climate", "hot", "cold", "degrees"}
	placesKeywords      = []string{"places", "visit", "attractions", "tourist", "go", "see", "sightseeing", "sights", "landmarks", "what to see", "where to go"}
	placesPhrases       = []string{"what places", "where to", "places to", "places can", "places i", "attractions"}
	tripKeywords        = []string{"going", "trip", "travel", "plan"}
)

// ClassifyIntent derives intent flags from case-insensitive substring matches
// against fixed keyword sets.
func ClassifyIntent(text string) Intent {
	lower := strings.ToLower(text)

	intent := Intent{
		Timing:      containsAny(lower, timingKeywords),
		PlaceDetail: containsAny(lower, placeDetailKeywords),
		Weather:     containsAny(lower, weatherKeywords),
		Places:      containsAny(lower, placesKeywords) || containsAny(lower, placesPhrases),
	}

	// A weather-only question is never widened to places.
	if intent.Weather || intent.Places || intent.PlaceDetail {
		return intent
	}

	if containsAny(lower, tripKeywords) {
		intent.Weather = true
	}
	intent.Places = true
	return intent
}
