// Package domain interprets free-form travel queries and composes replies
// from weather and attraction data.
//
// # Query Flow
//
// A query is answered by a fixed sequence of short-circuits and lookups:
//
//	goodbye → greeting → too short → timing (unsupported) → place detail
//	  → place-name extraction → geocode + candidate selection
//	  → city/region classification → weather and/or attractions → reply
//
// Everything in this package is pure and safe for concurrent use. The
// provider interfaces ([Geocoder], [WeatherProvider], [PlacesProvider],
// [PlaceDetailProvider]) are implemented by the adapters and driven by the
// pipeline orchestrator.
//
// # Intent
//
// [ClassifyIntent] matches keyword sets as case-insensitive substrings, so
// "go" also fires on "going". Weather-only queries never widen to places.
// Queries with no recognizable intent default to places, and trip-planning
// queries ("going", "trip", "travel", "plan") to weather and places.
//
// # Place-name Extraction
//
// [ExtractPlaceName] runs ten strategies in priority order and returns the
// first candidate longer than two characters:
//
//	 1. "weather in|at|for X"
//	 2. "in X, ..."
//	 3. "places (to visit) in|at|for|to X"
//	 4. "going to go to X", "going to X", "travel to X", "trip to X"
//	 5. "temperature of|in|at X"
//	 6. "X weather", "X places", "X n ..."
//	 7. "X" or "X weather" (one or two words)
//	 8. a one- or two-word query ending in ? or !
//	 9. the first run of capitalized words
//	10. the first significant word
//
// Captures are cut from the original text at the matched offsets, so the
// user's casing is kept, and trailing punctuation is removed. Stop words end
// a capture only as whole words.
//
// # Disambiguation
//
// Providers return up to five candidates. [ScoreCandidate] prefers
// settlements (city/town +100, village +50, class=place +75) over
// administrative boundaries, which score 20–90 depending on a major-city
// whitelist, importance, and "city"/"town" in the display name. Importance×10
// and a +15 first-segment bonus are added to every candidate.
//
// [ClassifyLocation] then runs ordered guards and returns [LocationCity],
// [LocationRegion], or [LocationCountry]. It is deliberately conservative:
// only strong evidence yields a region. When a city has no attractions,
// [ConfirmRegion] applies stricter region checks before the reply says that
// no data is available.
//
// # Attractions
//
// [DedupeAttractions] merges names that are equal, contain one another
// (both longer than three characters), or share at least 70% of the shorter
// name's significant words. The longer variant replaces the shorter one in
// place and the list is capped at [MaxAttractions].
package domain
