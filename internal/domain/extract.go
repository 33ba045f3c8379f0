package domain

import (
	"regexp"
	"strings"
)

// placeStrategy tries to pull a place name out of a query. raw is the trimmed
// query with its original casing; lower is asciiLower(raw), so byte offsets
// found in one are valid in the other.
type placeStrategy func(raw, lower string) (string, bool)

// placeStrategies run in priority order; the first usable candidate wins.
var placeStrategies = []placeStrategy{
	extractWeatherPreposition,
	extractInPreposition,
	extractPlacesPreposition,
	extractTravelPhrase,
	extractTemperaturePreposition,
	extractLeadingKeyword,
	extractShortQuery,
	extractLeadingSequence,
	extractCapitalizedRun,
	extractFirstSignificantWord,
}

// ExtractPlaceName returns the place named in a free-form travel query,
// preserving the caller's capitalization.
func ExtractPlaceName(text string) (string, bool) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return "", false
	}
	lower := asciiLower(raw)
	for _, strategy := range placeStrategies {
		place, ok := strategy(raw, lower)
		if ok && len(place) > 2 {
			return place, true
		}
	}
	return "", false
}

// Stop words only end a capture at a word boundary, so "Paris" is not cut
// at "is" and "Rhode Island" is not cut at "and".
var (
	weatherPrepRe = regexp.MustCompile(`(?i)weather\s+(?:in|at|for)\s+([a-zA-Z\s]+?)(?:\s+(?:like|what|where|how|and)\b|\?|$|,|\.|!)`)
	weatherTailRe = regexp.MustCompile(`(?i)\s+(?:and|what|where|how|is|the|like|can|i|visit|places)\b.*$`)

	inPrepRe = regexp.MustCompile(`(?i)\bin\s+([A-Za-z][a-zA-Z\s]+?)(?:\s+(?:what|where|how|can|i|visit|places|is|the|temperature|weather|and)\b|,|\?|\.|!|$)`)
	inTailRe = regexp.MustCompile(`(?i)\s+(?:and|what|where|how|can|i|visit|places|is|the|temperature|weather|like)\b.*$`)

	placesPrepRe    = regexp.MustCompile(`(?i)places\s+(?:to\s+visit\s+)?(?:in|at|for|to|i\s+can\s+go\s+to)\s+([a-zA-Z\s]+?)(?:\s+(?:what|where|how|and)\b|\?|$|,|\.|!)`)
	placesTailRe    = regexp.MustCompile(`(?i)\s+(?:and|for|what|where|how|can|i|visit|places|is|the|like)\b.*$`)
	placesForRe     = regexp.MustCompile(`(?i)places\s+(?:to\s+visit\s+)?for\s+([a-zA-Z\s]+?)(?:\s+(?:what|where|how|and)\b|\?|$|,|\.|!)`)
	placesForTailRe = regexp.MustCompile(`(?i)\s+(?:and|what|where|how|can|i|visit|places|is|the|like)\b.*$`)

	temperaturePrepRe = regexp.MustCompile(`(?i)temperature\s+(?:of|in|at)\s+([a-zA-Z\s]+?)(?:\s+(?:and|n|places)\b|\?|$|,|\.|!)`)
	temperatureTailRe = regexp.MustCompile(`(?i)\s+(?:and|n|places|visit|there|to|the)\b.*$`)

	leadingKeywordRe = regexp.MustCompile(`(?i)^([A-Za-z][a-zA-Z\s]+?)\s+(?:temperat?u?r?e?|weather|places|visit|attractions|tourist|n\s)`)

	leadingSequenceRe = regexp.MustCompile(`(?i)^([A-Za-z][a-zA-Z\s]+?)(?:\?|!|$)`)

	sentencePunctRe = regexp.MustCompile(`[,.?!].*$`)
)

var (
	travelPhrases = []string{"going to go to", "going to", "travel to", "trip to"}

	travelStopWords = newSet("let's", "let", "plan", "my", "trip", "what", "is", "the", "temperature",
		"there", "and", "are", "places", "i", "can", "visit", "show", "me", "like")

	shortQueryKeywords = newSet("temperature", "weather", "places", "?")

	commonWords = newSet("what", "where", "how", "when", "why", "the", "a", "an", "is", "are", "can", "i", "more")

	capitalizedRunStops = newSet("what", "is", "the", "weather", "in", "at", "for", "like", "places", "to",
		"visit", "can", "i", "go", "temperature", "more", "and", "n", "there", "also")

	fallbackStops = newSet("what", "where", "how", "when", "why", "the", "a", "an", "is", "are", "can", "i",
		"more", "temperature", "weather", "places", "visit", "and", "n", "there", "also")
)

// capture applies re to raw and returns the first submatch, taken at its
// matched offsets so the caller's casing is kept, with tail trimmed off.
func capture(re, tail *regexp.Regexp, raw string) (string, bool) {
	m := re.FindStringSubmatchIndex(raw)
	if m == nil || m[2] < 0 {
		return "", false
	}
	place := strings.TrimSpace(raw[m[2]:m[3]])
	place = trimTrailingPunct(tail.ReplaceAllString(place, ""))
	return place, place != ""
}

func extractWeatherPreposition(raw, _ string) (string, bool) {
	place, ok := capture(weatherPrepRe, weatherTailRe, raw)
	return place, ok && len(place) > 2
}

func extractInPreposition(raw, _ string) (string, bool) {
	place, ok := capture(inPrepRe, inTailRe, raw)
	return place, ok && len(place) > 2
}

func extractPlacesPreposition(raw, _ string) (string, bool) {
	place, ok := capture(placesPrepRe, placesTailRe, raw)
	if !ok {
		return "", false
	}
	if strings.EqualFold(place, "for") {
		if retry, ok := capture(placesForRe, placesForTailRe, raw); ok {
			place = retry
		}
	}
	return place, len(place) > 2
}

func extractTravelPhrase(raw, lower string) (string, bool) {
	for _, phrase := range travelPhrases {
		i := strings.Index(lower, phrase)
		if i < 0 {
			continue
		}
		rest := strings.TrimSpace(sentencePunctRe.ReplaceAllString(lower[i+len(phrase):], ""))

		var kept []string
		for _, w := range strings.Fields(rest) {
			if inSet(travelStopWords, w) {
				break
			}
			kept = append(kept, w)
		}
		if len(kept) == 0 {
			continue
		}

		want := newSet(kept...)
		var matched []string
		for _, w := range strings.Fields(raw) {
			w = trimTrailingPunct(w)
			if inSet(want, asciiLower(w)) {
				matched = append(matched, w)
			}
		}
		if len(matched) > 0 {
			return strings.Join(matched, " "), true
		}
		return titleCase(strings.Join(kept, " ")), true
	}
	return "", false
}

func extractTemperaturePreposition(raw, _ string) (string, bool) {
	place, ok := capture(temperaturePrepRe, temperatureTailRe, raw)
	return place, ok && len(place) > 2
}

func extractLeadingKeyword(raw, _ string) (string, bool) {
	m := leadingKeywordRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	place := strings.TrimSpace(m[1])
	return place, len(place) > 2
}

// casedCandidate title-cases a lower-case candidate and leaves others alone.
func casedCandidate(place string) string {
	if startsWithLower(place) {
		return titleCase(place)
	}
	return place
}

func extractShortQuery(raw, _ string) (string, bool) {
	words := strings.Fields(raw)
	if len(words) != 1 && (len(words) != 2 || !inSet(shortQueryKeywords, strings.ToLower(words[1]))) {
		return "", false
	}
	place := trimTrailingPunct(words[0])
	if len(place) <= 2 || !startsWithLetter(place) || inSet(commonWords, strings.ToLower(place)) {
		return "", false
	}
	return casedCandidate(place), true
}

func extractLeadingSequence(raw, _ string) (string, bool) {
	if len(strings.Fields(raw)) > 2 {
		return "", false
	}
	m := leadingSequenceRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	place := trimTrailingPunct(m[1])
	if len(place) <= 2 || inSet(commonWords, strings.ToLower(place)) {
		return "", false
	}
	return casedCandidate(place), true
}

func extractCapitalizedRun(raw, _ string) (string, bool) {
	var run []string
	for _, word := range strings.Fields(raw) {
		cleaned := trimTrailingPunct(word)
		if inSet(capitalizedRunStops, strings.ToLower(cleaned)) {
			if len(run) > 0 {
				break
			}
			continue
		}
		if !isAlpha(cleaned) || (len(run) == 0 && !startsWithUpper(cleaned)) {
			if len(run) > 0 {
				break
			}
			continue
		}
		run = append(run, cleaned)
		if cleaned != word {
			// Punctuation closes the name.
			break
		}
	}
	if len(run) == 0 {
		return "", false
	}
	return strings.Join(run, " "), true
}

func extractFirstSignificantWord(raw, _ string) (string, bool) {
	for _, word := range strings.Fields(raw) {
		cleaned := trimTrailingPunct(word)
		if len(cleaned) < 3 || !startsWithLetter(cleaned) || inSet(fallbackStops, strings.ToLower(cleaned)) {
			continue
		}
		return casedCandidate(cleaned), true
	}
	return "", false
}
