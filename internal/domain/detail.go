package domain

import (
	"regexp"
	"strings"
)

var (
	detailPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)tell me (?:more )?about (.+?)(?:\?|$|\.|,|please)`),
		regexp.MustCompile(`(?i)information about (.+?)(?:\?|$|\.|,|please)`),
		regexp.MustCompile(`(?i)details about (.+?)(?:\?|$|\.|,|please)`),
		regexp.MustCompile(`(?i)what is (.+?)(?:\?|$|\.|,|please)`),
		regexp.MustCompile(`(?i)tell me (.+?)(?:\?|$|\.|,|please)`),
		regexp.MustCompile(`(?i)about (.+?)(?:\?|$|\.|,|please)`),
		regexp.MustCompile(`(?i)info (.+?)(?:\?|$|\.|,|please)`),
	}
	detailFillerRe = regexp.MustCompile(`(?i)\s+(?:please|thanks|thank you|tell me|more|info).*$`)
)

// ExtractPlaceDetailName returns the attraction named in a "tell me about X"
// style query. Bare 2–5 word queries fall back to their capitalized words.
func ExtractPlaceDetailName(text string) (string, bool) {
	raw := strings.TrimSpace(text)
	for _, re := range detailPatterns {
		m := re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(detailFillerRe.ReplaceAllString(strings.TrimSpace(m[1]), ""))
		if len(name) > 2 {
			return name, true
		}
	}

	words := strings.Fields(raw)
	if len(words) < 2 || len(words) > 5 {
		return "", false
	}
	var capitalized []string
	for _, w := range words {
		if startsWithUpper(w) {
			capitalized = append(capitalized, w)
		}
	}
	if len(capitalized) == 0 {
		return "", false
	}
	return strings.Join(capitalized, " "), true
}

var attractionAmenityTypes = newSet("museum", "gallery", "zoo", "theme_park", "theatre", "arts_centre", "place_of_worship")

// ScoreAttractionMatch ranks a geocode candidate as the match for a named
// attraction. Tourism-tagged and historic features outrank plain places.
func ScoreAttractionMatch(name string, r GeocodeResult) float64 {
	class := strings.ToLower(r.Class)
	typ := strings.ToLower(r.Type)

	var score float64
	if class == "tourism" || r.Tags["tourism"] != "" {
		score += 100
	}
	if class == "amenity" && inSet(attractionAmenityTypes, typ) {
		score += 80
	}
	if class == "historic" {
		score += 70
	}

	candidate := strings.ToLower(r.Name)
	wanted := strings.ToLower(strings.TrimSpace(name))
	if candidate != "" && (strings.Contains(candidate, wanted) || strings.Contains(wanted, candidate)) {
		score += 50
	}
	return score + r.Importance*10
}

// SelectAttractionMatch picks the best candidate for a named attraction.
// Ties keep the earlier candidate.
func SelectAttractionMatch(name string, candidates []GeocodeResult) (GeocodeResult, bool) {
	return selectBest(candidates, func(r GeocodeResult) float64 { return ScoreAttractionMatch(name, r) })
}

func selectBest(candidates []GeocodeResult, score func(GeocodeResult) float64) (GeocodeResult, bool) {
	if len(candidates) == 0 {
		return GeocodeResult{}, false
	}
	best, bestScore := 0, score(candidates[0])
	for i := 1; i < len(candidates); i++ {
		if s := score(candidates[i]); s > bestScore {
			best, bestScore = i, s
		}
	}
	return candidates[best], true
}

// MergeDetailTags fills empty fields of d from OSM-style tags, keeping
// values already set.
func MergeDetailTags(d PlaceDetails, tags map[string]string) PlaceDetails {
	fill := func(dst *string, keys ...string) {
		if *dst != "" {
			return
		}
		for _, k := range keys {
			if v := strings.TrimSpace(tags[k]); v != "" {
				*dst = v
				return
			}
		}
	}
	fill(&d.Description, "description", "description:en")
	fill(&d.Website, "website", "contact:website")
	fill(&d.Phone, "phone", "contact:phone")
	fill(&d.OpeningHours, "opening_hours")
	fill(&d.Fee, "fee")
	fill(&d.Wikipedia, "wikipedia", "wikipedia:en")
	fill(&d.Historic, "historic")
	fill(&d.Heritage, "heritage")
	fill(&d.Tourism, "tourism")
	return d
}
