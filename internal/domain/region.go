package domain

import "strings"

// LocationClass tags a resolved location as a city or a broader area.
type LocationClass int

const (
	LocationCity LocationClass = iota
	LocationRegion
	LocationCountry
)

func (c LocationClass) String() string {
	switch c {
	case LocationRegion:
		return "region"
	case LocationCountry:
		return "country"
	default:
		return "city"
	}
}

// IsCity reports whether c is a specific settlement.
func (c LocationClass) IsCity() bool { return c == LocationCity }

var (
	knownCountries = newSet("india", "nepal", "china", "usa", "united states", "uk", "united kingdom",
		"france", "germany", "japan", "australia", "canada", "brazil", "russia")
	knownStates = newSet("west bengal", "karnataka", "maharashtra", "tamil nadu", "gujarat", "rajasthan",
		"punjab", "california", "texas", "new york", "florida")

	cityIndicators = []string{"city", "town", "village", "municipality", "suburb"}
	regionKeywords = []string{"state", "province", "region", "country", "republic", "kingdom"}
)

// locationFacts are the lower-cased fields the region guards inspect.
type locationFacts struct {
	place      string
	typ        string
	class      string
	display    string
	segments   []string
	importance float64
}

func newLocationFacts(place string, r GeocodeResult) locationFacts {
	display := strings.ToLower(r.DisplayName)
	return locationFacts{
		place:      strings.ToLower(strings.TrimSpace(place)),
		typ:        strings.ToLower(r.Type),
		class:      strings.ToLower(r.Class),
		display:    display,
		segments:   displaySegments(display),
		importance: r.Importance,
	}
}

func (f locationFacts) adminBoundary() bool {
	return f.class == "boundary" && f.typ == "administrative"
}

func (f locationFacts) inFirstSegment() bool {
	return strings.Contains(f.segments[0], f.place)
}

func (f locationFacts) mentionsSettlement() bool {
	return strings.Contains(f.display, "city") || strings.Contains(f.display, "town")
}

// locationGuard returns a verdict and true when its rule applies.
type locationGuard func(f locationFacts) (LocationClass, bool)

// locationGuards run in order; the first applicable guard decides. Anything
// no guard claims is treated as a city.
var locationGuards = []locationGuard{
	guardMajorCity,
	guardKnownRegion,
	guardLeadingDisplayName,
	guardSettlementWord,
	guardSettlementType,
	guardCountry,
	guardState,
}

// ClassifyLocation decides whether a resolved location, displayed to the
// user as place, is a city or a state/region/country. It errs toward city.
func ClassifyLocation(place string, r GeocodeResult) LocationClass {
	f := newLocationFacts(place, r)
	for _, guard := range locationGuards {
		if class, ok := guard(f); ok {
			return class
		}
	}
	return LocationCity
}

func guardMajorCity(f locationFacts) (LocationClass, bool) {
	return LocationCity, inSet(majorCities, f.place)
}

func guardKnownRegion(f locationFacts) (LocationClass, bool) {
	if inSet(knownCountries, f.place) {
		return LocationCountry, true
	}
	return LocationRegion, inSet(knownStates, f.place)
}

func guardLeadingDisplayName(f locationFacts) (LocationClass, bool) {
	if f.place == "" {
		return LocationCity, false
	}
	for _, pattern := range []string{f.place + ",", ", " + f.place + ","} {
		if i := strings.Index(f.display, pattern); i >= 0 && i < 50 {
			return LocationCity, true
		}
	}
	return LocationCity, false
}

func guardSettlementWord(f locationFacts) (LocationClass, bool) {
	return LocationCity, f.mentionsSettlement() && strings.Contains(f.display, f.place)
}

func guardSettlementType(f locationFacts) (LocationClass, bool) {
	for _, ind := range cityIndicators {
		if strings.Contains(f.typ, ind) || strings.Contains(f.class, ind) {
			return LocationCity, true
		}
	}
	return LocationCity, false
}

func guardCountry(f locationFacts) (LocationClass, bool) {
	ok := f.adminBoundary() &&
		strings.Contains(f.display, "country") &&
		strings.Contains(f.display, f.place) &&
		f.importance > 0.8
	return LocationCountry, ok
}

func guardState(f locationFacts) (LocationClass, bool) {
	if !strings.Contains(f.typ, "administrative") || f.class != "administrative" {
		return LocationRegion, false
	}
	if f.importance < 0.4 || f.importance > 0.7 || len(f.segments) < 2 {
		return LocationRegion, false
	}
	if f.inFirstSegment() {
		return LocationRegion, false
	}
	for _, seg := range f.segments {
		if strings.Contains(seg, "city") || strings.Contains(seg, "town") {
			return LocationRegion, false
		}
	}
	return LocationRegion, true
}

// ConfirmRegion re-examines a location that classified as a city but has no
// attractions nearby, using stronger region evidence. The first-pass class
// is honoured when it already says region or country.
func ConfirmRegion(place string, r GeocodeResult, firstPass LocationClass) bool {
	f := newLocationFacts(place, r)

	switch {
	case !firstPass.IsCity():
		return true
	case adminBoundaryNotLeading(f),
		regionKeywordSegment(f),
		prominentBoundaryNotLeading(f),
		prominentCountryBoundary(f):
		return true
	}
	return inSet(knownCountries, f.place) || inSet(knownStates, f.place)
}

func adminBoundaryNotLeading(f locationFacts) bool {
	if !f.adminBoundary() || f.importance < 0.4 || len(f.segments) < 2 {
		return false
	}
	return !f.inFirstSegment()
}

func regionKeywordSegment(f locationFacts) bool {
	if !containsAny(f.display, regionKeywords) || len(f.segments) < 2 || f.inFirstSegment() {
		return false
	}
	for _, seg := range f.segments[1:] {
		if strings.Contains(seg, f.place) && containsAny(seg, regionKeywords) {
			return true
		}
	}
	return false
}

func prominentBoundaryNotLeading(f locationFacts) bool {
	if f.importance < 0.5 || f.class != "boundary" || f.mentionsSettlement() || len(f.segments) < 2 {
		return false
	}
	for i, seg := range f.segments {
		if strings.Contains(seg, f.place) {
			return i != 0
		}
	}
	return true
}

func prominentCountryBoundary(f locationFacts) bool {
	if f.importance <= 0.7 || !f.adminBoundary() || len(f.segments) < 2 {
		return false
	}
	return strings.Contains(f.segments[len(f.segments)-1], f.place) || f.importance > 0.8
}
