package domain

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"
)

const (
	GoodbyeText = "👋 Goodbye! It was great helping you plan your trip. Safe travels and enjoy your journey! 🌍✈️"

	NeedMoreInfoText = "I need more information to help you. Please tell me:\n" +
		"- A place name (e.g., 'Bangalore', 'Paris', 'New York')\n" +
		"- What you'd like to know (weather, places to visit, or both)"

	TimingUnsupportedText = "I understand you're asking about visiting hours or timings. Unfortunately, the attraction data I use (OpenStreetMap via the Overpass API) doesn't reliably provide timing information for tourist attractions.\n\n" +
		"For visiting hours, I recommend:\n" +
		"- Checking the official website of the attraction\n" +
		"- Using an online map service\n" +
		"- Contacting local tourism offices\n\n" +
		"I can still help you with weather information and suggest places to visit!"

	PlaceDetailPromptText = "I'd be happy to provide information about a specific place! Please tell me which tourist attraction you'd like to know more about. For example: 'Tell me about Qutub Minar' or 'What is the Eiffel Tower?'"

	UsageHintText = "I couldn't find a valid place name in your query. Please provide a place name like:\n" +
		"- 'Dubai'\n" +
		"- 'Dubai temperature'\n" +
		"- 'What's the weather in Paris?'\n" +
		"- 'In Bangalore, what places can I visit?'\n" +
		"- 'Show me places to visit in Tokyo'"

	InternalErrorText = "Sorry, something went wrong while answering that. Please try again."

	placesTip = "💡 Tip: Ask me about any of these places to learn more about it!"
)

// GreetingText welcomes the user according to the hour of day.
func GreetingText(hour int) string {
	salutation := "Good evening"
	switch {
	case hour < 12:
		salutation = "Good morning"
	case hour < 18:
		salutation = "Good afternoon"
	}
	return salutation + "! 👋 I'm your travel planning assistant!\n\n" +
		"I can help you with:\n" +
		"- 🌤️ Current weather and forecasts\n" +
		"- 📍 Must-see attractions and hidden gems\n\n" +
		"Where would you like to explore? Try asking:\n" +
		"- 'What's the weather in Bangalore?'\n" +
		"- 'What places can I visit in Paris?'\n" +
		"- 'Tell me about Tokyo - weather and places!'"
}

// CurrentGreeting is GreetingText for the current hour of the package clock.
func CurrentGreeting() string {
	return GreetingText(clock.Now().Hour())
}

// UnknownPlaceText asks the user to correct a place name that did not resolve.
func UnknownPlaceText(place string) string {
	return fmt.Sprintf("I don't know if '%s' exists. Could you please provide a valid place name?", place)
}

// RegionClarificationText asks for a city inside a resolved region or country.
func RegionClarificationText(name string) string {
	return fmt.Sprintf("I found '%s', but it appears to be a country, state, or region rather than a specific city.\n\n", name) +
		fmt.Sprintf("Please specify a city within %s for more accurate weather and attraction information.\n\n", name) +
		"For example:\n" +
		"- If you meant Karnataka, try 'Bangalore' or 'Mysore'\n" +
		"- If you meant California, try 'Los Angeles' or 'San Francisco'\n" +
		"- If you meant India, try 'Mumbai' or 'Delhi'"
}

// RegionNoAttractionsText is sent when a location without attractions turns
// out to be a region on closer inspection.
func RegionNoAttractionsText(name string) string {
	return fmt.Sprintf("I found '%s', but it appears to be a country, state, or region rather than a specific city.\n\n", name) +
		fmt.Sprintf("Please enter a city name instead. For example, if you're looking for places in %s, try:\n", name) +
		"- 'Mumbai' or 'Delhi' (for India)\n" +
		"- 'Kolkata' or 'Darjeeling' (for West Bengal)\n" +
		"- 'Los Angeles' or 'San Francisco' (for California)"
}

// NoAttractionDataText reports a city with no attraction data.
func NoAttractionDataText(name string) string {
	return fmt.Sprintf("Sorry, detailed tourist attraction data is not currently available for %s. Please try searching for a nearby major city or a different location.", name)
}

// NoInformationText is the reply when neither weather nor places could be fetched.
func NoInformationText(name string) string {
	return fmt.Sprintf("Unable to fetch information for %s. Please try rephrasing your query.", name)
}

// PlaceDetailUnavailableText reports a failed attraction lookup.
func PlaceDetailUnavailableText(name string) string {
	return fmt.Sprintf("Sorry, detailed information about '%s' is not currently available. Please try asking about a different place or check the official website for more information.", name)
}

// WeatherText renders current conditions. Values round half to even.
func WeatherText(place string, w Weather) string {
	temp := "N/A"
	if w.TemperatureC != nil {
		temp = fmt.Sprintf("%.0f°C", roundHalfEven(*w.TemperatureC))
	}
	return fmt.Sprintf("In %s it's currently %s with a chance of %.0f%% to rain.",
		place, temp, roundHalfEven(w.PrecipitationProbability))
}

func roundHalfEven(v float64) float64 {
	r := math.RoundToEven(v)
	if r == 0 {
		return 0 // no "-0"
	}
	return r
}

var placesHeadlines = []string{
	"Here are some amazing places in %s you shouldn't miss!",
	"Your adventure in %s could start at these gems:",
	"Discover these must-see spots in %s:",
	"Ready to explore %s? Check out these places:",
	"In %s, these are the places you can go:",
}

// PlacesText lists attractions under a headline. The headline varies by
// place but is stable for a given place, so repeated queries match.
func PlacesText(place string, attractions []string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(place)))
	headline := fmt.Sprintf(placesHeadlines[h.Sum32()%uint32(len(placesHeadlines))], place)

	var b strings.Builder
	b.WriteString(headline)
	b.WriteString("\n\n")
	for _, a := range attractions {
		b.WriteString("- ")
		b.WriteString(a)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(placesTip)
	return b.String()
}

// CombineAnswers joins the weather and places parts of a reply. Either part
// may be empty; when both are empty the result is empty.
func CombineAnswers(weather, places string) string {
	switch {
	case weather == "":
		return places
	case places == "":
		return weather
	}
	if strings.HasPrefix(places, "In ") {
		places = "in " + places[len("In "):]
	}
	return strings.TrimSuffix(weather, ".") + ". And " + places
}

// FormatPlaceDetails renders an attraction's details as labelled lines,
// skipping unknown fields.
func FormatPlaceDetails(d PlaceDetails) string {
	name := d.Name
	if name == "" {
		name = "This place"
	}
	segments := displaySegments(d.DisplayName)

	var parts []string
	if d.Description != "" {
		parts = append(parts, d.Description)
	}
	if d.DisplayName != "" {
		location := segments[0]
		if len(segments) > 1 {
			location += ", " + segments[1]
		}
		parts = append(parts, "📍 Location: "+location)
	}
	if d.OpeningHours != "" {
		parts = append(parts, "🕐 Opening Hours: "+d.OpeningHours)
	}
	if d.Fee != "" {
		parts = append(parts, "💰 Admission: "+d.Fee)
	}
	switch {
	case d.Heritage != "":
		parts = append(parts, "🏛️ Heritage Status: "+d.Heritage)
	case d.Historic != "":
		parts = append(parts, "🏛️ Historic Site: "+d.Historic)
	}
	if d.Website != "" {
		parts = append(parts, "🌐 Website: "+d.Website)
	}

	header := "**" + name + "**"
	if len(parts) == 0 {
		summary := name + " is a notable tourist attraction"
		if d.DisplayName != "" {
			summary += " located in " + segments[0]
		}
		return header + "\n\n" + summary + "."
	}
	return header + "\n\n" + strings.Join(parts, "\n\n")
}
