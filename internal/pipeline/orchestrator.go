package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/couchcryptid/travel-query-service/internal/domain"
	"github.com/couchcryptid/travel-query-service/internal/observability"
)

// Orchestrator answers free-form travel queries. It holds no per-query state
// and is safe for concurrent use.
type Orchestrator struct {
	geocoder domain.Geocoder
	weather  domain.WeatherProvider
	places   domain.PlacesProvider
	details  domain.PlaceDetailProvider
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewOrchestrator wires the providers used to answer queries.
func NewOrchestrator(
	geocoder domain.Geocoder,
	weather domain.WeatherProvider,
	places domain.PlacesProvider,
	details domain.PlaceDetailProvider,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		geocoder: geocoder,
		weather:  weather,
		places:   places,
		details:  details,
		metrics:  metrics,
		logger:   logger,
	}
}

// ProcessQuery answers text. The reply is never empty, and no error or panic
// escapes.
func (o *Orchestrator) ProcessQuery(ctx context.Context, text string) string {
	return o.Answer(ctx, text).Text
}

// Answer is ProcessQuery with the outcome attached.
func (o *Orchestrator) Answer(ctx context.Context, text string) (answer domain.Answer) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("panic while answering query", "query", text, "panic", r, "stack", string(debug.Stack()))
			answer = domain.Answer{Text: domain.InternalErrorText, Outcome: domain.OutcomeInternalError}
		}
		o.metrics.Queries.WithLabelValues(string(answer.Outcome)).Inc()
		o.metrics.QueryDuration.Observe(time.Since(start).Seconds())
	}()

	return o.answer(ctx, domain.NewQuery(text))
}

func (o *Orchestrator) answer(ctx context.Context, q domain.Query) domain.Answer {
	switch {
	case domain.IsGoodbye(q.Raw):
		return domain.Answer{Text: domain.GoodbyeText, Outcome: domain.OutcomeGoodbye}
	case domain.IsGreeting(q.Raw):
		return domain.Answer{Text: domain.CurrentGreeting(), Outcome: domain.OutcomeGreeting}
	case len(q.Raw) < 3:
		return domain.Answer{Text: domain.NeedMoreInfoText, Outcome: domain.OutcomeTooShort}
	}

	intent := domain.ClassifyIntent(q.Raw)
	if intent.Timing {
		return domain.Answer{Text: domain.TimingUnsupportedText, Outcome: domain.OutcomeUnsupported}
	}
	if intent.PlaceDetail {
		return o.describe(ctx, q)
	}

	place, ok := domain.ExtractPlaceName(q.Raw)
	if !ok {
		return domain.Answer{Text: domain.UsageHintText, Outcome: domain.OutcomeExtractionFailure}
	}

	candidates, err := o.geocoder.Search(ctx, place, domain.GeocodeCandidateLimit)
	if err != nil {
		o.logger.Warn("geocode failed", "place", place, "error", err)
	}
	best, ok := domain.SelectCandidate(place, candidates)
	if err != nil || !ok {
		return domain.Answer{Text: domain.UnknownPlaceText(place), Outcome: domain.OutcomeLookupFailure}
	}

	name := domain.DisplayName(best, place)
	class := domain.ClassifyLocation(name, best)
	if !class.IsCity() {
		return domain.Answer{Text: domain.RegionClarificationText(name), Outcome: domain.OutcomeAmbiguousRegion}
	}

	var weatherText, placesText string
	if intent.Weather {
		weatherText = o.weatherText(ctx, name, best)
	}
	if intent.Places {
		attractions, err := o.attractions(ctx, name, best)
		switch {
		case err != nil:
			// Weather, if any, still answers the query.
		case len(attractions) == 0:
			if domain.ConfirmRegion(name, best, class) {
				return domain.Answer{Text: domain.RegionNoAttractionsText(name), Outcome: domain.OutcomeAmbiguousRegion}
			}
			return domain.Answer{Text: domain.NoAttractionDataText(name), Outcome: domain.OutcomeNoData}
		default:
			placesText = domain.PlacesText(name, attractions)
		}
	}

	if text := domain.CombineAnswers(weatherText, placesText); text != "" {
		return domain.Answer{Text: text, Outcome: domain.OutcomeAnswered}
	}
	return domain.Answer{Text: domain.NoInformationText(name), Outcome: domain.OutcomeLookupFailure}
}

func (o *Orchestrator) weatherText(ctx context.Context, name string, loc domain.GeocodeResult) string {
	w, err := o.weather.Current(ctx, loc.Lat, loc.Lon)
	if err != nil {
		o.logger.Warn("weather lookup failed", "place", name, "error", err)
		return ""
	}
	return domain.WeatherText(name, w)
}

func (o *Orchestrator) attractions(ctx context.Context, name string, loc domain.GeocodeResult) ([]string, error) {
	raw, err := o.places.Nearby(ctx, loc.Lat, loc.Lon, domain.AttractionRadiusMeters, domain.AttractionCategories())
	if err != nil {
		o.logger.Warn("attraction lookup failed", "place", name, "error", err)
		return nil, err
	}
	return domain.DedupeAttractions(raw, domain.MaxAttractions), nil
}

func (o *Orchestrator) describe(ctx context.Context, q domain.Query) domain.Answer {
	name, ok := domain.ExtractPlaceDetailName(q.Raw)
	if !ok {
		return domain.Answer{Text: domain.PlaceDetailPromptText, Outcome: domain.OutcomeExtractionFailure}
	}

	details, err := o.details.Describe(ctx, name, "")
	if err != nil {
		if !errors.Is(err, domain.ErrPlaceNotFound) {
			o.logger.Warn("place detail lookup failed", "place", name, "error", err)
		}
		return domain.Answer{Text: domain.PlaceDetailUnavailableText(name), Outcome: domain.OutcomeLookupFailure}
	}
	return domain.Answer{Text: domain.FormatPlaceDetails(details), Outcome: domain.OutcomeAnswered}
}
