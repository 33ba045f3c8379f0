package domain

import (
	"errors"
	"strings"
)

// ErrPlaceNotFound is returned by providers when a lookup matches nothing.
var ErrPlaceNotFound = errors.New("place not found")

// Query is a single user utterance. Raw keeps the caller's casing (trimmed);
// Normalized is the lower-cased form used for keyword matching.
type Query struct {
	Raw        string
	Normalized string
}

// NewQuery trims the input and derives its normalized form.
func NewQuery(text string) Query {
	raw := strings.TrimSpace(text)
	return Query{Raw: raw, Normalized: strings.ToLower(raw)}
}

// Outcome classifies how a query was answered.
type Outcome string

const (
	OutcomeAnswered          Outcome = "answered"
	OutcomeGoodbye           Outcome = "goodbye"
	OutcomeGreeting          Outcome = "greeting"
	OutcomeTooShort          Outcome = "too_short"
	OutcomeUnsupported       Outcome = "unsupported"
	OutcomeExtractionFailure Outcome = "extraction_failure"
	OutcomeLookupFailure     Outcome = "lookup_failure"
	OutcomeAmbiguousRegion   Outcome = "ambiguous_region"
	OutcomeNoData            Outcome = "no_data"
	OutcomeInternalError     Outcome = "internal_error"
)

// Answer is the complete reply to a Query.
type Answer struct {
	Text    string
	Outcome Outcome
}
