package domain

import "strings"

var (
	greetings      = []string{"hi", "hello", "hey", "greetings", "good morning", "good afternoon", "good evening"}
	goodbyePhrases = []string{"bye", "goodbye", "see you", "see ya", "farewell", "exit", "quit", "close",
		"thanks", "thank you", "thank", "thx", "appreciate it", "that's all", "that's it", "done", "finished"}

	// Queries carrying any of these are real questions even if they open
	// with a greeting.
	greetingBlockers = []string{"weather", "temperature", "places", "visit", "attractions", "in ", "at "}
)

// IsGreeting reports whether text is a bare greeting such as "hello there".
func IsGreeting(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if containsAny(lower, greetingBlockers) {
		return false
	}
	for _, g := range greetings {
		if lower == g || strings.HasPrefix(lower, g+" ") {
			return true
		}
	}
	return false
}

// IsGoodbye reports whether text ends the conversation.
func IsGoodbye(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, p := range goodbyePhrases {
		if lower == p || strings.HasPrefix(lower, p+" ") || strings.HasSuffix(lower, " "+p) {
			return true
		}
	}
	return false
}
