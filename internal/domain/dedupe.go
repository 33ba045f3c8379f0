package domain

import (
	"strings"
	"unicode/utf8"
)

var attractionFillerWords = newSet("the", "a", "an", "of", "in", "at")

func normalizeAttraction(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func significantTokens(normalized string) []string {
	var tokens []string
	for _, w := range strings.Fields(normalized) {
		if !inSet(attractionFillerWords, w) {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// similarAttractions reports whether two names refer to the same attraction.
func similarAttractions(a, b string) bool {
	na, nb := normalizeAttraction(a), normalizeAttraction(b)
	if na == nb {
		return true
	}
	if (strings.Contains(na, nb) || strings.Contains(nb, na)) && len(na) > 3 && len(nb) > 3 {
		return true
	}

	ta, tb := significantTokens(na), significantTokens(nb)
	if len(ta) == 0 || len(tb) == 0 {
		return false
	}
	shorter, longer := ta, tb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	set := newSet(longer...)
	matches := 0
	for _, tok := range shorter {
		if inSet(set, tok) {
			matches++
		}
	}
	return float64(matches) >= float64(len(shorter))*0.7
}

// DedupeAttractions merges near-duplicate attraction names, keeping the more
// descriptive variant in the position its family was first seen, and caps
// the result at limit entries.
func DedupeAttractions(names []string, limit int) []string {
	var kept []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		duplicate := false
		for i, existing := range kept {
			if !similarAttractions(name, existing) {
				continue
			}
			duplicate = true
			if utf8.RuneCountInString(name) > utf8.RuneCountInString(existing) {
				kept[i] = name
			}
			break
		}
		if !duplicate {
			kept = append(kept, name)
		}
	}
	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}
