package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDedupeAttractions(t *testing.T) {
	tests := []struct {
		name  string
		in    []string
		limit int
		want  []string
	}{
		{
			name:  "longer variant wins in place",
			in:    []string{"Central Park", "Park", "The Central Park", "Eiffel Tower"},
			limit: 5,
			want:  []string{"The Central Park", "Eiffel Tower"},
		},
		{
			name:  "case and whitespace variants collapse",
			in:    []string{"Louvre  Museum", "louvre museum", "Musée d'Orsay"},
			limit: 5,
			want:  []string{"Louvre  Museum", "Musée d'Orsay"},
		},
		{
			name:  "token overlap",
			in:    []string{"Modern Art Museum", "Museum of Modern Art", "City Zoo"},
			limit: 5,
			want:  []string{"Museum of Modern Art", "City Zoo"},
		},
		{
			name:  "replacement keeps first-seen position",
			in:    []string{"Big Ben", "London Eye", "Big Ben Clock Tower"},
			limit: 5,
			want:  []string{"Big Ben Clock Tower", "London Eye"},
		},
		{
			name:  "capped",
			in:    []string{"Alpha Gardens", "Bravo Museum", "Charlie Fort", "Delta Palace", "Echo Bridge", "Foxtrot Tower"},
			limit: 5,
			want:  []string{"Alpha Gardens", "Bravo Museum", "Charlie Fort", "Delta Palace", "Echo Bridge"},
		},
		{
			name:  "blank names skipped",
			in:    []string{"", "  ", "Colosseum"},
			limit: 5,
			want:  []string{"Colosseum"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DedupeAttractions(tt.in, tt.limit)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DedupeAttractions() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSimilarAttractions(t *testing.T) {
	assert.False(t, similarAttractions("Fort", "Red Square"))
	assert.True(t, similarAttractions("Park", "Central Park"))
}

func TestDedupeAttractions_Empty(t *testing.T) {
	assert.Empty(t, DedupeAttractions(nil, MaxAttractions))
}
