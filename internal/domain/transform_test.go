package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryMessage(t *testing.T) {
	t.Run("json message", func(t *testing.T) {
		msg, err := ParseQueryMessage(RawEvent{Value: []byte(`{"id":"q-1","query":"  weather in Rome  "}`)})
		require.NoError(t, err)
		assert.Equal(t, QueryMessage{ID: "q-1", Query: "weather in Rome"}, msg)
	})

	t.Run("plain text uses key as id", func(t *testing.T) {
		msg, err := ParseQueryMessage(RawEvent{Key: []byte("key-7"), Value: []byte("Paris")})
		require.NoError(t, err)
		assert.Equal(t, QueryMessage{ID: "key-7", Query: "Paris"}, msg)
	})

	t.Run("generates id", func(t *testing.T) {
		msg, err := ParseQueryMessage(RawEvent{Value: []byte(`{"query":"Tokyo"}`)})
		require.NoError(t, err)
		_, err = uuid.Parse(msg.ID)
		assert.NoError(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := ParseQueryMessage(RawEvent{Value: []byte(`{not-json`)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unmarshal query message")
	})

	t.Run("empty query", func(t *testing.T) {
		_, err := ParseQueryMessage(RawEvent{Value: []byte(`{"id":"q-2"}`)})
		assert.ErrorIs(t, err, ErrEmptyQuery)

		_, err = ParseQueryMessage(RawEvent{Value: []byte("   ")})
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})
}

func TestNewAnswerEvent(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(now))
	t.Cleanup(func() { SetClock(nil) })

	event := NewAnswerEvent(
		QueryMessage{ID: "q-1", Query: "Paris"},
		Answer{Text: "Here are some places", Outcome: OutcomeAnswered},
	)

	assert.Equal(t, AnswerEvent{
		ID:         "q-1",
		Query:      "Paris",
		Response:   "Here are some places",
		Outcome:    OutcomeAnswered,
		AnsweredAt: now,
	}, event)
}
