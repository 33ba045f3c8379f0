package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrEmptyQuery marks a message that carries no query text.
var ErrEmptyQuery = errors.New("empty query")

// ParseQueryMessage decodes a raw message into a QueryMessage. A JSON object
// must carry a "query" field; any other payload is taken as the query text.
// Messages without an ID get the message key, or a fresh UUID.
func ParseQueryMessage(raw RawEvent) (QueryMessage, error) {
	var msg QueryMessage
	payload := bytes.TrimSpace(raw.Value)

	if len(payload) > 0 && payload[0] == '{' {
		if err := json.Unmarshal(payload, &msg); err != nil {
			return QueryMessage{}, fmt.Errorf("unmarshal query message: %w", err)
		}
	} else {
		msg.Query = string(payload)
	}

	msg.Query = strings.TrimSpace(msg.Query)
	if msg.Query == "" {
		return QueryMessage{}, ErrEmptyQuery
	}

	if msg.ID == "" {
		msg.ID = string(raw.Key)
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	return msg, nil
}

// NewAnswerEvent stamps an answer for publication.
func NewAnswerEvent(msg QueryMessage, answer Answer) AnswerEvent {
	return AnswerEvent{
		ID:         msg.ID,
		Query:      msg.Query,
		Response:   answer.Text,
		Outcome:    answer.Outcome,
		AnsweredAt: clock.Now().UTC(),
	}
}
