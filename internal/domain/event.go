package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the query topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// QueryMessage is a travel query submitted for asynchronous answering.
type QueryMessage struct {
	ID    string `json:"id"`
	Query string `json:"query"`
}

// AnswerEvent is the answered query published to the answer topic.
type AnswerEvent struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	Response   string    `json:"response"`
	Outcome    Outcome   `json:"outcome"`
	AnsweredAt time.Time `json:"answered_at"`
}
