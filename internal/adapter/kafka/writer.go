package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/travel-query-service/internal/config"
	"github.com/couchcryptid/travel-query-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces answer messages to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes answers in a single WriteMessages call.
// Answers are keyed by query ID so retries of one query stay on one partition.
func (w *Writer) LoadBatch(ctx context.Context, events []domain.AnswerEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(events))
	for i := range events {
		msg, err := serializeToMessage(events[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d answers: %w", len(msgs), err)
	}
	w.logger.Debug("answers published", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

// Close flushes pending writes and releases the producer.
func (w *Writer) Close() error {
	return w.writer.Close()
}

func serializeToMessage(event domain.AnswerEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize answer event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "outcome", Value: []byte(event.Outcome)},
			{Key: "answered_at", Value: []byte(event.AnsweredAt.Format(time.RFC3339))},
		},
	}, nil
}
