package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/travel-query-service/internal/domain"
)

// Answerer produces an answer for a single query.
type Answerer interface {
	Answer(ctx context.Context, text string) domain.Answer
}

// QueryTransformer implements Transformer by answering each query message.
type QueryTransformer struct {
	answerer Answerer
	logger   *slog.Logger
}

// NewTransformer creates a QueryTransformer.
func NewTransformer(answerer Answerer, logger *slog.Logger) *QueryTransformer {
	return &QueryTransformer{
		answerer: answerer,
		logger:   logger,
	}
}

// Transform parses a raw message and answers it. Only unparseable messages
// fail; every parsed query yields an answer event.
func (t *QueryTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.AnswerEvent, error) {
	msg, err := domain.ParseQueryMessage(raw)
	if err != nil {
		return domain.AnswerEvent{}, err
	}

	answer := t.answerer.Answer(ctx, msg.Query)
	t.logger.Debug("query answered", "id", msg.ID, "outcome", answer.Outcome)
	return domain.NewAnswerEvent(msg, answer), nil
}
