package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/travel-query-service/internal/domain"
	"github.com/couchcryptid/travel-query-service/internal/observability"
	"golang.org/x/sync/errgroup"
)

// BatchExtractor reads up to batchSize raw query messages from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer answers a raw query message.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.AnswerEvent, error)
}

// BatchLoader publishes answers to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.AnswerEvent) error
}

const (
	initialBackoff     = 200 * time.Millisecond
	maxBackoff         = 5 * time.Second
	defaultConcurrency = 4
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithConcurrency bounds how many messages of a batch are answered at once.
// Values below one are ignored.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// Pipeline consumes query messages, answers them, and publishes the answers.
// Offsets are committed only after the answers are published, so a failed
// publish redelivers the batch.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
	concurrency int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CheckReadiness returns nil once the pipeline has published at least one
// answer.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not answered any messages yet")
	}
	return nil
}

// Run answers batches until the context is cancelled. Source and sink
// failures are retried with exponential backoff.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize, "concurrency", p.concurrency)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	retry := backoff{next: initialBackoff}
	for ctx.Err() == nil {
		if err := p.runBatch(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			p.logger.Error("batch failed", "error", err, "retry_in", retry.next)
			if !retry.wait(ctx) {
				break
			}
			continue
		}
		retry.reset()
	}

	p.logger.Info("pipeline stopping", "reason", ctx.Err())
	return nil
}

// runBatch runs one consume-answer-publish cycle.
func (p *Pipeline) runBatch(ctx context.Context) error {
	start := time.Now()

	batch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		return nil
	}
	p.metrics.MessagesConsumed.Add(float64(len(batch)))
	p.metrics.BatchSize.Observe(float64(len(batch)))

	answers, answered := p.answerBatch(ctx, batch)
	if len(answers) == 0 {
		return nil
	}

	if err := p.loader.LoadBatch(ctx, answers); err != nil {
		return err
	}
	p.metrics.MessagesProduced.Add(float64(len(answers)))
	for _, raw := range answered {
		p.commit(ctx, raw)
	}

	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	return nil
}

// answerBatch answers the batch with bounded concurrency and returns the
// answers in message order along with their source messages. Unparseable
// messages are committed and skipped.
func (p *Pipeline) answerBatch(ctx context.Context, batch []domain.RawEvent) ([]domain.AnswerEvent, []domain.RawEvent) {
	results := make([]domain.AnswerEvent, len(batch))
	failed := make([]bool, len(batch))

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, raw := range batch {
		g.Go(func() error {
			out, err := p.transformer.Transform(ctx, raw)
			if err != nil {
				p.logger.Warn("unparseable query message, skipping",
					"error", err,
					"topic", raw.Topic,
					"partition", raw.Partition,
					"offset", raw.Offset,
				)
				p.metrics.TransformErrors.Inc()
				failed[i] = true
				return nil
			}
			results[i] = out
			return nil
		})
	}
	_ = g.Wait()

	answers := make([]domain.AnswerEvent, 0, len(batch))
	answered := make([]domain.RawEvent, 0, len(batch))
	for i, raw := range batch {
		if failed[i] {
			p.commit(ctx, raw)
			continue
		}
		answers = append(answers, results[i])
		answered = append(answered, raw)
	}
	return answers, answered
}

func (p *Pipeline) commit(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

// backoff doubles from initialBackoff up to maxBackoff.
type backoff struct {
	next time.Duration
}

func (b *backoff) reset() { b.next = initialBackoff }

// wait sleeps for the current delay and doubles it. It returns false if the
// context ends first.
func (b *backoff) wait(ctx context.Context) bool {
	timer := time.NewTimer(b.next)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	}
	b.next = min(b.next*2, maxBackoff)
	return true
}
