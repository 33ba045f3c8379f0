//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/couchcryptid/travel-query-service/internal/adapter/kafka"
	"github.com/couchcryptid/travel-query-service/internal/config"
	"github.com/couchcryptid/travel-query-service/internal/domain"
	"github.com/couchcryptid/travel-query-service/internal/observability"
	"github.com/couchcryptid/travel-query-service/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSourceTopic = "test-queries"
	testSinkTopic   = "test-answers"
)

// answeredMessage holds a deserialized message read from the answer topic.
type answeredMessage struct {
	Event   domain.AnswerEvent
	Key     string
	Headers map[string]string
}

// readAnswer reads a single message from the sink consumer and deserializes it.
func readAnswer(ctx context.Context, t *testing.T, consumer *kafkago.Reader) answeredMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from answer topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var event domain.AnswerEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event), "unmarshal answer message")

	return answeredMessage{Event: event, Key: string(msg.Key), Headers: headers}
}

func testConfig(broker, group string) *config.Config {
	return &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("%s-%d", group, time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}
}

func newSinkConsumer(t *testing.T, broker string) *kafkago.Reader {
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

func newProducer(t *testing.T, broker string) *kafkago.Writer {
	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testSourceTopic}
	t.Cleanup(func() { _ = producer.Close() })
	return producer
}

func newTestPipeline(t *testing.T, cfg *config.Config) *pipeline.Pipeline {
	t.Helper()
	metrics := observability.NewMetricsForTesting()

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	orch := pipeline.NewOrchestrator(fixedGeocoder{}, fixedWeather{}, fixedPlaces{}, fixedDetails{}, metrics, discardLogger())
	return pipeline.New(reader, pipeline.NewTransformer(orch, discardLogger()), writer, discardLogger(), metrics, 50)
}

// TestKafkaReaderWriter verifies that kafka.Reader and kafka.Writer
// round-trip a query and its answer through Kafka.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-reader")

	payload := []byte(`{"id":"q-1","query":"weather in Paris"}`)
	require.NoError(t, newProducer(t, broker).WriteMessages(ctx, kafkago.Message{Key: []byte("q-1"), Value: payload}))

	// Retry because the consumer group may need time to rebalance before
	// partitions are assigned and messages become available.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	var batch []domain.RawEvent
	for {
		var err error
		batch, err = reader.ExtractBatch(ctx, 1)
		require.NoError(t, err)
		if len(batch) > 0 {
			break
		}
		if ctx.Err() != nil {
			t.Fatal("timed out waiting for message from query topic")
		}
	}
	require.Len(t, batch, 1)
	raw := batch[0]
	assert.Equal(t, []byte("q-1"), raw.Key)
	assert.Equal(t, payload, raw.Value)
	assert.Equal(t, testSourceTopic, raw.Topic)
	require.NotNil(t, raw.Commit, "commit callback should be set")
	require.NoError(t, raw.Commit(ctx))

	msg, err := domain.ParseQueryMessage(raw)
	require.NoError(t, err)
	event := domain.NewAnswerEvent(msg, domain.Answer{Text: "sunny", Outcome: domain.OutcomeAnswered})

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	require.NoError(t, writer.LoadBatch(ctx, []domain.AnswerEvent{event}))

	am := readAnswer(ctx, t, newSinkConsumer(t, broker))
	assert.Equal(t, "q-1", am.Key)
	assert.Equal(t, "answered", am.Headers["outcome"])
	_, err = time.Parse(time.RFC3339, am.Headers["answered_at"])
	assert.NoError(t, err, "answered_at should be valid RFC3339")
	assert.Equal(t, "weather in Paris", am.Event.Query)
	assert.Equal(t, "sunny", am.Event.Response)
}

// TestPipelineEndToEnd runs the full consume-answer-publish loop.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	queries := map[string]string{
		"q-weather": "weather in Paris",
		"q-places":  "Paris",
		"q-bye":     "bye",
		"q-unknown": "Atlantis",
	}
	msgs := make([]kafkago.Message, 0, len(queries))
	for id, q := range queries {
		payload, err := json.Marshal(domain.QueryMessage{ID: id, Query: q})
		require.NoError(t, err)
		msgs = append(msgs, kafkago.Message{Key: []byte(id), Value: payload})
	}
	require.NoError(t, newProducer(t, broker).WriteMessages(ctx, msgs...))

	p := newTestPipeline(t, testConfig(broker, "test-pipeline"))
	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := newSinkConsumer(t, broker)
	received := make(map[string]answeredMessage, len(queries))
	for len(received) < len(queries) {
		am := readAnswer(ctx, t, consumer)
		received[am.Key] = am
	}

	pipelineCancel()
	require.NoError(t, <-errCh)
	require.NoError(t, p.CheckReadiness(ctx))

	assert.Equal(t, "In Paris it's currently 21°C with a chance of 10% to rain.", received["q-weather"].Event.Response)
	assert.Equal(t, domain.PlacesText("Paris", []string{"Louvre Museum", "Eiffel Tower"}), received["q-places"].Event.Response)
	assert.Equal(t, domain.GoodbyeText, received["q-bye"].Event.Response)
	assert.Equal(t, "goodbye", received["q-bye"].Headers["outcome"])
	assert.Equal(t, domain.UnknownPlaceText("Atlantis"), received["q-unknown"].Event.Response)
	assert.Equal(t, "lookup_failure", received["q-unknown"].Headers["outcome"])
}

// TestPipelineSkipsEmptyQueries verifies that a message with no query text
// is committed and skipped while later queries are still answered.
func TestPipelineSkipsEmptyQueries(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	require.NoError(t, newProducer(t, broker).WriteMessages(ctx,
		kafkago.Message{Key: []byte("bad"), Value: []byte(`{"id":"bad","query":"   "}`)},
		kafkago.Message{Key: []byte("good"), Value: []byte("Paris")},
	))

	p := newTestPipeline(t, testConfig(broker, "test-poison"))
	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := newSinkConsumer(t, broker)
	am := readAnswer(ctx, t, consumer)
	assert.Equal(t, "good", am.Key)
	assert.Equal(t, "Paris", am.Event.Query)

	// No second message arrives: the empty query was skipped.
	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err := consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no second message on answer topic")

	pipelineCancel()
	require.NoError(t, <-errCh)
}
