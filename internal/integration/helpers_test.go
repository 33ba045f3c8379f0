//go:build integration

package integration_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"

	"github.com/couchcryptid/travel-query-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const kafkaImage = "confluentinc/confluent-local:7.5.0"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node broker and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, kafkaImage, tckafka.WithClusterID("travel-query-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// Fixed providers so answers do not depend on live APIs.

type fixedGeocoder struct{}

func (fixedGeocoder) Search(_ context.Context, query string, _ int) ([]domain.GeocodeResult, error) {
	if query != "Paris" {
		return nil, nil
	}
	return []domain.GeocodeResult{{
		Lat: 48.8566, Lon: 2.3522, Type: "city", Class: "place", Importance: 0.9,
		Name: "Paris", DisplayName: "Paris, Île-de-France, France",
	}}, nil
}

type fixedWeather struct{}

func (fixedWeather) Current(context.Context, float64, float64) (domain.Weather, error) {
	temp := 21.0
	return domain.Weather{TemperatureC: &temp, PrecipitationProbability: 10}, nil
}

type fixedPlaces struct{}

func (fixedPlaces) Nearby(context.Context, float64, float64, int, []string) ([]string, error) {
	return []string{"Louvre Museum", "Eiffel Tower"}, nil
}

type fixedDetails struct{}

func (fixedDetails) Describe(context.Context, string, string) (domain.PlaceDetails, error) {
	return domain.PlaceDetails{}, domain.ErrPlaceNotFound
}
