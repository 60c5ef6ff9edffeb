package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martourez21/railstream-schema-library/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.NewLoggerClient(logger.Config{Level: logger.Error})
}

func TestNewClientValidatesConfig(t *testing.T) {
	log := testLogger()

	_, err := NewClient(Config{Destination: "sensor-raw-data"}, log)
	assert.ErrorContains(t, err, "brokers")

	_, err = NewClient(Config{Brokers: []string{"localhost:9092"}}, log)
	assert.ErrorContains(t, err, "destination")

	_, err = NewClient(Config{
		Brokers:     []string{"localhost:9092"},
		Destination: "sensor-raw-data",
		IsConsumer:  true,
	}, log)
	assert.ErrorContains(t, err, "group id")
}

func TestWithDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	assert.Equal(t, DefaultMinBytes, cfg.MinBytes)
	assert.Equal(t, DefaultMaxBytes, cfg.MaxBytes)
	assert.Equal(t, DefaultMaxWait, cfg.MaxWait)
	assert.Equal(t, DefaultWriteTimeout, cfg.WriteTimeout)
	assert.Equal(t, DefaultRequiredAcks, cfg.RequiredAcks)

	tuned := Config{MaxWait: time.Minute}.withDefaults()
	assert.Equal(t, time.Minute, tuned.MaxWait)
}

func TestProducerRejectsConsumerCalls(t *testing.T) {
	producer, err := NewClient(Config{
		Brokers:     []string{"localhost:9092"},
		Destination: "sensor-raw-data",
	}, testLogger())
	require.NoError(t, err)
	defer producer.Close()

	_, err = producer.Fetch(t.Context())
	assert.ErrorContains(t, err, "not a consumer")
	assert.Equal(t, "sensor-raw-data", producer.Destination())
}

func TestCreateSASLMechanism(t *testing.T) {
	for _, mechanism := range []string{"PLAIN", "SCRAM-SHA-256", "SCRAM-SHA-512"} {
		t.Run(mechanism, func(t *testing.T) {
			m, err := createSASLMechanism(SASLConfig{
				Mechanism: mechanism,
				Username:  "user",
				Password:  "pass",
			})
			require.NoError(t, err)
			assert.NotNil(t, m)
		})
	}

	_, err := createSASLMechanism(SASLConfig{Mechanism: "GSSAPI"})
	assert.ErrorContains(t, err, "unsupported")
}

func TestCloseIsIdempotent(t *testing.T) {
	client, err := NewClient(Config{
		Brokers:     []string{"localhost:9092"},
		Destination: "sensor-raw-data",
	}, testLogger())
	require.NoError(t, err)

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())
}
