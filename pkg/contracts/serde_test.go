package contracts

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/martourez21/railstream-schema-library/pkg/schema"
	"github.com/martourez21/railstream-schema-library/pkg/schema_registry"
)

// fakeRegistry is an in-memory schema_registry.Registry for serde tests.
type fakeRegistry struct {
	mu      sync.Mutex
	schemas map[int]string
	ids     map[string]int
	nextID  int
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		schemas: make(map[int]string),
		ids:     make(map[string]int),
	}
}

func (f *fakeRegistry) GetSchemaByID(id int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	definition, ok := f.schemas[id]
	if !ok {
		return "", errors.New("schema not found")
	}
	return definition, nil
}

func (f *fakeRegistry) GetLatestSchema(subject string) (*schema_registry.Metadata, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRegistry) RegisterSchema(subject, definition string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := subject + ":" + definition
	if id, ok := f.ids[key]; ok {
		return id, nil
	}
	f.nextID++
	f.ids[key] = f.nextID
	f.schemas[f.nextID] = definition
	return f.nextID, nil
}

func (f *fakeRegistry) CheckCompatibility(subject, definition string) (bool, []string, error) {
	return true, nil, nil
}

func TestSensorDataRoundTrip(t *testing.T) {
	serde := NewSensorDataSerde(newFakeRegistry())

	in, err := NewSensorData(SensorData{
		SensorID:    "sensor-001",
		EquipmentID: "boiler-a",
		Timestamp:   1700000000,
		Temperature: 75.5,
		Unit:        UnitCelsius,
		Location:    "Plant-A",
		Status:      StatusOnline,
	})
	require.NoError(t, err)

	wire, err := serde.Encode(in)
	require.NoError(t, err)

	out, err := serde.Decode(wire)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Nil(t, out.Pressure)
	assert.Nil(t, out.Metadata)
}

func TestSensorDataRoundTripWithOptionals(t *testing.T) {
	serde := NewSensorDataSerde(newFakeRegistry())

	pressure := 101.325
	in := validSensorData()
	in.Pressure = &pressure
	in.Metadata = map[string]string{"firmware": "2.4.1", "rack": "7"}

	wire, err := serde.Encode(in)
	require.NoError(t, err)

	out, err := serde.Decode(wire)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	require.NotNil(t, out.Pressure)
	assert.Equal(t, pressure, *out.Pressure)
}

func TestSensorOutputRoundTrip(t *testing.T) {
	serde := NewSensorOutputSerde(newFakeRegistry())

	score := 0.42
	in := validSensorOutput()
	in.AnomalyScore = &score

	wire, err := serde.Encode(in)
	require.NoError(t, err)

	out, err := serde.Decode(wire)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestAlertEventRoundTripPreservesAcknowledgedFalse(t *testing.T) {
	serde := NewAlertEventSerde(newFakeRegistry())

	in := validAlertEvent()
	in.Severity = SeverityCritical
	in.Acknowledged = false

	wire, err := serde.Encode(in)
	require.NoError(t, err)

	out, err := serde.Decode(wire)
	require.NoError(t, err)
	assert.Equal(t, SeverityCritical, out.Severity)
	assert.False(t, out.Acknowledged)
	assert.Equal(t, in, out)
}

func TestSensorOutputDecodesV1Messages(t *testing.T) {
	// A message produced with the first schema revision, which predates
	// anomalyScore, decodes with the reader default applied.
	registry := newFakeRegistry()
	oldProducer := schema_registry.NewSerializer(
		registry, Subject(DestinationSensorOutput), SensorOutputSchemaV1)

	wire, err := oldProducer.Serialize(map[string]any{
		"equipmentId":        "boiler-a",
		"unit":               UnitCelsius,
		"location":           "Plant-A",
		"windowStart":        int64(1700000000000),
		"windowEnd":          int64(1700000060000),
		"averageTemperature": 74.0,
		"maxTemperature":     78.5,
		"minTemperature":     70.2,
		"sensorCount":        int32(4),
		"processingTime":     int64(1700000061000),
	})
	require.NoError(t, err)

	out, err := NewSensorOutputSerde(registry).Decode(wire)
	require.NoError(t, err)
	require.NotNil(t, out.AnomalyScore)
	assert.Equal(t, 0.0, *out.AnomalyScore)
	assert.Equal(t, "boiler-a", out.EquipmentID)
}

func TestEncodeRejectsInvalidValue(t *testing.T) {
	registry := newFakeRegistry()
	serde := NewSensorOutputSerde(registry)

	// Hand-assembled struct that skips the builder still cannot reach the
	// wire with a broken invariant.
	v := validSensorOutput()
	v.MinTemperature = 99.0

	_, err := serde.Encode(v)
	require.Error(t, err)
	assert.True(t, schema.IsValidationError(err))
}

func TestDecodeRejectsForeignBytes(t *testing.T) {
	serde := NewSensorDataSerde(newFakeRegistry())

	_, err := serde.Decode([]byte{0xFF, 0x01, 0x02, 0x03, 0x04, 0x05})
	require.Error(t, err)
	assert.True(t, schema.IsMalformedMessageError(err))
}

func TestFXModuleProvidesSerdes(t *testing.T) {
	var (
		sensorData   *SensorDataSerde
		sensorOutput *SensorOutputSerde
		alertEvent   *AlertEventSerde
	)

	app := fx.New(
		FXModule,
		fx.Provide(func() schema_registry.Registry { return newFakeRegistry() }),
		fx.Populate(&sensorData, &sensorOutput, &alertEvent),
		fx.NopLogger,
	)

	ctx := context.Background()
	require.NoError(t, app.Start(ctx))
	defer app.Stop(ctx)

	require.NotNil(t, sensorData)
	require.NotNil(t, sensorOutput)
	require.NotNil(t, alertEvent)

	wire, err := alertEvent.Encode(validAlertEvent())
	require.NoError(t, err)
	out, err := alertEvent.Decode(wire)
	require.NoError(t, err)
	assert.Equal(t, "alert-001", out.AlertID)
}
