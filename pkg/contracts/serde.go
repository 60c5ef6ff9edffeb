package contracts

import (
	"github.com/martourez21/railstream-schema-library/pkg/metrics"
	"github.com/martourez21/railstream-schema-library/pkg/schema_registry"
)

// recordValue is implemented by every record type in this package.
type recordValue interface {
	Validate() error
	fieldMap() map[string]any
}

// serde pairs a subject-bound serializer with a reader-schema deserializer.
type serde struct {
	record  string
	ser     *schema_registry.Serializer
	de      *schema_registry.Deserializer
	metrics *metrics.SerdeMetrics
}

func (s *serde) encode(v recordValue) ([]byte, error) {
	wire, err := s.encodeValue(v)
	s.metrics.ObserveEncode(s.record, err)
	return wire, err
}

func (s *serde) encodeValue(v recordValue) ([]byte, error) {
	// Builder invariants are re-checked here so a hand-assembled struct
	// cannot bypass them on its way to the wire.
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return s.ser.Serialize(v.fieldMap())
}

func (s *serde) decode(data []byte) (map[string]any, error) {
	fields, err := s.de.Deserialize(data)
	s.metrics.ObserveDecode(s.record, err)
	return fields, err
}

func newSerde(registry schema_registry.Registry, contract Contract) serde {
	return serde{
		record: contract.Name,
		ser:    schema_registry.NewSerializer(registry, Subject(contract.Destination), contract.Schema),
		de:     schema_registry.NewDeserializer(registry, contract.Schema),
	}
}

// SensorDataSerde encodes and decodes SensorData messages for the
// "sensor-raw-data" destination.
type SensorDataSerde struct {
	serde
}

// NewSensorDataSerde creates a serde backed by the given registry.
func NewSensorDataSerde(registry schema_registry.Registry) *SensorDataSerde {
	return &SensorDataSerde{newSerde(registry, Contract{
		Name:        "SensorData",
		Destination: DestinationSensorData,
		Schema:      SensorDataSchema,
	})}
}

// WithMetrics attaches serde metrics and returns the serde for chaining.
func (s *SensorDataSerde) WithMetrics(m *metrics.SerdeMetrics) *SensorDataSerde {
	s.metrics = m
	return s
}

// Encode validates a reading and produces the framed wire bytes.
func (s *SensorDataSerde) Encode(v SensorData) ([]byte, error) {
	return s.encode(v)
}

// Decode parses framed wire bytes back into a reading.
func (s *SensorDataSerde) Decode(data []byte) (SensorData, error) {
	fields, err := s.decode(data)
	if err != nil {
		return SensorData{}, err
	}
	return sensorDataFromFields(fields)
}

// SensorOutputSerde encodes and decodes SensorOutput messages for the
// "aggregated-sensor-metrics" destination.
type SensorOutputSerde struct {
	serde
}

// NewSensorOutputSerde creates a serde backed by the given registry.
func NewSensorOutputSerde(registry schema_registry.Registry) *SensorOutputSerde {
	return &SensorOutputSerde{newSerde(registry, Contract{
		Name:        "SensorOutput",
		Destination: DestinationSensorOutput,
		Schema:      SensorOutputSchema,
	})}
}

// WithMetrics attaches serde metrics and returns the serde for chaining.
func (s *SensorOutputSerde) WithMetrics(m *metrics.SerdeMetrics) *SensorOutputSerde {
	s.metrics = m
	return s
}

// Encode validates an aggregate and produces the framed wire bytes.
func (s *SensorOutputSerde) Encode(v SensorOutput) ([]byte, error) {
	return s.encode(v)
}

// Decode parses framed wire bytes back into an aggregate.
func (s *SensorOutputSerde) Decode(data []byte) (SensorOutput, error) {
	fields, err := s.decode(data)
	if err != nil {
		return SensorOutput{}, err
	}
	return sensorOutputFromFields(fields)
}

// AlertEventSerde encodes and decodes AlertEvent messages for the
// "sensor-alerts" destination.
type AlertEventSerde struct {
	serde
}

// NewAlertEventSerde creates a serde backed by the given registry.
func NewAlertEventSerde(registry schema_registry.Registry) *AlertEventSerde {
	return &AlertEventSerde{newSerde(registry, Contract{
		Name:        "AlertEvent",
		Destination: DestinationAlertEvent,
		Schema:      AlertEventSchema,
	})}
}

// WithMetrics attaches serde metrics and returns the serde for chaining.
func (s *AlertEventSerde) WithMetrics(m *metrics.SerdeMetrics) *AlertEventSerde {
	s.metrics = m
	return s
}

// Encode validates an alert and produces the framed wire bytes.
func (s *AlertEventSerde) Encode(v AlertEvent) ([]byte, error) {
	return s.encode(v)
}

// Decode parses framed wire bytes back into an alert.
func (s *AlertEventSerde) Decode(data []byte) (AlertEvent, error) {
	fields, err := s.decode(data)
	if err != nil {
		return AlertEvent{}, err
	}
	return alertEventFromFields(fields)
}
