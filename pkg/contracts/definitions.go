package contracts

import (
	"fmt"

	"github.com/martourez21/railstream-schema-library/pkg/schema"
	"github.com/martourez21/railstream-schema-library/pkg/schema_registry"
)

// Messaging destinations. The bindings are fixed: each record type is
// published to exactly one topic and each topic carries exactly one record
// type.
const (
	DestinationSensorData   = "sensor-raw-data"
	DestinationSensorOutput = "aggregated-sensor-metrics"
	DestinationAlertEvent   = "sensor-alerts"
)

// Subject returns the registry subject for a destination, following the
// topic-name strategy.
func Subject(destination string) string {
	return destination + "-value"
}

// SensorDataDefinition is the schema for raw sensor telemetry.
const SensorDataDefinition = `{
	"type": "record",
	"name": "SensorData",
	"fields": [
		{"name": "sensorId", "type": "string"},
		{"name": "equipmentId", "type": "string"},
		{"name": "timestamp", "type": "long"},
		{"name": "temperature", "type": "double"},
		{"name": "pressure", "type": "double", "optional": true},
		{"name": "unit", "type": "string"},
		{"name": "location", "type": "string"},
		{"name": "status", "type": "enum", "symbols": ["ONLINE", "OFFLINE", "ERROR", "MAINTENANCE"]},
		{"name": "metadata", "type": "map", "optional": true}
	]
}`

// SensorOutputDefinitionV1 is the first revision of the aggregate schema,
// before anomaly scoring was added. Kept for consumers decoding historical
// messages and for evolution tests.
const SensorOutputDefinitionV1 = `{
	"type": "record",
	"name": "SensorOutput",
	"fields": [
		{"name": "equipmentId", "type": "string"},
		{"name": "unit", "type": "string"},
		{"name": "location", "type": "string"},
		{"name": "windowStart", "type": "long"},
		{"name": "windowEnd", "type": "long"},
		{"name": "averageTemperature", "type": "double"},
		{"name": "maxTemperature", "type": "double"},
		{"name": "minTemperature", "type": "double"},
		{"name": "sensorCount", "type": "int"},
		{"name": "processingTime", "type": "long"}
	]
}`

// SensorOutputDefinition is the current revision of the aggregate schema.
// anomalyScore was added as an optional, defaulted field so old messages and
// old readers both remain compatible.
const SensorOutputDefinition = `{
	"type": "record",
	"name": "SensorOutput",
	"fields": [
		{"name": "equipmentId", "type": "string"},
		{"name": "unit", "type": "string"},
		{"name": "location", "type": "string"},
		{"name": "windowStart", "type": "long"},
		{"name": "windowEnd", "type": "long"},
		{"name": "averageTemperature", "type": "double"},
		{"name": "maxTemperature", "type": "double"},
		{"name": "minTemperature", "type": "double"},
		{"name": "sensorCount", "type": "int"},
		{"name": "processingTime", "type": "long"},
		{"name": "anomalyScore", "type": "double", "optional": true, "default": 0}
	]
}`

// AlertEventDefinition is the schema for threshold alert events.
const AlertEventDefinition = `{
	"type": "record",
	"name": "AlertEvent",
	"fields": [
		{"name": "alertId", "type": "string"},
		{"name": "sensorId", "type": "string"},
		{"name": "equipmentId", "type": "string"},
		{"name": "location", "type": "string"},
		{"name": "timestamp", "type": "long"},
		{"name": "temperature", "type": "double"},
		{"name": "threshold", "type": "double"},
		{"name": "severity", "type": "enum", "symbols": ["LOW", "MEDIUM", "HIGH", "CRITICAL"]},
		{"name": "message", "type": "string"},
		{"name": "acknowledged", "type": "boolean", "default": false}
	]
}`

// Compiled schemas for the current revisions.
var (
	SensorDataSchema     = schema.MustParse(SensorDataDefinition)
	SensorOutputSchema   = schema.MustParse(SensorOutputDefinition)
	SensorOutputSchemaV1 = schema.MustParse(SensorOutputDefinitionV1)
	AlertEventSchema     = schema.MustParse(AlertEventDefinition)
)

// Contract binds a record schema to its messaging destination.
type Contract struct {
	Name        string
	Destination string
	Schema      *schema.Schema
}

// Catalog lists every contract this library defines, in a stable order.
func Catalog() []Contract {
	return []Contract{
		{Name: "SensorData", Destination: DestinationSensorData, Schema: SensorDataSchema},
		{Name: "SensorOutput", Destination: DestinationSensorOutput, Schema: SensorOutputSchema},
		{Name: "AlertEvent", Destination: DestinationAlertEvent, Schema: AlertEventSchema},
	}
}

// RegisterAll registers every catalog schema with the registry and returns the
// assigned IDs keyed by record name. Registration stops at the first failure.
func RegisterAll(registry schema_registry.Registry) (map[string]int, error) {
	ids := make(map[string]int, len(Catalog()))
	for _, contract := range Catalog() {
		id, err := registry.RegisterSchema(Subject(contract.Destination), contract.Schema.Definition())
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", contract.Name, err)
		}
		ids[contract.Name] = id
	}
	return ids, nil
}

// CheckCompatibilityAll checks every catalog schema against the latest
// registered version of its subject. The result maps record names to
// violation messages; an empty map means every contract is compatible.
func CheckCompatibilityAll(registry schema_registry.Registry) (map[string][]string, error) {
	violations := make(map[string][]string)
	for _, contract := range Catalog() {
		compatible, messages, err := registry.CheckCompatibility(Subject(contract.Destination), contract.Schema.Definition())
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", contract.Name, err)
		}
		if !compatible {
			if len(messages) == 0 {
				messages = []string{"incompatible with latest registered version"}
			}
			violations[contract.Name] = messages
		}
	}
	return violations, nil
}
