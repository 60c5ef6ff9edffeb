// Package contracts is the schema catalog of the railstream platform: the
// record types exchanged between sensor producers, aggregation workers, and
// alerting consumers, together with their registry schemas and messaging
// destinations.
//
// Three contracts are defined, each bound to a fixed topic:
//
//	SensorData   ⇄ sensor-raw-data
//	SensorOutput ⇄ aggregated-sensor-metrics
//	AlertEvent   ⇄ sensor-alerts
//
// Records are immutable value structs constructed through validating builders
// (NewSensorData, NewSensorOutput, NewAlertEvent). Builders enforce required
// fields, enum membership, and cross-field invariants such as the window
// ordering of SensorOutput, failing with a ValidationError that names the
// offending field.
//
// Each record type has a serde pairing it with its destination's registry
// subject:
//
//	registry, err := schema_registry.NewClient(schema_registry.Config{URL: url})
//	if err != nil {
//	    return err
//	}
//	serde := contracts.NewSensorDataSerde(registry)
//
//	reading, err := contracts.NewSensorData(contracts.SensorData{
//	    SensorID:    "sensor-001",
//	    EquipmentID: "boiler-a",
//	    Timestamp:   time.Now().Unix(),
//	    Temperature: 75.5,
//	    Unit:        contracts.UnitCelsius,
//	    Location:    "Plant-A",
//	    Status:      contracts.StatusOnline,
//	})
//	if err != nil {
//	    return err
//	}
//
//	wire, err := serde.Encode(reading)  // [magic][schema id][payload]
//	decoded, err := serde.Decode(wire)
//
// Schema evolution follows additive rules: new fields are added as optional or
// defaulted (see SensorOutput's anomalyScore, added in the second revision of
// that schema). RegisterAll pushes every catalog schema to the registry;
// CheckCompatibilityAll verifies local definitions against the registry's
// compatibility policy before deployment.
package contracts
