package contracts

import (
	"fmt"

	"github.com/martourez21/railstream-schema-library/pkg/schema"
)

// SensorStatus is the operational state reported with a sensor reading.
type SensorStatus string

// Declared SensorStatus values, in wire order.
const (
	StatusOnline      SensorStatus = "ONLINE"
	StatusOffline     SensorStatus = "OFFLINE"
	StatusError       SensorStatus = "ERROR"
	StatusMaintenance SensorStatus = "MAINTENANCE"
)

// Measurement units accepted by the sensor contracts. The wire type stays an
// open string for compatibility with the original contract; only the builder
// enforces this list.
const (
	UnitCelsius    = "Celsius"
	UnitFahrenheit = "Fahrenheit"
	UnitPSI        = "PSI"
)

// SensorData is a single raw telemetry reading, published to
// "sensor-raw-data". Values are set once at construction and not mutated
// afterwards.
type SensorData struct {
	// SensorID uniquely identifies the reporting sensor.
	SensorID string

	// EquipmentID identifies the equipment the sensor is mounted on.
	EquipmentID string

	// Timestamp is the reading time in Unix seconds.
	Timestamp int64

	Temperature float64

	// Pressure is nil when the sensor has no pressure reading.
	Pressure *float64

	// Unit is the measurement unit, one of UnitCelsius, UnitFahrenheit, UnitPSI.
	Unit string

	Location string

	Status SensorStatus

	// Metadata carries free-form sensor annotations; nil when absent.
	Metadata map[string]string
}

// NewSensorData validates a reading and returns it as an immutable value.
// Every required field must be set, Unit must be one of the declared units,
// and Status one of the declared statuses; violations fail with a
// ValidationError naming the field. Metadata is copied so later mutation of
// the caller's map cannot leak into the value.
func NewSensorData(v SensorData) (SensorData, error) {
	if err := v.Validate(); err != nil {
		return SensorData{}, err
	}
	if v.Metadata != nil {
		metadata := make(map[string]string, len(v.Metadata))
		for k, mv := range v.Metadata {
			metadata[k] = mv
		}
		v.Metadata = metadata
	}
	return v, nil
}

// Validate checks the reading against the SensorData contract.
func (v SensorData) Validate() error {
	switch {
	case v.SensorID == "":
		return requiredError("SensorData", "sensorId")
	case v.EquipmentID == "":
		return requiredError("SensorData", "equipmentId")
	case v.Timestamp <= 0:
		return &schema.ValidationError{Record: "SensorData", Field: "timestamp", Reason: "must be a positive Unix timestamp"}
	case v.Unit == "":
		return requiredError("SensorData", "unit")
	case v.Location == "":
		return requiredError("SensorData", "location")
	case v.Status == "":
		return requiredError("SensorData", "status")
	}
	if v.Unit != UnitCelsius && v.Unit != UnitFahrenheit && v.Unit != UnitPSI {
		return &schema.ValidationError{
			Record: "SensorData",
			Field:  "unit",
			Reason: fmt.Sprintf("unknown unit %q, expected %q, %q or %q", v.Unit, UnitCelsius, UnitFahrenheit, UnitPSI),
		}
	}
	switch v.Status {
	case StatusOnline, StatusOffline, StatusError, StatusMaintenance:
	default:
		return &schema.ValidationError{
			Record: "SensorData",
			Field:  "status",
			Reason: fmt.Sprintf("unknown status %q", v.Status),
		}
	}
	return nil
}

func (v SensorData) fieldMap() map[string]any {
	fields := map[string]any{
		"sensorId":    v.SensorID,
		"equipmentId": v.EquipmentID,
		"timestamp":   v.Timestamp,
		"temperature": v.Temperature,
		"unit":        v.Unit,
		"location":    v.Location,
		"status":      string(v.Status),
	}
	if v.Pressure != nil {
		fields["pressure"] = *v.Pressure
	}
	if v.Metadata != nil {
		fields["metadata"] = v.Metadata
	}
	return fields
}

func sensorDataFromFields(fields map[string]any) (SensorData, error) {
	var v SensorData
	var err error
	if v.SensorID, err = stringField(fields, "SensorData", "sensorId"); err != nil {
		return SensorData{}, err
	}
	if v.EquipmentID, err = stringField(fields, "SensorData", "equipmentId"); err != nil {
		return SensorData{}, err
	}
	if v.Timestamp, err = longField(fields, "SensorData", "timestamp"); err != nil {
		return SensorData{}, err
	}
	if v.Temperature, err = doubleField(fields, "SensorData", "temperature"); err != nil {
		return SensorData{}, err
	}
	if v.Unit, err = stringField(fields, "SensorData", "unit"); err != nil {
		return SensorData{}, err
	}
	if v.Location, err = stringField(fields, "SensorData", "location"); err != nil {
		return SensorData{}, err
	}
	status, err := stringField(fields, "SensorData", "status")
	if err != nil {
		return SensorData{}, err
	}
	v.Status = SensorStatus(status)

	if raw, ok := fields["pressure"]; ok {
		pressure, ok := raw.(float64)
		if !ok {
			return SensorData{}, decodedTypeError("SensorData", "pressure", "float64", raw)
		}
		v.Pressure = &pressure
	}
	if raw, ok := fields["metadata"]; ok {
		metadata, ok := raw.(map[string]string)
		if !ok {
			return SensorData{}, decodedTypeError("SensorData", "metadata", "map[string]string", raw)
		}
		v.Metadata = metadata
	}
	return v, nil
}
