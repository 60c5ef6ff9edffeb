package contracts

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/martourez21/railstream-schema-library/pkg/schema"
)

// Severity grades an alert.
type Severity string

// Declared Severity values, in wire order.
const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// AlertEvent records a threshold breach for a sensor, published to
// "sensor-alerts".
type AlertEvent struct {
	// AlertID uniquely identifies the alert. NewAlertEvent generates one when
	// it is left empty.
	AlertID string

	SensorID    string
	EquipmentID string
	Location    string

	// Timestamp is the breach time in Unix seconds.
	Timestamp int64

	// Temperature is the reading that breached Threshold.
	Temperature float64
	Threshold   float64

	Severity Severity

	// Message is the human-readable alert description.
	Message string

	// Acknowledged starts false and is flipped by downstream alert handling,
	// not by this library.
	Acknowledged bool
}

// NewAlertEvent validates an alert and returns it as an immutable value,
// generating an AlertID when none is supplied.
func NewAlertEvent(v AlertEvent) (AlertEvent, error) {
	if v.AlertID == "" {
		v.AlertID = uuid.NewString()
	}
	if err := v.Validate(); err != nil {
		return AlertEvent{}, err
	}
	return v, nil
}

// Validate checks the alert against the AlertEvent contract.
func (v AlertEvent) Validate() error {
	switch {
	case v.AlertID == "":
		return requiredError("AlertEvent", "alertId")
	case v.SensorID == "":
		return requiredError("AlertEvent", "sensorId")
	case v.EquipmentID == "":
		return requiredError("AlertEvent", "equipmentId")
	case v.Location == "":
		return requiredError("AlertEvent", "location")
	case v.Timestamp <= 0:
		return &schema.ValidationError{Record: "AlertEvent", Field: "timestamp", Reason: "must be a positive Unix timestamp"}
	case v.Message == "":
		return requiredError("AlertEvent", "message")
	}
	switch v.Severity {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
	default:
		return &schema.ValidationError{
			Record: "AlertEvent",
			Field:  "severity",
			Reason: fmt.Sprintf("unknown severity %q", v.Severity),
		}
	}
	return nil
}

func (v AlertEvent) fieldMap() map[string]any {
	return map[string]any{
		"alertId":      v.AlertID,
		"sensorId":     v.SensorID,
		"equipmentId":  v.EquipmentID,
		"location":     v.Location,
		"timestamp":    v.Timestamp,
		"temperature":  v.Temperature,
		"threshold":    v.Threshold,
		"severity":     string(v.Severity),
		"message":      v.Message,
		"acknowledged": v.Acknowledged,
	}
}

func alertEventFromFields(fields map[string]any) (AlertEvent, error) {
	var v AlertEvent
	var err error
	if v.AlertID, err = stringField(fields, "AlertEvent", "alertId"); err != nil {
		return AlertEvent{}, err
	}
	if v.SensorID, err = stringField(fields, "AlertEvent", "sensorId"); err != nil {
		return AlertEvent{}, err
	}
	if v.EquipmentID, err = stringField(fields, "AlertEvent", "equipmentId"); err != nil {
		return AlertEvent{}, err
	}
	if v.Location, err = stringField(fields, "AlertEvent", "location"); err != nil {
		return AlertEvent{}, err
	}
	if v.Timestamp, err = longField(fields, "AlertEvent", "timestamp"); err != nil {
		return AlertEvent{}, err
	}
	if v.Temperature, err = doubleField(fields, "AlertEvent", "temperature"); err != nil {
		return AlertEvent{}, err
	}
	if v.Threshold, err = doubleField(fields, "AlertEvent", "threshold"); err != nil {
		return AlertEvent{}, err
	}
	severity, err := stringField(fields, "AlertEvent", "severity")
	if err != nil {
		return AlertEvent{}, err
	}
	v.Severity = Severity(severity)
	if v.Message, err = stringField(fields, "AlertEvent", "message"); err != nil {
		return AlertEvent{}, err
	}
	if v.Acknowledged, err = boolField(fields, "AlertEvent", "acknowledged"); err != nil {
		return AlertEvent{}, err
	}
	return v, nil
}
