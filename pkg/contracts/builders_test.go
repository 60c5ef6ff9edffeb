package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martourez21/railstream-schema-library/pkg/schema"
)

func validSensorData() SensorData {
	return SensorData{
		SensorID:    "sensor-001",
		EquipmentID: "boiler-a",
		Timestamp:   1700000000,
		Temperature: 75.5,
		Unit:        UnitCelsius,
		Location:    "Plant-A",
		Status:      StatusOnline,
	}
}

func validSensorOutput() SensorOutput {
	return SensorOutput{
		EquipmentID:        "boiler-a",
		Unit:               UnitCelsius,
		Location:           "Plant-A",
		WindowStart:        1700000000000,
		WindowEnd:          1700000060000,
		AverageTemperature: 74.0,
		MaxTemperature:     78.5,
		MinTemperature:     70.2,
		SensorCount:        4,
		ProcessingTime:     1700000061000,
	}
}

func validAlertEvent() AlertEvent {
	return AlertEvent{
		AlertID:     "alert-001",
		SensorID:    "sensor-001",
		EquipmentID: "boiler-a",
		Location:    "Plant-A",
		Timestamp:   1700000000,
		Temperature: 95.5,
		Threshold:   90.0,
		Severity:    SeverityCritical,
		Message:     "temperature above threshold",
	}
}

func assertValidationError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, field, verr.Field)
}

func TestNewSensorData(t *testing.T) {
	v, err := NewSensorData(validSensorData())
	require.NoError(t, err)
	assert.Equal(t, "sensor-001", v.SensorID)
	assert.Nil(t, v.Pressure)
	assert.Nil(t, v.Metadata)
}

func TestNewSensorDataRequiredFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*SensorData)
	}{
		{"sensorId", func(v *SensorData) { v.SensorID = "" }},
		{"equipmentId", func(v *SensorData) { v.EquipmentID = "" }},
		{"timestamp", func(v *SensorData) { v.Timestamp = 0 }},
		{"unit", func(v *SensorData) { v.Unit = "" }},
		{"location", func(v *SensorData) { v.Location = "" }},
		{"status", func(v *SensorData) { v.Status = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			v := validSensorData()
			tc.mutate(&v)
			_, err := NewSensorData(v)
			assertValidationError(t, err, tc.field)
		})
	}
}

func TestNewSensorDataRejectsUnknownUnit(t *testing.T) {
	v := validSensorData()
	v.Unit = "Kelvin"
	_, err := NewSensorData(v)
	assertValidationError(t, err, "unit")
}

func TestNewSensorDataRejectsUnknownStatus(t *testing.T) {
	v := validSensorData()
	v.Status = "REBOOTING"
	_, err := NewSensorData(v)
	assertValidationError(t, err, "status")
}

func TestNewSensorDataCopiesMetadata(t *testing.T) {
	metadata := map[string]string{"firmware": "2.4.1"}
	in := validSensorData()
	in.Metadata = metadata

	v, err := NewSensorData(in)
	require.NoError(t, err)

	metadata["firmware"] = "tampered"
	assert.Equal(t, "2.4.1", v.Metadata["firmware"])
}

func TestNewSensorOutput(t *testing.T) {
	v, err := NewSensorOutput(validSensorOutput())
	require.NoError(t, err)
	assert.Nil(t, v.AnomalyScore)
}

func TestNewSensorOutputRequiredFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*SensorOutput)
	}{
		{"equipmentId", func(v *SensorOutput) { v.EquipmentID = "" }},
		{"unit", func(v *SensorOutput) { v.Unit = "" }},
		{"location", func(v *SensorOutput) { v.Location = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			v := validSensorOutput()
			tc.mutate(&v)
			_, err := NewSensorOutput(v)
			assertValidationError(t, err, tc.field)
		})
	}
}

func TestNewSensorOutputRejectsInvertedWindow(t *testing.T) {
	v := validSensorOutput()
	v.WindowStart, v.WindowEnd = v.WindowEnd, v.WindowStart
	_, err := NewSensorOutput(v)
	assertValidationError(t, err, "windowStart")
}

func TestNewSensorOutputRejectsNegativeSensorCount(t *testing.T) {
	v := validSensorOutput()
	v.SensorCount = -1
	_, err := NewSensorOutput(v)
	assertValidationError(t, err, "sensorCount")
}

func TestNewSensorOutputRejectsUnorderedTemperatures(t *testing.T) {
	v := validSensorOutput()
	v.MinTemperature = 80.0
	_, err := NewSensorOutput(v)
	assertValidationError(t, err, "averageTemperature")

	v = validSensorOutput()
	v.AverageTemperature = 99.0
	_, err = NewSensorOutput(v)
	assertValidationError(t, err, "averageTemperature")
}

func TestNewSensorOutputSkipsTemperatureInvariantForEmptyWindow(t *testing.T) {
	v := validSensorOutput()
	v.SensorCount = 0
	v.MinTemperature = 80.0 // nonsense values are fine with no contributing sensors
	_, err := NewSensorOutput(v)
	assert.NoError(t, err)
}

func TestNewAlertEvent(t *testing.T) {
	v, err := NewAlertEvent(validAlertEvent())
	require.NoError(t, err)
	assert.Equal(t, "alert-001", v.AlertID)
	assert.False(t, v.Acknowledged)
}

func TestNewAlertEventGeneratesID(t *testing.T) {
	in := validAlertEvent()
	in.AlertID = ""

	first, err := NewAlertEvent(in)
	require.NoError(t, err)
	assert.NotEmpty(t, first.AlertID)

	second, err := NewAlertEvent(in)
	require.NoError(t, err)
	assert.NotEqual(t, first.AlertID, second.AlertID)
}

func TestNewAlertEventRequiredFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*AlertEvent)
	}{
		{"sensorId", func(v *AlertEvent) { v.SensorID = "" }},
		{"equipmentId", func(v *AlertEvent) { v.EquipmentID = "" }},
		{"location", func(v *AlertEvent) { v.Location = "" }},
		{"timestamp", func(v *AlertEvent) { v.Timestamp = 0 }},
		{"message", func(v *AlertEvent) { v.Message = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			v := validAlertEvent()
			tc.mutate(&v)
			_, err := NewAlertEvent(v)
			assertValidationError(t, err, tc.field)
		})
	}
}

func TestNewAlertEventRejectsUnknownSeverity(t *testing.T) {
	v := validAlertEvent()
	v.Severity = "EXTREME"
	_, err := NewAlertEvent(v)
	assertValidationError(t, err, "severity")
}
