package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const metricsV1Definition = `{
	"type": "record",
	"name": "Metrics",
	"fields": [
		{"name": "equipmentId", "type": "string"},
		{"name": "averageTemperature", "type": "double"},
		{"name": "sensorCount", "type": "int"}
	]
}`

const metricsV2Definition = `{
	"type": "record",
	"name": "Metrics",
	"fields": [
		{"name": "equipmentId", "type": "string"},
		{"name": "averageTemperature", "type": "double"},
		{"name": "sensorCount", "type": "int"},
		{"name": "anomalyScore", "type": "double", "optional": true, "default": 0}
	]
}`

func TestDecodeNewReaderAppliesDefault(t *testing.T) {
	writer := MustParse(metricsV1Definition)
	reader := MustParse(metricsV2Definition)

	payload, err := Encode(writer, map[string]any{
		"equipmentId":        "boiler-a",
		"averageTemperature": 74.2,
		"sensorCount":        int32(4),
	})
	require.NoError(t, err)

	out, err := Decode(writer, reader, payload)
	require.NoError(t, err)
	assert.Equal(t, 0.0, out["anomalyScore"])
	assert.Equal(t, "boiler-a", out["equipmentId"])
}

func TestDecodeOldReaderIgnoresNewField(t *testing.T) {
	writer := MustParse(metricsV2Definition)
	reader := MustParse(metricsV1Definition)

	score := 0.87
	payload, err := Encode(writer, map[string]any{
		"equipmentId":        "boiler-a",
		"averageTemperature": 74.2,
		"sensorCount":        int32(4),
		"anomalyScore":       score,
	})
	require.NoError(t, err)

	out, err := Decode(writer, reader, payload)
	require.NoError(t, err)
	_, present := out["anomalyScore"]
	assert.False(t, present)
	assert.Len(t, out, 3)
}

func TestDecodeRequiredFieldWithoutDefaultFails(t *testing.T) {
	writer := MustParse(metricsV1Definition)
	reader := MustParse(`{
		"type": "record",
		"name": "Metrics",
		"fields": [
			{"name": "equipmentId", "type": "string"},
			{"name": "averageTemperature", "type": "double"},
			{"name": "sensorCount", "type": "int"},
			{"name": "location", "type": "string"}
		]
	}`)

	payload, err := Encode(writer, map[string]any{
		"equipmentId":        "boiler-a",
		"averageTemperature": 74.2,
		"sensorCount":        int32(4),
	})
	require.NoError(t, err)

	_, err = Decode(writer, reader, payload)
	require.Error(t, err)

	var merr *SchemaMismatchError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "location", merr.Field)
}

func TestDecodePromotesLongToDouble(t *testing.T) {
	writer := MustParse(`{
		"type": "record",
		"name": "W",
		"fields": [{"name": "threshold", "type": "long"}]
	}`)
	reader := MustParse(`{
		"type": "record",
		"name": "W",
		"fields": [{"name": "threshold", "type": "double"}]
	}`)

	payload, err := Encode(writer, map[string]any{"threshold": int64(90)})
	require.NoError(t, err)

	out, err := Decode(writer, reader, payload)
	require.NoError(t, err)
	assert.Equal(t, 90.0, out["threshold"])
}

func TestDecodeRejectsIntToDouble(t *testing.T) {
	// long is the only type with a widening path to double; an int writer
	// field read as double is a schema mismatch like any other type change.
	writer := MustParse(`{
		"type": "record",
		"name": "W",
		"fields": [{"name": "sensorCount", "type": "int"}]
	}`)
	reader := MustParse(`{
		"type": "record",
		"name": "W",
		"fields": [{"name": "sensorCount", "type": "double"}]
	}`)

	payload, err := Encode(writer, map[string]any{"sensorCount": int32(4)})
	require.NoError(t, err)

	_, err = Decode(writer, reader, payload)
	require.Error(t, err)

	var merr *SchemaMismatchError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "sensorCount", merr.Field)
	assert.Contains(t, merr.Reason, "int")
	assert.Contains(t, merr.Reason, "double")
}

func TestDecodeRejectsOtherTypeChanges(t *testing.T) {
	writer := MustParse(`{
		"type": "record",
		"name": "W",
		"fields": [{"name": "timestamp", "type": "double"}]
	}`)
	reader := MustParse(`{
		"type": "record",
		"name": "W",
		"fields": [{"name": "timestamp", "type": "long"}]
	}`)

	payload, err := Encode(writer, map[string]any{"timestamp": 1.5})
	require.NoError(t, err)

	_, err = Decode(writer, reader, payload)
	require.Error(t, err)

	var merr *SchemaMismatchError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "timestamp", merr.Field)
	assert.Contains(t, merr.Reason, "double")
	assert.Contains(t, merr.Reason, "long")
}

func TestDecodeRejectsUnknownWriterSymbol(t *testing.T) {
	writer := MustParse(`{
		"type": "record",
		"name": "W",
		"fields": [{"name": "severity", "type": "enum", "symbols": ["LOW", "MEDIUM", "HIGH", "EXTREME"]}]
	}`)
	reader := MustParse(`{
		"type": "record",
		"name": "W",
		"fields": [{"name": "severity", "type": "enum", "symbols": ["LOW", "MEDIUM", "HIGH"]}]
	}`)

	payload, err := Encode(writer, map[string]any{"severity": "EXTREME"})
	require.NoError(t, err)

	_, err = Decode(writer, reader, payload)
	require.Error(t, err)
	assert.True(t, IsSchemaMismatchError(err))
}

func TestDecodeWriterAbsentOptionalUsesReaderDefault(t *testing.T) {
	// Both schemas declare anomalyScore, the writer just did not set it.
	writer := MustParse(metricsV2Definition)
	reader := MustParse(metricsV2Definition)

	payload, err := Encode(writer, map[string]any{
		"equipmentId":        "boiler-a",
		"averageTemperature": 74.2,
		"sensorCount":        int32(4),
	})
	require.NoError(t, err)

	out, err := Decode(writer, reader, payload)
	require.NoError(t, err)
	assert.Equal(t, 0.0, out["anomalyScore"])
}
