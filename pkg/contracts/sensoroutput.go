package contracts

import (
	"fmt"

	"github.com/martourez21/railstream-schema-library/pkg/schema"
)

// SensorOutput is a windowed aggregate over the readings of one piece of
// equipment, published to "aggregated-sensor-metrics".
type SensorOutput struct {
	EquipmentID string
	Unit        string
	Location    string

	// WindowStart and WindowEnd bound the aggregation window in Unix
	// milliseconds; WindowStart never exceeds WindowEnd.
	WindowStart int64
	WindowEnd   int64

	AverageTemperature float64
	MaxTemperature     float64
	MinTemperature     float64

	// SensorCount is the number of sensors contributing to the window.
	SensorCount int32

	// ProcessingTime is when the aggregate was computed, in Unix milliseconds.
	ProcessingTime int64

	// AnomalyScore is nil when anomaly detection did not run for the window.
	// Added in the second schema revision; messages from older producers
	// decode with a score of zero.
	AnomalyScore *float64
}

// NewSensorOutput validates an aggregate and returns it as an immutable value.
func NewSensorOutput(v SensorOutput) (SensorOutput, error) {
	if err := v.Validate(); err != nil {
		return SensorOutput{}, err
	}
	return v, nil
}

// Validate checks the aggregate against the SensorOutput contract, including
// the window ordering and temperature invariants.
func (v SensorOutput) Validate() error {
	switch {
	case v.EquipmentID == "":
		return requiredError("SensorOutput", "equipmentId")
	case v.Unit == "":
		return requiredError("SensorOutput", "unit")
	case v.Location == "":
		return requiredError("SensorOutput", "location")
	}
	if v.WindowStart > v.WindowEnd {
		return &schema.ValidationError{
			Record: "SensorOutput",
			Field:  "windowStart",
			Reason: fmt.Sprintf("window start %d is after window end %d", v.WindowStart, v.WindowEnd),
		}
	}
	if v.SensorCount < 0 {
		return &schema.ValidationError{
			Record: "SensorOutput",
			Field:  "sensorCount",
			Reason: fmt.Sprintf("must not be negative, got %d", v.SensorCount),
		}
	}
	// With no contributing sensors the temperature fields are meaningless,
	// so the ordering invariant only applies to non-empty windows.
	if v.SensorCount > 0 {
		if v.MinTemperature > v.AverageTemperature || v.AverageTemperature > v.MaxTemperature {
			return &schema.ValidationError{
				Record: "SensorOutput",
				Field:  "averageTemperature",
				Reason: fmt.Sprintf("min/average/max must be ordered, got min=%v average=%v max=%v",
					v.MinTemperature, v.AverageTemperature, v.MaxTemperature),
			}
		}
	}
	return nil
}

func (v SensorOutput) fieldMap() map[string]any {
	fields := map[string]any{
		"equipmentId":        v.EquipmentID,
		"unit":               v.Unit,
		"location":           v.Location,
		"windowStart":        v.WindowStart,
		"windowEnd":          v.WindowEnd,
		"averageTemperature": v.AverageTemperature,
		"maxTemperature":     v.MaxTemperature,
		"minTemperature":     v.MinTemperature,
		"sensorCount":        v.SensorCount,
		"processingTime":     v.ProcessingTime,
	}
	if v.AnomalyScore != nil {
		fields["anomalyScore"] = *v.AnomalyScore
	}
	return fields
}

func sensorOutputFromFields(fields map[string]any) (SensorOutput, error) {
	var v SensorOutput
	var err error
	if v.EquipmentID, err = stringField(fields, "SensorOutput", "equipmentId"); err != nil {
		return SensorOutput{}, err
	}
	if v.Unit, err = stringField(fields, "SensorOutput", "unit"); err != nil {
		return SensorOutput{}, err
	}
	if v.Location, err = stringField(fields, "SensorOutput", "location"); err != nil {
		return SensorOutput{}, err
	}
	if v.WindowStart, err = longField(fields, "SensorOutput", "windowStart"); err != nil {
		return SensorOutput{}, err
	}
	if v.WindowEnd, err = longField(fields, "SensorOutput", "windowEnd"); err != nil {
		return SensorOutput{}, err
	}
	if v.AverageTemperature, err = doubleField(fields, "SensorOutput", "averageTemperature"); err != nil {
		return SensorOutput{}, err
	}
	if v.MaxTemperature, err = doubleField(fields, "SensorOutput", "maxTemperature"); err != nil {
		return SensorOutput{}, err
	}
	if v.MinTemperature, err = doubleField(fields, "SensorOutput", "minTemperature"); err != nil {
		return SensorOutput{}, err
	}
	if v.SensorCount, err = intField(fields, "SensorOutput", "sensorCount"); err != nil {
		return SensorOutput{}, err
	}
	if v.ProcessingTime, err = longField(fields, "SensorOutput", "processingTime"); err != nil {
		return SensorOutput{}, err
	}
	if raw, ok := fields["anomalyScore"]; ok {
		score, ok := raw.(float64)
		if !ok {
			return SensorOutput{}, decodedTypeError("SensorOutput", "anomalyScore", "float64", raw)
		}
		v.AnomalyScore = &score
	}
	return v, nil
}
