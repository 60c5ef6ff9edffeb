package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/martourez21/railstream-schema-library/pkg/schema"
	"github.com/martourez21/railstream-schema-library/pkg/schema_registry"
)

// SerdeMetrics counts encode and decode operations per record type and
// outcome. A nil *SerdeMetrics is valid and records nothing, so callers can
// leave metrics unwired.
type SerdeMetrics struct {
	encodes *prometheus.CounterVec
	decodes *prometheus.CounterVec
}

// NewSerdeMetrics creates and registers the serde counters.
func NewSerdeMetrics(registerer prometheus.Registerer) *SerdeMetrics {
	m := &SerdeMetrics{
		encodes: createCounterVec(
			"railstream_encodes_total",
			"Record encode operations, by record type and outcome.",
			[]string{"record", "outcome"},
		),
		decodes: createCounterVec(
			"railstream_decodes_total",
			"Record decode operations, by record type and outcome.",
			[]string{"record", "outcome"},
		),
	}
	registerer.MustRegister(m.encodes, m.decodes)
	return m
}

// ObserveEncode records the outcome of one encode operation.
func (m *SerdeMetrics) ObserveEncode(record string, err error) {
	if m == nil {
		return
	}
	m.encodes.WithLabelValues(record, outcomeLabel(err)).Inc()
}

// ObserveDecode records the outcome of one decode operation.
func (m *SerdeMetrics) ObserveDecode(record string, err error) {
	if m == nil {
		return
	}
	m.decodes.WithLabelValues(record, outcomeLabel(err)).Inc()
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case schema.IsValidationError(err):
		return "validation_error"
	case schema.IsMalformedMessageError(err):
		return "malformed_message"
	case schema.IsSchemaMismatchError(err):
		return "schema_mismatch"
	case schema_registry.IsRegistryUnavailableError(err):
		return "registry_unavailable"
	default:
		return "error"
	}
}
