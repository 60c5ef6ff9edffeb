// Package logger provides structured logging for the railstream libraries.
//
// It wraps Uber's Zap logger behind a small map-based field API so callers do
// not deal in zap.Field values directly. Output is JSON on stderr, tagged with
// the process ID and a service name.
//
// Basic usage:
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "aggregation-worker",
//	})
//
//	log.Info("schema registered", nil, map[string]interface{}{
//	    "subject":   "sensor-raw-data-value",
//	    "schema_id": 7,
//	})
//
//	log.Error("failed to publish reading", err, map[string]interface{}{
//	    "destination": "sensor-raw-data",
//	})
//
// With fx, FXModule provides the *Logger and flushes buffered entries on
// shutdown; supply a logger.Config to the graph.
package logger
