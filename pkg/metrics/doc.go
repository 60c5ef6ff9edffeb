// Package metrics exposes Prometheus instrumentation for the railstream
// serde path.
//
// NewMetrics builds a registry (optionally with the default Go runtime
// collectors) and an HTTP server for the /metrics endpoint. SerdeMetrics adds
// counters for encode and decode operations, labelled by record type and
// outcome, so schema problems surface on dashboards before they surface in
// incident channels:
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "sensor-producer"})
//	serdeMetrics := metrics.NewSerdeMetrics(m.Registerer())
//
//	serde := contracts.NewSensorDataSerde(registry).WithMetrics(serdeMetrics)
//
// RegistryMetrics does the same for schema registry traffic; it plugs into the
// registry client as an observer:
//
//	client, _ := schema_registry.NewClient(cfg)
//	client.WithObserver(metrics.NewRegistryMetrics(m.Registerer()))
//
//	go func() {
//	    if err := m.Start(); err != nil {
//	        log.Fatal("metrics server failed", err)
//	    }
//	}()
//
// A nil *SerdeMetrics is valid and records nothing, so library code never has
// to check whether metrics were wired.
package metrics
