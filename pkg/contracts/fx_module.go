package contracts

import (
	"go.uber.org/fx"
)

// FXModule provides the three typed serdes to an fx application. It expects a
// schema_registry.Registry in the graph, typically from
// schema_registry.FXModule.
//
// Usage:
//
//	app := fx.New(
//	    schema_registry.FXModule,
//	    contracts.FXModule,
//	    fx.Provide(
//	        func() schema_registry.Config {
//	            return schema_registry.Config{URL: os.Getenv("SCHEMA_REGISTRY_URL")}
//	        },
//	    ),
//	    fx.Invoke(func(serde *contracts.SensorDataSerde) {
//	        // producer/consumer code
//	    }),
//	)
var FXModule = fx.Module("contracts",
	fx.Provide(
		NewSensorDataSerde,
		NewSensorOutputSerde,
		NewAlertEventSerde,
	),
)
