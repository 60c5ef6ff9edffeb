package kafka

import (
	"context"

	"go.uber.org/fx"

	"github.com/martourez21/railstream-schema-library/pkg/logger"
)

// FXModule provides the Kafka client to an fx application. It expects a
// Config and a *logger.Logger in the graph.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    kafka.FXModule,
//	    fx.Provide(
//	        func() kafka.Config {
//	            return kafka.Config{
//	                Brokers:     []string{"localhost:9092"},
//	                Destination: contracts.DestinationSensorData,
//	            }
//	        },
//	    ),
//	)
var FXModule = fx.Module("kafka",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterLifecycle),
)

// Params groups the dependencies needed to create a Kafka client.
type Params struct {
	fx.In

	Config Config
	Logger *logger.Logger
}

// NewClientWithDI creates a Kafka client from injected dependencies.
func NewClientWithDI(params Params) (*Client, error) {
	return NewClient(params.Config, params.Logger)
}

// LifecycleParams groups the dependencies for lifecycle registration.
type LifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *Client
}

// RegisterLifecycle closes the client when the application stops, flushing
// any batched writes.
func RegisterLifecycle(params LifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return params.Client.Close()
		},
	})
}
