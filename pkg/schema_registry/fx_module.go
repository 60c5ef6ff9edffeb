package schema_registry

import (
	"context"
	"log"

	"go.uber.org/fx"
)

// FXModule provides the schema registry client to the Fx dependency injection
// framework.
//
// Usage:
//
//	app := fx.New(
//	    schema_registry.FXModule,
//	    fx.Provide(
//	        func() schema_registry.Config {
//	            return schema_registry.Config{
//	                URL: os.Getenv("SCHEMA_REGISTRY_URL"),
//	            }
//	        },
//	    ),
//	)
var FXModule = fx.Module("schema_registry",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterLifecycle),
)

// Params groups the dependencies needed to create a schema registry client.
type Params struct {
	fx.In

	Config Config
}

// NewClientWithDI creates a schema registry client from injected dependencies.
func NewClientWithDI(params Params) (Registry, error) {
	return NewClient(params.Config)
}

// LifecycleParams groups the dependencies for lifecycle registration.
type LifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Registry  Registry
}

// RegisterLifecycle hooks the client into the fx lifecycle. The HTTP client is
// stateless, so there is nothing to tear down; the hooks exist so future
// cleanup has a place to live and startup is visible in logs.
func RegisterLifecycle(params LifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("INFO: schema registry client initialized")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("INFO: schema registry client shutdown")
			return nil
		},
	})
}
