package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the Prometheus registry and the HTTP server exposing it.
type Metrics struct {
	Server      *http.Server
	Registry    *prometheus.Registry
	serviceName string
}

// NewMetrics builds a registry labelled with the service name and an HTTP
// server serving it on the configured address. The server is not started;
// call Start (or wire the fx module) to begin listening.
func NewMetrics(cfg Config) *Metrics {
	if cfg.Address == "" {
		cfg.Address = DefaultMetricsAddress
	}

	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	server := &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}

	return &Metrics{
		Server:      server,
		Registry:    registry,
		serviceName: cfg.ServiceName,
	}
}

// Registerer returns the registerer new collectors should use; it carries the
// service label.
func (m *Metrics) Registerer() prometheus.Registerer {
	return prometheus.WrapRegistererWith(prometheus.Labels{"service": m.serviceName}, m.Registry)
}

// Start begins serving the metrics endpoint. It blocks until the server stops.
func (m *Metrics) Start() error {
	err := m.Server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the metrics server.
func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.Server.Shutdown(ctx)
}
