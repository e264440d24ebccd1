package cmd

import (
	"log/slog"

	"github.com/dukex/planeditor/pkg/gateway"
	"go.opentelemetry.io/otel/trace"
)

// NewGateway creates the backend API client.
func NewGateway(baseURL string, tracer trace.Tracer, logger *slog.Logger) *gateway.Client {
	return gateway.NewClient(baseURL,
		gateway.WithTracer(tracer),
		gateway.WithLogger(logger.With("component", "gateway")),
	)
}
