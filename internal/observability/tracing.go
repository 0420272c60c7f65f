package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/iamwavecut/wordguard"

// TracerProvider installs an SDK tracer provider as the global one and shuts
// it down on Stop.
type TracerProvider struct {
	tp *sdktrace.TracerProvider
}

func NewTracerProvider() *TracerProvider {
	return &TracerProvider{}
}

func (p *TracerProvider) Start(context.Context) error {
	p.tp = sdktrace.NewTracerProvider()
	otel.SetTracerProvider(p.tp)
	return nil
}

func (p *TracerProvider) Stop(ctx context.Context) error {
	if p.tp == nil {
		return nil
	}
	return p.tp.Shutdown(ctx)
}

func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
