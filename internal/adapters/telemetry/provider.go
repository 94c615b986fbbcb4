package telemetry

import (
	"context"
	"fmt"

	"github.com/rsnakamura/theape/internal/core/ports"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// NewProvider creates a tracer provider that feeds finished spans to the
// given processors.
func NewProvider(processors ...sdktrace.SpanProcessor) *sdktrace.TracerProvider {
	opts := make([]sdktrace.TracerProviderOption, 0, len(processors)+1)
	opts = append(opts, sdktrace.WithSampler(sdktrace.AlwaysSample()))
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	return sdktrace.NewTracerProvider(opts...)
}

// Bridge implements sdktrace.SpanProcessor and writes span summaries to the logger.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}
	b.logger.Debug(fmt.Sprintf("span %s started (%s)", s.Name(), s.SpanContext().SpanID()))
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	duration := s.EndTime().Sub(s.StartTime())
	if s.Status().Code == codes.Error {
		b.logger.Debug(fmt.Sprintf("span %s failed after %v: %s", s.Name(), duration, s.Status().Description))
		return
	}
	b.logger.Debug(fmt.Sprintf("span %s ended after %v, %d events", s.Name(), duration, len(s.Events())))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
