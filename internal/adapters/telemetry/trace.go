// Package telemetry exports executor events as OpenTelemetry spans and
// Prometheus metrics.
package telemetry

import (
	"context"
	"sync"

	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName is the tracer name used for executor spans.
const InstrumentationName = "github.com/rsnakamura/theape"

var _ ports.Reporter = (*TraceReporter)(nil)

// TraceReporter opens one span per executor invocation. Nested executors
// produce child spans because invocations are strictly nested.
type TraceReporter struct {
	tracer trace.Tracer
	root   context.Context

	mu    sync.Mutex
	stack []openSpan
}

type openSpan struct {
	identifier string
	ctx        context.Context
	span       trace.Span
}

// NewTraceReporter creates a TraceReporter. Spans without an open parent are
// children of the span in ctx, if any.
func NewTraceReporter(ctx context.Context, tracer trace.Tracer) *TraceReporter {
	return &TraceReporter{tracer: tracer, root: ctx}
}

// Report translates the event into span operations.
//
//nolint:gocritic // ports.Reporter passes events by value
func (r *TraceReporter) Report(e domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e.Kind {
	case domain.EventStarted:
		// A second start for an open executor means its earlier invocation aborted.
		if i := r.find(e.Identifier); i >= 0 {
			r.abort(i, e)
		}
		parent := r.root
		if n := len(r.stack); n > 0 {
			parent = r.stack[n-1].ctx
		}
		ctx, span := r.tracer.Start(parent, e.Identifier,
			trace.WithTimestamp(e.Time),
			trace.WithAttributes(
				attribute.String("ape.identifier", e.Identifier),
				attribute.String("ape.category", e.Category),
			),
		)
		r.stack = append(r.stack, openSpan{identifier: e.Identifier, ctx: ctx, span: span})

	case domain.EventProgress:
		if span := r.settle(e); span != nil {
			span.AddEvent("invoke", trace.WithTimestamp(e.Time), trace.WithAttributes(
				attribute.String("ape.unit", e.Unit),
				attribute.Int("ape.index", e.Index),
				attribute.Int("ape.total", e.Total),
			))
		}

	case domain.EventFailure:
		if span := r.settle(e); span != nil && e.Err != nil {
			span.RecordError(e.Err, trace.WithTimestamp(e.Time), trace.WithAttributes(
				attribute.String("ape.unit", e.Unit),
				attribute.Int("ape.index", e.Index),
			))
		}

	case domain.EventNonConformant:
		if span := r.settle(e); span != nil {
			span.AddEvent("nonconformant", trace.WithTimestamp(e.Time), trace.WithAttributes(
				attribute.String("ape.unit", e.Unit),
				attribute.String("ape.capability", e.Capability),
			))
		}

	case domain.EventEnded:
		r.end(e)
	}
}

// find returns the stack index of the innermost span for identifier, or -1.
func (r *TraceReporter) find(identifier string) int {
	for i := len(r.stack) - 1; i >= 0; i-- {
		if r.stack[i].identifier == identifier {
			return i
		}
	}
	return -1
}

// settle returns the span of the executor that emitted e. Spans opened above
// it belong to invocations that never ended and are closed as aborted. Events
// from an executor without an open span go to the innermost span.
//
//nolint:gocritic // event passed through from Report
func (r *TraceReporter) settle(e domain.Event) trace.Span {
	i := r.find(e.Identifier)
	if i < 0 {
		if n := len(r.stack); n > 0 {
			return r.stack[n-1].span
		}
		return nil
	}
	r.abort(i+1, e)
	return r.stack[i].span
}

// abort closes the spans from index i upward as aborted.
//
//nolint:gocritic // event passed through from Report
func (r *TraceReporter) abort(i int, e domain.Event) {
	for j := len(r.stack) - 1; j >= i; j-- {
		r.stack[j].span.SetStatus(codes.Error, "aborted")
		r.stack[j].span.End(trace.WithTimestamp(e.Time))
	}
	r.stack = r.stack[:i]
}

// end closes the innermost span for the identifier, aborting the spans
// opened after it.
//
//nolint:gocritic // event passed through from Report
func (r *TraceReporter) end(e domain.Event) {
	i := r.find(e.Identifier)
	if i < 0 {
		return
	}
	r.abort(i+1, e)
	r.stack[i].span.SetStatus(codes.Ok, "")
	r.stack[i].span.End(trace.WithTimestamp(e.Time))
	r.stack = r.stack[:i]
}

// Finish ends every span that is still open. A non-nil err is recorded on
// each of them. It is called once the run returns.
func (r *TraceReporter) Finish(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.stack) - 1; i >= 0; i-- {
		span := r.stack[i].span
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Error, "aborted")
		}
		span.End()
	}
	r.stack = nil
}
