package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys recorded on call spans and metrics.
const (
	AttrMethod   = "restbind.method"
	AttrVerb     = "http.request.method"
	AttrTemplate = "url.template"
	AttrAsync    = "restbind.async"
	AttrOutcome  = "restbind.outcome"
	AttrStatus   = "http.response.status_code"
)

// Call outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Instruments records executor calls. It is safe for concurrent use.
type Instruments struct {
	tracer   trace.Tracer
	calls    metric.Int64Counter
	failures metric.Int64Counter
	duration metric.Float64Histogram
}

// NewInstruments creates the call instruments. Nil providers fall back to
// the otel globals.
func NewInstruments(tp trace.TracerProvider, mp metric.MeterProvider) (*Instruments, error) {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(InstrumentationName)

	calls, err := meter.Int64Counter("restbind.calls",
		metric.WithDescription("Total number of bound method calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating restbind.calls counter: %w", err)
	}

	failures, err := meter.Int64Counter("restbind.failures",
		metric.WithDescription("Bound method calls that failed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating restbind.failures counter: %w", err)
	}

	duration, err := meter.Float64Histogram("restbind.call.duration",
		metric.WithDescription("Duration of bound method calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating restbind.call.duration histogram: %w", err)
	}

	return &Instruments{
		tracer:   tp.Tracer(InstrumentationName),
		calls:    calls,
		failures: failures,
		duration: duration,
	}, nil
}

// Call is one in-flight recorded call.
type Call struct {
	inst  *Instruments
	ctx   context.Context
	span  trace.Span
	start time.Time
	attrs []attribute.KeyValue
}

// StartCall opens the span of one call. The returned context carries it.
func (i *Instruments) StartCall(ctx context.Context, method, verb, template string, async bool) (context.Context, *Call) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrVerb, verb),
		attribute.String(AttrTemplate, template),
		attribute.Bool(AttrAsync, async),
	}
	ctx, span := i.tracer.Start(ctx, "restbind.call "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	return ctx, &Call{inst: i, ctx: ctx, span: span, start: time.Now(), attrs: attrs}
}

// End closes the call. status is the HTTP status, or 0 when there was none.
// outcome is one of the Outcome constants.
func (c *Call) End(outcome string, status int, err error) {
	if status > 0 {
		c.span.SetAttributes(attribute.Int(AttrStatus, status))
	}
	if err != nil {
		c.span.RecordError(err)
		c.span.SetStatus(codes.Error, err.Error())
	}
	c.span.End()

	attrs := metric.WithAttributes(append(c.attrs, attribute.String(AttrOutcome, outcome))...)
	c.inst.calls.Add(c.ctx, 1, attrs)
	if outcome == OutcomeError {
		c.inst.failures.Add(c.ctx, 1, attrs)
	}
	c.inst.duration.Record(c.ctx, time.Since(c.start).Seconds(), attrs)
}
