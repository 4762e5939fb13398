package profiler

import (
	"context"
	"errors"

	"github.com/luthersystems/minilisp/lisp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// ContextOpenTelemetryTracerKey looks up a parent tracer name from a context key.
	ContextOpenTelemetryTracerKey = "otelParentTracer"

	// AttributeArity records the number of parameters of a traced function,
	// or -1 for a variadic function.
	AttributeArity = attribute.Key("minilisp.arity")
)

var _ lisp.Profiler = &otelAnnotator{}

type otelAnnotator struct {
	profiler
	calls calls
}

// NewOpenTelemetryAnnotator returns a lisp.Profiler that starts one span
// per function call as a child of the span in parentContext.
func NewOpenTelemetryAnnotator(parentContext context.Context, opts ...Option) *otelAnnotator {
	p := &otelAnnotator{
		calls: newCalls(parentContext),
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *otelAnnotator) Enable() error {
	if p.calls.current == nil {
		return errors.New("we can only append spans to a context that is linked to opentelemetry")
	}
	return p.profiler.Enable()
}

// Complete ends any spans left open and disables the annotator.
func (p *otelAnnotator) Complete() error {
	p.calls.drain()
	p.enabled = false
	return nil
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(ContextOpenTelemetryTracerKey).(string)
	if !ok {
		tracerName = "minilisp"
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

func (p *otelAnnotator) Start(fn lisp.EnvItem) {
	if p.skipTrace(fn) {
		p.calls.push(false, nil, nil)
		return
	}
	prettyLabel, funName := p.prettyFunName(fn)
	ctx, span := contextTracer(p.calls.current).Start(p.calls.current, prettyLabel)
	span.SetAttributes(
		semconv.CodeFunction(funName),
		AttributeArity.Int(fn.Params.Arity()),
	)
	p.calls.push(true, ctx, func() { span.End() })
}

func (p *otelAnnotator) End(fn lisp.EnvItem) {
	p.calls.pop()
}
