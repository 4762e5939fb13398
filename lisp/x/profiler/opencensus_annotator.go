package profiler

import (
	"context"
	"errors"

	"github.com/luthersystems/minilisp/lisp"
	"go.opencensus.io/trace"
)

var _ lisp.Profiler = &ocAnnotator{}

type ocAnnotator struct {
	profiler
	calls calls
}

// NewOpenCensusAnnotator returns a lisp.Profiler that starts one span per
// function call as a child of the span in parentContext.
func NewOpenCensusAnnotator(parentContext context.Context, opts ...Option) *ocAnnotator {
	p := &ocAnnotator{
		calls: newCalls(parentContext),
	}
	p.profiler.applyConfigs(opts...)
	return p
}

// EnableWithContext enables the annotator with ctx as the parent of the
// spans it creates.
func (p *ocAnnotator) EnableWithContext(ctx context.Context) error {
	if ctx == nil {
		return errors.New("set a context to use this function")
	}
	p.calls = newCalls(ctx)
	return p.profiler.Enable()
}

func (p *ocAnnotator) Enable() error {
	if p.calls.current == nil {
		return errors.New("we can only append spans to a context that is linked to opencensus")
	}
	return p.profiler.Enable()
}

// Complete ends any spans left open and disables the annotator.
func (p *ocAnnotator) Complete() error {
	p.calls.drain()
	p.enabled = false
	return nil
}

func (p *ocAnnotator) Start(fn lisp.EnvItem) {
	if p.skipTrace(fn) {
		p.calls.push(false, nil, nil)
		return
	}
	prettyLabel, funName := p.prettyFunName(fn)
	ctx, span := trace.StartSpan(p.calls.current, prettyLabel)
	p.calls.push(true, ctx, func() {
		span.Annotate([]trace.Attribute{
			trace.StringAttribute("function", funName),
			trace.Int64Attribute("arity", int64(fn.Params.Arity())),
		}, "call")
		span.End()
	})
}

func (p *ocAnnotator) End(fn lisp.EnvItem) {
	p.calls.pop()
}
