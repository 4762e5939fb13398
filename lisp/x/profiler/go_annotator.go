package profiler

import (
	"context"
	"runtime/pprof"

	"github.com/luthersystems/minilisp/lisp"
)

// pprofAnnotator labels the running goroutine with the function being
// called so that pprof samples can be attributed to lisp functions.  It
// does not start pprof itself.
type pprofAnnotator struct {
	profiler
	calls calls
}

var _ lisp.Profiler = &pprofAnnotator{}

func NewPprofAnnotator(parentContext context.Context, opts ...Option) *pprofAnnotator {
	if parentContext == nil {
		parentContext = context.Background()
	}
	p := &pprofAnnotator{
		calls: newCalls(parentContext),
	}
	p.profiler.applyConfigs(opts...)
	return p
}

// Complete clears the goroutine labels and disables the annotator.
func (p *pprofAnnotator) Complete() error {
	p.calls.drain()
	p.enabled = false
	pprof.SetGoroutineLabels(context.Background())
	return nil
}

func (p *pprofAnnotator) Start(fn lisp.EnvItem) {
	if p.skipTrace(fn) {
		p.calls.push(false, nil, nil)
		return
	}
	prettyLabel, _ := p.prettyFunName(fn)
	ctx := pprof.WithLabels(p.calls.current, pprof.Labels("function", prettyLabel))
	pprof.SetGoroutineLabels(ctx)
	p.calls.push(true, ctx, nil)
}

func (p *pprofAnnotator) End(fn lisp.EnvItem) {
	p.calls.pop()
	pprof.SetGoroutineLabels(p.calls.current)
}
