// Package profiler reports the function calls made by a lisp.Machine to
// tracing systems.
package profiler

import (
	"context"
	"fmt"

	"github.com/golang-collections/collections/stack"
	"github.com/luthersystems/minilisp/lisp"
)

// profiler holds the configuration shared by the annotators
type profiler struct {
	enabled    bool
	skipFilter SkipFilter
	funLabeler FunLabeler
}

type Option func(*profiler)

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

// prettyFunName returns the label for fn's span along with fn's name.  When
// no labeler is configured, or it returns "", the label is the name.
func (p *profiler) prettyFunName(fn lisp.EnvItem) (string, string) {
	name := fn.Name
	if name == "" {
		name = "<anonymous>"
	}
	label := name
	if p.funLabeler != nil {
		if l := normalizeLabel(p.funLabeler(fn)); l != "" {
			label = l
		}
	}
	return label, name
}

// skipTrace is a helper function to decide whether to skip tracing.
func (p *profiler) skipTrace(fn lisp.EnvItem) bool {
	return !p.enabled || defaultSkipFilter(fn) || p.skipFilter != nil && p.skipFilter(fn)
}

// frame is pushed for every call, traced or not, so that End always pops
// the entry pushed by the matching Start.
type frame struct {
	ctx   context.Context
	end   func()
	trace bool
}

// calls tracks the context of each active call.
type calls struct {
	current context.Context
	frames  *stack.Stack
}

func newCalls(ctx context.Context) calls {
	return calls{current: ctx, frames: stack.New()}
}

func (c *calls) push(trace bool, ctx context.Context, end func()) {
	c.frames.Push(&frame{ctx: c.current, end: end, trace: trace})
	if trace {
		c.current = ctx
	}
}

func (c *calls) pop() {
	f, ok := c.frames.Pop().(*frame)
	if !ok {
		return
	}
	if f.trace && f.end != nil {
		f.end()
	}
	c.current = f.ctx
}

// drain ends every span still open, innermost first.
func (c *calls) drain() {
	for c.frames.Len() > 0 {
		c.pop()
	}
}
