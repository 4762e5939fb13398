package profiler

import (
	"regexp"

	"github.com/luthersystems/minilisp/lisp"
)

// SkipFilter returns true for functions that should not be traced.
type SkipFilter func(fn lisp.EnvItem) bool

func defaultSkipFilter(fn lisp.EnvItem) bool {
	return !fn.IsFunction()
}

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}

// WithSkipNames skips tracing functions with any of the given names.
func WithSkipNames(names ...string) Option {
	skip := make(map[string]bool, len(names))
	for _, name := range names {
		skip[name] = true
	}
	return WithSkipFilter(func(fn lisp.EnvItem) bool {
		return skip[fn.Name]
	})
}

// DocLookup returns the docstring of the function with the given name.
type DocLookup func(name string) string

// DocTrace is a magic string used to enable tracing in a profiler
// configured WithDocFilter. All functions with a docstring that contains
// this string will be traced.
const DocTrace = "@trace"

var docTraceRegExp = regexp.MustCompile(DocTrace)

// WithDocFilter filters to only include spans for functions whose docs
// denote tracing.
func WithDocFilter(docs DocLookup) Option {
	return WithSkipFilter(func(fn lisp.EnvItem) bool {
		doc := docs(fn.Name)
		if doc == "" {
			return true
		}
		return !docTraceRegExp.MatchString(doc)
	})
}
