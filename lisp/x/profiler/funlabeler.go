package profiler

import (
	"regexp"
	"strings"

	"github.com/luthersystems/minilisp/lisp"
)

// FunLabeler returns the span label for a call to fn, or "" to label the
// span with the name of fn.
type FunLabeler func(fn lisp.EnvItem) string

// WithFunLabeler sets the labeler for tracing spans.
func WithFunLabeler(funLabeler FunLabeler) Option {
	return func(p *profiler) {
		p.funLabeler = funLabeler
	}
}

// WithDocLabeler labels spans with the @trace{LABEL} annotation found in
// the docstring of the called function.
func WithDocLabeler(docs DocLookup) Option {
	return WithFunLabeler(func(fn lisp.EnvItem) string {
		return traceAnnotation(docs(fn.Name))
	})
}

// DocLabel matches a trace label annotation in a docstring.
const DocLabel = `@trace\s*{([^}]+)}`

var docLabelRegExp = regexp.MustCompile(DocLabel)

// traceAnnotation returns the label of the first trace annotation in doc.
func traceAnnotation(doc string) string {
	m := docLabelRegExp.FindStringSubmatch(doc)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// normalizeLabel joins the words of label with underscores and cuts it at
// the first character that is not printable ASCII.
func normalizeLabel(label string) string {
	words := strings.FieldsFunc(label, func(r rune) bool {
		return r == '_' || r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
	})
	label = strings.Join(words, "_")
	if i := strings.IndexFunc(label, func(r rune) bool { return r < '!' || r > '~' }); i >= 0 {
		label = label[:i]
	}
	return label
}
