// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"errors"

	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/parser/token"
)

// CondParseError is the condition reported for reader errors.
const CondParseError = "parse-error"

// FromError converts an error returned by a lisp.Machine or a reader to a
// Diagnostic.  Machine errors are annotated with their source location and
// call path.  Reader errors are annotated with the offending location.
func FromError(err error) Diagnostic {
	var lerr *lisp.Error
	if errors.As(err, &lerr) {
		return fromLispError(lerr)
	}
	var locErr *token.LocationError
	if errors.As(err, &locErr) {
		d := Diagnostic{
			Severity:  SeverityError,
			Condition: CondParseError,
			Message:   locErr.Err.Error(),
		}
		if span, ok := spanAt(locErr.Source); ok {
			d.Spans = append(d.Spans, span)
		}
		return d
	}
	return Diagnostic{Severity: SeverityError, Message: err.Error()}
}

func fromLispError(lerr *lisp.Error) Diagnostic {
	d := Diagnostic{
		Severity:  SeverityError,
		Condition: lerr.Condition,
		Message:   lerr.Message,
	}
	if span, ok := spanAt(lerr.Source); ok {
		span.Label = lerr.Condition
		d.Spans = append(d.Spans, span)
	}
	for i := len(lerr.Stack) - 1; i >= 0; i-- {
		frame := Frame{Name: lerr.Stack[i].Name}
		if lerr.Stack[i].Source != nil {
			frame.Loc = lerr.Stack[i].Source.String()
		}
		d.CallPath = append(d.CallPath, frame)
	}
	return d
}

// spanAt returns the span of loc, preferring its physical path so the
// renderer can read the source.
func spanAt(loc *token.Location) (Span, bool) {
	if loc == nil || loc.Pos < 0 {
		return Span{}, false
	}
	span := Span{
		File: loc.File,
		Line: loc.Line,
		Col:  loc.Col,
	}
	if loc.Path != "" {
		span.File = loc.Path
	}
	return span, true
}
