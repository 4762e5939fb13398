// Copyright © 2024 The ELPS authors

// Package diagnostic renders evaluation and parse errors as annotated
// source snippets for the minilisp CLI and REPL.
//
// A rendered diagnostic looks like
//
//	error[native-error]: car: argument is not a non-empty list: 5
//	  --> test.lisp:1:20
//	   |
//	 1 |  (def f (lambda (x) (car x)))
//	   |                     ^^^^^^^ native-error
//	   |
//	   = in car at test.lisp:1:20
//	   = in f at test.lisp:2:1
package diagnostic

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies the form a diagnostic points at.
type Span struct {
	File   string // path for reading source; display name if unreadable
	Line   int    // 1-based line number
	Col    int    // 1-based start column
	EndCol int    // 1-based end column (0 = the whole form at Col)
	Label  string // text shown under the underline
}

// Frame is one function on the call path of a failed evaluation.
type Frame struct {
	Name string
	Loc  string // empty when the call has no source location
}

func (f Frame) String() string {
	if f.Loc == "" {
		return "in " + f.Name
	}
	return "in " + f.Name + " at " + f.Loc
}

// Diagnostic represents a single error or note with optional source
// annotations, the call path innermost first, and trailing notes.
type Diagnostic struct {
	Severity Severity
	// Condition is the machine condition, rendered as error[condition].
	Condition string
	Message   string
	Spans     []Span
	CallPath  []Frame
	Notes     []string
}
