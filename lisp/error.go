// Copyright © 2018 The ELPS authors

package lisp

import (
	"bufio"
	"fmt"
	"io"

	"github.com/luthersystems/minilisp/parser/token"
)

// Error conditions reported by the Machine.
const (
	CondUnboundSymbol     = "unbound-symbol"
	CondNotAFunction      = "not-a-function"
	CondArityMismatch     = "arity-mismatch"
	CondMalformedForm     = "malformed-form"
	CondNotEnoughElements = "not-enough-elements"
	CondConditionType     = "condition-type"
	CondNativeError       = "native-error"
	CondStackOverflow     = "stack-overflow"
	CondInstructionBudget = "instruction-budget"
	CondContextCancelled  = "context-cancelled"
	CondInternal          = "internal-error"
)

// Error is an evaluation failure.  Condition classifies the failure
// programmatically while Message describes it for a person.  The Machine
// fills in Source and Stack as the error leaves the evaluation loop.
type Error struct {
	Condition string
	Message   string
	Source    *token.Location
	Stack     CallStack
	// Err is the underlying cause of a native-error, if any.
	Err error
}

// ErrorConditionf returns a new Error with the given condition and a
// formatted message.
func ErrorConditionf(condition string, format string, v ...interface{}) *Error {
	return &Error{
		Condition: condition,
		Message:   fmt.Sprintf(format, v...),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Source != nil {
		return fmt.Sprintf("%s: %s: %s", e.Source, e.Condition, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Condition, e.Message)
}

// Unwrap returns the cause of a native-error.
func (e *Error) Unwrap() error {
	return e.Err
}

// FunName returns the name of the innermost function on the stack when the
// error occurred.
func (e *Error) FunName() string {
	top := e.Stack.Top()
	if top == nil {
		return ""
	}
	return top.Name
}

// WriteTrace writes the error and a stack trace to w
func (e *Error) WriteTrace(w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	var n int
	var err error
	wrote := func(_n int, _err error) bool {
		n += _n
		err = _err
		return err == nil
	}
	if !wrote(bw.WriteString(e.Error())) {
		return n, err
	}
	if !wrote(bw.WriteString("\n")) {
		return n, err
	}
	if len(e.Stack) > 0 {
		if !wrote(e.Stack.DebugPrint(bw)) {
			return n, err
		}
	}
	return n, bw.Flush()
}

// invariantError is raised with panic when a structural invariant of the
// evaluator is broken.  Machine.Eval recovers it as an internal-error.
type invariantError struct {
	msg string
}

func (e *invariantError) Error() string {
	return e.msg
}

func invariantf(format string, v ...interface{}) *invariantError {
	return &invariantError{msg: fmt.Sprintf(format, v...)}
}
