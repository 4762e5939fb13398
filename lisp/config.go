// Copyright © 2018 The ELPS authors

package lisp

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

// Config is a function that configures a Machine.
type Config func(m *Machine) error

// Loader installs bindings into a Machine.  Native libraries are Loaders.
type Loader func(m *Machine) error

// WithLibrary returns a Config that runs fn against the machine once all
// other Configs have been applied.  Libraries load in the order given.
func WithLibrary(fn Loader) Config {
	return func(m *Machine) error {
		m.loaders = append(m.loaders, fn)
		return nil
	}
}

// WithLogger returns a Config that makes the machine write structured logs
// to l.  By default log output is discarded.
func WithLogger(l *logrus.Logger) Config {
	return func(m *Machine) error {
		m.log = l.WithField("component", "machine")
		return nil
	}
}

// WithMaximumStackHeight returns a Config that will prevent the machine's
// stack from growing beyond n frames.  A value of 0 means unlimited (the
// default).
func WithMaximumStackHeight(n int) Config {
	return func(m *Machine) error {
		m.maxHeight = n
		return nil
	}
}

// WithInstructionBudget returns a Config that limits the number of
// instructions a single top-level evaluation may execute.  A value of 0
// means unlimited (the default).
func WithInstructionBudget(n int) Config {
	return func(m *Machine) error {
		m.budget = n
		return nil
	}
}

// WithContext returns a Config that sets the context checked before each
// instruction.  Evaluation stops with a context-cancelled error once ctx is
// done.
func WithContext(ctx context.Context) Config {
	return func(m *Machine) error {
		m.ctx = ctx
		return nil
	}
}

// WithProfiler returns a Config that reports function calls to p while p is
// enabled.
func WithProfiler(p Profiler) Config {
	return func(m *Machine) error {
		m.profiler = p
		return nil
	}
}

// WithReader returns a Config that makes the machine use r to parse source
// streams.  There is no default Reader.
func WithReader(r Reader) Config {
	return func(m *Machine) error {
		m.reader = r
		return nil
	}
}

// WithStderr returns a Config that makes the machine write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(m *Machine) error {
		m.stderr = w
		return nil
	}
}
