// Copyright © 2018 The ELPS authors

// Package lisptest runs lisp expressions against a machine with the native
// library loaded and compares their results.
package lisptest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/luthersystems/minilisp/diagnostic"
	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/lisp/lisplib"
	"github.com/luthersystems/minilisp/parser"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MaxStackHeight bounds the frame stack of test machines so runaway
// recursion fails instead of exhausting memory.
const MaxStackHeight = 25000

// NewMachine returns a machine with the native library loaded whose debug
// output is written to stderr.
func NewMachine(stderr io.Writer, config ...lisp.Config) (*lisp.Machine, error) {
	base := []lisp.Config{
		lisp.WithMaximumStackHeight(MaxStackHeight),
		lisp.WithReader(parser.NewReader()),
		lisp.WithStderr(stderr),
		lisp.WithLibrary(lisplib.LoadLibrary),
	}
	return lisp.NewMachine(append(base, config...)...)
}

// Result renders the outcome of an evaluation the way TestSequence expects
// it.  Errors from the machine are rendered as "condition: message" without
// a source location.
func Result(v lisp.EnvItem, err error) string {
	var lerr *lisp.Error
	switch {
	case err == nil:
		return v.String()
	case errors.As(err, &lerr):
		return fmt.Sprintf("%s: %s", lerr.Condition, lerr.Message)
	default:
		return err.Error()
	}
}

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by one lisp.Machine.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the evaluated result
	Output string // debug output written to the machine's stderr
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests as a subtest with its own
// lisp.Machine.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			runSequence(t, test.TestSequence)
		})
	}
}

func runSequence(t *testing.T, seq TestSequence) {
	log := NewTestWriter(t)
	defer log.Flush()
	var output bytes.Buffer
	m, err := NewMachine(io.MultiWriter(log, &output),
		lisp.WithLogger(NewTestLogger(t, logrus.WarnLevel)))
	require.NoError(t, err)

	reader := parser.NewReader()
	for i, step := range seq {
		output.Reset()
		exprs, err := reader.Read("test", strings.NewReader(step.Expr))
		require.NoError(t, err, "expr %d: %s", i, step.Expr)
		require.Len(t, exprs, 1, "expr %d: %s", i, step.Expr)
		assert.Equal(t, step.Result, Result(m.Eval(exprs[0])), "expr %d result: %s", i, step.Expr)
		assert.Equal(t, step.Output, output.String(), "expr %d output: %s", i, step.Expr)
	}
}

// RunFile loads the lisp source file at path into a fresh machine and
// reports a test failure if any expression fails.
func RunFile(t *testing.T, path string) {
	log := NewTestWriter(t)
	defer log.Flush()
	m, err := NewMachine(log)
	require.NoError(t, err)
	if _, err := m.LoadFile(path); err != nil {
		LispError(t, err)
	}
}

// LispError reports err as a test failure.  A *lisp.Error is rendered with
// its source snippet and call path.
func LispError(t testing.TB, err error) {
	t.Helper()
	var buf bytes.Buffer
	r := &diagnostic.Renderer{Color: diagnostic.ColorNever}
	if rerr := r.Render(&buf, diagnostic.FromError(err)); rerr != nil {
		t.Errorf("rendering error: %v", rerr)
		t.Error(err)
		return
	}
	t.Error(buf.String())
}

// RunBenchmark measures the evaluation of the expressions in source.  Each
// iteration uses a fresh machine whose construction is not timed.
func RunBenchmark(b *testing.B, source string) {
	exprs, err := parser.NewReader().Read("benchmark", strings.NewReader(source))
	require.NoError(b, err)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		m, err := NewMachine(io.Discard)
		require.NoError(b, err)
		b.StartTimer()
		for j, expr := range exprs {
			if _, err := m.Eval(expr); err != nil {
				b.Fatalf("expr %d: %v", j, err)
			}
		}
	}
}
