// Copyright © 2018 The ELPS authors

package libcontrol_test

import (
	"io"
	"testing"

	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/lisp/lisplib/libcontrol"
	"github.com/luthersystems/minilisp/lisptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackage(t *testing.T) {
	tests := lisptest.TestSuite{
		{"funcall", lisptest.TestSequence{
			{"(funcall list)", "()", ""},
			{"(funcall funcall + 1 2)", "3", ""},
			{"(funcall)", "native-error: funcall: no function given", ""},
			{"(funcall car '(1) '(2))", "arity-mismatch: car: wrong number of arguments: expected 1, found 2", ""},
		}},
		{"apply", lisptest.TestSequence{
			{"(apply cons '(1 2))", "(1 . 2)", ""},
			{"(apply (lambda args args) '(1 2 3))", "(1 2 3)", ""},
			{"(apply + (cons 1 2))", "native-error: apply: argument list is not a proper list: (1 . 2)", ""},
			{"(apply 1 '())", "native-error: apply: argument fn is not a function: 1", ""},
		}},
		{"map", lisptest.TestSequence{
			{"(map car '())", "()", ""},
			{"(map (lambda (x) (map (lambda (y) (* x y)) '(1 2))) '(1 2))", "((1 2) (2 4))", ""},
			{"(map (lambda (x) car) '(1))", "native-error: map: cannot store #<function car> in a list", ""},
			{"(map + 1)", "native-error: map: argument list is not a proper list: 1", ""},
		}},
		{"print", lisptest.TestSequence{
			{`(print 1 "two" 'three)`, "three", "1 \"two\" three\n"},
			{`(print (print 1))`, "1", "1\n1\n"},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}

func TestMapDeepRecursion(t *testing.T) {
	m, err := lisptest.NewMachine(io.Discard)
	require.NoError(t, err)
	_, err = m.LoadString("test", `
	(def nest (lambda (n) (if (= n 0) 0 (car (map (lambda (x) (+ 1 (nest (- n 1)))) '(1))))))
	`)
	require.NoError(t, err)
	v, err := m.LoadString("test", `(nest 200)`)
	require.NoError(t, err)
	assert.Equal(t, "200", v.String())
	assert.Equal(t, 1, m.Environment().Depth())

	_, err = m.LoadString("test", `(nest 200000)`)
	var lerr *lisp.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, lisp.CondStackOverflow, lerr.Condition)
	assert.Equal(t, 1, m.Environment().Depth())
}

func TestFuncallDoc(t *testing.T) {
	for _, fn := range libcontrol.Builtins() {
		if fn.Name() == "funcall" {
			assert.Contains(t, fn.Docstring(), "takes a machine frame")
			assert.NotContains(t, fn.Docstring(), "does not consume")
			return
		}
	}
	t.Fatal("funcall is not defined")
}
