// Copyright © 2018 The ELPS authors

package libtypes_test

import (
	"testing"

	"github.com/luthersystems/minilisp/lisptest"
)

func TestPackage(t *testing.T) {
	tests := lisptest.TestSuite{
		{"predicates", lisptest.TestSequence{
			{"(number? 'a)", "#f", ""},
			{`(string? 1)`, "#f", ""},
			{"(boolean? 0)", "#f", ""},
			{`(name? "a")`, "#f", ""},
			{"(list? (cons 1 2))", "#t", ""},
			{"(list? 1)", "#f", ""},
			{"(none? '(1))", "#f", ""},
			{"(function? (lambda (x) x))", "#t", ""},
			{"(function? 1)", "#f", ""},
			{"(number? car)", "#f", ""},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}
