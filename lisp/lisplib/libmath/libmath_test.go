// Copyright © 2018 The ELPS authors

package libmath_test

import (
	"testing"

	"github.com/luthersystems/minilisp/lisptest"
)

func TestPackage(t *testing.T) {
	tests := lisptest.TestSuite{
		{"add", lisptest.TestSequence{
			{"(+ 1)", "1", ""},
			{"(add 1 2 3 4)", "10", ""},
			{"(+ -5 2)", "-3", ""},
			{"(+ 9223372036854775807 1)", "-9223372036854775808", ""},
		}},
		{"sub", lisptest.TestSequence{
			{"(- 3)", "3", ""},
			{"(sub 3 5)", "-2", ""},
			{"(- 'a)", "native-error: -: argument 1 is not a number: a", ""},
		}},
		{"mult", lisptest.TestSequence{
			{"(*)", "1", ""},
			{"(mult 2 -3)", "-6", ""},
			{"(* 2 0 5)", "0", ""},
		}},
		{"div and mod", lisptest.TestSequence{
			{"(/ 9 3)", "3", ""},
			{"(div -7 2)", "-3", ""},
			{"(% -7 2)", "-1", ""},
			{"(mod 7 -2)", "1", ""},
			{"(% 1 0)", "native-error: %: division by zero", ""},
			{"(/ 1)", "arity-mismatch: /: wrong number of arguments: expected 2, found 1", ""},
			{`(/ "6" 2)`, `native-error: /: argument dividend is not a number: "6"`, ""},
		}},
		{"comparison", lisptest.TestSequence{
			{"(< 2 1)", "#f", ""},
			{"(lt -1 0)", "#t", ""},
			{"(> 2 1)", "#t", ""},
			{"(gt 1 1)", "#f", ""},
			{"(< 1 2 3)", "arity-mismatch: <: wrong number of arguments: expected 2, found 3", ""},
		}},
		{"equality", lisptest.TestSequence{
			{"(= 1 1)", "#t", ""},
			{"(eq 'a 'a)", "#t", ""},
			{`(= "a" 'a)`, "#f", ""},
			{"(= '() '())", "#t", ""},
			{"(= (cons 1 2) (cons 1 2))", "#t", ""},
			{"(= '(1 2) (cons 1 2))", "#f", ""},
			{"(= car car)", "#f", ""},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}
