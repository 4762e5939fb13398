// Copyright © 2018 The ELPS authors

package regexparser

import (
	"strings"
	"testing"

	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItems(t *testing.T) {
	tests := []struct {
		source string
		output []string
	}{
		{``, nil},
		{`0 12 -1 +5`, []string{"0", "12", "-1", "5"}},
		{`- abc number?`, []string{"-", "abc", "number?"}},
		{`#t #f`, []string{"#t", "#f"}},
		{`"xyz" "" "a\"b" "a\\b"`, []string{`"xyz"`, `""`, `"a\"b"`, `"a\\b"`}},
		{`'xyz`, []string{"(quote xyz)"}},
		{`()`, []string{"()"}},
		{`(1 "abc" '(x y z))`, []string{`(1 "abc" (quote (x y z)))`}},
		{"(1 ; comment\n 2) ; another", []string{"(1 2)"}},
		{"#!/usr/bin/env minilisp\n(+ 1 2)", []string{"(+ 1 2)"}},
		{"(def f (lambda (x)\n  (* x x)))\n(f 3)", []string{
			"(def f (lambda (x) (* x x)))",
			"(f 3)",
		}},
	}
	for i, test := range tests {
		items, err := ParseItems("test", []byte(test.source))
		if !assert.NoError(t, err, "test %d", i) {
			continue
		}
		var output []string
		for _, item := range items {
			output = append(output, item.String())
		}
		assert.Equal(t, test.output, output, "test %d", i)
	}
}

func TestParseLocations(t *testing.T) {
	items, err := ParseItems("loc", []byte("1\n  (a\n   'b)"))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "loc:1:1", items[0].Source.String())
	assert.Equal(t, "loc:2:3", items[1].Source.String())
	elems := items[1].Cons.Items()
	assert.Equal(t, "loc:2:4", elems[0].Source.String())
	assert.Equal(t, "loc:3:4", elems[1].Source.String())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		source string
		errmsg string
	}{
		{`(1 2 3`, `test:1:1: unmatched (`},
		{"(1 2)\n  12abc", `test:2:3: invalid number literal: 12abc`},
		{`#true`, `test:1:1: invalid dispatch sequence: #true`},
		{`99999999999999999999`, `test:1:1: integer literal overflows int64: 99999999999999999999`},
		{`1 )`, `test:1:3: unexpected source text possibly starting: )`},
		{"(a \xff)", `test:1:4: invalid utf-8 sequence`},
		{"\"a\xffb\"", `test:1:1: invalid utf-8 sequence`},
	}
	for i, test := range tests {
		_, err := ParseItems("test", []byte(test.source))
		if !assert.Error(t, err, "test %d", i) {
			continue
		}
		assert.IsType(t, &token.LocationError{}, err)
		assert.Equal(t, test.errmsg, err.Error(), "test %d", i)
	}
}

func TestReader(t *testing.T) {
	items, err := NewReader().Read("reader", strings.NewReader(`(cons 1 "two")`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	expect := lisp.List(lisp.Name("cons"), lisp.Number(1), lisp.String("two"))
	assert.True(t, items[0].Equal(expect))
}
