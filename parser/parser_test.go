// Copyright © 2024 The ELPS authors

package parser

import (
	"strings"
	"testing"

	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReader_Standard(t *testing.T) {
	r := NewReader()
	exprs, err := r.Read("test", strings.NewReader("(+ 1 2)"))
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	assert.Equal(t, lisp.ICons, exprs[0].Type)
}

func TestReadersAgree(t *testing.T) {
	source := `#!/usr/bin/env minilisp
; definitions
(def square (lambda (x) (* x x)))
(square -4)
'(a "b\"c" #t #f ())
`
	rd, err := ReaderByName(ReaderRD)
	require.NoError(t, err)
	pc, err := ReaderByName(ReaderParsec)
	require.NoError(t, err)

	a, err := rd.Read("test", strings.NewReader(source))
	require.NoError(t, err)
	b, err := pc.Read("test", strings.NewReader(source))
	require.NoError(t, err)
	require.Len(t, b, len(a))
	for i := range a {
		assert.True(t, a[i].Equal(b[i]), "expression %d: %v != %v", i, a[i], b[i])
		assert.Equal(t, a[i].Source.String(), b[i].Source.String())
	}
}

func TestReadersRejectInvalidUTF8(t *testing.T) {
	for _, name := range []string{ReaderRD, ReaderParsec} {
		r, err := ReaderByName(name)
		require.NoError(t, err)
		_, err = r.Read("test", strings.NewReader("\xff"))
		var locErr *token.LocationError
		require.ErrorAs(t, err, &locErr, name)
		assert.EqualError(t, locErr.Err, token.ErrInvalidUTF8.Error(), name)
	}
}

func TestReaderByName_Unknown(t *testing.T) {
	_, err := ReaderByName("yacc")
	assert.EqualError(t, err, `unknown reader: "yacc"`)
}
