// Copyright © 2024 The ELPS authors

package lisplib_test

import (
	"io"
	"testing"

	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/lisp/lisplib"
	"github.com/luthersystems/minilisp/lisptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLibrary(t *testing.T) {
	m, err := lisp.NewMachine(lisp.WithStderr(io.Discard))
	require.NoError(t, err)
	require.NoError(t, lisplib.LoadLibrary(m))

	// every documented name is bound and every bound name is documented
	docs := lisplib.Docs().Names()
	assert.Equal(t, docs, m.Environment().Globals())
	for _, name := range docs {
		v, err := m.Lookup(name)
		require.NoError(t, err, name)
		assert.True(t, v.IsFunction(), name)
	}
}

func TestAliasesShareFunction(t *testing.T) {
	m, err := lisp.NewMachine(lisp.WithLibrary(lisplib.LoadLibrary))
	require.NoError(t, err)
	pairs := map[string]string{
		"+": "add", "-": "sub", "*": "mult", "/": "div",
		"%": "mod", "<": "lt", ">": "gt", "=": "eq",
	}
	for op, alias := range pairs {
		a, err := m.Lookup(op)
		require.NoError(t, err)
		b, err := m.Lookup(alias)
		require.NoError(t, err)
		assert.Equal(t, a.Name, b.Name, alias)
	}
}

func TestLibraryFile(t *testing.T) {
	lisptest.RunFile(t, "testdata/library.lisp")
}
