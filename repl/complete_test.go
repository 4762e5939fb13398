// Copyright © 2018 The ELPS authors

package repl

import (
	"io"
	"testing"

	"github.com/luthersystems/minilisp/lisptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolCompleter(t *testing.T) {
	m, err := lisptest.NewMachine(io.Discard)
	require.NoError(t, err)
	c := &symbolCompleter{env: m.Environment()}

	candidates, offset := c.Do([]rune("(de"), 3)
	assert.Equal(t, 2, offset)
	assert.Contains(t, candidates, []rune("bug-stack"))

	candidates, offset = c.Do([]rune("(doc 'ca"), 8)
	assert.Equal(t, 2, offset)
	assert.Contains(t, candidates, []rune("r"))

	candidates, _ = c.Do([]rune("(zzz-nonexistent"), 16)
	assert.Empty(t, candidates)

	candidates, offset = c.Do([]rune("( "), 2)
	assert.Empty(t, candidates)
	assert.Equal(t, 0, offset)
}

func TestSymbolCompleterUserDefinitions(t *testing.T) {
	m, err := lisptest.NewMachine(io.Discard)
	require.NoError(t, err)
	_, err = m.LoadString("test", `(def zebra-count 3)`)
	require.NoError(t, err)

	c := &symbolCompleter{env: m.Environment()}
	candidates, offset := c.Do([]rune("zeb"), 3)
	assert.Equal(t, 3, offset)
	assert.Equal(t, [][]rune{[]rune("ra-count")}, candidates)
}
