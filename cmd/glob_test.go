// Copyright © 2024 The ELPS authors

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("()"), 0o600))
	}
}

func TestExpandArgs_PassThrough(t *testing.T) {
	out, err := expandArgs([]string{"a.lisp", "b/c.lisp"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.lisp", "b/c.lisp"}, out)
}

func TestExpandArgs_Recursive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "z.lisp", "a.lisp", "sub/m.lisp", "notes.txt")

	out, err := expandArgs([]string{"first.lisp", dir + "/..."})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"first.lisp",
		filepath.Join(dir, "a.lisp"),
		filepath.Join(dir, "sub", "m.lisp"),
		filepath.Join(dir, "z.lisp"),
	}, out)
}

func TestExpandArgs_NoFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "notes.txt")
	_, err := expandArgs([]string{dir + "/..."})
	assert.ErrorContains(t, err, "no .lisp files")
}

func TestExpandArgs_MissingDir(t *testing.T) {
	_, err := expandArgs([]string{filepath.Join(t.TempDir(), "missing") + "/..."})
	assert.Error(t, err)
}

func TestExpandArgs_SkipsHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "main.lisp", ".cache/stale.lisp")

	out, err := expandArgs([]string{dir + "/..."})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "main.lisp")}, out)
}
