// Copyright © 2024 The ELPS authors

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/luthersystems/minilisp/lisp"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testViper(settings map[string]interface{}) *viper.Viper {
	v := viper.New()
	v.Set(keyColor, "never")
	for k, x := range settings {
		v.Set(k, x)
	}
	return v
}

func runWith(t *testing.T, v *viper.Viper, opts runOptions, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := runExec(context.Background(), v, &stdout, &stderr, opts, args)
	return stdout.String(), stderr.String(), err
}

func TestRunExpressions(t *testing.T) {
	v := testViper(nil)
	out, _, err := runWith(t, v, runOptions{expression: true, print: true},
		`(def x 20)`, `(+ x x 2)`)
	require.NoError(t, err)
	assert.Equal(t, "20\n42\n", out)

	out, _, err = runWith(t, v, runOptions{expression: true}, `(+ 1 2)`)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "a.lisp")
	main := filepath.Join(dir, "b.lisp")
	require.NoError(t, os.WriteFile(lib, []byte("(def double (lambda (x) (* 2 x)))\n"), 0o600))
	require.NoError(t, os.WriteFile(main, []byte("; uses a.lisp\n(print (double 21))\n"), 0o600))

	_, stderr, err := runWith(t, testViper(nil), runOptions{}, lib, main)
	require.NoError(t, err)
	assert.Equal(t, "42\n", stderr)

	_, stderr, err = runWith(t, testViper(nil), runOptions{}, dir+"/...")
	require.NoError(t, err)
	assert.Equal(t, "42\n", stderr)
}

func TestRunError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lisp")
	require.NoError(t, os.WriteFile(path, []byte("(car 1)\n"), 0o600))

	_, stderr, err := runWith(t, testViper(nil), runOptions{}, path)
	var lerr *lisp.Error
	require.True(t, errors.As(err, &lerr), "%v", err)
	assert.Equal(t, lisp.CondNativeError, lerr.Condition)
	assert.Contains(t, stderr, "error[native-error]: car:")
	assert.Contains(t, stderr, "(car 1)")
	assert.Contains(t, stderr, "try: minilisp run --log-level debug "+path)
}

func TestRunLimits(t *testing.T) {
	loop := `((lambda (f) (f f)) (lambda (f) (+ 1 (f f))))`

	_, _, err := runWith(t, testViper(map[string]interface{}{keyMaxStackHeight: 50}),
		runOptions{expression: true}, loop)
	var lerr *lisp.Error
	require.True(t, errors.As(err, &lerr), "%v", err)
	assert.Equal(t, lisp.CondStackOverflow, lerr.Condition)

	_, _, err = runWith(t, testViper(map[string]interface{}{keyInstructionBudget: 100}),
		runOptions{expression: true}, loop)
	require.True(t, errors.As(err, &lerr), "%v", err)
	assert.Equal(t, lisp.CondInstructionBudget, lerr.Condition)
}

func TestRunParsecReader(t *testing.T) {
	out, _, err := runWith(t, testViper(map[string]interface{}{keyReader: "parsec"}),
		runOptions{expression: true, print: true}, `(car '(1 2))`)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestRunBadSettings(t *testing.T) {
	for key, value := range map[string]interface{}{
		keyReader:            "lalr",
		keyColor:             "sometimes",
		keyLogLevel:          "loud",
		keyMaxStackHeight:    -1,
		keyInstructionBudget: -5,
	} {
		_, _, err := runWith(t, testViper(map[string]interface{}{key: value}),
			runOptions{expression: true}, `1`)
		assert.Error(t, err, key)
	}
}

func TestRunCPUProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.prof")
	out, _, err := runWith(t, testViper(nil),
		runOptions{expression: true, print: true, cpuProfile: path},
		`(map (lambda (x) (* x x)) '(1 2 3))`)
	require.NoError(t, err)
	assert.Equal(t, "(1 4 9)\n", out)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
