// Copyright © 2024 The ELPS authors

package cmd

import (
	"bytes"
	"testing"

	"github.com/luthersystems/minilisp/diagnostic"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(testViper(map[string]interface{}{keyLogLevel: "debug"}), &buf)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	logger.Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")

	logger = newLogger(testViper(map[string]interface{}{keyLogLevel: "bogus"}), &buf)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
}

func TestNewMachineLogsCalls(t *testing.T) {
	var buf bytes.Buffer
	m, err := newMachine(testViper(map[string]interface{}{keyLogLevel: "debug"}), &buf)
	require.NoError(t, err)
	v, err := m.LoadString("test", `(+ 1 2)`)
	require.NoError(t, err)
	assert.Equal(t, "3", v.String())
	assert.Contains(t, buf.String(), "fn=+")
}

func TestColorMode(t *testing.T) {
	mode, err := colorMode(testViper(map[string]interface{}{keyColor: "always"}))
	require.NoError(t, err)
	assert.Equal(t, diagnostic.ColorAlways, mode)

	_, err = colorMode(testViper(map[string]interface{}{keyColor: "blue"}))
	assert.Error(t, err)
}
