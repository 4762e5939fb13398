// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/luthersystems/minilisp/diagnostic"
	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/lisp/lisplib"
	"github.com/luthersystems/minilisp/parser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var envKeyReplacer = strings.NewReplacer("-", "_")

// logLevel returns the level configured in v.  An unset level is warning.
func logLevel(v *viper.Viper) (logrus.Level, error) {
	name := v.GetString(keyLogLevel)
	if name == "" {
		return logrus.WarnLevel, nil
	}
	return logrus.ParseLevel(name)
}

// newLogger returns a logger writing to w at the level configured in v.  An
// invalid level falls back to warning.
func newLogger(v *viper.Viper, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	level, err := logLevel(v)
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// machineConfig translates the settings in v to machine configuration.
// Debug output and logs are written to stderr.
func machineConfig(v *viper.Viper, stderr io.Writer) ([]lisp.Config, error) {
	if _, err := logLevel(v); err != nil {
		return nil, err
	}
	reader, err := parser.ReaderByName(v.GetString(keyReader))
	if err != nil {
		return nil, err
	}
	height := v.GetInt(keyMaxStackHeight)
	if height < 0 {
		return nil, fmt.Errorf("%s must not be negative: %d", keyMaxStackHeight, height)
	}
	budget := v.GetInt(keyInstructionBudget)
	if budget < 0 {
		return nil, fmt.Errorf("%s must not be negative: %d", keyInstructionBudget, budget)
	}
	return []lisp.Config{
		lisp.WithLogger(newLogger(v, stderr)),
		lisp.WithReader(reader),
		lisp.WithStderr(stderr),
		lisp.WithMaximumStackHeight(height),
		lisp.WithInstructionBudget(budget),
		lisp.WithLibrary(lisplib.LoadLibrary),
	}, nil
}

// newMachine returns a machine configured from v with the native library
// loaded.
func newMachine(v *viper.Viper, stderr io.Writer, extra ...lisp.Config) (*lisp.Machine, error) {
	cfg, err := machineConfig(v, stderr)
	if err != nil {
		return nil, err
	}
	return lisp.NewMachine(append(cfg, extra...)...)
}

func colorMode(v *viper.Viper) (diagnostic.ColorMode, error) {
	return diagnostic.ParseColorMode(v.GetString(keyColor))
}
