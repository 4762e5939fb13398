// Copyright © 2018 The ELPS authors

package lisptest

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
)

// TestWriter sends each line written to it to the log of a test.  A line
// missing its newline is held until Flush.
type TestWriter struct {
	tb      testing.TB
	partial []byte
}

// NewTestWriter returns a TestWriter logging to tb.
func NewTestWriter(tb testing.TB) *TestWriter {
	return &TestWriter{tb: tb}
}

func (w *TestWriter) Write(b []byte) (int, error) {
	w.partial = append(w.partial, b...)
	lines := bytes.SplitAfter(w.partial, []byte("\n"))
	for _, line := range lines[:len(lines)-1] {
		w.tb.Log(string(bytes.TrimSuffix(line, []byte("\n"))))
	}
	w.partial = append(w.partial[:0], lines[len(lines)-1]...)
	return len(b), nil
}

// Flush logs the held partial line, if there is one.
func (w *TestWriter) Flush() {
	if len(w.partial) > 0 {
		w.tb.Log(string(w.partial))
		w.partial = w.partial[:0]
	}
}

// NewTestLogger returns a logger for machines under test.  Entries at
// level or above go to the log of tb.
func NewTestLogger(tb testing.TB, level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(NewTestWriter(tb))
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	return log
}
