// Copyright © 2018 The ELPS authors

// Package repl implements an interactive read-eval-print loop over a
// lisp.Machine.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/luthersystems/minilisp/diagnostic"
	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/lisp/lisplib"
	"github.com/luthersystems/minilisp/parser"
	"github.com/luthersystems/minilisp/parser/rdparser"
	"github.com/sirupsen/logrus"
)

// HistoryFileName is the name of the history file kept in the user's home
// directory.
const HistoryFileName = ".minilisp_history"

// SourceName is the file name given to locations of REPL input.
const SourceName = "stdin"

type config struct {
	stdin       io.ReadCloser
	stderr      io.WriteCloser
	historyFile string
	noHistory   bool
	color       diagnostic.ColorMode
	machine     []lisp.Config
}

func newConfig(opts ...Option) *config {
	config := &config{color: diagnostic.ColorAuto}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Option configures a REPL.
type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output to the REPL.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithHistoryFile sets the file used to persist input history.  An empty
// path disables history.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.historyFile = path
		c.noHistory = path == ""
	}
}

// WithColor sets the color mode used when rendering errors.
func WithColor(mode diagnostic.ColorMode) Option {
	return func(c *config) {
		c.color = mode
	}
}

// WithMachineConfig appends configuration for the machine created by
// RunRepl.
func WithMachineConfig(cfg ...lisp.Config) Option {
	return func(c *config) {
		c.machine = append(c.machine, cfg...)
	}
}

// RunRepl runs a simple repl in a machine loaded with the standard library.
func RunRepl(prompt string, opts ...Option) error {
	cfg := newConfig(opts...)
	mcfg := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithLibrary(lisplib.LoadLibrary),
	}
	if cfg.stderr != nil {
		mcfg = append(mcfg, lisp.WithStderr(cfg.stderr))
	}
	mcfg = append(mcfg, cfg.machine...)
	m, err := lisp.NewMachine(mcfg...)
	if err != nil {
		return fmt.Errorf("initializing machine: %w", err)
	}
	return RunMachine(m, prompt, strings.Repeat(" ", len(prompt)), opts...)
}

// RunMachine runs a simple repl that evaluates expressions in m.  Results
// and errors are written to the machine's debug output.
func RunMachine(m *lisp.Machine, prompt, cont string, opts ...Option) error {
	cfg := newConfig(opts...)
	out := m.Stderr()

	histFile := cfg.historyFile
	if histFile == "" && !cfg.noHistory {
		histFile = historyPath()
	}
	ensureHistoryFilePermissions(histFile)

	rl, err := readline.NewEx(&readline.Config{
		Stdin:             cfg.stdin,
		Stdout:            out,
		Stderr:            out,
		Prompt:            prompt,
		HistoryFile:       histFile,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{env: m.Environment()},
	})
	if err != nil {
		return fmt.Errorf("initializing readline: %w", err)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	p := rdparser.NewInteractive(SourceName, func(prompt string) ([]byte, error) {
		rl.SetPrompt(prompt)
		for {
			line, err := rl.ReadSlice()
			if err == readline.ErrInterrupt {
				continue
			}
			return line, err
		}
	})
	p.SetPrompts(prompt, cont)

	log := m.Logger().WithField("component", "repl")
	for {
		expr, err := p.Parse()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			log.WithError(err).Debug("parse failed")
			renderError(out, cfg.color, p, err)
			continue
		}
		v, err := m.Eval(expr)
		if err != nil {
			renderError(out, cfg.color, p, err)
			continue
		}
		log.WithFields(logrus.Fields{"expr": expr.String()}).Trace("evaluated")
		fmt.Fprintln(out, v) //nolint:errcheck // best-effort REPL output
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, HistoryFileName)
}

// ensureHistoryFilePermissions creates path if needed and restricts it to
// the current user.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0600) //nolint:gosec // path is the user's history file
	if err != nil {
		return
	}
	_ = f.Close()
	_ = os.Chmod(path, 0600)
}
