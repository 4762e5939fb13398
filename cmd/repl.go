// Copyright © 2018 The ELPS authors

package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/luthersystems/minilisp/repl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive lisp REPL",
	Long: `Start an interactive read-eval-print loop.

The native library is loaded automatically.  Line editing, symbol
completion and command history (~/.minilisp_history) are supported via
readline.  Use Ctrl-D to exit.

Example REPL session:
  minilisp> (+ 1 2)
  3
  minilisp> (def square (lambda (x) (* x x)))
  #<function square>
  minilisp> (square 5)
  25
  minilisp> (doc 'map)
  ...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viper.GetViper()
		mode, err := colorMode(v)
		if err != nil {
			return err
		}
		m, err := newMachine(v, os.Stderr)
		if err != nil {
			return err
		}
		prompt := filepath.Base(os.Args[0]) + "> "
		return repl.RunMachine(m, prompt, strings.Repeat(" ", len(prompt)), repl.WithColor(mode))
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
