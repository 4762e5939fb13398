// Copyright © 2018 The ELPS authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys.  Each key may be set by a flag, by a MINILISP_
// environment variable, or in the config file.
const (
	keyLogLevel          = "log-level"
	keyMaxStackHeight    = "max-stack-height"
	keyInstructionBudget = "instruction-budget"
	keyReader            = "reader"
	keyColor             = "color"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minilisp",
	Short: "A small lisp evaluated by a trampolined stack machine",
	Long: `minilisp evaluates a small lisp dialect on a stack machine that never
recurses on the Go stack, so deeply recursive programs are bounded only by
memory or by the configured limits.

Getting started:
  minilisp run file.lisp           Run a lisp source file
  minilisp run -e '(+ 1 2)' -p     Evaluate an expression and print it
  minilisp repl                    Start an interactive REPL
  minilisp doc car                 Show documentation for a native function
  minilisp doc -a                  Show documentation for every native

Language overview:
  Values are integers, strings, #t and #f, names and lists.  The special
  forms are quote, if, def, lambda and eval.  Scoping is dynamic: a function
  body sees the bindings of the frames that called it.

Settings are read from flags, from MINILISP_* environment variables and
from $HOME/.minilisp.yaml.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.minilisp.yaml)")
	flags.String(keyLogLevel, "warning",
		`Machine log level: "panic", "fatal", "error", "warning", "info", "debug" or "trace".`)
	flags.Int(keyMaxStackHeight, 0,
		"Maximum number of machine frames (0 means unlimited).")
	flags.Int(keyInstructionBudget, 0,
		"Maximum number of instructions per top-level evaluation (0 means unlimited).")
	flags.String(keyReader, "rd",
		`Reader implementation: "rd" (recursive descent) or "parsec".`)
	flags.String(keyColor, "auto",
		`Control colored output: "auto", "always", or "never".`)
	for _, key := range []string{keyLogLevel, keyMaxStackHeight, keyInstructionBudget, keyReader, keyColor} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".minilisp" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".minilisp")
	}

	viper.SetEnvPrefix("minilisp")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		newLogger(viper.GetViper(), os.Stderr).
			WithField("file", viper.ConfigFileUsed()).
			Info("using config file")
	}
}
