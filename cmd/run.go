// Copyright © 2018 The ELPS authors

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/lisp/lisplib"
	"github.com/luthersystems/minilisp/lisp/x/profiler"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type runOptions struct {
	expression bool
	print      bool
	cpuProfile string
}

// RunCommand returns the run command.  Settings are read from the global
// viper instance when the command executes.
func RunCommand() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run [flags] FILE...",
		Short: "Run lisp code",
		Long: `Run lisp code supplied via the command line or a file.

Files are evaluated in order in a single machine, so definitions made by
one file are visible to the files after it.  An argument ending in /...
names every .lisp file beneath a directory.  The first error stops
evaluation and is reported with its source location and call path.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd.Context(), viper.GetViper(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, args)
		},
	}
	cmd.Flags().BoolVarP(&opts.expression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	cmd.Flags().BoolVarP(&opts.print, "print", "p", false,
		"Print expression values to stdout")
	cmd.Flags().StringVar(&opts.cpuProfile, "cpu-profile", "",
		"Write a CPU profile labeled by lisp function to this file")
	return cmd
}

func runExec(ctx context.Context, v *viper.Viper, stdout, stderr io.Writer, opts runOptions, args []string) error {
	mode, err := colorMode(v)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	extra := []lisp.Config{lisp.WithContext(ctx)}
	if opts.cpuProfile != "" {
		stop, p, err := startCPUProfile(ctx, opts.cpuProfile)
		if err != nil {
			return err
		}
		defer stop()
		extra = append(extra, lisp.WithProfiler(p))
	}
	m, err := newMachine(v, stderr, extra...)
	if err != nil {
		return err
	}
	if !opts.expression {
		args, err = expandArgs(args)
		if err != nil {
			return err
		}
	}
	for i, arg := range args {
		var val lisp.EnvItem
		var file string
		if opts.expression {
			val, err = m.LoadString(fmt.Sprintf("expr%d", i+1), arg)
		} else {
			file = arg
			val, err = m.LoadFile(arg)
		}
		if err != nil {
			renderError(stderr, mode, err, file)
			return err
		}
		if opts.print {
			fmt.Fprintln(stdout, val) //nolint:errcheck // best-effort output
		}
	}
	return nil
}

// startCPUProfile starts the Go CPU profiler writing to path and returns a
// lisp profiler that labels samples with the running lisp function.
func startCPUProfile(ctx context.Context, path string) (func(), lisp.Profiler, error) {
	f, err := os.Create(path) //#nosec G304
	if err != nil {
		return nil, nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	p := profiler.NewPprofAnnotator(ctx, profiler.WithDocLabeler(lisplib.Docs().Docstring))
	if err := p.Enable(); err != nil {
		pprof.StopCPUProfile()
		_ = f.Close()
		return nil, nil, err
	}
	stop := func() {
		_ = p.Complete()
		pprof.StopCPUProfile()
		_ = f.Close()
	}
	return stop, p, nil
}

func init() {
	rootCmd.AddCommand(RunCommand())
}
