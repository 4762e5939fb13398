// Copyright © 2021 The ELPS authors

package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/luthersystems/minilisp/lisp/lisplib/libhelp"
	"github.com/spf13/cobra"
)

// DocCommand returns the doc command.  By default it documents the native
// library; WithDocs substitutes another index.
func DocCommand(opts ...Option) *cobra.Command {
	var cfg cmdConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	var all, missing, list bool
	cmd := &cobra.Command{
		Use:   "doc [flags] NAME",
		Short: "Show documentation for native functions",
		Long: `Show the parameter list and documentation of native functions.

Aliases are documented with the function they name.

Examples:
  minilisp doc map        Show docs for the map function
  minilisp doc add        Show docs for add, an alias of +
  minilisp doc -a         Show docs for every native function
  minilisp doc -l         List the names of every native function`,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx := cfg.resolveDocs()
			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush() //nolint:errcheck // best-effort flush on exit
			switch {
			case all:
				return idx.RenderAll(out)
			case missing:
				return docMissing(out, idx)
			case list:
				for _, name := range idx.Names() {
					if _, err := fmt.Fprintln(out, name); err != nil {
						return err
					}
				}
				return nil
			}
			if len(args) != 1 {
				return fmt.Errorf("expected one function name, found %d", len(args))
			}
			return idx.RenderFunction(out, args[0])
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false,
		"Show documentation for every native function.")
	cmd.Flags().BoolVarP(&list, "list", "l", false,
		"List the names of every native function.")
	cmd.Flags().BoolVar(&missing, "missing", false,
		"List native functions without documentation and fail if there are any.")
	return cmd
}

func docMissing(w io.Writer, idx *libhelp.Index) error {
	names := idx.Missing()
	for _, name := range names {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	if len(names) > 0 {
		return fmt.Errorf("%d functions have no documentation", len(names))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(DocCommand())
}
