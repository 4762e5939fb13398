// Copyright © 2021 The ELPS authors

// Package libhelp renders documentation for native functions.
package libhelp

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/lisp/lisplib/internal/libutil"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// Index holds the documentation of a set of native functions, keyed by
// each name the function is bound under.
type Index struct {
	names []string
	funs  map[string]*libutil.Builtin
}

// NewIndex returns an Index containing builtins.
func NewIndex(builtins ...[]*libutil.Builtin) *Index {
	idx := &Index{funs: make(map[string]*libutil.Builtin)}
	for _, group := range builtins {
		idx.Add(group...)
	}
	return idx
}

// Add registers builtins in idx.
func (idx *Index) Add(builtins ...*libutil.Builtin) {
	for _, fun := range builtins {
		idx.add(fun.Name(), fun)
		for _, alias := range fun.Aliases() {
			idx.add(alias, fun)
		}
	}
}

func (idx *Index) add(name string, fun *libutil.Builtin) {
	if _, ok := idx.funs[name]; !ok {
		idx.names = append(idx.names, name)
	}
	idx.funs[name] = fun
}

// Names returns every documented name in sorted order.
func (idx *Index) Names() []string {
	names := make([]string, len(idx.names))
	copy(names, idx.names)
	sort.Strings(names)
	return names
}

// Missing returns the names of functions that have no docstring.
func (idx *Index) Missing() []string {
	var missing []string
	for _, name := range idx.Names() {
		if strings.TrimSpace(idx.funs[name].Docstring()) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// Docstring returns the raw docstring of the function bound to name, or
// the empty string.
func (idx *Index) Docstring(name string) string {
	fun, ok := idx.funs[name]
	if !ok {
		return ""
	}
	return fun.Docstring()
}

// RenderFunction writes the signature and docstring of the function bound
// to name.
func (idx *Index) RenderFunction(w io.Writer, name string) error {
	fun, ok := idx.funs[name]
	if !ok {
		return fmt.Errorf("no documentation for %s", name)
	}
	return renderFun(w, name, fun)
}

// RenderAll writes documentation for every function in idx.  Aliases are
// rendered with the function they name.
func (idx *Index) RenderAll(w io.Writer) error {
	first := true
	for _, name := range idx.Names() {
		fun := idx.funs[name]
		if name != fun.Name() {
			continue
		}
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false
		if err := renderFun(w, name, fun); err != nil {
			return err
		}
	}
	return nil
}

func renderFun(w io.Writer, name string, fun *libutil.Builtin) error {
	sig := make([]string, 0, 1+len(fun.Params().Names()))
	sig = append(sig, name)
	sig = append(sig, fun.Params().Names()...)
	if fun.Params().IsVariadic() {
		sig[len(sig)-1] = "&" + sig[len(sig)-1]
	}
	_, err := fmt.Fprintf(w, "function (%s)\n", strings.Join(sig, " "))
	if err != nil {
		return fmt.Errorf("rendering signature: %w", err)
	}
	var aliases []string
	if name == fun.Name() {
		aliases = fun.Aliases()
	} else {
		aliases = []string{fun.Name()}
	}
	if len(aliases) > 0 {
		_, err = fmt.Fprintf(w, "  also: %s\n", strings.Join(aliases, " "))
		if err != nil {
			return err
		}
	}
	doc := cleanDocstring(fun.Docstring())
	if doc != "" {
		_, err = fmt.Fprintln(w, doc)
		return err
	}
	return nil
}

// LoadPackage defines the doc function in m and adds it to idx.  The
// function reads from idx, so functions added to idx later are documented
// too.
func LoadPackage(m *lisp.Machine, idx *Index) error {
	doc := DocBuiltin(idx)
	idx.Add(doc)
	libutil.Define(m, []*libutil.Builtin{doc})
	return nil
}

// DocBuiltin returns the doc function backed by idx.
func DocBuiltin(idx *Index) *libutil.Builtin {
	return libutil.FunctionDoc("doc", lisp.Individual("name"), func(m *lisp.Machine) (lisp.EnvItem, error) {
		return builtinDoc(m, idx)
	}, `Writes the documentation of the native function called name to the
		debug output.  Name is a quoted symbol or a string.`)
}

func builtinDoc(m *lisp.Machine, idx *Index) (lisp.EnvItem, error) {
	name, err := libutil.Item(m, "name")
	if err != nil {
		return lisp.Unbound(), err
	}
	if name.Type != lisp.IName && name.Type != lisp.IString {
		return lisp.Unbound(), libutil.Errorf("argument is not a name: %v", name)
	}
	err = idx.RenderFunction(m.Stderr(), name.Str)
	if err != nil {
		return lisp.Unbound(), libutil.Errorf("%v", err)
	}
	return lisp.Data(lisp.None()), nil
}

func cleanDocstring(doc string) string {
	doc = strings.TrimLeft(doc, "\n")
	if strings.TrimSpace(doc) == "" {
		return ""
	}
	doc = indent.String(wordwrap.String(dedentDoc(doc), 72), 2)
	return strings.TrimRight(doc, "\n ")
}

// dedentDoc removes common leading whitespace from all lines after the
// first, which in a raw string literal carries no indentation.
func dedentDoc(s string) string {
	s = strings.ReplaceAll(s, "\t", "    ")
	lines := strings.Split(s, "\n")
	minWS := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		ws := len(line) - len(trimmed)
		if minWS < 0 || ws < minWS {
			minWS = ws
		}
	}
	lines[0] = strings.TrimLeft(lines[0], " ")
	for i := 1; i < len(lines); i++ {
		switch {
		case strings.TrimSpace(lines[i]) == "":
			lines[i] = ""
		case minWS > 0:
			lines[i] = lines[i][minWS:]
		}
	}
	return strings.Join(lines, "\n")
}
