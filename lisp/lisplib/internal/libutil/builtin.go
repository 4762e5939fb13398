// Copyright © 2018 The ELPS authors

package libutil

import "github.com/luthersystems/minilisp/lisp"

func Function(name string, params lisp.Parameters, fun lisp.Callable) *Builtin {
	return &Builtin{name: name, params: params, fun: fun}
}

func FunctionDoc(name string, params lisp.Parameters, fun lisp.Callable, docs string) *Builtin {
	return &Builtin{name: name, params: params, fun: fun, docs: docs}
}

// Builtin is a native function along with its documentation.
type Builtin struct {
	name    string
	params  lisp.Parameters
	fun     lisp.Callable
	docs    string
	aliases []string
}

// WithAliases registers additional names for fun.
func (fun *Builtin) WithAliases(names ...string) *Builtin {
	fun.aliases = append(fun.aliases, names...)
	return fun
}

func (fun *Builtin) Name() string {
	return fun.name
}

func (fun *Builtin) Aliases() []string {
	return fun.aliases
}

func (fun *Builtin) Params() lisp.Parameters {
	return fun.params
}

func (fun *Builtin) Docstring() string {
	return fun.docs
}

// EnvItem returns the function value bound by Define.
func (fun *Builtin) EnvItem() lisp.EnvItem {
	return lisp.Function(fun.name, fun.fun, fun.params)
}

// Define binds each builtin globally under its name and aliases.
func Define(m *lisp.Machine, builtins []*Builtin) {
	for _, fun := range builtins {
		v := fun.EnvItem()
		m.Define(fun.name, v)
		for _, alias := range fun.aliases {
			m.Define(alias, v)
		}
	}
}
