// Copyright © 2018 The ELPS authors

package lisp

import "sort"

// Environment is a stack of binding layers.  Layer 0 holds global bindings
// and always exists.  Lookup resolves a name to its innermost binding.
type Environment struct {
	layers []map[string]EnvItem
	// bound maps each name to the layers binding it, in increasing order.
	bound map[string][]int
}

// NewEnvironment returns an Environment containing only the global layer.
func NewEnvironment() *Environment {
	return &Environment{
		layers: []map[string]EnvItem{make(map[string]EnvItem)},
		bound:  make(map[string][]int),
	}
}

// Lookup returns the innermost binding of name, or an Unbound EnvItem.
func (env *Environment) Lookup(name string) EnvItem {
	idx := env.bound[name]
	if len(idx) == 0 {
		return Unbound()
	}
	return env.layers[idx[len(idx)-1]][name]
}

// Assign binds name in the innermost layer.  The previous binding in that
// layer is returned along with true if one existed.
func (env *Environment) Assign(name string, v EnvItem) (EnvItem, bool) {
	return env.put(len(env.layers)-1, name, v)
}

// Define binds name in the global layer.  The previous global binding is
// returned along with true if one existed.
func (env *Environment) Define(name string, v EnvItem) (EnvItem, bool) {
	return env.put(0, name, v)
}

func (env *Environment) put(layer int, name string, v EnvItem) (EnvItem, bool) {
	old, ok := env.layers[layer][name]
	env.layers[layer][name] = v
	if !ok {
		idx := env.bound[name]
		if layer == 0 {
			// the global layer sorts before every local binding
			idx = append([]int{0}, idx...)
		} else {
			idx = append(idx, layer)
		}
		env.bound[name] = idx
	}
	return old, ok
}

// Push adds an empty innermost layer.
func (env *Environment) Push() {
	env.layers = append(env.layers, make(map[string]EnvItem))
}

// Pop removes the innermost layer.  The global layer is never removed.
func (env *Environment) Pop() {
	n := len(env.layers) - 1
	if n == 0 {
		return
	}
	for name := range env.layers[n] {
		idx := env.bound[name][:len(env.bound[name])-1]
		if len(idx) == 0 {
			delete(env.bound, name)
		} else {
			env.bound[name] = idx
		}
	}
	env.layers[n] = nil
	env.layers = env.layers[:n]
}

// Depth returns the number of layers, including the global layer.
func (env *Environment) Depth() int {
	return len(env.layers)
}

// truncate pops layers until at most depth remain.
func (env *Environment) truncate(depth int) {
	for len(env.layers) > depth && len(env.layers) > 1 {
		env.Pop()
	}
}

// Globals returns the sorted names bound in the global layer.
func (env *Environment) Globals() []string {
	names := make([]string, 0, len(env.layers[0]))
	for name := range env.layers[0] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
