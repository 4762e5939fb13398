// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
	"strings"
)

// EnvType is the kind of value held by an EnvItem.
type EnvType uint

// Possible EnvType values
const (
	// EUnbound is the result of looking up a name with no binding.  It is
	// also used as the placeholder written into a register that is waiting
	// on a child frame.
	EUnbound EnvType = iota
	// EData values hold an Item in EnvItem.Data.
	EData
	// EFunction values are callable.  They use EnvItem.Name, EnvItem.Fn and
	// EnvItem.Params.
	EFunction
	// EVariableBinding values hold the argument list bound to a variadic
	// parameter in EnvItem.Binding.
	EVariableBinding
)

func (t EnvType) String() string {
	switch t {
	case EUnbound:
		return "unbound"
	case EData:
		return "data"
	case EFunction:
		return "function"
	case EVariableBinding:
		return "binding"
	default:
		return "INVALID"
	}
}

// Callable is the Go implementation behind a function.  Arguments are read
// from the environment by name using m.Lookup.  A Callable may schedule more
// work with m.TailCall instead of producing its result directly, in which
// case its returned EnvItem is ignored.
type Callable func(m *Machine) (EnvItem, error)

// EnvItem is a value stored in an Environment or a StackFrame register.
type EnvItem struct {
	Type    EnvType
	Data    Item
	Name    string
	Fn      Callable
	Params  Parameters
	Binding []EnvItem
}

// Unbound returns the EnvItem representing the absence of a binding.
func Unbound() EnvItem {
	return EnvItem{Type: EUnbound}
}

// Data wraps item in an EnvItem.
func Data(item Item) EnvItem {
	return EnvItem{Type: EData, Data: item}
}

// Function returns a callable EnvItem.
func Function(name string, fn Callable, params Parameters) EnvItem {
	return EnvItem{Type: EFunction, Name: name, Fn: fn, Params: params}
}

// VariableBinding returns the EnvItem bound to a variadic parameter.
func VariableBinding(args []EnvItem) EnvItem {
	return EnvItem{Type: EVariableBinding, Binding: args}
}

// IsUnbound returns true if e is not a value.
func (e EnvItem) IsUnbound() bool {
	return e.Type == EUnbound
}

// IsFunction returns true if e can be called.
func (e EnvItem) IsFunction() bool {
	return e.Type == EFunction
}

// Item returns e as a datum.  A variable binding converts to a proper list
// when all of its elements are data.  Functions and unbound values have no
// datum representation.
func (e EnvItem) Item() (Item, bool) {
	switch e.Type {
	case EData:
		return e.Data, true
	case EVariableBinding:
		items := make([]Item, len(e.Binding))
		for i := range e.Binding {
			item, ok := e.Binding[i].Item()
			if !ok {
				return None(), false
			}
			items[i] = item
		}
		return List(items...), true
	default:
		return None(), false
	}
}

func (e EnvItem) String() string {
	switch e.Type {
	case EData:
		return e.Data.String()
	case EFunction:
		return fmt.Sprintf("#<function %s>", e.Name)
	case EVariableBinding:
		parts := make([]string, len(e.Binding))
		for i := range e.Binding {
			parts[i] = e.Binding[i].String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return "#<unbound>"
	}
}

// Parameters describes how a function binds its arguments.
type Parameters struct {
	names    []string
	variadic bool
}

// Individual parameters bind one argument per name.  The number of
// arguments must match the number of names exactly.
func Individual(names ...string) Parameters {
	return Parameters{names: names}
}

// All binds the entire argument list to name as a variable binding.
func All(name string) Parameters {
	return Parameters{names: []string{name}, variadic: true}
}

// IsVariadic returns true for parameters created with All.
func (p Parameters) IsVariadic() bool {
	return p.variadic
}

// Names returns the parameter names.
func (p Parameters) Names() []string {
	return p.names
}

// Arity returns the required number of arguments, or -1 when any number of
// arguments is accepted.
func (p Parameters) Arity() int {
	if p.variadic {
		return -1
	}
	return len(p.names)
}

func (p Parameters) String() string {
	if p.variadic {
		return p.names[0]
	}
	return "(" + strings.Join(p.names, " ") + ")"
}
