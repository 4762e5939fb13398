// Copyright © 2018 The ELPS authors

// Package libcontrol provides functions that apply other functions and
// functions that write debugging output.
package libcontrol

import (
	"fmt"
	"strings"

	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the control functions to m
func LoadPackage(m *lisp.Machine) error {
	libutil.Define(m, builtins)
	return nil
}

// Builtins returns the functions defined by LoadPackage.
func Builtins() []*libutil.Builtin {
	return builtins
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("funcall", lisp.All("args"), builtinFuncall,
		`Calls the first argument, which must be a function, with the
		remaining arguments.  The call is scheduled on the machine
		rather than made from Go, so it does not grow the Go stack,
		but it still takes a machine frame of its own.`),
	libutil.FunctionDoc("apply", lisp.Individual("fn", "list"), builtinApply,
		`Calls fn with the elements of list as its arguments.`),
	libutil.FunctionDoc("map", lisp.Individual("fn", "list"), builtinMap,
		`Returns a list containing the result of calling fn with each
		element of list.`),
	libutil.FunctionDoc("print", lisp.All("values"), builtinPrint,
		`Writes values, separated by spaces, to the debug output and
		returns the last value.  With no arguments print writes an
		empty line and returns ().`),
	libutil.FunctionDoc("debug-stack", lisp.Individual(), builtinDebugStack,
		`Writes the current call stack to the debug output and returns
		().`),
}

func builtinFuncall(m *lisp.Machine) (lisp.EnvItem, error) {
	args, err := libutil.Args(m, "args")
	if err != nil {
		return lisp.Unbound(), err
	}
	if len(args) == 0 {
		return lisp.Unbound(), libutil.Errorf("no function given")
	}
	fn := args[0]
	if !fn.IsFunction() {
		return lisp.Unbound(), libutil.Errorf("first argument is not a function: %v", fn)
	}
	return lisp.Unbound(), m.TailCall(fn, args[1:]...)
}

func builtinApply(m *lisp.Machine) (lisp.EnvItem, error) {
	fn, err := libutil.Callable(m, "fn")
	if err != nil {
		return lisp.Unbound(), err
	}
	list, err := libutil.List(m, "list")
	if err != nil {
		return lisp.Unbound(), err
	}
	return lisp.Unbound(), m.TailCall(fn, data(list)...)
}

func builtinMap(m *lisp.Machine) (lisp.EnvItem, error) {
	fn, err := libutil.Callable(m, "fn")
	if err != nil {
		return lisp.Unbound(), err
	}
	list, err := libutil.List(m, "list")
	if err != nil {
		return lisp.Unbound(), err
	}
	out := make([]lisp.Item, len(list))
	for i, x := range list {
		v, err := m.Call(fn, lisp.Data(x))
		if err != nil {
			return lisp.Unbound(), err
		}
		item, ok := v.Item()
		if !ok {
			return lisp.Unbound(), libutil.Errorf("cannot store %v in a list", v)
		}
		out[i] = item
	}
	return lisp.Data(lisp.List(out...)), nil
}

func builtinPrint(m *lisp.Machine) (lisp.EnvItem, error) {
	args, err := libutil.Args(m, "values")
	if err != nil {
		return lisp.Unbound(), err
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	_, err = fmt.Fprintln(m.Stderr(), strings.Join(parts, " "))
	if err != nil {
		return lisp.Unbound(), err
	}
	if len(args) == 0 {
		return lisp.Data(lisp.None()), nil
	}
	return args[len(args)-1], nil
}

func builtinDebugStack(m *lisp.Machine) (lisp.EnvItem, error) {
	err := m.DebugStack(m.Stderr())
	if err != nil {
		return lisp.Unbound(), err
	}
	return lisp.Data(lisp.None()), nil
}

func data(items []lisp.Item) []lisp.EnvItem {
	args := make([]lisp.EnvItem, len(items))
	for i, x := range items {
		args[i] = lisp.Data(x)
	}
	return args
}
