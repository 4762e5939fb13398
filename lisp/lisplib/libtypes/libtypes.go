// Copyright © 2018 The ELPS authors

package libtypes

import (
	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the type predicates to m
func LoadPackage(m *lisp.Machine) error {
	libutil.Define(m, builtins)
	return nil
}

// Builtins returns the functions defined by LoadPackage.
func Builtins() []*libutil.Builtin {
	return builtins
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("number?", lisp.Individual("value"), itemPredicate(lisp.INumber),
		`Returns #t if value is a number.`),
	libutil.FunctionDoc("string?", lisp.Individual("value"), itemPredicate(lisp.IString),
		`Returns #t if value is a string.`),
	libutil.FunctionDoc("boolean?", lisp.Individual("value"), itemPredicate(lisp.IBoolean),
		`Returns #t if value is #t or #f.`),
	libutil.FunctionDoc("name?", lisp.Individual("value"), itemPredicate(lisp.IName),
		`Returns #t if value is a name (symbol).`),
	libutil.FunctionDoc("list?", lisp.Individual("value"), builtinIsList,
		`Returns #t if value is a list.  The empty list () is a list.`),
	libutil.FunctionDoc("none?", lisp.Individual("value"), itemPredicate(lisp.INone),
		`Returns #t if value is the empty value ().`),
	libutil.FunctionDoc("function?", lisp.Individual("value"), builtinIsFunction,
		`Returns #t if value can be called.`),
}

func itemPredicate(typ lisp.IType) lisp.Callable {
	return func(m *lisp.Machine) (lisp.EnvItem, error) {
		v, err := m.Lookup("value")
		if err != nil {
			return lisp.Unbound(), err
		}
		item, ok := v.Item()
		return lisp.Data(lisp.Bool(ok && item.Type == typ)), nil
	}
}

func builtinIsList(m *lisp.Machine) (lisp.EnvItem, error) {
	v, err := m.Lookup("value")
	if err != nil {
		return lisp.Unbound(), err
	}
	item, ok := v.Item()
	isList := ok && (item.Type == lisp.ICons || item.Type == lisp.INone)
	return lisp.Data(lisp.Bool(isList)), nil
}

func builtinIsFunction(m *lisp.Machine) (lisp.EnvItem, error) {
	v, err := m.Lookup("value")
	if err != nil {
		return lisp.Unbound(), err
	}
	return lisp.Data(lisp.Bool(v.IsFunction())), nil
}
