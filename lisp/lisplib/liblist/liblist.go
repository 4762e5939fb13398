// Copyright © 2018 The ELPS authors

package liblist

import (
	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the list functions to m
func LoadPackage(m *lisp.Machine) error {
	libutil.Define(m, builtins)
	return nil
}

// Builtins returns the functions defined by LoadPackage.
func Builtins() []*libutil.Builtin {
	return builtins
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("cons", lisp.Individual("car", "cdr"), builtinCons,
		`Returns a list whose first element is car.  When cdr is a list
		its elements follow car; when cdr is () the result has one
		element; otherwise the result is the dotted pair (car . cdr).`),
	libutil.FunctionDoc("car", lisp.Individual("list"), builtinCar,
		`Returns the first element of list.  Returns an error if list
		is not a non-empty list.`),
	libutil.FunctionDoc("cdr", lisp.Individual("list"), builtinCdr,
		`Returns everything after the first element of list.  The cdr
		of a one element list is () and the cdr of a dotted pair is its
		tail.`),
	libutil.FunctionDoc("list", lisp.All("items"), builtinList,
		`Returns a proper list containing items.  With no arguments the
		result is ().`),
}

func builtinCons(m *lisp.Machine) (lisp.EnvItem, error) {
	car, err := libutil.Item(m, "car")
	if err != nil {
		return lisp.Unbound(), err
	}
	cdr, err := libutil.Item(m, "cdr")
	if err != nil {
		return lisp.Unbound(), err
	}
	return lisp.Data(lisp.FromCons(lisp.NewCons(car, cdr))), nil
}

func consArg(m *lisp.Machine) (*lisp.Cons, error) {
	list, err := libutil.Item(m, "list")
	if err != nil {
		return nil, err
	}
	if list.Type != lisp.ICons {
		return nil, libutil.Errorf("argument is not a non-empty list: %v", list)
	}
	return list.Cons, nil
}

func builtinCar(m *lisp.Machine) (lisp.EnvItem, error) {
	c, err := consArg(m)
	if err != nil {
		return lisp.Unbound(), err
	}
	return lisp.Data(c.Car()), nil
}

func builtinCdr(m *lisp.Machine) (lisp.EnvItem, error) {
	c, err := consArg(m)
	if err != nil {
		return lisp.Unbound(), err
	}
	return lisp.Data(c.Cdr()), nil
}

func builtinList(m *lisp.Machine) (lisp.EnvItem, error) {
	args, err := libutil.Args(m, "items")
	if err != nil {
		return lisp.Unbound(), err
	}
	items := make([]lisp.Item, len(args))
	for i, arg := range args {
		item, ok := arg.Item()
		if !ok {
			return lisp.Unbound(), libutil.Errorf("cannot store %v in a list", arg)
		}
		items[i] = item
	}
	return lisp.Data(lisp.List(items...)), nil
}
