// Copyright © 2018 The ELPS authors

package libutil

import "github.com/luthersystems/minilisp/lisp"

// Errorf returns a native-error for a builtin to return.
func Errorf(format string, v ...interface{}) *lisp.Error {
	return lisp.ErrorConditionf(lisp.CondNativeError, format, v...)
}

// Item returns the argument bound to name as a datum.
func Item(m *lisp.Machine, name string) (lisp.Item, error) {
	v, err := m.Lookup(name)
	if err != nil {
		return lisp.None(), err
	}
	item, ok := v.Item()
	if !ok {
		return lisp.None(), Errorf("argument %s is not a value: %v", name, v)
	}
	return item, nil
}

// Number returns the argument bound to name, which must be a number.
func Number(m *lisp.Machine, name string) (int64, error) {
	item, err := Item(m, name)
	if err != nil {
		return 0, err
	}
	if item.Type != lisp.INumber {
		return 0, Errorf("argument %s is not a number: %v", name, item)
	}
	return item.Num, nil
}

// Args returns the arguments bound to a variadic parameter.
func Args(m *lisp.Machine, name string) ([]lisp.EnvItem, error) {
	v, err := m.Lookup(name)
	if err != nil {
		return nil, err
	}
	if v.Type != lisp.EVariableBinding {
		return []lisp.EnvItem{v}, nil
	}
	return v.Binding, nil
}

// Numbers returns the arguments bound to a variadic parameter, all of which
// must be numbers.
func Numbers(m *lisp.Machine, name string) ([]int64, error) {
	args, err := Args(m, name)
	if err != nil {
		return nil, err
	}
	nums := make([]int64, len(args))
	for i, arg := range args {
		item, ok := arg.Item()
		if !ok || item.Type != lisp.INumber {
			return nil, Errorf("argument %d is not a number: %v", i+1, arg)
		}
		nums[i] = item.Num
	}
	return nums, nil
}

// Callable returns the argument bound to name, which must be a function.
func Callable(m *lisp.Machine, name string) (lisp.EnvItem, error) {
	v, err := m.Lookup(name)
	if err != nil {
		return lisp.Unbound(), err
	}
	if !v.IsFunction() {
		return lisp.Unbound(), Errorf("argument %s is not a function: %v", name, v)
	}
	return v, nil
}

// List returns the argument bound to name as a slice of elements.  The
// argument must be a proper list or None.
func List(m *lisp.Machine, name string) ([]lisp.Item, error) {
	item, err := Item(m, name)
	if err != nil {
		return nil, err
	}
	switch {
	case item.IsNone():
		return nil, nil
	case item.Type == lisp.ICons && item.Cons.IsProper():
		return item.Cons.Items(), nil
	default:
		return nil, Errorf("argument %s is not a proper list: %v", name, item)
	}
}
