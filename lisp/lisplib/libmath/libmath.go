// Copyright © 2018 The ELPS authors

package libmath

import (
	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the arithmetic and comparison functions to m
func LoadPackage(m *lisp.Machine) error {
	libutil.Define(m, builtins)
	return nil
}

// Builtins returns the functions defined by LoadPackage.
func Builtins() []*libutil.Builtin {
	return builtins
}

var builtins = []*libutil.Builtin{
	libutil.FunctionDoc("+", lisp.All("numbers"), builtinAdd,
		`Returns the sum of numbers.  With no arguments the result
		is 0.`).WithAliases("add"),
	libutil.FunctionDoc("-", lisp.All("numbers"), builtinSub,
		`Subtracts each remaining number from the first and returns
		the result.  At least one argument is required; a single
		argument is returned unchanged.`).WithAliases("sub"),
	libutil.FunctionDoc("*", lisp.All("numbers"), builtinMul,
		`Returns the product of numbers.  With no arguments the
		result is 1.`).WithAliases("mult"),
	libutil.FunctionDoc("/", lisp.Individual("dividend", "divisor"), builtinDiv,
		`Returns dividend divided by divisor, truncated toward zero.
		Returns an error if divisor is 0.`).WithAliases("div"),
	libutil.FunctionDoc("%", lisp.Individual("dividend", "divisor"), builtinMod,
		`Returns the remainder of dividend divided by divisor.  The
		result has the sign of dividend.  Returns an error if divisor
		is 0.`).WithAliases("mod"),
	libutil.FunctionDoc("<", lisp.Individual("a", "b"), builtinLT,
		`Returns #t if number a is less than number b.`).WithAliases("lt"),
	libutil.FunctionDoc(">", lisp.Individual("a", "b"), builtinGT,
		`Returns #t if number a is greater than number b.`).WithAliases("gt"),
	libutil.FunctionDoc("=", lisp.Individual("a", "b"), builtinEq,
		`Returns #t if a and b are structurally equal values of the
		same type.  Lists are equal when their elements are equal.`).WithAliases("eq"),
}

func builtinAdd(m *lisp.Machine) (lisp.EnvItem, error) {
	nums, err := libutil.Numbers(m, "numbers")
	if err != nil {
		return lisp.Unbound(), err
	}
	var sum int64
	for _, x := range nums {
		sum += x
	}
	return lisp.Data(lisp.Number(sum)), nil
}

func builtinSub(m *lisp.Machine) (lisp.EnvItem, error) {
	nums, err := libutil.Numbers(m, "numbers")
	if err != nil {
		return lisp.Unbound(), err
	}
	if len(nums) == 0 {
		return lisp.Unbound(), libutil.Errorf("at least one argument is required")
	}
	diff := nums[0]
	for _, x := range nums[1:] {
		diff -= x
	}
	return lisp.Data(lisp.Number(diff)), nil
}

func builtinMul(m *lisp.Machine) (lisp.EnvItem, error) {
	nums, err := libutil.Numbers(m, "numbers")
	if err != nil {
		return lisp.Unbound(), err
	}
	prod := int64(1)
	for _, x := range nums {
		prod *= x
	}
	return lisp.Data(lisp.Number(prod)), nil
}

func operands(m *lisp.Machine, a, b string) (int64, int64, error) {
	x, err := libutil.Number(m, a)
	if err != nil {
		return 0, 0, err
	}
	y, err := libutil.Number(m, b)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func builtinDiv(m *lisp.Machine) (lisp.EnvItem, error) {
	x, y, err := operands(m, "dividend", "divisor")
	if err != nil {
		return lisp.Unbound(), err
	}
	if y == 0 {
		return lisp.Unbound(), libutil.Errorf("division by zero")
	}
	return lisp.Data(lisp.Number(x / y)), nil
}

func builtinMod(m *lisp.Machine) (lisp.EnvItem, error) {
	x, y, err := operands(m, "dividend", "divisor")
	if err != nil {
		return lisp.Unbound(), err
	}
	if y == 0 {
		return lisp.Unbound(), libutil.Errorf("division by zero")
	}
	return lisp.Data(lisp.Number(x % y)), nil
}

func builtinLT(m *lisp.Machine) (lisp.EnvItem, error) {
	x, y, err := operands(m, "a", "b")
	if err != nil {
		return lisp.Unbound(), err
	}
	return lisp.Data(lisp.Bool(x < y)), nil
}

func builtinGT(m *lisp.Machine) (lisp.EnvItem, error) {
	x, y, err := operands(m, "a", "b")
	if err != nil {
		return lisp.Unbound(), err
	}
	return lisp.Data(lisp.Bool(x > y)), nil
}

func builtinEq(m *lisp.Machine) (lisp.EnvItem, error) {
	a, err := m.Lookup("a")
	if err != nil {
		return lisp.Unbound(), err
	}
	b, err := m.Lookup("b")
	if err != nil {
		return lisp.Unbound(), err
	}
	x, okx := a.Item()
	y, oky := b.Item()
	if !okx || !oky {
		// functions have no datum to compare
		return lisp.Data(lisp.Bool(false)), nil
	}
	return lisp.Data(lisp.Bool(x.Equal(y))), nil
}
