// Copyright © 2018 The ELPS authors

// Package lisplib is used to conveniently load the native library into a
// machine.
package lisplib

import (
	"github.com/luthersystems/minilisp/lisp"
	"github.com/luthersystems/minilisp/lisp/lisplib/internal/libutil"
	"github.com/luthersystems/minilisp/lisp/lisplib/libcontrol"
	"github.com/luthersystems/minilisp/lisp/lisplib/libhelp"
	"github.com/luthersystems/minilisp/lisp/lisplib/liblist"
	"github.com/luthersystems/minilisp/lisp/lisplib/libmath"
	"github.com/luthersystems/minilisp/lisp/lisplib/libtypes"
)

type library struct {
	load     func(*lisp.Machine) error
	builtins func() []*libutil.Builtin
}

var libraries = []library{
	{libmath.LoadPackage, libmath.Builtins},
	{liblist.LoadPackage, liblist.Builtins},
	{libtypes.LoadPackage, libtypes.Builtins},
	{libcontrol.LoadPackage, libcontrol.Builtins},
}

// LoadLibrary defines the native library in m, including the doc function.
// It has the signature of a lisp.Loader so it can be given to
// lisp.WithLibrary.
func LoadLibrary(m *lisp.Machine) error {
	for _, lib := range libraries {
		if err := lib.load(m); err != nil {
			return err
		}
	}
	return libhelp.LoadPackage(m, index())
}

// Docs returns the documentation of every function defined by LoadLibrary.
func Docs() *libhelp.Index {
	idx := index()
	idx.Add(libhelp.DocBuiltin(idx))
	return idx
}

func index() *libhelp.Index {
	idx := libhelp.NewIndex()
	for _, lib := range libraries {
		idx.Add(lib.builtins()...)
	}
	return idx
}
