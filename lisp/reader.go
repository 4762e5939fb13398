// Copyright © 2018 The ELPS authors

package lisp

import (
	"io"
	"os"
	"strings"
)

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// Read the contents of r and return the sequence of Items that it
	// contains.  The returned Items are evaluated in order.
	Read(name string, r io.Reader) ([]Item, error)
}

// Load reads expressions from r and evaluates them in order, returning the
// value of the last one.  Evaluation stops at the first error.  An empty
// stream evaluates to None.
func (m *Machine) Load(name string, r io.Reader) (EnvItem, error) {
	if m.reader == nil {
		return Unbound(), ErrorConditionf(CondInternal, "no reader configured")
	}
	exprs, err := m.reader.Read(name, r)
	if err != nil {
		return Unbound(), err
	}
	result := Data(None())
	for _, expr := range exprs {
		result, err = m.Eval(expr)
		if err != nil {
			return Unbound(), err
		}
	}
	return result, nil
}

// LoadString evaluates the expressions in source.
func (m *Machine) LoadString(name, source string) (EnvItem, error) {
	return m.Load(name, strings.NewReader(source))
}

// LoadFile evaluates the expressions in the file at path.
func (m *Machine) LoadFile(path string) (EnvItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unbound(), err
	}
	defer f.Close()
	return m.Load(path, f)
}
