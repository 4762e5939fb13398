// Copyright © 2018 The ELPS authors

package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironment(t *testing.T) {
	env := NewEnvironment()
	assert.Equal(t, 1, env.Depth())
	assert.True(t, env.Lookup("x").IsUnbound())

	env.Define("x", Data(Number(1)))
	env.Push()
	assert.Equal(t, "1", env.Lookup("x").String())

	_, shadowed := env.Assign("x", Data(Number(2)))
	assert.False(t, shadowed)
	assert.Equal(t, "2", env.Lookup("x").String())

	old, ok := env.Assign("x", Data(Number(3)))
	assert.True(t, ok)
	assert.Equal(t, "2", old.String())

	// Define always targets the global layer.
	env.Define("y", Data(Number(4)))
	env.Pop()
	assert.Equal(t, "1", env.Lookup("x").String())
	assert.Equal(t, "4", env.Lookup("y").String())
	assert.Equal(t, []string{"x", "y"}, env.Globals())

	env.Pop()
	assert.Equal(t, 1, env.Depth(), "the global layer is never removed")
}

func TestEnvironmentShadowingAfterPop(t *testing.T) {
	env := NewEnvironment()
	env.Push()
	env.Assign("x", Data(Number(1)))
	env.Push()
	env.Push()
	env.Assign("x", Data(Number(3)))
	env.Assign("y", Data(Number(30)))
	assert.Equal(t, "3", env.Lookup("x").String())

	// a global defined while shadowed stays hidden until the locals go
	env.Define("x", Data(Number(0)))
	assert.Equal(t, "3", env.Lookup("x").String())

	env.Pop()
	assert.Equal(t, "1", env.Lookup("x").String())
	assert.True(t, env.Lookup("y").IsUnbound())

	env.Pop()
	assert.Equal(t, "1", env.Lookup("x").String())
	env.Pop()
	assert.Equal(t, "0", env.Lookup("x").String())

	env.Push()
	assert.Equal(t, "0", env.Lookup("x").String())
	env.Assign("x", Data(Number(5)))
	assert.Equal(t, "5", env.Lookup("x").String())
	env.truncate(1)
	assert.Equal(t, "0", env.Lookup("x").String())
	assert.Equal(t, []string{"x"}, env.Globals())
}

func TestEnvironmentDeepLookup(t *testing.T) {
	env := NewEnvironment()
	env.Define("f", Data(Number(7)))
	const depth = 200000
	for i := 0; i < depth; i++ {
		env.Push()
		env.Assign("n", Data(Number(int64(i))))
		if env.Lookup("f").IsUnbound() {
			t.Fatalf("global lost at depth %d", i)
		}
	}
	assert.Equal(t, "199999", env.Lookup("n").String())
	env.truncate(1)
	assert.True(t, env.Lookup("n").IsUnbound())
	assert.Empty(t, env.bound["n"])
}

func TestEnvironmentTruncate(t *testing.T) {
	env := NewEnvironment()
	env.Push()
	env.Push()
	env.Push()
	env.truncate(2)
	assert.Equal(t, 2, env.Depth())
	env.truncate(0)
	assert.Equal(t, 1, env.Depth())
}

func TestEnvItem(t *testing.T) {
	fn := Function("f", func(m *Machine) (EnvItem, error) { return Unbound(), nil }, Individual("a", "b"))
	assert.True(t, fn.IsFunction())
	assert.Equal(t, "#<function f>", fn.String())
	assert.Equal(t, 2, fn.Params.Arity())
	_, ok := fn.Item()
	assert.False(t, ok)

	vb := VariableBinding([]EnvItem{Data(Number(1)), Data(String("a"))})
	assert.Equal(t, `(1 "a")`, vb.String())
	item, ok := vb.Item()
	assert.True(t, ok)
	assert.Equal(t, `(1 "a")`, item.String())

	_, ok = VariableBinding([]EnvItem{fn}).Item()
	assert.False(t, ok)
	empty, ok := VariableBinding(nil).Item()
	assert.True(t, ok)
	assert.True(t, empty.IsNone())

	assert.Equal(t, "#<unbound>", Unbound().String())
	assert.Equal(t, -1, All("args").Arity())
	assert.Equal(t, "args", All("args").String())
	assert.Equal(t, "(a b)", Individual("a", "b").String())
}
