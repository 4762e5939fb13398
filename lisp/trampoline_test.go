// Copyright © 2018 The ELPS authors

package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMachine(t *testing.T) *Machine {
	t.Helper()
	m, err := NewMachine()
	require.NoError(t, err)
	add := Function("+", func(m *Machine) (EnvItem, error) {
		args, err := m.Lookup("args")
		if err != nil {
			return Unbound(), err
		}
		var sum int64
		for _, arg := range args.Binding {
			sum += arg.Data.Num
		}
		return Data(Number(sum)), nil
	}, All("args"))
	m.Define("+", add)
	m.Define("tail+", Function("tail+", func(m *Machine) (EnvItem, error) {
		args, err := m.Lookup("args")
		if err != nil {
			return Unbound(), err
		}
		return Unbound(), m.TailCall(add, args.Binding...)
	}, All("args")))
	return m
}

func TestFrameRegisters(t *testing.T) {
	f := &StackFrame{}
	f.pushRegister(Data(Number(1)))
	f.pushRegister(Data(Number(2)))
	f.pushRegister(Data(Number(3)))

	v, ok := f.removeRegister(1)
	require.True(t, ok)
	assert.Equal(t, "2", v.String())
	assert.Len(t, f.Registers, 2)

	v, ok = f.popRegisterBack()
	require.True(t, ok)
	assert.Equal(t, "3", v.String())
	v, ok = f.popRegisterFront()
	require.True(t, ok)
	assert.Equal(t, "1", v.String())
	_, ok = f.popRegisterFront()
	assert.False(t, ok)
	_, ok = f.removeRegister(0)
	assert.False(t, ok)
}

func TestFrameInstructions(t *testing.T) {
	f := &StackFrame{}
	assert.False(t, f.endsWithReturn())
	f.pushInstruction(evalInstr(Number(1)))
	f.pushInstruction(applyInstr(Unbound(), nil))
	f.pushInstruction(callInstr)
	assert.Equal(t, 2, f.pendingRegisters())
	assert.False(t, f.endsWithReturn())
	f.pushInstruction(returnRegisterInstr(0))
	assert.True(t, f.endsWithReturn())

	in, ok := f.popInstruction()
	require.True(t, ok)
	assert.Equal(t, OpEval, in.Op)
	assert.Equal(t, "eval 1", in.String())
}

func TestTailCallSlot(t *testing.T) {
	m := testMachine(t)
	v, err := m.Eval(List(Name("tail+"), Number(1), Number(2)))
	require.NoError(t, err)
	assert.Equal(t, "3", v.String())

	// The tail call result is delivered to the caller's register.
	v, err = m.Eval(List(Name("+"), Number(10), List(Name("tail+"), Number(1), Number(2)), Number(100)))
	require.NoError(t, err)
	assert.Equal(t, "113", v.String())
	assert.Nil(t, m.stack)
}

func TestDeepRecursionWithoutGoStack(t *testing.T) {
	m := testMachine(t)
	// (+ 1 (+ 1 (+ 1 ... 0)))
	expr := Number(0)
	for i := 0; i < 100000; i++ {
		expr = List(Name("+"), Number(1), expr)
	}
	v, err := m.Eval(expr)
	require.NoError(t, err)
	assert.Equal(t, "100000", v.String())
	assert.Equal(t, 1, m.env.Depth())
}

func TestStepResetsBetweenRuns(t *testing.T) {
	m := testMachine(t)
	m.budget = 50
	for i := 0; i < 3; i++ {
		_, err := m.Eval(List(Name("+"), Number(1), Number(2)))
		require.NoError(t, err)
		assert.Equal(t, 0, m.steps)
	}
}
