// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
	"io"

	"github.com/luthersystems/minilisp/parser/token"
)

// StackFrame is one level of the Machine's explicit evaluation stack.  A
// frame owns a register deque of evaluated values and a FIFO queue of
// pending instructions.  When the frame returns, its result is written to
// register ReturnRegister of the frame at index ReturnFrame.
type StackFrame struct {
	Registers        []EnvItem
	Instructions     []Instruction
	ReturnFrame      int
	ReturnRegister   int
	ConditionSuccess bool

	// Name is the operator text of the form that created the frame.
	Name string
	// Source is the location of the form that created the frame.
	Source *token.Location
	// Callee is the function invoked in the frame once OpCall has executed.
	Callee EnvItem
}

func (f *StackFrame) pushRegister(v EnvItem) {
	f.Registers = append(f.Registers, v)
}

func (f *StackFrame) popRegisterFront() (EnvItem, bool) {
	if len(f.Registers) == 0 {
		return Unbound(), false
	}
	v := f.Registers[0]
	f.Registers = f.Registers[1:]
	return v, true
}

func (f *StackFrame) popRegisterBack() (EnvItem, bool) {
	n := len(f.Registers)
	if n == 0 {
		return Unbound(), false
	}
	v := f.Registers[n-1]
	f.Registers = f.Registers[:n-1]
	return v, true
}

// removeRegister removes register idx, shifting later registers down.
func (f *StackFrame) removeRegister(idx int) (EnvItem, bool) {
	if idx < 0 || idx >= len(f.Registers) {
		return Unbound(), false
	}
	v := f.Registers[idx]
	f.Registers = append(f.Registers[:idx:idx], f.Registers[idx+1:]...)
	return v, true
}

func (f *StackFrame) pushInstruction(in Instruction) {
	f.Instructions = append(f.Instructions, in)
}

func (f *StackFrame) popInstruction() (Instruction, bool) {
	if len(f.Instructions) == 0 {
		return Instruction{}, false
	}
	in := f.Instructions[0]
	f.Instructions = f.Instructions[1:]
	return in, true
}

// endsWithReturn reports whether the last queued instruction returns from
// the frame.
func (f *StackFrame) endsWithReturn() bool {
	n := len(f.Instructions)
	if n == 0 {
		return false
	}
	op := f.Instructions[n-1].Op
	return op == OpReturn || op == OpReturnRegister
}

// pendingRegisters counts queued instructions which will each leave one
// value in the register deque.
func (f *StackFrame) pendingRegisters() int {
	var n int
	for _, in := range f.Instructions {
		switch in.Op {
		case OpEval, OpApply:
			n++
		}
	}
	return n
}

func (f *StackFrame) displayName() string {
	switch {
	case f.Callee.IsFunction():
		return f.Callee.Name
	case f.Name != "":
		return f.Name
	default:
		return "<anonymous>"
	}
}

// CallFrame is a snapshot of one StackFrame attached to an Error.
type CallFrame struct {
	Name   string
	Source *token.Location
}

func (f CallFrame) String() string {
	if f.Source != nil {
		return fmt.Sprintf("%s: %s", f.Source, f.Name)
	}
	return f.Name
}

// CallStack is a snapshot of the Machine stack, entrypoint first.
type CallStack []CallFrame

// Top returns the innermost frame or nil for an empty stack.
func (s CallStack) Top() *CallFrame {
	if len(s) == 0 {
		return nil
	}
	return &s[len(s)-1]
}

// DebugPrint prints s
func (s CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s) - 1; i >= 0; i-- {
		_n, err := fmt.Fprintf(w, "%sheight %d: %s\n", indent, i, s[i])
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
