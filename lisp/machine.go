// Copyright © 2018 The ELPS authors

package lisp

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/luthersystems/minilisp/parser/token"
	"github.com/sirupsen/logrus"
)

// Machine evaluates Items using an explicit stack of frames rather than the
// Go call stack.  Every step of evaluation is an Instruction queued in a
// StackFrame, so recursion depth in lisp code never grows the Go stack.
//
// A Machine is not safe for concurrent use.
type Machine struct {
	env    *Environment
	stack  []*StackFrame
	active int // index of the frame whose native function is executing
	loc    *token.Location

	// stacks suspended by a native function that re-entered the machine
	suspended [][]*StackFrame
	height    int // total frames held in suspended

	log       *logrus.Entry
	profiler  Profiler
	reader    Reader
	stderr    io.Writer
	ctx       context.Context
	maxHeight int
	budget    int
	steps     int
	loaders   []Loader
}

// NewMachine returns a Machine with an empty global environment configured
// by config.  Libraries given with WithLibrary are loaded last.
func NewMachine(config ...Config) (*Machine, error) {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	m := &Machine{
		env:    NewEnvironment(),
		active: -1,
		log:    discard.WithField("component", "machine"),
		stderr: os.Stderr,
		ctx:    context.Background(),
	}
	for _, fn := range config {
		if err := fn(m); err != nil {
			return nil, err
		}
	}
	loaders := m.loaders
	m.loaders = nil
	for _, fn := range loaders {
		if err := fn(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Environment returns the machine's bindings.
func (m *Machine) Environment() *Environment {
	return m.env
}

// Stderr returns the writer used for debugging output.
func (m *Machine) Stderr() io.Writer {
	return m.stderr
}

// Logger returns the machine's structured logger.
func (m *Machine) Logger() *logrus.Entry {
	return m.log
}

// Lookup returns the innermost binding of name.  An unbound name is an
// error.
func (m *Machine) Lookup(name string) (EnvItem, error) {
	v := m.env.Lookup(name)
	if v.IsUnbound() {
		return v, ErrorConditionf(CondUnboundSymbol, "unbound symbol: %s", name)
	}
	return v, nil
}

// Define binds name globally.
func (m *Machine) Define(name string, v EnvItem) {
	m.env.Define(name, v)
}

// Assign binds name in the innermost environment layer.
func (m *Machine) Assign(name string, v EnvItem) {
	m.env.Assign(name, v)
}

// Eval evaluates item and returns its value.  Eval may be called from
// within a native function, in which case the current evaluation is
// suspended until item has been evaluated.  Bindings made by earlier calls
// remain visible.
func (m *Machine) Eval(item Item) (EnvItem, error) {
	return m.run(evalInstr(item))
}

// Call invokes fn with args, which have already been evaluated.  Like Eval,
// Call may be made from within a native function.
func (m *Machine) Call(fn EnvItem, args ...EnvItem) (EnvItem, error) {
	if !fn.IsFunction() {
		return Unbound(), m.fail(CondNotAFunction, "%s is not a function", fn)
	}
	return m.run(applyInstr(fn, args))
}

// TailCall schedules fn to be called with args in place of the currently
// executing native function.  The native's own return value is ignored and
// the result of fn is returned to its caller instead.  TailCall does not
// grow the Go stack.
func (m *Machine) TailCall(fn EnvItem, args ...EnvItem) error {
	if m.active < 0 {
		return ErrorConditionf(CondInternal, "tail call made outside of a native function")
	}
	if !fn.IsFunction() {
		return ErrorConditionf(CondNotAFunction, "%s is not a function", fn)
	}
	f := m.stack[m.active]
	if f.endsWithReturn() {
		return ErrorConditionf(CondInternal, "a return is already scheduled")
	}
	slot := len(f.Registers) + f.pendingRegisters()
	f.pushInstruction(applyInstr(fn, args))
	f.pushInstruction(returnRegisterInstr(slot))
	return nil
}

// DebugStack writes the current stack to w.
func (m *Machine) DebugStack(w io.Writer) error {
	_, err := m.snapshot().DebugPrint(w)
	return err
}

func (m *Machine) run(seed Instruction) (result EnvItem, err error) {
	outer := m.stack
	outerActive := m.active
	nested := outer != nil
	depth := m.env.Depth()
	if nested {
		m.suspended = append(m.suspended, outer)
		m.height += len(outer)
	} else {
		m.loc = nil
	}
	base := &StackFrame{ReturnFrame: -1, ReturnRegister: -1}
	base.pushInstruction(seed)
	m.stack = []*StackFrame{base}
	m.active = -1
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*invariantError)
			if !ok {
				panic(r)
			}
			result, err = Unbound(), m.fail(CondInternal, "%s", ie.msg)
		}
		if err != nil {
			var lerr *Error
			if errors.As(err, &lerr) {
				m.log.WithField("condition", lerr.Condition).Debug(lerr.Message)
			}
			m.unwind()
		}
		m.env.truncate(depth)
		m.stack = outer
		m.active = outerActive
		if nested {
			m.suspended = m.suspended[:len(m.suspended)-1]
			m.height -= len(outer)
		} else {
			m.steps = 0
		}
	}()
	for len(base.Instructions) > 0 || len(m.stack) > 1 {
		if err := m.step(); err != nil {
			return Unbound(), err
		}
	}
	if len(base.Registers) != 1 {
		return Unbound(), m.fail(CondInternal,
			"incorrect number of values returned: expected 1, found %d", len(base.Registers))
	}
	return base.Registers[0], nil
}

func (m *Machine) step() error {
	if m.budget > 0 {
		m.steps++
		if m.steps > m.budget {
			return m.fail(CondInstructionBudget, "instruction budget of %d exhausted", m.budget)
		}
	}
	if err := m.ctx.Err(); err != nil {
		lerr := m.fail(CondContextCancelled, "evaluation stopped: %v", err)
		lerr.Err = err
		return lerr
	}
	f := m.top()
	in, ok := f.popInstruction()
	if !ok {
		return m.fail(CondInternal, "frame %d has no instructions remaining", len(m.stack)-1)
	}
	if m.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		m.log.WithFields(logrus.Fields{
			"instr":     in.String(),
			"depth":     len(m.stack),
			"registers": len(f.Registers),
		}).Trace("dispatch")
	}
	switch in.Op {
	case OpEval:
		return m.evalItem(in.Expr)
	case OpEvalFunction:
		return m.evalFunction(in.Expr)
	case OpEvalRegister:
		return m.evalRegister(in.Register)
	case OpCrashIfNotFunction:
		return m.crashIfNotFunction()
	case OpCall:
		return m.callFunction()
	case OpReturn:
		return m.returnValue(in.Value)
	case OpReturnRegister:
		return m.returnRegister(in.Register)
	case OpCondEval:
		return m.condEval(in.Expr)
	case OpElseEval:
		if !f.ConditionSuccess {
			return m.evalItem(in.Expr)
		}
		return nil
	case OpApply:
		return m.apply(in.Value, in.Args)
	default:
		return m.fail(CondInternal, "unknown instruction: %v", in.Op)
	}
}

func (m *Machine) top() *StackFrame {
	return m.stack[len(m.stack)-1]
}

func (m *Machine) pushInstruction(in Instruction) {
	m.top().pushInstruction(in)
}

func (m *Machine) pushRegister(v EnvItem) {
	m.top().pushRegister(v)
}

// pushFrame reserves a register in the current frame for the result of a
// new frame and pushes the new frame along with a fresh environment layer.
func (m *Machine) pushFrame(name string, src *token.Location) error {
	if m.maxHeight > 0 && m.height+len(m.stack) >= m.maxHeight {
		return m.fail(CondStackOverflow, "stack height exceeded maximum: %d", m.maxHeight)
	}
	parent := m.top()
	rp := len(parent.Registers)
	parent.pushRegister(Unbound())
	m.stack = append(m.stack, &StackFrame{
		ReturnFrame:    len(m.stack) - 1,
		ReturnRegister: rp,
		Name:           name,
		Source:         src,
	})
	m.env.Push()
	return nil
}

func (m *Machine) popFrame() {
	f := m.top()
	m.stack[len(m.stack)-1] = nil
	m.stack = m.stack[:len(m.stack)-1]
	m.env.Pop()
	if f.Callee.IsFunction() && m.profiling() {
		m.profiler.End(f.Callee)
	}
}

// unwind discards every frame above the base frame.
func (m *Machine) unwind() {
	for len(m.stack) > 1 {
		m.popFrame()
	}
}

func (m *Machine) profiling() bool {
	return m.profiler != nil && m.profiler.IsEnabled()
}

func (m *Machine) evalItem(item Item) error {
	if item.Source != nil {
		m.loc = item.Source
	}
	switch item.Type {
	case ICons:
		return m.evalList(item)
	case IName:
		v := m.env.Lookup(item.Str)
		if v.IsUnbound() {
			return m.fail(CondUnboundSymbol, "unbound symbol: %s", item.Str)
		}
		m.pushRegister(v)
		return nil
	default:
		m.pushRegister(Data(item))
		return nil
	}
}

func (m *Machine) evalList(item Item) error {
	list := item.Cons
	if !list.IsProper() {
		return m.fail(CondMalformedForm, "cannot evaluate improper list: %s", item)
	}
	car := list.Car()
	var name string
	if car.Type == IName {
		name = car.Str
	}
	if err := m.pushFrame(name, item.Source); err != nil {
		return err
	}
	skip := 1
	if isSpecialForm(name) {
		n, err := m.expandSpecial(name, list)
		if err != nil {
			return err
		}
		skip = n
	} else {
		m.pushInstruction(evalFunctionInstr(car))
	}
	m.pushInstruction(crashIfNotFunctionInstr)
	for _, arg := range list.elements(skip) {
		m.pushInstruction(evalInstr(arg))
	}
	m.pushInstruction(callInstr)
	return nil
}

func (m *Machine) evalFunction(expr Item) error {
	switch expr.Type {
	case ICons:
		return m.evalList(expr)
	case IName:
		if expr.Source != nil {
			m.loc = expr.Source
		}
		v := m.env.Lookup(expr.Str)
		switch v.Type {
		case EFunction:
			m.pushRegister(v)
			return nil
		case EUnbound:
			return m.fail(CondUnboundSymbol, "unbound symbol: %s", expr.Str)
		default:
			return m.fail(CondNotAFunction, "%s is bound to %s which is not a function", expr.Str, v)
		}
	default:
		return m.fail(CondNotAFunction, "%s is not a function", expr)
	}
}

func (m *Machine) evalRegister(idx int) error {
	v, ok := m.top().removeRegister(idx)
	if !ok {
		return m.fail(CondInternal, "no value in register %d", idx)
	}
	item, ok := v.Item()
	if !ok {
		return m.fail(CondMalformedForm, "cannot evaluate %s", v)
	}
	return m.evalItem(item)
}

func (m *Machine) crashIfNotFunction() error {
	f := m.top()
	if len(f.Registers) == 0 {
		return m.fail(CondInternal, "no function in register 0")
	}
	if !f.Registers[0].IsFunction() {
		return m.fail(CondNotAFunction, "%s is not a function", f.Registers[0])
	}
	return nil
}

func (m *Machine) callFunction() error {
	f := m.top()
	idx := len(m.stack) - 1
	fn, _ := f.popRegisterFront()
	if !fn.IsFunction() {
		return m.fail(CondNotAFunction, "%s is not a function", fn)
	}
	args := f.Registers
	f.Registers = nil
	if err := m.bind(fn, args); err != nil {
		return err
	}
	if f.Source != nil {
		m.loc = f.Source
	}
	f.Callee = fn
	if m.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		m.log.WithFields(logrus.Fields{
			"fn":   fn.Name,
			"argc": len(args),
		}).Debug("call")
	}
	if m.profiling() {
		m.profiler.Start(fn)
	}
	prev := m.active
	m.active = idx
	out, err := fn.Fn(m)
	m.active = prev
	if err != nil {
		return m.nativeError(fn, err)
	}
	if !f.endsWithReturn() {
		f.pushInstruction(returnInstr(out))
	}
	return nil
}

// bind assigns args to the parameters of fn in the innermost environment
// layer, which belongs to the calling frame.
func (m *Machine) bind(fn EnvItem, args []EnvItem) error {
	p := fn.Params
	if p.IsVariadic() {
		m.env.Assign(p.names[0], VariableBinding(args))
		return nil
	}
	if len(args) != len(p.names) {
		return m.fail(CondArityMismatch, "%s: wrong number of arguments: expected %d, found %d",
			fn.Name, len(p.names), len(args))
	}
	for i, name := range p.names {
		m.env.Assign(name, args[i])
	}
	return nil
}

func (m *Machine) returnValue(v EnvItem) error {
	if len(m.stack) < 2 {
		return m.fail(CondInternal, "return from the base frame")
	}
	f := m.top()
	parent := m.stack[f.ReturnFrame]
	if f.ReturnRegister < 0 || f.ReturnRegister >= len(parent.Registers) {
		return m.fail(CondInternal, "invalid return register %d", f.ReturnRegister)
	}
	parent.Registers[f.ReturnRegister] = v
	m.popFrame()
	return nil
}

func (m *Machine) returnRegister(idx int) error {
	v, ok := m.top().removeRegister(idx)
	if !ok {
		return m.fail(CondInternal, "no value in register %d", idx)
	}
	return m.returnValue(v)
}

func (m *Machine) condEval(expr Item) error {
	f := m.top()
	v, _ := f.popRegisterBack()
	test, ok := v.Item()
	if !ok {
		return m.fail(CondConditionType, "test of the conditional cannot be converted to a bool: %s", v)
	}
	if test.Truthy() {
		f.ConditionSuccess = true
		return m.evalItem(expr)
	}
	return nil
}

func (m *Machine) apply(fn EnvItem, args []EnvItem) error {
	if err := m.pushFrame(fn.Name, nil); err != nil {
		return err
	}
	f := m.top()
	f.pushRegister(fn)
	f.Registers = append(f.Registers, args...)
	f.pushInstruction(crashIfNotFunctionInstr)
	f.pushInstruction(callInstr)
	return nil
}

func (m *Machine) nativeError(fn EnvItem, err error) error {
	if lerr, ok := err.(*Error); ok {
		if lerr.Stack == nil && lerr.Source == nil {
			// raised by fn itself rather than by a nested evaluation
			lerr.Message = fn.Name + ": " + lerr.Message
		}
		return m.decorate(lerr)
	}
	lerr := ErrorConditionf(CondNativeError, "%s: %v", fn.Name, err)
	lerr.Err = err
	return m.decorate(lerr)
}

func (m *Machine) fail(condition string, format string, v ...interface{}) *Error {
	return m.decorate(ErrorConditionf(condition, format, v...))
}

func (m *Machine) decorate(err *Error) *Error {
	if err.Source == nil {
		err.Source = m.loc
	}
	if err.Stack == nil {
		err.Stack = m.snapshot()
	}
	return err
}

// snapshot copies the frames of all active stacks, entrypoint first.  Base
// frames are omitted.
func (m *Machine) snapshot() CallStack {
	stack := CallStack{}
	add := func(frames []*StackFrame) {
		for _, f := range frames {
			if f.ReturnFrame < 0 {
				continue
			}
			stack = append(stack, CallFrame{Name: f.displayName(), Source: f.Source})
		}
	}
	for _, frames := range m.suspended {
		add(frames)
	}
	add(m.stack)
	return stack
}
