// Copyright © 2018 The ELPS authors

package lisp

import "fmt"

// OpCode identifies the action of an Instruction.
type OpCode uint

const (
	// OpEval evaluates Instruction.Expr, leaving one register value.
	OpEval OpCode = iota
	// OpEvalFunction evaluates Instruction.Expr in operator position.
	OpEvalFunction
	// OpEvalRegister removes register Instruction.Register and evaluates
	// the datum it holds.
	OpEvalRegister
	// OpCrashIfNotFunction fails unless the first register is a function.
	OpCrashIfNotFunction
	// OpCall invokes the first register with the remaining registers as
	// arguments.
	OpCall
	// OpReturn delivers Instruction.Value to the parent frame.
	OpReturn
	// OpReturnRegister delivers register Instruction.Register to the parent
	// frame.
	OpReturnRegister
	// OpCondEval evaluates Instruction.Expr if the last register is truthy.
	OpCondEval
	// OpElseEval evaluates Instruction.Expr if the preceding OpCondEval did
	// not.
	OpElseEval
	// OpApply calls Instruction.Value with the already evaluated
	// Instruction.Args in a new frame.
	OpApply
)

var opCodeStrings = []string{
	OpEval:               "eval",
	OpEvalFunction:       "eval-function",
	OpEvalRegister:       "eval-register",
	OpCrashIfNotFunction: "crash-if-not-function",
	OpCall:               "call",
	OpReturn:             "return",
	OpReturnRegister:     "return-register",
	OpCondEval:           "cond-eval",
	OpElseEval:           "else-eval",
	OpApply:              "apply",
}

func (op OpCode) String() string {
	if int(op) >= len(opCodeStrings) {
		return "INVALID"
	}
	return opCodeStrings[op]
}

// Instruction is a unit of work queued in a StackFrame.  Only the fields
// relevant to Op are set.
type Instruction struct {
	Op       OpCode
	Expr     Item
	Value    EnvItem
	Register int
	Args     []EnvItem
}

func (in Instruction) String() string {
	switch in.Op {
	case OpEval, OpEvalFunction, OpCondEval, OpElseEval:
		return fmt.Sprintf("%s %s", in.Op, in.Expr)
	case OpEvalRegister, OpReturnRegister:
		return fmt.Sprintf("%s %d", in.Op, in.Register)
	case OpReturn:
		return fmt.Sprintf("%s %s", in.Op, in.Value)
	case OpApply:
		return fmt.Sprintf("%s %s [%d args]", in.Op, in.Value, len(in.Args))
	default:
		return in.Op.String()
	}
}

func evalInstr(expr Item) Instruction {
	return Instruction{Op: OpEval, Expr: expr}
}

func evalFunctionInstr(expr Item) Instruction {
	return Instruction{Op: OpEvalFunction, Expr: expr}
}

func evalRegisterInstr(idx int) Instruction {
	return Instruction{Op: OpEvalRegister, Register: idx}
}

func returnInstr(v EnvItem) Instruction {
	return Instruction{Op: OpReturn, Value: v}
}

func returnRegisterInstr(idx int) Instruction {
	return Instruction{Op: OpReturnRegister, Register: idx}
}

func condEvalInstr(expr Item) Instruction {
	return Instruction{Op: OpCondEval, Expr: expr}
}

func elseEvalInstr(expr Item) Instruction {
	return Instruction{Op: OpElseEval, Expr: expr}
}

func applyInstr(fn EnvItem, args []EnvItem) Instruction {
	return Instruction{Op: OpApply, Value: fn, Args: args}
}

var (
	crashIfNotFunctionInstr = Instruction{Op: OpCrashIfNotFunction}
	callInstr               = Instruction{Op: OpCall}
)
