// Copyright © 2018 The ELPS authors

package lisp

// Special forms are recognized by the name in operator position and control
// the evaluation of their own arguments.  Each expansion runs after the
// form's frame has been pushed and returns the number of leading list
// elements it consumed; the remaining elements are evaluated as ordinary
// arguments.
func isSpecialForm(name string) bool {
	switch name {
	case "def", "define", "quote", "if", "eval", "lambda":
		return true
	}
	return false
}

var (
	quoteFn = Function("quote", builtinQuote, Individual("value"))
	defFn   = Function("def", builtinDef, Individual("name", "value"))
)

func builtinQuote(m *Machine) (EnvItem, error) {
	return m.Lookup("value")
}

func builtinDef(m *Machine) (EnvItem, error) {
	name, err := m.Lookup("name")
	if err != nil {
		return Unbound(), err
	}
	value, err := m.Lookup("value")
	if err != nil {
		return Unbound(), err
	}
	if name.Type != EData || name.Data.Type != IName {
		return Unbound(), ErrorConditionf(CondMalformedForm, "%s is not a name", name)
	}
	if value.IsFunction() && value.Name == "lambda" {
		value.Name = name.Data.Str
	}
	m.Define(name.Data.Str, value)
	return value, nil
}

func (m *Machine) expandSpecial(name string, list *Cons) (int, error) {
	switch name {
	case "def", "define":
		target, err := list.Cadr()
		if err != nil {
			return 0, m.decorate(err.(*Error))
		}
		m.pushRegister(defFn)
		m.pushRegister(Data(target))
		return 2, nil
	case "quote":
		if list.Len() != 2 {
			return 0, m.fail(CondMalformedForm, "quote: expected 1 argument, found %d", list.Len()-1)
		}
		m.pushRegister(quoteFn)
		m.pushRegister(Data(list.cells[1]))
		return 2, nil
	case "if":
		if list.Len() != 4 {
			return 0, m.fail(CondMalformedForm,
				"if: expected a test, a consequent, and an alternative, found %d arguments", list.Len()-1)
		}
		m.pushRegister(quoteFn)
		m.pushInstruction(evalInstr(list.cells[1]))
		m.pushInstruction(condEvalInstr(list.cells[2]))
		m.pushInstruction(elseEvalInstr(list.cells[3]))
		return 4, nil
	case "eval":
		if list.Len() != 2 {
			return 0, m.fail(CondMalformedForm, "eval: expected 1 argument, found %d", list.Len()-1)
		}
		m.pushRegister(quoteFn)
		m.pushInstruction(evalRegisterInstr(1))
		m.pushInstruction(callInstr)
		if err := m.pushFrame("eval", list.Car().Source); err != nil {
			return 0, err
		}
		m.pushRegister(quoteFn)
		return 1, nil
	case "lambda":
		if list.Len() < 3 {
			return 0, m.fail(CondMalformedForm, "lambda: expected a parameter list and a body")
		}
		params, err := lambdaParameters(list.cells[1])
		if err != nil {
			return 0, m.decorate(err)
		}
		m.pushInstruction(returnInstr(lambda(params, list.elements(2))))
		return list.Len(), nil
	default:
		return 0, m.fail(CondInternal, "unknown special form: %s", name)
	}
}

// lambdaParameters interprets the parameter list of a lambda.  A bare name
// binds all arguments as a list; a list of names binds them individually.
func lambdaParameters(item Item) (Parameters, *Error) {
	switch item.Type {
	case IName:
		return All(item.Str), nil
	case INone:
		return Individual(), nil
	case ICons:
		if !item.Cons.IsProper() {
			return Parameters{}, ErrorConditionf(CondMalformedForm, "lambda: improper parameter list: %s", item)
		}
		names := make([]string, 0, item.Cons.Len())
		for _, p := range item.Cons.Items() {
			if p.Type != IName {
				return Parameters{}, ErrorConditionf(CondMalformedForm, "lambda: parameter is not a name: %s", p)
			}
			names = append(names, p.Str)
		}
		return Individual(names...), nil
	default:
		return Parameters{}, ErrorConditionf(CondMalformedForm, "lambda: invalid parameter list: %s", item)
	}
}

// lambda returns a function which evaluates body in the frame that calls it
// and returns the value of the last expression.
func lambda(params Parameters, body []Item) EnvItem {
	return Function("lambda", func(m *Machine) (EnvItem, error) {
		f := m.stack[m.active]
		for _, expr := range body {
			f.pushInstruction(evalInstr(expr))
		}
		f.pushInstruction(returnRegisterInstr(len(body) - 1))
		return Unbound(), nil
	}, params)
}
