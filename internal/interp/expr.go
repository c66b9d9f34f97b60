package interp

import (
	"fmt"

	"github.com/cwbudde/golox/internal/ast"
	loxerrors "github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/token"
)

func (i *Interpreter) evaluate(expr ast.Expr) (any, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Grouping:
		return i.evaluate(e.Inner)

	case *ast.Variable:
		return i.lookupVariable(e.Name, e)

	case *ast.Assign:
		value, err := i.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := i.locals[e]; ok {
			i.env.AssignAt(distance, e.Name, value)
		} else if err := i.globals.Assign(e.Name, value); err != nil {
			return nil, err
		}
		return value, nil

	case *ast.Unary:
		return i.evalUnary(e)

	case *ast.Binary:
		return i.evalBinary(e)

	case *ast.Logical:
		return i.evalLogical(e)

	case *ast.Ternary:
		cond, err := i.evaluate(e.Cond)
		if err != nil {
			return nil, err
		}
		if isTruthy(cond) {
			return i.evaluate(e.Then)
		}
		return i.evaluate(e.Else)

	case *ast.Call:
		return i.evalCall(e)

	case *ast.Get:
		object, err := i.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := object.(*Instance)
		if !ok {
			return nil, loxerrors.NewRuntimeError(e.Name, "Only instances have properties.")
		}
		return inst.Get(e.Name)

	case *ast.Set:
		object, err := i.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := object.(*Instance)
		if !ok {
			return nil, loxerrors.NewRuntimeError(e.Name, "Only instances have fields.")
		}
		value, err := i.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		inst.Set(e.Name, value)
		return value, nil

	case *ast.This:
		return i.lookupVariable(e.Keyword, e)

	case *ast.Super:
		return i.evalSuper(e)

	default:
		return nil, fmt.Errorf("interp: unhandled expression type %T", expr)
	}
}

func (i *Interpreter) evalUnary(e *ast.Unary) (any, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.MINUS:
		n, ok := right.(float64)
		if !ok {
			return nil, loxerrors.NewRuntimeError(e.Op, "Operand must be a number.")
		}
		return -n, nil
	case token.BANG:
		return !isTruthy(right), nil
	}
	return nil, loxerrors.NewRuntimeError(e.Op, "Unknown unary operator.")
}

func (i *Interpreter) evalLogical(e *ast.Logical) (any, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Op.Type == token.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}

	return i.evaluate(e.Right)
}

func (i *Interpreter) evalCall(e *ast.Call) (any, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]any, len(e.Args))
	for idx, arg := range e.Args {
		v, err := i.evaluate(arg)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, loxerrors.NewRuntimeError(e.Paren, "Can only call functions and classes.")
	}

	if len(args) != callable.Arity() {
		return nil, loxerrors.NewRuntimeError(e.Paren, fmt.Sprintf("Expect %d arguments, but got %d.", callable.Arity(), len(args)))
	}

	return callable.Call(i, args)
}

// evalSuper reads the superclass bound at `super`'s recorded distance
// and the instance bound one scope inward, at distance-1 - the layout
// the class-declaration evaluation (and the resolver's matching scope
// push order) guarantees.
func (i *Interpreter) evalSuper(e *ast.Super) (any, error) {
	distance := i.locals[e]
	superAny := i.env.GetAt(distance, "super")
	superclass, ok := superAny.(*Class)
	if !ok {
		return nil, loxerrors.NewRuntimeError(e.Keyword, "Superclass binding is not a class.")
	}

	instAny := i.env.GetAt(distance-1, "this")
	instance, ok := instAny.(*Instance)
	if !ok {
		return nil, loxerrors.NewRuntimeError(e.Keyword, "'this' binding is not an instance.")
	}

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, loxerrors.NewRuntimeError(e.Method, fmt.Sprintf("Undefined property '%s'.", e.Method.Lexeme))
	}
	return method.bind(instance), nil
}
