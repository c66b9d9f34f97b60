package interp

import (
	"math"

	"github.com/cwbudde/golox/internal/ast"
	loxerrors "github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/token"
)

// evalBinary evaluates both operands left-to-right then applies the
// operator. `==`/`!=` accept any operand types; `+` takes two numbers or
// two strings; every other operator takes two numbers.
func (i *Interpreter) evalBinary(e *ast.Binary) (any, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.EQUAL_EQUAL:
		return isEqual(left, right), nil
	case token.BANG_EQUAL:
		return !isEqual(left, right), nil

	case token.PLUS:
		return evalAdd(e.Op, left, right)

	case token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL:
		ln, lok := left.(float64)
		rn, rok := right.(float64)
		if !lok || !rok {
			return nil, loxerrors.NewRuntimeError(e.Op, "All operands must be numbers.")
		}
		return evalNumeric(e.Op, ln, rn)
	}

	return nil, loxerrors.NewRuntimeError(e.Op, "Unknown binary operator.")
}

func evalAdd(op token.Token, left, right any) (any, error) {
	if ln, ok := left.(float64); ok {
		if rn, ok := right.(float64); ok {
			return ln + rn, nil
		}
	}
	if ls, ok := left.(string); ok {
		if rs, ok := right.(string); ok {
			return ls + rs, nil
		}
	}
	return nil, loxerrors.NewRuntimeError(op, "Operands must be two numbers or two strings.")
}

func evalNumeric(op token.Token, left, right float64) (any, error) {
	switch op.Type {
	case token.MINUS:
		return left - right, nil
	case token.STAR:
		return left * right, nil
	case token.SLASH:
		if right == 0 {
			return nil, loxerrors.NewRuntimeError(op, "Attempted to divide by zero.")
		}
		return left / right, nil
	case token.PERCENT:
		if right == 0 {
			return nil, loxerrors.NewRuntimeError(op, "Attempted to divide by zero.")
		}
		return math.Mod(left, right), nil
	case token.LESS:
		return left < right, nil
	case token.LESS_EQUAL:
		return left <= right, nil
	case token.GREATER:
		return left > right, nil
	case token.GREATER_EQUAL:
		return left >= right, nil
	}
	return nil, loxerrors.NewRuntimeError(op, "Unknown numeric operator.")
}

