package interp

import (
	"fmt"

	loxerrors "github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/token"
	"github.com/dolthub/swiss"
)

// Environment is a single lexical scope: a name-to-value table plus an
// optional link to the scope it nests inside. The global environment has
// no enclosing link. Environments are shared by reference, never copied
// - a closure holds a pointer to the exact Environment it captured, and
// mutations through one alias are visible through every other, which is
// what makes captured variables mutable from outside their original
// scope.
type Environment struct {
	enclosing *Environment
	values    *swiss.Map[string, any]
}

// NewEnvironment creates a top-level (global) environment.
func NewEnvironment() *Environment {
	return &Environment{values: swiss.NewMap[string, any](8)}
}

// NewChildEnvironment creates an environment nested inside enclosing,
// used both for block scopes and for function call activations.
func NewChildEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: swiss.NewMap[string, any](8)}
}

// Define unconditionally binds name to value in this environment,
// rebinding it if already present. This is also how global redeclaration
// is allowed to succeed: the resolver only rejects duplicate *local*
// declarations, so a second top-level `var x` just reaches this method
// again.
func (e *Environment) Define(name string, value any) {
	e.values.Put(name, value)
}

// Get reads name, searching this environment then its ancestors.
func (e *Environment) Get(name token.Token) (any, error) {
	if value, ok := e.values.Get(name.Lexeme); ok {
		return value, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, loxerrors.NewRuntimeError(name, fmt.Sprintf("Undefined variable '%s'.", name.Lexeme))
}

// Assign overwrites an existing binding for name, searching this
// environment then its ancestors. Unlike Define, it fails if the name
// was never declared anywhere in the chain.
func (e *Environment) Assign(name token.Token, value any) error {
	if _, ok := e.values.Get(name.Lexeme); ok {
		e.values.Put(name.Lexeme, value)
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return loxerrors.NewRuntimeError(name, fmt.Sprintf("Undefined variable '%s'.", name.Lexeme))
}

// ancestor walks exactly distance enclosing links up from e.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads name from the environment exactly distance links up, with
// no further searching - the resolver has already proven the binding
// lives there.
func (e *Environment) GetAt(distance int, name string) any {
	value, _ := e.ancestor(distance).values.Get(name)
	return value
}

// AssignAt writes name in the environment exactly distance links up.
func (e *Environment) AssignAt(distance int, name token.Token, value any) {
	e.ancestor(distance).values.Put(name.Lexeme, value)
}
