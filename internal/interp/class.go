package interp

import (
	"fmt"

	loxerrors "github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/token"
	"github.com/dolthub/swiss"
)

// Class is a runtime class value: its name, optional superclass, and its
// own methods (inherited methods are found by walking Superclass, not
// copied in).
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

// NewClass builds a class value with the given method table.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

// FindMethod looks up name on this class, then its superclass chain.
func (c *Class) FindMethod(name string) *Function {
	if fn, ok := c.Methods[name]; ok {
		return fn
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity is the arity of `init`, declared on the class or inherited, or 0
// if there is none (calling a class with no initializer takes no
// arguments).
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a fresh instance and, if the class declares or inherits
// `init`, runs it bound to that instance before returning it.
func (c *Class) Call(i *Interpreter, args []any) (any, error) {
	instance := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.bind(instance).Call(i, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a runtime object: a reference to its class and its own
// mutable field table. Fields shadow methods of the same name.
type Instance struct {
	class  *Class
	fields *swiss.Map[string, any]
}

// NewInstance constructs a fresh, field-less instance of class.
func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: swiss.NewMap[string, any](4)}
}

// Get reads a property: a field first, then a method bound to this
// instance.
func (inst *Instance) Get(name token.Token) (any, error) {
	if value, ok := inst.fields.Get(name.Lexeme); ok {
		return value, nil
	}

	if method := inst.class.FindMethod(name.Lexeme); method != nil {
		return method.bind(inst), nil
	}

	return nil, loxerrors.NewRuntimeError(name, fmt.Sprintf("Undefined property '%s'.", name.Lexeme))
}

// Set writes a field on this instance, creating it if absent.
func (inst *Instance) Set(name token.Token, value any) {
	inst.fields.Put(name.Lexeme, value)
}
