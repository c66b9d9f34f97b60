package interp

import (
	"github.com/cwbudde/golox/internal/ast"
	loxerrors "github.com/cwbudde/golox/internal/errors"
)

// Callable is anything that can appear as the callee of a Call
// expression: user-defined functions and methods, native functions, and
// classes (calling a class constructs an instance).
type Callable interface {
	Arity() int
	Call(i *Interpreter, args []any) (any, error)
}

// Function is a user-defined function or method: its declaration, the
// environment it closed over, and whether it is a class's `init` method
// (which special-cases its return value).
type Function struct {
	decl          *ast.FunctionStmt
	closure       *Environment
	isInitializer bool
}

// NewFunction wraps a function declaration with the environment in
// effect at the point it was declared.
func NewFunction(decl *ast.FunctionStmt, closure *Environment, isInitializer bool) *Function {
	return &Function{decl: decl, closure: closure, isInitializer: isInitializer}
}

func (f *Function) Arity() int { return len(f.decl.Params) }

// Call runs the function body in a fresh environment parented to its
// closure, with parameters bound to the call's arguments. A `return`
// inside the body sets the interpreter's returning flag rather than
// unwinding as an error; Call consumes that flag here, at the function
// activation boundary, and resets it so it never escapes past the call
// that caught it.
func (f *Function) Call(i *Interpreter, args []any) (any, error) {
	if i.maxCallDepth > 0 && i.stack.Depth() >= i.maxCallDepth {
		return nil, loxerrors.NewRuntimeError(f.decl.Name, "Stack overflow.")
	}

	env := NewChildEnvironment(f.closure)
	for idx, param := range f.decl.Params {
		env.Define(param.Lexeme, args[idx])
	}

	i.pushFrame(f.decl.Name.Lexeme, f.decl.Name.Line)
	defer i.popFrame()

	if err := i.executeBlock(f.decl.Body, env); err != nil {
		// i.stack still holds every frame pushed by this call and its
		// callers - capture it now, before the deferred popFrame above
		// (and every popFrame between here and Interpret) unwinds it.
		// Only the deepest Call on the way back up does this: once a
		// RuntimeError already carries a trace, leave it alone.
		if rerr, ok := err.(*loxerrors.RuntimeError); ok && rerr.Trace == nil {
			rerr.Trace = append(loxerrors.StackTrace(nil), i.stack...)
		}
		return nil, err
	}

	var result any
	if i.returning {
		result = i.returnValue
		i.returning = false
		i.returnValue = nil
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return result, nil
}

// bind produces a copy of the function whose closure additionally binds
// `this` to instance, one scope inward of the method's original closure -
// exactly the layout the resolver assumed when it resolved `this`
// references inside the method body.
func (f *Function) bind(instance *Instance) *Function {
	env := NewChildEnvironment(f.closure)
	env.Define("this", instance)
	return NewFunction(f.decl, env, f.isInitializer)
}

func (f *Function) Name() string { return f.decl.Name.Lexeme }

// NativeFunction wraps a host-provided builtin such as clock().
type NativeFunction struct {
	name  string
	arity int
	fn    func(i *Interpreter, args []any) (any, error)
}

// NewNativeFunction registers a host function under name, callable with
// exactly arity arguments.
func NewNativeFunction(name string, arity int, fn func(i *Interpreter, args []any) (any, error)) *NativeFunction {
	return &NativeFunction{name: name, arity: arity, fn: fn}
}

func (n *NativeFunction) Arity() int { return n.arity }

func (n *NativeFunction) Call(i *Interpreter, args []any) (any, error) {
	return n.fn(i, args)
}
