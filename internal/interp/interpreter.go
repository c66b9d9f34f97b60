// Package interp is the tree-walking evaluator: it walks a resolved AST
// and a stack of environments, producing stdout writes and reporting the
// first runtime error, if any.
//
// `return`, `break`, and `continue` are modeled as boolean flags on the
// Interpreter itself rather than as panics or as a distinguished error
// type threaded through every call site - the same shape the teacher
// codebase uses for its own exit/continue/break signals. Each flag is
// consumed at the one place in the tree that is allowed to catch it
// (function activation for `returning`, loop bodies for `breaking` and
// `continuing`) and reset before control continues past that point.
package interp

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cwbudde/golox/internal/ast"
	loxerrors "github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/token"
)

// Interpreter walks a resolved program. Create one with New and reuse it
// across statements (or REPL lines) to keep the global environment and
// top-level declarations alive between runs.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  map[ast.Expr]int

	returning   bool
	returnValue any
	breaking    bool
	continuing  bool

	stack loxerrors.StackTrace

	stdout       io.Writer
	clock        func() time.Time
	maxCallDepth int
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithStdout redirects `print` output away from os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) { i.stdout = w }
}

// WithClock overrides the source clock() reads from, for deterministic
// tests.
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) { i.clock = now }
}

// WithMaxCallDepth bounds Lox call recursion; exceeding it is reported as
// a runtime error instead of overflowing the host Go stack. A depth of 0
// (the zero value) disables the guard.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) { i.maxCallDepth = depth }
}

// New creates an Interpreter with a fresh global environment.
func New(opts ...Option) *Interpreter {
	globals := NewEnvironment()
	i := &Interpreter{
		globals: globals,
		env:     globals,
		locals:  make(map[ast.Expr]int),
		stdout:  os.Stdout,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.defineNatives()
	return i
}

// Resolve implements resolver.Resolvable: it records the lexical
// distance the resolver computed for a variable reference node.
func (i *Interpreter) Resolve(expr ast.Expr, depth int) {
	i.locals[expr] = depth
}

// Interpret executes a program's statements in order. It stops at the
// first runtime error, attaching the call stack in effect when it was
// raised.
func (i *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			if rerr, ok := err.(*loxerrors.RuntimeError); ok && rerr.Trace == nil {
				rerr.Trace = i.stack
			}
			return err
		}
	}
	return nil
}

// EvaluateExpr evaluates a single expression outside of statement
// execution. It exists for hosts (such as a REPL) that want to echo the
// value of a bare expression without going through Print.
func (i *Interpreter) EvaluateExpr(expr ast.Expr) (any, error) {
	return i.evaluate(expr)
}

// Stringify renders a Lox value the way `print` does, for hosts that
// need to display a value outside of a Print statement.
func Stringify(value any) string {
	return stringify(value)
}

func (i *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evaluate(s.Expression)
		return err

	case *ast.PrintStmt:
		value, err := i.evaluate(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.stdout, stringify(value))
		return nil

	case *ast.VarStmt:
		var value any
		if s.Initializer != nil {
			v, err := i.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		i.env.Define(s.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return i.executeBlock(s.Statements, NewChildEnvironment(i.env))

	case *ast.IfStmt:
		cond, err := i.evaluate(s.Cond)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return i.execute(s.Then)
		}
		if s.Else != nil {
			return i.execute(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := i.evaluate(s.Cond)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}

			err = i.execute(s.Body)
			i.continuing = false // consumed here regardless of whether it fired
			if err != nil {
				return err
			}
			if i.breaking {
				i.breaking = false
				return nil
			}
			if i.returning {
				return nil
			}

			if s.Increment != nil {
				if _, err := i.evaluate(s.Increment); err != nil {
					return err
				}
			}
		}

	case *ast.FunctionStmt:
		fn := NewFunction(s, i.env, false)
		i.env.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		var value any
		if s.Value != nil {
			v, err := i.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		i.returnValue = value
		i.returning = true
		return nil

	case *ast.BreakStmt:
		i.breaking = true
		return nil

	case *ast.ContinueStmt:
		i.continuing = true
		return nil

	case *ast.ClassStmt:
		return i.executeClass(s)

	default:
		return fmt.Errorf("interp: unhandled statement type %T", stmt)
	}
}

// executeBlock runs stmts in env, restoring the previous environment on
// every exit path (normal completion, an early `return`/`break`/
// `continue`, or a propagating runtime error).
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
		if i.returning || i.breaking || i.continuing {
			return nil
		}
	}
	return nil
}

func (i *Interpreter) executeClass(s *ast.ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		value, err := i.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := value.(*Class)
		if !ok {
			return loxerrors.NewRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	i.env.Define(s.Name.Lexeme, nil)

	methodEnv := i.env
	if s.Superclass != nil {
		methodEnv = NewChildEnvironment(i.env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, method := range s.Methods {
		methods[method.Name.Lexeme] = NewFunction(method, methodEnv, method.Name.Lexeme == "init")
	}

	class := NewClass(s.Name.Lexeme, superclass, methods)

	if err := i.env.Assign(s.Name, class); err != nil {
		return err
	}
	return nil
}

// pushFrame records a call-stack entry before entering a function body,
// and popFrame removes it on the way back out. These are only for
// building the stack trace attached to a RuntimeError; they have no
// effect on control flow.
func (i *Interpreter) pushFrame(name string, line int) {
	i.stack = append(i.stack, loxerrors.NewStackFrame(name, line))
}

func (i *Interpreter) popFrame() {
	i.stack = i.stack[:len(i.stack)-1]
}

func (i *Interpreter) lookupVariable(name token.Token, expr ast.Expr) (any, error) {
	if distance, ok := i.locals[expr]; ok {
		return i.env.GetAt(distance, name.Lexeme), nil
	}
	return i.globals.Get(name)
}
