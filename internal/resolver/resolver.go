// Package resolver performs the static analysis pass between parsing and
// evaluation: it rejects a fixed set of statically-detectable mistakes
// (illegal `this`/`super`/`return`, reading a variable from its own
// initializer, duplicate local declarations, `break`/`continue` outside a
// loop) and it precomputes, for every variable reference, how many
// enclosing scopes separate it from the scope that defines it. That
// distance lets the evaluator read and write a closure's bindings
// without a name search at run time.
package resolver

import (
	"fmt"
	"sort"

	"github.com/cwbudde/golox/internal/ast"
	loxerrors "github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/token"
	"golang.org/x/exp/maps"
)

// Resolvable receives the outcome of resolving a single variable
// reference. The evaluator's Interpreter implements this so the resolver
// never needs to know about evaluator internals.
type Resolvable interface {
	Resolve(expr ast.Expr, depth int)
}

// Error is a single static error: the offending token and a message.
type Error struct {
	Token   token.Token
	Message string
}

func (e Error) Error() string {
	return loxerrors.Format(e.Token.Line, loxerrors.Where(e.Token), e.Message)
}

// functionKind tracks what sort of function body the resolver is
// currently inside, so `return` and `this` can be validated.
type functionKind int

const (
	fnNone functionKind = iota
	fnFunction
	fnMethod
	fnInitializer
)

// classKind tracks whether the resolver is inside a class body, and
// whether that class has a superclass, so `this`/`super` can be
// validated.
type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// binding tracks a local name's state (declared but not yet usable, or
// fully defined) and whether anything ever read it, to support the
// unused-variable warning.
type binding struct {
	defined bool
	used    bool
	tok     token.Token
}

// Warning is a non-fatal diagnostic: a local variable that was declared
// but never read. Unlike Error, warnings do not gate evaluation.
type Warning struct {
	Token   token.Token
	Message string
}

func (w Warning) String() string {
	return loxerrors.Format(w.Token.Line, loxerrors.Where(w.Token), w.Message)
}

// Resolver walks a parsed program and records lexical distances into an
// Resolvable sink.
type Resolver struct {
	sink Resolvable

	scopes     []map[string]*binding
	currentFn  functionKind
	currentCls classKind
	loopDepth  int
	errors     []Error
	warnings   []Warning
}

// New creates a Resolver that reports resolved distances to sink.
func New(sink Resolvable) *Resolver {
	return &Resolver{sink: sink}
}

// Errors returns the static errors accumulated so far.
func (r *Resolver) Errors() []Error {
	return r.errors
}

// HadError reports whether any static error was recorded.
func (r *Resolver) HadError() bool {
	return len(r.errors) > 0
}

// Warnings returns the unused-variable warnings accumulated so far,
// sorted by line for deterministic output.
func (r *Resolver) Warnings() []Warning {
	sorted := append([]Warning(nil), r.warnings...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Token.Line < sorted[j].Token.Line })
	return sorted
}

// Resolve resolves a full program.
func (r *Resolver) Resolve(stmts []ast.Stmt) {
	r.resolveStmts(stmts)
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)
	case *ast.ClassStmt:
		r.resolveClass(s)
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expression)
	case *ast.PrintStmt:
		r.resolveExpr(s.Expression)
	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.loopDepth++
		r.resolveStmt(s.Body)
		if s.Increment != nil {
			r.resolveExpr(s.Increment)
		}
		r.loopDepth--
	case *ast.ReturnStmt:
		if r.currentFn == fnNone {
			r.errorAt(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFn == fnInitializer {
				r.errorAt(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}
	case *ast.BreakStmt:
		if r.loopDepth == 0 {
			r.errorAt(s.Keyword, "Can't use 'break' outside of a loop.")
		}
	case *ast.ContinueStmt:
		if r.loopDepth == 0 {
			r.errorAt(s.Keyword, "Can't use 'continue' outside of a loop.")
		}
	default:
		panic(fmt.Sprintf("resolver: unhandled statement type %T", stmt))
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionKind) {
	enclosingFn := r.currentFn
	r.currentFn = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFn = enclosingFn
}

func (r *Resolver) resolveClass(cls *ast.ClassStmt) {
	enclosingCls := r.currentCls
	r.currentCls = classClass

	r.declare(cls.Name)
	r.define(cls.Name)

	if cls.Superclass != nil {
		if cls.Superclass.Name.Lexeme == cls.Name.Lexeme {
			r.errorAt(cls.Superclass.Name, "A class can't inherit from itself.")
		} else {
			r.currentCls = classSubclass
			r.resolveExpr(cls.Superclass)
		}

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = &binding{defined: true, used: true}
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = &binding{defined: true, used: true}

	for _, method := range cls.Methods {
		kind := fnMethod
		if method.Name.Lexeme == "init" {
			kind = fnInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope()

	if cls.Superclass != nil {
		r.endScope()
	}

	r.currentCls = enclosingCls
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		// Nothing to resolve.
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if b, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !b.defined {
				r.errorAt(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Grouping:
		r.resolveExpr(e.Inner)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}
	case *ast.Get:
		r.resolveExpr(e.Object)
	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.This:
		if r.currentCls == classNone {
			r.errorAt(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.Super:
		switch r.currentCls {
		case classNone:
			r.errorAt(e.Keyword, "Can't use 'super' outside of a class.")
		case classClass:
			r.errorAt(e.Keyword, "Can't use 'super' in a class with no superclass.")
		default:
			r.resolveLocal(e, e.Keyword)
		}
	case *ast.Ternary:
		r.resolveExpr(e.Cond)
		r.resolveExpr(e.Then)
		r.resolveExpr(e.Else)
	default:
		panic(fmt.Sprintf("resolver: unhandled expression type %T", expr))
	}
}

// resolveLocal searches the scope stack innermost-out for name. If found,
// it reports the distance to the sink; names not found are left for the
// evaluator to treat as global.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if b, ok := r.scopes[i][name.Lexeme]; ok {
			if _, isAssign := expr.(*ast.Assign); !isAssign {
				b.used = true
			}
			r.sink.Resolve(expr, len(r.scopes)-1-i)
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]*binding))
}

func (r *Resolver) endScope() {
	scope := r.scopes[len(r.scopes)-1]
	names := maps.Keys(scope)
	sort.Strings(names)
	for _, name := range names {
		b := scope[name]
		if !b.used {
			r.warnings = append(r.warnings, Warning{Token: b.tok, Message: fmt.Sprintf("Local variable '%s' is never used.", name)})
		}
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.errorAt(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = &binding{tok: name}
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme].defined = true
}

func (r *Resolver) errorAt(tok token.Token, message string) {
	r.errors = append(r.errors, Error{Token: tok, Message: message})
}
