package resolver

import (
	"testing"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/parser"
	"github.com/cwbudde/golox/internal/scanner"
)

// fakeSink records every (expr, depth) pair reported by the resolver so
// tests can assert on them without a full evaluator.
type fakeSink struct {
	depths map[ast.Expr]int
}

func newFakeSink() *fakeSink {
	return &fakeSink{depths: make(map[ast.Expr]int)}
}

func (f *fakeSink) Resolve(expr ast.Expr, depth int) {
	f.depths[expr] = depth
}

func resolveSource(t *testing.T, src string) (*Resolver, *fakeSink, []ast.Stmt) {
	t.Helper()
	s := scanner.New(src)
	tokens := s.ScanTokens()
	if s.HadError() {
		t.Fatalf("scan error: %v", s.Errors())
	}
	p := parser.New(tokens)
	stmts := p.Parse()
	if p.HadError() {
		t.Fatalf("parse error: %v", p.Errors())
	}
	sink := newFakeSink()
	r := New(sink)
	r.Resolve(stmts)
	return r, sink, stmts
}

func TestResolve_OwnInitializerIsStaticError(t *testing.T) {
	r, _, _ := resolveSource(t, "{ var a = a; }")
	if !r.HadError() {
		t.Fatal("expected a static error reading a variable in its own initializer")
	}
}

func TestResolve_DuplicateLocalDeclaration(t *testing.T) {
	r, _, _ := resolveSource(t, "{ var a = 1; var a = 2; }")
	if !r.HadError() {
		t.Fatal("expected a static error for a duplicate local declaration")
	}
}

func TestResolve_GlobalRedeclarationAllowed(t *testing.T) {
	r, _, _ := resolveSource(t, "var a = 1; var a = 2;")
	if r.HadError() {
		t.Errorf("global redeclaration should be allowed, got errors: %v", r.Errors())
	}
}

func TestResolve_ReturnAtTopLevel(t *testing.T) {
	r, _, _ := resolveSource(t, "return 1;")
	if !r.HadError() {
		t.Fatal("expected a static error for a top-level return")
	}
}

func TestResolve_ReturnValueFromInitializer(t *testing.T) {
	r, _, _ := resolveSource(t, "class A { init() { return 1; } }")
	if !r.HadError() {
		t.Fatal("expected a static error for returning a value from an initializer")
	}
}

func TestResolve_ThisOutsideClass(t *testing.T) {
	r, _, _ := resolveSource(t, "print this;")
	if !r.HadError() {
		t.Fatal("expected a static error for 'this' outside a class")
	}
}

func TestResolve_SuperOutsideClass(t *testing.T) {
	r, _, _ := resolveSource(t, "print super.m();")
	if !r.HadError() {
		t.Fatal("expected a static error for 'super' outside a class")
	}
}

func TestResolve_SuperWithoutSuperclass(t *testing.T) {
	r, _, _ := resolveSource(t, "class A { m() { return super.m(); } }")
	if !r.HadError() {
		t.Fatal("expected a static error for 'super' in a class without a superclass")
	}
}

func TestResolve_ClassInheritsFromItself(t *testing.T) {
	r, _, _ := resolveSource(t, "class A < A {}")
	if !r.HadError() {
		t.Fatal("expected a static error for a class inheriting from itself")
	}
}

func TestResolve_BreakOutsideLoop(t *testing.T) {
	r, _, _ := resolveSource(t, "break;")
	if !r.HadError() {
		t.Fatal("expected a static error for break outside a loop")
	}
}

func TestResolve_ContinueOutsideLoop(t *testing.T) {
	r, _, _ := resolveSource(t, "continue;")
	if !r.HadError() {
		t.Fatal("expected a static error for continue outside a loop")
	}
}

func TestResolve_ClosureDistance(t *testing.T) {
	_, sink, stmts := resolveSource(t, "fun make() { var i = 0; fun inc() { i = i + 1; return i; } return inc; }")

	outer := stmts[0].(*ast.FunctionStmt)
	// inner fun inc() is outer.Body[1]
	innerFn := outer.Body[1].(*ast.FunctionStmt)
	// body[0] is `i = i + 1;`
	assignStmt := innerFn.Body[0].(*ast.ExpressionStmt)
	assign := assignStmt.Expression.(*ast.Assign)

	depth, ok := sink.depths[assign]
	if !ok {
		t.Fatal("expected the assignment to `i` to be resolved as a local reference")
	}
	// Function bodies resolve in the same scope as their parameters, so
	// from inside inc() there is one scope (inc's own) before reaching
	// make()'s scope, where `i` is declared.
	if depth != 1 {
		t.Errorf("got distance %d, want 1", depth)
	}
}

func TestResolve_UnusedLocalWarning(t *testing.T) {
	r, _, _ := resolveSource(t, "fun f() { var unused = 1; }")
	if r.HadError() {
		t.Fatalf("unused variable should be a warning, not an error: %v", r.Errors())
	}
	warnings := r.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
}
