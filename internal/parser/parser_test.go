package parser

import (
	"testing"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/scanner"
)

func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	s := scanner.New(src)
	tokens := s.ScanTokens()
	if s.HadError() {
		t.Fatalf("scan error: %v", s.Errors())
	}
	p := New(tokens)
	stmts := p.Parse()
	if p.HadError() {
		t.Fatalf("parse error: %v", p.Errors())
	}
	return stmts
}

func TestParse_ExpressionStatement(t *testing.T) {
	stmts := parse(t, "1 + 2 * 3;")
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	exprStmt, ok := stmts[0].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ExpressionStmt", stmts[0])
	}
	binary, ok := exprStmt.Expression.(*ast.Binary)
	if !ok {
		t.Fatalf("got %T, want *ast.Binary", exprStmt.Expression)
	}
	if binary.Op.Lexeme != "+" {
		t.Errorf("got top-level operator %q, want '+' (lowest precedence binds loosest)", binary.Op.Lexeme)
	}
}

func TestParse_VarDeclaration(t *testing.T) {
	stmts := parse(t, "var a = 1;")
	v, ok := stmts[0].(*ast.VarStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.VarStmt", stmts[0])
	}
	if v.Name.Lexeme != "a" {
		t.Errorf("got name %q, want 'a'", v.Name.Lexeme)
	}
	if v.Initializer == nil {
		t.Error("expected an initializer")
	}
}

func TestParse_Assignment(t *testing.T) {
	stmts := parse(t, "a = 2;")
	exprStmt := stmts[0].(*ast.ExpressionStmt)
	if _, ok := exprStmt.Expression.(*ast.Assign); !ok {
		t.Fatalf("got %T, want *ast.Assign", exprStmt.Expression)
	}
}

func TestParse_InvalidAssignmentTarget(t *testing.T) {
	s := scanner.New("1 = 2;")
	p := New(s.ScanTokens())
	p.Parse()
	if !p.HadError() {
		t.Fatal("expected a parse error for an invalid assignment target")
	}
}

func TestParse_ForDesugarsToWhile(t *testing.T) {
	stmts := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	block, ok := stmts[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.BlockStmt", stmts[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("got %d statements in desugared block, want 2 (initializer, while)", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*ast.VarStmt); !ok {
		t.Errorf("first statement should be the initializer, got %T", block.Statements[0])
	}
	whileStmt, ok := block.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("second statement should be *ast.WhileStmt, got %T", block.Statements[1])
	}
	if _, ok := whileStmt.Body.(*ast.PrintStmt); !ok {
		t.Errorf("while body should be the original loop body, got %T", whileStmt.Body)
	}
	if whileStmt.Increment == nil {
		t.Error("expected the increment clause to be carried on the WhileStmt")
	}
}

func TestParse_ForWithoutCondition(t *testing.T) {
	stmts := parse(t, "for (;;) print 1;")
	whileStmt, ok := stmts[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.WhileStmt", stmts[0])
	}
	lit, ok := whileStmt.Cond.(*ast.Literal)
	if !ok || lit.Value != true {
		t.Errorf("missing condition should desugar to literal true, got %#v", whileStmt.Cond)
	}
}

func TestParse_ClassWithSuperclass(t *testing.T) {
	stmts := parse(t, "class B < A { m() { return 1; } }")
	class, ok := stmts[0].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ClassStmt", stmts[0])
	}
	if class.Superclass == nil || class.Superclass.Name.Lexeme != "A" {
		t.Errorf("expected superclass 'A', got %#v", class.Superclass)
	}
	if len(class.Methods) != 1 || class.Methods[0].Name.Lexeme != "m" {
		t.Errorf("expected a single method 'm', got %#v", class.Methods)
	}
}

func TestParse_Ternary(t *testing.T) {
	stmts := parse(t, "var x = true ? 1 : 2;")
	v := stmts[0].(*ast.VarStmt)
	if _, ok := v.Initializer.(*ast.Ternary); !ok {
		t.Fatalf("got %T, want *ast.Ternary", v.Initializer)
	}
}

func TestParse_CallAndGetChain(t *testing.T) {
	stmts := parse(t, "a.b().c;")
	exprStmt := stmts[0].(*ast.ExpressionStmt)
	get, ok := exprStmt.Expression.(*ast.Get)
	if !ok {
		t.Fatalf("got %T, want *ast.Get", exprStmt.Expression)
	}
	if get.Name.Lexeme != "c" {
		t.Errorf("got property %q, want 'c'", get.Name.Lexeme)
	}
	if _, ok := get.Object.(*ast.Call); !ok {
		t.Fatalf("got %T, want *ast.Call as Get target", get.Object)
	}
}

func TestParse_BreakAndContinue(t *testing.T) {
	stmts := parse(t, "while (true) { break; continue; }")
	whileStmt := stmts[0].(*ast.WhileStmt)
	body := whileStmt.Body.(*ast.BlockStmt)
	if _, ok := body.Statements[0].(*ast.BreakStmt); !ok {
		t.Errorf("got %T, want *ast.BreakStmt", body.Statements[0])
	}
	if _, ok := body.Statements[1].(*ast.ContinueStmt); !ok {
		t.Errorf("got %T, want *ast.ContinueStmt", body.Statements[1])
	}
}

func TestParse_SynchronizeAfterError(t *testing.T) {
	s := scanner.New("var ; var b = 2;")
	p := New(s.ScanTokens())
	stmts := p.Parse()
	if !p.HadError() {
		t.Fatal("expected a parse error")
	}
	if len(stmts) != 1 {
		t.Fatalf("expected synchronization to recover the second declaration, got %d statements", len(stmts))
	}
}

func TestParse_TooManyArguments(t *testing.T) {
	src := "f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ","
		}
		src += "1"
	}
	src += ");"

	s := scanner.New(src)
	p := New(s.ScanTokens())
	p.Parse()
	if !p.HadError() {
		t.Fatal("expected an error for exceeding the argument ceiling")
	}
}
