package parser

import (
	"testing"

	"github.com/jdpolicano/lox/internal/ast"
	"github.com/jdpolicano/lox/internal/lexer"
)

func parseSource(t *testing.T, src string) ([]ast.Stmt, []error) {
	t.Helper()
	tokens, err := lexer.ScanTokens(src)
	if err != nil {
		t.Fatalf("lexing failed: %v", err)
	}
	return Parse(tokens)
}

func TestParseArithmeticPrecedence(t *testing.T) {
	stmts, errs := parseSource(t, "1 + 2 * 3;")
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected one statement, got %d", len(stmts))
	}
	exprStmt, ok := stmts[0].(*ast.Expression)
	if !ok {
		t.Fatalf("expected *ast.Expression, got %T", stmts[0])
	}
	bin, ok := exprStmt.Expr.(*ast.Binary)
	if !ok {
		t.Fatalf("expected top-level *ast.Binary, got %T", exprStmt.Expr)
	}
	if _, ok := bin.Right.(*ast.Binary); !ok {
		t.Fatalf("expected '2 * 3' to bind tighter than '+', got %T on the right", bin.Right)
	}
}

func TestParseVarDeclarationAndAssignment(t *testing.T) {
	stmts, errs := parseSource(t, "var x = 1; x = 2;")
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	if _, ok := stmts[0].(*ast.Var); !ok {
		t.Fatalf("expected *ast.Var, got %T", stmts[0])
	}
	exprStmt, ok := stmts[1].(*ast.Expression)
	if !ok {
		t.Fatalf("expected *ast.Expression, got %T", stmts[1])
	}
	if _, ok := exprStmt.Expr.(*ast.Assign); !ok {
		t.Fatalf("expected *ast.Assign, got %T", exprStmt.Expr)
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	_, errs := parseSource(t, "1 + 2 = 3;")
	if len(errs) == 0 {
		t.Fatal("expected a parse error for an invalid assignment target")
	}
	found := false
	for _, err := range errs {
		if pe, ok := err.(*Error); ok && pe.Kind == InvalidAssignmentTarget {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an InvalidAssignmentTarget error, got %v", errs)
	}
}

func TestParseCompoundAssignmentDesugars(t *testing.T) {
	stmts, errs := parseSource(t, "var x = 1; x += 2;")
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	exprStmt := stmts[1].(*ast.Expression)
	assign, ok := exprStmt.Expr.(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", exprStmt.Expr)
	}
	bin, ok := assign.Value.(*ast.Binary)
	if !ok {
		t.Fatalf("expected the compound assignment to desugar to a Binary, got %T", assign.Value)
	}
	if _, ok := bin.Left.(*ast.Variable); !ok {
		t.Fatalf("expected the desugared binary's left side to re-read the variable, got %T", bin.Left)
	}
}

func TestParseBreakOutsideLoopIsAnError(t *testing.T) {
	_, errs := parseSource(t, "break;")
	if len(errs) == 0 {
		t.Fatal("expected a parse error for break outside a loop")
	}
}

func TestParseBreakInsideWhileIsLegal(t *testing.T) {
	_, errs := parseSource(t, "while (true) { break; }")
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
}

func TestParseForLoopDesugarsToWhile(t *testing.T) {
	stmts, errs := parseSource(t, "for (var i = 0; i < 10; i = i + 1) print i;")
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected a single de-sugared block statement, got %d", len(stmts))
	}
	block, ok := stmts[0].(*ast.Block)
	if !ok {
		t.Fatalf("expected *ast.Block, got %T", stmts[0])
	}
	if len(block.Stmts) != 2 {
		t.Fatalf("expected [init, while], got %d statements", len(block.Stmts))
	}
	if _, ok := block.Stmts[0].(*ast.Var); !ok {
		t.Fatalf("expected the first de-sugared statement to be the initializer, got %T", block.Stmts[0])
	}
	whileStmt, ok := block.Stmts[1].(*ast.While)
	if !ok {
		t.Fatalf("expected the second de-sugared statement to be a While, got %T", block.Stmts[1])
	}
	body, ok := whileStmt.Body.(*ast.Block)
	if !ok {
		t.Fatalf("expected the while body to be a Block holding [print, increment], got %T", whileStmt.Body)
	}
	if len(body.Stmts) != 2 {
		t.Fatalf("expected [print, increment] inside the de-sugared loop body, got %d", len(body.Stmts))
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	stmts, errs := parseSource(t, "fun add(a, b) { return a + b; }")
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	fn, ok := stmts[0].(*ast.Function)
	if !ok {
		t.Fatalf("expected *ast.Function, got %T", stmts[0])
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
}

func TestParseAnonymousFunctionExpression(t *testing.T) {
	stmts, errs := parseSource(t, "var f = fun(x) { return x; };")
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	decl := stmts[0].(*ast.Var)
	if _, ok := decl.Init.(*ast.FunctionExpr); !ok {
		t.Fatalf("expected *ast.FunctionExpr, got %T", decl.Init)
	}
}
