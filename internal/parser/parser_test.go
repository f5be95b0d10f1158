package parser

import (
	"testing"

	"github.com/oclscript/ocl/internal/ast"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(src, "test.ocl")
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Errors())
	}
	return prog
}

func TestParsePrecedenceClimb(t *testing.T) {
	prog := parseOK(t, "1 + 2 * 3;")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	exprStmt, ok := prog.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected ExpressionStatement, got %T", prog.Statements[0])
	}
	top, ok := exprStmt.Expr.(*ast.BinOp)
	if !ok {
		t.Fatalf("expected top-level BinOp, got %T", exprStmt.Expr)
	}
	if top.Op != "+" {
		t.Fatalf("expected '+' at the top (lowest precedence wins loosest), got %q", top.Op)
	}
	right, ok := top.Right.(*ast.BinOp)
	if !ok || right.Op != "*" {
		t.Fatalf("expected '2 * 3' nested on the right, got %#v", top.Right)
	}
	left, ok := top.Left.(*ast.Literal)
	if !ok || left.IntVal != 1 {
		t.Fatalf("expected literal 1 on the left, got %#v", top.Left)
	}
}

func TestParseUnaryBindsTighterThanBinary(t *testing.T) {
	prog := parseOK(t, "-1 + 2;")
	top := prog.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.BinOp)
	if top.Op != "+" {
		t.Fatalf("expected '+' at top, got %q", top.Op)
	}
	if _, ok := top.Left.(*ast.UnaryOp); !ok {
		t.Fatalf("expected unary minus on the left, got %#v", top.Left)
	}
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	prog := parseOK(t, "a = b = 1;")
	top := prog.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.BinOp)
	if top.Op != "=" {
		t.Fatalf("expected '=' at top, got %q", top.Op)
	}
	if _, ok := top.Left.(*ast.Identifier); !ok {
		t.Fatalf("expected identifier 'a' on the left, got %#v", top.Left)
	}
	inner, ok := top.Right.(*ast.BinOp)
	if !ok || inner.Op != "=" {
		t.Fatalf("expected nested assignment on the right, got %#v", top.Right)
	}
}

func TestParseAssignmentRejectsNonLvalue(t *testing.T) {
	p := New("1 = 2;", "test.ocl")
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected an error assigning into a non-lvalue literal")
	}
}

func TestParseIndexAccessIsValidAssignmentTarget(t *testing.T) {
	prog := parseOK(t, "a[0] = 1;")
	top := prog.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.BinOp)
	if top.Op != "=" {
		t.Fatalf("expected '=', got %q", top.Op)
	}
	if _, ok := top.Left.(*ast.IndexAccess); !ok {
		t.Fatalf("expected IndexAccess on the left, got %#v", top.Left)
	}
}

func TestParseLetDecl(t *testing.T) {
	prog := parseOK(t, "Let x: int = 5;")
	decl, ok := prog.Statements[0].(*ast.VarDeclStatement)
	if !ok {
		t.Fatalf("expected VarDeclStatement, got %T", prog.Statements[0])
	}
	if decl.Name.Name != "x" {
		t.Fatalf("expected name x, got %q", decl.Name.Name)
	}
	if decl.Type.Kind != ast.TInt {
		t.Fatalf("expected TInt, got %v", decl.Type.Kind)
	}
	lit, ok := decl.Value.(*ast.Literal)
	if !ok || lit.IntVal != 5 {
		t.Fatalf("expected initializer literal 5, got %#v", decl.Value)
	}
}

func TestParseCStyleDecl(t *testing.T) {
	prog := parseOK(t, "int x = 5;")
	decl, ok := prog.Statements[0].(*ast.VarDeclStatement)
	if !ok {
		t.Fatalf("expected VarDeclStatement, got %T", prog.Statements[0])
	}
	if decl.Name.Name != "x" || decl.Type.Kind != ast.TInt {
		t.Fatalf("unexpected decl shape: %#v", decl)
	}
}

func TestParseFuncDeclWithReturnTypeAndParams(t *testing.T) {
	prog := parseOK(t, "func int add(int a, int b) { return a + b; }")
	fn, ok := prog.Statements[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected FuncDecl, got %T", prog.Statements[0])
	}
	if fn.Name.Name != "add" {
		t.Fatalf("expected name add, got %q", fn.Name.Name)
	}
	if fn.ReturnType == nil || fn.ReturnType.Kind != ast.TInt {
		t.Fatalf("expected int return type, got %#v", fn.ReturnType)
	}
	if len(fn.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Parameters))
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body.Statements))
	}
}

func TestParseFuncDeclWithoutReturnType(t *testing.T) {
	prog := parseOK(t, "func greet(string name) { print(name); }")
	fn := prog.Statements[0].(*ast.FuncDecl)
	if fn.ReturnType != nil {
		t.Fatalf("expected no return type, got %#v", fn.ReturnType)
	}
}

func TestParseIfElse(t *testing.T) {
	prog := parseOK(t, "if (a < b) { return a; } else { return b; }")
	stmt, ok := prog.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected IfStatement, got %T", prog.Statements[0])
	}
	if stmt.Else == nil {
		t.Fatalf("expected an else branch")
	}
}

func TestParseWhileLoop(t *testing.T) {
	prog := parseOK(t, "while (x < 10) { x = x + 1; }")
	loop, ok := prog.Statements[0].(*ast.LoopStatement)
	if !ok {
		t.Fatalf("expected LoopStatement, got %T", prog.Statements[0])
	}
	if loop.IsFor {
		t.Fatalf("expected IsFor == false for a while loop")
	}
	if loop.Init != nil || loop.Post != nil {
		t.Fatalf("while loop should have no init/post clauses")
	}
}

func TestParseForLoop(t *testing.T) {
	prog := parseOK(t, "for (Let i: int = 0; i < 3; i = i + 1) { print(i); }")
	loop, ok := prog.Statements[0].(*ast.LoopStatement)
	if !ok {
		t.Fatalf("expected LoopStatement, got %T", prog.Statements[0])
	}
	if !loop.IsFor {
		t.Fatalf("expected IsFor == true")
	}
	if loop.Init == nil || loop.Cond == nil || loop.Post == nil {
		t.Fatalf("expected all three for-clauses present, got init=%v cond=%v post=%v", loop.Init, loop.Cond, loop.Post)
	}
}

func TestParseBreakContinue(t *testing.T) {
	prog := parseOK(t, "while (true) { break; continue; }")
	loop := prog.Statements[0].(*ast.LoopStatement)
	if _, ok := loop.Body.Statements[0].(*ast.BreakStatement); !ok {
		t.Fatalf("expected BreakStatement first, got %T", loop.Body.Statements[0])
	}
	if _, ok := loop.Body.Statements[1].(*ast.ContinueStatement); !ok {
		t.Fatalf("expected ContinueStatement second, got %T", loop.Body.Statements[1])
	}
}

func TestParsePrintColonContinuation(t *testing.T) {
	prog := parseOK(t, `print("x" : 1, 2);`)
	call := prog.Statements[0].(*ast.ExpressionStatement).Expr.(*ast.Call)
	if call.Name != "print" {
		t.Fatalf("expected callee print, got %q", call.Name)
	}
	if len(call.Args) != 3 {
		t.Fatalf("expected 3 arguments across the ':' continuation, got %d", len(call.Args))
	}
}

func TestParseOrdinaryCallRejectsColon(t *testing.T) {
	// the ':' continuation is only special-cased for print/printf; any
	// other callee should fail to parse past the first argument list.
	p := New(`foo("x" : 1);`, "test.ocl")
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected a parse error for a non-print/printf call using ':'")
	}
}

func TestParseImportStatement(t *testing.T) {
	prog := parseOK(t, "Import <std.io>;")
	imp, ok := prog.Statements[0].(*ast.ImportStatement)
	if !ok {
		t.Fatalf("expected ImportStatement, got %T", prog.Statements[0])
	}
	if len(imp.Path) != 2 || imp.Path[0] != "std" || imp.Path[1] != "io" {
		t.Fatalf("unexpected import path: %v", imp.Path)
	}
}

func TestParseIndexWithExpressionIndex(t *testing.T) {
	prog := parseOK(t, "Let a: int = b[1 + 2];")
	decl := prog.Statements[0].(*ast.VarDeclStatement)
	idx, ok := decl.Value.(*ast.IndexAccess)
	if !ok {
		t.Fatalf("expected IndexAccess, got %T", decl.Value)
	}
	if _, ok := idx.Index.(*ast.BinOp); !ok {
		t.Fatalf("expected BinOp index expression, got %#v", idx.Index)
	}
}

func TestParseErrorRecoverySkipsToNextStatement(t *testing.T) {
	// the stray '@' triggers a lexer error and a parse error inside the
	// first statement, but the parser must resynchronize and still
	// recover the second, well-formed statement.
	p := New("Let x: int = @; Let y: int = 2;", "test.ocl")
	prog := p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected at least one error")
	}
	found := false
	for _, stmt := range prog.Statements {
		if decl, ok := stmt.(*ast.VarDeclStatement); ok && decl.Name.Name == "y" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected parser to recover and still parse 'Let y', statements: %#v", prog.Statements)
	}
}
