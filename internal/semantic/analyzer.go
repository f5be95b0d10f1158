package semantic

import (
	"github.com/oclscript/ocl/internal/ast"
	"github.com/oclscript/ocl/internal/builtin"
	"github.com/oclscript/ocl/internal/errors"
	"github.com/oclscript/ocl/internal/lexer"
)

// Analyzer walks a Program twice: Prepass registers every top-level
// function and global variable so forward references between them
// resolve, then Check type-checks the whole tree. Diagnostics are
// collected rather than raised — Check always completes and reports
// whether the program is well-typed via its bool return, independent of
// whether codegen is ultimately allowed to proceed on a failing check
// (that decision belongs to the driver, not the analyzer).
type Analyzer struct {
	table *SymbolTable
	errs  *errors.Collector

	curFunc *Symbol // non-nil while walking a function body, for return-type checks

	// globalDecls maps each top-level VarDecl the prepass declared to its
	// symbol, so the main pass does not report it as a redeclaration.
	globalDecls map[*ast.VarDeclStatement]*Symbol
}

// New creates an Analyzer that reports into errs.
func New(errs *errors.Collector) *Analyzer {
	return &Analyzer{table: NewSymbolTable(), errs: errs}
}

// Check runs both passes over prog and reports whether it is well-typed.
func (a *Analyzer) Check(prog *ast.Program) bool {
	a.prepass(prog)
	before := len(a.errs.Errors())
	for _, stmt := range prog.Statements {
		a.checkStatement(stmt)
	}
	return len(a.errs.Errors()) == before && !a.errs.HasErrors()
}

// prepass registers every top-level FuncDecl and VarDeclStatement so a
// function may call another declared later in the file, and top-level
// code may reference a global declared later (consistent with the
// compiler's own two-pass global/function registration, spec.md §5.1).
func (a *Analyzer) prepass(prog *ast.Program) {
	a.globalDecls = make(map[*ast.VarDeclStatement]*Symbol)
	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ast.FuncDecl:
			paramTypes := make([]*ast.TypeNode, len(s.Parameters))
			for i, p := range s.Parameters {
				paramTypes[i] = p.Type
			}
			ret := s.ReturnType
			if ret == nil {
				ret = &ast.TypeNode{Kind: ast.TVoid}
			}
			a.table.Declare(&Symbol{
				Name: s.Name.Name, Type: ret, IsFunction: true,
				ParamTypes: paramTypes, ReturnType: ret,
			})
		case *ast.VarDeclStatement:
			typ := s.Type
			if typ == nil {
				typ = a.inferType(s.Value)
			}
			sym := &Symbol{Name: s.Name.Name, Type: typ}
			if a.table.Declare(sym) {
				a.globalDecls[s] = sym
			}
		}
	}
}

func (a *Analyzer) errorf(pos lexer.Position, format string, args ...any) {
	a.errs.Add(errors.Type, pos, format, args...)
}

// --- statements --------------------------------------------------------

func (a *Analyzer) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclStatement:
		a.checkVarDecl(s)
	case *ast.FuncDecl:
		a.checkFuncDecl(s)
	case *ast.Block:
		a.table.EnterScope()
		for _, inner := range s.Statements {
			a.checkStatement(inner)
		}
		a.table.ExitScope()
	case *ast.IfStatement:
		cond := a.checkExpr(s.Cond)
		a.expectBool(cond, s.Cond.Pos())
		a.checkStatement(s.Then)
		if s.Else != nil {
			a.checkStatement(s.Else)
		}
	case *ast.LoopStatement:
		a.table.EnterScope()
		if s.Init != nil {
			a.checkStatement(s.Init)
		}
		if s.Cond != nil {
			cond := a.checkExpr(s.Cond)
			a.expectBool(cond, s.Cond.Pos())
		}
		a.table.EnterScope()
		for _, inner := range s.Body.Statements {
			a.checkStatement(inner)
		}
		a.table.ExitScope()
		if s.Post != nil {
			a.checkStatement(s.Post)
		}
		a.table.ExitScope()
	case *ast.ReturnStatement:
		a.checkReturn(s)
	case *ast.BreakStatement, *ast.ContinueStatement, *ast.ImportStatement:
		// nothing to check
	case *ast.ExpressionStatement:
		a.checkExpr(s.Expr)
	default:
		a.errorf(stmt.Pos(), "internal: unhandled statement type %T", stmt)
	}
}

// checkVarDecl back-fills the declared type from the initializer only when
// the declared kind is Unknown (spec.md §4.3) — otherwise the written
// type stands as declared, with no conversion check against the
// initializer.
func (a *Analyzer) checkVarDecl(s *ast.VarDeclStatement) {
	declared := s.Type
	var valType *ast.TypeNode
	if s.Value != nil {
		valType = a.checkExpr(s.Value)
	}
	if declared == nil || declared.Kind == ast.TUnknown {
		if valType != nil {
			declared = valType
		} else {
			declared = &ast.TypeNode{Kind: ast.TUnknown}
		}
	}
	if sym, ok := a.globalDecls[s]; ok {
		sym.Type = declared
		return
	}
	if !a.table.Declare(&Symbol{Name: s.Name.Name, Type: declared}) {
		a.errorf(s.Position, "%q is already declared in this scope", s.Name.Name)
	}
}

func (a *Analyzer) checkFuncDecl(s *ast.FuncDecl) {
	sym, _ := a.table.Resolve(s.Name.Name)

	a.table.EnterScope()
	prevFunc := a.curFunc
	a.curFunc = sym
	for _, p := range s.Parameters {
		a.table.Declare(&Symbol{Name: p.Name.Name, Type: p.Type, IsParameter: true})
	}
	for _, inner := range s.Body.Statements {
		a.checkStatement(inner)
	}
	a.curFunc = prevFunc
	a.table.ExitScope()
}

func (a *Analyzer) checkReturn(s *ast.ReturnStatement) {
	var retType *ast.TypeNode
	if a.curFunc != nil {
		retType = a.curFunc.ReturnType
	}

	if s.Value == nil {
		if retType != nil && retType.Kind != ast.TVoid {
			a.errorf(s.Position, "missing return value for function returning %s", typeName(retType))
		}
		return
	}

	valType := a.checkExpr(s.Value)
	if retType == nil {
		return
	}
	// Advisory only (spec.md §4.3): a mismatch is recorded and the walk
	// continues; whether codegen then runs is the driver's decision (the
	// CLI stops on any type error) — see DESIGN.md's Open Question
	// resolution.
	if !assignable(retType, valType) {
		a.errorf(s.Position, "expected %s got %s", typeName(retType), typeName(valType))
	}
}

// --- expressions ---------------------------------------------------------

func (a *Analyzer) checkExpr(expr ast.Expression) *ast.TypeNode {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalType(e)
	case *ast.Identifier:
		sym, ok := a.table.Resolve(e.Name)
		if !ok {
			a.errorf(e.Position, "undefined identifier %q", e.Name)
			return &ast.TypeNode{Kind: ast.TUnknown}
		}
		return sym.Type
	case *ast.BinOp:
		return a.checkBinOp(e)
	case *ast.UnaryOp:
		return a.checkUnaryOp(e)
	case *ast.Call:
		return a.checkCall(e)
	case *ast.IndexAccess:
		arr := a.checkExpr(e.Array)
		a.checkExpr(e.Index)
		if arr.IsArray && arr.Elem != nil {
			return arr.Elem
		}
		return &ast.TypeNode{Kind: ast.TUnknown}
	case *ast.ArrayLiteral:
		var elem *ast.TypeNode
		for _, el := range e.Elements {
			elem = a.checkExpr(el)
		}
		if elem == nil {
			elem = &ast.TypeNode{Kind: ast.TUnknown}
		}
		return &ast.TypeNode{Kind: elem.Kind, IsArray: true, Elem: elem}
	default:
		a.errorf(expr.Pos(), "internal: unhandled expression type %T", expr)
		return &ast.TypeNode{Kind: ast.TUnknown}
	}
}

// checkBinOp follows spec.md §4.3's expression-typing rules literally:
// assignment returns the RHS type, "+" on two Strings is String,
// arithmetic otherwise widens to Float if either side is Float and
// returns the left type in every other case, comparisons and logicals
// return Bool.
func (a *Analyzer) checkBinOp(e *ast.BinOp) *ast.TypeNode {
	if e.Op == "=" {
		switch e.Left.(type) {
		case *ast.Identifier, *ast.IndexAccess:
		default:
			a.errorf(e.Position, "invalid assignment target")
		}
		a.checkExpr(e.Left)
		return a.checkExpr(e.Right)
	}

	lt := a.checkExpr(e.Left)
	rt := a.checkExpr(e.Right)

	switch e.Op {
	case "+":
		if lt.Kind == ast.TString && rt.Kind == ast.TString {
			return &ast.TypeNode{Kind: ast.TString}
		}
		fallthrough
	case "-", "*", "/", "%":
		if lt.Kind == ast.TFloat || rt.Kind == ast.TFloat {
			return &ast.TypeNode{Kind: ast.TFloat}
		}
		return lt
	case "==", "!=", "<", "<=", ">", ">=":
		return &ast.TypeNode{Kind: ast.TBool}
	case "&&", "||":
		return &ast.TypeNode{Kind: ast.TBool}
	default:
		a.errorf(e.Position, "internal: unknown operator %q", e.Op)
		return &ast.TypeNode{Kind: ast.TUnknown}
	}
}

// checkUnaryOp: "!" always yields Bool; every other operator propagates
// its operand's type unchanged (spec.md §4.3).
func (a *Analyzer) checkUnaryOp(e *ast.UnaryOp) *ast.TypeNode {
	operand := a.checkExpr(e.Operand)
	if e.Op == "!" {
		return &ast.TypeNode{Kind: ast.TBool}
	}
	return operand
}

// checkCall matches spec.md §4.3 exactly: a built-in catalogue name (which
// always includes "print"/"printf") is whitelisted and the call's type is
// Unknown; a user function must resolve and its arity must match —
// argument expressions are still walked (for their own diagnostics) but
// their types are never checked against the parameter types ("checked for
// side effects only, without conversion").
func (a *Analyzer) checkCall(e *ast.Call) *ast.TypeNode {
	for _, arg := range e.Args {
		a.checkExpr(arg)
	}

	if sym, ok := a.table.Resolve(e.Name); ok && sym.IsFunction {
		if len(e.Args) != len(sym.ParamTypes) {
			a.errorf(e.Position, "function %q expects %d argument(s), got %d", e.Name, len(sym.ParamTypes), len(e.Args))
		}
		return sym.ReturnType
	}

	info, ok := builtin.Lookup(e.Name)
	if !ok {
		a.errorf(e.Position, "undefined function %q", e.Name)
		return &ast.TypeNode{Kind: ast.TUnknown}
	}
	if !info.ArityOK(len(e.Args)) {
		a.errorf(e.Position, "built-in %q expects between %d and %d argument(s), got %d", e.Name, info.MinArgs, info.MaxArgs, len(e.Args))
	}
	return &ast.TypeNode{Kind: ast.TUnknown}
}

// --- helpers -------------------------------------------------------------

func (a *Analyzer) expectBool(t *ast.TypeNode, pos lexer.Position) {
	if t.Kind != ast.TBool && t.Kind != ast.TUnknown {
		a.errorf(pos, "expected Bool, got %s", typeName(t))
	}
}

func (a *Analyzer) inferType(expr ast.Expression) *ast.TypeNode {
	if expr == nil {
		return &ast.TypeNode{Kind: ast.TUnknown}
	}
	return a.checkExpr(expr)
}

// assignable reports whether a value of type from may be stored into a
// slot declared as type to. Int widens to Float; every other pairing
// requires an exact Kind match.
func assignable(to, from *ast.TypeNode) bool {
	if to == nil || from == nil {
		return true
	}
	if to.Kind == ast.TUnknown || from.Kind == ast.TUnknown {
		return true
	}
	if to.Kind == from.Kind {
		return true
	}
	if to.Kind == ast.TFloat && from.Kind == ast.TInt {
		return true
	}
	return false
}

func typeName(t *ast.TypeNode) string {
	if t == nil {
		return "Unknown"
	}
	return t.Kind.String()
}

func literalType(l *ast.Literal) *ast.TypeNode {
	switch l.Kind {
	case ast.IntLiteral:
		return &ast.TypeNode{Kind: ast.TInt}
	case ast.FloatLiteral:
		return &ast.TypeNode{Kind: ast.TFloat}
	case ast.StringLiteral:
		return &ast.TypeNode{Kind: ast.TString}
	case ast.CharLiteral:
		return &ast.TypeNode{Kind: ast.TChar}
	case ast.BoolLiteral:
		return &ast.TypeNode{Kind: ast.TBool}
	default:
		return &ast.TypeNode{Kind: ast.TUnknown}
	}
}
