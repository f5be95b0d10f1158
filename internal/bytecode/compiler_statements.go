package bytecode

import (
	"github.com/oclscript/ocl/internal/ast"
)

func (c *Compiler) compileStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclStatement:
		c.compileVarDecl(s)
	case *ast.Block:
		c.enterScope()
		for _, inner := range s.Statements {
			c.compileStatement(inner)
		}
		c.exitScope()
	case *ast.IfStatement:
		c.compileIf(s)
	case *ast.LoopStatement:
		if s.IsFor {
			c.compileFor(s)
		} else {
			c.compileWhile(s)
		}
	case *ast.ReturnStatement:
		c.compileReturn(s)
	case *ast.BreakStatement:
		c.compileBreak(s)
	case *ast.ContinueStatement:
		c.compileContinue(s)
	case *ast.ImportStatement:
		// no-op in codegen (spec.md §1)
	case *ast.ExpressionStatement:
		c.compileExpr(s.Expr)
		c.chunk.Emit(OpPop, 0, 0, s.Position)
	case *ast.FuncDecl:
		// handled separately by emitFunctions; nested FuncDecls don't
		// occur in OCL's grammar (function declarations are top-level
		// only), so this case is unreachable in practice.
	default:
		c.errorf(stmt.Pos(), "internal: unhandled statement type %T", stmt)
	}
}

// compileVarDecl emits the initializer (or PUSH_CONST null if absent),
// then STORE_GLOBAL when outside any function body, or STORE_VAR into a
// freshly declared local slot when inside one (spec.md §4.4).
func (c *Compiler) compileVarDecl(s *ast.VarDeclStatement) {
	if s.Value != nil {
		c.compileExpr(s.Value)
	} else {
		c.chunk.Emit(OpPushConst, uint32(c.chunk.AddConstant(Null())), 0, s.Position)
	}

	if c.funcDepth > 0 {
		slot := c.declareLocal(s.Name.Name)
		c.chunk.Emit(OpStoreVar, uint32(slot), 0, s.Position)
		return
	}
	slot := c.allocGlobal(s.Name.Name)
	c.chunk.Emit(OpStoreGlobal, uint32(slot), 0, s.Position)
}

// compileFuncDecl emits a function body wrapped in a guard jump, per
// spec.md §4.4's function-emission algorithm.
func (c *Compiler) compileFuncDecl(fn *ast.FuncDecl) {
	guardJump := c.chunk.EmitJump(OpJump, fn.Position)

	startIP := c.chunk.Len()
	idx := c.functions[fn.Name.Name]
	c.chunk.SetFunctionStart(idx, startIP)

	c.enterFunction(len(fn.Parameters))
	c.bindParams(fn.Parameters)
	for _, stmt := range fn.Body.Statements {
		c.compileStatement(stmt)
	}
	if c.chunk.Len() == startIP || c.chunk.Instructions[c.chunk.Len()-1].Op != OpReturn {
		c.chunk.Emit(OpPushConst, uint32(c.chunk.AddConstant(Null())), 0, fn.Position)
		c.chunk.Emit(OpReturn, 0, 0, fn.Position)
	}
	localCount := c.exitFunction()
	c.chunk.SetFunctionLocalCount(idx, localCount)

	c.chunk.PatchJump(guardJump)
}

func (c *Compiler) compileIf(s *ast.IfStatement) {
	c.compileExpr(s.Cond)
	elseJump := c.chunk.EmitJump(OpJumpIfFalse, s.Position)
	c.compileStatement(s.Then)

	if s.Else != nil {
		endJump := c.chunk.EmitJump(OpJump, s.Position)
		c.chunk.PatchJump(elseJump)
		c.compileStatement(s.Else)
		c.chunk.PatchJump(endJump)
	} else {
		c.chunk.PatchJump(elseJump)
	}
}

func (c *Compiler) compileWhile(s *ast.LoopStatement) {
	loopStart := c.chunk.Len()
	c.pushLoop()

	c.compileExpr(s.Cond)
	exitJump := c.chunk.EmitJump(OpJumpIfFalse, s.Position)
	c.compileStatement(s.Body)

	// continue in a while loop re-tests the condition.
	c.patchContinues(loopStart)
	c.chunk.Emit(OpJump, uint32(loopStart), 0, s.Position)
	c.chunk.PatchJump(exitJump)

	c.popLoop()
}

func (c *Compiler) compileFor(s *ast.LoopStatement) {
	c.enterScope()
	if s.Init != nil {
		c.compileStatement(s.Init)
	}

	loopStart := c.chunk.Len()
	c.pushLoop()

	var exitJump int
	hasCond := s.Cond != nil
	if hasCond {
		c.compileExpr(s.Cond)
		exitJump = c.chunk.EmitJump(OpJumpIfFalse, s.Position)
	}

	c.compileStatement(s.Body)

	// continue in a for loop jumps to the increment, compiled here —
	// its start ip is only known now that the body has been emitted.
	incrStart := c.chunk.Len()
	c.patchContinues(incrStart)
	if s.Post != nil {
		c.compileStatement(s.Post)
	}
	c.chunk.Emit(OpJump, uint32(loopStart), 0, s.Position)

	if hasCond {
		c.chunk.PatchJump(exitJump)
	}

	c.popLoop()
	c.exitScope()
}

func (c *Compiler) compileReturn(s *ast.ReturnStatement) {
	if s.Value != nil {
		c.compileExpr(s.Value)
	} else {
		c.chunk.Emit(OpPushConst, uint32(c.chunk.AddConstant(Null())), 0, s.Position)
	}
	c.chunk.Emit(OpReturn, 0, 0, s.Position)
}

func (c *Compiler) compileBreak(s *ast.BreakStatement) {
	lc := c.currentLoop()
	if lc == nil {
		c.errorf(s.Position, "break outside of loop")
		return
	}
	idx := c.chunk.EmitJump(OpJump, s.Position)
	lc.breakJumps = append(lc.breakJumps, idx)
}

func (c *Compiler) compileContinue(s *ast.ContinueStatement) {
	lc := c.currentLoop()
	if lc == nil {
		c.errorf(s.Position, "continue outside of loop")
		return
	}
	idx := c.chunk.EmitJump(OpJump, s.Position)
	lc.continueJumps = append(lc.continueJumps, idx)
}
