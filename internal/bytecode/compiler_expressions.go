package bytecode

import (
	"github.com/oclscript/ocl/internal/ast"
)

// compileExpr emits an expression postfix (operands first, then the
// opcode) and always leaves exactly one value on the stack (spec.md
// §4.4).
func (c *Compiler) compileExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Literal:
		c.compileLiteral(e)
	case *ast.Identifier:
		c.compileIdentifier(e)
	case *ast.BinOp:
		c.compileBinOp(e)
	case *ast.UnaryOp:
		c.compileUnaryOp(e)
	case *ast.Call:
		c.compileCall(e)
	case *ast.IndexAccess:
		c.compileExpr(e.Array)
		c.compileExpr(e.Index)
		c.chunk.Emit(OpArrayGet, 0, 0, e.Position)
	case *ast.ArrayLiteral:
		// Inert (spec.md §3): no value can be produced for an array
		// literal without the reserved array opcodes, so it compiles to
		// Null rather than failing codegen outright.
		c.chunk.Emit(OpPushConst, uint32(c.chunk.AddConstant(Null())), 0, e.Position)
	default:
		c.errorf(expr.Pos(), "internal: unhandled expression type %T", expr)
	}
}

func (c *Compiler) compileLiteral(l *ast.Literal) {
	var v Value
	switch l.Kind {
	case ast.IntLiteral:
		v = NewInt(l.IntVal)
	case ast.FloatLiteral:
		v = NewFloat(l.FloatVal)
	case ast.StringLiteral:
		v = StringBorrow(l.StrVal)
	case ast.CharLiteral:
		r := rune(0)
		for _, rr := range l.StrVal {
			r = rr
			break
		}
		v = NewChar(r)
	case ast.BoolLiteral:
		v = NewBool(l.BoolVal)
	default:
		v = Null()
	}
	c.chunk.Emit(OpPushConst, uint32(c.chunk.AddConstant(v)), 0, l.Position)
}

func (c *Compiler) compileIdentifier(id *ast.Identifier) {
	slot, isGlobal, ok := c.resolveVariable(id.Name)
	if !ok {
		c.errorf(id.Position, "internal: unresolved identifier %q reached codegen", id.Name)
		c.chunk.Emit(OpPushConst, uint32(c.chunk.AddConstant(Null())), 0, id.Position)
		return
	}
	if isGlobal {
		c.chunk.Emit(OpLoadGlobal, uint32(slot), 0, id.Position)
	} else {
		c.chunk.Emit(OpLoadVar, uint32(slot), 0, id.Position)
	}
}

func (c *Compiler) compileBinOp(e *ast.BinOp) {
	if e.Op == "=" {
		c.compileAssign(e)
		return
	}

	c.compileExpr(e.Left)
	c.compileExpr(e.Right)

	op, ok := binOpCodes[e.Op]
	if !ok {
		c.errorf(e.Position, "internal: unknown operator %q", e.Op)
		return
	}
	c.chunk.Emit(op, 0, 0, e.Position)
}

var binOpCodes = map[string]OpCode{
	"+": OpAdd, "-": OpSub, "*": OpMul, "/": OpDiv, "%": OpMod,
	"==": OpEq, "!=": OpNe, "<": OpLt, "<=": OpLe, ">": OpGt, ">=": OpGe,
	"&&": OpAnd, "||": OpOr,
}

// compileAssign emits the RHS, stores it into the LHS slot, then
// reloads the slot so the assignment itself still yields a value —
// needed since assignment is an expression, not just a statement, and
// the instruction set has no stack-duplicate opcode to reuse the value
// already computed.
func (c *Compiler) compileAssign(e *ast.BinOp) {
	c.compileExpr(e.Right)

	switch lhs := e.Left.(type) {
	case *ast.Identifier:
		slot, isGlobal, ok := c.resolveVariable(lhs.Name)
		if !ok {
			c.errorf(lhs.Position, "internal: unresolved identifier %q reached codegen", lhs.Name)
			return
		}
		if isGlobal {
			c.chunk.Emit(OpStoreGlobal, uint32(slot), 0, e.Position)
			c.chunk.Emit(OpLoadGlobal, uint32(slot), 0, e.Position)
		} else {
			c.chunk.Emit(OpStoreVar, uint32(slot), 0, e.Position)
			c.chunk.Emit(OpLoadVar, uint32(slot), 0, e.Position)
		}
	case *ast.IndexAccess:
		c.compileExpr(lhs.Array)
		c.compileExpr(lhs.Index)
		c.chunk.Emit(OpArraySet, 0, 0, e.Position)
		c.chunk.Emit(OpPushConst, uint32(c.chunk.AddConstant(Null())), 0, e.Position)
	default:
		c.errorf(e.Position, "internal: invalid assignment target reached codegen")
	}
}

func (c *Compiler) compileUnaryOp(e *ast.UnaryOp) {
	c.compileExpr(e.Operand)
	switch e.Op {
	case "!":
		c.chunk.Emit(OpNot, 0, 0, e.Position)
	case "-":
		c.chunk.Emit(OpNeg, 0, 0, e.Position)
	default:
		c.errorf(e.Position, "internal: unknown unary operator %q", e.Op)
	}
}

// compileCall emits every argument left-to-right (so the leftmost
// argument ends up deepest on the stack, per the VM's call protocol),
// then CALL_BUILTIN for a catalogue name or CALL for a user function.
func (c *Compiler) compileCall(e *ast.Call) {
	for _, arg := range e.Args {
		c.compileExpr(arg)
	}
	argc := uint32(len(e.Args))

	if info, ok := isBuiltinName(e.Name); ok {
		c.chunk.Emit(OpCallBuiltin, uint32(info.ID), argc, e.Position)
		return
	}

	idx, ok := c.functions[e.Name]
	if !ok {
		c.errorf(e.Position, "internal: unresolved function %q reached codegen", e.Name)
		return
	}
	c.chunk.Emit(OpCall, uint32(idx), argc, e.Position)
}
