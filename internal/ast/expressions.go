package ast

import "github.com/oclscript/ocl/internal/lexer"

// LiteralKind tags which of the five literal payload shapes a Literal
// expression carries.
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	FloatLiteral
	StringLiteral
	CharLiteral
	BoolLiteral
)

// Literal is a literal value parsed directly from source: an integer,
// float, string, char, or boolean.
type Literal struct {
	Kind     LiteralKind
	IntVal   int64
	FloatVal float64
	StrVal   string
	BoolVal  bool
	Position lexer.Position
}

func (l *Literal) Pos() lexer.Position { return l.Position }
func (*Literal) exprNode()             {}

// BinOp is a binary expression. Op is one of:
// + - * / % == != < <= > >= && || =
// ("=" makes BinOp double as an assignment expression, with Left required
// to be an *Identifier or *IndexAccess — see parser/expressions.go).
type BinOp struct {
	Left, Right Expression
	Op          string
	Position    lexer.Position
}

func (b *BinOp) Pos() lexer.Position { return b.Position }
func (*BinOp) exprNode()             {}

// UnaryOp is a prefix expression: "!" or "-".
type UnaryOp struct {
	Op       string
	Operand  Expression
	Position lexer.Position
}

func (u *UnaryOp) Pos() lexer.Position { return u.Position }
func (*UnaryOp) exprNode()             {}

// Call is a function invocation: a callee name and an ordered argument
// list. Builtins and user functions share this node; the distinction is
// made later by the type checker/compiler via the builtin catalogue.
type Call struct {
	Name     string
	Args     []Expression
	Position lexer.Position
}

func (c *Call) Pos() lexer.Position { return c.Position }
func (*Call) exprNode()             {}

// IndexAccess is an array-index expression: array[index]. Arrays are
// reserved but unimplemented (spec.md §1) — this node parses and
// type-checks, but codegen emits opcodes that the VM reports as
// unimplemented at runtime.
type IndexAccess struct {
	Array    Expression
	Index    Expression
	Position lexer.Position
}

func (i *IndexAccess) Pos() lexer.Position { return i.Position }
func (*IndexAccess) exprNode()             {}

// ArrayLiteral parses but is otherwise inert (spec.md §3): codegen
// compiles it to a Null constant without evaluating its elements, since
// no array value can be produced without the reserved array opcodes.
type ArrayLiteral struct {
	Elements []Expression
	Position lexer.Position
}

func (a *ArrayLiteral) Pos() lexer.Position { return a.Position }
func (*ArrayLiteral) exprNode()             {}
