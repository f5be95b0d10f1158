package ast

import "github.com/oclscript/ocl/internal/lexer"

// VarDeclStatement is "Let name : Type (= expr)? ;?" or the C-style
// "TypeName name (= expr)? ;?" form (spec.md §4.2) — both parse to the
// same node shape.
type VarDeclStatement struct {
	Name     *Identifier
	Type     *TypeNode // nil when the declared type is to be inferred from Value
	Value    Expression
	Position lexer.Position
}

func (v *VarDeclStatement) Pos() lexer.Position { return v.Position }
func (*VarDeclStatement) stmtNode()             {}

// Param is a single function parameter: name and declared type.
type Param struct {
	Name     *Identifier
	Type     *TypeNode
	Position lexer.Position
}

func (p *Param) Pos() lexer.Position { return p.Position }

// FuncDecl is a top-level function declaration.
type FuncDecl struct {
	Name       *Identifier
	ReturnType *TypeNode // nil means Void
	Parameters []*Param
	Body       *Block
	Position   lexer.Position
}

func (f *FuncDecl) Pos() lexer.Position { return f.Position }
func (*FuncDecl) stmtNode()             {}

// Block is an ordered, scoped sequence of statements.
type Block struct {
	Statements []Statement
	Position   lexer.Position
}

func (b *Block) Pos() lexer.Position { return b.Position }
func (*Block) stmtNode()             {}

// IfStatement is "if (cond) block [else (block|if)]".
type IfStatement struct {
	Cond     Expression
	Then     *Block
	Else     Statement // *Block, *IfStatement, or nil
	Position lexer.Position
}

func (i *IfStatement) Pos() lexer.Position { return i.Position }
func (*IfStatement) stmtNode()             {}

// LoopStatement covers both "while (cond) block" and
// "for (init; cond; incr) block" — IsFor distinguishes the two; Init and
// Post are only ever populated for the for-form.
type LoopStatement struct {
	IsFor    bool
	Init     Statement  // Let, C-style decl, or expression statement; for-only
	Cond     Expression // optional for for-loops, required for while
	Post     Statement  // expression statement; for-only
	Body     *Block
	Position lexer.Position
}

func (l *LoopStatement) Pos() lexer.Position { return l.Position }
func (*LoopStatement) stmtNode()             {}

// ReturnStatement is "return expr? ;?".
type ReturnStatement struct {
	Value    Expression // nil for a bare "return;"
	Position lexer.Position
}

func (r *ReturnStatement) Pos() lexer.Position { return r.Position }
func (*ReturnStatement) stmtNode()             {}

// BreakStatement is "break ;?".
type BreakStatement struct{ Position lexer.Position }

func (b *BreakStatement) Pos() lexer.Position { return b.Position }
func (*BreakStatement) stmtNode()             {}

// ContinueStatement is "continue ;?".
type ContinueStatement struct{ Position lexer.Position }

func (c *ContinueStatement) Pos() lexer.Position { return c.Position }
func (*ContinueStatement) stmtNode()             {}

// ExpressionStatement wraps any expression used as a statement (chiefly
// Call expressions, e.g. "print(x);", and assignments, which are parsed
// as a BinOp with Op "=" whose Left is an *Identifier or *IndexAccess —
// see DESIGN.md's Open Question resolution for the rejected-LHS case).
type ExpressionStatement struct {
	Expr     Expression
	Position lexer.Position
}

func (e *ExpressionStatement) Pos() lexer.Position { return e.Position }
func (*ExpressionStatement) stmtNode()              {}

// ImportStatement is "Import < identifier ( . identifier )? >" — parsed,
// but produces no bytecode (spec.md §1).
type ImportStatement struct {
	Path     []string
	Position lexer.Position
}

func (i *ImportStatement) Pos() lexer.Position { return i.Position }
func (*ImportStatement) stmtNode()             {}
