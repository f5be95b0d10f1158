// Package ast defines the syntax tree OCL's parser produces and the type
// checker and code generator walk.
//
// Every node carries its own source Position so diagnostics from later
// phases (type checking, codegen) can still point at the original text.
package ast

import "github.com/oclscript/ocl/internal/lexer"

// Node is implemented by every syntax tree element.
type Node interface {
	Pos() lexer.Position
}

// Statement is a Node that can appear in a Block or Program.
type Statement interface {
	Node
	stmtNode()
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	exprNode()
}

// Program is the root of the tree: an ordered sequence of top-level
// statements (VarDecl, FuncDecl, Import, or any bare statement).
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{}
}

// Identifier is both an expression (variable reference) and a building
// block for declaration names.
type Identifier struct {
	Name     string
	Position lexer.Position
}

func (i *Identifier) Pos() lexer.Position { return i.Position }
func (*Identifier) exprNode()             {}

// TypeKind enumerates the built-in type kinds spec.md §3 names.
type TypeKind int

const (
	TUnknown TypeKind = iota
	TInt
	TFloat
	TString
	TBool
	TChar
	TVoid
)

func (k TypeKind) String() string {
	switch k {
	case TInt:
		return "Int"
	case TFloat:
		return "Float"
	case TString:
		return "String"
	case TBool:
		return "Bool"
	case TChar:
		return "Char"
	case TVoid:
		return "Void"
	default:
		return "Unknown"
	}
}

// TypeNode names a declared type: a built-in kind, an optional integer
// bit-width (32/64), and an optional array flag with element type.
type TypeNode struct {
	Kind     TypeKind
	BitWidth int // 0 means unspecified; only meaningful for TInt
	IsArray  bool
	Elem     *TypeNode
	Position lexer.Position
}

func (t *TypeNode) Pos() lexer.Position { return t.Position }
