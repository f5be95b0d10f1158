package parser

import (
	"github.com/oclscript/ocl/internal/ast"
	"github.com/oclscript/ocl/internal/lexer"
)

// isTypeName reports whether lexeme is one of the fixed built-in type
// names (case-sensitive both-cased forms, per spec.md §4.3).
func isTypeName(lexeme string) bool {
	_, ok := typeNames[lexeme]
	return ok
}

// parseType parses a Type production: a built-in name, an optional
// Int bit-width literal (32 or 64), and an optional trailing "[]" making
// it an array type.
func (p *Parser) parseType() *ast.TypeNode {
	tok := p.peek()
	if tok.Type != lexer.IDENT || !isTypeName(tok.Lexeme) {
		p.errorf(tok.Pos, "expected type name, got %q", tok.Lexeme)
		p.advance()
		return &ast.TypeNode{Kind: ast.TUnknown, Position: tok.Pos}
	}
	p.advance()
	kind := typeNames[tok.Lexeme]

	t := &ast.TypeNode{Kind: kind, Position: tok.Pos}
	if kind == ast.TInt && p.check(lexer.INT) {
		width := p.peek()
		if width.IntVal == 32 || width.IntVal == 64 {
			p.advance()
			t.BitWidth = int(width.IntVal)
		}
	}

	if p.check(lexer.LBRACKET) && p.peekAt(1).Type == lexer.RBRACKET {
		p.advance()
		p.advance()
		t = &ast.TypeNode{Kind: t.Kind, BitWidth: t.BitWidth, IsArray: true, Elem: t, Position: t.Position}
	}

	return t
}
