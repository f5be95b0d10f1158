package parser

import (
	"github.com/oclscript/ocl/internal/ast"
	"github.com/oclscript/ocl/internal/lexer"
)

// parseExpression is the entry point into the precedence climb described
// in spec.md §4.2, loose to tight:
//
//	assignment (=, right-assoc) -> || -> && -> equality (== !=) ->
//	comparison (< <= > >=) -> additive (+ -) -> multiplicative (* / %) ->
//	unary (! -) -> call/index -> primary
func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expression {
	left := p.parseOr()

	if p.check(lexer.ASSIGN) {
		eq := p.advance()
		right := p.parseAssignment() // right-associative

		switch left.(type) {
		case *ast.Identifier, *ast.IndexAccess:
			return &ast.BinOp{Left: left, Op: "=", Right: right, Position: eq.Pos}
		default:
			p.errorf(eq.Pos, "invalid assignment target")
			return left
		}
	}
	return left
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.check(lexer.OROR) {
		op := p.advance()
		right := p.parseAnd()
		left = &ast.BinOp{Left: left, Op: "||", Right: right, Position: op.Pos}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseEquality()
	for p.check(lexer.ANDAND) {
		op := p.advance()
		right := p.parseEquality()
		left = &ast.BinOp{Left: left, Op: "&&", Right: right, Position: op.Pos}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseComparison()
	for p.check(lexer.EQ) || p.check(lexer.NE) {
		op := p.advance()
		right := p.parseComparison()
		left = &ast.BinOp{Left: left, Op: op.Lexeme, Right: right, Position: op.Pos}
	}
	return left
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()
	for p.check(lexer.LT) || p.check(lexer.LE) || p.check(lexer.GT) || p.check(lexer.GE) {
		op := p.advance()
		right := p.parseAdditive()
		left = &ast.BinOp{Left: left, Op: op.Lexeme, Right: right, Position: op.Pos}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.check(lexer.PLUS) || p.check(lexer.MINUS) {
		op := p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinOp{Left: left, Op: op.Lexeme, Right: right, Position: op.Pos}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.check(lexer.STAR) || p.check(lexer.SLASH) || p.check(lexer.PERCENT) {
		op := p.advance()
		right := p.parseUnary()
		left = &ast.BinOp{Left: left, Op: op.Lexeme, Right: right, Position: op.Pos}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.check(lexer.BANG) || p.check(lexer.MINUS) {
		op := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryOp{Op: op.Lexeme, Operand: operand, Position: op.Pos}
	}
	return p.parseCallOrIndex()
}

func (p *Parser) parseCallOrIndex() ast.Expression {
	expr := p.parsePrimary()
	for p.check(lexer.LBRACKET) {
		lb := p.advance()
		index := p.parseExpression()
		p.expect(lexer.RBRACKET, "']'")
		expr = &ast.IndexAccess{Array: expr, Index: index, Position: lb.Pos}
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()

	switch tok.Type {
	case lexer.TRUE:
		p.advance()
		return &ast.Literal{Kind: ast.BoolLiteral, BoolVal: true, Position: tok.Pos}
	case lexer.FALSE:
		p.advance()
		return &ast.Literal{Kind: ast.BoolLiteral, BoolVal: false, Position: tok.Pos}
	case lexer.INT:
		p.advance()
		return &ast.Literal{Kind: ast.IntLiteral, IntVal: tok.IntVal, Position: tok.Pos}
	case lexer.FLOAT:
		p.advance()
		return &ast.Literal{Kind: ast.FloatLiteral, FloatVal: tok.FloatVal, Position: tok.Pos}
	case lexer.STRING:
		p.advance()
		return &ast.Literal{Kind: ast.StringLiteral, StrVal: tok.StrVal, Position: tok.Pos}
	case lexer.CHAR:
		p.advance()
		return &ast.Literal{Kind: ast.CharLiteral, StrVal: tok.StrVal, Position: tok.Pos}
	case lexer.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(lexer.RPAREN, "')'")
		return expr
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.IDENT:
		name := p.advance()
		if p.check(lexer.LPAREN) {
			return p.parseCall(name)
		}
		return &ast.Identifier{Name: name.Lexeme, Position: name.Pos}
	default:
		p.errorf(tok.Pos, "unexpected token %q in expression", tok.Lexeme)
		p.advance()
		return &ast.Identifier{Name: "", Position: tok.Pos}
	}
}

// parseArrayLiteral parses "[ expr, expr, ... ]". Array literals are inert
// per spec.md §3 — they parse and type-check, but no codegen path
// produces a runnable value from one, since array opcodes are reserved
// but unimplemented (spec.md §1).
func (p *Parser) parseArrayLiteral() ast.Expression {
	lb := p.advance()
	var elems []ast.Expression
	if !p.check(lexer.RBRACKET) {
		elems = append(elems, p.parseExpression())
		for p.match(lexer.COMMA) {
			elems = append(elems, p.parseExpression())
		}
	}
	p.expect(lexer.RBRACKET, "']'")
	return &ast.ArrayLiteral{Elements: elems, Position: lb.Pos}
}

// parseCall parses a call's "(" ... ")" argument list. For callees named
// "print" or "printf", an additional ":"-separated continuation is
// accepted after the first argument (spec.md §4.2) — both shapes build
// the same Call node.
func (p *Parser) parseCall(name lexer.Token) ast.Expression {
	p.advance() // consume '('
	var args []ast.Expression

	if !p.check(lexer.RPAREN) {
		args = append(args, p.parseExpression())
		for p.match(lexer.COMMA) {
			args = append(args, p.parseExpression())
		}
		if (name.Lexeme == "print" || name.Lexeme == "printf") && p.check(lexer.COLON) {
			p.advance()
			args = append(args, p.parseExpression())
			for p.match(lexer.COMMA) {
				args = append(args, p.parseExpression())
			}
		}
	}

	p.expect(lexer.RPAREN, "')'")
	return &ast.Call{Name: name.Lexeme, Args: args, Position: name.Pos}
}
