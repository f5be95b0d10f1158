package parser

import (
	"github.com/oclscript/ocl/internal/ast"
	"github.com/oclscript/ocl/internal/lexer"
)

// parseTopLevel parses one top-level construct. Program.Statements is an
// ordered sequence of VarDecl, FuncDecl, Import, or any bare statement
// (spec.md §3), so this is just parseStatement under another name.
func (p *Parser) parseTopLevel() ast.Statement {
	return p.parseStatement()
}

func (p *Parser) parseStatement() ast.Statement {
	tok := p.peek()

	switch tok.Type {
	case lexer.IMPORT:
		return p.parseImport()
	case lexer.LET:
		return p.parseLetDecl()
	case lexer.FUNC:
		return p.parseFuncDecl()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.BREAK:
		p.advance()
		p.optionalSemicolon()
		return &ast.BreakStatement{Position: tok.Pos}
	case lexer.CONTINUE:
		p.advance()
		p.optionalSemicolon()
		return &ast.ContinueStatement{Position: tok.Pos}
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.IDENT:
		if isTypeName(tok.Lexeme) && p.peekAt(1).Type == lexer.IDENT {
			return p.parseCStyleDecl()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// atStatementEnd reports whether the next significant token can only end a
// statement, never start an expression — used to recognize a bare
// "return;" / "return" with nothing following.
func (p *Parser) atStatementEnd() bool {
	switch p.peek().Type {
	case lexer.SEMICOLON, lexer.RBRACE, lexer.EOF:
		return true
	default:
		return false
	}
}

// parseImport parses "Import < ident (.ident)* > ;?". It produces no
// bytecode (spec.md §1) but is retained in the tree for diagnostics.
func (p *Parser) parseImport() ast.Statement {
	importTok := p.advance()
	p.expect(lexer.LT, "'<'")

	var path []string
	first := p.expect(lexer.IDENT, "identifier")
	path = append(path, first.Lexeme)
	for p.match(lexer.DOT) {
		seg := p.expect(lexer.IDENT, "identifier")
		path = append(path, seg.Lexeme)
	}

	p.expect(lexer.GT, "'>'")
	p.optionalSemicolon()
	return &ast.ImportStatement{Path: path, Position: importTok.Pos}
}

func (p *Parser) parseLetDecl() ast.Statement {
	decl := p.parseLetDeclNoSemi()
	p.optionalSemicolon()
	return decl
}

// parseLetDeclNoSemi parses "Let name : Type (= expr)?" without consuming a
// trailing separator, so for-loop initializers can reuse it.
func (p *Parser) parseLetDeclNoSemi() *ast.VarDeclStatement {
	letTok := p.advance()
	nameTok := p.expect(lexer.IDENT, "identifier")
	name := &ast.Identifier{Name: nameTok.Lexeme, Position: nameTok.Pos}

	p.expect(lexer.COLON, "':'")
	typ := p.parseType()

	var value ast.Expression
	if p.match(lexer.ASSIGN) {
		value = p.parseExpression()
	}

	return &ast.VarDeclStatement{Name: name, Type: typ, Value: value, Position: letTok.Pos}
}

func (p *Parser) parseCStyleDecl() ast.Statement {
	decl := p.parseCStyleDeclNoSemi()
	p.optionalSemicolon()
	return decl
}

// parseCStyleDeclNoSemi parses "TypeName name (= expr)?" without consuming
// a trailing separator.
func (p *Parser) parseCStyleDeclNoSemi() *ast.VarDeclStatement {
	pos := p.peek().Pos
	typ := p.parseType()
	nameTok := p.expect(lexer.IDENT, "identifier")
	name := &ast.Identifier{Name: nameTok.Lexeme, Position: nameTok.Pos}

	var value ast.Expression
	if p.match(lexer.ASSIGN) {
		value = p.parseExpression()
	}

	return &ast.VarDeclStatement{Name: name, Type: typ, Value: value, Position: pos}
}

// parseFuncDecl parses "func [ReturnType]? name ( params ) block". The
// optional return type is disambiguated from the function name by the same
// type-name allow-list used for C-style declarations: a type name
// immediately followed by another identifier means a return type is
// present.
func (p *Parser) parseFuncDecl() ast.Statement {
	funcTok := p.advance()

	var retType *ast.TypeNode
	next := p.peek()
	if next.Type == lexer.IDENT && isTypeName(next.Lexeme) && p.peekAt(1).Type == lexer.IDENT {
		retType = p.parseType()
	}

	nameTok := p.expect(lexer.IDENT, "function name")
	name := &ast.Identifier{Name: nameTok.Lexeme, Position: nameTok.Pos}

	p.expect(lexer.LPAREN, "'('")
	var params []*ast.Param
	if !p.check(lexer.RPAREN) {
		params = append(params, p.parseParam())
		for p.match(lexer.COMMA) {
			params = append(params, p.parseParam())
		}
	}
	p.expect(lexer.RPAREN, "')'")

	body := p.parseBlock().(*ast.Block)

	return &ast.FuncDecl{Name: name, ReturnType: retType, Parameters: params, Body: body, Position: funcTok.Pos}
}

func (p *Parser) parseParam() *ast.Param {
	typ := p.parseType()
	nameTok := p.expect(lexer.IDENT, "parameter name")
	return &ast.Param{Name: &ast.Identifier{Name: nameTok.Lexeme, Position: nameTok.Pos}, Type: typ, Position: nameTok.Pos}
}

func (p *Parser) parseBlock() ast.Statement {
	lb := p.expect(lexer.LBRACE, "'{'")
	var stmts []ast.Statement
	for !p.check(lexer.RBRACE) && !p.atEnd() {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(lexer.RBRACE, "'}'")
	return &ast.Block{Statements: stmts, Position: lb.Pos}
}

func (p *Parser) parseIf() ast.Statement {
	ifTok := p.advance()
	p.expect(lexer.LPAREN, "'('")
	cond := p.parseExpression()
	p.expect(lexer.RPAREN, "')'")
	then := p.parseBlock().(*ast.Block)

	var elseStmt ast.Statement
	if p.match(lexer.ELSE) {
		if p.check(lexer.IF) {
			elseStmt = p.parseIf()
		} else {
			elseStmt = p.parseBlock()
		}
	}

	return &ast.IfStatement{Cond: cond, Then: then, Else: elseStmt, Position: ifTok.Pos}
}

func (p *Parser) parseWhile() ast.Statement {
	whileTok := p.advance()
	p.expect(lexer.LPAREN, "'('")
	cond := p.parseExpression()
	p.expect(lexer.RPAREN, "')'")
	body := p.parseBlock().(*ast.Block)
	return &ast.LoopStatement{IsFor: false, Cond: cond, Body: body, Position: whileTok.Pos}
}

func (p *Parser) parseFor() ast.Statement {
	forTok := p.advance()
	p.expect(lexer.LPAREN, "'('")

	var init ast.Statement
	if !p.check(lexer.SEMICOLON) {
		init = p.parseForInit()
	}
	p.expect(lexer.SEMICOLON, "';'")

	var cond ast.Expression
	if !p.check(lexer.SEMICOLON) {
		cond = p.parseExpression()
	}
	p.expect(lexer.SEMICOLON, "';'")

	var post ast.Statement
	if !p.check(lexer.RPAREN) {
		postExpr := p.parseExpression()
		post = &ast.ExpressionStatement{Expr: postExpr, Position: postExpr.Pos()}
	}
	p.expect(lexer.RPAREN, "')'")

	body := p.parseBlock().(*ast.Block)
	return &ast.LoopStatement{IsFor: true, Init: init, Cond: cond, Post: post, Body: body, Position: forTok.Pos}
}

// parseForInit parses a for-loop's initializer clause, which may be a Let
// declaration, a C-style declaration, or a plain expression — never
// consuming the separating ';', which the caller owns.
func (p *Parser) parseForInit() ast.Statement {
	tok := p.peek()
	switch {
	case tok.Type == lexer.LET:
		return p.parseLetDeclNoSemi()
	case tok.Type == lexer.IDENT && isTypeName(tok.Lexeme) && p.peekAt(1).Type == lexer.IDENT:
		return p.parseCStyleDeclNoSemi()
	default:
		expr := p.parseExpression()
		return &ast.ExpressionStatement{Expr: expr, Position: expr.Pos()}
	}
}

func (p *Parser) parseReturn() ast.Statement {
	retTok := p.advance()
	var value ast.Expression
	if !p.atStatementEnd() {
		value = p.parseExpression()
	}
	p.optionalSemicolon()
	return &ast.ReturnStatement{Value: value, Position: retTok.Pos}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.peek()
	expr := p.parseExpression()
	p.optionalSemicolon()
	return &ast.ExpressionStatement{Expr: expr, Position: tok.Pos}
}
