// Package parser builds OCL's syntax tree from a token vector using a
// Pratt-style precedence climb indexed by an absolute cursor, per
// spec.md §4.2.
package parser

import (
	"github.com/oclscript/ocl/internal/ast"
	"github.com/oclscript/ocl/internal/errors"
	"github.com/oclscript/ocl/internal/lexer"
)

// typeNames is the fixed allow-list spec.md §4.2/§4.3 names for
// distinguishing a type name from an ordinary identifier, used both for
// the C-style declaration form and for a function's optional return type.
var typeNames = map[string]ast.TypeKind{
	"int": ast.TInt, "Int": ast.TInt,
	"float": ast.TFloat, "Float": ast.TFloat,
	"string": ast.TString, "String": ast.TString,
	"bool": ast.TBool, "Bool": ast.TBool,
	"char": ast.TChar, "Char": ast.TChar,
	"void": ast.TVoid, "Void": ast.TVoid,
}

// Parser walks a pre-scanned token vector and produces an *ast.Program.
// It never aborts: expected-but-absent tokens and unexpected tokens in
// expression position are recorded in Errors and parsing continues from
// the current token (spec.md §4.2, §7).
type Parser struct {
	tokens []lexer.Token
	cur    int
	file   string
	source string
	errs   *errors.Collector
}

// New tokenizes source and prepares a Parser over it.
func New(source, file string) *Parser {
	toks, lexErrs := lexer.Tokenize(source, file)
	errs := errors.NewCollector(source, file)
	for _, le := range lexErrs {
		errs.Add(errors.Lexer, le.Pos, "%s", le.Message)
	}
	return &Parser{tokens: toks, file: file, source: source, errs: errs}
}

// Errors returns every diagnostic recorded during lexing and parsing.
func (p *Parser) Errors() []*errors.CompilerError { return p.errs.Errors() }

// ParseProgram parses the whole token vector into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.atEnd() {
		p.skipNewlines()
		if p.atEnd() {
			break
		}
		stmt := p.parseTopLevel()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

// --- cursor primitives -----------------------------------------------

func (p *Parser) atEnd() bool {
	return p.peekRaw().Type == lexer.EOF
}

func (p *Parser) peekRaw() lexer.Token {
	if p.cur >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.cur]
}

// skipNewlines advances past any run of NEWLINE tokens. NEWLINE is
// transparent: every look-ahead or consumption point calls this first.
func (p *Parser) skipNewlines() {
	for p.cur < len(p.tokens) && p.tokens[p.cur].Type == lexer.NEWLINE {
		p.cur++
	}
}

// peek returns the next significant (non-NEWLINE) token without consuming it.
func (p *Parser) peek() lexer.Token {
	p.skipNewlines()
	return p.peekRaw()
}

// peekAt looks n significant tokens ahead of the current position (0 == peek()).
func (p *Parser) peekAt(n int) lexer.Token {
	save := p.cur
	defer func() { p.cur = save }()
	p.skipNewlines()
	for i := 0; i < n; i++ {
		if p.cur < len(p.tokens) {
			p.cur++
		}
		p.skipNewlines()
	}
	return p.peekRaw()
}

// advance consumes and returns the next significant token.
func (p *Parser) advance() lexer.Token {
	p.skipNewlines()
	tok := p.peekRaw()
	if p.cur < len(p.tokens) {
		p.cur++
	}
	return tok
}

func (p *Parser) check(tt lexer.TokenType) bool {
	return p.peek().Type == tt
}

func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of type tt, or records a diagnostic and returns
// the unconsumed current token so the caller can attempt to resynchronize.
func (p *Parser) expect(tt lexer.TokenType, what string) lexer.Token {
	tok := p.peek()
	if tok.Type == tt {
		return p.advance()
	}
	p.errorf(tok.Pos, "expected %s, got %q", what, tok.Lexeme)
	return tok
}

func (p *Parser) errorf(pos lexer.Position, format string, args ...any) {
	p.errs.Add(errors.Parser, pos, format, args...)
}

// optionalSemicolon consumes a trailing ';' if present; it is always
// optional per spec.md §4.2's "(;?)" productions.
func (p *Parser) optionalSemicolon() {
	p.match(lexer.SEMICOLON)
}

// synchronize skips tokens until a plausible statement boundary. No parse
// path calls it: after an error, parsing continues from the current token.
func (p *Parser) synchronize() {
	for !p.atEnd() {
		if p.peek().Type == lexer.SEMICOLON {
			p.advance()
			return
		}
		switch p.peek().Type {
		case lexer.FUNC, lexer.LET, lexer.IF, lexer.FOR, lexer.WHILE,
			lexer.RETURN, lexer.BREAK, lexer.CONTINUE, lexer.RBRACE:
			return
		}
		p.advance()
	}
}
