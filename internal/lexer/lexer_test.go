package lexer

import "testing"

func TestNextTokenKeywordsAndOperators(t *testing.T) {
	input := `Let x = 1 + 2
func add(a, b) -> {
	if a == b { return a; } else { return b; }
}
while x < 10 { x = x + 1; }
for i = 0; i < 3; i = i + 1 { continue; }
break true false Import declare
! != <= >= && ||`

	tests := []struct {
		typ    TokenType
		lexeme string
	}{
		{LET, "Let"}, {IDENT, "x"}, {ASSIGN, "="}, {INT, "1"}, {PLUS, "+"}, {INT, "2"}, {NEWLINE, "\n"},
		{FUNC, "func"}, {IDENT, "add"}, {LPAREN, "("}, {IDENT, "a"}, {COMMA, ","}, {IDENT, "b"}, {RPAREN, ")"},
		{ARROW, "->"}, {LBRACE, "{"}, {NEWLINE, "\n"},
		{IF, "if"}, {IDENT, "a"}, {EQ, "=="}, {IDENT, "b"}, {LBRACE, "{"},
		{RETURN, "return"}, {IDENT, "a"}, {SEMICOLON, ";"}, {RBRACE, "}"},
		{ELSE, "else"}, {LBRACE, "{"},
		{RETURN, "return"}, {IDENT, "b"}, {SEMICOLON, ";"}, {RBRACE, "}"}, {NEWLINE, "\n"},
		{RBRACE, "}"}, {NEWLINE, "\n"},
		{WHILE, "while"}, {IDENT, "x"}, {LT, "<"}, {INT, "10"}, {LBRACE, "{"},
		{IDENT, "x"}, {ASSIGN, "="}, {IDENT, "x"}, {PLUS, "+"}, {INT, "1"}, {SEMICOLON, ";"}, {RBRACE, "}"}, {NEWLINE, "\n"},
		{FOR, "for"}, {IDENT, "i"}, {ASSIGN, "="}, {INT, "0"}, {SEMICOLON, ";"},
		{IDENT, "i"}, {LT, "<"}, {INT, "3"}, {SEMICOLON, ";"},
		{IDENT, "i"}, {ASSIGN, "="}, {IDENT, "i"}, {PLUS, "+"}, {INT, "1"}, {LBRACE, "{"},
		{CONTINUE, "continue"}, {SEMICOLON, ";"}, {RBRACE, "}"}, {NEWLINE, "\n"},
		{BREAK, "break"}, {TRUE, "true"}, {FALSE, "false"}, {IMPORT, "Import"}, {DECLARE, "declare"}, {NEWLINE, "\n"},
		{BANG, "!"}, {NE, "!="}, {LE, "<="}, {GE, ">="}, {ANDAND, "&&"}, {OROR, "||"},
		{EOF, ""},
	}

	l := New(input, "test.ocl")
	for i, tt := range tests {
		tok := l.Next()
		if tok.Type != tt.typ {
			t.Fatalf("test[%d]: token type wrong. expected=%s, got=%s (lexeme %q)", i, tt.typ, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.lexeme {
			t.Fatalf("test[%d]: lexeme wrong. expected=%q, got=%q", i, tt.lexeme, tok.Lexeme)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	toks, errs := Tokenize("1 23 3.14 0.5", "test.ocl")
	if len(errs) != 0 {
		t.Fatalf("unexpected lexer errors: %v", errs)
	}
	want := []struct {
		typ   TokenType
		ival  int64
		fval  float64
	}{
		{INT, 1, 0}, {INT, 23, 0}, {FLOAT, 0, 3.14}, {FLOAT, 0, 0.5}, {EOF, 0, 0},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Type != w.typ {
			t.Fatalf("tok[%d] type = %s, want %s", i, toks[i].Type, w.typ)
		}
		if w.typ == INT && toks[i].IntVal != w.ival {
			t.Fatalf("tok[%d] intval = %d, want %d", i, toks[i].IntVal, w.ival)
		}
		if w.typ == FLOAT && toks[i].FloatVal != w.fval {
			t.Fatalf("tok[%d] floatval = %f, want %f", i, toks[i].FloatVal, w.fval)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`"line\nbreak"`, "line\nbreak"},
		{`"tab\there"`, "tab\there"},
		{`"quote\"inside"`, `quote"inside`},
		{`"back\\slash"`, `back\slash`},
		{`"cr\rhere"`, "cr\rhere"},
	}
	for _, tt := range tests {
		l := New(tt.input, "test.ocl")
		tok := l.Next()
		if tok.Type != STRING {
			t.Fatalf("input %q: type = %s, want STRING", tt.input, tok.Type)
		}
		if tok.StrVal != tt.want {
			t.Fatalf("input %q: StrVal = %q, want %q", tt.input, tok.StrVal, tt.want)
		}
	}
}

func TestCharLiteralTaggedSeparately(t *testing.T) {
	l := New(`'a'`, "test.ocl")
	tok := l.Next()
	if tok.Type != CHAR {
		t.Fatalf("type = %s, want CHAR", tok.Type)
	}
	if tok.StrVal != "a" {
		t.Fatalf("StrVal = %q, want %q", tok.StrVal, "a")
	}
}

func TestUnterminatedStringIsTolerated(t *testing.T) {
	toks, errs := Tokenize(`"never closed`, "test.ocl")
	if len(errs) != 1 {
		t.Fatalf("expected exactly one lexer error, got %d: %v", len(errs), errs)
	}
	if errs[0].Message != "unterminated string literal" {
		t.Fatalf("unexpected error message: %q", errs[0].Message)
	}
	// scanning continues: the trailing EOF token is still produced.
	if toks[len(toks)-1].Type != EOF {
		t.Fatalf("expected scan to reach EOF after the unterminated literal")
	}
}

func TestUnknownCharacterIsTolerated(t *testing.T) {
	toks, errs := Tokenize("x = 1 @ 2", "test.ocl")
	if len(errs) != 1 {
		t.Fatalf("expected exactly one lexer error, got %d: %v", len(errs), errs)
	}
	if errs[0].Message != "unexpected character '@'" {
		t.Fatalf("unexpected error message: %q", errs[0].Message)
	}
	// scanning resumes past the bad character rather than aborting.
	foundTwo := false
	for _, tok := range toks {
		if tok.Type == INT && tok.IntVal == 2 {
			foundTwo = true
		}
	}
	if !foundTwo {
		t.Fatalf("expected scanning to continue past the illegal character, tokens: %v", toks)
	}
}

func TestPositionTracking(t *testing.T) {
	input := "ab\ncd"
	l := New(input, "test.ocl")

	tok := l.Next() // "ab"
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Fatalf("first ident pos = %d:%d, want 1:1", tok.Pos.Line, tok.Pos.Column)
	}

	tok = l.Next() // NEWLINE
	if tok.Type != NEWLINE {
		t.Fatalf("expected NEWLINE, got %s", tok.Type)
	}

	tok = l.Next() // "cd"
	if tok.Pos.Line != 2 || tok.Pos.Column != 1 {
		t.Fatalf("second ident pos = %d:%d, want 2:1", tok.Pos.Line, tok.Pos.Column)
	}
}

func TestMultiByteRuneColumnsCountRunes(t *testing.T) {
	// "café" is 4 runes but 5 bytes (é is 2 bytes in UTF-8); isLetter
	// accepts non-ASCII letters, so it lexes as one identifier, and the
	// identifier that follows must be positioned by rune count, not byte
	// offset.
	input := "café x"
	l := New(input, "test.ocl")
	first := l.Next()
	if first.Lexeme != "café" {
		t.Fatalf("lexeme = %q, want %q", first.Lexeme, "café")
	}
	second := l.Next()
	if second.Lexeme != "x" || second.Pos.Column != 6 {
		t.Fatalf("second token = %q at column %d, want \"x\" at column 6", second.Lexeme, second.Pos.Column)
	}
}

func TestBlockCommentSkipped(t *testing.T) {
	toks, errs := Tokenize("x /# a comment #/ = 1", "test.ocl")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(toks) != 4 { // IDENT, ASSIGN, INT, EOF
		t.Fatalf("got %d tokens, want 4: %v", len(toks), toks)
	}
	if toks[0].Type != IDENT || toks[1].Type != ASSIGN || toks[2].Type != INT {
		t.Fatalf("unexpected token sequence: %v", toks)
	}
}

func TestLookupIdentIsCaseSensitive(t *testing.T) {
	if LookupIdent("let") != IDENT {
		t.Fatalf("lowercase \"let\" should not be a keyword (keyword is \"Let\")")
	}
	if LookupIdent("Let") != LET {
		t.Fatalf("\"Let\" should lex as LET")
	}
	if LookupIdent("import") != IDENT {
		t.Fatalf("lowercase \"import\" should not be a keyword (keyword is \"Import\")")
	}
}
