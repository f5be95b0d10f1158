package lexer

import "fmt"

// Position identifies a single point in a source file, used by tokens,
// AST nodes, and bytecode instructions alike so diagnostics can always
// point back at the original text.
type Position struct {
	File   string
	Line   int
	Column int
}

// String renders the position as "file:line:column", or "line:column" when
// no file name is known (e.g. the zero Position the compiler gives its
// implicit entry epilogue).
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}
