// Package errors formats compiler diagnostics with source context and
// collects them across a compilation phase.
//
// The "KIND: message [file:line:column]" head line matches spec.md §7's
// required user-visible shape; the source-context block with its caret
// underneath is additive texture for terminal use, modeled on the
// teacher's error formatter.
package errors

import (
	"fmt"
	"strings"

	"github.com/oclscript/ocl/internal/lexer"
)

// Kind is one of the four diagnostic taxonomies spec.md §7 names.
type Kind string

const (
	Lexer   Kind = "LEXER"
	Parser  Kind = "PARSER"
	Type    Kind = "TYPE"
	Runtime Kind = "RUNTIME"
)

// CompilerError is a single diagnostic with position and source context.
type CompilerError struct {
	Kind    Kind
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

// NewCompilerError creates a new compiler error.
func NewCompilerError(kind Kind, pos lexer.Position, message, source, file string) *CompilerError {
	return &CompilerError{Kind: kind, Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// head renders the exact "KIND: message [file:line:column]" line spec.md
// §7 specifies.
func (e *CompilerError) head() string {
	loc := fmt.Sprintf("%d:%d", e.Pos.Line, e.Pos.Column)
	if e.File != "" {
		loc = e.File + ":" + loc
	}
	return fmt.Sprintf("%s: %s [%s]", e.Kind, e.Message, loc)
}

// Format formats the error message with a single line of source context.
// If color is true, ANSI color codes are used for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder
	sb.WriteString(e.head())
	sb.WriteString("\n")

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// getSourceLine extracts a specific 1-indexed line from the source code.
func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// getSourceContext extracts the lines from (lineNum-before) to (lineNum+after).
func (e *CompilerError) getSourceContext(lineNum, before, after int) []string {
	if e.Source == "" {
		return nil
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return nil
	}
	start := lineNum - before
	if start < 1 {
		start = 1
	}
	end := lineNum + after
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start-1 : end]
}

// FormatWithContext formats the error with surrounding source context.
func (e *CompilerError) FormatWithContext(contextLines int, color bool) string {
	var sb strings.Builder
	sb.WriteString(e.head())
	sb.WriteString("\n")

	ctx := e.getSourceContext(e.Pos.Line, contextLines, contextLines)
	if len(ctx) == 0 {
		return e.Format(color)
	}

	startLine := e.Pos.Line - contextLines
	if startLine < 1 {
		startLine = 1
	}

	for i, line := range ctx {
		currentLine := startLine + i
		lineNumStr := fmt.Sprintf("%4d | ", currentLine)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		if currentLine == e.Pos.Line {
			sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
			if color {
				sb.WriteString("\033[1;31m")
			}
			sb.WriteString("^")
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// FormatErrors formats multiple compiler errors, one per blank-line block.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, err := range errs {
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// Collector accumulates diagnostics across a single compilation phase. It
// is the "error-collector aggregator" spec.md §1 treats as a pre-existing,
// out-of-scope collaborator: a simple growable list of formatted messages
// with source locations, reused unmodified across lexer, parser, and
// type-checker phases.
type Collector struct {
	Source string
	File   string
	errs   []*CompilerError
}

// NewCollector creates a Collector that stamps every added diagnostic with
// the given source text and file name for context rendering.
func NewCollector(source, file string) *Collector {
	return &Collector{Source: source, File: file}
}

// Add records a new diagnostic.
func (c *Collector) Add(kind Kind, pos lexer.Position, format string, args ...any) {
	c.errs = append(c.errs, NewCompilerError(kind, pos, fmt.Sprintf(format, args...), c.Source, c.File))
}

// HasErrors reports whether any diagnostic has been recorded.
func (c *Collector) HasErrors() bool { return len(c.errs) > 0 }

// Errors returns every recorded diagnostic, in recording order.
func (c *Collector) Errors() []*CompilerError { return c.errs }
