// Package semantic type-checks an OCL syntax tree in two passes: a
// pre-pass that registers every top-level function and global so forward
// references resolve, then a full walk that type-checks every statement
// and expression against spec.md §4.3's rules.
package semantic

import (
	"github.com/oclscript/ocl/internal/ast"
)

// Symbol is one name bound in the table: a variable, parameter, or
// function.
type Symbol struct {
	Name        string
	Type        *ast.TypeNode
	IsFunction  bool
	IsParameter bool
	ScopeLevel  int
	ParamTypes  []*ast.TypeNode // only for IsFunction
	ReturnType  *ast.TypeNode   // only for IsFunction
}

// SymbolTable is an ordered, scope-leveled set of bindings. Scope 0 holds
// globals and top-level functions; entering a block or function body
// raises the level, and exiting removes every symbol bound at that level.
type SymbolTable struct {
	symbols []*Symbol
	level   int
}

// NewSymbolTable returns an empty table positioned at the global scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// EnterScope raises the current scope level by one.
func (t *SymbolTable) EnterScope() {
	t.level++
}

// ExitScope drops every symbol bound at the current level and lowers it.
func (t *SymbolTable) ExitScope() {
	kept := t.symbols[:0]
	for _, s := range t.symbols {
		if s.ScopeLevel < t.level {
			kept = append(kept, s)
		}
	}
	t.symbols = kept
	t.level--
}

// Level reports the current scope depth (0 == global).
func (t *SymbolTable) Level() int { return t.level }

// Declare binds name at the current scope level. ok is false if name is
// already bound at this exact level (redeclaration) — shadowing an outer
// scope's binding is allowed.
func (t *SymbolTable) Declare(sym *Symbol) (ok bool) {
	for _, s := range t.symbols {
		if s.Name == sym.Name && s.ScopeLevel == t.level {
			return false
		}
	}
	sym.ScopeLevel = t.level
	t.symbols = append(t.symbols, sym)
	return true
}

// Resolve looks up name, preferring the innermost (highest-level) binding.
func (t *SymbolTable) Resolve(name string) (*Symbol, bool) {
	var best *Symbol
	for _, s := range t.symbols {
		if s.Name == name && (best == nil || s.ScopeLevel >= best.ScopeLevel) {
			best = s
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}
