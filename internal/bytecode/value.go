// Package bytecode holds OCL's runtime Value representation, the
// instruction/chunk container the code generator emits into, the two-pass
// compiler itself, and the stack-based VM that executes the result.
package bytecode

import "fmt"

// ValueKind tags which of Value's fields is live.
type ValueKind byte

const (
	KindNull ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindChar
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindChar:
		return "Char"
	case KindString:
		return "String"
	default:
		return "Unknown"
	}
}

// Value is a tagged union over OCL's six runtime value shapes (spec.md
// §3). Owned is meaningful only when Kind is KindString: true means this
// Value is responsible for the string ever being released (a no-op under
// Go's GC, see Release); false means it is a *borrow* — an alias into the
// constant pool or a live slot that must never be treated as exclusively
// owned. The distinction is load-bearing at OP_RETURN: the return slot's
// string must be promoted to owned before the frame's locals are
// discarded underneath it, or the returned Value would alias freed
// memory. See MakeOwned and the VM's call/return protocol.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Bool  bool
	Char  rune
	Str   string
	Owned bool
}

// Null is the absence of a value — the default-initialized Value.
func Null() Value { return Value{Kind: KindNull} }

func NewInt(i int64) Value     { return Value{Kind: KindInt, Int: i} }
func NewFloat(f float64) Value { return Value{Kind: KindFloat, Float: f} }
func NewBool(b bool) Value     { return Value{Kind: KindBool, Bool: b} }
func NewChar(c rune) Value     { return Value{Kind: KindChar, Char: c} }

// StringBorrow constructs a string Value that aliases s without claiming
// ownership — used for constant-pool and variable-slot reads.
func StringBorrow(s string) Value { return Value{Kind: KindString, Str: s, Owned: false} }

// StringOwned constructs a string Value responsible for its own buffer —
// used for freshly computed strings (concatenation, conversions, builtin
// results).
func StringOwned(s string) Value { return Value{Kind: KindString, Str: s, Owned: true} }

// MakeOwned promotes v to an owned copy. It is idempotent for non-strings
// and for strings that are already owned — in both cases v is returned
// unchanged, matching spec.md §3's make_owned contract. Go strings are
// immutable, so "copying" costs nothing beyond flipping the flag; no new
// backing buffer is actually allocated.
func MakeOwned(v Value) Value {
	if v.Kind != KindString || v.Owned {
		return v
	}
	v.Owned = true
	return v
}

// Release is the borrow-aware counterpart to a C value_free: a no-op
// under Go's garbage collector, kept only so the VM's opcode handlers can
// follow the same acquire/release shape spec.md §4.5 describes (POP,
// STORE_VAR, STORE_GLOBAL all "release" the value they replace) without
// every call site having to know that the release itself does nothing.
func Release(Value) {}

// Truthy implements spec.md §4.5's truthiness table: Bool is itself,
// Int/Float are non-zero, String is non-empty, Char is non-nul, Null is
// always false.
func Truthy(v Value) bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int != 0
	case KindFloat:
		return v.Float != 0
	case KindString:
		return v.Str != ""
	case KindChar:
		return v.Char != 0
	default:
		return false
	}
}

// TypeName returns the name the typeOf builtin reports.
func TypeName(v Value) string { return v.Kind.String() }

func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindChar:
		return string(v.Char)
	case KindString:
		return v.Str
	default:
		return "<unknown>"
	}
}
