package bytecode

import (
	"strings"

	"github.com/oclscript/ocl/internal/builtin"
)

func init() {
	registerBuiltin(builtin.StrLen, vmStrLen)
	registerBuiltin(builtin.Substr, vmSubstr)
	registerBuiltin(builtin.ToUpperCase, func(_ *VM, a []Value) Value { return StringOwned(strings.ToUpper(a[0].Str)) })
	registerBuiltin(builtin.ToLowerCase, func(_ *VM, a []Value) Value { return StringOwned(strings.ToLower(a[0].Str)) })
	registerBuiltin(builtin.StrContains, func(_ *VM, a []Value) Value { return NewBool(strings.Contains(a[0].Str, a[1].Str)) })
	registerBuiltin(builtin.StrIndexOf, func(_ *VM, a []Value) Value { return NewInt(int64(strings.Index(a[0].Str, a[1].Str))) })
	registerBuiltin(builtin.StrReplace, func(_ *VM, a []Value) Value {
		return StringOwned(strings.ReplaceAll(a[0].Str, a[1].Str, a[2].Str))
	})
	registerBuiltin(builtin.StrTrim, func(_ *VM, a []Value) Value { return StringOwned(strings.TrimSpace(a[0].Str)) })
	registerBuiltin(builtin.StrSplit, vmStrSplit)
}

func vmStrLen(_ *VM, args []Value) Value {
	return NewInt(int64(len(args[0].Str)))
}

// vmSubstr is substr(s, start, end?): end defaults to len(s). Out-of-
// range bounds clamp rather than error, since substr has no runtime-
// error path in the catalogue.
func vmSubstr(_ *VM, args []Value) Value {
	s := args[0].Str
	start := int(asInt(args[1]))
	end := len(s)
	if len(args) > 2 {
		end = int(asInt(args[2]))
	}
	if start < 0 {
		start = 0
	}
	if end > len(s) {
		end = len(s)
	}
	if end < 0 {
		end = 0
	}
	if start > end {
		start = end
	}
	return StringOwned(s[start:end])
}

// vmStrSplit returns the token count rather than an array of tokens —
// OCL has no array value shape to return them in (spec.md §9 open
// question on strSplit's return shape).
func vmStrSplit(_ *VM, args []Value) Value {
	sep := args[1].Str
	if sep == "" {
		return NewInt(int64(len(args[0].Str)))
	}
	return NewInt(int64(len(strings.Split(args[0].Str, sep))))
}
