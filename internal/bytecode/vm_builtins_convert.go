package bytecode

import (
	"strconv"

	"github.com/oclscript/ocl/internal/builtin"
)

func init() {
	registerBuiltin(builtin.ToInt, vmToInt)
	registerBuiltin(builtin.ToFloat, vmToFloat)
	registerBuiltin(builtin.ToString, func(_ *VM, a []Value) Value { return StringOwned(a[0].String()) })
	registerBuiltin(builtin.ToBool, func(_ *VM, a []Value) Value { return NewBool(Truthy(a[0])) })
	registerBuiltin(builtin.TypeOf, func(_ *VM, a []Value) Value { return StringOwned(TypeName(a[0])) })
}

func vmToInt(_ *VM, args []Value) Value {
	v := args[0]
	switch v.Kind {
	case KindInt:
		return v
	case KindFloat:
		return NewInt(int64(v.Float))
	case KindBool:
		if v.Bool {
			return NewInt(1)
		}
		return NewInt(0)
	case KindString:
		n, err := strconv.ParseInt(v.Str, 10, 64)
		if err != nil {
			return NewInt(0)
		}
		return NewInt(n)
	default:
		return NewInt(0)
	}
}

func vmToFloat(_ *VM, args []Value) Value {
	v := args[0]
	switch v.Kind {
	case KindFloat:
		return v
	case KindInt:
		return NewFloat(float64(v.Int))
	case KindBool:
		if v.Bool {
			return NewFloat(1)
		}
		return NewFloat(0)
	case KindString:
		f, err := strconv.ParseFloat(v.Str, 64)
		if err != nil {
			return NewFloat(0)
		}
		return NewFloat(f)
	default:
		return NewFloat(0)
	}
}

// execToInt/execToFloat/execToString implement the TO_INT/TO_FLOAT/
// TO_STRING opcodes for catalogue completeness (spec.md §4.5's opcode
// table). Current codegen never emits them directly — the compiler
// routes toInt/toFloat/toString through CALL_BUILTIN instead, and ADD
// already covers string concatenation — but the VM still executes them
// correctly if fetched, matching the opcode table's stated effect.
func (vm *VM) execToInt() {
	v, ok := vm.pop()
	if !ok {
		return
	}
	vm.push(vmToInt(vm, []Value{v}))
}

func (vm *VM) execToFloat() {
	v, ok := vm.pop()
	if !ok {
		return
	}
	vm.push(vmToFloat(vm, []Value{v}))
}

func (vm *VM) execToString() {
	v, ok := vm.pop()
	if !ok {
		return
	}
	vm.push(StringOwned(v.String()))
}

func (vm *VM) execConcat() {
	b, ok := vm.pop()
	if !ok {
		return
	}
	a, ok := vm.pop()
	if !ok {
		return
	}
	vm.push(StringOwned(a.Str + b.Str))
}
