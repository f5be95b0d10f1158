package bytecode

import (
	"math"

	"github.com/oclscript/ocl/internal/builtin"
)

func init() {
	registerBuiltin(builtin.Abs, vmAbs)
	registerBuiltin(builtin.Sqrt, floatUnary(math.Sqrt))
	registerBuiltin(builtin.Pow, floatBinary(math.Pow))
	registerBuiltin(builtin.Sin, floatUnary(math.Sin))
	registerBuiltin(builtin.Cos, floatUnary(math.Cos))
	registerBuiltin(builtin.Tan, floatUnary(math.Tan))
	registerBuiltin(builtin.Floor, floatUnary(math.Floor))
	registerBuiltin(builtin.Ceil, floatUnary(math.Ceil))
	registerBuiltin(builtin.Round, floatUnary(math.Round))
	registerBuiltin(builtin.Max, vmMax)
	registerBuiltin(builtin.Min, vmMin)
}

func floatUnary(f func(float64) float64) func(*VM, []Value) Value {
	return func(_ *VM, args []Value) Value {
		return NewFloat(f(asFloat(args[0])))
	}
}

func floatBinary(f func(float64, float64) float64) func(*VM, []Value) Value {
	return func(_ *VM, args []Value) Value {
		return NewFloat(f(asFloat(args[0]), asFloat(args[1])))
	}
}

// vmAbs preserves the operand's kind (Int stays Int, Float stays Float),
// matching the type checker's Unknown-return leniency rather than
// forcing every caller through a Float result.
func vmAbs(_ *VM, args []Value) Value {
	v := args[0]
	if v.Kind == KindFloat {
		return NewFloat(math.Abs(v.Float))
	}
	n := asInt(v)
	if n < 0 {
		n = -n
	}
	return NewInt(n)
}

func vmMax(_ *VM, args []Value) Value {
	a, b := args[0], args[1]
	if asFloat(a) >= asFloat(b) {
		return a
	}
	return b
}

func vmMin(_ *VM, args []Value) Value {
	a, b := args[0], args[1]
	if asFloat(a) <= asFloat(b) {
		return a
	}
	return b
}
