package bytecode

import (
	"fmt"
	"strings"

	"github.com/oclscript/ocl/internal/builtin"
)

// builtinHandlers maps every non-inline built-in id to its handler.
// Every handler receives its already-popped, already-released-ownership
// arguments and returns exactly one Value to push (spec.md §4.6) — print
// and printf are dispatched separately, inline in execCallBuiltin.
var builtinHandlers = map[int]func(vm *VM, args []Value) Value{}

func registerBuiltin(id int, fn func(vm *VM, args []Value) Value) {
	builtinHandlers[id] = fn
}

func init() {
	registerBuiltin(builtin.Input, vmInput)
	registerBuiltin(builtin.ReadLine, vmReadLine)
	registerBuiltin(builtin.Exit, vmExit)
	registerBuiltin(builtin.Assert, vmAssert)
	registerBuiltin(builtin.IsNull, func(_ *VM, a []Value) Value { return NewBool(a[0].Kind == KindNull) })
	registerBuiltin(builtin.IsInt, func(_ *VM, a []Value) Value { return NewBool(a[0].Kind == KindInt) })
	registerBuiltin(builtin.IsFloat, func(_ *VM, a []Value) Value { return NewBool(a[0].Kind == KindFloat) })
	registerBuiltin(builtin.IsString, func(_ *VM, a []Value) Value { return NewBool(a[0].Kind == KindString) })
	registerBuiltin(builtin.IsBool, func(_ *VM, a []Value) Value { return NewBool(a[0].Kind == KindBool) })
}

// builtinPrint is print(...): space-joined arguments followed by a
// newline, written to stdout.
func (vm *VM) builtinPrint(args []Value) {
	for i, a := range args {
		if i > 0 {
			fmt.Fprint(vm.out, " ")
		}
		fmt.Fprint(vm.out, a.String())
	}
	fmt.Fprintln(vm.out)
	vm.push(Null())
}

// builtinPrintf is printf(fmt, ...): %d/%i, %f, %s, %c, %b, %% are the
// directives the format string can carry; \n \t \r \\ need no special
// handling here since the lexer already decodes them into literal
// characters inside the format string itself.
func (vm *VM) builtinPrintf(args []Value) {
	if len(args) == 0 {
		vm.push(Null())
		return
	}
	format := args[0].Str
	rest := args[1:]

	var sb strings.Builder
	ai := 0
	next := func() Value {
		if ai < len(rest) {
			v := rest[ai]
			ai++
			return v
		}
		return Null()
	}

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch format[i] {
		case 'd', 'i':
			fmt.Fprintf(&sb, "%d", asInt(next()))
		case 'f':
			fmt.Fprintf(&sb, "%g", asFloat(next()))
		case 's':
			sb.WriteString(next().String())
		case 'c':
			sb.WriteRune(next().Char)
		case 'b':
			sb.WriteString(fmt.Sprintf("%t", Truthy(next())))
		case '%':
			sb.WriteByte('%')
		default:
			sb.WriteByte('%')
			sb.WriteByte(format[i])
		}
	}

	fmt.Fprint(vm.out, sb.String())
	vm.push(Null())
}

func vmInput(vm *VM, args []Value) Value {
	if len(args) > 0 {
		fmt.Fprint(vm.out, args[0].String())
		vm.out.Flush()
	}
	return StringOwned(readLine(vm))
}

func vmReadLine(vm *VM, args []Value) Value {
	return StringOwned(readLine(vm))
}

func readLine(vm *VM) string {
	line, _ := vm.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

// vmExit is exit(n?): halts the VM with exit code n (0 if omitted).
func vmExit(vm *VM, args []Value) Value {
	vm.halted = true
	if len(args) > 0 {
		vm.exitCode = int(asInt(args[0]))
	}
	return Null()
}

// vmAssert is assert(cond, msg?): on failure it prints the message to
// stderr and halts with exit code 1, per spec.md §4.6.
func vmAssert(vm *VM, args []Value) Value {
	if Truthy(args[0]) {
		return Null()
	}
	msg := "assertion failed"
	if len(args) > 1 {
		msg = args[1].String()
	}
	fmt.Fprintf(vm.err, "ASSERTION FAILED: %s\n", msg)
	vm.halted = true
	vm.exitCode = 1
	return Null()
}
