package bytecode

import "github.com/oclscript/ocl/internal/builtin"

// execCall implements spec.md §4.5's call protocol.
func (vm *VM) execCall(fidx, argc int) {
	if fidx < 0 || fidx >= len(vm.chunk.Functions) {
		vm.fail("invalid function index %d", fidx)
		return
	}
	fn := vm.chunk.Functions[fidx]
	if fn.StartIP == SentinelIP {
		vm.fail("call to unresolved function %q", fn.Name)
		return
	}
	if vm.frameTop >= len(vm.frames) {
		vm.fail("call stack overflow")
		return
	}
	if vm.stackTop < argc {
		vm.fail("stack underflow")
		return
	}

	localCount := fn.LocalCount
	if argc > localCount {
		localCount = argc
	}
	locals := make([]Value, localCount+8)

	returnIP := vm.pc
	stackBase := vm.stackTop

	for i := argc - 1; i >= 0; i-- {
		v, ok := vm.pop()
		if !ok {
			return
		}
		locals[i] = MakeOwned(v)
	}

	vm.frames[vm.frameTop] = Frame{Locals: locals, ReturnIP: returnIP, StackBase: stackBase}
	vm.frameTop++
	vm.pc = fn.StartIP
}

// execReturn implements spec.md §4.5's return protocol. The ordering is
// load-bearing: the return expression may be a LOAD_VAR borrow into a
// local slot that is about to be freed, so the value is promoted to
// owned before the frame's locals are released out from under it.
func (vm *VM) execReturn() {
	retVal, ok := vm.pop()
	if !ok {
		return
	}
	retVal = MakeOwned(retVal)

	frame := vm.currentFrame()
	for _, l := range frame.Locals {
		Release(l)
	}
	if vm.stackTop > frame.StackBase {
		for i := frame.StackBase; i < vm.stackTop; i++ {
			Release(vm.stack[i])
			vm.stack[i] = Value{}
		}
		vm.stackTop = frame.StackBase
	}
	returnIP := frame.ReturnIP

	vm.frameTop--
	if vm.frameTop == 0 {
		vm.halted = true
		if retVal.Kind == KindInt {
			vm.exitCode = int(retVal.Int)
		}
		return
	}

	vm.push(retVal)
	vm.pc = returnIP
}

// execCallBuiltin dispatches CALL_BUILTIN(id, argc). print/printf are
// handled inline for performance (spec.md §4.6); everything else goes
// through the shared handler table.
func (vm *VM) execCallBuiltin(id, argc int) {
	if id < 0 || id >= len(builtin.Catalogue) {
		vm.fail("unknown built-in id %d", id)
		return
	}
	if !builtin.Catalogue[id].ArityOK(argc) {
		vm.fail("wrong argument count for %s", builtin.Catalogue[id].Name)
		return
	}
	if vm.stackTop < argc {
		vm.fail("stack underflow")
		return
	}

	args := make([]Value, argc)
	for i := argc - 1; i >= 0; i-- {
		v, ok := vm.pop()
		if !ok {
			return
		}
		Release(v)
		args[i] = v
	}

	switch id {
	case builtin.Print:
		vm.builtinPrint(args)
		return
	case builtin.Printf:
		vm.builtinPrintf(args)
		return
	}

	handler, ok := builtinHandlers[id]
	if !ok {
		vm.fail("unimplemented built-in %s", builtin.Catalogue[id].Name)
		return
	}
	vm.push(handler(vm, args))
}
