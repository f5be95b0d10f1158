package bytecode

import (
	"github.com/oclscript/ocl/internal/ast"
	"github.com/oclscript/ocl/internal/builtin"
	"github.com/oclscript/ocl/internal/errors"
	"github.com/oclscript/ocl/internal/lexer"
)

// localVar is one entry in the compiler's current-function local table.
type localVar struct {
	name       string
	slot       int
	scopeLevel int
}

// loopCtx is one entry in the loop-context stack codegen pushes on
// entering a while/for body, so break/continue can be compiled before
// their jump targets are known (spec.md §4.4).
type loopCtx struct {
	breakJumps    []int // indices of JUMP placeholders to patch to the post-loop ip
	continueJumps []int // indices of JUMP placeholders to patch to the continue target
}

// Compiler lowers a type-checked syntax tree to a Chunk in two passes:
// Pass 1 pre-registers every top-level VarDecl's global slot and every
// top-level FuncDecl's function-table entry so forward references
// resolve; Pass 2 emits function bodies, then top-level code, then an
// implicit CALL main + HALT.
type Compiler struct {
	chunk *Chunk
	errs  *errors.Collector

	globals     map[string]int
	globalCount int
	functions   map[string]int

	// locals and scopeLevel are only meaningful while funcDepth > 0;
	// reset on entry to each function body. frameCounters is a stack per
	// spec.md §4.4's "per-function frame counter stack (capacity 256)" —
	// OCL functions never nest, so in practice its depth never exceeds 1,
	// but the shape is kept rather than collapsed to a single int to stay
	// faithful to the described mechanism.
	locals         []localVar
	scopeLevel     int
	frameCounters  []int
	funcDepth      int
	loopStack      []*loopCtx
}

const maxFrameCounterDepth = 256

// New creates a Compiler that reports into errs.
func New(errs *errors.Collector) *Compiler {
	return &Compiler{
		chunk:     NewChunk(),
		errs:      errs,
		globals:   make(map[string]int),
		functions: make(map[string]int),
	}
}

func (c *Compiler) errorf(pos lexer.Position, format string, args ...any) {
	c.errs.Add(errors.Runtime, pos, format, args...)
}

// Compile runs both passes over prog and returns the finished Chunk.
func (c *Compiler) Compile(prog *ast.Program) *Chunk {
	c.prepass(prog)
	c.emitFunctions(prog)
	c.emitTopLevel(prog)
	c.emitEntryEpilogue()
	c.chunk.GlobalCount = c.globalCount
	return c.chunk
}

// prepass is codegen's pass 1: assign every top-level VarDecl a global
// slot and insert every top-level FuncDecl into the function table with
// the sentinel start_ip.
func (c *Compiler) prepass(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ast.VarDeclStatement:
			c.allocGlobal(s.Name.Name)
		case *ast.FuncDecl:
			idx := c.chunk.AddFunction(s.Name.Name, len(s.Parameters))
			c.functions[s.Name.Name] = idx
		}
	}
}

// allocGlobal reserves a fresh global slot for name if it doesn't already
// have one, and returns the slot index either way.
func (c *Compiler) allocGlobal(name string) int {
	if slot, ok := c.globals[name]; ok {
		return slot
	}
	slot := c.globalCount
	c.globalCount++
	c.globals[name] = slot
	return slot
}

// emitFunctions is pass 2's first half: every top-level FuncDecl's body,
// in source order.
func (c *Compiler) emitFunctions(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		if fn, ok := stmt.(*ast.FuncDecl); ok {
			c.compileFuncDecl(fn)
		}
	}
}

// emitTopLevel is pass 2's second half: every non-FuncDecl top-level
// statement, in source order.
func (c *Compiler) emitTopLevel(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		if _, ok := stmt.(*ast.FuncDecl); ok {
			continue
		}
		c.compileStatement(stmt)
	}
}

// emitEntryEpilogue appends the implicit "CALL main" with no arguments (if
// a function named main exists) followed by HALT, per spec.md §4.4. main's
// return value is left on the stack for HALT to read as the process exit
// code (spec.md §6) rather than popped here.
func (c *Compiler) emitEntryEpilogue() {
	pos := lexer.Position{}
	if idx, ok := c.functions["main"]; ok {
		c.chunk.Emit(OpCall, uint32(idx), 0, pos)
	}
	c.chunk.Emit(OpHalt, 0, 0, pos)
}

// --- scope & local-slot management --------------------------------------

func (c *Compiler) enterScope() { c.scopeLevel++ }

// exitScope drops every local-table entry bound at the current level and
// lowers it; the frame counter is never rolled back, so slots of exited
// scopes are never reused (spec.md §4.4).
func (c *Compiler) exitScope() {
	kept := c.locals[:0]
	for _, l := range c.locals {
		if l.scopeLevel < c.scopeLevel {
			kept = append(kept, l)
		}
	}
	c.locals = kept
	c.scopeLevel--
}

func (c *Compiler) enterFunction(paramCount int) {
	c.funcDepth++
	c.scopeLevel = 0
	c.locals = nil
	if len(c.frameCounters) >= maxFrameCounterDepth {
		return
	}
	c.frameCounters = append(c.frameCounters, paramCount)
}

// exitFunction pops the frame counter stack and returns its final value
// as the function's local_count.
func (c *Compiler) exitFunction() int {
	c.funcDepth--
	c.locals = nil
	if len(c.frameCounters) == 0 {
		return 0
	}
	n := c.frameCounters[len(c.frameCounters)-1]
	c.frameCounters = c.frameCounters[:len(c.frameCounters)-1]
	return n
}

// declareLocal binds name to the current function's next free slot and
// post-increments the frame counter.
func (c *Compiler) declareLocal(name string) int {
	top := len(c.frameCounters) - 1
	slot := c.frameCounters[top]
	c.frameCounters[top]++
	c.locals = append(c.locals, localVar{name: name, slot: slot, scopeLevel: c.scopeLevel})
	return slot
}

// resolveVariable performs spec.md §4.4's lookup order: most-recent-first
// scan of the current function's local table, then the global table.
// ok is false only if name is bound nowhere — codegen treats that as an
// internal inconsistency, since the type checker should already have
// rejected undefined identifiers advisorily.
func (c *Compiler) resolveVariable(name string) (slot int, isGlobal bool, ok bool) {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].name == name {
			return c.locals[i].slot, false, true
		}
	}
	if slot, ok := c.globals[name]; ok {
		return slot, true, true
	}
	return 0, false, false
}

// bindParams declares every parameter in slots [0..param_count), in
// order, at function-entry scope.
func (c *Compiler) bindParams(params []*ast.Param) {
	for i, p := range params {
		c.locals = append(c.locals, localVar{name: p.Name.Name, slot: i, scopeLevel: c.scopeLevel})
	}
}

// pushLoop starts a new loop context for break/continue backpatching.
func (c *Compiler) pushLoop() *loopCtx {
	lc := &loopCtx{}
	c.loopStack = append(c.loopStack, lc)
	return lc
}

// popLoop patches every recorded break jump to the current instruction
// index (the first instruction after the loop) and pops the context.
func (c *Compiler) popLoop() {
	lc := c.loopStack[len(c.loopStack)-1]
	c.loopStack = c.loopStack[:len(c.loopStack)-1]
	for _, idx := range lc.breakJumps {
		c.chunk.PatchJump(idx)
	}
}

func (c *Compiler) currentLoop() *loopCtx {
	if len(c.loopStack) == 0 {
		return nil
	}
	return c.loopStack[len(c.loopStack)-1]
}

// patchContinues patches every recorded continue jump in the innermost
// loop context to target, once that target is known.
func (c *Compiler) patchContinues(target int) {
	lc := c.currentLoop()
	if lc == nil {
		return
	}
	for _, idx := range lc.continueJumps {
		c.chunk.PatchJumpTo(idx, target)
	}
	lc.continueJumps = nil
}

// isBuiltinName reports whether name is one of the built-in catalogue
// functions (used to disambiguate a Call's dispatch shape at emission).
func isBuiltinName(name string) (*builtin.Info, bool) {
	return builtin.Lookup(name)
}
