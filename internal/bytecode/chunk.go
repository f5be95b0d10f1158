package bytecode

import "github.com/oclscript/ocl/internal/lexer"

// SentinelIP marks a FuncEntry whose body has been registered (pass 1)
// but not yet emitted (pass 2) — spec.md §3's pre-registration placeholder.
const SentinelIP uint32 = 0xFFFFFFFF

// FuncEntry is one function table row: its name, the instruction index
// its body starts at, and the shape the VM needs to build a call frame.
type FuncEntry struct {
	Name       string
	StartIP    uint32
	ParamCount int
	LocalCount int
}

// Chunk is the bytecode container: three parallel vectors — instructions,
// constants, and the function table — plus the global slot count the
// compiler assigned. It is produced once by the compiler and never
// mutated again once execution begins.
type Chunk struct {
	Instructions []Instruction
	Constants    []Value
	Functions    []FuncEntry
	GlobalCount  int
}

// NewChunk returns an empty Chunk ready for emission.
func NewChunk() *Chunk {
	return &Chunk{}
}

// Emit appends an instruction and returns its index.
func (c *Chunk) Emit(op OpCode, a, b uint32, pos lexer.Position) int {
	c.Instructions = append(c.Instructions, Instruction{Op: op, A: a, B: b, Pos: pos})
	return len(c.Instructions) - 1
}

// EmitJump emits a jump-family opcode with a placeholder operand and
// returns its index, for later patching by PatchJump.
func (c *Chunk) EmitJump(op OpCode, pos lexer.Position) int {
	return c.Emit(op, 0, 0, pos)
}

// PatchJump sets instruction idx's target operand (A) to the chunk's
// current length — the instruction index that will execute next.
func (c *Chunk) PatchJump(idx int) {
	c.Instructions[idx].A = uint32(len(c.Instructions))
}

// PatchJumpTo sets instruction idx's target operand (A) to an explicit
// instruction index, used when the target was already known (e.g. a
// while-loop's back-edge to loop_start).
func (c *Chunk) PatchJumpTo(idx int, target int) {
	c.Instructions[idx].A = uint32(target)
}

// AddConstant appends value to the constant pool and returns its index.
// No deduplication: repeated literals each get their own slot, matching
// the teacher's own constant-pool discipline.
func (c *Chunk) AddConstant(value Value) int {
	c.Constants = append(c.Constants, value)
	return len(c.Constants) - 1
}

// AddFunction registers a new function table entry with the sentinel
// start_ip (pass 1) and returns its index.
func (c *Chunk) AddFunction(name string, paramCount int) int {
	c.Functions = append(c.Functions, FuncEntry{Name: name, StartIP: SentinelIP, ParamCount: paramCount})
	return len(c.Functions) - 1
}

// SetFunctionStart records the instruction index a function's body
// begins at, once pass 2 reaches it.
func (c *Chunk) SetFunctionStart(idx int, startIP int) {
	c.Functions[idx].StartIP = uint32(startIP)
}

// SetFunctionLocalCount records a function's final local-slot count once
// its body has been fully emitted and its frame counter stops growing.
func (c *Chunk) SetFunctionLocalCount(idx int, count int) {
	c.Functions[idx].LocalCount = count
}

// Len reports the current instruction count — the index the next Emit
// call will land on.
func (c *Chunk) Len() int { return len(c.Instructions) }
