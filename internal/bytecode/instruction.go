package bytecode

import "github.com/oclscript/ocl/internal/lexer"

// OpCode identifies one bytecode operation.
type OpCode byte

const (
	// OpPushConst pushes constants[A] (string constants push as a borrow).
	// Stack: [] -> [value]
	OpPushConst OpCode = iota

	// OpPop drops the top of the stack, releasing it if owned.
	// Stack: [value] -> []
	OpPop

	// OpLoadVar pushes the current frame's local slot A (string -> borrow).
	// Stack: [] -> [value]
	OpLoadVar

	// OpStoreVar pops, makes the value owned, releases the prior slot
	// contents, and stores into local slot A.
	// Stack: [value] -> []
	OpStoreVar

	// OpLoadGlobal pushes global slot A (string -> borrow).
	// Stack: [] -> [value]
	OpLoadGlobal

	// OpStoreGlobal pops, makes the value owned, releases the prior slot
	// contents, and stores into global slot A.
	// Stack: [value] -> []
	OpStoreGlobal

	// Arithmetic: int-int stays int, any Float operand widens the result
	// to Float. OpAdd additionally concatenates two Strings into a fresh
	// owned buffer. OpDiv/OpMod by zero is a runtime error: the VM halts
	// with exit code 1 and the instruction pushes Null.
	// Stack: [a, b] -> [a OP b]
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod

	// OpNeg negates a numeric top; OpNot logically inverts a Bool top.
	// Stack: [a] -> [-a] / [!a]
	OpNeg
	OpNot

	// Comparisons push a Bool. OpEq/OpNe compare same-kind values
	// (strings by content); OpLt/OpLe/OpGt/OpGe compare numerics.
	// Stack: [a, b] -> [a OP b]
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe

	// OpAnd/OpOr are truthiness-based and not short-circuit at the opcode
	// level — codegen always evaluates both sides.
	// Stack: [a, b] -> [a OP b]
	OpAnd
	OpOr

	// OpJump sets pc = A unconditionally.
	OpJump

	// OpJumpIfFalse/OpJumpIfTrue pop the condition and branch to A when
	// its truthiness matches.
	// Stack: [cond] -> []
	OpJumpIfFalse
	OpJumpIfTrue

	// OpCall invokes function table entry A with argc = B — see the VM's
	// call protocol (vm_calls.go).
	OpCall

	// OpReturn pops the return value, applies the return protocol
	// (vm_calls.go), and resumes the caller.
	OpReturn

	// OpCallBuiltin dispatches built-in id A with argc = B (vm_builtins.go).
	OpCallBuiltin

	// OpHalt stops the fetch-decode-execute loop; the exit code comes
	// from the stack top if it is Int/Bool/Float, else 0.
	OpHalt

	// Conversions of the stack top, in place.
	OpToInt
	OpToFloat
	OpToString

	// OpConcat pops two strings and pushes their concatenation (owned).
	// Stack: [a, b] -> [a+b]
	OpConcat

	// OpArrayGet/OpArraySet are reserved: array opcodes are unimplemented
	// (spec.md §1). The VM reports an "unimplemented opcode" runtime
	// error if either is ever fetched.
	OpArrayGet
	OpArraySet

	opCodeCount
)

var opCodeNames = [...]string{
	OpPushConst: "PUSH_CONST", OpPop: "POP",
	OpLoadVar: "LOAD_VAR", OpStoreVar: "STORE_VAR",
	OpLoadGlobal: "LOAD_GLOBAL", OpStoreGlobal: "STORE_GLOBAL",
	OpAdd: "ADD", OpSub: "SUB", OpMul: "MUL", OpDiv: "DIV", OpMod: "MOD",
	OpNeg: "NEG", OpNot: "NOT",
	OpEq: "EQ", OpNe: "NE", OpLt: "LT", OpLe: "LE", OpGt: "GT", OpGe: "GE",
	OpAnd: "AND", OpOr: "OR",
	OpJump: "JUMP", OpJumpIfFalse: "JUMP_IF_FALSE", OpJumpIfTrue: "JUMP_IF_TRUE",
	OpCall: "CALL", OpReturn: "RETURN", OpCallBuiltin: "CALL_BUILTIN",
	OpHalt: "HALT",
	OpToInt: "TO_INT", OpToFloat: "TO_FLOAT", OpToString: "TO_STRING",
	OpConcat: "CONCAT",
	OpArrayGet: "ARRAY_GET", OpArraySet: "ARRAY_SET",
}

func (op OpCode) String() string {
	if int(op) < len(opCodeNames) && opCodeNames[op] != "" {
		return opCodeNames[op]
	}
	return "UNKNOWN"
}

// Instruction is one emitted bytecode op: the opcode, its two unsigned
// 32-bit operands, and the source location it was generated from
// (spec.md §3 — every instruction keeps a location for diagnostics and
// debug dumps).
type Instruction struct {
	Op  OpCode
	A   uint32
	B   uint32
	Pos lexer.Position
}
