package bytecode

import (
	"fmt"
	"io"
)

// Disassemble writes a textual listing of chunk to w: one line per
// instruction with its index, mnemonic, operands, and source location,
// per spec.md §6's debug-dump format.
func Disassemble(w io.Writer, chunk *Chunk, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	fmt.Fprintf(w, "instructions=%d constants=%d functions=%d globals=%d\n\n",
		len(chunk.Instructions), len(chunk.Constants), len(chunk.Functions), chunk.GlobalCount)

	if len(chunk.Functions) > 0 {
		fmt.Fprintf(w, "-- functions --\n")
		for i, fn := range chunk.Functions {
			fmt.Fprintf(w, "  [%d] %s  start_ip=%d param_count=%d local_count=%d\n",
				i, fn.Name, fn.StartIP, fn.ParamCount, fn.LocalCount)
		}
		fmt.Fprintf(w, "\n")
	}

	if len(chunk.Constants) > 0 {
		fmt.Fprintf(w, "-- constants --\n")
		for i, c := range chunk.Constants {
			fmt.Fprintf(w, "  [%d] %s %s\n", i, c.Kind, c.String())
		}
		fmt.Fprintf(w, "\n")
	}

	fmt.Fprintf(w, "-- code --\n")
	for i, inst := range chunk.Instructions {
		DisassembleInstruction(w, i, inst)
	}
}

// DisassembleInstruction writes one line for a single instruction at
// index idx.
func DisassembleInstruction(w io.Writer, idx int, inst Instruction) {
	fmt.Fprintf(w, "%04d  %-14s %6d %6d   %d:%d\n",
		idx, inst.Op, inst.A, inst.B, inst.Pos.Line, inst.Pos.Column)
}
