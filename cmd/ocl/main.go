// Command ocl runs the OCL lex/parse/check/compile/execute pipeline
// over a single source file.
package main

import (
	"os"

	"github.com/oclscript/ocl/cmd/ocl/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
