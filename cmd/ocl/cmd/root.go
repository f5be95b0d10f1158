package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/oclscript/ocl/internal/bytecode"
	"github.com/oclscript/ocl/internal/errors"
	"github.com/oclscript/ocl/internal/parser"
	"github.com/oclscript/ocl/internal/semantic"
)

// Version information (set by build flags).
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var showTime bool

var rootCmd = &cobra.Command{
	Use:     "ocl [--time] <source-file>",
	Short:   "OCL compiler and virtual machine",
	Long:    `ocl lexes, parses, type-checks, compiles, and executes a single OCL source file.`,
	Version: Version,
	Args:    cobra.ExactArgs(1),
	RunE:    runFile,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.Flags().BoolVar(&showTime, "time", false, "print elapsed execution time to stderr")
}

// exitCode is the process exit code Execute returns, set by runFile's
// last action before it hands control back to cobra.
var exitCode int

// exitError lets runFile propagate a specific non-zero exit code through
// cobra's error-returning RunE without rootCmd printing anything for it.
type exitError int

func (exitError) Error() string { return "" }

// Execute runs the CLI and returns the process exit code (spec.md §6).
func Execute() int {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		if ee, ok := err.(exitError); ok {
			return int(ee)
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return exitCode
}

func runFile(_ *cobra.Command, args []string) error {
	file := args[0]
	start := time.Now()

	source, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "RUNTIME: cannot read %s: %s [%s]\n", file, err, file)
		return reportExit(start, 1)
	}
	src := string(source)

	p := parser.New(src, file)
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		fmt.Fprintln(os.Stderr, errors.FormatErrors(p.Errors(), true))
		return reportExit(start, 1)
	}

	typeErrs := errors.NewCollector(src, file)
	semantic.New(typeErrs).Check(prog)
	if typeErrs.HasErrors() {
		fmt.Fprintln(os.Stderr, errors.FormatErrors(typeErrs.Errors(), true))
		return reportExit(start, 1)
	}

	codeErrs := errors.NewCollector(src, file)
	chunk := bytecode.New(codeErrs).Compile(prog)
	if codeErrs.HasErrors() {
		fmt.Fprintln(os.Stderr, errors.FormatErrors(codeErrs.Errors(), true))
		return reportExit(start, 1)
	}

	vm := bytecode.NewVM(chunk, os.Stdout, os.Stderr, os.Stdin)
	code := vm.Run()
	return reportExit(start, code)
}

// reportExit prints the --time report (if requested) and turns code
// into whatever Execute should ultimately return.
func reportExit(start time.Time, code int) error {
	if showTime {
		fmt.Fprintf(os.Stderr, "elapsed: %s\n", formatElapsed(time.Since(start)))
	}
	exitCode = code
	if code == 0 {
		return nil
	}
	return exitError(code)
}

func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.3fs", d.Seconds())
	}
}
