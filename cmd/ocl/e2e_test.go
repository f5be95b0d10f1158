package main

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// buildBinary compiles the ocl CLI once per test run and returns its path.
func buildBinary(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "ocl")
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}
	cmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build ocl: %v\n%s", err, out)
	}
	return bin
}

func runScript(t *testing.T, bin, script string, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	cmdArgs := append(append([]string{}, args...), filepath.Join("testdata", script))
	cmd := exec.Command(bin, cmdArgs...)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	err := cmd.Run()
	code := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		} else {
			t.Fatalf("failed to run %s: %v", script, err)
		}
	}
	return out.String(), errBuf.String(), code
}

func TestFibonacciScriptPrintsExpectedValue(t *testing.T) {
	bin := buildBinary(t)
	stdout, stderr, code := runScript(t, bin, "fib.ocl")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if stdout != "55\n" {
		t.Fatalf("stdout = %q, want %q", stdout, "55\n")
	}
}

func TestForLoopScriptSumsOneToFive(t *testing.T) {
	bin := buildBinary(t)
	stdout, _, code := runScript(t, bin, "loop.ocl")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if stdout != "15\n" {
		t.Fatalf("stdout = %q, want %q", stdout, "15\n")
	}
}

func TestAssertionFailureExitsOneAndStopsExecution(t *testing.T) {
	bin := buildBinary(t)
	stdout, stderr, code := runScript(t, bin, "assert_fail.ocl")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if stdout != "before\n" {
		t.Fatalf("stdout = %q, want just the statement before the failed assertion", stdout)
	}
	if !strings.Contains(stderr, "ASSERTION FAILED: one is not two") {
		t.Fatalf("stderr = %q, missing assertion message", stderr)
	}
}

func TestTypeErrorHaltsBeforeExecution(t *testing.T) {
	bin := buildBinary(t)
	stdout, stderr, code := runScript(t, bin, "type_error.ocl")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if stdout != "" {
		t.Fatalf("stdout = %q, want empty (a type error must stop the pipeline before the VM ever runs)", stdout)
	}
	if !strings.Contains(stderr, "TYPE:") {
		t.Fatalf("stderr = %q, want a TYPE: error", stderr)
	}
}

func TestTimeFlagReportsElapsedToStderr(t *testing.T) {
	bin := buildBinary(t)
	_, stderr, code := runScript(t, bin, "loop.ocl", "--time")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr, "elapsed:") {
		t.Fatalf("stderr = %q, want an elapsed-time report", stderr)
	}
}

func TestVersionFlagMatchesSnapshot(t *testing.T) {
	bin := buildBinary(t)
	cmd := exec.Command(bin, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	// strip the dev build's commit/date lines, which vary by build
	// environment; only the first line (name + semantic version) is stable.
	firstLine := strings.SplitN(out.String(), "\n", 2)[0]
	snaps.MatchSnapshot(t, firstLine)
}
