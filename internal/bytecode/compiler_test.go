package bytecode

import "testing"

func TestGlobalSlotsAssignedInDeclarationOrder(t *testing.T) {
	chunk := compileSource(t, `
Let a: int = 1;
Let b: int = 2;
`)
	if chunk.GlobalCount != 2 {
		t.Fatalf("GlobalCount = %d, want 2", chunk.GlobalCount)
	}
	var stores []uint32
	for _, inst := range chunk.Instructions {
		if inst.Op == OpStoreGlobal {
			stores = append(stores, inst.A)
		}
	}
	if len(stores) != 2 || stores[0] != 0 || stores[1] != 1 {
		t.Fatalf("global store slots = %v, want [0 1]", stores)
	}
}

func TestFunctionTableSentinelIsReplacedAfterEmission(t *testing.T) {
	chunk := compileSource(t, `
func int add(int a, int b) {
	return a + b;
}
`)
	if len(chunk.Functions) != 1 {
		t.Fatalf("expected 1 function table entry, got %d", len(chunk.Functions))
	}
	fn := chunk.Functions[0]
	if fn.Name != "add" {
		t.Fatalf("function name = %q, want add", fn.Name)
	}
	if fn.StartIP == SentinelIP {
		t.Fatalf("StartIP left at the sentinel after compilation")
	}
	if fn.ParamCount != 2 {
		t.Fatalf("ParamCount = %d, want 2", fn.ParamCount)
	}
	if fn.LocalCount != 2 {
		t.Fatalf("LocalCount = %d, want 2 (both params, no extra locals)", fn.LocalCount)
	}
}

func TestFunctionBodyIsGuardedByASkipJump(t *testing.T) {
	// emitFunctions runs before emitTopLevel, so every function body must
	// open with a JUMP that skips straight past it — without it, control
	// would fall through into the function's own code before any CALL
	// reaches it.
	chunk := compileSource(t, `
func int add(int a, int b) {
	return a + b;
}
print(add(1, 2));
`)
	first := chunk.Instructions[0]
	if first.Op != OpJump {
		t.Fatalf("first instruction = %s, want OpJump guarding the function body", first.Op)
	}
	fn := chunk.Functions[0]
	if fn.StartIP != 1 {
		t.Fatalf("StartIP = %d, want 1 (right after the single guard jump)", fn.StartIP)
	}
	if first.A <= fn.StartIP {
		t.Fatalf("guard jump target %d does not skip past the function body starting at %d", first.A, fn.StartIP)
	}
}

func TestLocalSlotsAllocatedMonotonically(t *testing.T) {
	chunk := compileSource(t, `
func int f(int a) {
	Let b: int = 1;
	Let c: int = 2;
	return a + b + c;
}
`)
	fn := chunk.Functions[0]
	// a = slot 0 (param), b = slot 1, c = slot 2: three slots total, never
	// reused even though b and c are declared in the same scope.
	if fn.LocalCount != 3 {
		t.Fatalf("LocalCount = %d, want 3", fn.LocalCount)
	}
}

func TestLocalSlotsNotReusedAcrossExitedScopes(t *testing.T) {
	// two sibling if-blocks each declare their own local; since the frame
	// counter never rolls back on exitScope, the second must land on a
	// fresh slot rather than reusing the first's.
	chunk := compileSource(t, `
func int f(bool cond) {
	if (cond) {
		Let x: int = 1;
	}
	if (cond) {
		Let y: int = 2;
	}
	return 0;
}
`)
	fn := chunk.Functions[0]
	if fn.LocalCount != 3 {
		t.Fatalf("LocalCount = %d, want 3 (param + two non-overlapping locals)", fn.LocalCount)
	}
}

func TestWhileLoopBackEdgeJumpsToConditionCheck(t *testing.T) {
	chunk := compileSource(t, `
Let i: int = 0;
while (i < 3) {
	i = i + 1;
}
`)
	var backJumps int
	for idx, inst := range chunk.Instructions {
		if inst.Op == OpJump && int(inst.A) < idx {
			backJumps++
		}
	}
	if backJumps != 1 {
		t.Fatalf("expected exactly one backward JUMP (the loop's back-edge), found %d", backJumps)
	}
}

func TestBreakLoopJumpTargetsStayInRange(t *testing.T) {
	chunk := compileSource(t, `
while (true) {
	break;
}
print(1);
`)
	found := false
	for _, inst := range chunk.Instructions {
		if inst.Op != OpJump {
			continue
		}
		if int(inst.A) > len(chunk.Instructions) {
			t.Fatalf("JUMP target %d out of range (chunk has %d instructions)", inst.A, len(chunk.Instructions))
		}
		found = true
	}
	if !found {
		t.Fatalf("expected at least one JUMP in compiled break-loop code")
	}
}

func TestContinueInForLoopWithPostClauseCompiles(t *testing.T) {
	// for-loops splice the post-clause between a continue's target and the
	// condition recheck; compiling must not panic when continue appears
	// inside a for loop with a post clause.
	chunk := compileSource(t, `
for (Let i: int = 0; i < 3; i = i + 1) {
	if (i == 1) {
		continue;
	}
	print(i);
}
`)
	if len(chunk.Instructions) == 0 {
		t.Fatalf("expected compiled instructions for a for-loop with continue")
	}
}

func TestRedeclaredGlobalReusesSameSlot(t *testing.T) {
	// allocGlobal is idempotent per name; this only matters if the same
	// top-level name is ever processed twice by the prepass (it shouldn't
	// be under a well-formed program, but the allocator's own idempotence
	// is worth pinning down directly).
	c := New(nil)
	first := c.allocGlobal("x")
	second := c.allocGlobal("x")
	if first != second {
		t.Fatalf("allocGlobal(\"x\") returned %d then %d, want the same slot both times", first, second)
	}
	if c.globalCount != 1 {
		t.Fatalf("globalCount = %d, want 1", c.globalCount)
	}
}

func TestImplicitMainCallAndHaltAppendedAtEnd(t *testing.T) {
	chunk := compileSource(t, `
func int main() {
	return 0;
}
`)
	n := len(chunk.Instructions)
	if n < 2 {
		t.Fatalf("expected at least CALL+HALT appended, got %d instructions", n)
	}
	last := chunk.Instructions[n-1]
	if last.Op != OpHalt {
		t.Fatalf("last instruction = %s, want OpHalt", last.Op)
	}
	secondToLast := chunk.Instructions[n-2]
	if secondToLast.Op != OpCall {
		t.Fatalf("instruction before HALT = %s, want OpCall (main's return value must reach HALT unpopped)", secondToLast.Op)
	}
}

func TestNoMainMeansNoImplicitCall(t *testing.T) {
	chunk := compileSource(t, `print(1);`)
	for _, inst := range chunk.Instructions {
		if inst.Op == OpCall {
			t.Fatalf("expected no OpCall with no main() declared, found one: %#v", inst)
		}
	}
	last := chunk.Instructions[len(chunk.Instructions)-1]
	if last.Op != OpHalt {
		t.Fatalf("last instruction = %s, want OpHalt", last.Op)
	}
}
