package ir

import "testing"

// buildAdd builds a module with `function add(a, b) { return a + b; }`
// directly through the Builder interface, the way internal/lower would.
func buildAdd(t *testing.T) (*ModuleBuilder, Func) {
	t.Helper()
	b := NewModuleBuilder()
	b.NewModule("test")
	fn := b.DeclareFunction("add", []string{"a", "b"})
	entry := b.CreateBlock(fn, "entry")
	b.SetInsertPoint(entry)
	sum := b.BinOp(Add, b.Param(fn, 0), b.Param(fn, 1))
	b.Ret(sum)
	if err := b.Verify(fn); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	return b, fn
}

func TestBuilderAndExecArithmetic(t *testing.T) {
	b, fn := buildAdd(t)
	concreteFn, ok := b.Module().LookupFunction("add")
	if !ok {
		t.Fatal("add not found in module")
	}
	result, err := Exec(b.Module(), concreteFn, []float64{3, 4})
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if result != 7 {
		t.Errorf("add(3, 4) = %v, want 7", result)
	}
	if fn.Arity() != 2 {
		t.Errorf("Arity() = %d, want 2", fn.Arity())
	}
}

func TestBuilderIfElse(t *testing.T) {
	b := NewModuleBuilder()
	b.NewModule("test")
	fn := b.DeclareFunction("max", []string{"a", "b"})
	entry := b.CreateBlock(fn, "entry")
	b.SetInsertPoint(entry)

	thenB := b.CreateBlock(fn, "then")
	elseB := b.CreateBlock(fn, "else")

	cond := b.BinOp(CmpGreater, b.Param(fn, 0), b.Param(fn, 1))
	b.CondBr(cond, thenB, elseB)

	b.SetInsertPoint(thenB)
	b.Ret(b.Param(fn, 0))

	b.SetInsertPoint(elseB)
	b.Ret(b.Param(fn, 1))

	if err := b.Verify(fn); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	concreteFn, _ := b.Module().LookupFunction("max")
	for _, tc := range []struct{ a, b, want float64 }{
		{5, 3, 5},
		{2, 9, 9},
	} {
		got, err := Exec(b.Module(), concreteFn, []float64{tc.a, tc.b})
		if err != nil {
			t.Fatalf("Exec(%v, %v): %v", tc.a, tc.b, err)
		}
		if got != tc.want {
			t.Errorf("max(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestBuilderWhileLoop(t *testing.T) {
	// function count(n) { var i = 0; while (i < n) { i = i + 1; } return i; }
	b := NewModuleBuilder()
	b.NewModule("test")
	fn := b.DeclareFunction("count", []string{"n"})
	entry := b.CreateBlock(fn, "entry")
	b.SetInsertPoint(entry)

	iSlot := b.Alloca(entry, "i")
	b.Store(iSlot, b.ConstFloat(0))

	condB := b.CreateBlock(fn, "cond")
	bodyB := b.CreateBlock(fn, "body")
	afterB := b.CreateBlock(fn, "after")
	b.Br(condB)

	b.SetInsertPoint(condB)
	cond := b.BinOp(CmpLess, b.Load(iSlot), b.Param(fn, 0))
	b.CondBr(cond, bodyB, afterB)

	b.SetInsertPoint(bodyB)
	next := b.BinOp(Add, b.Load(iSlot), b.ConstFloat(1))
	b.Store(iSlot, next)
	b.Br(condB)

	b.SetInsertPoint(afterB)
	b.Ret(b.Load(iSlot))

	if err := b.Verify(fn); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	concreteFn, _ := b.Module().LookupFunction("count")
	got, err := Exec(b.Module(), concreteFn, []float64{5})
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got != 5 {
		t.Errorf("count(5) = %v, want 5", got)
	}
}

func TestVerifyFailsOnMissingTerminator(t *testing.T) {
	b := NewModuleBuilder()
	b.NewModule("test")
	fn := b.DeclareFunction("broken", nil)
	entry := b.CreateBlock(fn, "entry")
	b.SetInsertPoint(entry)
	slot := b.Alloca(entry, "x")
	b.Store(slot, b.ConstFloat(1)) // a non-terminator instruction, block left open

	if err := b.Verify(fn); err == nil {
		t.Error("expected Verify to fail on a block with no terminator")
	}
}

func TestCallBetweenFunctions(t *testing.T) {
	b := NewModuleBuilder()
	b.NewModule("test")

	double := b.DeclareFunction("double", []string{"x"})
	dEntry := b.CreateBlock(double, "entry")
	b.SetInsertPoint(dEntry)
	b.Ret(b.BinOp(Mul, b.Param(double, 0), b.ConstFloat(2)))
	if err := b.Verify(double); err != nil {
		t.Fatalf("Verify(double): %v", err)
	}

	caller := b.DeclareFunction("caller", nil)
	cEntry := b.CreateBlock(caller, "entry")
	b.SetInsertPoint(cEntry)
	result := b.Call(double, []Value{b.ConstFloat(21)})
	b.Ret(result)
	if err := b.Verify(caller); err != nil {
		t.Fatalf("Verify(caller): %v", err)
	}

	concreteCaller, _ := b.Module().LookupFunction("caller")
	got, err := Exec(b.Module(), concreteCaller, nil)
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got != 42 {
		t.Errorf("caller() = %v, want 42", got)
	}
}
