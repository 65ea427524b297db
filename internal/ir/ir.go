// Package ir implements the "IR builder" capability spec.md §6 treats
// as an external collaborator, together with a concrete back end that
// plays the role of the code generator/JIT. No pack repository binds
// LLVM, so — rather than fabricate a cgo dependency — this package is
// grounded on the teacher's own hand-rolled back end
// (internal/bytecode: OpCode, Instruction, a stack-based VM) and on
// SirCodeKnight/tribhasha's CodeGen.h, which shows exactly the
// capability surface an llvm.IRBuilder provides. Builder is the
// interface internal/lower is written against; ModuleBuilder is the one
// concrete implementation.
package ir

// Value is an opaque handle to a value produced by an IR-builder call:
// a constant, a loaded slot, or the result of an operation. A nil Value
// is the "null IR value" spec.md §4.4 returns from a failed lowering
// step so callers can detect and propagate the failure without a
// separate error return on every builder method.
type Value interface{ isValue() }

// Slot is an opaque handle to a stack allocation (spec.md §4.4: "a
// fresh stack slot").
type Slot interface{ isSlot() }

// Block is an opaque handle to a basic block.
type Block interface{ isBlock() }

// Func is an opaque handle to a declared function.
type Func interface {
	isFunc()
	Name() string
	Arity() int
}

// BinOp identifies a binary operator at the IR level.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Rem // floating-point remainder (spec.md §4.4: modulo uses IR frem)
	CmpEq
	CmpNotEq
	CmpLess
	CmpLessEq
	CmpGreater
	CmpGreaterEq
)

// Builder is the capability the lowering pass requires from the back
// end (spec.md §6). Every method operates on the module most recently
// created by NewModule and the function/block most recently selected
// by SetInsertPoint.
type Builder interface {
	// NewModule creates a module object associated with name, discarding
	// any previous module owned by this Builder.
	NewModule(name string)

	// DeclareFunction declares a function named name with len(params)
	// parameters, all of the uniform scalar type, and the uniform
	// scalar return type (spec.md §4.4). Returns its handle.
	DeclareFunction(name string, params []string) Func

	// CreateBlock creates a named basic block attached to fn.
	CreateBlock(fn Func, name string) Block

	// SetInsertPoint moves the insertion point to the end of b.
	SetInsertPoint(b Block)

	// EntryBlock returns fn's entry block (spec.md §4.4: allocations
	// live here regardless of the insertion point at allocation time,
	// so they dominate every use).
	EntryBlock(fn Func) Block

	// Param returns the Value of fn's i-th incoming argument. Only
	// valid while the insertion point is somewhere inside fn.
	Param(fn Func, i int) Value

	// ConstFloat emits a floating-point constant (the uniform scalar,
	// spec.md §4.4).
	ConstFloat(v float64) Value

	// ConstString synthesizes a fresh private global byte array holding
	// s and yields its address.
	ConstString(s string) Value

	// Alloca allocates a stack slot in block b (always fn's entry
	// block in practice, per EntryBlock).
	Alloca(b Block, name string) Slot

	// AllocaGlobal allocates a module-wide slot, shared by every
	// function's frame rather than scoped to one call (spec.md §4.4:
	// top-level `var` declarations outlive any single function call).
	AllocaGlobal(name string) Slot

	// Load reads the current value of slot.
	Load(slot Slot) Value

	// Store writes v into slot.
	Store(slot Slot, v Value)

	// BinOp emits the IR operation for op over (lhs, rhs). Comparison
	// ops yield a 1-bit result; arithmetic ops yield the uniform
	// scalar.
	BinOp(op BinOp, lhs, rhs Value) Value

	// Neg emits arithmetic negation.
	Neg(v Value) Value

	// Not emits logical negation (the NOT role, spec.md §4.4).
	Not(v Value) Value

	// CondBr tests cond for non-equality against 0.0 and branches to
	// thenB or elseB accordingly (spec.md §4.4: "coerce to boolean by
	// comparing non-equal to 0.0").
	CondBr(cond Value, thenB, elseB Block)

	// Br emits an unconditional jump to b.
	Br(b Block)

	// Call emits a call to fn with args passed positionally, left to
	// right. Returns the call's result value.
	Call(fn Func, args []Value) Value

	// Ret emits a return terminator with the uniform scalar value v.
	Ret(v Value)

	// RetVoid emits a return terminator with no value; Exec treats it as
	// returning 0. The synthesized `main` uses RetInt32 instead.
	RetVoid()

	// RetInt32 emits a return terminator yielding a fixed 32-bit
	// integer constant — used only for main's own "return 0" (spec.md
	// §4.4: "wrapped in a synthesized function named main returning a
	// 32-bit integer").
	RetInt32(v int32)

	// CurrentBlockTerminated reports whether the current insertion
	// point already ends in a terminator, so callers can avoid
	// emitting a second one (spec.md §4.4: "further insertions into a
	// terminated block [are] a no-op").
	CurrentBlockTerminated() bool

	// Verify checks the just-declared function for structural
	// consistency (spec.md §6) and returns an error message on failure.
	Verify(fn Func) error

	// Module returns the module built so far, ready for transfer to
	// the JIT facade. Ownership transfers to the caller: the Builder
	// must not be used to keep building after this call for that
	// module (spec.md §5).
	Module() *Module
}
