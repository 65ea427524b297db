package ir

import "fmt"

// ModuleBuilder is the concrete Builder implementation. It is the
// back-end collaborator internal/lower drives through the Builder
// interface; spec.md §6 describes exactly this capability surface.
type ModuleBuilder struct {
	mod      *Module
	curFn    *Function
	curBlock *blockImpl
}

// NewModuleBuilder creates an empty Builder. Call NewModule to start a
// compilation.
func NewModuleBuilder() *ModuleBuilder {
	return &ModuleBuilder{}
}

func (b *ModuleBuilder) NewModule(name string) {
	b.mod = &Module{Name: name}
	b.curFn = nil
	b.curBlock = nil
}

func (b *ModuleBuilder) DeclareFunction(name string, params []string) Func {
	fn := &Function{Name: name, Params: params, entryIdx: -1}
	b.mod.Functions = append(b.mod.Functions, fn)
	b.curFn = fn
	return funcImpl{fn: fn}
}

func (b *ModuleBuilder) CreateBlock(f Func, name string) Block {
	fn := f.(funcImpl).fn
	blk := &BasicBlock{Name: name}
	fn.Blocks = append(fn.Blocks, blk)
	idx := len(fn.Blocks) - 1
	if fn.entryIdx == -1 {
		fn.entryIdx = idx
	}
	return blockImpl{fn: fn, idx: idx}
}

func (b *ModuleBuilder) SetInsertPoint(blk Block) {
	bi := blk.(blockImpl)
	b.curFn = bi.fn
	cp := bi
	b.curBlock = &cp
}

func (b *ModuleBuilder) EntryBlock(f Func) Block {
	fn := f.(funcImpl).fn
	return blockImpl{fn: fn, idx: fn.entryIdx}
}

func (b *ModuleBuilder) Param(f Func, i int) Value {
	return valueRef{kind: vkParam, paramIdx: i}
}

func (b *ModuleBuilder) ConstFloat(v float64) Value {
	return valueRef{kind: vkConstFloat, constFloat: v}
}

func (b *ModuleBuilder) ConstString(s string) Value {
	b.mod.Strings = append(b.mod.Strings, s)
	return valueRef{kind: vkConstString, constString: len(b.mod.Strings) - 1}
}

func (b *ModuleBuilder) Alloca(blk Block, name string) Slot {
	bi := blk.(blockImpl)
	idx := bi.fn.numSlots
	bi.fn.numSlots++
	return slotImpl{idx: idx}
}

// AllocaGlobal allocates a module-wide slot that every function's frame
// can Load/Store regardless of which function declared it, backing
// top-level `var` declarations (spec.md §4.4, scenario S1: a function
// body referencing a global must resolve it).
func (b *ModuleBuilder) AllocaGlobal(name string) Slot {
	idx := b.mod.NumGlobals
	b.mod.NumGlobals++
	return slotImpl{idx: idx, global: true}
}

func (b *ModuleBuilder) block() *BasicBlock {
	return b.curBlock.fn.Blocks[b.curBlock.idx]
}

func (b *ModuleBuilder) emit(instr Instr) int {
	blk := b.block()
	if instr.ResultID == 0 && instr.Op != OpLoad && instr.Op != OpBin && instr.Op != OpNeg && instr.Op != OpNot && instr.Op != OpCall {
		instr.ResultID = -1
	}
	blk.Instrs = append(blk.Instrs, instr)
	return len(blk.Instrs) - 1
}

func (b *ModuleBuilder) Load(slot Slot) Value {
	si := slot.(slotImpl)
	id := b.curBlock.fn.newValueID()
	b.emit(Instr{Op: OpLoad, ResultID: id, SlotIdx: si.idx, Global: si.global})
	return valueRef{kind: vkComputed, instrID: id}
}

func (b *ModuleBuilder) Store(slot Slot, v Value) {
	si := slot.(slotImpl)
	b.emit(Instr{Op: OpStore, ResultID: -1, SlotIdx: si.idx, Global: si.global, A: v.(valueRef)})
}

func (b *ModuleBuilder) BinOp(op BinOp, lhs, rhs Value) Value {
	id := b.curBlock.fn.newValueID()
	b.emit(Instr{Op: OpBin, ResultID: id, BinOp: op, A: lhs.(valueRef), B: rhs.(valueRef)})
	return valueRef{kind: vkComputed, instrID: id}
}

func (b *ModuleBuilder) Neg(v Value) Value {
	id := b.curBlock.fn.newValueID()
	b.emit(Instr{Op: OpNeg, ResultID: id, A: v.(valueRef)})
	return valueRef{kind: vkComputed, instrID: id}
}

func (b *ModuleBuilder) Not(v Value) Value {
	id := b.curBlock.fn.newValueID()
	b.emit(Instr{Op: OpNot, ResultID: id, A: v.(valueRef)})
	return valueRef{kind: vkComputed, instrID: id}
}

func (b *ModuleBuilder) CondBr(cond Value, thenB, elseB Block) {
	b.emit(Instr{
		Op: OpCondBr, ResultID: -1,
		A:       cond.(valueRef),
		Target:  thenB.(blockImpl).idx,
		Target2: elseB.(blockImpl).idx,
	})
}

func (b *ModuleBuilder) Br(blk Block) {
	b.emit(Instr{Op: OpBr, ResultID: -1, Target: blk.(blockImpl).idx})
}

func (b *ModuleBuilder) Call(f Func, args []Value) Value {
	fn := f.(funcImpl).fn
	idx, _ := b.mod.functionIndex(fn.Name)
	refs := make([]valueRef, len(args))
	for i, a := range args {
		refs[i] = a.(valueRef)
	}
	id := b.curBlock.fn.newValueID()
	b.emit(Instr{Op: OpCall, ResultID: id, CallFn: idx, CallArgs: refs})
	return valueRef{kind: vkComputed, instrID: id}
}

func (b *ModuleBuilder) Ret(v Value) {
	b.emit(Instr{Op: OpRet, ResultID: -1, RetHas: true, RetValue: v.(valueRef)})
}

func (b *ModuleBuilder) RetVoid() {
	b.emit(Instr{Op: OpRetVoid, ResultID: -1})
}

func (b *ModuleBuilder) RetInt32(v int32) {
	b.emit(Instr{Op: OpRetInt32, ResultID: -1, RetInt32: v})
}

func (b *ModuleBuilder) CurrentBlockTerminated() bool {
	return b.block().terminated()
}

// Verify checks that every block in fn ends in a terminator — the
// minimal structural property spec.md §6 asks for ("verification of a
// function, returning success or an error message").
func (b *ModuleBuilder) Verify(f Func) error {
	fn := f.(funcImpl).fn
	for _, blk := range fn.Blocks {
		if !blk.terminated() {
			return fmt.Errorf("function %s: block %q has no terminator", fn.Name, blk.Name)
		}
	}
	fn.verified = true
	return nil
}

func (b *ModuleBuilder) Module() *Module {
	return b.mod
}
