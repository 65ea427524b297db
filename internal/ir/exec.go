package ir

import "fmt"

// Exec runs fn within mod with the given arguments and returns its
// scalar result. This is the standing-in "JIT" execution step spec.md
// §4.5 hands a verified module to: rather than emit machine code, it
// walks blocks and instructions directly, in the manner of the
// teacher's internal/bytecode VM loop.
func Exec(mod *Module, fn *Function, args []float64) (float64, error) {
	if len(args) != len(fn.Params) {
		return 0, fmt.Errorf("%s: expected %d arguments, got %d", fn.Name, len(fn.Params), len(args))
	}
	if mod.Globals == nil {
		mod.Globals = make([]float64, mod.NumGlobals)
	}
	fr := &frame{
		mod:    mod,
		fn:     fn,
		vals:   make([]float64, fn.numValues),
		slots:  make([]float64, fn.numSlots),
		params: args,
	}
	return fr.run()
}

// frame is one activation record: the computed-value array, the slot
// array, and the incoming parameters, all sized by the function's own
// bookkeeping done during building (Function.numValues/numSlots).
type frame struct {
	mod    *Module
	fn     *Function
	vals   []float64
	slots  []float64
	params []float64
}

func (fr *frame) resolve(v valueRef) float64 {
	switch v.kind {
	case vkConstFloat:
		return v.constFloat
	case vkConstString:
		// Strings carry no numeric value in the uniform scalar model;
		// callers that need the text go through Module.Strings directly.
		return 0
	case vkParam:
		return fr.params[v.paramIdx]
	case vkComputed:
		return fr.vals[v.instrID]
	default:
		return 0
	}
}

func (fr *frame) run() (float64, error) {
	blockIdx := fr.fn.entryIdx
	for {
		blk := fr.fn.Blocks[blockIdx]
		next := -1
		for _, instr := range blk.Instrs {
			switch instr.Op {
			case OpLoad:
				if instr.Global {
					fr.vals[instr.ResultID] = fr.mod.Globals[instr.SlotIdx]
				} else {
					fr.vals[instr.ResultID] = fr.slots[instr.SlotIdx]
				}
			case OpStore:
				if instr.Global {
					fr.mod.Globals[instr.SlotIdx] = fr.resolve(instr.A)
				} else {
					fr.slots[instr.SlotIdx] = fr.resolve(instr.A)
				}
			case OpBin:
				fr.vals[instr.ResultID] = evalBinOp(instr.BinOp, fr.resolve(instr.A), fr.resolve(instr.B))
			case OpNeg:
				fr.vals[instr.ResultID] = -fr.resolve(instr.A)
			case OpNot:
				if fr.resolve(instr.A) == 0 {
					fr.vals[instr.ResultID] = 1
				} else {
					fr.vals[instr.ResultID] = 0
				}
			case OpCall:
				callee := fr.mod.Functions[instr.CallFn]
				callArgs := make([]float64, len(instr.CallArgs))
				for i, a := range instr.CallArgs {
					callArgs[i] = fr.resolve(a)
				}
				result, err := Exec(fr.mod, callee, callArgs)
				if err != nil {
					return 0, err
				}
				fr.vals[instr.ResultID] = result
			case OpBr:
				next = instr.Target
			case OpCondBr:
				if fr.resolve(instr.A) != 0 {
					next = instr.Target
				} else {
					next = instr.Target2
				}
			case OpRet:
				return fr.resolve(instr.RetValue), nil
			case OpRetVoid:
				return 0, nil
			case OpRetInt32:
				return float64(instr.RetInt32), nil
			}
		}
		if next == -1 {
			return 0, fmt.Errorf("%s: block %q fell through without a terminator", fr.fn.Name, blk.Name)
		}
		blockIdx = next
	}
}

func evalBinOp(op BinOp, a, b float64) float64 {
	switch op {
	case Add:
		return a + b
	case Sub:
		return a - b
	case Mul:
		return a * b
	case Div:
		return a / b
	case Rem:
		return mod(a, b)
	case CmpEq:
		return boolf(a == b)
	case CmpNotEq:
		return boolf(a != b)
	case CmpLess:
		return boolf(a < b)
	case CmpLessEq:
		return boolf(a <= b)
	case CmpGreater:
		return boolf(a > b)
	case CmpGreaterEq:
		return boolf(a >= b)
	default:
		return 0
	}
}

func boolf(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// mod computes the floating-point remainder without pulling in math
// just for Mod, matching the single fmod-style op spec.md §4.4 asks
// the IR to expose.
func mod(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	q := float64(int64(a / b))
	return a - q*b
}
