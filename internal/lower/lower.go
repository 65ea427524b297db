// Package lower implements the AST-to-IR lowering pass (spec.md §4.4):
// a single top-down walk that drives an ir.Builder exactly the way the
// original C++ implementation drives llvm::IRBuilder in CodeGen.cpp,
// adapted to the tagged-sum-type AST instead of a visitor.
package lower

import (
	"github.com/tribhasha/tribhasha/internal/ast"
	"github.com/tribhasha/tribhasha/internal/diag"
	"github.com/tribhasha/tribhasha/internal/ir"
	"github.com/tribhasha/tribhasha/pkg/token"
)

// scope maps a local variable name to the stack slot it lives in.
// Scopes nest: Block introduces a new one, popped on exit (spec.md §3:
// Block "introduces a new lexical scope").
type scope map[string]ir.Slot

// Lowerer drives an ir.Builder across one compilation. It keeps a flat
// function table (for calls, resolved regardless of declaration order)
// and a stack of block scopes for the function currently being lowered.
type Lowerer struct {
	b     ir.Builder
	sink  *diag.Sink
	funcs map[string]ir.Func
	decls map[string]*ast.FunctionDecl

	// globals holds every top-level `var` name, pre-declared before any
	// function body is lowered so a function can reference a global
	// regardless of where in the file it sits (spec.md §8 scenario S1).
	// lookup checks it only after every local scope has missed.
	globals scope

	curFn  ir.Func
	entry  ir.Block
	scopes []scope
}

// Lower compiles prog into a module named name, wrapping every
// top-level statement that is not a function declaration into a
// synthesized function named "main" returning a 32-bit integer
// (spec.md §4.4). A lowering error against one statement or function
// is reported to sink and skips only that statement or function;
// Lower still returns the rest of the module (spec.md §7: "other
// statements continue"). Lower returns nil only when main itself fails
// structural verification — a code-generation bug in this pass, not a
// user-level error. Callers that need to treat any reported diagnostic
// as fatal check sink.HasErrors() independently.
func Lower(prog *ast.Program, name string, sink *diag.Sink) *ir.Module {
	l := &Lowerer{
		b:       ir.NewModuleBuilder(),
		sink:    sink,
		funcs:   make(map[string]ir.Func),
		decls:   make(map[string]*ast.FunctionDecl),
		globals: make(scope),
	}
	l.b.NewModule(name)

	// Pass 1: declare every top-level function up front so forward and
	// mutually recursive calls resolve (spec.md §4.4).
	for _, stmt := range prog.Statements {
		if fd, ok := stmt.(*ast.FunctionDecl); ok {
			params := make([]string, len(fd.Params))
			for i, p := range fd.Params {
				params[i] = p.Lexeme
			}
			fn := l.b.DeclareFunction(fd.Name.Lexeme, params)
			l.funcs[fd.Name.Lexeme] = fn
			l.decls[fd.Name.Lexeme] = fd
		}
	}

	// Pass 1.5: pre-declare every top-level `var` as a global slot,
	// before any function body is lowered, so a function can resolve a
	// global no matter where in the file it is declared relative to the
	// function (spec.md §8 scenario S1). The initializer itself is
	// lowered later, in its original position within main, so execution
	// order and side effects are unaffected.
	for _, stmt := range prog.Statements {
		if vd, ok := stmt.(*ast.VarDecl); ok {
			l.globals[vd.Name.Lexeme] = l.b.AllocaGlobal(vd.Name.Lexeme)
		}
	}

	// Pass 2: lower each function's own body.
	for name, fd := range l.decls {
		l.lowerFunctionBody(l.funcs[name], fd)
	}

	// Pass 3: synthesize main from every remaining top-level statement.
	mainFn := l.b.DeclareFunction("main", nil)
	mainEntry := l.b.CreateBlock(mainFn, "entry")
	l.b.SetInsertPoint(mainEntry)
	l.curFn = mainFn
	l.entry = mainEntry
	l.pushScope()
	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ast.FunctionDecl:
			continue
		case *ast.VarDecl:
			l.lowerGlobalVarDecl(s)
		default:
			l.lowerStmt(stmt)
		}
	}
	if !l.b.CurrentBlockTerminated() {
		l.b.RetInt32(0)
	}
	l.popScope()
	if err := l.b.Verify(mainFn); err != nil {
		sink.Lowering(0, "%s", err.Error())
		return nil
	}

	// A lowering error aborts only the statement or function it was
	// reported against; every other part of the module still lowered
	// and is still usable (spec.md §7: "other statements continue").
	// Whether to treat the sink's accumulated diagnostics as fatal is
	// the caller's decision, not this pass's.
	return l.b.Module()
}

// lowerGlobalVarDecl stores s's initializer into the module-global slot
// pre-declared for it in Lower's pass 1.5, in the position the
// initializer actually occupies among main's statements.
func (l *Lowerer) lowerGlobalVarDecl(s *ast.VarDecl) {
	slot := l.globals[s.Name.Lexeme]
	var v ir.Value
	if s.Init != nil {
		v = l.lowerExpr(s.Init)
		if v == nil {
			return
		}
	} else {
		v = l.b.ConstFloat(0)
	}
	l.b.Store(slot, v)
}

func (l *Lowerer) lowerFunctionBody(fn ir.Func, fd *ast.FunctionDecl) {
	entry := l.b.CreateBlock(fn, "entry")
	l.b.SetInsertPoint(entry)
	l.curFn = fn
	l.entry = entry
	l.pushScope()

	for i, p := range fd.Params {
		slot := l.b.Alloca(entry, p.Lexeme)
		l.b.Store(slot, l.b.Param(fn, i))
		l.bind(p.Lexeme, slot)
	}

	for _, stmt := range fd.Body {
		l.lowerStmt(stmt)
	}
	if !l.b.CurrentBlockTerminated() {
		l.b.Ret(l.b.ConstFloat(0))
	}
	l.popScope()

	if err := l.b.Verify(fn); err != nil {
		l.sink.Lowering(fd.Line(), "%s", err.Error())
	}
}

func (l *Lowerer) pushScope() { l.scopes = append(l.scopes, make(scope)) }
func (l *Lowerer) popScope()  { l.scopes = l.scopes[:len(l.scopes)-1] }

func (l *Lowerer) bind(name string, slot ir.Slot) {
	l.scopes[len(l.scopes)-1][name] = slot
}

func (l *Lowerer) lookup(name string) (ir.Slot, bool) {
	for i := len(l.scopes) - 1; i >= 0; i-- {
		if slot, ok := l.scopes[i][name]; ok {
			return slot, true
		}
	}
	if slot, ok := l.globals[name]; ok {
		return slot, true
	}
	return nil, false
}

// lowerStmt emits stmt's effect. A failure inside stmt is reported to
// the sink by the expression lowering that produced it. An expression
// statement discards its value, so it needs no nil check; VarDecl and
// Return skip their store or terminator when the value is nil.
func (l *Lowerer) lowerStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		l.lowerExpr(s.Expr)

	case *ast.VarDecl:
		slot := l.b.Alloca(l.entry, s.Name.Lexeme)
		var v ir.Value
		if s.Init != nil {
			v = l.lowerExpr(s.Init)
			if v == nil {
				return
			}
		} else {
			v = l.b.ConstFloat(0)
		}
		l.b.Store(slot, v)
		l.bind(s.Name.Lexeme, slot)

	case *ast.Block:
		l.pushScope()
		for _, inner := range s.Statements {
			l.lowerStmt(inner)
		}
		l.popScope()

	case *ast.If:
		l.lowerIf(s)

	case *ast.While:
		l.lowerWhile(s)

	case *ast.FunctionDecl:
		// The parser accepts a function declaration inside a block, but
		// only top-level declarations are lowered: a nested one emits
		// nothing and its name is not callable.

	case *ast.Return:
		if s.Value == nil {
			l.b.Ret(l.b.ConstFloat(0))
			return
		}
		v := l.lowerExpr(s.Value)
		if v == nil {
			return
		}
		l.b.Ret(v)

	default:
		l.sink.Lowering(stmt.Line(), "unsupported statement %T", stmt)
	}
}

func (l *Lowerer) lowerIf(s *ast.If) {
	cond := l.lowerExpr(s.Cond)
	if cond == nil {
		return
	}
	thenBlk := l.b.CreateBlock(l.curFn, "if.then")
	elseBlk := l.b.CreateBlock(l.curFn, "if.else")
	mergeBlk := l.b.CreateBlock(l.curFn, "if.merge")
	l.b.CondBr(cond, thenBlk, elseBlk)

	l.b.SetInsertPoint(thenBlk)
	l.lowerStmt(s.Then)
	if !l.b.CurrentBlockTerminated() {
		l.b.Br(mergeBlk)
	}

	l.b.SetInsertPoint(elseBlk)
	if s.Else != nil {
		l.lowerStmt(s.Else)
	}
	if !l.b.CurrentBlockTerminated() {
		l.b.Br(mergeBlk)
	}

	l.b.SetInsertPoint(mergeBlk)
}

func (l *Lowerer) lowerWhile(s *ast.While) {
	condBlk := l.b.CreateBlock(l.curFn, "while.cond")
	bodyBlk := l.b.CreateBlock(l.curFn, "while.body")
	afterBlk := l.b.CreateBlock(l.curFn, "while.after")

	if !l.b.CurrentBlockTerminated() {
		l.b.Br(condBlk)
	}

	l.b.SetInsertPoint(condBlk)
	cond := l.lowerExpr(s.Cond)
	if cond == nil {
		l.b.Br(afterBlk)
		l.b.SetInsertPoint(afterBlk)
		return
	}
	l.b.CondBr(cond, bodyBlk, afterBlk)

	l.b.SetInsertPoint(bodyBlk)
	l.lowerStmt(s.Body)
	if !l.b.CurrentBlockTerminated() {
		l.b.Br(condBlk)
	}

	l.b.SetInsertPoint(afterBlk)
}

// lowerExpr lowers e and returns its Value, or nil if lowering failed
// — the "null IR value" spec.md §4.4 has every caller propagate rather
// than abort the whole compilation.
func (l *Lowerer) lowerExpr(e ast.Expression) ir.Value {
	switch n := e.(type) {
	case *ast.Literal:
		return l.lowerLiteral(n)

	case *ast.Grouping:
		return l.lowerExpr(n.Inner)

	case *ast.Variable:
		slot, ok := l.lookup(n.Name.Lexeme)
		if !ok {
			l.sink.Lowering(n.Line(), "unknown variable name %q", n.Name.Lexeme)
			return nil
		}
		return l.b.Load(slot)

	case *ast.Assignment:
		v := l.lowerExpr(n.Value)
		if v == nil {
			return nil
		}
		slot, ok := l.lookup(n.Name.Lexeme)
		if !ok {
			l.sink.Lowering(n.Line(), "unknown variable name %q", n.Name.Lexeme)
			return nil
		}
		l.b.Store(slot, v)
		return v

	case *ast.Unary:
		return l.lowerUnary(n)

	case *ast.Binary:
		return l.lowerBinary(n)

	case *ast.Call:
		return l.lowerCall(n)

	default:
		l.sink.Lowering(e.Line(), "unsupported expression %T", e)
		return nil
	}
}

func (l *Lowerer) lowerLiteral(n *ast.Literal) ir.Value {
	switch n.Kind {
	case ast.IntLiteral, ast.FloatLiteral:
		f, err := parseNumber(n.Text)
		if err != nil {
			l.sink.Lowering(n.Line(), "invalid numeric literal %q", n.Text)
			return nil
		}
		return l.b.ConstFloat(f)
	case ast.BoolLiteral:
		if n.Text == "true" {
			return l.b.ConstFloat(1)
		}
		return l.b.ConstFloat(0)
	case ast.StringLiteral:
		return l.b.ConstString(n.Text)
	default:
		l.sink.Lowering(n.Line(), "unsupported literal kind")
		return nil
	}
}

func (l *Lowerer) lowerUnary(n *ast.Unary) ir.Value {
	v := l.lowerExpr(n.Right)
	if v == nil {
		return nil
	}
	switch n.Op.Kind {
	case token.MINUS:
		return l.b.Neg(v)
	case token.NOT, token.BANG:
		return l.b.Not(v)
	default:
		l.sink.Lowering(n.Line(), "unsupported unary operator %s", n.Op.Kind)
		return nil
	}
}

// lowerBinary emits arithmetic/comparison ops directly, and gives `and`
// / `or` real short-circuit control flow via branches rather than
// treating them as plain boolean arithmetic. The original implementation
// has no separate logical-operator production or AST node at all —
// `and`/`or` sit in the same precedence ladder as every other binary
// operator (spec.md §4.3) and CodeGen.cpp evaluates both sides
// unconditionally. Giving them branch-based short-circuit evaluation
// here is this lowering pass's own enrichment, not something grounded
// in the original.
func (l *Lowerer) lowerBinary(n *ast.Binary) ir.Value {
	switch n.Op.Kind {
	case token.AND:
		return l.lowerShortCircuit(n, false)
	case token.OR:
		return l.lowerShortCircuit(n, true)
	}

	left := l.lowerExpr(n.Left)
	if left == nil {
		return nil
	}
	right := l.lowerExpr(n.Right)
	if right == nil {
		return nil
	}
	op, ok := binOpFor(n.Op.Kind)
	if !ok {
		l.sink.Lowering(n.Line(), "unsupported binary operator %s", n.Op.Kind)
		return nil
	}
	return l.b.BinOp(op, left, right)
}

// lowerShortCircuit lowers `and`/`or`, spilling the result to a slot so
// both branches can feed a single merged Load — the scalar-model
// equivalent of an SSA phi (spec.md §4.4 has no phi instruction).
func (l *Lowerer) lowerShortCircuit(n *ast.Binary, isOr bool) ir.Value {
	left := l.lowerExpr(n.Left)
	if left == nil {
		return nil
	}
	resultSlot := l.b.Alloca(l.entry, "logic.tmp")
	l.b.Store(resultSlot, left)

	rhsBlk := l.b.CreateBlock(l.curFn, "logic.rhs")
	mergeBlk := l.b.CreateBlock(l.curFn, "logic.merge")
	if isOr {
		l.b.CondBr(left, mergeBlk, rhsBlk)
	} else {
		l.b.CondBr(left, rhsBlk, mergeBlk)
	}

	l.b.SetInsertPoint(rhsBlk)
	right := l.lowerExpr(n.Right)
	if right == nil {
		return nil
	}
	l.b.Store(resultSlot, right)
	if !l.b.CurrentBlockTerminated() {
		l.b.Br(mergeBlk)
	}

	l.b.SetInsertPoint(mergeBlk)
	return l.b.Load(resultSlot)
}

func (l *Lowerer) lowerCall(n *ast.Call) ir.Value {
	variable, ok := n.Callee.(*ast.Variable)
	if !ok {
		l.sink.Lowering(n.Line(), "callee is not a function name")
		return nil
	}
	fn, ok := l.funcs[variable.Name.Lexeme]
	if !ok {
		l.sink.Lowering(n.Line(), "unknown function %q", variable.Name.Lexeme)
		return nil
	}
	if fn.Arity() != len(n.Args) {
		l.sink.Lowering(n.Line(), "function %q expects %d arguments, got %d", fn.Name(), fn.Arity(), len(n.Args))
		return nil
	}
	args := make([]ir.Value, len(n.Args))
	for i, a := range n.Args {
		v := l.lowerExpr(a)
		if v == nil {
			return nil
		}
		args[i] = v
	}
	return l.b.Call(fn, args)
}

func binOpFor(k token.Kind) (ir.BinOp, bool) {
	switch k {
	case token.PLUS:
		return ir.Add, true
	case token.MINUS:
		return ir.Sub, true
	case token.STAR:
		return ir.Mul, true
	case token.SLASH:
		return ir.Div, true
	case token.PERCENT:
		return ir.Rem, true
	case token.EQ:
		return ir.CmpEq, true
	case token.NOT_EQ:
		return ir.CmpNotEq, true
	case token.LESS:
		return ir.CmpLess, true
	case token.LESS_EQ:
		return ir.CmpLessEq, true
	case token.GREATER:
		return ir.CmpGreater, true
	case token.GREATER_EQ:
		return ir.CmpGreaterEq, true
	default:
		return 0, false
	}
}
