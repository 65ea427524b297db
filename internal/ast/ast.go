// Package ast defines the Tribhasha abstract syntax tree (spec.md §3).
// Expression and Statement are closed sum types realized as Go
// interfaces with unexported marker methods; lowering switches on the
// concrete type rather than dispatching through a visitor, per the
// design note in spec.md §9 preferring a tagged sum type with pattern
// matching over the original's erased-pointer visitor.
package ast

import "github.com/tribhasha/tribhasha/pkg/token"

// Node is implemented by every AST node.
type Node interface {
	Line() int
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of the tree: the flat sequence of top-level
// statements spec.md §4.4 wraps into a synthesized "main" function.
type Program struct {
	Statements []Statement
}

// ---- Expressions ----

// Binary is `Left Op Right`.
type Binary struct {
	Left  Expression
	Op    token.Token
	Right Expression
}

func (e *Binary) expressionNode() {}
func (e *Binary) Line() int       { return e.Op.Line }

// Unary is `Op Right` (prefix `-` or any language's `not`).
type Unary struct {
	Op    token.Token
	Right Expression
}

func (e *Unary) expressionNode() {}
func (e *Unary) Line() int       { return e.Op.Line }

// Grouping is a parenthesized expression; transparent at lowering time.
type Grouping struct {
	Inner Expression
	line  int
}

func NewGrouping(inner Expression, line int) *Grouping { return &Grouping{Inner: inner, line: line} }
func (e *Grouping) expressionNode()                    {}
func (e *Grouping) Line() int                          { return e.line }

// LiteralKind distinguishes the surface form of a Literal node.
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	FloatLiteral
	StringLiteral
	BoolLiteral
)

// Literal is a literal value: its original text plus a kind tag so
// lowering knows how to interpret Text.
type Literal struct {
	Text string
	Kind LiteralKind
	line int
}

func NewLiteral(text string, kind LiteralKind, line int) *Literal {
	return &Literal{Text: text, Kind: kind, line: line}
}
func (e *Literal) expressionNode() {}
func (e *Literal) Line() int       { return e.line }

// Variable is a bare identifier usage.
type Variable struct {
	Name token.Token
}

func (e *Variable) expressionNode() {}
func (e *Variable) Line() int       { return e.Name.Line }

// Assignment is `name = value`.
type Assignment struct {
	Name  token.Token
	Value Expression
}

func (e *Assignment) expressionNode() {}
func (e *Assignment) Line() int       { return e.Name.Line }

// Call is `Callee(Args...)`. ClosingParen carries the line used for
// arity-mismatch diagnostics (spec.md §3 invariant).
type Call struct {
	Callee       Expression
	ClosingParen token.Token
	Args         []Expression
}

func (e *Call) expressionNode() {}
func (e *Call) Line() int       { return e.ClosingParen.Line }

// ---- Statements ----

// ExpressionStmt evaluates Expr and discards the result.
type ExpressionStmt struct {
	Expr Expression
}

func (s *ExpressionStmt) statementNode() {}
func (s *ExpressionStmt) Line() int      { return s.Expr.Line() }

// VarDecl is `var Name = Init;` with an optional initializer.
type VarDecl struct {
	Name token.Token
	Init Expression // nil if absent
}

func (s *VarDecl) statementNode() {}
func (s *VarDecl) Line() int      { return s.Name.Line }

// Block is a brace-delimited statement sequence introducing a new
// lexical scope.
type Block struct {
	Statements []Statement
	line       int
}

func NewBlock(stmts []Statement, line int) *Block { return &Block{Statements: stmts, line: line} }
func (s *Block) statementNode()                   {}
func (s *Block) Line() int                        { return s.line }

// If is `if (Cond) Then else Else`, Else nil if absent.
type If struct {
	Cond Expression
	Then Statement
	Else Statement // nil if absent
	line int
}

func NewIf(cond Expression, then, els Statement, line int) *If {
	return &If{Cond: cond, Then: then, Else: els, line: line}
}
func (s *If) statementNode() {}
func (s *If) Line() int      { return s.line }

// While is `while (Cond) Body`. The desugared form of a counted `for`
// loop is a Block wrapping a While — no distinct For node ever exists
// (spec.md §4.3).
type While struct {
	Cond Expression
	Body Statement
	line int
}

func NewWhile(cond Expression, body Statement, line int) *While {
	return &While{Cond: cond, Body: body, line: line}
}
func (s *While) statementNode() {}
func (s *While) Line() int      { return s.line }

// FunctionDecl is `function Name(Params...) { Body }`.
type FunctionDecl struct {
	Name   token.Token
	Params []token.Token
	Body   []Statement
}

func (s *FunctionDecl) statementNode() {}
func (s *FunctionDecl) Line() int      { return s.Name.Line }

// Return is `return Value;`, Value nil if absent.
type Return struct {
	Keyword token.Token
	Value   Expression // nil if absent
}

func (s *Return) statementNode() {}
func (s *Return) Line() int      { return s.Keyword.Line }
