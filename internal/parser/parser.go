// Package parser implements Tribhasha's recursive-descent parser
// (spec.md §4.3): one function per precedence level, panic-mode error
// recovery at statement boundaries, and the for-loop-into-while
// desugaring. The error-accumulation and synchronize-past-statement-
// starters shape is grounded on the teacher's
// internal/parser/error_recovery.go; the grammar itself and the
// for-desugaring are taken verbatim from spec.md §4.3 and from
// SirCodeKnight/tribhasha's original src/parser/Parser.cpp.
package parser

import (
	"github.com/tribhasha/tribhasha/internal/ast"
	"github.com/tribhasha/tribhasha/internal/diag"
	"github.com/tribhasha/tribhasha/pkg/token"
)

// Parser consumes a pre-scanned token sequence and produces a Program.
// It owns the token slice for its lifetime (spec.md §5).
type Parser struct {
	tokens  []token.Token
	current int
	sink    *diag.Sink
}

// New creates a Parser over tokens, reporting parse errors to sink.
func New(tokens []token.Token, sink *diag.Sink) *Parser {
	return &Parser{tokens: tokens, sink: sink}
}

// parseError is a recoverable signal raised by a production and caught
// only by the top-level declaration loop (spec.md §4.3, §7).
type parseError struct{ msg string }

func (e parseError) Error() string { return e.msg }

// Parse consumes declarations until end-of-input. Each top-level
// declaration that fails to parse is synchronized past and the loop
// continues, so one malformed declaration never prevents the rest of
// the file from parsing (spec.md §8 invariant 5).
func (p *Parser) Parse() *ast.Program {
	prog := &ast.Program{}
	for !p.isAtEnd() {
		stmt := p.declarationRecovering()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

func (p *Parser) declarationRecovering() (stmt ast.Statement) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()
	return p.declaration()
}

func (p *Parser) declaration() ast.Statement {
	switch {
	case p.match(token.VAR):
		return p.varDecl()
	case p.match(token.FUNCTION):
		return p.funDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) varDecl() ast.Statement {
	name := p.consume(token.IDENT, "expected variable name")
	var init ast.Expression
	if p.match(token.ASSIGN) {
		init = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after variable declaration")
	return &ast.VarDecl{Name: name, Init: init}
}

func (p *Parser) funDecl() ast.Statement {
	name := p.consume(token.IDENT, "expected function name")
	p.consume(token.LPAREN, "expected '(' after function name")

	var params []token.Token
	seen := make(map[string]bool)
	if !p.check(token.RPAREN) {
		for {
			param := p.consume(token.IDENT, "expected parameter name")
			// Open Question (spec.md §9): duplicate parameter names are
			// rejected at parse time rather than silently last-wins.
			if seen[param.Lexeme] {
				p.reportError(param.Line, "duplicate parameter name: %s", param.Lexeme)
			}
			seen[param.Lexeme] = true
			params = append(params, param)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "expected ')' after parameters")
	p.consume(token.LBRACE, "expected '{' before function body")
	body := p.blockStatements()
	return &ast.FunctionDecl{Name: name, Params: params, Body: body}
}

func (p *Parser) statement() ast.Statement {
	switch {
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.check(token.LBRACE):
		line := p.peek().Line
		p.advance()
		return ast.NewBlock(p.blockStatements(), line)
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) ifStatement() ast.Statement {
	line := p.previous().Line
	p.consume(token.LPAREN, "expected '(' after 'if'")
	cond := p.expression()
	p.consume(token.RPAREN, "expected ')' after if condition")
	then := p.statement()
	var els ast.Statement
	if p.match(token.ELSE) {
		els = p.statement()
	}
	return ast.NewIf(cond, then, els, line)
}

func (p *Parser) whileStatement() ast.Statement {
	line := p.previous().Line
	p.consume(token.LPAREN, "expected '(' after 'while'")
	cond := p.expression()
	p.consume(token.RPAREN, "expected ')' after while condition")
	body := p.statement()
	return ast.NewWhile(cond, body, line)
}

// forStatement desugars `for (init; cond; incr) body` into
//
//	{ init ; while (cond') { body ; incr ; } }
//
// committing in-place: no For node is ever constructed (spec.md §4.3,
// §8 invariant 4), mirroring SirCodeKnight/tribhasha's Parser::forStatement.
func (p *Parser) forStatement() ast.Statement {
	line := p.previous().Line
	p.consume(token.LPAREN, "expected '(' after 'for'")

	var init ast.Statement
	switch {
	case p.match(token.SEMICOLON):
		// no initializer
	case p.match(token.VAR):
		init = p.varDecl()
	default:
		init = p.expressionStatement()
	}

	var cond ast.Expression
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after loop condition")

	var incr ast.Expression
	if !p.check(token.RPAREN) {
		incr = p.expression()
	}
	p.consume(token.RPAREN, "expected ')' after for clauses")

	body := p.statement()

	if incr != nil {
		body = ast.NewBlock([]ast.Statement{body, &ast.ExpressionStmt{Expr: incr}}, line)
	}
	if cond == nil {
		cond = ast.NewLiteral("true", ast.BoolLiteral, line)
	}
	loop := ast.Statement(ast.NewWhile(cond, body, line))

	if init != nil {
		loop = ast.NewBlock([]ast.Statement{init, loop}, line)
	}
	return loop
}

func (p *Parser) returnStatement() ast.Statement {
	keyword := p.previous()
	var value ast.Expression
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "expected ';' after return value")
	return &ast.Return{Keyword: keyword, Value: value}
}

func (p *Parser) expressionStatement() ast.Statement {
	expr := p.expression()
	p.consume(token.SEMICOLON, "expected ';' after expression")
	return &ast.ExpressionStmt{Expr: expr}
}

// blockStatements parses declarations until the closing '}'. Entry:
// the opening '{' has already been consumed.
func (p *Parser) blockStatements() []ast.Statement {
	var stmts []ast.Statement
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		stmt := p.declarationRecovering()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(token.RBRACE, "expected '}' after block")
	return stmts
}

// ---- expression grammar (spec.md §4.3, lowest to highest precedence) ----

func (p *Parser) expression() ast.Expression {
	return p.assignment()
}

// assignment implements the "consume '=' first, then decide" rule from
// spec.md §4.3: the '=' token is already consumed before we check
// whether the left side was a bare variable, so equality productions
// containing '=' never spuriously re-match it.
func (p *Parser) assignment() ast.Expression {
	expr := p.logicOr()

	if p.match(token.ASSIGN) {
		equals := p.previous()
		value := p.assignment()

		if v, ok := expr.(*ast.Variable); ok {
			return &ast.Assignment{Name: v.Name, Value: value}
		}
		p.reportError(equals.Line, "invalid assignment target")
		return expr
	}

	return expr
}

// logicOr and logicAnd sit between assignment and equality so `or`/`and`
// bind looser than comparisons but still short-circuit at lowering time
// (spec.md §4.3).
func (p *Parser) logicOr() ast.Expression {
	expr := p.logicAnd()
	for p.match(token.OR) {
		op := p.previous()
		right := p.logicAnd()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) logicAnd() ast.Expression {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expression {
	expr := p.comparison()
	for p.match(token.EQ, token.NOT_EQ) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expression {
	expr := p.term()
	for p.match(token.LESS, token.LESS_EQ, token.GREATER, token.GREATER_EQ) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expression {
	expr := p.factor()
	for p.match(token.PLUS, token.MINUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expression {
	expr := p.unary()
	for p.match(token.STAR, token.SLASH, token.PERCENT) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// unary handles prefix '-' and the NOT role in any of its three
// surface-language keyword kinds or the overloaded '!' spelling
// (spec.md §4.2 design note §9: "!" doubles as both NOT_EN and the
// start of "!="; the parser treats the resulting BANG/NOT tokens
// equivalently).
func (p *Parser) unary() ast.Expression {
	if p.match(token.MINUS, token.NOT, token.BANG) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expression {
	expr := p.primary()
	for p.match(token.LPAREN) {
		expr = p.finishCall(expr)
	}
	return expr
}

func (p *Parser) finishCall(callee ast.Expression) ast.Expression {
	var args []ast.Expression
	if !p.check(token.RPAREN) {
		for {
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RPAREN, "expected ')' after arguments")
	return &ast.Call{Callee: callee, ClosingParen: paren, Args: args}
}

func (p *Parser) primary() ast.Expression {
	switch {
	case p.match(token.TRUE):
		return ast.NewLiteral(p.previous().Lexeme, ast.BoolLiteral, p.previous().Line)
	case p.match(token.FALSE):
		return ast.NewLiteral(p.previous().Lexeme, ast.BoolLiteral, p.previous().Line)
	case p.match(token.INT):
		return ast.NewLiteral(p.previous().Lexeme, ast.IntLiteral, p.previous().Line)
	case p.match(token.FLOAT):
		return ast.NewLiteral(p.previous().Lexeme, ast.FloatLiteral, p.previous().Line)
	case p.match(token.STRING):
		return ast.NewLiteral(p.previous().Lexeme, ast.StringLiteral, p.previous().Line)
	case p.match(token.IDENT):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.LPAREN):
		line := p.previous().Line
		inner := p.expression()
		p.consume(token.RPAREN, "expected ')' after expression")
		return ast.NewGrouping(inner, line)
	}

	tok := p.peek()
	p.reportError(tok.Line, "expected expression, found %s", tok.Kind)
	panic(parseError{"expected expression"})
}

// ---- recovery ----

// statementStarters are the tokens synchronize() treats as safe
// resumption points, in addition to "just past a semicolon"
// (spec.md §4.3), grounded on the teacher's internal/parser/error_recovery.go.
var statementStarters = map[token.Kind]bool{
	token.VAR:      true,
	token.FUNCTION: true,
	token.IF:       true,
	token.WHILE:    true,
	token.FOR:      true,
	token.RETURN:   true,
}

func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.SEMICOLON {
			return
		}
		if statementStarters[p.peek().Kind] {
			return
		}
		p.advance()
	}
}

// ---- token cursor helpers ----

func (p *Parser) isAtEnd() bool { return p.peek().Kind == token.EOF }
func (p *Parser) peek() token.Token {
	if p.current >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.current]
}
func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return kind == token.EOF
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, msg string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	tok := p.peek()
	p.reportError(tok.Line, "%s (found %s)", msg, tok.Kind)
	panic(parseError{msg})
}

func (p *Parser) reportError(line int, format string, args ...any) {
	p.sink.Parse(line, format, args...)
}
