// Package lexer implements the multilingual scanner described in
// spec.md §4.2: a cursor pair over UTF-8 source text that produces a
// flat token sequence, resolving identifiers against the canonical
// keyword table in pkg/token.
package lexer

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/tribhasha/tribhasha/internal/diag"
	"github.com/tribhasha/tribhasha/pkg/token"
)

// Lexer scans a UTF-8 byte sequence into tokens. It owns its own error
// sink for the lifetime of a single scan (spec.md §5: "each compilation
// must own its own lexer").
type Lexer struct {
	input   string
	start   int // byte offset of the lexeme currently being scanned
	current int // byte offset of the next unread byte
	line    int
	sink    *diag.Sink
}

// New creates a Lexer over input, reporting lexical errors to sink.
func New(input string, sink *diag.Sink) *Lexer {
	return &Lexer{input: input, line: 1, sink: sink}
}

// Tokens scans the entire input and returns the full token sequence,
// always ending with exactly one EOF token (spec.md §8 invariant 1).
func (l *Lexer) Tokens() []token.Token {
	var out []token.Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next scans and returns the next token, discarding whitespace and
// comments first. Lexical errors are reported to the sink and scanning
// continues (spec.md §4.2, §7): an unexpected character is reported and
// also emitted as an ILLEGAL token; an unterminated string is reported
// and yields no token.
func (l *Lexer) Next() token.Token {
	l.skipIgnored()
	l.start = l.current

	if l.atEnd() {
		return l.emit(token.EOF, "")
	}

	ch := l.advance()

	switch ch {
	case '(':
		return l.emit(token.LPAREN, "(")
	case ')':
		return l.emit(token.RPAREN, ")")
	case '{':
		return l.emit(token.LBRACE, "{")
	case '}':
		return l.emit(token.RBRACE, "}")
	case '[':
		return l.emit(token.LBRACKET, "[")
	case ']':
		return l.emit(token.RBRACKET, "]")
	case ',':
		return l.emit(token.COMMA, ",")
	case '.':
		return l.emit(token.DOT, ".")
	case ';':
		return l.emit(token.SEMICOLON, ";")
	case ':':
		return l.emit(token.COLON, ":")
	case '+':
		return l.emit(token.PLUS, "+")
	case '-':
		return l.emit(token.MINUS, "-")
	case '*':
		return l.emit(token.STAR, "*")
	case '%':
		return l.emit(token.PERCENT, "%")
	case '=':
		if l.match('=') {
			return l.emit(token.EQ, "==")
		}
		return l.emit(token.ASSIGN, "=")
	case '!':
		if l.match('=') {
			return l.emit(token.NOT_EQ, "!=")
		}
		return l.emit(token.BANG, "!")
	case '<':
		if l.match('=') {
			return l.emit(token.LESS_EQ, "<=")
		}
		return l.emit(token.LESS, "<")
	case '>':
		if l.match('=') {
			return l.emit(token.GREATER_EQ, ">=")
		}
		return l.emit(token.GREATER, ">")
	case '/':
		// A lone slash is division; "//" was already consumed by
		// skipIgnored, so reaching here always means division.
		return l.emit(token.SLASH, "/")
	case '"':
		if tok, ok := l.scanString(); ok {
			return tok
		}
		// Unterminated string: nothing to emit for this lexeme, fall
		// through to whatever the cursor (now at end-of-input) scans
		// to next — always EOF (spec.md §4.2, scenario S6).
		return l.Next()
	}

	switch {
	case isDigit(ch):
		return l.scanNumber()
	case isIdentStart(ch):
		return l.scanIdentifier()
	default:
		l.sink.Lexical(l.line, "unexpected character: %q", ch)
		return l.emit(token.ILLEGAL, string(ch))
	}
}

func (l *Lexer) atEnd() bool { return l.current >= len(l.input) }

// advance consumes and returns the rune starting at l.current.
func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.input[l.current:])
	l.current += size
	if r == '\n' {
		l.line++
	}
	return r
}

// peek returns the rune starting at l.current without consuming it.
func (l *Lexer) peek() rune {
	if l.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.current:])
	return r
}

// peekAt returns the rune n runes ahead of l.current without consuming
// anything, or 0 past the end of input.
func (l *Lexer) peekAt(n int) rune {
	pos := l.current
	for i := 0; i < n; i++ {
		if pos >= len(l.input) {
			return 0
		}
		_, size := utf8.DecodeRuneInString(l.input[pos:])
		pos += size
	}
	if pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return r
}

// match consumes the next rune iff it equals expected.
func (l *Lexer) match(expected rune) bool {
	if l.peek() != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) emit(kind token.Kind, lexeme string) token.Token {
	return token.New(kind, lexeme, l.line)
}

// skipIgnored discards whitespace and line comments ("//" to end of
// line), per spec.md §4.2. Lines are counted via advance().
func (l *Lexer) skipIgnored() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '/':
			if l.peekAt(1) == '/' {
				for l.peek() != '\n' && !l.atEnd() {
					l.advance()
				}
				continue
			}
			return
		default:
			return
		}
	}
}

// scanString reads a double-quoted string literal. The emitted lexeme
// excludes the surrounding quotes. An unterminated literal reports a
// lexical error on the opening line and terminates the scan at
// end-of-input without producing any token for it at all — ok is false
// and the caller moves on to whatever token follows (spec.md §4.2,
// scenario S6).
func (l *Lexer) scanString() (tok token.Token, ok bool) {
	openLine := l.line
	contentStart := l.current

	for l.peek() != '"' && !l.atEnd() {
		l.advance()
	}

	if l.atEnd() {
		l.sink.Lexical(openLine, "unterminated string literal")
		return token.Token{}, false
	}

	content := l.input[contentStart:l.current]
	l.advance() // closing quote
	return token.New(token.STRING, content, openLine), true
}

// scanNumber reads a run of ASCII digits, optionally followed by a
// fractional part, per spec.md §4.2.
func (l *Lexer) scanNumber() token.Token {
	for isDigit(l.peek()) {
		l.advance()
	}

	isFloat := false
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.advance() // consume '.'
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	lexeme := l.input[l.start:l.current]
	if isFloat {
		return l.emit(token.FLOAT, lexeme)
	}
	return l.emit(token.INT, lexeme)
}

// scanIdentifier reads an identifier or keyword lexeme and resolves it
// against the canonical keyword table. The lexeme is NFC-normalized
// before lookup so combining-mark variants of the same Devanagari or
// Bengali-Assamese text resolve identically (spec.md §4.1, §4.2).
func (l *Lexer) scanIdentifier() token.Token {
	for isIdentContinue(l.peek()) {
		l.advance()
	}
	lexeme := norm.NFC.String(l.input[l.start:l.current])
	kind := token.Lookup(lexeme)
	return l.emit(kind, lexeme)
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

// isIdentStart reports whether ch may begin an identifier: an ASCII
// letter, underscore, or any codepoint outside the ASCII range (the
// sufficient rule from spec.md §4.2 — "any byte with the top two bits
// set begins a multi-byte sequence and counts as alphabetic").
func isIdentStart(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}

// isIdentContinue reports whether ch may continue an identifier once
// started: alphanumeric, underscore, or non-ASCII. Underscore must
// continue an identifier so that compound Hindi/Assamese keyword
// lexemes like "के_लिए" and "ৰ_বাবে" scan as one token.
func isIdentContinue(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}
