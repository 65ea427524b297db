// Package token defines the canonical token kinds shared by the lexer
// and parser, and the multilingual keyword tables that resolve surface
// lexemes (English, Hindi, or Assamese) to a single canonical kind.
package token

import "golang.org/x/text/unicode/norm"

// Kind identifies the category of a token. Keyword variants in all
// three surface languages for a given role collapse to one Kind; there
// is no ENGLISH_IF/HINDI_IF split.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF
	IDENT

	literalBegin
	INT
	FLOAT
	STRING
	TRUE
	FALSE
	literalEnd

	keywordBegin
	VAR
	FUNCTION
	IF
	ELSE
	WHILE
	FOR
	RETURN
	AND
	OR
	NOT
	keywordEnd

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	DOT
	SEMICOLON
	COLON

	PLUS
	MINUS
	STAR
	SLASH
	PERCENT

	ASSIGN
	EQ
	NOT_EQ
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ
	BANG
)

var names = [...]string{
	ILLEGAL:  "ILLEGAL",
	EOF:      "END_OF_FILE",
	IDENT:    "IDENT",
	INT:      "INT_LITERAL",
	FLOAT:    "FLOAT_LITERAL",
	STRING:   "STRING_LITERAL",
	TRUE:     "TRUE",
	FALSE:    "FALSE",
	VAR:      "VAR",
	FUNCTION: "FUNCTION",
	IF:       "IF",
	ELSE:     "ELSE",
	WHILE:    "WHILE",
	FOR:      "FOR",
	RETURN:   "RETURN",
	AND:      "AND",
	OR:       "OR",
	NOT:      "NOT",

	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACE:    "LBRACE",
	RBRACE:    "RBRACE",
	LBRACKET:  "LBRACKET",
	RBRACKET:  "RBRACKET",
	COMMA:     "COMMA",
	DOT:       "DOT",
	SEMICOLON: "SEMICOLON",
	COLON:     "COLON",

	PLUS:    "PLUS",
	MINUS:   "MINUS",
	STAR:    "STAR",
	SLASH:   "SLASH",
	PERCENT: "PERCENT",

	ASSIGN:     "ASSIGN",
	EQ:         "EQ",
	NOT_EQ:     "NOT_EQ",
	LESS:       "LESS",
	LESS_EQ:    "LESS_EQ",
	GREATER:    "GREATER",
	GREATER_EQ: "GREATER_EQ",
	BANG:       "BANG",
}

// String returns the canonical name used by the token-dump textual
// format (spec.md §6: "<TOKEN_KIND> <lexeme> (line N)").
func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(names) && names[k] != "" {
		return names[k]
	}
	return "UNKNOWN"
}

// IsLiteral reports whether k is a literal-value category.
func (k Kind) IsLiteral() bool { return k > literalBegin && k < literalEnd }

// IsKeyword reports whether k is one of the canonical keyword roles.
func (k Kind) IsKeyword() bool { return k > keywordBegin && k < keywordEnd }

// englishKeywords, hindiKeywords and assameseKeywords hold the surface
// lexemes for each of the three supported languages. The partition
// into three maps is incidental — init() flattens them into the single
// table Lookup reads, per spec.md §4.1.
var englishKeywords = map[string]Kind{
	"var":      VAR,
	"function": FUNCTION,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"return":   RETURN,
	"true":     TRUE,
	"false":    FALSE,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
}

// hindiKeywords uses the Devanagari lexemes from the original
// implementation (SirCodeKnight/tribhasha, include/tribhasha/Token.h).
var hindiKeywords = map[string]Kind{
	"चर":     VAR,
	"फलन":    FUNCTION,
	"अगर":    IF,
	"अन्यथा": ELSE,
	"जबतक":   WHILE,
	"के_लिए": FOR,
	"वापस":   RETURN,
	"सही":    TRUE,
	"गलत":    FALSE,
	"और":     AND,
	"या":     OR,
	"नहीं":   NOT,
}

// assameseKeywords uses the Bengali-Assamese lexemes from the original
// implementation.
var assameseKeywords = map[string]Kind{
	"ভেৰিয়েবল":   VAR,
	"কাৰ্য্য":     FUNCTION,
	"যদি":        IF,
	"নহলে":       ELSE,
	"যতক্ষণ":     WHILE,
	"ৰ_বাবে":     FOR,
	"ঘূৰাই_দিয়ক": RETURN,
	"সত্য":       TRUE,
	"মিছা":       FALSE,
	"আৰু":        AND,
	"বা":         OR,
	"নহয়":       NOT,
}

// keywords is the flattened, NFC-normalized table used by Lookup. Built
// once at package init; read-only thereafter (spec.md §5: "the keyword
// table is the only process-wide immutable datum").
var keywords map[string]Kind

func init() {
	keywords = make(map[string]Kind, len(englishKeywords)+len(hindiKeywords)+len(assameseKeywords))
	for _, table := range []map[string]Kind{englishKeywords, hindiKeywords, assameseKeywords} {
		for lexeme, kind := range table {
			keywords[norm.NFC.String(lexeme)] = kind
		}
	}
}

// Lookup resolves lexeme against the keyword table, normalizing it to
// NFC first so combining-mark variants of the same Devanagari/Bengali
// text collide correctly. Returns IDENT if lexeme names no keyword in
// any of the three languages.
func Lookup(lexeme string) Kind {
	if kind, ok := keywords[norm.NFC.String(lexeme)]; ok {
		return kind
	}
	return IDENT
}

// IsKeywordText reports whether lexeme is a keyword in any supported
// language.
func IsKeywordText(lexeme string) bool {
	return Lookup(lexeme) != IDENT
}

// Canonical returns the canonical (English) Kind for any keyword Kind.
// Since keyword Kinds are already language-collapsed, this is the
// identity on keyword kinds and is provided so callers branching on
// "role" rather than "language" have a single, explicit entry point
// (spec.md §4.1).
func Canonical(k Kind) Kind { return k }
