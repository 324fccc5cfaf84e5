// Package ast defines the token types, the Token struct and the expression
// tree produced by the noon front end.
//
// Tokens are the smallest meaningful units of a noon statement. Every token
// carries its type, the exact literal text it was scanned from, and the source
// position of its first character. Position is 1-based: the first character of
// the first line is Line 1, Col 1.
package ast

// TokenType identifies the category of a scanned token.
// The zero value is UNKNOWN, which is also what the lexer emits for a
// character no other rule recognises.
type TokenType int

const (
	// ── Special ────────────────────────────────────────────────────────────────

	// UNKNOWN is a single character that matches no symbol, literal or
	// identifier rule. The lexer keeps it in the stream; the parser rejects it.
	UNKNOWN TokenType = iota
	// EOF is returned by the parser's look-ahead once the token list is
	// exhausted. It is never stored in a token list.
	EOF

	// ── Literals ───────────────────────────────────────────────────────────────

	// CHAR is a single-quoted literal, e.g. 'a'. The literal keeps its quotes
	// and escape sequences exactly as written.
	CHAR
	// STRING is a double-quoted literal, e.g. "hello\n". The literal keeps its
	// quotes and escape sequences exactly as written.
	STRING
	// INT is a decimal integer literal, e.g. 42 or 1_000.
	INT
	// FLOAT is a decimal literal with a fraction or exponent, e.g. 1.5, .5, 2e10.
	FLOAT
	// BINARY, OCTAL and HEX are reserved numeric kinds. The lexer does not
	// produce them yet; the parser accepts them wherever INT is accepted.
	BINARY
	OCTAL
	HEX

	// ── Identifiers and keywords ────────────────────────────────────────────────

	// IDENT is an identifier: [A-Za-z_][A-Za-z0-9_]*
	IDENT
	// BOOLEAN is the `bool` type keyword.
	BOOLEAN
	// TRUE is the boolean literal true.
	TRUE
	// FALSE is the boolean literal false.
	FALSE
	// NULL is the null literal.
	NULL

	// ── Punctuation ─────────────────────────────────────────────────────────────

	COMMA     // ,
	SEMICOLON // ;
	DOT       // .
	COLON     // :
	ELLIPSIS  // ...
	SCOPE     // ::
	ARROW     // ->
	QUESTION  // ?

	// ── Delimiters ──────────────────────────────────────────────────────────────

	LPAREN   // (
	RPAREN   // )
	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]

	// ── Arithmetic operators ────────────────────────────────────────────────────

	PLUS      // +
	MINUS     // -
	ASTERISK  // *
	SLASH     // /
	PERCENT   // %
	FLOORDIV  // %% (floor division; `//` starts a comment)
	POW       // **
	INCREMENT // ++
	DECREMENT // --

	// ── Comparison operators ────────────────────────────────────────────────────

	EQ  // ==
	NEQ // !=
	LT  // <
	GT  // >
	LTE // <=
	GTE // >=

	// ── Logical and bitwise operators ───────────────────────────────────────────

	AND       // &&
	OR        // ||
	NOT       // !
	AMPERSAND // &
	PIPE      // |
	CARET     // ^
	TILDE     // ~
	SHL       // <<
	SHR       // >>

	// ── Assignment operators ────────────────────────────────────────────────────

	ASSIGN          // =
	WALRUS          // :=
	PLUS_ASSIGN     // +=
	MINUS_ASSIGN    // -=
	ASTERISK_ASSIGN // *=
	SLASH_ASSIGN    // /=
	PERCENT_ASSIGN  // %=
	FLOORDIV_ASSIGN // %%=
	POW_ASSIGN      // **=
	AND_ASSIGN      // &=
	OR_ASSIGN       // |=
	XOR_ASSIGN      // ^=
	SHL_ASSIGN      // <<=
	SHR_ASSIGN      // >>=
)

var tokenNames = map[TokenType]string{
	UNKNOWN:         "unknown",
	EOF:             "end of input",
	CHAR:            "char",
	STRING:          "string",
	INT:             "integer",
	FLOAT:           "float",
	BINARY:          "binary",
	OCTAL:           "octal",
	HEX:             "hexadecimal",
	IDENT:           "identifier",
	BOOLEAN:         "boolean",
	TRUE:            "true",
	FALSE:           "false",
	NULL:            "null",
	COMMA:           "comma",
	SEMICOLON:       "semicolon",
	DOT:             "dot",
	COLON:           "colon",
	ELLIPSIS:        "ellipsis",
	SCOPE:           "scope",
	ARROW:           "arrow",
	QUESTION:        "ternary operator",
	LPAREN:          "left parenthesis",
	RPAREN:          "right parenthesis",
	LBRACE:          "left brace",
	RBRACE:          "right brace",
	LBRACKET:        "left bracket",
	RBRACKET:        "right bracket",
	PLUS:            "plus",
	MINUS:           "minus",
	ASTERISK:        "multiply",
	SLASH:           "divide",
	PERCENT:         "percent",
	FLOORDIV:        "floor divide",
	POW:             "power",
	INCREMENT:       "increment",
	DECREMENT:       "decrement",
	EQ:              "equals",
	NEQ:             "not equal",
	LT:              "less than",
	GT:              "greater than",
	LTE:             "less or equal",
	GTE:             "greater or equal",
	AND:             "and",
	OR:              "or",
	NOT:             "not",
	AMPERSAND:       "ampersand",
	PIPE:            "pipe",
	CARET:           "caret",
	TILDE:           "tilde",
	SHL:             "left shift",
	SHR:             "right shift",
	ASSIGN:          "equal",
	WALRUS:          "colon equal",
	PLUS_ASSIGN:     "plus equal",
	MINUS_ASSIGN:    "minus equal",
	ASTERISK_ASSIGN: "multiply equal",
	SLASH_ASSIGN:    "divide equal",
	PERCENT_ASSIGN:  "percent equal",
	FLOORDIV_ASSIGN: "floor divide equal",
	POW_ASSIGN:      "power equal",
	AND_ASSIGN:      "and equal",
	OR_ASSIGN:       "or equal",
	XOR_ASSIGN:      "caret equal",
	SHL_ASSIGN:      "left shift equal",
	SHR_ASSIGN:      "right shift equal",
}

// String returns the human-readable name used in token dumps, e.g. "integer"
// or "left parenthesis".
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return "unknown"
}

// IsNumber reports whether tt is one of the numeric literal kinds.
func (tt TokenType) IsNumber() bool {
	switch tt {
	case INT, FLOAT, BINARY, OCTAL, HEX:
		return true
	}
	return false
}

// IsOperator reports whether tt is an operator token: arithmetic, comparison,
// logical, bitwise, assignment, or one of `->`, `:=`, `?`.
func (tt TokenType) IsOperator() bool {
	switch tt {
	case PLUS, MINUS, ASTERISK, SLASH, PERCENT, FLOORDIV, POW, INCREMENT, DECREMENT,
		EQ, NEQ, LT, GT, LTE, GTE,
		AND, OR, NOT, AMPERSAND, PIPE, CARET, TILDE, SHL, SHR,
		ARROW, QUESTION:
		return true
	}
	return tt.IsAssign()
}

// IsUnary reports whether tt may appear as a prefix operator.
func (tt TokenType) IsUnary() bool {
	switch tt {
	case PLUS, MINUS, NOT, TILDE, INCREMENT, DECREMENT:
		return true
	}
	return false
}

// IsPostfix reports whether tt may follow its operand.
func (tt TokenType) IsPostfix() bool {
	return tt == INCREMENT || tt == DECREMENT
}

// IsAssign reports whether tt is `=`, `:=` or a compound assignment.
func (tt TokenType) IsAssign() bool {
	switch tt {
	case ASSIGN, WALRUS, PLUS_ASSIGN, MINUS_ASSIGN, ASTERISK_ASSIGN, SLASH_ASSIGN,
		PERCENT_ASSIGN, FLOORDIV_ASSIGN, POW_ASSIGN, AND_ASSIGN, OR_ASSIGN,
		XOR_ASSIGN, SHL_ASSIGN, SHR_ASSIGN:
		return true
	}
	return false
}

// IsCloser reports whether tt closes a group: `)`, `}` or `]`.
func (tt TokenType) IsCloser() bool {
	return tt == RPAREN || tt == RBRACE || tt == RBRACKET
}

// keywords maps the literal text of every noon keyword to its TokenType.
// The lexer consults this map when it finishes scanning an identifier.
var keywords = map[string]TokenType{
	"bool":  BOOLEAN,
	"true":  TRUE,
	"false": FALSE,
	"null":  NULL,
}

// LookupIdent checks whether ident is a reserved keyword and returns the
// corresponding TokenType. If ident is not a keyword, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// Token is a single lexical unit produced by the noon lexer.
//
// Fields:
//   - Type    — the category of this token (see TokenType constants)
//   - Literal — the exact source text that was scanned; quoted literals keep
//     their quotes
//   - Line    — 1-based source line number
//   - Col     — 1-based column of the first character of this token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
}

// String returns the literal text of the token.
func (t Token) String() string {
	return t.Literal
}
