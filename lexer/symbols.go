package lexer

import (
	"unicode/utf8"

	"github.com/noon-lang/noon/ast"
)

// symbols is the operator and punctuation table. readSymbol tries the
// longest candidate first, so `**=` wins over `**`, which wins over `*`.
var symbols = map[string]ast.TokenType{
	"...": ast.ELLIPSIS,
	"**=": ast.POW_ASSIGN,
	"%%=": ast.FLOORDIV_ASSIGN,
	"<<=": ast.SHL_ASSIGN,
	">>=": ast.SHR_ASSIGN,

	"::": ast.SCOPE,
	":=": ast.WALRUS,
	"->": ast.ARROW,
	"**": ast.POW,
	"%%": ast.FLOORDIV,
	"++": ast.INCREMENT,
	"--": ast.DECREMENT,
	"==": ast.EQ,
	"!=": ast.NEQ,
	"<=": ast.LTE,
	">=": ast.GTE,
	"&&": ast.AND,
	"||": ast.OR,
	"<<": ast.SHL,
	">>": ast.SHR,
	"+=": ast.PLUS_ASSIGN,
	"-=": ast.MINUS_ASSIGN,
	"*=": ast.ASTERISK_ASSIGN,
	"/=": ast.SLASH_ASSIGN,
	"%=": ast.PERCENT_ASSIGN,
	"&=": ast.AND_ASSIGN,
	"|=": ast.OR_ASSIGN,
	"^=": ast.XOR_ASSIGN,

	",": ast.COMMA,
	";": ast.SEMICOLON,
	".": ast.DOT,
	":": ast.COLON,
	"?": ast.QUESTION,
	"+": ast.PLUS,
	"-": ast.MINUS,
	"*": ast.ASTERISK,
	"/": ast.SLASH,
	"%": ast.PERCENT,
	"<": ast.LT,
	">": ast.GT,
	"!": ast.NOT,
	"&": ast.AMPERSAND,
	"|": ast.PIPE,
	"^": ast.CARET,
	"~": ast.TILDE,
	"=": ast.ASSIGN,
}

const maxSymbolLen = 3

// bracketTokens gives the token type of each bracket character.
var bracketTokens = map[byte]ast.TokenType{
	'(': ast.LPAREN,
	')': ast.RPAREN,
	'{': ast.LBRACE,
	'}': ast.RBRACE,
	'[': ast.LBRACKET,
	']': ast.RBRACKET,
}

// readSymbol emits the longest operator or punctuation symbol at the cursor.
// A character that starts no symbol becomes a single UNKNOWN token.
func (l *Lexer) readSymbol() {
	for n := maxSymbolLen; n > 0; n-- {
		if l.pos+n > len(l.text) {
			continue
		}
		lit := l.text[l.pos : l.pos+n]
		if tt, ok := symbols[lit]; ok {
			l.emit(tt, lit, l.pos)
			l.pos += n
			return
		}
	}
	n := runeLen(l.text[l.pos:])
	l.emit(ast.UNKNOWN, l.text[l.pos:l.pos+n], l.pos)
	l.pos += n
}

// readIdentifier scans [A-Za-z_][A-Za-z0-9_]* and classifies it with
// ast.LookupIdent.
func (l *Lexer) readIdentifier() {
	start := l.pos
	for l.pos < len(l.text) && (isLetter(l.text[l.pos]) || isDigit(l.text[l.pos])) {
		l.pos++
	}
	lit := l.text[start:l.pos]
	l.emit(ast.LookupIdent(lit), lit, start)
}

// runeLen returns the byte length of the first rune of s, at least 1.
func runeLen(s string) int {
	_, n := utf8.DecodeRuneInString(s)
	if n < 1 {
		return 1
	}
	return n
}
