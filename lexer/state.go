package lexer

import "github.com/noon-lang/noon/diag"

// Mode is the lexical state carried from one physical line to the next.
type Mode int

const (
	// Normal scans tokens.
	Normal Mode = iota
	// InQuote accumulates the text of a string or char literal.
	InQuote
	// InBlockComment discards everything up to the closing `*/`.
	InBlockComment
)

func (m Mode) String() string {
	switch m {
	case InQuote:
		return "in-quote"
	case InBlockComment:
		return "in-block-comment"
	default:
		return "normal"
	}
}

// State describes the active mode. Quote and Start are only meaningful
// outside Normal: Quote is the opening quote character and Start the
// position of the quote or of the `/*`.
type State struct {
	Mode  Mode
	Quote byte
	Start diag.Position
}

// Bracket is an entry of the bracket stack.
type Bracket struct {
	Open  byte
	Close byte
	Pos   diag.Position
}

// closers maps each opening bracket to its closing partner.
var closers = map[byte]byte{
	'(': ')',
	'{': '}',
	'[': ']',
}

// bracketNames are the words used in bracket diagnostics.
var bracketNames = map[byte]string{
	'(': "bracket", ')': "bracket",
	'{': "curly", '}': "curly",
	'[': "square", ']': "square",
}

func quoteName(q byte) string {
	if q == '\'' {
		return "char"
	}
	return "string"
}
