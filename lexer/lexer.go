// Package lexer implements the noon lexical state machine and tokenizer.
//
// Input arrives one physical line at a time through [Lexer.Feed]. The lexer
// keeps its mode (normal, inside a quote, inside a block comment) and its
// bracket stack between calls, so a statement may span any number of lines.
// Feed reports whether the accumulated statement is closed: the mode is
// Normal and no bracket is open. The caller then takes the tokens with
// [Lexer.Tokens] and calls [Lexer.ResetStatement] before the next statement.
//
// Design notes:
//   - One cursor per physical line; no token other than a quoted literal ever
//     spans two lines.
//   - Quoted literals keep their quotes and escape sequences verbatim.
//   - Structural problems found mid-statement (an unmatched closer or `*/`)
//     are reported at once and abort the statement. Problems that can only be
//     known at end of input (unclosed quote, comment or bracket) are deferred
//     by [Lexer.Finish].
//   - Malformed numbers are reported at once; the lexer skips the rest of
//     the literal and carries on, but the statement is marked Failed.
package lexer

import (
	"log/slog"
	"strings"

	"github.com/noon-lang/noon/ast"
	"github.com/noon-lang/noon/diag"
	"github.com/noon-lang/noon/internal/logging"
)

// Lexer holds the state of one input source. Create one with [New]; never
// copy a Lexer after first use.
type Lexer struct {
	rep *diag.Reporter
	log *slog.Logger

	state State
	stack []Bracket

	tokens []ast.Token

	// quoted literal being accumulated
	quote   strings.Builder
	runes   int
	escaped bool

	line int    // number of the line being scanned
	text string // text of the line being scanned
	pos  int    // byte index into text

	aborted bool
	failed  bool
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithLogger sets the debug tracer.
func WithLogger(log *slog.Logger) Option {
	return func(l *Lexer) { l.log = log }
}

// New creates a Lexer that reports to rep.
func New(rep *diag.Reporter, opts ...Option) *Lexer {
	l := &Lexer{rep: rep}
	for _, opt := range opts {
		opt(l)
	}
	l.log = logging.OrDiscard(l.log)
	return l
}

// Feed scans one physical line numbered lineNo and reports whether the
// statement is closed. An aborted statement counts as closed.
func (l *Lexer) Feed(lineNo int, text string) bool {
	l.line, l.text, l.pos = lineNo, text, 0

	for l.pos < len(l.text) && !l.aborted {
		switch l.state.Mode {
		case InQuote:
			l.scanQuote()
		case InBlockComment:
			l.scanComment()
		default:
			l.scanNormal()
		}
	}

	if l.state.Mode == InQuote {
		// the literal continues on the next line
		l.quote.WriteByte('\n')
		l.runes++
		l.escaped = false
	}

	closed := l.Closed()
	l.log.Debug("[LEXER] line done",
		"line", lineNo,
		"mode", l.state.Mode.String(),
		"brackets", len(l.stack),
		"tokens", len(l.tokens),
		"closed", closed)
	return closed
}

// Closed reports whether the statement fed so far is complete.
func (l *Lexer) Closed() bool {
	return l.aborted || (l.state.Mode == Normal && len(l.stack) == 0)
}

// Aborted reports whether an unmatched closer or `*/` ended the statement.
// Its tokens must not be parsed.
func (l *Lexer) Aborted() bool { return l.aborted }

// Failed reports whether a malformed literal was found in the statement.
func (l *Lexer) Failed() bool { return l.failed }

// Tokens returns the tokens of the current statement in source order.
func (l *Lexer) Tokens() []ast.Token { return l.tokens }

// State returns the current mode.
func (l *Lexer) State() State { return l.state }

// Brackets returns a copy of the bracket stack, oldest first.
func (l *Lexer) Brackets() []Bracket {
	out := make([]Bracket, len(l.stack))
	copy(out, l.stack)
	return out
}

// ResetStatement drops the tokens and flags of the finished statement.
// Mode and bracket stack are kept: a closed statement has neither.
func (l *Lexer) ResetStatement() {
	l.tokens = nil
	l.aborted = false
	l.failed = false
}

// Reset returns the lexer to its initial state.
func (l *Lexer) Reset() {
	l.ResetStatement()
	l.state = State{}
	l.stack = nil
	l.quote.Reset()
	l.runes = 0
	l.escaped = false
}

// Finish defers one diagnostic per construct still open at end of input:
// the open quote or block comment, then every open bracket oldest first.
// The lexer is reset afterwards.
func (l *Lexer) Finish() {
	switch l.state.Mode {
	case InQuote:
		q := string(l.state.Quote)
		l.rep.Defer(diag.Error, l.state.Start, q, "unclosed %s `%s`", quoteName(l.state.Quote), q)
	case InBlockComment:
		l.rep.Defer(diag.Error, l.state.Start, "/*", "unclosed comment `/*`")
	}
	for _, b := range l.stack {
		l.rep.Defer(diag.Error, b.Pos, string(b.Open), "unclosed %s `%c`", bracketNames[b.Open], b.Open)
	}
	l.Reset()
}

// ── Normal mode ───────────────────────────────────────────────────────────────

// scanNormal consumes whitespace or exactly one token-sized unit.
func (l *Lexer) scanNormal() {
	ch := l.text[l.pos]
	next := l.peek(1)

	switch {
	case isSpace(ch):
		l.pos++

	case ch == '\\':
		// an escaped character loses any special meaning
		n := 1
		if l.pos+1 < len(l.text) {
			n = 1 + runeLen(l.text[l.pos+1:])
		}
		l.emit(ast.UNKNOWN, l.text[l.pos:l.pos+n], l.pos)
		l.pos += n

	case ch == '"' || ch == '\'':
		l.openQuote(ch)

	case ch == '#', ch == '/' && next == '/':
		l.pos = len(l.text)

	case ch == '/' && next == '*':
		l.setState(State{Mode: InBlockComment, Start: l.position(l.pos)})
		l.pos += 2

	case ch == '*' && next == '/':
		l.abort(l.position(l.pos), "*/", "unmatched comment `*/`")

	case closers[ch] != 0:
		l.push(ch)

	case ch == ')' || ch == '}' || ch == ']':
		l.pop(ch)

	case isDigit(ch), ch == '.' && isDigit(next):
		l.readNumber()

	case isLetter(ch):
		l.readIdentifier()

	default:
		l.readSymbol()
	}
}

// push records an opening bracket and emits its token.
func (l *Lexer) push(open byte) {
	b := Bracket{Open: open, Close: closers[open], Pos: l.position(l.pos)}
	l.stack = append(l.stack, b)
	l.log.Debug("[LEXER] push bracket", "open", string(open), "line", b.Pos.Line, "col", b.Pos.Col, "depth", len(l.stack))
	l.emit(bracketTokens[open], string(open), l.pos)
	l.pos++
}

// pop matches a closing bracket against the top of the stack. A closer with
// no opener, or one of a different kind, aborts the statement.
func (l *Lexer) pop(c byte) {
	n := len(l.stack)
	if n == 0 || l.stack[n-1].Close != c {
		l.abort(l.position(l.pos), string(c), "unmatched %s `%c`", bracketNames[c], c)
		return
	}
	l.stack = l.stack[:n-1]
	l.log.Debug("[LEXER] pop bracket", "close", string(c), "depth", len(l.stack))
	l.emit(bracketTokens[c], string(c), l.pos)
	l.pos++
}

// abort reports a statement-fatal error immediately and abandons the
// statement: the rest of the line is skipped, the mode returns to Normal and
// the bracket stack is cleared.
func (l *Lexer) abort(pos diag.Position, symbol, format string, args ...any) {
	l.rep.Report(diag.Error, pos, symbol, format, args...)
	l.aborted = true
	l.pos = len(l.text)
	l.stack = nil
	l.setState(State{})
}

// ── Quotes and comments ───────────────────────────────────────────────────────

func (l *Lexer) openQuote(q byte) {
	l.setState(State{Mode: InQuote, Quote: q, Start: l.position(l.pos)})
	l.quote.Reset()
	l.quote.WriteByte(q)
	l.runes = 0
	l.escaped = false
	l.pos++
}

// scanQuote consumes literal text up to and including the matching quote,
// or to the end of the line.
func (l *Lexer) scanQuote() {
	for l.pos < len(l.text) {
		ch := l.text[l.pos]
		l.quote.WriteByte(ch)
		l.pos++

		switch {
		case l.escaped:
			l.escaped = false
		case ch == '\\':
			l.escaped = true
			l.runes++
		case ch == l.state.Quote:
			l.closeQuote()
			return
		case ch&0xC0 != 0x80:
			// count runes, not UTF-8 continuation bytes
			l.runes++
		}
	}
}

func (l *Lexer) closeQuote() {
	start := l.state.Start
	literal := l.quote.String()
	tt := ast.STRING
	if l.state.Quote == '\'' {
		tt = ast.CHAR
		if l.runes > 1 {
			l.rep.Report(diag.Warning, start, literal, "multi-character character constant")
		}
	}
	l.tokens = append(l.tokens, ast.Token{Type: tt, Literal: literal, Line: start.Line, Col: start.Col})
	l.quote.Reset()
	l.setState(State{})
}

// scanComment discards text up to and including the next `*/`.
func (l *Lexer) scanComment() {
	i := strings.Index(l.text[l.pos:], "*/")
	if i < 0 {
		l.pos = len(l.text)
		return
	}
	l.pos += i + 2
	l.setState(State{})
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (l *Lexer) setState(s State) {
	if s.Mode != l.state.Mode {
		l.log.Debug("[LEXER] mode change", "from", l.state.Mode.String(), "to", s.Mode.String(), "line", l.line)
	}
	l.state = s
}

// peek returns the byte n positions past the cursor, or 0 past the line end.
func (l *Lexer) peek(n int) byte {
	if l.pos+n >= len(l.text) {
		return 0
	}
	return l.text[l.pos+n]
}

// position converts a byte index on the current line to a 1-based position.
func (l *Lexer) position(i int) diag.Position {
	return diag.Position{Line: l.line, Col: i + 1}
}

// emit appends a token starting at byte index start of the current line.
func (l *Lexer) emit(tt ast.TokenType, literal string, start int) {
	l.tokens = append(l.tokens, ast.Token{Type: tt, Literal: literal, Line: l.line, Col: start + 1})
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\v' || b == '\f'
}

// isLetter reports whether b may start an identifier: [A-Za-z_].
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		b == '_'
}

// isDigit reports whether b is an ASCII decimal digit (0–9).
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
