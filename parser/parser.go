// Package parser implements the noon precedence-climbing parser.
//
// The parser consumes the token list of one closed statement and builds an
// expression tree. There is one function per precedence tier, lowest first:
//
//	assignment   = += -= *= /= %= %%= **= &= |= ^= <<= >>= :=   (right-assoc)
//	logical or   ||
//	logical and  &&
//	bitwise or   |
//	xor          ^
//	bitwise and  &
//	equality     == !=
//	relational   < <= > >=
//	shift        << >>
//	additive     + -
//	multiplicative * / %% %
//	power        **                                              (right-assoc)
//	unary        + - ! ~ ++ --
//	postfix      ++ --
//	factor       literals, ( ), { }, [ ]
//
// Usage:
//
//	p := parser.New(reporter)
//	root, err := p.Parse(tokens)
//	if err != nil { ... } // already reported; errors.Is(err, parser.ErrSyntax)
//
// Error handling: only the first syntax or type error of a statement is
// reported. Later failures met while the recursion unwinds are suppressed by
// a latch that Parse clears at the start of every statement.
package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/noon-lang/noon/ast"
	"github.com/noon-lang/noon/diag"
	"github.com/noon-lang/noon/internal/logging"
)

var (
	// ErrSyntax marks a statement rejected for its structure.
	ErrSyntax = errors.New("syntax error")
	// ErrType marks a statement rejected because an operator does not apply
	// to its operand kinds.
	ErrType = errors.New("type error")
)

// ── Operator precedence ───────────────────────────────────────────────────────

// level is one left-associative binary tier.
type level struct {
	name string
	ops  []ast.TokenType
}

// levels lists the binary tiers between assignment and power, lowest first.
var levels = []level{
	{"logical-or", []ast.TokenType{ast.OR}},
	{"logical-and", []ast.TokenType{ast.AND}},
	{"bitwise-or", []ast.TokenType{ast.PIPE}},
	{"xor", []ast.TokenType{ast.CARET}},
	{"bitwise-and", []ast.TokenType{ast.AMPERSAND}},
	{"equality", []ast.TokenType{ast.EQ, ast.NEQ}},
	{"relational", []ast.TokenType{ast.LT, ast.LTE, ast.GT, ast.GTE}},
	{"shift", []ast.TokenType{ast.SHL, ast.SHR}},
	{"additive", []ast.TokenType{ast.PLUS, ast.MINUS}},
	{"multiplicative", []ast.TokenType{ast.ASTERISK, ast.SLASH, ast.FLOORDIV, ast.PERCENT}},
}

func (lv level) has(tt ast.TokenType) bool {
	for _, op := range lv.ops {
		if op == tt {
			return true
		}
	}
	return false
}

// groupClosers maps each opening bracket token to its closing token.
var groupClosers = map[ast.TokenType]ast.Token{
	ast.LPAREN:   {Type: ast.RPAREN, Literal: ")"},
	ast.LBRACE:   {Type: ast.RBRACE, Literal: "}"},
	ast.LBRACKET: {Type: ast.RBRACKET, Literal: "]"},
}

// ── Parser ────────────────────────────────────────────────────────────────────

// Parser turns token lists into expression trees. A Parser may be reused for
// any number of statements but is not safe for concurrent use.
type Parser struct {
	rep *diag.Reporter
	log *slog.Logger

	tokens []ast.Token
	pos    int
	failed bool // first-error latch
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the debug tracer.
func WithLogger(log *slog.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// New creates a Parser that reports to rep.
func New(rep *diag.Reporter, opts ...Option) *Parser {
	p := &Parser{rep: rep}
	for _, opt := range opts {
		opt(p)
	}
	p.log = logging.OrDiscard(p.log)
	return p
}

// Parse builds the tree for one statement. An empty token list yields a nil
// node and no error. On failure the diagnostic has been reported and the
// returned error wraps ErrSyntax or ErrType.
func (p *Parser) Parse(tokens []ast.Token) (ast.Node, error) {
	p.tokens, p.pos, p.failed = tokens, 0, false
	if len(tokens) == 0 {
		return nil, nil
	}

	if err := p.checkStructure(); err != nil {
		return nil, err
	}

	root, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		ast.Release(root)
		tok := p.cur()
		return nil, p.fail(ErrSyntax, tok, tok.Literal, "invalid syntax `%s`", tok.Literal)
	}
	return root, nil
}

// Failed reports whether the last statement was rejected.
func (p *Parser) Failed() bool { return p.failed }

// ── Structural checks ─────────────────────────────────────────────────────────

// checkStructure rejects misplaced operators before any operand is parsed:
//
//	* 2      expected value before operator `*`
//	1 + * 2  unexpected operator `*` after `+`
//	1 +      expected value after operator `+`
//
// An operator is in operand position at the start of the statement, after an
// opening bracket, or after another operator that is not postfix. Only unary
// operators may stand there.
func (p *Parser) checkStructure() error {
	for i, tok := range p.tokens {
		tt := tok.Type
		if !tt.IsOperator() {
			continue
		}
		next := p.at(i + 1)

		if p.operandPosition(i) {
			if !tt.IsUnary() {
				return p.fail(ErrSyntax, tok, tok.Literal, "expected value before operator `%s`", tok.Literal)
			}
			continue
		}
		if !binaryCapable(tt) {
			continue
		}
		switch {
		case next.Type == ast.EOF, next.Type.IsCloser():
			return p.fail(ErrSyntax, tok, tok.Literal, "expected value after operator `%s`", tok.Literal)
		case next.Type.IsOperator() && !next.Type.IsUnary():
			return p.fail(ErrSyntax, next, next.Literal, "unexpected operator `%s` after `%s`", next.Literal, tok.Literal)
		}
	}
	return nil
}

func (p *Parser) operandPosition(i int) bool {
	if i == 0 {
		return true
	}
	prev := p.tokens[i-1].Type
	switch prev {
	case ast.LPAREN, ast.LBRACE, ast.LBRACKET:
		return true
	}
	return prev.IsOperator() && !prev.IsPostfix()
}

// binaryCapable reports whether tt can join two operands.
func binaryCapable(tt ast.TokenType) bool {
	return tt.IsOperator() && !tt.IsPostfix() && tt != ast.NOT && tt != ast.TILDE
}

// ── Precedence tiers ──────────────────────────────────────────────────────────

// parseAssignment parses the lowest tier. Assignment is right-associative:
// a = b = c is a = (b = c).
func (p *Parser) parseAssignment() (ast.Node, error) {
	p.log.Debug("[PARSER] enter", "level", "assignment", "pos", p.pos)
	left, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if !p.cur().Type.IsAssign() {
		return left, nil
	}
	op := p.advance()
	right, err := p.parseAssignment()
	if err != nil {
		ast.Release(left)
		return nil, err
	}
	return p.binary(op, left, right)
}

// parseBinary parses the left-associative tier levels[i], folding
// `a op b op c` into ((a op b) op c).
func (p *Parser) parseBinary(i int) (ast.Node, error) {
	if i == len(levels) {
		return p.parsePower()
	}
	lv := levels[i]
	p.log.Debug("[PARSER] enter", "level", lv.name, "pos", p.pos)

	left, err := p.parseBinary(i + 1)
	if err != nil {
		return nil, err
	}
	for lv.has(p.cur().Type) {
		op := p.advance()
		right, err := p.parseBinary(i + 1)
		if err != nil {
			ast.Release(left)
			return nil, err
		}
		if left, err = p.binary(op, left, right); err != nil {
			return nil, err
		}
	}
	return left, nil
}

// parsePower parses `**`, which binds tighter than the multiplicative tier
// and associates to the right.
func (p *Parser) parsePower() (ast.Node, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != ast.POW {
		return base, nil
	}
	op := p.advance()
	exp, err := p.parsePower()
	if err != nil {
		ast.Release(base)
		return nil, err
	}
	return p.binary(op, base, exp)
}

func (p *Parser) parseUnary() (ast.Node, error) {
	tok := p.cur()
	if !tok.Type.IsUnary() {
		return p.parsePostfix()
	}
	p.advance()
	if next := p.cur().Type; next == ast.EOF || next.IsCloser() {
		return nil, p.fail(ErrSyntax, tok, tok.Literal, "expected expression after unary operator `%s`", tok.Literal)
	}
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return ast.NewUnary(tok, operand), nil
}

func (p *Parser) parsePostfix() (ast.Node, error) {
	n, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.cur().Type.IsPostfix() {
		n = ast.NewPostfix(p.advance(), n)
	}
	return n, nil
}

func (p *Parser) parseFactor() (ast.Node, error) {
	tok := p.cur()
	switch tok.Type {
	case ast.INT, ast.FLOAT, ast.BINARY, ast.OCTAL, ast.HEX:
		p.advance()
		return &ast.NumberLit{Token: tok, Value: numberValue(tok.Literal)}, nil
	case ast.CHAR:
		p.advance()
		return &ast.CharLit{Token: tok, Value: unquote(tok.Literal)}, nil
	case ast.STRING:
		p.advance()
		return &ast.StringLit{Token: tok, Value: unquote(tok.Literal)}, nil
	case ast.TRUE, ast.FALSE:
		p.advance()
		return &ast.BoolLit{Token: tok, Value: tok.Type == ast.TRUE}, nil
	case ast.NULL:
		p.advance()
		return &ast.NullLit{Token: tok}, nil
	case ast.LPAREN, ast.LBRACE, ast.LBRACKET:
		return p.parseGroup()
	case ast.UNKNOWN:
		return nil, p.fail(ErrSyntax, tok, tok.Literal, "invalid character `%s`", tok.Literal)
	default:
		return nil, p.fail(ErrSyntax, tok, tok.Literal, "expected expression")
	}
}

// parseGroup parses `( expr )`, `{ expr }` or `[ expr ]`. An empty group is
// a null value positioned at the opener.
func (p *Parser) parseGroup() (ast.Node, error) {
	open := p.advance()
	want := groupClosers[open.Type]
	if p.cur().Type == want.Type {
		p.advance()
		return &ast.NullLit{Token: open}, nil
	}

	inner, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if tok := p.cur(); tok.Type != want.Type {
		ast.Release(inner)
		return nil, p.fail(ErrSyntax, tok, tok.Literal, "expected `%s` after expression", want.Literal)
	}
	p.advance()
	return inner, nil
}

// binary builds `left op right`. On a kind mismatch both operands are
// released and the type error is reported.
func (p *Parser) binary(op ast.Token, left, right ast.Node) (ast.Node, error) {
	n, err := ast.NewBinary(op, left, right)
	if err != nil {
		ast.Release(left)
		ast.Release(right)
		return nil, p.fail(ErrType, op, op.Literal, "%s", err.Error())
	}
	return n, nil
}

// ── Internal token management ─────────────────────────────────────────────────

// cur returns the token under the cursor, or an EOF token just past the last
// token once the list is exhausted.
func (p *Parser) cur() ast.Token { return p.at(p.pos) }

func (p *Parser) at(i int) ast.Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	if len(p.tokens) == 0 {
		return ast.Token{Type: ast.EOF, Line: 1, Col: 1}
	}
	last := p.tokens[len(p.tokens)-1]
	return ast.Token{Type: ast.EOF, Line: last.Line, Col: last.Col + len(last.Literal)}
}

// advance consumes and returns the current token.
func (p *Parser) advance() ast.Token {
	tok := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// fail reports a diagnostic at tok unless the statement already failed, and
// returns kind wrapped with the message.
func (p *Parser) fail(kind error, tok ast.Token, symbol, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if !p.failed {
		p.failed = true
		p.rep.Report(diag.Error, diag.Position{Line: tok.Line, Col: tok.Col}, symbol, "%s", msg)
		p.log.Debug("[PARSER] error", "kind", kind.Error(), "line", tok.Line, "col", tok.Col)
	}
	return fmt.Errorf("%w: %s", kind, msg)
}

// numberValue converts a decimal literal to its value. Underscores are
// separators only. Out-of-range literals keep the ±Inf or 0 that
// strconv.ParseFloat returns for them.
func numberValue(lit string) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(lit, "_", ""), 64)
	return v
}

// unquote strips the surrounding quotes of a quoted literal; escape
// sequences are kept as written.
func unquote(lit string) string {
	if len(lit) >= 2 {
		return lit[1 : len(lit)-1]
	}
	return ""
}
