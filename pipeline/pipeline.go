// Package pipeline ties the front end together: it owns the source buffer,
// the lexer, the parser, the diagnostics reporter and the tree of the last
// statement, and turns physical lines into parsed statements.
//
// A driver calls Feed once per physical line. While the statement is still
// open (an unclosed quote, comment or bracket) Feed returns a Result with
// Closed == false and the driver should read another line. Once closed, the
// Result carries the statement's tokens and either its tree or the reason it
// was rejected. The tree stays owned by the Pipeline until Release, which
// Feed also calls before starting the next statement.
//
// At end of input the driver calls Finish, which reports whatever is still
// open and flushes deferred diagnostics in source order.
package pipeline

import (
	"errors"
	"io"
	"log/slog"

	"github.com/noon-lang/noon/ast"
	"github.com/noon-lang/noon/diag"
	"github.com/noon-lang/noon/internal/logging"
	"github.com/noon-lang/noon/lexer"
	"github.com/noon-lang/noon/parser"
	"github.com/noon-lang/noon/source"
)

var (
	// ErrAborted marks a statement ended by an unmatched closer or `*/`.
	ErrAborted = errors.New("statement aborted")
	// ErrLiteral marks a statement holding a malformed literal.
	ErrLiteral = errors.New("malformed literal")
)

// Result describes the outcome of feeding one physical line.
type Result struct {
	Line   source.Line
	Closed bool

	// Set only when Closed.
	Tokens []ast.Token
	Root   ast.Node
	Err    error
}

// Pipeline is the per-source front-end context.
type Pipeline struct {
	src source.Buffer
	rep *diag.Reporter
	lex *lexer.Lexer
	par *parser.Parser
	log *slog.Logger

	tokens []ast.Token
	root   ast.Node
	done   bool // a closed statement is waiting for Release
}

type options struct {
	palette diag.Palette
	log     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*options)

// WithPalette sets the diagnostic colors.
func WithPalette(p diag.Palette) Option {
	return func(o *options) { o.palette = p }
}

// WithLogger sets the debug tracer passed down to the lexer and parser.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// New creates a Pipeline for the source called name; diagnostics go to w.
func New(name string, w io.Writer, opts ...Option) *Pipeline {
	o := options{palette: diag.Plain}
	for _, opt := range opts {
		opt(&o)
	}
	log := logging.OrDiscard(o.log)

	p := &Pipeline{log: log}
	p.rep = diag.NewReporter(w, name, &p.src, diag.WithPalette(o.palette))
	p.lex = lexer.New(p.rep, lexer.WithLogger(log))
	p.par = parser.New(p.rep, parser.WithLogger(log))
	return p
}

// Feed processes one physical line.
func (p *Pipeline) Feed(text string) Result {
	if p.done {
		p.Release()
	}

	ln := p.src.Append(text)
	res := Result{Line: ln, Closed: p.lex.Feed(ln.Number, ln.Text)}
	if !res.Closed {
		return res
	}

	p.done = true
	p.tokens = p.lex.Tokens()
	res.Tokens = p.tokens

	switch {
	case p.lex.Aborted():
		res.Err = ErrAborted
	case p.lex.Failed():
		res.Err = ErrLiteral
	case len(p.tokens) == 0:
		// blank or comment-only statement
	default:
		p.root, res.Err = p.par.Parse(p.tokens)
		res.Root = p.root
	}
	p.lex.ResetStatement()

	p.log.Debug("[PIPELINE] statement closed",
		"line", ln.Number,
		"tokens", len(res.Tokens),
		"ok", res.Err == nil)
	return res
}

// Release drops the tree and tokens of the last closed statement. Nodes of a
// released tree must not be used afterwards.
func (p *Pipeline) Release() {
	ast.Release(p.root)
	p.root = nil
	p.tokens = nil
	p.done = false
}

// Pending reports whether a statement has been started but not closed.
func (p *Pipeline) Pending() bool {
	return !p.lex.Closed()
}

// ResetStatement abandons the statement in progress: tokens, mode, bracket
// stack and tree are dropped. Diagnostics and the line archive are kept.
func (p *Pipeline) ResetStatement() {
	p.Release()
	p.lex.Reset()
}

// Finish reports every quote, comment and bracket still open and flushes all
// deferred diagnostics sorted by position.
func (p *Pipeline) Finish() {
	p.Release()
	p.lex.Finish()
	p.rep.Flush()
}

// Reporter returns the diagnostics reporter.
func (p *Pipeline) Reporter() *diag.Reporter { return p.rep }

// Source returns the line archive.
func (p *Pipeline) Source() *source.Buffer { return &p.src }

// Diagnostics returns every diagnostic written so far.
func (p *Pipeline) Diagnostics() []diag.Diagnostic { return p.rep.Diagnostics() }

// Summary returns the run summary line, or "" when nothing was reported.
func (p *Pipeline) Summary() string { return p.rep.Summary() }
