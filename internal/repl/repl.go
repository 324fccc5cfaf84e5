// Package repl runs the interactive noon session.
//
// Each line typed is fed to a pipeline. The primary prompt is shown when a
// new statement starts and the continuation prompt while a quote, comment or
// bracket is still open. A statement that fails is reported and the session
// carries on with a clean statement state. Ctrl-C drops the statement being
// typed; Ctrl-D ends the session, reporting anything left open.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/peterh/liner"

	"github.com/noon-lang/noon/ast"
	"github.com/noon-lang/noon/internal/logging"
	"github.com/noon-lang/noon/pipeline"
)

// LineReader supplies input lines. *liner.State implements it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Options controls prompts and dumps.
type Options struct {
	Prompt             string
	ContinuationPrompt string
	PrintTokens        bool
	PrintAST           bool
	Logger             *slog.Logger
}

// REPL is one interactive session.
type REPL struct {
	in   LineReader
	pl   *pipeline.Pipeline
	out  io.Writer // token and tree dumps
	diag io.Writer // summary line
	opts Options
	log  *slog.Logger
}

// New creates a session reading from in and feeding pl. Dumps go to out, the
// end-of-session summary to diagOut.
func New(in LineReader, pl *pipeline.Pipeline, out, diagOut io.Writer, opts Options) *REPL {
	return &REPL{in: in, pl: pl, out: out, diag: diagOut, opts: opts, log: logging.OrDiscard(opts.Logger)}
}

// Run reads lines until end of input or until ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	var stmt []string
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		prompt := r.opts.Prompt
		if r.pl.Pending() {
			prompt = r.opts.ContinuationPrompt
		}
		line, err := r.in.Prompt(prompt)
		switch {
		case errors.Is(err, io.EOF):
			r.finish()
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			r.log.Debug("[REPL] statement dropped", "lines", len(stmt))
			r.pl.ResetStatement()
			stmt = nil
			continue
		case err != nil:
			return fmt.Errorf("read line: %w", err)
		}

		stmt = append(stmt, line)
		res := r.pl.Feed(line)
		if !res.Closed {
			continue
		}

		if entry := strings.Join(stmt, " "); strings.TrimSpace(entry) != "" {
			r.in.AppendHistory(entry)
		}
		stmt = nil

		if err := r.dump(res); err != nil {
			return err
		}
		if res.Err != nil {
			r.pl.ResetStatement()
		}
	}
}

func (r *REPL) dump(res pipeline.Result) error {
	if r.opts.PrintTokens && len(res.Tokens) > 0 {
		if err := ast.FprintTokens(r.out, res.Tokens); err != nil {
			return fmt.Errorf("print tokens: %w", err)
		}
	}
	if r.opts.PrintAST && res.Root != nil {
		if err := ast.Fprint(r.out, res.Root); err != nil {
			return fmt.Errorf("print ast: %w", err)
		}
	}
	return nil
}

// finish ends the session: counters start over so the summary covers only
// what is still open at end of input.
func (r *REPL) finish() {
	fmt.Fprintln(r.out)
	r.pl.Reporter().Reset()
	r.pl.Finish()
	if s := r.pl.Summary(); s != "" {
		fmt.Fprintln(r.diag, s)
	}
}
