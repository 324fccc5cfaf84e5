package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noon-lang/noon/ast"
	"github.com/noon-lang/noon/diag"
	"github.com/noon-lang/noon/internal/config"
	"github.com/noon-lang/noon/internal/logging"
	"github.com/noon-lang/noon/internal/repl"
	"github.com/noon-lang/noon/pipeline"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1 // diagnostics with errors, usage or configuration problems
	exitIO    = 2
)

// exitCodeError carries a process exit status out of RunE.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitCodeError) Unwrap() error { return e.err }

type flags struct {
	command     string
	repl        bool
	printTokens bool
	printAST    bool
	checkSyntax bool
	debug       bool
	config      string
	color       string
}

// runner holds everything a run needs once flags and config are merged.
type runner struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	cfg         config.Config
	palette     diag.Palette
	log         *slog.Logger
	checkSyntax bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "noon [flags] [file]",
		Short: "noon language front end",
		Long: `noon reads source text one statement at a time, builds an expression
tree for each statement and reports position-anchored diagnostics.

With a file argument the file is checked; with --command the given string
is; otherwise an interactive session starts.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(cmd, f, stdin, stdout, stderr)
			if err != nil {
				return &exitCodeError{code: exitError, err: err}
			}

			switch {
			case f.repl && (f.command != "" || len(args) > 0):
				return &exitCodeError{code: exitError, err: errors.New("--repl cannot be combined with a file or --command")}
			case f.command != "":
				return r.stream(cmd.Context(), "<string>", strings.NewReader(f.command))
			case len(args) == 1:
				return r.file(cmd.Context(), args[0])
			default:
				return r.interactive(cmd.Context())
			}
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fl := cmd.Flags()
	fl.StringVarP(&f.command, "command", "c", "", "parse `STRING` as the program")
	fl.BoolVarP(&f.repl, "repl", "r", false, "start an interactive session")
	fl.BoolVarP(&f.printTokens, "print-tokens", "t", false, "print the tokens of every statement")
	fl.BoolVarP(&f.printAST, "print-ast", "a", false, "print the tree of every statement")
	fl.BoolVarP(&f.checkSyntax, "check-syntax", "s", false, "check every statement instead of stopping at the first error")
	fl.BoolVarP(&f.debug, "debug", "d", false, "trace the lexer and parser on stderr")
	fl.StringVar(&f.config, "config", "", "settings `FILE` (toml or yaml)")
	fl.StringVar(&f.color, "color", "", "color diagnostics: auto, always or never")
	return cmd
}

// newRunner merges the settings file with the command-line flags.
func newRunner(cmd *cobra.Command, f flags, stdin io.Reader, stdout, stderr io.Writer) (*runner, error) {
	cfg, err := config.Discover(f.config)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = f.color
	}
	cfg.PrintTokens = cfg.PrintTokens || f.printTokens
	cfg.PrintAST = cfg.PrintAST || f.printAST
	cfg.Debug = cfg.Debug || f.debug

	mode, err := cfg.ColorMode()
	if err != nil {
		return nil, err
	}
	return &runner{
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		cfg:         cfg,
		palette:     diag.PaletteFor(stderr, mode),
		log:         logging.New(stderr, cfg.Debug),
		checkSyntax: f.checkSyntax,
	}, nil
}

func (r *runner) pipeline(name string) *pipeline.Pipeline {
	return pipeline.New(name, r.stderr, pipeline.WithPalette(r.palette), pipeline.WithLogger(r.log))
}

func (r *runner) file(ctx context.Context, path string) error {
	fh, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(r.stderr, "no such file or directory: '%s'\n", path)
		return &exitCodeError{code: exitError}
	}
	if err != nil {
		return &exitCodeError{code: exitIO, err: err}
	}
	defer fh.Close()
	return r.stream(ctx, path, fh)
}

// stream checks src statement by statement. Without --check-syntax it stops
// at the first rejected statement. Deferred diagnostics and the summary are
// printed either way.
func (r *runner) stream(ctx context.Context, name string, src io.Reader) error {
	pl := r.pipeline(name)
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return &exitCodeError{code: exitError, err: err}
		}
		res := pl.Feed(sc.Text())
		if !res.Closed {
			continue
		}
		if err := r.dump(res); err != nil {
			return &exitCodeError{code: exitIO, err: err}
		}
		if res.Err != nil && !r.checkSyntax {
			r.log.Debug("[NOON] stopping at first error", "line", res.Line.Number)
			break
		}
	}
	if err := sc.Err(); err != nil {
		return &exitCodeError{code: exitIO, err: fmt.Errorf("read %s: %w", name, err)}
	}

	pl.Finish()
	if s := pl.Summary(); s != "" {
		fmt.Fprintln(r.stderr, s)
	}
	if pl.Reporter().Errors() > 0 {
		return &exitCodeError{code: exitError}
	}
	return nil
}

func (r *runner) dump(res pipeline.Result) error {
	if r.cfg.PrintTokens && len(res.Tokens) > 0 {
		if err := ast.FprintTokens(r.stdout, res.Tokens); err != nil {
			return err
		}
	}
	if r.cfg.PrintAST && res.Root != nil {
		return ast.Fprint(r.stdout, res.Root)
	}
	return nil
}

func (r *runner) interactive(ctx context.Context) error {
	term := repl.OpenTerminal(r.cfg.HistoryFile, r.cfg.HistorySize)
	session := repl.New(term, r.pipeline("<stdin>"), r.stdout, r.stderr, repl.Options{
		Prompt:             r.cfg.Prompt,
		ContinuationPrompt: r.cfg.ContinuationPrompt,
		PrintTokens:        r.cfg.PrintTokens,
		PrintAST:           r.cfg.PrintAST,
		Logger:             r.log,
	})
	runErr := session.Run(ctx)
	closeErr := term.Close()
	if runErr != nil {
		return &exitCodeError{code: exitIO, err: runErr}
	}
	if closeErr != nil {
		fmt.Fprintf(r.stderr, "noon: %v\n", closeErr)
	}
	return nil
}

// execute runs the command line and returns the process exit status.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdin, stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	var ec *exitCodeError
	if errors.As(err, &ec) {
		if ec.err != nil {
			fmt.Fprintf(stderr, "noon: %v\n", ec.err)
		}
		return ec.code
	}
	fmt.Fprintf(stderr, "noon: %v\n", err)
	return exitError
}
