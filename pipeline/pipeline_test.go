package pipeline_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noon-lang/noon/ast"
	"github.com/noon-lang/noon/diag"
	"github.com/noon-lang/noon/parser"
	"github.com/noon-lang/noon/pipeline"
)

func newPipeline(name string) (*pipeline.Pipeline, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return pipeline.New(name, out), out
}

func TestPipeline_SingleLine(t *testing.T) {
	p, out := newPipeline("<string>")
	res := p.Feed("1 + 2")
	require.True(t, res.Closed)
	require.NoError(t, res.Err)
	require.NotNil(t, res.Root)
	assert.Equal(t, "(1 + 2)", res.Root.String())
	assert.Len(t, res.Tokens, 3)
	assert.Empty(t, out.String())
	assert.Empty(t, p.Summary())
}

func TestPipeline_ExactRendering(t *testing.T) {
	p, out := newPipeline("<string>")
	res := p.Feed("1 +")
	require.True(t, res.Closed)
	assert.ErrorIs(t, res.Err, parser.ErrSyntax)

	want := "<string>:1:3: error: expected value after operator `+`\n" +
		"1 | 1 +\n" +
		"  |   ^\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, "1 error generated.", p.Summary())
}

func TestPipeline_RenderingWideGutterAndTilde(t *testing.T) {
	p, out := newPipeline("prog.noon")
	for i := 0; i < 9; i++ {
		p.Feed("1")
	}
	p.Feed(`"ab" ** 2`)

	want := "prog.noon:10:6: error: operator `**` not supported between string and number\n" +
		"10 | \"ab\" ** 2\n" +
		"   |      ^~\n"
	assert.Equal(t, want, out.String())
}

func TestPipeline_Colors(t *testing.T) {
	out := &bytes.Buffer{}
	p := pipeline.New("<string>", out, pipeline.WithPalette(diag.ANSI))
	p.Feed("* 1")
	s := out.String()
	assert.True(t, strings.HasPrefix(s, "\033[1m<string>:1:1: \033[31merror:\033[0m\033[1m expected value before operator `*`\033[0m\n"), "got %q", s)
	assert.Contains(t, s, "\033[1m\033[32m^\033[0m")
}

func TestPipeline_MultiLineStatement(t *testing.T) {
	p, _ := newPipeline("<stdin>")
	res := p.Feed("(1 +")
	assert.False(t, res.Closed)
	assert.True(t, p.Pending())
	assert.Nil(t, res.Root)

	res = p.Feed("  2) * 3")
	require.True(t, res.Closed)
	require.NoError(t, res.Err)
	assert.Equal(t, "((1 + 2) * 3)", res.Root.String())
	assert.False(t, p.Pending())
	assert.Equal(t, 2, p.Source().Len())
}

func TestPipeline_BlankAndCommentLines(t *testing.T) {
	p, out := newPipeline("<stdin>")
	for _, line := range []string{"", "   ", "# note", "// note", "/* a */"} {
		res := p.Feed(line)
		assert.True(t, res.Closed, "line %q", line)
		assert.NoError(t, res.Err)
		assert.Nil(t, res.Root)
	}
	assert.Empty(t, out.String())
}

func TestPipeline_UnmatchedCommentAborts(t *testing.T) {
	p, _ := newPipeline("<string>")
	res := p.Feed("1 */ 2")
	require.True(t, res.Closed)
	assert.ErrorIs(t, res.Err, pipeline.ErrAborted)
	assert.Nil(t, res.Root)
	require.Len(t, p.Diagnostics(), 1)
	assert.Equal(t, "unmatched comment `*/`", p.Diagnostics()[0].Message)

	// the next statement starts clean
	res = p.Feed("3")
	require.NoError(t, res.Err)
	assert.Equal(t, "3", res.Root.String())
}

func TestPipeline_MalformedLiteralSkipsParse(t *testing.T) {
	p, _ := newPipeline("<string>")
	res := p.Feed("1__2 + 3_")
	require.True(t, res.Closed)
	assert.ErrorIs(t, res.Err, pipeline.ErrLiteral)
	assert.Nil(t, res.Root)
	assert.Len(t, p.Diagnostics(), 2, "every malformed literal is reported, nothing from the parser")
}

func TestPipeline_UnclosedBracketAtEnd(t *testing.T) {
	p, _ := newPipeline("<string>")
	res := p.Feed("(1 + 2")
	assert.False(t, res.Closed)
	p.Finish()

	ds := p.Diagnostics()
	require.Len(t, ds, 1)
	assert.Equal(t, "unclosed bracket `(`", ds[0].Message)
	assert.Equal(t, diag.Position{Line: 1, Col: 1}, ds[0].Pos)
	assert.False(t, p.Pending())
}

// TestPipeline_DeferredSourceOrder checks that end-of-input problems are
// flushed by position, not in the order the lexer finds them.
func TestPipeline_DeferredSourceOrder(t *testing.T) {
	p, out := newPipeline("<stdin>")
	p.Feed("(1 +")
	p.Feed(`"abc`)
	p.Finish()

	ds := p.Diagnostics()
	require.Len(t, ds, 2)
	assert.Equal(t, diag.Position{Line: 1, Col: 1}, ds[0].Pos)
	assert.Equal(t, diag.Position{Line: 2, Col: 1}, ds[1].Pos)

	s := out.String()
	assert.Less(t, strings.Index(s, "unclosed bracket"), strings.Index(s, "unclosed string"))
	assert.Equal(t, "2 errors generated.", p.Summary())
}

func TestPipeline_Summary(t *testing.T) {
	p, _ := newPipeline("<string>")
	p.Feed("'ab'")
	p.Feed("1 +")
	assert.Equal(t, "1 warning and 1 error generated.", p.Summary())
}

func TestPipeline_ReleaseBeforeNextStatement(t *testing.T) {
	p, _ := newPipeline("<string>")
	res := p.Feed("1 + 2")
	bin, ok := res.Root.(*ast.BinaryExpr)
	require.True(t, ok)
	require.NotNil(t, bin.Left)

	p.Feed("3")
	assert.Nil(t, bin.Left, "previous tree is released")
	assert.Nil(t, bin.Right)
}

func TestPipeline_ResetStatement(t *testing.T) {
	p, _ := newPipeline("<stdin>")
	p.Feed(`("abc`)
	require.True(t, p.Pending())
	p.ResetStatement()
	assert.False(t, p.Pending())

	res := p.Feed("4")
	require.True(t, res.Closed)
	assert.Equal(t, "4", res.Root.String())
	assert.Equal(t, 2, res.Line.Number, "line numbering continues after a reset")
}
