package diag_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noon-lang/noon/diag"
	"github.com/noon-lang/noon/source"
)

func newReporter(lines ...string) (*diag.Reporter, *bytes.Buffer) {
	src := &source.Buffer{}
	for _, l := range lines {
		src.Append(l)
	}
	out := &bytes.Buffer{}
	return diag.NewReporter(out, "test.noon", src), out
}

func TestFormat_Plain(t *testing.T) {
	d := diag.Diagnostic{Severity: diag.Warning, Message: "multi-character character constant", Symbol: "'ab'", Pos: diag.Position{Line: 3, Col: 5}}
	got := diag.Format(d, "f", "x = 'ab'", diag.Plain)
	want := "f:3:5: warning: multi-character character constant\n" +
		"3 | x = 'ab'\n" +
		"  |     ^~~~\n"
	assert.Equal(t, want, got)
}

func TestFormat_EmptySymbolHasSingleCaret(t *testing.T) {
	d := diag.Diagnostic{Severity: diag.Info, Message: "note", Pos: diag.Position{Line: 1, Col: 1}}
	got := diag.Format(d, "f", "abc", diag.Plain)
	assert.Equal(t, "f:1:1: info: note\n1 | abc\n  | ^\n", got)
}

func TestFormat_UnknownColumn(t *testing.T) {
	d := diag.Diagnostic{Severity: diag.Error, Message: "m", Symbol: "x", Pos: diag.Position{Line: 7}}
	got := diag.Format(d, "f", "", diag.Plain)
	assert.Equal(t, "f:7:1: error: m\n7 | \n  | ^\n", got)
}

func TestFormat_SeverityColors(t *testing.T) {
	tests := []struct {
		sev   diag.Severity
		color string
	}{
		{diag.Error, "\033[31m"},
		{diag.Warning, "\033[35m"},
		{diag.Info, "\033[36m"},
	}
	for _, tt := range tests {
		t.Run(tt.sev.String(), func(t *testing.T) {
			d := diag.Diagnostic{Severity: tt.sev, Message: "m", Pos: diag.Position{Line: 1, Col: 1}}
			got := diag.Format(d, "f", "x", diag.ANSI)
			assert.Contains(t, got, tt.color+tt.sev.String()+":\033[0m")
		})
	}
}

func TestReporter_ImmediateCounts(t *testing.T) {
	r, out := newReporter("1 + 2")
	r.Report(diag.Error, diag.Position{Line: 1, Col: 3}, "+", "bad `%s`", "+")
	r.Report(diag.Warning, diag.Position{Line: 1, Col: 1}, "1", "odd")
	r.Report(diag.Warning, diag.Position{Line: 1, Col: 5}, "2", "odd")

	assert.Equal(t, 1, r.Errors())
	assert.Equal(t, 2, r.Warnings())
	assert.Equal(t, 0, r.Infos())
	assert.Contains(t, out.String(), "test.noon:1:3: error: bad `+`\n1 | 1 + 2\n  |   ^\n")
	assert.Equal(t, "2 warnings and 1 error generated.", r.Summary())
}

func TestReporter_MissingLine(t *testing.T) {
	r, out := newReporter()
	r.Report(diag.Error, diag.Position{Line: 4, Col: 9}, "x", "gone")
	assert.Equal(t, "test.noon:4:1: error: gone\n4 | \n  | ^\n", out.String())
}

func TestReporter_DeferredStableSort(t *testing.T) {
	r, out := newReporter("a", "b", "c")
	r.Defer(diag.Error, diag.Position{Line: 3, Col: 1}, "c", "third")
	r.Defer(diag.Error, diag.Position{Line: 1, Col: 1}, "a", "first")
	r.Defer(diag.Error, diag.Position{Line: 2, Col: 1}, "b", "second-a")
	r.Defer(diag.Error, diag.Position{Line: 2, Col: 1}, "b", "second-b")

	assert.Empty(t, out.String(), "nothing is written before Flush")
	assert.Equal(t, 0, r.Errors())
	assert.Equal(t, 4, r.Pending())

	r.Flush()
	var msgs []string
	for _, d := range r.Diagnostics() {
		msgs = append(msgs, d.Message)
	}
	assert.Equal(t, []string{"first", "second-a", "second-b", "third"}, msgs)
	assert.Equal(t, 4, r.Errors())
	assert.Equal(t, 0, r.Pending())
}

func TestReporter_Reset(t *testing.T) {
	r, _ := newReporter("x")
	r.Report(diag.Error, diag.Position{Line: 1, Col: 1}, "x", "e")
	r.Defer(diag.Error, diag.Position{Line: 1, Col: 1}, "x", "d")
	r.Reset()
	assert.Equal(t, 0, r.Errors())
	assert.Equal(t, 0, r.Pending())
	assert.Empty(t, r.Diagnostics())
	assert.Empty(t, r.Summary())
}

func TestSummary(t *testing.T) {
	tests := []struct {
		warnings, errors, infos int
		want                    string
	}{
		{0, 0, 0, ""},
		{0, 1, 0, "1 error generated."},
		{2, 1, 0, "2 warnings and 1 error generated."},
		{1, 0, 0, "1 warning generated."},
		{0, 3, 2, "3 errors and 2 infos generated."},
		{1, 1, 1, "1 warning and 1 error and 1 info generated."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, diag.Summary(tt.warnings, tt.errors, tt.infos))
	}
}

func TestParseColorMode(t *testing.T) {
	for _, s := range []string{"auto", "always", "never", "NEVER"} {
		_, err := diag.ParseColorMode(s)
		require.NoError(t, err, s)
	}
	_, err := diag.ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestPaletteFor(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, diag.Plain, diag.PaletteFor(&buf, diag.ColorAuto), "a buffer is not a terminal")
	assert.Equal(t, diag.ANSI, diag.PaletteFor(&buf, diag.ColorAlways))
	assert.Equal(t, diag.Plain, diag.PaletteFor(&buf, diag.ColorNever))
}
