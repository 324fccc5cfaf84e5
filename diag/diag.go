// Package diag formats and collects position-anchored diagnostics.
//
// A diagnostic is emitted in one of two ways:
//
//   - immediately, with [Reporter.Report]: it is formatted and written at
//     once and the severity counter is incremented;
//   - deferred, with [Reporter.Defer]: it is stored and written later by
//     [Reporter.Flush], which first sorts every stored diagnostic by
//     (line, column) so they appear in source order.
//
// Each diagnostic renders as three lines:
//
//	<file>:<line>:<col>: <severity>: <message>
//	<line> | <source text>
//	       | ^~~~
package diag

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Severity is the level of a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Position is a 1-based line and column.
type Position struct {
	Line int
	Col  int
}

// Less orders positions by line, then column.
func (p Position) Less(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// Diagnostic is a single message tied to a source position. Symbol is the
// offending text; its length sets the width of the caret underline.
type Diagnostic struct {
	Severity Severity
	Message  string
	Symbol   string
	Pos      Position
}

// LineSource gives the formatter access to the text of earlier lines.
type LineSource interface {
	Line(n int) (string, bool)
}

// Reporter writes diagnostics for one input source and keeps the running
// counts per severity.
type Reporter struct {
	w       io.Writer
	name    string
	lines   LineSource
	palette Palette

	deferred []Diagnostic
	emitted  []Diagnostic

	errors   int
	warnings int
	infos    int
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithPalette sets the colors used when formatting. The default is Plain.
func WithPalette(p Palette) Option {
	return func(r *Reporter) { r.palette = p }
}

// NewReporter creates a Reporter that writes to w. name is the source name
// printed in every header, lines supplies the quoted source text and may be nil.
func NewReporter(w io.Writer, name string, lines LineSource, opts ...Option) *Reporter {
	r := &Reporter{w: w, name: name, lines: lines, palette: Plain}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the source name shown in headers.
func (r *Reporter) Name() string { return r.name }

// Report formats a diagnostic and writes it immediately.
func (r *Reporter) Report(sev Severity, pos Position, symbol, format string, args ...any) {
	r.emit(Diagnostic{Severity: sev, Pos: pos, Symbol: symbol, Message: fmt.Sprintf(format, args...)})
}

// Defer stores a diagnostic for the next Flush.
func (r *Reporter) Defer(sev Severity, pos Position, symbol, format string, args ...any) {
	r.deferred = append(r.deferred, Diagnostic{Severity: sev, Pos: pos, Symbol: symbol, Message: fmt.Sprintf(format, args...)})
}

// Pending returns the number of deferred diagnostics not yet flushed.
func (r *Reporter) Pending() int { return len(r.deferred) }

// Flush sorts the deferred diagnostics by position, keeping discovery order
// for equal positions, writes them and clears the list.
func (r *Reporter) Flush() {
	sort.SliceStable(r.deferred, func(i, j int) bool {
		return r.deferred[i].Pos.Less(r.deferred[j].Pos)
	})
	for _, d := range r.deferred {
		r.emit(d)
	}
	r.deferred = r.deferred[:0]
}

func (r *Reporter) emit(d Diagnostic) {
	switch d.Severity {
	case Error:
		r.errors++
	case Warning:
		r.warnings++
	case Info:
		r.infos++
	}
	r.emitted = append(r.emitted, d)

	text, ok := "", false
	if r.lines != nil {
		text, ok = r.lines.Line(d.Pos.Line)
	}
	if !ok {
		d.Pos.Col = 0
	}
	io.WriteString(r.w, Format(d, r.name, text, r.palette))
}

// Diagnostics returns every diagnostic written since the last Reset, in the
// order written.
func (r *Reporter) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(r.emitted))
	copy(out, r.emitted)
	return out
}

// Errors returns the number of error diagnostics written.
func (r *Reporter) Errors() int { return r.errors }

// Warnings returns the number of warning diagnostics written.
func (r *Reporter) Warnings() int { return r.warnings }

// Infos returns the number of info diagnostics written.
func (r *Reporter) Infos() int { return r.infos }

// Reset drops deferred diagnostics and zeroes every counter.
func (r *Reporter) Reset() {
	r.deferred = nil
	r.emitted = nil
	r.errors, r.warnings, r.infos = 0, 0, 0
}

// Summary returns the run summary, e.g. "1 warning and 2 errors generated.",
// or "" when nothing was reported.
func (r *Reporter) Summary() string {
	return Summary(r.warnings, r.errors, r.infos)
}

// Summary renders the counts in the order warnings, errors, infos, omitting
// zero counts.
func Summary(warnings, errors, infos int) string {
	var parts []string
	for _, c := range []struct {
		n    int
		noun string
	}{{warnings, "warning"}, {errors, "error"}, {infos, "info"}} {
		if c.n == 0 {
			continue
		}
		s := strconv.Itoa(c.n) + " " + c.noun
		if c.n > 1 {
			s += "s"
		}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " and ") + " generated."
}
