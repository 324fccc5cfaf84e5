package diag

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// Palette holds the SGR sequences used by Format. Plain has every field empty.
type Palette struct {
	Bold   string
	Red    string
	Purple string
	Cyan   string
	Green  string
	Reset  string
}

var (
	// ANSI is the palette used on terminals.
	ANSI = Palette{
		Bold:   "\033[1m",
		Red:    "\033[31m",
		Purple: "\033[35m",
		Cyan:   "\033[36m",
		Green:  "\033[32m",
		Reset:  "\033[0m",
	}
	// Plain disables coloring.
	Plain = Palette{}
)

func (p Palette) severity(s Severity) string {
	switch s {
	case Error:
		return p.Red
	case Warning:
		return p.Purple
	default:
		return p.Cyan
	}
}

// ColorMode selects when diagnostics are colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates s as a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// PaletteFor picks the palette for w. In auto mode colors are used only when
// w is a terminal.
func PaletteFor(w io.Writer, mode ColorMode) Palette {
	switch mode {
	case ColorAlways:
		return ANSI
	case ColorNever:
		return Plain
	}
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			return ANSI
		}
	}
	return Plain
}

// Format renders d for source name with lineText as the quoted source line.
// A column of 0 means the position is unknown: the header shows column 1 and
// the caret sits under the first character.
func Format(d Diagnostic, name, lineText string, p Palette) string {
	caret := "^"
	if n := len(d.Symbol); n > 1 {
		caret += strings.Repeat("~", n-1)
	}
	caretIndex := 0
	col := d.Pos.Col
	if col > 0 {
		caretIndex = col - 1
	} else {
		col = 1
	}
	width := len(strconv.Itoa(d.Pos.Line))

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s:%d:%d: %s%s:%s%s %s%s\n",
		p.Bold, name, d.Pos.Line, col, p.severity(d.Severity), d.Severity, p.Reset, p.Bold, d.Message, p.Reset)
	fmt.Fprintf(&b, "%*d | %s\n", width, d.Pos.Line, lineText)
	fmt.Fprintf(&b, "%*s | %*s%s%s%s%s\n", width, "", caretIndex, "", p.Bold, p.Green, caret, p.Reset)
	return b.String()
}
