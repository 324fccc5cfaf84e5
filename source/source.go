// Package source keeps the text of every physical line read so far.
//
// The buffer serves two readers: the lexer, which consumes the current line,
// and the diagnostics formatter, which quotes any earlier line by number.
// Lines are numbered from 1 and never change once appended.
package source

import "strings"

// Line is an immutable snapshot of one physical input line.
type Line struct {
	Number int
	Text   string
}

// Buffer holds the current line and the archive of all lines seen.
// The zero value is an empty buffer ready for use.
type Buffer struct {
	lines []Line
}

// Append stores text as the next line, with any trailing newline removed,
// and returns the stored snapshot.
func (b *Buffer) Append(text string) Line {
	text = strings.TrimRight(text, "\r\n")
	l := Line{Number: len(b.lines) + 1, Text: text}
	b.lines = append(b.lines, l)
	return l
}

// Current returns the most recently appended line, or the zero Line when the
// buffer is empty.
func (b *Buffer) Current() Line {
	if len(b.lines) == 0 {
		return Line{}
	}
	return b.lines[len(b.lines)-1]
}

// Line returns the text of line n. It reports false when n is out of range.
func (b *Buffer) Line(n int) (string, bool) {
	if n < 1 || n > len(b.lines) {
		return "", false
	}
	return b.lines[n-1].Text, true
}

// Len returns the number of lines appended so far.
func (b *Buffer) Len() int { return len(b.lines) }

// Lines returns a copy of the archive.
func (b *Buffer) Lines() []Line {
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// Reset empties the buffer; numbering restarts at 1.
func (b *Buffer) Reset() {
	b.lines = nil
}
