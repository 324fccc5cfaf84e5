package lexer

import (
	"github.com/noon-lang/noon/ast"
	"github.com/noon-lang/noon/diag"
)

// Numeric literal problems. Each names the whole malformed literal.
const (
	msgInvalidDecimal   = "invalid decimal literal `%s`"
	msgConsecutiveUnder = "consecutive underscore in numeric literal `%s`"
	msgTrailingUnder    = "trailing underscore in numeric literal `%s`"
	msgUnderDot         = "underscore adjacent to decimal point in numeric literal `%s`"
	msgUnderExponent    = "underscore adjacent to exponent in numeric literal `%s`"
)

// readNumber scans a decimal literal starting on a digit or on a `.` that is
// followed by a digit:
//
//	digits ('.' digits?)? ([eE] [+-]? digits)?
//
// with single underscores allowed between digits. The token is FLOAT when a
// decimal point or an exponent is present, INT otherwise.
//
// On a malformed literal the first problem found is reported, the rest of the
// literal (letters, digits, dots and underscores) is skipped and no token is
// emitted.
func (l *Lexer) readNumber() {
	start := l.pos
	tt := ast.INT
	problem := ""
	seenDot, seenExp := false, false
	var prev byte

scan:
	for l.pos < len(l.text) && problem == "" {
		ch := l.text[l.pos]
		switch {
		case isDigit(ch):
		case ch == '_':
			switch {
			case prev == '_':
				problem = msgConsecutiveUnder
			case prev == '.':
				problem = msgUnderDot
			case isExpMark(prev), (prev == '+' || prev == '-') && seenExp:
				problem = msgUnderExponent
			}
		case ch == '.' && !seenDot && !seenExp:
			if prev == '_' {
				problem = msgUnderDot
			}
			seenDot = true
			tt = ast.FLOAT
		case isExpMark(ch) && !seenExp:
			if prev == '_' {
				problem = msgUnderExponent
			}
			seenExp = true
			tt = ast.FLOAT
		case (ch == '+' || ch == '-') && isExpMark(prev):
		default:
			break scan
		}
		prev = ch
		l.pos++
	}

	if problem == "" {
		switch {
		case prev == '_':
			problem = msgTrailingUnder
		case isExpMark(prev), (prev == '+' || prev == '-'):
			problem = msgInvalidDecimal
		case l.pos < len(l.text) && (isLetter(l.text[l.pos]) || isDigit(l.text[l.pos])):
			// e.g. `12abc` or `1e5e3`
			problem = msgInvalidDecimal
		}
	}

	if problem != "" {
		l.skipLiteral()
		lit := l.text[start:l.pos]
		l.rep.Report(diag.Error, l.position(start), lit, problem, lit)
		l.failed = true
		return
	}

	l.emit(tt, l.text[start:l.pos], start)
}

// skipLiteral advances past the remainder of a malformed literal.
func (l *Lexer) skipLiteral() {
	for l.pos < len(l.text) {
		ch := l.text[l.pos]
		if !isLetter(ch) && !isDigit(ch) && ch != '.' {
			return
		}
		l.pos++
	}
}

func isExpMark(b byte) bool { return b == 'e' || b == 'E' }
