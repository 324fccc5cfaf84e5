package ast

import (
	"fmt"
	"io"
	"strconv"
)

// Fprint writes n as an indented tree:
//
//	+
//	├── 1
//	└── *
//	    ├── 2
//	    └── 3
//
// A nil node writes nothing.
func Fprint(w io.Writer, n Node) error {
	if n == nil {
		return nil
	}
	if _, err := fmt.Fprintln(w, Label(n)); err != nil {
		return err
	}
	return fprintChildren(w, n, "")
}

func fprintChildren(w io.Writer, n Node, prefix string) error {
	children := Children(n)
	for i, c := range children {
		last := i == len(children)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, Label(c)); err != nil {
			return err
		}
		if err := fprintChildren(w, c, prefix+indent); err != nil {
			return err
		}
	}
	return nil
}

// Label returns the one-line description of n used by Fprint.
func Label(n Node) string {
	switch n := n.(type) {
	case *NumberLit:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *CharLit, *StringLit:
		return n.TokenLiteral()
	case *BoolLit:
		return strconv.FormatBool(n.Value)
	case *NullLit:
		return "null"
	case *BinaryExpr:
		return n.Token.Literal
	case *UnaryExpr:
		if n.Token.Type.IsPostfix() {
			return n.Token.Literal + " (prefix)"
		}
		return n.Token.Literal + " (unary)"
	case *PostfixExpr:
		return n.Token.Literal + " (postfix)"
	default:
		panic(fmt.Sprintf("ast: unexpected node %T", n))
	}
}

// FprintTokens writes one `[i] <type name>: <text>` line per token followed
// by a blank line.
func FprintTokens(w io.Writer, toks []Token) error {
	for i, t := range toks {
		if _, err := fmt.Fprintf(w, "[%d] %s: %s\n", i, t.Type, t.Literal); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
