// Package ast — expression tree.
//
// A noon statement is a single expression. The node hierarchy is closed:
//
//	Node (interface)
//	  NumberLit, CharLit, StringLit, BoolLit, NullLit
//	  BinaryExpr, UnaryExpr, PostfixExpr
//
// Every node keeps the token that produced it so diagnostics can point at the
// exact source position. A parent exclusively owns its children; there is no
// sharing between trees.
package ast

import (
	"fmt"
	"strconv"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the interface implemented by every element of the expression tree.
type Node interface {
	// Tok returns the token that produced this node. For operator nodes this
	// is the operator token.
	Tok() Token
	// TokenLiteral returns the literal string of that token.
	TokenLiteral() string
	// Kind returns the coarse type of the value this node evaluates to.
	Kind() Kind
	// String returns a compact, fully parenthesised rendering of the node.
	// It is intended for debugging and test output, not pretty-printing.
	String() string

	exprNode()
}

// ── Literals ──────────────────────────────────────────────────────────────────

// NumberLit is any numeric literal. Integers and floats share float64 storage.
type NumberLit struct {
	Token Token
	Value float64
}

func (n *NumberLit) exprNode()            {}
func (n *NumberLit) Tok() Token           { return n.Token }
func (n *NumberLit) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLit) Kind() Kind           { return KindNumber }
func (n *NumberLit) String() string       { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// CharLit is a single-quoted literal. Value is the text between the quotes
// with escape sequences left as written.
type CharLit struct {
	Token Token
	Value string
}

func (n *CharLit) exprNode()            {}
func (n *CharLit) Tok() Token           { return n.Token }
func (n *CharLit) TokenLiteral() string { return n.Token.Literal }
func (n *CharLit) Kind() Kind           { return KindString }
func (n *CharLit) String() string       { return "'" + n.Value + "'" }

// StringLit is a double-quoted literal. Value is the text between the quotes
// with escape sequences left as written.
type StringLit struct {
	Token Token
	Value string
}

func (n *StringLit) exprNode()            {}
func (n *StringLit) Tok() Token           { return n.Token }
func (n *StringLit) TokenLiteral() string { return n.Token.Literal }
func (n *StringLit) Kind() Kind           { return KindString }
func (n *StringLit) String() string       { return `"` + n.Value + `"` }

// BoolLit is `true` or `false`.
type BoolLit struct {
	Token Token
	Value bool
}

func (n *BoolLit) exprNode()            {}
func (n *BoolLit) Tok() Token           { return n.Token }
func (n *BoolLit) TokenLiteral() string { return n.Token.Literal }
func (n *BoolLit) Kind() Kind           { return KindBoolean }
func (n *BoolLit) String() string       { return strconv.FormatBool(n.Value) }

// NullLit is `null`, and also the value of an empty group such as `()`.
// For an empty group Token is the opening bracket.
type NullLit struct {
	Token Token
}

func (n *NullLit) exprNode()            {}
func (n *NullLit) Tok() Token           { return n.Token }
func (n *NullLit) TokenLiteral() string { return n.Token.Literal }
func (n *NullLit) Kind() Kind           { return KindNull }
func (n *NullLit) String() string       { return "null" }

// ── Operators ─────────────────────────────────────────────────────────────────

// BinaryExpr is `left op right`. Construct it with NewBinary, which refuses
// operand kinds the operator does not apply to.
type BinaryExpr struct {
	Token Token // the operator token
	Left  Node
	Right Node

	kind Kind
}

func (e *BinaryExpr) exprNode()            {}
func (e *BinaryExpr) Tok() Token           { return e.Token }
func (e *BinaryExpr) TokenLiteral() string { return e.Token.Literal }
func (e *BinaryExpr) Kind() Kind           { return e.kind }
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Token.Literal, e.Right.String())
}

// UnaryExpr is a prefix operator applied to its operand: -x, !x, ++x.
type UnaryExpr struct {
	Token   Token // the operator token
	Operand Node
}

func (e *UnaryExpr) exprNode()            {}
func (e *UnaryExpr) Tok() Token           { return e.Token }
func (e *UnaryExpr) TokenLiteral() string { return e.Token.Literal }
func (e *UnaryExpr) Kind() Kind           { return e.Operand.Kind() }
func (e *UnaryExpr) String() string {
	return fmt.Sprintf("(%s%s)", e.Token.Literal, e.Operand.String())
}

// PostfixExpr is an operand followed by `++` or `--`.
type PostfixExpr struct {
	Token   Token // the operator token
	Operand Node
}

func (e *PostfixExpr) exprNode()            {}
func (e *PostfixExpr) Tok() Token           { return e.Token }
func (e *PostfixExpr) TokenLiteral() string { return e.Token.Literal }
func (e *PostfixExpr) Kind() Kind           { return e.Operand.Kind() }
func (e *PostfixExpr) String() string {
	return fmt.Sprintf("(%s%s)", e.Operand.String(), e.Token.Literal)
}

// ── Constructors ──────────────────────────────────────────────────────────────

// NewBinary builds `left op right` after checking that op applies to the
// operand kinds. On a mismatch it returns a *TypeError and no node; the
// operands are left untouched for the caller to release.
func NewBinary(op Token, left, right Node) (*BinaryExpr, error) {
	k, ok := BinaryKind(op.Type, left.Kind(), right.Kind())
	if !ok {
		return nil, &TypeError{Op: op, Left: left.Kind(), Right: right.Kind()}
	}
	return &BinaryExpr{Token: op, Left: left, Right: right, kind: k}, nil
}

// NewUnary builds a prefix operator node.
func NewUnary(op Token, operand Node) *UnaryExpr {
	return &UnaryExpr{Token: op, Operand: operand}
}

// NewPostfix builds a postfix operator node.
func NewPostfix(op Token, operand Node) *PostfixExpr {
	return &PostfixExpr{Token: op, Operand: operand}
}

// TypeError reports an operator applied to operand kinds it does not accept.
type TypeError struct {
	Op    Token
	Left  Kind
	Right Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("operator `%s` not supported between %s and %s", e.Op.Literal, e.Left, e.Right)
}
