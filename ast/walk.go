package ast

import "fmt"

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *BinaryExpr:
		return []Node{n.Left, n.Right}
	case *UnaryExpr:
		return []Node{n.Operand}
	case *PostfixExpr:
		return []Node{n.Operand}
	case *NumberLit, *CharLit, *StringLit, *BoolLit, *NullLit:
		return nil
	default:
		panic(fmt.Sprintf("ast: unexpected node %T", n))
	}
}

// Walk calls fn for every node of the tree rooted at n, children before
// their parent. A nil root is a no-op.
func Walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
	fn(n)
}

// Release detaches every node of the tree rooted at n from its children,
// post-order, so no part of a finished statement's tree stays reachable
// through another part.
func Release(n Node) {
	Walk(n, func(n Node) {
		switch n := n.(type) {
		case *BinaryExpr:
			n.Left, n.Right = nil, nil
		case *UnaryExpr:
			n.Operand = nil
		case *PostfixExpr:
			n.Operand = nil
		}
	})
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	c := 0
	Walk(n, func(Node) { c++ })
	return c
}
