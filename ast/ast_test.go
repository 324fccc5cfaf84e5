package ast_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noon-lang/noon/ast"
)

func num(lit string, v float64) *ast.NumberLit {
	return &ast.NumberLit{Token: ast.Token{Type: ast.INT, Literal: lit}, Value: v}
}

func str(v string) *ast.StringLit {
	return &ast.StringLit{Token: ast.Token{Type: ast.STRING, Literal: `"` + v + `"`}, Value: v}
}

func op(tt ast.TokenType, lit string) ast.Token {
	return ast.Token{Type: tt, Literal: lit, Line: 1, Col: 1}
}

func mustBinary(t *testing.T, o ast.Token, l, r ast.Node) *ast.BinaryExpr {
	t.Helper()
	n, err := ast.NewBinary(o, l, r)
	require.NoError(t, err)
	return n
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "integer", ast.INT.String())
	assert.Equal(t, "left parenthesis", ast.LPAREN.String())
	assert.Equal(t, "floor divide equal", ast.FLOORDIV_ASSIGN.String())
	assert.Equal(t, "unknown", ast.TokenType(-1).String())
}

func TestLookupIdent(t *testing.T) {
	assert.Equal(t, ast.BOOLEAN, ast.LookupIdent("bool"))
	assert.Equal(t, ast.TRUE, ast.LookupIdent("true"))
	assert.Equal(t, ast.FALSE, ast.LookupIdent("false"))
	assert.Equal(t, ast.NULL, ast.LookupIdent("null"))
	assert.Equal(t, ast.IDENT, ast.LookupIdent("True"))
}

func TestTokenType_Classes(t *testing.T) {
	assert.True(t, ast.HEX.IsNumber())
	assert.True(t, ast.QUESTION.IsOperator())
	assert.True(t, ast.SHR_ASSIGN.IsOperator())
	assert.False(t, ast.COMMA.IsOperator())
	assert.True(t, ast.TILDE.IsUnary())
	assert.False(t, ast.ASTERISK.IsUnary())
	assert.True(t, ast.DECREMENT.IsPostfix())
	assert.True(t, ast.WALRUS.IsAssign())
	assert.True(t, ast.RBRACKET.IsCloser())
}

func TestBinaryKind(t *testing.T) {
	tests := []struct {
		op          ast.TokenType
		left, right ast.Kind
		want        ast.Kind
		ok          bool
	}{
		{ast.PLUS, ast.KindNumber, ast.KindNumber, ast.KindNumber, true},
		{ast.PLUS, ast.KindString, ast.KindString, ast.KindString, true},
		{ast.PLUS, ast.KindNumber, ast.KindString, ast.KindNull, false},
		{ast.PLUS, ast.KindBoolean, ast.KindBoolean, ast.KindNull, false},
		{ast.MINUS, ast.KindString, ast.KindString, ast.KindNull, false},
		{ast.POW, ast.KindNumber, ast.KindNumber, ast.KindNumber, true},
		{ast.FLOORDIV, ast.KindNumber, ast.KindNumber, ast.KindNumber, true},
		{ast.EQ, ast.KindString, ast.KindString, ast.KindString, true},
		{ast.LT, ast.KindNull, ast.KindNull, ast.KindNull, false},
		{ast.AND, ast.KindBoolean, ast.KindNumber, ast.KindNumber, true},
		{ast.OR, ast.KindString, ast.KindString, ast.KindNull, false},
		{ast.ASSIGN, ast.KindString, ast.KindString, ast.KindString, true},
		{ast.SHL_ASSIGN, ast.KindNumber, ast.KindNumber, ast.KindNumber, true},
		{ast.QUESTION, ast.KindNumber, ast.KindNumber, ast.KindNull, false},
	}
	for _, tt := range tests {
		got, ok := ast.BinaryKind(tt.op, tt.left, tt.right)
		assert.Equal(t, tt.ok, ok, "%s %s %s", tt.left, tt.op, tt.right)
		assert.Equal(t, tt.want, got, "%s %s %s", tt.left, tt.op, tt.right)
	}
}

func TestNewBinary_TypeError(t *testing.T) {
	n, err := ast.NewBinary(op(ast.PLUS, "+"), num("1", 1), str("a"))
	assert.Nil(t, n)
	var te *ast.TypeError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, ast.KindNumber, te.Left)
	assert.Equal(t, ast.KindString, te.Right)
	assert.Equal(t, "operator `+` not supported between number and string", err.Error())
}

func TestKindPropagation(t *testing.T) {
	neg := ast.NewUnary(op(ast.MINUS, "-"), str("a"))
	assert.Equal(t, ast.KindString, neg.Kind())
	inc := ast.NewPostfix(op(ast.INCREMENT, "++"), num("1", 1))
	assert.Equal(t, ast.KindNumber, inc.Kind())
	sum := mustBinary(t, op(ast.PLUS, "+"), str("a"), neg)
	assert.Equal(t, ast.KindString, sum.Kind())
}

func TestFprint(t *testing.T) {
	// 1.5 + -((2 * 3)++)
	mul := mustBinary(t, op(ast.ASTERISK, "*"), num("2", 2), num("3", 3))
	tree := mustBinary(t, op(ast.PLUS, "+"),
		num("1.5", 1.5),
		ast.NewUnary(op(ast.MINUS, "-"), ast.NewPostfix(op(ast.INCREMENT, "++"), mul)),
	)

	var buf bytes.Buffer
	require.NoError(t, ast.Fprint(&buf, tree))
	want := "+\n" +
		"├── 1.5\n" +
		"└── - (unary)\n" +
		"    └── ++ (postfix)\n" +
		"        └── *\n" +
		"            ├── 2\n" +
		"            └── 3\n"
	assert.Equal(t, want, buf.String())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "++ (prefix)", ast.Label(ast.NewUnary(op(ast.INCREMENT, "++"), num("1", 1))))
	assert.Equal(t, `"hi"`, ast.Label(str("hi")))
	assert.Equal(t, "null", ast.Label(&ast.NullLit{Token: op(ast.LPAREN, "(")}))
	assert.Equal(t, "true", ast.Label(&ast.BoolLit{Token: op(ast.TRUE, "true"), Value: true}))
}

func TestWalkAndRelease(t *testing.T) {
	left := mustBinary(t, op(ast.PLUS, "+"), num("1", 1), num("2", 2))
	root := mustBinary(t, op(ast.ASTERISK, "*"), left, ast.NewUnary(op(ast.MINUS, "-"), num("3", 3)))
	assert.Equal(t, 6, ast.Count(root))

	var order []string
	ast.Walk(root, func(n ast.Node) { order = append(order, n.TokenLiteral()) })
	assert.Equal(t, []string{"1", "2", "+", "3", "-", "*"}, order, "children before parents")

	ast.Release(root)
	assert.Nil(t, root.Left)
	assert.Nil(t, root.Right)
	assert.Nil(t, left.Left)
	assert.Equal(t, 1, ast.Count(root))

	ast.Release(nil)
}

func TestFprintTokens(t *testing.T) {
	var buf bytes.Buffer
	toks := []ast.Token{op(ast.INT, "1"), op(ast.PLUS, "+"), op(ast.STRING, `"a"`)}
	require.NoError(t, ast.FprintTokens(&buf, toks))
	assert.Equal(t, "[0] integer: 1\n[1] plus: +\n[2] string: \"a\"\n\n", buf.String())
}
