package ast

// Kind is the coarse type of an expression. It is only precise enough to
// decide whether a binary operator applies to its two operands.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString // strings and chars
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	default:
		return "null"
	}
}

// BinaryKind reports the kind of `left op right` and whether op applies to
// that pair at all.
//
//	+  == != < <= > >=  and the assignment family: number/number or string/string
//	- * / %% % ** << >> & ^ |                      number/number
//	&& ||                                          number/number, booleans count as numbers
func BinaryKind(op TokenType, left, right Kind) (Kind, bool) {
	switch {
	case op == PLUS, op.IsAssign():
		return sameKind(left, right, KindNumber, KindString)
	case op == EQ, op == NEQ, op == LT, op == LTE, op == GT, op == GTE:
		return sameKind(left, right, KindNumber, KindString)
	case op == AND, op == OR:
		return sameKind(numeric(left), numeric(right), KindNumber)
	}
	switch op {
	case MINUS, ASTERISK, SLASH, FLOORDIV, PERCENT, POW, SHL, SHR, AMPERSAND, CARET, PIPE:
		return sameKind(left, right, KindNumber)
	}
	return KindNull, false
}

func sameKind(left, right Kind, allowed ...Kind) (Kind, bool) {
	if left != right {
		return KindNull, false
	}
	for _, k := range allowed {
		if left == k {
			return k, true
		}
	}
	return KindNull, false
}

func numeric(k Kind) Kind {
	if k == KindBoolean {
		return KindNumber
	}
	return k
}
