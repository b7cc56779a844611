package rpn

type TokenKind int

const (
	NumberToken TokenKind = iota
	OperatorToken
	GroupToken
)

func (k TokenKind) String() string {
	switch k {
	case NumberToken:
		return "Number"
	case OperatorToken:
		return "Operator"
	case GroupToken:
		return "Group"
	default:
		return "Unknown"
	}
}

// Token is one lexical unit of an infix expression. A GroupToken holds the
// already converted RPN form of a bracketed sub-expression.
// Pos is the 0-based byte offset in the source the token was lexed from.
type Token struct {
	Kind  TokenKind
	Value string
	Pos   int
}

func (t Token) IsOperand() bool {
	return t.Kind == NumberToken || t.Kind == GroupToken
}

func (t Token) String() string {
	return t.Kind.String() + "(" + t.Value + ")"
}
