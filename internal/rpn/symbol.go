package rpn

import "github.com/samber/lo"

var bracketPairMap = map[byte]byte{
	'(': ')',
	'[': ']',
	'{': '}',
}

var bracketReversePairMap = lo.Invert(bracketPairMap)

func isOpenBracket(c byte) bool {
	_, ok := bracketPairMap[c]
	return ok
}

func isCloseBracket(c byte) bool {
	_, ok := bracketReversePairMap[c]
	return ok
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// IsOperator reports whether c is one of the arithmetic operators + - * /.
func IsOperator(c byte) bool {
	switch c {
	case '+', '-', '*', '/':
		return true
	default:
		return false
	}
}

// IsBalanced reports whether every bracket in s is closed by its own kind in
// nesting order. Characters other than brackets are ignored.
func IsBalanced(s string) bool {
	return checkBalance(s) == -1
}

// checkBalance returns the index of the first bracket that breaks the nesting,
// len(s) when an opener is left unclosed, or -1 when s is balanced.
func checkBalance(s string) int {
	var stack []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isOpenBracket(c):
			stack = append(stack, c)
		case isCloseBracket(c):
			if len(stack) == 0 {
				return i
			}
			if top := stack[len(stack)-1]; bracketReversePairMap[c] != top {
				return i
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) != 0 {
		return len(s)
	}
	return -1
}

// matchingClose returns the index of the bracket closing the one opened at
// s[open], or -1. s must be balanced.
func matchingClose(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch {
		case isOpenBracket(s[i]):
			depth++
		case isCloseBracket(s[i]):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
