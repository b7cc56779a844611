package rpn

import (
	"errors"
	"fmt"

	"github.com/karupanerura/infix-rpn/internal/diag"
)

// IsValidInfix reports whether s can be handed to the tokenizer.
func IsValidInfix(s string) bool {
	return ValidateInfix(s) == nil
}

// ValidateInfix checks bracket balance and operator adjacency. It does not
// count operands; a nil result does not guarantee a convertible expression.
func ValidateInfix(s string) error {
	if len(s) == 0 {
		return &diag.Error{
			Tag: diag.MalformedInfixTag,
			Err: errors.New("empty expression"),
		}
	}
	if i := checkBalance(s); i != -1 {
		if i == len(s) {
			return &diag.Error{
				Tag: diag.MalformedInfixTag,
				Err: fmt.Errorf("unclosed bracket in %q", s),
				Pos: i,
			}
		}
		return &diag.Error{
			Tag: diag.MalformedInfixTag,
			Err: fmt.Errorf("unbalanced bracket %c in %q", s[i], s),
			Pos: i + 1,
		}
	}
	if IsOperator(s[0]) {
		return &diag.Error{
			Tag: diag.MalformedInfixTag,
			Err: fmt.Errorf("leading operator %c in %q", s[0], s),
			Pos: 1,
		}
	}
	if last := len(s) - 1; IsOperator(s[last]) {
		return &diag.Error{
			Tag: diag.MalformedInfixTag,
			Err: fmt.Errorf("trailing operator %c in %q", s[last], s),
			Pos: last + 1,
		}
	}

	justHadOperator := false
	for i := 0; i < len(s); i++ {
		if !IsOperator(s[i]) {
			justHadOperator = false
			continue
		}
		if justHadOperator {
			return &diag.Error{
				Tag: diag.MalformedInfixTag,
				Err: fmt.Errorf("adjacent operators %q in %q", s[i-1:i+1], s),
				Pos: i + 1,
			}
		}
		justHadOperator = true
	}
	return nil
}
