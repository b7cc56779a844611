package rpn

import (
	"fmt"
	"sort"
	"strings"

	"github.com/karupanerura/infix-rpn/internal/diag"
	"github.com/samber/lo"
)

var infixOperatorBindingPowerMap = map[string]uint8{
	"+": 1,
	"-": 1,
	"*": 2,
	"/": 2,
}

// precedencePasses lists binding powers from the tightest to the loosest.
var precedencePasses = func() []uint8 {
	bps := lo.Uniq(lo.Values(infixOperatorBindingPowerMap))
	sort.Slice(bps, func(i, j int) bool { return bps[i] > bps[j] })
	return bps
}()

// rewrite collapses operand-operator-operand triples into "left right op",
// one precedence pass at a time, scanning left to right so that operators of
// equal binding power associate to the left. tokens is modified in place.
func (s *session) rewrite(source string, tokens []Token) string {
	for _, bp := range precedencePasses {
		for i := 0; i < len(tokens); i++ {
			op := tokens[i]
			if op.Kind != OperatorToken || infixOperatorBindingPowerMap[op.Value] != bp {
				continue
			}
			if i == 0 || i == len(tokens)-1 || !tokens[i-1].IsOperand() || !tokens[i+1].IsOperand() {
				s.report(diag.StructuralInconsistencyTag, op.Pos+1, source, fmt.Errorf("operator %s is missing an operand", op.Value))
				return joinTokens(tokens)
			}

			left, right := tokens[i-1], tokens[i+1]
			tokens[i-1] = Token{
				Kind:  GroupToken,
				Value: left.Value + " " + right.Value + " " + op.Value,
				Pos:   left.Pos,
			}
			tokens = append(tokens[:i], tokens[i+2:]...)
			i--
		}
	}

	if len(tokens) != 1 {
		s.report(diag.StructuralInconsistencyTag, tokens[1].Pos+1, source, fmt.Errorf("operand %s follows another operand without an operator", tokens[1].Value))
		return joinTokens(tokens)
	}
	return tokens[0].Value
}

func joinTokens(tokens []Token) string {
	return strings.Join(lo.Map(tokens, func(t Token, _ int) string { return t.Value }), " ")
}
