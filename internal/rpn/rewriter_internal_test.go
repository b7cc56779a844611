package rpn

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/infix-rpn/internal/diag"
)

func num(v string) Token { return Token{Kind: NumberToken, Value: v} }
func op(v string) Token { return Token{Kind: OperatorToken, Value: v} }
func grp(v string) Token { return Token{Kind: GroupToken, Value: v} }

func TestRewrite(t *testing.T) {
	t.Parallel()

	for name, tt := range map[string]struct {
		tokens       []Token
		expected     string
		expectedTags []diag.ErrorTag
	}{
		"single": {
			tokens:   []Token{num("1")},
			expected: "1",
		},
		"group operand": {
			tokens:   []Token{grp("1 2 +"), op("*"), num("3")},
			expected: "1 2 + 3 *",
		},
		"precedence": {
			tokens:   []Token{num("1"), op("-"), num("2"), op("/"), num("3"), op("+"), num("4")},
			expected: "1 2 3 / - 4 +",
		},
		"left associative": {
			tokens:   []Token{num("1"), op("/"), num("2"), op("*"), num("3")},
			expected: "1 2 / 3 *",
		},
		"leading operator": {
			tokens:       []Token{op("+"), num("1")},
			expected:     "+ 1",
			expectedTags: []diag.ErrorTag{diag.StructuralInconsistencyTag},
		},
		"adjacent operators": {
			tokens:       []Token{num("1"), op("*"), op("*"), num("2")},
			expected:     "1 * * 2",
			expectedTags: []diag.ErrorTag{diag.StructuralInconsistencyTag},
		},
		"adjacent operands": {
			tokens:       []Token{num("1"), op("+"), num("2"), num("3")},
			expected:     "1 2 + 3",
			expectedTags: []diag.ErrorTag{diag.StructuralInconsistencyTag},
		},
	} {
		s := &session{maxDepth: DefaultMaxDepth}
		actual := s.rewrite(joinTokens(tt.tokens), append([]Token(nil), tt.tokens...))
		if actual != tt.expected {
			t.Errorf("%s: expect to %q but got %q", name, tt.expected, actual)
		}
		if diff := cmp.Diff(tt.expectedTags, s.diags.Tags()); diff != "" {
			t.Errorf("%s: diagnostic tags mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestPrecedencePasses(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff([]uint8{2, 1}, precedencePasses); diff != "" {
		t.Errorf("precedence passes mismatch (-want +got):\n%s", diff)
	}
}
