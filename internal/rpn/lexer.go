package rpn

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/karupanerura/infix-rpn/internal/diag"
)

type lexer struct {
	session *session
	source  string
	index   int
	offset  int
	depth   int
	tokens  []Token
}

func (s *session) tokenize(source string, offset, depth int) []Token {
	if len(source) >= 2 && isOpenBracket(source[0]) && IsBalanced(source) && matchingClose(source, 0) == len(source)-1 {
		if depth+1 > s.maxDepth {
			s.report(diag.RecursionErrorTag, offset+1, source, fmt.Errorf("brackets nested deeper than %d", s.maxDepth))
			return nil
		}
		source = source[1 : len(source)-1]
		offset++
		depth++
	}

	if err := ValidateInfix(source); err != nil {
		var e *diag.Error
		if errors.As(err, &e) {
			if e.Pos != 0 {
				e.Pos += offset
			}
			e.Extra = map[string]any{"expression": source}
			s.diags = append(s.diags, e)
		} else {
			s.report(diag.MalformedInfixTag, 0, source, err)
		}
		return nil
	}

	l := &lexer{
		session: s,
		source:  source,
		offset:  offset,
		depth:   depth,
	}
	l.run()
	return l.tokens
}

func (l *lexer) push(kind TokenKind, value string, pos int) {
	l.tokens = append(l.tokens, Token{Kind: kind, Value: value, Pos: l.offset + pos})
}

func (l *lexer) run() {
	for l.index != len(l.source) {
		c := l.source[l.index]
		switch {
		case isDigit(c):
			begins := l.index
			for l.index != len(l.source) && isDigit(l.source[l.index]) {
				l.index++
			}
			l.push(NumberToken, l.source[begins:l.index], begins)

		case isOpenBracket(c):
			l.lexGroup()

		case isCloseBracket(c):
			l.index++ // consumed together with its opener

		case IsOperator(c):
			l.push(OperatorToken, l.source[l.index:l.index+1], l.index)
			l.index++

		default:
			r, size := utf8.DecodeRuneInString(l.source[l.index:])
			l.session.report(diag.UnrecognizedCharacterTag, l.offset+l.index+1, l.source, fmt.Errorf("unrecognized character %q; ignoring", r))
			l.index += size
		}
	}
}

func (l *lexer) lexGroup() {
	begins := l.index
	ends := matchingClose(l.source, begins)
	if ends == -1 {
		// unreachable for validated input
		l.session.report(diag.StructuralInconsistencyTag, l.offset+begins+1, l.source, fmt.Errorf("unclosed bracket %c", l.source[begins]))
		l.index = len(l.source)
		return
	}
	l.index = ends + 1

	if l.depth+1 > l.session.maxDepth {
		l.session.report(diag.RecursionErrorTag, l.offset+begins+1, l.source, fmt.Errorf("brackets nested deeper than %d", l.session.maxDepth))
		return
	}

	rpn := l.session.toRPN(l.source[begins+1:ends], l.offset+begins+1, l.depth+1)
	if rpn == "" {
		return
	}
	l.push(GroupToken, rpn, begins)
}
