package rpn

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/k0kubun/pp"
	"github.com/karupanerura/infix-rpn/internal/diag"
)

// DefaultMaxDepth bounds bracket nesting when Converter.MaxDepth is not set.
const DefaultMaxDepth = 256

var converterDebugLog = false

func init() {
	if v, err := strconv.ParseBool(os.Getenv("INFIX_RPN_DEBUG")); v && err == nil {
		converterDebugLog = true
	}
}

// Converter rewrites infix arithmetic expressions into Reverse Polish Notation.
// The zero value is ready to use. A Converter holds no per-call state and may
// be shared between goroutines.
//
// Diagnostic positions are 1-based offsets into the expression with its
// whitespace removed.
type Converter struct {
	// MaxDepth is the deepest bracket nesting accepted. Zero means DefaultMaxDepth.
	MaxDepth int

	// Debug logs every token sequence before it is rewritten.
	Debug bool
}

var defaultConverter = &Converter{}

func Tokenize(source string) ([]Token, diag.Diagnostics) {
	return defaultConverter.Tokenize(source)
}

func ToRPN(source string) (string, diag.Diagnostics) {
	return defaultConverter.ToRPN(source)
}

// Conversion is the outcome of converting one expression.
type Conversion struct {
	Expression  string           `json:"expression"`
	Balanced    bool             `json:"balanced"`
	RPN         string           `json:"rpn"`
	Diagnostics diag.Diagnostics `json:"diagnostics,omitempty"`
}

func (c *Converter) Convert(source string) *Conversion {
	rpn, diags := c.ToRPN(source)
	return &Conversion{
		Expression:  source,
		Balanced:    IsBalanced(source),
		RPN:         rpn,
		Diagnostics: diags,
	}
}

// Tokenize lexes source, which is expected to contain no whitespace. An empty
// token sequence means source was rejected; the reason is in the diagnostics.
func (c *Converter) Tokenize(source string) ([]Token, diag.Diagnostics) {
	s := c.newSession()
	tokens := s.tokenize(source, 0, 0)
	return tokens, s.diags
}

// ToRPN returns the RPN form of source with tokens separated by single spaces.
// Malformed input yields an empty or partial result together with diagnostics.
func (c *Converter) ToRPN(source string) (string, diag.Diagnostics) {
	s := c.newSession()
	rpn := s.toRPN(source, 0, 0)
	return rpn, s.diags
}

func (c *Converter) newSession() *session {
	maxDepth := c.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &session{
		maxDepth: maxDepth,
		debug:    c.Debug || converterDebugLog,
	}
}

// session carries the diagnostics of one top-level call through its recursive sub-calls.
type session struct {
	maxDepth int
	debug    bool
	diags    diag.Diagnostics
}

// report records a diagnostic found in expression, the (sub-)expression being
// processed when it was found.
func (s *session) report(tag diag.ErrorTag, pos int, expression string, err error) {
	e := &diag.Error{Tag: tag, Err: err, Pos: pos}
	if expression != "" {
		e.Extra = map[string]any{"expression": expression}
	}
	s.diags = append(s.diags, e)
}

// toRPN converts source, which starts at byte offset in the top-level
// expression and sits depth brackets deep.
func (s *session) toRPN(source string, offset, depth int) string {
	stripped, isNumber := stripSpaces(source)
	if stripped == "" {
		if depth == 0 {
			s.report(diag.MalformedInfixTag, 0, "", errors.New("empty expression"))
		} else {
			s.report(diag.MalformedInfixTag, offset, "", errors.New("empty group"))
		}
		return ""
	}
	if isNumber {
		return stripped
	}

	tokens := s.tokenize(stripped, offset, depth)
	if len(tokens) == 0 {
		return ""
	}
	if s.debug {
		log.Printf("tokens of %q:", stripped)
		pp.Fprintln(os.Stderr, tokens)
	}
	return s.rewrite(stripped, tokens)
}

// stripSpaces removes every whitespace character and reports whether the
// rest consists of ASCII digits only.
func stripSpaces(source string) (string, bool) {
	isNumber := true
	var b strings.Builder
	b.Grow(len(source))
	for i := 0; i < len(source); {
		r, size := utf8.DecodeRuneInString(source[i:])
		if !unicode.IsSpace(r) {
			if r < '0' || '9' < r {
				isNumber = false
			}
			b.WriteString(source[i : i+size])
		}
		i += size
	}
	return b.String(), isNumber
}
