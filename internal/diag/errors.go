package diag

import (
	"errors"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
)

type ErrorTag string

const (
	MalformedInfixTag          ErrorTag = "MalformedInfix"
	UnrecognizedCharacterTag   ErrorTag = "UnrecognizedCharacter"
	StructuralInconsistencyTag ErrorTag = "StructuralInconsistency"
	RecursionErrorTag          ErrorTag = "RecursionError"
)

// Error is a diagnostic produced while converting an expression.
// Pos is the 1-based byte position in the expression it was found in, or 0.
type Error struct {
	Tag   ErrorTag
	Err   error
	Pos   int
	Extra map[string]any
}

// Exception is an error that can describe itself as a JSON-friendly value.
type Exception interface {
	error
	Exception() any
}

var _ Exception = (*Error)(nil)

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Tag))
	if e.Pos != 0 {
		b.WriteString(" at ")
		b.WriteString(strconv.Itoa(e.Pos))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Exception() any {
	tags := []any{e.Tag}
	for err := errors.Unwrap(error(e)); err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*Error); ok {
			tags = append(tags, e.Tag)
		}
	}

	o := map[string]any{
		"tags": tags,
	}
	if e.Err != nil {
		o["message"] = e.Err.Error()
	}
	if e.Pos != 0 {
		o["position"] = e.Pos
	}
	if len(e.Extra) != 0 {
		o = lo.Assign(o, e.Extra)
	}
	return o
}

func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Exception())
}

// Is matches any diagnostic carrying the same tag.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Tag == e.Tag
}

// Is reports whether err or anything it wraps is a diagnostic tagged tag.
func Is(err error, tag ErrorTag) bool {
	return errors.Is(err, &Error{Tag: tag})
}

// Diagnostics collects every problem found during a single conversion, in the order found.
type Diagnostics []*Error

func (d Diagnostics) Has(tag ErrorTag) bool {
	return lo.ContainsBy(d, func(e *Error) bool { return e.Tag == tag })
}

func (d Diagnostics) Tags() []ErrorTag {
	if len(d) == 0 {
		return nil
	}
	return lo.Uniq(lo.Map(d, func(e *Error, _ int) ErrorTag { return e.Tag }))
}

func (d Diagnostics) ErrorOrNil() error {
	var result *multierror.Error
	for _, e := range d {
		result = multierror.Append(result, e)
	}
	return result.ErrorOrNil()
}
