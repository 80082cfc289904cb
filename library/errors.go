package library

import (
	"fmt"
	"strconv"
	"strings"
)

// Code is a stable machine-readable error kind. Consumers branch on the
// code; the message text is informational only.
type Code string

const (
	// Field-level input parameter violations.
	CodeInvalidStep      Code = "INVALID_STEP"
	CodeInvalidSmoothing Code = "INVALID_SMOOTHING"
	CodeInvalidInt       Code = "INVALID_INT"
	CodeInvalidRange     Code = "INVALID_RANGE"
	CodeInvalidBoolField Code = "INVALID_BOOL_FIELD"

	// Structural violations.
	CodeMissingField Code = "MISSING_FIELD"
	CodeInvalidType  Code = "INVALID_TYPE"

	// Aggregate collision violations.
	CodeCollisionReservedUniform Code = "COLLISION_RESERVED_UNIFORM"
	CodeCollisionBaseParameter   Code = "COLLISION_BASE_PARAMETER"
	CodeCollisionHelperUniform   Code = "COLLISION_HELPER_UNIFORM"
	CodeCollisionHelperParameter Code = "COLLISION_HELPER_PARAMETER"
	CodeMissingBaseParameter     Code = "MISSING_BASE_PARAMETER"

	// Merge violations.
	CodeHelperNotFound Code = "HELPER_NOT_FOUND"
)

// Segment is one step in a document path: a field name or an array index.
// Field is set for object keys; index segments have Field == "".
type Segment struct {
	Field string
	Index int
}

// Path locates a value inside a document.
type Path []Segment

// Field returns a new path descending into the named field.
func (p Path) Field(name string) Path {
	q := make(Path, len(p), len(p)+1)
	copy(q, p)
	return append(q, Segment{Field: name})
}

// Index returns a new path descending into an array element.
func (p Path) Index(i int) Path {
	q := make(Path, len(p), len(p)+1)
	copy(q, p)
	return append(q, Segment{Index: i})
}

// String renders the path in dotted form, e.g.
// "helpers.sdHexagon.requires.inputParametersSpec[2].parameter".
func (p Path) String() string {
	var sb strings.Builder
	for _, seg := range p {
		if seg.Field != "" {
			if sb.Len() > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(seg.Field)
		} else {
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(seg.Index))
			sb.WriteByte(']')
		}
	}
	return sb.String()
}

// Error is one located validation failure.
type Error struct {
	Path    Path
	Code    Code
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ErrorList is an ordered collection of validation failures.
type ErrorList []*Error

// Error implements the error interface.
func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	*el = append(*el, err)
}

// Addf appends a located error with a formatted message.
func (el *ErrorList) Addf(path Path, code Code, format string, args ...any) {
	el.Add(&Error{Path: path, Code: code, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether the list is non-empty.
func (el ErrorList) HasErrors() bool {
	return len(el) > 0
}

// Len returns the number of errors.
func (el ErrorList) Len() int {
	return len(el)
}
