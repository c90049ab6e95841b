package goaspect

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind int

const (
	KindInvalidObject Kind = iota + 1
	KindInvalidMethod
	KindInvalidAspect
	// KindInvalidProceed is reserved for proceed-style advice. Nothing raises it yet.
	KindInvalidProceed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidObject:
		return "invalid object"
	case KindInvalidMethod:
		return "invalid method"
	case KindInvalidAspect:
		return "invalid aspect"
	case KindInvalidProceed:
		return "invalid proceed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned by the wrapping functions when their input is rejected.
type Error struct {
	Kind   Kind
	Method string
}

func (e *Error) Error() string {
	if e.Method == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: method='%s'", e.Kind, e.Method)
}

// Is reports kind equality, so sentinels match any error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Method == "" || t.Method == e.Method)
}

var (
	ErrInvalidObject  = &Error{Kind: KindInvalidObject}
	ErrInvalidMethod  = &Error{Kind: KindInvalidMethod}
	ErrInvalidAspect  = &Error{Kind: KindInvalidAspect}
	ErrInvalidProceed = &Error{Kind: KindInvalidProceed}
)

func newError(kind Kind, method string) error {
	return errors.WithStack(&Error{Kind: kind, Method: method})
}

// KindOf returns the kind of the first *Error in err's chain, or zero.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
