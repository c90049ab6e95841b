package goaspect

import (
	"github.com/pkg/errors"
)

type resultKind int

const (
	unchanged resultKind = iota
	replaceArgs
	replaceArg
)

// BeforeResult tells a before wrapper which arguments to pass on to the original method.
// The zero value is Unchanged.
type BeforeResult struct {
	kind resultKind
	args []any
}

// Unchanged passes the caller's arguments through as they are.
func Unchanged() BeforeResult {
	return BeforeResult{kind: unchanged}
}

// ReplaceArgs calls the original method with exactly args.
func ReplaceArgs(args ...any) BeforeResult {
	return BeforeResult{kind: replaceArgs, args: args}
}

// ReplaceArg calls the original method with arg as its only argument.
func ReplaceArg(arg any) BeforeResult {
	return BeforeResult{kind: replaceArg, args: []any{arg}}
}

func (r BeforeResult) apply(args []any) []any {
	switch r.kind {
	case replaceArgs, replaceArg:
		return r.args
	default:
		return args
	}
}

type (
	BeforeAdvice func(this Target, args []any) (BeforeResult, error)
	AfterAdvice  func(this Target, result any) (any, error)
	HandleAdvice func(this Target, err error, args []any)
	AroundAdvice func(this Target, original Method, args []any) (any, error)
)

// Before runs advice ahead of the method and lets it rewrite the arguments.
// The wrapped method returns whatever the original returns.
func Before(target Target, name string, advice BeforeAdvice) (Method, error) {
	return weave(target, name, advice == nil, func(original Method) Method {
		return func(this Target, args ...any) (any, error) {
			res, err := advice(this, args)
			if err != nil {
				return nil, err
			}
			return original(this, res.apply(args)...)
		}
	})
}

// After passes the method result through advice and returns what advice returns.
// A failing method skips advice.
func After(target Target, name string, advice AfterAdvice) (Method, error) {
	return weave(target, name, advice == nil, func(original Method) Method {
		return func(this Target, args ...any) (any, error) {
			result, err := original(this, args...)
			if err != nil {
				return nil, err
			}
			return advice(this, result)
		}
	})
}

// Handle hands failures of the method, returned errors and panics alike, to advice
// instead of propagating them. The wrapped method returns nil on both paths: the
// original's successful result is dropped.
func Handle(target Target, name string, advice HandleAdvice) (Method, error) {
	return weave(target, name, advice == nil, func(original Method) Method {
		return func(this Target, args ...any) (any, error) {
			if err := protect(original, this, args); err != nil {
				advice(this, err, args)
			}
			return nil, nil
		}
	})
}

// Around gives advice full control: it receives the original method and the
// arguments and its result becomes the result of the call.
func Around(target Target, name string, advice AroundAdvice) (Method, error) {
	return weave(target, name, advice == nil, func(original Method) Method {
		return func(this Target, args ...any) (any, error) {
			return advice(this, original, args)
		}
	})
}

func weave(target Target, name string, noAdvice bool, wrap func(original Method) Method) (Method, error) {
	if isNil(target) {
		return nil, newError(KindInvalidObject, name)
	}
	if noAdvice {
		return nil, newError(KindInvalidAspect, name)
	}
	if name == "" {
		return nil, newError(KindInvalidMethod, name)
	}
	original, ok := target.Swap(name, wrap)
	if !ok {
		return nil, newError(KindInvalidMethod, name)
	}
	return original, nil
}

func protect(m Method, this Target, args []any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = errors.WithStack(e)
				return
			}
			err = errors.Errorf("panic: %v", r)
		}
	}()
	_, err = m(this, args...)
	return err
}
