// Package aspect binds Go values to goaspect objects and applies
// Before/After handlers to their methods.
package aspect

import (
	"reflect"

	"github.com/CherkashinEvgeny/goaspect"
)

type Aspect interface {
	Handler(ttype reflect.Type, method string) Handler
}

// Handler observes a single call. Before receives the call arguments, After
// receives the result and the error.
type Handler interface {
	Before(in ...any)
	After(out ...any)
}

// Weave wraps each of the named methods of target. Every call asks a for a fresh
// handler; a nil handler leaves the call unobserved. ttype is handed to the aspect
// as is and may be nil. The replaced methods are returned in the order of methods.
// On error, methods wrapped so far are restored.
func Weave(target goaspect.Target, ttype reflect.Type, a Aspect, methods ...string) ([]goaspect.Method, error) {
	originals := make([]goaspect.Method, 0, len(methods))
	for i, method := range methods {
		var advice goaspect.AroundAdvice
		if a != nil {
			method := method
			advice = func(this goaspect.Target, original goaspect.Method, args []any) (any, error) {
				handler := a.Handler(ttype, method)
				if handler == nil {
					return original(this, args...)
				}
				handler.Before(args...)
				result, err := original(this, args...)
				handler.After(result, err)
				return result, err
			}
		}
		original, err := goaspect.Around(target, method, advice)
		if err != nil {
			for j := i - 1; j >= 0; j-- {
				target.Assign(methods[j], originals[j])
			}
			return nil, err
		}
		originals = append(originals, original)
	}
	return originals, nil
}
