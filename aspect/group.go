package aspect

import (
	"reflect"
)

// Group is an Aspect that fans every call out to its members. Before handlers
// run in group order and After handlers in reverse, so the first member sees the
// call first and the result last.
type Group []Aspect

func (g Group) Handler(ttype reflect.Type, method string) Handler {
	handlers := make(groupHandler, 0, len(g))
	for _, member := range g {
		if member == nil {
			continue
		}
		if handler := member.Handler(ttype, method); handler != nil {
			handlers = append(handlers, handler)
		}
	}
	return handlers
}

type groupHandler []Handler

func (h groupHandler) Before(in ...any) {
	for _, handler := range h {
		handler.Before(in...)
	}
}

func (h groupHandler) After(out ...any) {
	for i := len(h) - 1; i >= 0; i-- {
		h[i].After(out...)
	}
}
