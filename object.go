package goaspect

import (
	"reflect"
	"sort"
	"sync"
)

// Method is a callable slot on a Target. this is the receiver the call was made on.
type Method func(this Target, args ...any) (any, error)

// Target is a mutable table of named methods.
type Target interface {
	Lookup(name string) (Method, bool)
	// Assign unconditionally installs m under name.
	Assign(name string, m Method)
	// Swap atomically replaces the method under name with wrap(original) and
	// returns the original. ok is false when there is no method under name,
	// in which case the table is left untouched.
	Swap(name string, wrap func(original Method) Method) (original Method, ok bool)
}

type Object struct {
	mu      sync.RWMutex
	methods map[string]Method
}

var _ Target = (*Object)(nil)

func NewObject() *Object {
	return &Object{methods: map[string]Method{}}
}

// Define installs m under name and returns o, so objects can be built in one expression.
func (o *Object) Define(name string, m Method) *Object {
	o.Assign(name, m)
	return o
}

func (o *Object) Lookup(name string) (Method, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	m, ok := o.methods[name]
	if !ok || m == nil {
		return nil, false
	}
	return m, true
}

func (o *Object) Assign(name string, m Method) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.methods == nil {
		o.methods = map[string]Method{}
	}
	o.methods[name] = m
}

func (o *Object) Swap(name string, wrap func(original Method) Method) (Method, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	original, ok := o.methods[name]
	if !ok || original == nil {
		return nil, false
	}
	o.methods[name] = wrap(original)
	return original, true
}

// Call invokes the method currently installed under name with o as the receiver.
func (o *Object) Call(name string, args ...any) (any, error) {
	m, ok := o.Lookup(name)
	if !ok {
		return nil, newError(KindInvalidMethod, name)
	}
	return m(o, args...)
}

func (o *Object) Names() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	names := make([]string, 0, len(o.methods))
	for name, m := range o.methods {
		if m != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func isNil(target Target) bool {
	if target == nil {
		return true
	}
	v := reflect.ValueOf(target)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
