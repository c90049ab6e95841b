package fn

import (
	"reflect"
	"strings"

	"github.com/samber/mo"
)

// Field returns an extractor for a dot separated path such as "user.address.city".
// Each segment is looked up as a string key of a map or an exported field of a
// struct, following pointers and interfaces on the way. The extractor yields None
// as soon as a segment cannot be resolved or a nil is met. An empty path yields
// the value itself.
func Field(path string) func(any) mo.Option[any] {
	var segments []string
	if path != "" {
		segments = strings.Split(path, ".")
	}
	return func(v any) mo.Option[any] {
		current := reflect.ValueOf(v)
		for _, segment := range segments {
			next, ok := lookup(current, segment)
			if !ok {
				return mo.None[any]()
			}
			current = next
		}
		if isNilValue(current) || !current.CanInterface() {
			return mo.None[any]()
		}
		return mo.Some(current.Interface())
	}
}

// FieldOr is Field with a fallback for unresolved paths.
func FieldOr(path string, fallback any) func(any) any {
	field := Field(path)
	return func(v any) any {
		return field(v).OrElse(fallback)
	}
}

func lookup(v reflect.Value, name string) (reflect.Value, bool) {
	v, ok := deref(v)
	if !ok {
		return reflect.Value{}, false
	}
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		item := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		return item, item.IsValid()
	case reflect.Struct:
		sf, found := v.Type().FieldByName(name)
		if !found || !sf.IsExported() {
			return reflect.Value{}, false
		}
		field, err := v.FieldByIndexErr(sf.Index)
		return field, err == nil
	default:
		return reflect.Value{}, false
	}
}

func deref(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

func isNilValue(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
