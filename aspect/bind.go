package aspect

import (
	"math"
	"reflect"

	"github.com/pkg/errors"

	"github.com/CherkashinEvgeny/goaspect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Bind builds an object whose methods call the exported methods of v.
//
// Arguments are converted to the parameter types: nil becomes the zero value,
// numbers convert between numeric types, anything else must be assignable.
// A trailing error result becomes the method error; the remaining results are
// returned as nil, a single value or a []any.
func Bind(v any) (*goaspect.Object, error) {
	if v == nil {
		return nil, errors.New("bind nil value")
	}
	value := reflect.ValueOf(v)
	if value.Kind() == reflect.Ptr && value.IsNil() {
		return nil, errors.Errorf("bind nil %s", value.Type())
	}
	ttype := value.Type()
	obj := goaspect.NewObject()
	for i := 0; i < ttype.NumMethod(); i++ {
		method := ttype.Method(i)
		obj.Assign(method.Name, bindMethod(method.Name, value.Method(i)))
	}
	return obj, nil
}

func bindMethod(name string, fn reflect.Value) goaspect.Method {
	ftype := fn.Type()
	return func(_ goaspect.Target, args ...any) (any, error) {
		in, err := convertArgs(ftype, args)
		if err != nil {
			return nil, errors.Wrapf(err, "method='%s'", name)
		}
		return convertResults(ftype, fn.Call(in))
	}
}

func convertArgs(ftype reflect.Type, args []any) ([]reflect.Value, error) {
	numIn := ftype.NumIn()
	if ftype.IsVariadic() {
		if len(args) < numIn-1 {
			return nil, errors.Errorf("expected at least %d arguments, got %d", numIn-1, len(args))
		}
	} else if len(args) != numIn {
		return nil, errors.Errorf("expected %d arguments, got %d", numIn, len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var ptype reflect.Type
		if ftype.IsVariadic() && i >= numIn-1 {
			ptype = ftype.In(numIn - 1).Elem()
		} else {
			ptype = ftype.In(i)
		}
		value, err := convertValue(arg, ptype)
		if err != nil {
			return nil, errors.Wrapf(err, "argument #%d", i)
		}
		in[i] = value
	}
	return in, nil
}

func convertValue(arg any, ptype reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(ptype), nil
	}
	value := reflect.ValueOf(arg)
	if value.Type().AssignableTo(ptype) {
		return value, nil
	}
	if isNumeric(value.Kind()) && isNumeric(ptype.Kind()) {
		if !fits(value, ptype) {
			return reflect.Value{}, errors.Errorf("cannot use %v as %s", arg, ptype)
		}
		return value.Convert(ptype), nil
	}
	return reflect.Value{}, errors.Errorf("cannot use %s as %s", value.Type(), ptype)
}

// fits reports whether the numeric value converts to ptype without losing range
// or a fractional part.
func fits(value reflect.Value, ptype reflect.Type) bool {
	target := reflect.Zero(ptype)
	switch {
	case isInt(ptype.Kind()):
		switch {
		case isInt(value.Kind()):
			return !target.OverflowInt(value.Int())
		case isUint(value.Kind()):
			return value.Uint() <= math.MaxInt64 && !target.OverflowInt(int64(value.Uint()))
		default:
			f := value.Float()
			return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 && !target.OverflowInt(int64(f))
		}
	case isUint(ptype.Kind()):
		switch {
		case isInt(value.Kind()):
			return value.Int() >= 0 && !target.OverflowUint(uint64(value.Int()))
		case isUint(value.Kind()):
			return !target.OverflowUint(value.Uint())
		default:
			f := value.Float()
			return f == math.Trunc(f) && f >= 0 && f < math.MaxUint64 && !target.OverflowUint(uint64(f))
		}
	default:
		if isInt(value.Kind()) || isUint(value.Kind()) {
			return true
		}
		return !target.OverflowFloat(value.Float())
	}
}

func isInt(kind reflect.Kind) bool {
	return kind >= reflect.Int && kind <= reflect.Int64
}

func isUint(kind reflect.Kind) bool {
	return kind >= reflect.Uint && kind <= reflect.Uintptr
}

func isNumeric(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func convertResults(ftype reflect.Type, out []reflect.Value) (any, error) {
	var err error
	if n := ftype.NumOut(); n > 0 && ftype.Out(n-1) == errorType {
		if last := out[n-1]; !last.IsNil() {
			err = last.Interface().(error)
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return nil, err
	case 1:
		return out[0].Interface(), err
	default:
		results := make([]any, len(out))
		for i, value := range out {
			results[i] = value.Interface()
		}
		return results, err
	}
}
