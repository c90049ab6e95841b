// Package goaspect wraps named methods of an object with before, after, handle
// and around advice.
//
// A Target is a table of Method values. Each wrapping function validates its input,
// replaces one method with a wrapper that calls the advice, and returns the method
// that was installed before, so the change can be undone with Target.Assign:
//
//	greeter := goaspect.NewObject().Define("greet", func(_ goaspect.Target, args ...any) (any, error) {
//		return "Hello, " + args[0].(string), nil
//	})
//	original, err := goaspect.Before(greeter, "greet", func(_ goaspect.Target, args []any) (goaspect.BeforeResult, error) {
//		return goaspect.ReplaceArg(strings.ToUpper(args[0].(string))), nil
//	})
//	greeting, _ := greeter.Call("greet", "ann") // "Hello, ANN"
//	greeter.Assign("greet", original)
//
// Wrapping an already wrapped method wraps the wrapper: the most recent wrapper is
// outermost. Two Before advices run last applied first, two After advices see the
// result first applied first.
package goaspect

// Aspect is a piece of advice bound to a method name, ready to be applied to a Target.
type Aspect struct {
	Method string
	apply  func(target Target, name string) (Method, error)
}

// Apply wraps a.Method on target and returns the previous method.
func (a Aspect) Apply(target Target) (Method, error) {
	if a.apply == nil {
		return nil, newError(KindInvalidAspect, a.Method)
	}
	return a.apply(target, a.Method)
}

func BeforeAspect(method string, advice BeforeAdvice) Aspect {
	return Aspect{Method: method, apply: func(target Target, name string) (Method, error) {
		return Before(target, name, advice)
	}}
}

func AfterAspect(method string, advice AfterAdvice) Aspect {
	return Aspect{Method: method, apply: func(target Target, name string) (Method, error) {
		return After(target, name, advice)
	}}
}

func HandleAspect(method string, advice HandleAdvice) Aspect {
	return Aspect{Method: method, apply: func(target Target, name string) (Method, error) {
		return Handle(target, name, advice)
	}}
}

func AroundAspect(method string, advice AroundAdvice) Aspect {
	return Aspect{Method: method, apply: func(target Target, name string) (Method, error) {
		return Around(target, name, advice)
	}}
}
