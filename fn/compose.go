// Package fn provides small generic combinators: composition, currying,
// predicates, field-path extraction and slice folds.
package fn

// Compose is right to left composition. Compose(f, g)(x) == f(g(x)).
func Compose[A, B, C any](f func(B) C, g func(A) B) func(A) C {
	return func(a A) C {
		return f(g(a))
	}
}

// Pipe is left to right composition. Pipe(f, g)(x) == g(f(x)).
func Pipe[A, B, C any](f func(A) B, g func(B) C) func(A) C {
	return func(a A) C {
		return g(f(a))
	}
}

// Chain composes any number of endomorphisms left to right. Chain() is Identity.
func Chain[A any](fs ...func(A) A) func(A) A {
	return func(a A) A {
		for _, f := range fs {
			a = f(a)
		}
		return a
	}
}

func Identity[A any](a A) A {
	return a
}

// Const returns a function that ignores its argument and always returns a.
func Const[B, A any](a A) func(B) A {
	return func(B) A {
		return a
	}
}
