package fn

// Pred is a predicate over A.
type Pred[A any] func(A) bool

// And is true when both p and q hold. q is not evaluated when p fails.
func And[A any](p, q Pred[A]) Pred[A] {
	return func(a A) bool {
		return p(a) && q(a)
	}
}

// Or is true when either p or q holds. q is not evaluated when p holds.
func Or[A any](p, q Pred[A]) Pred[A] {
	return func(a A) bool {
		return p(a) || q(a)
	}
}

func Not[A any](p Pred[A]) Pred[A] {
	return func(a A) bool {
		return !p(a)
	}
}

// All holds when every predicate holds. All() always holds.
func All[A any](ps ...Pred[A]) Pred[A] {
	return func(a A) bool {
		for _, p := range ps {
			if !p(a) {
				return false
			}
		}
		return true
	}
}

// Any holds when at least one predicate holds. Any() never holds.
func Any[A any](ps ...Pred[A]) Pred[A] {
	return func(a A) bool {
		for _, p := range ps {
			if p(a) {
				return true
			}
		}
		return false
	}
}

func None[A any](ps ...Pred[A]) Pred[A] {
	return Not(Any(ps...))
}

// Eq is a curried equality check.
func Eq[A comparable](x A) Pred[A] {
	return func(y A) bool {
		return x == y
	}
}
