package fn

import (
	"github.com/samber/lo"
)

// Zip pairs up the elements of as and bs. The shorter side is padded with zero values.
func Zip[A, B any](as []A, bs []B) []lo.Tuple2[A, B] {
	return lo.Zip2(as, bs)
}

func Unzip[A, B any](pairs []lo.Tuple2[A, B]) ([]A, []B) {
	return lo.Unzip2(pairs)
}

// Fold reduces xs from the left: f(f(f(init, x0), x1), x2).
func Fold[T, R any](xs []T, init R, f func(acc R, x T) R) R {
	return lo.Reduce(xs, func(acc R, x T, _ int) R {
		return f(acc, x)
	}, init)
}

// FoldRight reduces xs from the right: f(f(f(init, x2), x1), x0).
func FoldRight[T, R any](xs []T, init R, f func(acc R, x T) R) R {
	return lo.ReduceRight(xs, func(acc R, x T, _ int) R {
		return f(acc, x)
	}, init)
}

// Intersection returns the distinct elements of as that are also in bs, in the order of as.
func Intersection[T comparable](as, bs []T) []T {
	return lo.Uniq(lo.Filter(as, func(x T, _ int) bool {
		return lo.Contains(bs, x)
	}))
}

// Union returns the distinct elements of as followed by those of bs that are not in as.
func Union[T comparable](as, bs []T) []T {
	return lo.Union(as, bs)
}

// Difference returns the elements of as that are not in bs.
func Difference[T comparable](as, bs []T) []T {
	left, _ := lo.Difference(as, bs)
	return left
}
