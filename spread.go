// Package spread turns a producer of a lazy sequence into a producer of a prefix and a remainder.
//
// The prefix length is not passed by the caller.
// It is read from the destructuring pattern of the statement that calls the wrapped function:
//
//	digits := spread.Func1(func(n int) iter.Seq[int] { ... })
//
//	pair, err := digits(7) //spread:(a, b, c), rest
//
// Here the prefix of pair holds the first three values,
// and the remainder resumes the same sequence from the fourth value on.
// A gather slot, as in "(a, *b), rest", makes the whole sequence the prefix.
//
// When the arity is known upfront, Split does the same without looking at the call site.
package spread

import (
	"context"
	"iter"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/port/option"

	"go.llib.dev/spread/pkg/callerkit"
	"go.llib.dev/spread/pkg/splitkit"
	"go.llib.dev/spread/pkg/unpackkit"
)

// ErrSpread is returned when the call site can't be located or its assignment shape is not recognised.
const ErrSpread errorkit.Error = "ErrSpread"

// callSiteHeight is the distance between invoke and the statement calling a wrapped function.
const callSiteHeight = 2

// Func wraps fn, so each call splits the sequence fn produces at the arity of the calling assignment.
// fn is not called when the call site can't be classified.
//
// A returned Pair holds fn's sequence in a pull iterator once values are drawn from it.
// It is released when the sequence is exhausted, otherwise defer Pair.Close:
//
//	pair, err := digits(7) //spread:(a, b, c), rest
//	if err != nil {
//		return err
//	}
//	defer pair.Close()
func Func[T any](fn func() iter.Seq[T], opts ...Option) func() (splitkit.Pair[T], error) {
	c := option.ToConfig[Config](opts)
	return func() (splitkit.Pair[T], error) {
		return invoke(c, fn)
	}
}

func Func1[A, T any](fn func(A) iter.Seq[T], opts ...Option) func(A) (splitkit.Pair[T], error) {
	c := option.ToConfig[Config](opts)
	return func(a A) (splitkit.Pair[T], error) {
		return invoke(c, func() iter.Seq[T] { return fn(a) })
	}
}

func Func2[A, B, T any](fn func(A, B) iter.Seq[T], opts ...Option) func(A, B) (splitkit.Pair[T], error) {
	c := option.ToConfig[Config](opts)
	return func(a A, b B) (splitkit.Pair[T], error) {
		return invoke(c, func() iter.Seq[T] { return fn(a, b) })
	}
}

func FuncN[A, T any](fn func(...A) iter.Seq[T], opts ...Option) func(...A) (splitkit.Pair[T], error) {
	c := option.ToConfig[Config](opts)
	return func(as ...A) (splitkit.Pair[T], error) {
		return invoke(c, func() iter.Seq[T] { return fn(as...) })
	}
}

// Split splits seq with an explicit unpack count.
// unpackkit.All makes seq the prefix and leaves the remainder empty.
func Split[T any](seq iter.Seq[T], n unpackkit.Count) (splitkit.Pair[T], error) {
	switch {
	case n == unpackkit.All:
		return splitkit.SplitAll(seq), nil
	case n.IsFinite():
		return splitkit.Split(seq, int(n)), nil
	default:
		return splitkit.Pair[T]{}, ErrSpread.F("unpack count is %s", n)
	}
}

// invoke must be called directly by the wrapped function, as the call site is located by its height.
func invoke[T any](c Config, produce func() iter.Seq[T]) (splitkit.Pair[T], error) {
	frame, ok := callerkit.Caller(callSiteHeight + c.CallerSkip)
	if !ok {
		return splitkit.Pair[T]{}, ErrSpread.F("cannot find the calling frame, the wrapped function must be called from an assignment")
	}
	line, err := c.Cache.Line(context.Background(), frame.File, frame.Line)
	if err != nil {
		return splitkit.Pair[T]{}, ErrSpread.F("cannot read the call site at %s:%d: %w", frame.File, frame.Line, err)
	}
	n := unpackkit.ClassifyLine(line)
	if n == unpackkit.Unclassifiable {
		return splitkit.Pair[T]{}, ErrSpread.F("cannot find unpacked names in line %d of %s, is the assignment in the form `pair, err := fn() %s[a, b, c], rest`?",
			frame.Line, frame.File, unpackkit.Directive)
	}
	return Split(produce(), n)
}
