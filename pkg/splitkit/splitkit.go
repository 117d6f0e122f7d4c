// Package splitkit splits lazy sequences into a bounded prefix and a resumable remainder.
//
// # Summary
//
// A sequence's length is not known until it is fully iterated, thus it can range from zero to infinity.
// Split never assumes a finite source:
// the prefix draws its values when it is consumed,
// and the remainder continues from the same underlying producer.
//
// # Resources
//
// https://en.wikipedia.org/wiki/Iterator_pattern
package splitkit

import (
	"iter"

	"go.llib.dev/frameless/pkg/iterkit"
)

// Pair is the result of splitting a sequence.
//
// Prefix and Remainder are views over the same single-pass producer.
// Drained one after the other, they reproduce the source sequence in its original order.
// They are not safe for concurrent use.
type Pair[T any] struct {
	prefix    iter.Seq[T]
	remainder iter.Seq[T]
	close     func()
}

// Prefix returns the leading values of the split.
func (p Pair[T]) Prefix() iterkit.SingleUseSeq[T] {
	if p.prefix == nil {
		return iterkit.Empty[T]()
	}
	return p.prefix
}

// Remainder returns the values that follow the Prefix.
func (p Pair[T]) Remainder() iterkit.SingleUseSeq[T] {
	if p.remainder == nil {
		return iterkit.Empty[T]()
	}
	return p.remainder
}

// Close releases the underlying producer.
// Values not yet drawn are discarded.
func (p Pair[T]) Close() error {
	if p.close != nil {
		p.close()
	}
	return nil
}

// Split bounds the prefix to the first n values of seq,
// and positions the remainder right after them.
// A negative n is handled as zero.
//
// Nothing is drawn from seq until either the prefix or the remainder is consumed.
// The first draw starts seq in a pull iterator, which is released when seq is exhausted.
// A Pair that is abandoned before that keeps the iterator's goroutine parked,
// so call Pair.Close when you stop drawing early.
func Split[T any](seq iter.Seq[T], n int) Pair[T] {
	c := &cursor[T]{seq: seq, quota: max(n, 0)}
	return Pair[T]{
		prefix:    c.Prefix,
		remainder: c.Remainder,
		close:     c.Close,
	}
}

// SplitAll makes the whole of seq the prefix, and leaves the remainder permanently empty.
func SplitAll[T any](seq iter.Seq[T]) Pair[T] {
	if seq == nil {
		seq = iterkit.Empty[T]()
	}
	return Pair[T]{
		prefix:    seq,
		remainder: iterkit.Empty[T](),
	}
}
