package splitkit

import (
	"iter"
)

// cursor is a pull iterator shared between the prefix and the remainder of a Pair.
type cursor[T any] struct {
	seq  iter.Seq[T]
	next func() (T, bool)
	stop func()
	done bool
	// quota is the number of prefix values not yet drawn from seq.
	quota int
	// reserved holds prefix values that the remainder had to draw ahead of the prefix.
	reserved []T
}

func (c *cursor[T]) pull() (T, bool) {
	if c.done {
		var zero T
		return zero, false
	}
	if c.next == nil {
		if c.seq == nil {
			c.done = true
			var zero T
			return zero, false
		}
		c.next, c.stop = iter.Pull(c.seq)
	}
	v, ok := c.next()
	if !ok {
		c.Close()
	}
	return v, ok
}

func (c *cursor[T]) Prefix(yield func(T) bool) {
	for {
		if 0 < len(c.reserved) {
			v := c.reserved[0]
			c.reserved = c.reserved[1:]
			if !yield(v) {
				return
			}
			continue
		}
		if c.quota == 0 {
			return
		}
		v, ok := c.pull()
		if !ok {
			c.quota = 0
			return
		}
		c.quota--
		if !yield(v) {
			return
		}
	}
}

func (c *cursor[T]) Remainder(yield func(T) bool) {
	c.reserve()
	for {
		v, ok := c.pull()
		if !ok {
			return
		}
		if !yield(v) {
			return
		}
	}
}

// reserve draws the pending prefix values, so the remainder can't yield them.
func (c *cursor[T]) reserve() {
	for 0 < c.quota {
		v, ok := c.pull()
		if !ok {
			c.quota = 0
			return
		}
		c.quota--
		c.reserved = append(c.reserved, v)
	}
}

func (c *cursor[T]) Close() {
	if c.done {
		return
	}
	c.done = true
	if c.stop != nil {
		c.stop()
	}
}
