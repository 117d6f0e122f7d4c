package splitkit_test

import (
	"iter"
	"testing"

	"go.llib.dev/frameless/pkg/iterkit"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/let"

	"go.llib.dev/spread/pkg/splitkit"
)

// Source is a sequence that records how it was consumed.
type Source struct {
	Values   []int
	Infinite bool
	Produced int
	Stopped  bool
}

func (src *Source) Seq(yield func(int) bool) {
	defer func() { src.Stopped = true }()
	for i := 0; src.Infinite || i < len(src.Values); i++ {
		v := i
		if !src.Infinite {
			v = src.Values[i]
		}
		src.Produced++
		if !yield(v) {
			return
		}
	}
}

func ones() iter.Seq[int] {
	return func(yield func(int) bool) {
		for yield(1) {
		}
	}
}

func ExampleSplit() {
	pair := splitkit.Split(iterkit.FromSlice([]int{1, 2, 3, 4, 5, 6, 7}), 3)
	defer pair.Close()

	prefix := iterkit.Collect(pair.Prefix())       // []int{1, 2, 3}
	remainder := iterkit.Collect(pair.Remainder()) // []int{4, 5, 6, 7}
	_, _ = prefix, remainder
}

func TestSplit(t *testing.T) {
	s := testcase.NewSpec(t)

	var (
		source = let.Var(s, func(t *testcase.T) *Source {
			return &Source{Values: []int{1, 2, 3, 4, 5, 6, 7}}
		})
		n = let.Var(s, func(t *testcase.T) int {
			return 3
		})
		pair = let.Var(s, func(t *testcase.T) splitkit.Pair[int] {
			p := splitkit.Split(source.Get(t).Seq, n.Get(t))
			t.Cleanup(func() { _ = p.Close() })
			return p
		})
	)

	s.Then("the prefix holds the first n values", func(t *testcase.T) {
		assert.Equal(t, []int{1, 2, 3}, iterkit.Collect(pair.Get(t).Prefix()))
	})

	s.Then("the remainder continues after the prefix", func(t *testcase.T) {
		assert.Equal(t, []int{1, 2, 3}, iterkit.Collect(pair.Get(t).Prefix()))
		assert.Equal(t, []int{4, 5, 6, 7}, iterkit.Collect(pair.Get(t).Remainder()))
	})

	s.Then("draining the remainder first keeps the prefix intact", func(t *testcase.T) {
		assert.Equal(t, []int{4, 5, 6, 7}, iterkit.Collect(pair.Get(t).Remainder()))
		assert.Equal(t, []int{1, 2, 3}, iterkit.Collect(pair.Get(t).Prefix()))
	})

	s.Then("nothing is drawn before consumption", func(t *testcase.T) {
		pair.Get(t)
		assert.Equal(t, 0, source.Get(t).Produced)

		assert.Equal(t, []int{1}, iterkit.Collect(iterkit.Head(pair.Get(t).Prefix(), 1)))
		assert.Equal(t, 1, source.Get(t).Produced)
	})

	s.Then("prefix consumption can be resumed after stopping early", func(t *testcase.T) {
		assert.Equal(t, []int{1, 2}, iterkit.Collect(iterkit.Head(pair.Get(t).Prefix(), 2)))
		assert.Equal(t, []int{3}, iterkit.Collect(pair.Get(t).Prefix()))
		assert.Empty(t, iterkit.Collect(pair.Get(t).Prefix()))
	})

	s.Then("the producer is released once it is exhausted", func(t *testcase.T) {
		iterkit.Collect(pair.Get(t).Prefix())
		assert.False(t, source.Get(t).Stopped)
		iterkit.Collect(pair.Get(t).Remainder())
		assert.True(t, source.Get(t).Stopped)
	})

	s.Then("close releases the producer", func(t *testcase.T) {
		assert.Equal(t, []int{4}, iterkit.Collect(iterkit.Head(pair.Get(t).Remainder(), 1)))
		assert.NoError(t, pair.Get(t).Close())
		assert.True(t, source.Get(t).Stopped)
		assert.Empty(t, iterkit.Collect(pair.Get(t).Remainder()))
	})

	s.When("n is zero", func(s *testcase.Spec) {
		n.LetValue(s, 0)

		s.Then("the prefix is empty and the remainder has every value", func(t *testcase.T) {
			assert.Empty(t, iterkit.Collect(pair.Get(t).Prefix()))
			assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, iterkit.Collect(pair.Get(t).Remainder()))
		})

		s.Then("an abandoned remainder computes nothing", func(t *testcase.T) {
			iterkit.Collect(pair.Get(t).Prefix())
			assert.Equal(t, 0, source.Get(t).Produced)
		})
	})

	s.When("n is negative", func(s *testcase.Spec) {
		n.Let(s, func(t *testcase.T) int {
			return -1 * t.Random.IntBetween(1, 10)
		})

		s.Then("it is handled as zero", func(t *testcase.T) {
			assert.Empty(t, iterkit.Collect(pair.Get(t).Prefix()))
			assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, iterkit.Collect(pair.Get(t).Remainder()))
		})
	})

	s.When("n exceeds the length of the source", func(s *testcase.Spec) {
		n.LetValue(s, 10)

		s.Then("the prefix has every value and the remainder is empty", func(t *testcase.T) {
			assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, iterkit.Collect(pair.Get(t).Prefix()))
			assert.Empty(t, iterkit.Collect(pair.Get(t).Remainder()))
		})

		s.Then("the remainder is empty even when drained first", func(t *testcase.T) {
			assert.Empty(t, iterkit.Collect(pair.Get(t).Remainder()))
			assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, iterkit.Collect(pair.Get(t).Prefix()))
		})
	})

	s.When("the source is infinite", func(s *testcase.Spec) {
		source.Let(s, func(t *testcase.T) *Source {
			return &Source{Infinite: true}
		})

		s.Then("the remainder resumes right after the prefix", func(t *testcase.T) {
			assert.Equal(t, []int{0, 1, 2}, iterkit.Collect(pair.Get(t).Prefix()))
			assert.Equal(t, []int{3, 4, 5, 6, 7}, iterkit.Collect(iterkit.Head(pair.Get(t).Remainder(), 5)))
			assert.Equal(t, []int{8, 9}, iterkit.Collect(iterkit.Head(pair.Get(t).Remainder(), 2)))
		})

		s.Then("the remainder draws only what it yields", func(t *testcase.T) {
			iterkit.Collect(pair.Get(t).Prefix())
			iterkit.Collect(iterkit.Head(pair.Get(t).Remainder(), 4))
			assert.Equal(t, 3+4, source.Get(t).Produced)
		})
	})

	s.Test("prefix and remainder reproduce the source in either draining order", func(t *testcase.T) {
		values := make([]int, t.Random.IntBetween(1, 42))
		for i := range values {
			values[i] = t.Random.Int()
		}
		n := t.Random.IntBetween(0, len(values)+3)

		p1 := splitkit.Split(iterkit.FromSlice(values), n)
		got1 := append(iterkit.Collect(p1.Prefix()), iterkit.Collect(p1.Remainder())...)

		p2 := splitkit.Split(iterkit.FromSlice(values), n)
		rest := iterkit.Collect(p2.Remainder())
		got2 := append(iterkit.Collect(p2.Prefix()), rest...)

		assert.Equal(t, values, got1)
		assert.Equal(t, values, got2)
	})
}

func TestSplit_constantInfiniteSource(t *testing.T) {
	const n, k = 3, 10
	pair := splitkit.Split(ones(), n)
	defer pair.Close()

	assert.Equal(t, []int{1, 1, 1}, iterkit.Collect(pair.Prefix()))
	rest := iterkit.Collect(iterkit.Head(pair.Remainder(), k))
	assert.Equal(t, k, len(rest))
	for _, v := range rest {
		assert.Equal(t, 1, v)
	}
}

func TestSplitAll(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("the prefix is the whole source and the remainder is empty", func(t *testcase.T) {
		pair := splitkit.SplitAll(iterkit.FromSlice([]int{1, 2, 3, 4, 5, 6, 7}))
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, iterkit.Collect(pair.Prefix()))
		assert.Empty(t, iterkit.Collect(pair.Remainder()))
		assert.NoError(t, pair.Close())
	})

	s.Test("the remainder is empty before the prefix is consumed", func(t *testcase.T) {
		pair := splitkit.SplitAll(iterkit.FromSlice([]int{1, 2, 3}))
		assert.Empty(t, iterkit.Collect(pair.Remainder()))
		assert.Equal(t, []int{1, 2, 3}, iterkit.Collect(pair.Prefix()))
	})

	s.Test("an infinite source stays drawable through the prefix", func(t *testcase.T) {
		pair := splitkit.SplitAll(ones())
		assert.Equal(t, []int{1, 1, 1, 1, 1}, iterkit.Collect(iterkit.Head(pair.Prefix(), 5)))
		assert.Empty(t, iterkit.Collect(pair.Remainder()))
	})

	s.Test("nil source", func(t *testcase.T) {
		pair := splitkit.SplitAll[int](nil)
		assert.Empty(t, iterkit.Collect(pair.Prefix()))
		assert.Empty(t, iterkit.Collect(pair.Remainder()))
	})
}

func TestPair_zero(t *testing.T) {
	var pair splitkit.Pair[string]
	assert.Empty(t, iterkit.Collect(pair.Prefix()))
	assert.Empty(t, iterkit.Collect(pair.Remainder()))
	assert.NoError(t, pair.Close())
}
