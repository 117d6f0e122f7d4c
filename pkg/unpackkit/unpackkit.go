// Package unpackkit classifies destructuring assignments.
//
// The recognised shape is a single assignment whose target is a pair of
// a names pattern and a remainder name:
//
//	[a, b, c], rest = produce()
//	(a, *b, c), rest = produce()
//	(), rest = produce()
//
// The names pattern tells how many leading values the caller wants,
// or that it gathers everything when it holds a starred slot.
// List and tuple spelling are equivalent.
package unpackkit

import (
	"go/token"
	"strconv"
	"strings"
)

// Count is the result of classifying an assignment.
// Non-negative values are the number of leading names.
type Count int

const (
	// Unclassifiable means the assignment doesn't have the recognised shape.
	Unclassifiable Count = -1
	// All means the names pattern has a gather slot and consumes every value.
	All Count = -2
)

func (c Count) String() string {
	switch {
	case c == All:
		return "all"
	case c < 0:
		return "unclassifiable"
	default:
		return strconv.Itoa(int(c))
	}
}

// IsFinite reports whether c names a fixed number of leading values.
func (c Count) IsFinite() bool { return 0 <= c }

// Classify parses stmt as a single assignment statement and classifies its target.
//
// Targets may carry attribute, subscript and call accessors, as in "(f().x, m['k']), rest".
// The right-hand side must be a single expression with balanced brackets,
// and the statement may end with one semicolon.
// Chained, augmented and annotated assignments, multiple statements,
// blank and comment-only lines, and anything that fails to parse are Unclassifiable.
func Classify(stmt string) Count {
	toks, ok := scan(strings.TrimSpace(stmt))
	if !ok || len(toks) == 0 {
		return Unclassifiable
	}
	p := &patternParser{toks: toks}
	elts, comma, ok := p.targetList(token.ASSIGN)
	if !ok || len(elts) == 0 || p.next().tok != token.ASSIGN {
		return Unclassifiable
	}
	if !p.expression() {
		return Unclassifiable
	}
	return classify(elts, comma)
}

// ClassifyTarget classifies a bare assignment target such as "(a, b), rest".
func ClassifyTarget(target string) Count {
	toks, ok := scan(strings.TrimSpace(target))
	if !ok || len(toks) == 0 {
		return Unclassifiable
	}
	p := &patternParser{toks: toks}
	elts, comma, ok := p.targetList(token.EOF)
	if !ok || len(elts) == 0 || p.peek() != token.EOF {
		return Unclassifiable
	}
	return classify(elts, comma)
}

func classify(elts []target, comma bool) Count {
	top := target{kind: tuple, elts: elts}
	if !comma {
		top = elts[0]
	}
	if !top.isSequence() || len(top.elts) != 2 {
		return Unclassifiable
	}
	names := top.elts[0]
	if !names.isSequence() {
		return Unclassifiable
	}
	for _, elt := range names.elts {
		if elt.kind == starred {
			return All
		}
	}
	return Count(len(names.elts))
}
