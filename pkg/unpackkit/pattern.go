package unpackkit

import (
	"go/scanner"
	"go/token"
)

type lexeme struct {
	tok token.Token
	lit string
	off int
}

// scan tokenizes src. A '#' outside of literals starts a comment that runs to the end of src.
//
// Single quoted strings come out as CHAR tokens, and the scanner errors about their length are ignored.
func scan(src string) ([]lexeme, bool) {
	var (
		s      scanner.Scanner
		errs   []int
		fset   = token.NewFileSet()
		file   = fset.AddFile("", fset.Base(), len(src))
		lexems []lexeme
	)
	s.Init(file, []byte(src), func(pos token.Position, _ string) {
		errs = append(errs, pos.Offset)
	}, 0)
	for {
		reported := len(errs)
		pos, tok, lit := s.Scan()
		off := file.Offset(pos)
		switch {
		case tok == token.EOF:
			return lexems, len(errs) == 0
		case tok == token.ILLEGAL && lit == "#":
			for _, e := range errs {
				if e < off {
					return nil, false
				}
			}
			return lexems, true
		case tok == token.CHAR:
			errs = errs[:reported]
		case tok == token.SEMICOLON && lit == "\n":
			continue
		}
		lexems = append(lexems, lexeme{tok: tok, lit: lit, off: off})
	}
}

type kind int

const (
	name kind = iota
	starred
	tuple
	list
)

type target struct {
	kind kind
	elts []target
}

func (t target) isSequence() bool { return t.kind == tuple || t.kind == list }

type patternParser struct {
	toks []lexeme
	i    int
}

func (p *patternParser) peek() token.Token {
	if len(p.toks) <= p.i {
		return token.EOF
	}
	return p.toks[p.i].tok
}

func (p *patternParser) next() lexeme {
	if len(p.toks) <= p.i {
		return lexeme{tok: token.EOF}
	}
	l := p.toks[p.i]
	p.i++
	return l
}

// targetList parses comma separated targets until closing.
// comma reports whether at least one separating or trailing comma was present.
func (p *patternParser) targetList(closing token.Token) (elts []target, comma bool, ok bool) {
	var stars int
	for p.peek() != closing {
		t, ok := p.target()
		if !ok {
			return nil, false, false
		}
		if t.kind == starred {
			stars++
		}
		elts = append(elts, t)
		if p.peek() != token.COMMA {
			break
		}
		p.next()
		comma = true
	}
	if 1 < stars {
		return nil, false, false
	}
	return elts, comma, true
}

func (p *patternParser) target() (target, bool) {
	switch tok := p.peek(); {
	case tok == token.MUL:
		p.next()
		inner, ok := p.target()
		if !ok || inner.kind == starred {
			return target{}, false
		}
		return target{kind: starred}, true

	case tok == token.LPAREN:
		p.next()
		elts, comma, ok := p.targetList(token.RPAREN)
		if !ok || p.next().tok != token.RPAREN {
			return target{}, false
		}
		if len(elts) == 1 && !comma {
			// a parenthesized target, not a tuple
			return elts[0], elts[0].kind != starred
		}
		return target{kind: tuple, elts: elts}, true

	case tok == token.LBRACK:
		p.next()
		elts, _, ok := p.targetList(token.RBRACK)
		if !ok || p.next().tok != token.RBRACK {
			return target{}, false
		}
		return target{kind: list, elts: elts}, true

	case tok == token.IDENT || tok.IsKeyword():
		p.next()
		return target{kind: name}, p.trailers()

	default:
		return target{}, false
	}
}

// trailers consumes the attribute, subscript and call accessors that follow a name.
// A call can't be assigned to, so the last accessor must not be a call.
func (p *patternParser) trailers() bool {
	var call bool
	for {
		switch p.peek() {
		case token.PERIOD:
			p.next()
			if tok := p.next().tok; tok != token.IDENT && !tok.IsKeyword() {
				return false
			}
			call = false
		case token.LBRACK:
			p.next()
			if p.peek() == token.RBRACK || !p.skipBalanced(token.RBRACK) {
				return false
			}
			call = false
		case token.LPAREN:
			p.next()
			if !p.skipBalanced(token.RPAREN) {
				return false
			}
			call = true
		default:
			return !call
		}
	}
}

func (p *patternParser) skipBalanced(closing token.Token) bool {
	for {
		switch tok := p.next().tok; tok {
		case closing:
			return true
		case token.EOF, token.RPAREN, token.RBRACK, token.RBRACE:
			return false
		case token.LPAREN:
			if !p.skipBalanced(token.RPAREN) {
				return false
			}
		case token.LBRACK:
			if !p.skipBalanced(token.RBRACK) {
				return false
			}
		case token.LBRACE:
			if !p.skipBalanced(token.RBRACE) {
				return false
			}
		}
	}
}

// expression consumes the right-hand side of an assignment.
// It must be a non-empty run of balanced tokens without a further top-level assignment,
// optionally closed by a single semicolon.
func (p *patternParser) expression() bool {
	var (
		closers []token.Token
		empty   = true
	)
	for p.peek() != token.EOF {
		l := p.next()
		switch {
		case l.tok == token.LPAREN:
			closers = append(closers, token.RPAREN)
		case l.tok == token.LBRACK:
			closers = append(closers, token.RBRACK)
		case l.tok == token.LBRACE:
			closers = append(closers, token.RBRACE)
		case l.tok == token.RPAREN || l.tok == token.RBRACK || l.tok == token.RBRACE:
			if len(closers) == 0 || closers[len(closers)-1] != l.tok {
				return false
			}
			closers = closers[:len(closers)-1]
		case len(closers) == 0 && l.tok == token.SEMICOLON:
			return !empty && p.peek() == token.EOF
		case len(closers) == 0 && isAssignment(l.tok):
			return false
		}
		empty = false
	}
	return !empty && len(closers) == 0
}

func isAssignment(tok token.Token) bool {
	return tok == token.ASSIGN || tok == token.DEFINE ||
		token.ADD_ASSIGN <= tok && tok <= token.AND_NOT_ASSIGN
}
