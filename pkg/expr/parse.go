package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSyntax is returned by Parse for malformed input.
var ErrSyntax = errors.New("syntax error")

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokOp
	tokLParen
	tokRParen
	tokEquals
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

var precedence = map[string]int{
	"+": 1,
	"-": 1,
	"*": 2,
	"/": 2,
}

var opBySymbol = map[string]Op{
	"+": OpAdd,
	"*": OpMul,
	"-": OpSub,
	"/": OpDiv,
}

// Parse reads an expression as produced by Render: integers, + - * /,
// parentheses and an optional trailing "= value". Operators bind with the
// usual precedence and associate to the left.
//
// It returns the tree, whose leaves are indexed in order of appearance,
// and the stated value, or the computed value when none is stated.
// Operations the search would never produce (a negative difference, an
// inexact quotient) are reported as ErrNotOffered.
func Parse(s string) (Node, int64, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, 0, err
	}
	p := &parser{tokens: toks}
	node, err := p.parseBinary(1)
	if err != nil {
		return nil, 0, err
	}
	value := node.Value()
	if t, ok := p.peek(); ok {
		if t.kind != tokEquals {
			return nil, 0, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, t.text, t.pos)
		}
		p.next()
		t, ok = p.next()
		if !ok || t.kind != tokNumber {
			return nil, 0, fmt.Errorf("%w: expected value after '='", ErrSyntax)
		}
		if value, err = strconv.ParseInt(t.text, 10, 64); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		if t, ok := p.peek(); ok {
			return nil, 0, fmt.Errorf("%w: trailing %q at %d", ErrSyntax, t.text, t.pos)
		}
	}
	return node, value, nil
}

func tokenize(s string) ([]token, error) {
	var toks []token
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c >= '0' && c <= '9':
			j := i
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			toks = append(toks, token{kind: tokNumber, text: s[i:j], pos: i})
			i = j
		case strings.IndexByte("+-*/", c) >= 0:
			toks = append(toks, token{kind: tokOp, text: string(c), pos: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		case c == '=':
			toks = append(toks, token{kind: tokEquals, text: "=", pos: i})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected character %q at %d", ErrSyntax, c, i)
		}
	}
	return toks, nil
}

type parser struct {
	tokens  []token
	current int
	leaves  int
}

func (p *parser) peek() (token, bool) {
	if p.current >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.current], true
}

func (p *parser) next() (token, bool) {
	t, ok := p.peek()
	if ok {
		p.current++
	}
	return t, ok
}

func (p *parser) parseBinary(minPrec int) (Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOp || precedence[t.text] < minPrec {
			return left, nil
		}
		p.next()
		right, err := p.parseBinary(precedence[t.text] + 1)
		if err != nil {
			return nil, err
		}
		op := opBySymbol[t.text]
		v, err := evalOrdered(op, left.Value(), right.Value())
		if err != nil {
			return nil, err
		}
		left = &Combination{Op: op, Left: left, Right: right, Result: v}
	}
}

func (p *parser) parsePrimary() (Node, error) {
	t, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("%w: unexpected end of input", ErrSyntax)
	}
	switch t.kind {
	case tokNumber:
		v, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		leaf := &Leaf{Val: v, Index: p.leaves}
		p.leaves++
		return leaf, nil
	case tokLParen:
		node, err := p.parseBinary(1)
		if err != nil {
			return nil, err
		}
		if t, ok := p.next(); !ok || t.kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')'", ErrSyntax)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, t.text, t.pos)
	}
}
