package expr

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotOffered is returned by Eval when a tree contains an operation
	// the search would never produce.
	ErrNotOffered = errors.New("operation not offered")
)

// Apply computes op over a and b after normalizing their order.
//
// Subtraction puts the larger value on the left, so the result is never
// negative. Division is offered only when one value divides the other
// exactly and the divisor is non-zero: a/b is preferred, then b/a.
// Negative operands and results that would overflow int64 are not offered.
func Apply(op Op, a, b int64) (left, right, result int64, ok bool) {
	if a < 0 || b < 0 {
		return 0, 0, 0, false
	}
	switch op {
	case OpAdd:
		if a > math.MaxInt64-b {
			return 0, 0, 0, false
		}
		return a, b, a + b, true
	case OpMul:
		if a != 0 && b > math.MaxInt64/a {
			return 0, 0, 0, false
		}
		return a, b, a * b, true
	case OpSub:
		if b > a {
			a, b = b, a
		}
		return a, b, a - b, true
	case OpDiv:
		if b != 0 && a%b == 0 {
			return a, b, a / b, true
		}
		if a != 0 && b%a == 0 {
			return b, a, b / a, true
		}
		return 0, 0, 0, false
	default:
		panic(fmt.Sprintf("expr: unknown operator %d", int(op)))
	}
}

// Eval recomputes the value of node from its leaves. Unlike Apply it does
// not reorder operands: a subtraction or division written in the wrong
// order is an error.
func Eval(node Node) (int64, error) {
	switch n := node.(type) {
	case *Leaf:
		return n.Val, nil
	case *Combination:
		l, err := Eval(n.Left)
		if err != nil {
			return 0, err
		}
		r, err := Eval(n.Right)
		if err != nil {
			return 0, err
		}
		return evalOrdered(n.Op, l, r)
	default:
		return 0, fmt.Errorf("unsupported node %T", node)
	}
}

func evalOrdered(op Op, l, r int64) (int64, error) {
	left, right, v, ok := Apply(op, l, r)
	if !ok || left != l || right != r {
		return 0, fmt.Errorf("%w: %d %s %d", ErrNotOffered, l, op, r)
	}
	return v, nil
}

// Leaves returns the leaves of node from left to right.
func Leaves(node Node) []*Leaf {
	var out []*Leaf
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *Leaf:
			out = append(out, n)
		case *Combination:
			walk(n.Left)
			walk(n.Right)
		}
	}
	walk(node)
	return out
}
