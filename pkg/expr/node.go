package expr

// Node is the interface for all expression tree nodes.
type Node interface {
	Value() int64
	String() string
	LaTeX() string
	NodeCount() int
	Depth() int
}

// Op identifies a binary operation. Declaration order is the order in
// which the search tries operators.
type Op int

const (
	OpAdd Op = iota
	OpMul
	OpSub
	OpDiv
)

// Ops lists every operator in search order.
var Ops = [...]Op{OpAdd, OpMul, OpSub, OpDiv}

// Leaf is an operand taken from the input set.
type Leaf struct {
	Val   int64
	Index int // position in the caller's input slice
}

// Combination applies a binary operation to two sub-expressions.
//
// Left and Right are stored in normalized order: the larger value on the
// left for subtraction, the dividend on the left for division. Ancestor is
// the combination made one step earlier on the same search path, nil for
// the first step. A Combination is never mutated after Combine returns it.
type Combination struct {
	Op          Op
	Left, Right Node
	Result      int64
	Ancestor    *Combination
}

func (l *Leaf) Value() int64        { return l.Val }
func (c *Combination) Value() int64 { return c.Result }

// Combine builds the combination of a and b under op, or reports false
// when op is not offered for these values (see Apply).
func Combine(op Op, a, b Node, ancestor *Combination) (*Combination, bool) {
	left, _, result, ok := Apply(op, a.Value(), b.Value())
	if !ok {
		return nil, false
	}
	if left != a.Value() {
		a, b = b, a
	}
	return &Combination{
		Op:       op,
		Left:     a,
		Right:    b,
		Result:   result,
		Ancestor: ancestor,
	}, true
}

// Chain returns the ancestry of c ordered oldest first, ending with c.
func (c *Combination) Chain() []*Combination {
	n := 0
	for cur := c; cur != nil; cur = cur.Ancestor {
		n++
	}
	chain := make([]*Combination, n)
	for cur := c; cur != nil; cur = cur.Ancestor {
		n--
		chain[n] = cur
	}
	return chain
}
