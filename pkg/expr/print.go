package expr

import (
	"fmt"
	"strconv"
)

var opSymbols = map[Op]string{
	OpAdd: "+",
	OpMul: "*",
	OpSub: "-",
	OpDiv: "/",
}

func (op Op) String() string {
	s, ok := opSymbols[op]
	if !ok {
		panic(fmt.Sprintf("expr: unknown operator %d", int(op)))
	}
	return s
}

// String methods

func (l *Leaf) String() string {
	return strconv.FormatInt(l.Val, 10)
}

func (c *Combination) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left.String(), c.Op, c.Right.String())
}

// Render returns the fully parenthesized expression for c followed by its
// value, e.g. "(4 + 1) * 4 = 20". The outermost operation is not wrapped.
func Render(c *Combination) string {
	return fmt.Sprintf("%s %s %s = %d", c.Left.String(), c.Op, c.Right.String(), c.Result)
}

// RenderChain renders c from its ancestry alone, ignoring Left and Right.
//
// Every step of the chain starts with labels equal to its operand values.
// Walking oldest first, each step's text replaces the first later operand,
// left before right, whose value equals the step's result. Values that
// occur twice in the pool can be attributed to the wrong step; Render does
// not have that problem and should be preferred.
func RenderChain(c *Combination) string {
	chain := c.Chain()
	labels := make([][2]string, len(chain))
	for i, step := range chain {
		labels[i] = [2]string{
			strconv.FormatInt(step.Left.Value(), 10),
			strconv.FormatInt(step.Right.Value(), 10),
		}
	}
	for i := 0; i < len(chain)-1; i++ {
		text := fmt.Sprintf("(%s %s %s)", labels[i][0], chain[i].Op, labels[i][1])
		for j := i + 1; j < len(chain); j++ {
			if chain[i].Result == chain[j].Left.Value() {
				labels[j][0] = text
				break
			}
			if chain[i].Result == chain[j].Right.Value() {
				labels[j][1] = text
				break
			}
		}
	}
	last := len(chain) - 1
	return fmt.Sprintf("%s %s %s = %d", labels[last][0], c.Op, labels[last][1], c.Result)
}

// LaTeX methods

func (l *Leaf) LaTeX() string {
	return strconv.FormatInt(l.Val, 10)
}

func (c *Combination) LaTeX() string {
	left := c.Left.LaTeX()
	right := c.Right.LaTeX()
	switch c.Op {
	case OpAdd:
		return fmt.Sprintf("\\left(%s + %s\\right)", left, right)
	case OpSub:
		return fmt.Sprintf("\\left(%s - %s\\right)", left, right)
	case OpMul:
		return fmt.Sprintf("%s \\cdot %s", wrapLaTeX(c.Left, left), wrapLaTeX(c.Right, right))
	case OpDiv:
		return fmt.Sprintf("\\frac{%s}{%s}", left, right)
	default:
		panic(fmt.Sprintf("expr: unknown operator %d", int(c.Op)))
	}
}

// wrapLaTeX parenthesizes a product operand that is itself a product, so
// the grouping chosen by the search stays visible.
func wrapLaTeX(n Node, s string) string {
	if c, ok := n.(*Combination); ok && c.Op == OpMul {
		return "\\left(" + s + "\\right)"
	}
	return s
}
