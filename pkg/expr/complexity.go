package expr

func (l *Leaf) NodeCount() int { return 1 }
func (c *Combination) NodeCount() int {
	return 1 + c.Left.NodeCount() + c.Right.NodeCount()
}

func (l *Leaf) Depth() int { return 1 }
func (c *Combination) Depth() int {
	ld := c.Left.Depth()
	rd := c.Right.Depth()
	if ld > rd {
		return 1 + ld
	}
	return 1 + rd
}

// Operations returns the number of binary operations in node.
func Operations(node Node) int {
	return (node.NodeCount() - 1) / 2
}
