package expr

func (v *VarNode) NodeCount() int   { return 1 }
func (c *ConstNode) NodeCount() int { return 1 }
func (u *UnaryNode) NodeCount() int { return 1 + u.Child.NodeCount() }
func (b *BinaryNode) NodeCount() int {
	return 1 + b.Left.NodeCount() + b.Right.NodeCount()
}

// Depth is the longest root-to-leaf path counted in edges, so a lone
// terminal has depth 0.
func (v *VarNode) Depth() int   { return 0 }
func (c *ConstNode) Depth() int { return 0 }
func (u *UnaryNode) Depth() int { return 1 + u.Child.Depth() }
func (b *BinaryNode) Depth() int {
	ld := b.Left.Depth()
	rd := b.Right.Depth()
	if ld > rd {
		return 1 + ld
	}
	return 1 + rd
}

// ContainsVar reports whether the tree reads any input feature.
func ContainsVar(node ExprNode) bool {
	switch n := node.(type) {
	case *VarNode:
		return true
	case *UnaryNode:
		return ContainsVar(n.Child)
	case *BinaryNode:
		return ContainsVar(n.Left) || ContainsVar(n.Right)
	default:
		return false
	}
}
