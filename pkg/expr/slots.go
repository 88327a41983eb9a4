package expr

import "math/rand"

// CollectSlots returns pointers to every position in the tree, root first in
// pre-order. Writing through a slot replaces the subtree rooted there.
func CollectSlots(root *ExprNode) []*ExprNode {
	var result []*ExprNode
	collectSlotsHelper(root, &result)
	return result
}

func collectSlotsHelper(node *ExprNode, result *[]*ExprNode) {
	*result = append(*result, node)
	switch n := (*node).(type) {
	case *UnaryNode:
		collectSlotsHelper(&n.Child, result)
	case *BinaryNode:
		collectSlotsHelper(&n.Left, result)
		collectSlotsHelper(&n.Right, result)
	}
}

// RandomSlot picks one position uniformly over all nodes, root included.
func RandomSlot(root *ExprNode, rng *rand.Rand) *ExprNode {
	slots := CollectSlots(root)
	return slots[rng.Intn(len(slots))]
}

// Swap exchanges the subtrees held by two slots. The slots may live in
// different trees; each subtree takes the other's place in its parent.
func Swap(a, b *ExprNode) {
	*a, *b = *b, *a
}

// Symbols lists the symbol of every node in pre-order.
func Symbols(root ExprNode) []string {
	var out []string
	for _, slot := range CollectSlots(&root) {
		out = append(out, (*slot).Symbol())
	}
	return out
}
