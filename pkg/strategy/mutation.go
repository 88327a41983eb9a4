package strategy

import (
	"math/rand"

	"github.com/wildfunctions/stdgp/pkg/expr"
	"github.com/wildfunctions/stdgp/pkg/individual"
)

// Mutate performs subtree mutation: it copies the parent's tree, picks one
// node uniformly and replaces the subtree there with one grown from the
// parent's pool, bounded by the parent's MaxDepth. The child may still end
// up deeper than MaxDepth when the replaced node is not the root.
func Mutate(rng *rand.Rand, parent *individual.Individual) *individual.Individual {
	cfg := parent.Config()
	head := parent.CopyHead()

	slot := expr.RandomSlot(&head, rng)
	*slot = cfg.Pool.RandomTree(rng, cfg.MaxDepth)

	return parent.CloneWith(head)
}
