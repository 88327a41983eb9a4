package strategy

import (
	"math/rand"

	"github.com/wildfunctions/stdgp/pkg/expr"
	"github.com/wildfunctions/stdgp/pkg/individual"
)

// Crossover performs subtree crossover: it copies both parents' trees, picks
// one node uniformly from each copy (roots included) and swaps the subtrees
// rooted there. Each child keeps the configuration of the parent whose tree
// it started from. Depth limits are not enforced here.
func Crossover(rng *rand.Rand, a, b *individual.Individual) (*individual.Individual, *individual.Individual) {
	headA := a.CopyHead()
	headB := b.CopyHead()

	slotA := expr.RandomSlot(&headA, rng)
	slotB := expr.RandomSlot(&headB, rng)
	expr.Swap(slotA, slotB)

	return a.CloneWith(headA), b.CloneWith(headB)
}
