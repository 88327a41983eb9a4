package strategy

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/stdgp/pkg/expr"
	"github.com/wildfunctions/stdgp/pkg/individual"
	"github.com/wildfunctions/stdgp/pkg/pool"
)

func sortedSymbols(inds ...*individual.Individual) []string {
	var out []string
	for _, ind := range inds {
		out = append(out, expr.Symbols(ind.Head())...)
	}
	sort.Strings(out)
	return out
}

func TestCrossover_TwoChildrenSameSymbols(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cfg := testConfig(t)

	for i := 0; i < 200; i++ {
		a := individual.Grow(cfg, rng, 4)
		b := individual.Grow(cfg, rng, 4)
		beforeA, beforeB := a.String(), b.String()

		c1, c2 := Crossover(rng, a, b)
		require.NotNil(t, c1)
		require.NotNil(t, c2)

		assert.Equal(t, sortedSymbols(a, b), sortedSymbols(c1, c2))
		assert.Equal(t, a.Size()+b.Size(), c1.Size()+c2.Size())
		assert.Equal(t, beforeA, a.String(), "parent a must not change")
		assert.Equal(t, beforeB, b.String(), "parent b must not change")
		assert.False(t, c1.Evaluated())
		assert.False(t, c2.Evaluated())
	}
}

func TestCrossover_ChildrenKeepOwnParentConfig(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cfgA := testConfig(t)

	p, err := pool.Get("kitchensink", []string{"x", "y"})
	require.NoError(t, err)
	cfgB := individual.Config{
		Pool:        p,
		MaxDepth:    7,
		ModelName:   individual.ModelThresholdClassifier,
		FitnessType: individual.FitnessAccuracy,
	}

	a := individual.Grow(cfgA, rng, 3)
	b := individual.Grow(cfgB, rng, 3)
	c1, c2 := Crossover(rng, a, b)

	assert.Equal(t, cfgA, c1.Config())
	assert.Equal(t, cfgB, c2.Config())
}

func TestCrossover_RootSwap(t *testing.T) {
	cfg := testConfig(t)
	a := individual.New(cfg, &expr.ConstNode{Val: 1})
	b := individual.New(cfg, &expr.VarNode{Index: 0, Name: "x"})

	c1, c2 := Crossover(rand.New(rand.NewSource(1)), a, b)
	assert.Equal(t, "x", c1.String())
	assert.Equal(t, "1", c2.String())
}

func TestMutate_SingleTerminal(t *testing.T) {
	cfg := testConfig(t)
	rng := rand.New(rand.NewSource(8))

	for i := 0; i < 200; i++ {
		parent := individual.New(cfg, &expr.VarNode{Index: 1, Name: "y"})
		child := Mutate(rng, parent)

		require.NotNil(t, child)
		assert.LessOrEqual(t, child.Depth(), cfg.MaxDepth)
		assert.Equal(t, cfg, child.Config())
		assert.Equal(t, "y", parent.String())
	}
}

func TestMutate_ParentUntouched(t *testing.T) {
	cfg := testConfig(t)
	rng := rand.New(rand.NewSource(21))

	for i := 0; i < 200; i++ {
		parent := individual.Grow(cfg, rng, 4)
		parent.SetFitness(-3)
		before := parent.String()

		child := Mutate(rng, parent)
		assert.Equal(t, before, parent.String())
		assert.NotEqual(t, parent.ID, child.ID)
		assert.False(t, child.Evaluated())
		// Grown subtree is bounded, so the child can be at most depth(parent)+MaxDepth.
		assert.LessOrEqual(t, child.Depth(), parent.Depth()+cfg.MaxDepth)
	}
}

func TestProduceOffspring_CoinSelectsOperator(t *testing.T) {
	pop := population(t, 3, 5, 2, 9)
	sel, err := Get("tournament", Params{TournamentSize: 2})
	require.NoError(t, err)
	cfg := DefaultSelectionConfig(sel)

	kids, err := ProduceOffspring(scripted(coin(0.25)), pop, cfg)
	require.NoError(t, err)
	assert.Len(t, kids, 2)

	kids, err = ProduceOffspring(scripted(coin(0.75)), pop, cfg)
	require.NoError(t, err)
	assert.Len(t, kids, 1)
}

func TestProduceOffspring_CrossoverRateExtremes(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	pop := randomPopulation(t, rng, 10)
	sel := &TournamentSelector{Size: 3}

	for i := 0; i < 50; i++ {
		kids, err := ProduceOffspring(rng, pop, SelectionConfig{Selector: sel, CrossoverRate: 1})
		require.NoError(t, err)
		assert.Len(t, kids, 2)

		kids, err = ProduceOffspring(rng, pop, SelectionConfig{Selector: sel, CrossoverRate: 0})
		require.NoError(t, err)
		assert.Len(t, kids, 1)
	}
}

func TestProduceOffspring_BothOperatorsUsed(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	pop := randomPopulation(t, rng, 10)
	cfg := DefaultSelectionConfig(&DoubleTournamentSelector{Config: DoubleTournamentConfig{TournamentSize: 3, Sf: 2, Sp: 2}})

	counts := map[int]int{}
	for i := 0; i < 400; i++ {
		kids, err := ProduceOffspring(rng, pop, cfg)
		require.NoError(t, err)
		counts[len(kids)]++
	}
	assert.Len(t, counts, 2)
	assert.InDelta(t, 200, counts[2], 60)
}

func TestProduceOffspring_InvalidArguments(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pop := population(t, 3, 5)
	sel := &TournamentSelector{Size: 2}

	_, err := ProduceOffspring(rng, pop, SelectionConfig{CrossoverRate: 0.5})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ProduceOffspring(rng, pop, SelectionConfig{Selector: sel, CrossoverRate: 1.5})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ProduceOffspring(rng, nil, DefaultSelectionConfig(sel))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ProduceOffspring(rng, pop, SelectionConfig{Selector: &TournamentSelector{Size: 0}, CrossoverRate: 0})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestProduceOffspring_Deterministic(t *testing.T) {
	run := func() []string {
		rng := rand.New(rand.NewSource(99))
		pop := randomPopulation(t, rng, 12)
		sel := &DoubleTournamentSelector{Config: DoubleTournamentConfig{TournamentSize: 2, Sf: 3, Sp: 2}}

		var out []string
		for i := 0; i < 30; i++ {
			kids, err := ProduceOffspring(rng, pop, DefaultSelectionConfig(sel))
			require.NoError(t, err)
			for _, k := range DiscardOverDepth(kids, 5) {
				out = append(out, k.String())
			}
		}
		return out
	}
	assert.Equal(t, run(), run())
}

func TestDiscardOverDepth(t *testing.T) {
	inds := population(t, 1, 6, 3, 8, 2) // depths 0, 5, 2, 7, 1

	got := DiscardOverDepth(inds, 2)
	require.Len(t, got, 3)
	assert.Same(t, inds[0], got[0])
	assert.Same(t, inds[2], got[1])
	assert.Same(t, inds[4], got[2])
	for _, ind := range got {
		assert.LessOrEqual(t, ind.Depth(), 2)
	}
	assert.Len(t, inds, 5, "input must not be modified")

	none := DiscardOverDepth(inds, -1)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	assert.Equal(t, inds, DiscardOverDepth(inds, 100))
}
