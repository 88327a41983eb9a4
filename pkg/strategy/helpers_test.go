package strategy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/stdgp/pkg/expr"
	"github.com/wildfunctions/stdgp/pkg/individual"
	"github.com/wildfunctions/stdgp/pkg/pool"
)

// scriptedSource replays vals, then falls back to a seeded source.
type scriptedSource struct {
	vals     []int64
	pos      int
	fallback rand.Source
}

func (s *scriptedSource) Int63() int64 {
	if s.pos < len(s.vals) {
		v := s.vals[s.pos]
		s.pos++
		return v
	}
	return s.fallback.Int63()
}

func (s *scriptedSource) Seed(int64) {}

func scripted(vals ...int64) *rand.Rand {
	return rand.New(&scriptedSource{vals: vals, fallback: rand.NewSource(1)})
}

// pick makes rng.Intn(n) return i for any n > i.
func pick(i int) int64 { return int64(i) << 32 }

// coin makes rng.Float64() return approximately f.
func coin(f float64) int64 { return int64(f * (1 << 63)) }

func testConfig(t *testing.T) individual.Config {
	t.Helper()
	p, err := pool.Get("algebraic", []string{"x", "y"})
	require.NoError(t, err)
	return individual.Config{
		Pool:        p,
		MaxDepth:    4,
		ModelName:   individual.ModelRegressor,
		FitnessType: individual.FitnessRMSE,
	}
}

// chain builds a tree of exactly size nodes: size-1 negations over x.
func chain(size int) expr.ExprNode {
	var node expr.ExprNode = &expr.VarNode{Index: 0, Name: "x"}
	for i := 1; i < size; i++ {
		node = &expr.UnaryNode{Op: expr.OpNeg, Child: node}
	}
	return node
}

// population builds Individuals with the given sizes, sorted best first with
// strictly decreasing fitness.
func population(t *testing.T, sizes ...int) []*individual.Individual {
	t.Helper()
	cfg := testConfig(t)
	pop := make([]*individual.Individual, len(sizes))
	for i, s := range sizes {
		pop[i] = individual.New(cfg, chain(s))
		pop[i].SetFitness(-float64(i))
	}
	return pop
}

func randomPopulation(t *testing.T, rng *rand.Rand, n int) []*individual.Individual {
	t.Helper()
	cfg := testConfig(t)
	pop := make([]*individual.Individual, n)
	for i := range pop {
		pop[i] = individual.Grow(cfg, rng, 3)
		pop[i].SetFitness(-float64(i))
	}
	return pop
}
