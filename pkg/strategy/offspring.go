package strategy

import (
	"math/rand"

	"github.com/wildfunctions/stdgp/pkg/individual"
)

// DefaultCrossoverRate splits offspring production evenly between crossover
// and mutation.
const DefaultCrossoverRate = 0.5

// SelectionConfig tells ProduceOffspring how to pick parents and which
// operator to favour.
type SelectionConfig struct {
	Selector      Selector
	CrossoverRate float64
}

// DefaultSelectionConfig pairs sel with the default crossover rate.
func DefaultSelectionConfig(sel Selector) SelectionConfig {
	return SelectionConfig{Selector: sel, CrossoverRate: DefaultCrossoverRate}
}

// ProduceOffspring draws one uniform value; below CrossoverRate it selects
// two parents and returns both crossover children, otherwise it selects one
// parent and returns its mutant. Offspring are not depth filtered.
func ProduceOffspring(rng *rand.Rand, population []*individual.Individual, cfg SelectionConfig) ([]*individual.Individual, error) {
	if cfg.Selector == nil {
		return nil, invalidf("selector is required")
	}
	if cfg.CrossoverRate < 0 || cfg.CrossoverRate > 1 {
		return nil, invalidf("crossover rate %v outside [0, 1]", cfg.CrossoverRate)
	}
	if len(population) == 0 {
		return nil, invalidf("offspring from empty population")
	}

	if rng.Float64() < cfg.CrossoverRate {
		a, err := cfg.Selector.Select(rng, population)
		if err != nil {
			return nil, err
		}
		b, err := cfg.Selector.Select(rng, population)
		if err != nil {
			return nil, err
		}
		c1, c2 := Crossover(rng, a, b)
		return []*individual.Individual{c1, c2}, nil
	}

	parent, err := cfg.Selector.Select(rng, population)
	if err != nil {
		return nil, err
	}
	return []*individual.Individual{Mutate(rng, parent)}, nil
}

// DiscardOverDepth keeps, in order, the Individuals whose depth is at most
// limit. An empty result is normal; callers ask for more offspring.
func DiscardOverDepth(individuals []*individual.Individual, limit int) []*individual.Individual {
	out := make([]*individual.Individual, 0, len(individuals))
	for _, ind := range individuals {
		if ind.Depth() <= limit {
			out = append(out, ind)
		}
	}
	return out
}
