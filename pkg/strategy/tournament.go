package strategy

import (
	"math/rand"

	"github.com/wildfunctions/stdgp/pkg/individual"
)

func init() {
	Register("tournament", func(p Params) Selector {
		return &TournamentSelector{Size: p.TournamentSize, Quality: p.Quality}
	})
}

// TournamentSelector runs a single tournament of Size draws.
type TournamentSelector struct {
	Size    int
	Quality Quality
}

func (s *TournamentSelector) Name() string { return "tournament" }

func (s *TournamentSelector) Select(rng *rand.Rand, population []*individual.Individual) (*individual.Individual, error) {
	return Tournament(rng, population, s.Size, s.Quality)
}

// Tournament draws k members with replacement and returns the best. With a
// nil quality the population must be sorted best first and the lowest index
// wins; otherwise quality decides. Ties go to the first drawn.
func Tournament(rng *rand.Rand, population []*individual.Individual, k int, quality Quality) (*individual.Individual, error) {
	if len(population) == 0 {
		return nil, invalidf("tournament on empty population")
	}
	if k < 1 {
		return nil, invalidf("tournament size %d < 1", k)
	}
	best := contest(rng, len(population), k, identity, fitter(population, quality))
	return population[best], nil
}

// Elite returns the first n members of a population sorted best first. The
// slice is new; the Individuals are shared, so callers that reinsert them
// into another generation should Clone them.
func Elite(population []*individual.Individual, n int) ([]*individual.Individual, error) {
	if n < 0 || n > len(population) {
		return nil, invalidf("elite size %d outside [0, %d]", n, len(population))
	}
	out := make([]*individual.Individual, n)
	copy(out, population[:n])
	return out, nil
}
