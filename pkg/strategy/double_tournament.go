package strategy

import (
	"math/rand"

	"github.com/wildfunctions/stdgp/pkg/individual"
)

func init() {
	Register("double_tournament", func(p Params) Selector {
		return &DoubleTournamentSelector{Config: DoubleTournamentConfig{
			TournamentSize: p.TournamentSize,
			Sf:             p.Sf,
			Sp:             p.Sp,
			Switch:         p.Switch,
			Quality:        p.Quality,
		}}
	})
}

// DoubleTournamentConfig parameterises DoubleTournament.
type DoubleTournamentConfig struct {
	// TournamentSize is the size of each qualifying tournament.
	TournamentSize int
	// Sf is the fitness stage parameter: the number of fitness qualifiers,
	// or the draws of the final fitness tournament when Switch is set.
	Sf int
	// Sp is the parsimony stage parameter: the draws of the final size
	// tournament, or the number of size qualifiers when Switch is set.
	Sp int
	// Switch qualifies on size first and picks the final winner on fitness.
	Switch bool
	// Quality compares fitness; nil ranks by population index.
	Quality Quality
}

// DoubleTournamentSelector applies DoubleTournament with a fixed config.
type DoubleTournamentSelector struct {
	Config DoubleTournamentConfig
}

func (s *DoubleTournamentSelector) Name() string { return "double_tournament" }

func (s *DoubleTournamentSelector) Select(rng *rand.Rand, population []*individual.Individual) (*individual.Individual, error) {
	return DoubleTournament(rng, population, s.Config)
}

// DoubleTournament trades fitness against program size. Without Switch it
// runs Sf fitness tournaments to qualify Sf candidates, then returns the
// smallest of Sp draws from them. With Switch it qualifies Sp candidates by
// size tournaments and returns the fittest of Sf draws from them. Every
// stage samples with replacement and ties go to the first drawn.
func DoubleTournament(rng *rand.Rand, population []*individual.Individual, cfg DoubleTournamentConfig) (*individual.Individual, error) {
	if len(population) == 0 {
		return nil, invalidf("double tournament on empty population")
	}
	if cfg.TournamentSize < 1 {
		return nil, invalidf("tournament size %d < 1", cfg.TournamentSize)
	}
	if cfg.Sf < 1 || cfg.Sp < 1 {
		return nil, invalidf("double tournament sizes Sf=%d Sp=%d must be >= 1", cfg.Sf, cfg.Sp)
	}

	byFitness := fitter(population, cfg.Quality)
	bySize := smaller(population)

	qualify, final := byFitness, bySize
	qualifiers, draws := cfg.Sf, cfg.Sp
	if cfg.Switch {
		qualify, final = bySize, byFitness
		qualifiers, draws = cfg.Sp, cfg.Sf
	}

	pool := make([]int, qualifiers)
	for i := range pool {
		pool[i] = contest(rng, len(population), cfg.TournamentSize, identity, qualify)
	}
	at := func(i int) int { return pool[i] }
	return population[contest(rng, len(pool), draws, at, final)], nil
}
