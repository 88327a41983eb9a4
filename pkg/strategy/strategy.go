package strategy

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/wildfunctions/stdgp/pkg/individual"
)

// ErrInvalidArgument marks precondition violations: empty populations,
// non-positive tournament sizes, out-of-range counts.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Quality reports whether a is strictly better than b.
type Quality func(a, b *individual.Individual) bool

// FitnessQuality compares cached fitness, greater is better.
func FitnessQuality(a, b *individual.Individual) bool {
	return a.Fitness() > b.Fitness()
}

// Selector picks one parent from a population sorted best first.
type Selector interface {
	Name() string
	Select(rng *rand.Rand, population []*individual.Individual) (*individual.Individual, error)
}

// Params configures any registered selector. Fields a selector does not use
// are ignored.
type Params struct {
	TournamentSize int
	Sf             int
	Sp             int
	Switch         bool
	Quality        Quality // nil ranks by population index
}

var registry = map[string]func(Params) Selector{}

// Register adds a selector constructor to the registry.
func Register(name string, constructor func(Params) Selector) {
	registry[name] = constructor
}

// Get returns a selector by name.
func Get(name string, params Params) (Selector, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy: %s", name)
	}
	return ctor(params), nil
}

// Names returns all registered selector names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// contest draws `draws` entries uniformly with replacement from n
// candidates, mapped to population indices by at, and returns the best under
// better. The first drawn of equally good competitors wins.
func contest(rng *rand.Rand, n, draws int, at func(int) int, better func(a, b int) bool) int {
	best := at(rng.Intn(n))
	for i := 1; i < draws; i++ {
		c := at(rng.Intn(n))
		if better(c, best) {
			best = c
		}
	}
	return best
}

func identity(i int) int { return i }

// fitter orders population indices by quality, or by rank when quality is nil.
func fitter(population []*individual.Individual, quality Quality) func(a, b int) bool {
	if quality == nil {
		return func(a, b int) bool { return a < b }
	}
	return func(a, b int) bool { return quality(population[a], population[b]) }
}

// smaller orders population indices by program size.
func smaller(population []*individual.Individual) func(a, b int) bool {
	return func(a, b int) bool { return population[a].Size() < population[b].Size() }
}
