package pool

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/wildfunctions/stdgp/pkg/expr"
)

// Pool provides the operator and terminal sets used to build program trees.
type Pool interface {
	Name() string
	Terminals() []string
	RandomLeaf(rng *rand.Rand) expr.ExprNode
	RandomUnary(rng *rand.Rand) (expr.UnaryOp, bool)
	RandomBinary(rng *rand.Rand) expr.BinaryOp
	RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode
}

var registry = map[string]func(terminals []string) Pool{}

// Register adds a pool constructor to the registry.
func Register(name string, constructor func(terminals []string) Pool) {
	registry[name] = constructor
}

// Get returns a pool by name, bound to the given terminal (feature) names.
func Get(name string, terminals []string) (Pool, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown pool: %s", name)
	}
	return ctor(terminals), nil
}

// Names returns all registered pool names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// constProb is the chance that a leaf is a constant rather than a feature.
const constProb = 0.25

// terminalSet is the leaf half of every pool: the dataset features plus a
// fixed list of constants.
type terminalSet struct {
	names     []string
	constants []float64
}

func newTerminalSet(names []string, constants []float64) terminalSet {
	cp := make([]string, len(names))
	copy(cp, names)
	return terminalSet{names: cp, constants: constants}
}

func (ts terminalSet) Terminals() []string {
	out := make([]string, len(ts.names))
	copy(out, ts.names)
	return out
}

func (ts terminalSet) RandomLeaf(rng *rand.Rand) expr.ExprNode {
	if len(ts.names) == 0 || rng.Float64() < constProb {
		return &expr.ConstNode{Val: ts.constants[rng.Intn(len(ts.constants))]}
	}
	i := rng.Intn(len(ts.names))
	return &expr.VarNode{Index: i, Name: ts.names[i]}
}

// randomTree is the grow procedure shared by all pools. The result never
// exceeds maxDepth (in edges).
func randomTree(p Pool, rng *rand.Rand, maxDepth int) expr.ExprNode {
	if maxDepth <= 0 {
		return p.RandomLeaf(rng)
	}
	// Bias toward leaves at shallow depths to keep trees small
	r := rng.Float64()
	switch {
	case r < 0.4:
		return p.RandomLeaf(rng)
	case r < 0.6:
		if op, ok := p.RandomUnary(rng); ok {
			return &expr.UnaryNode{
				Op:    op,
				Child: randomTree(p, rng, maxDepth-1),
			}
		}
	}
	return &expr.BinaryNode{
		Op:    p.RandomBinary(rng),
		Left:  randomTree(p, rng, maxDepth-1),
		Right: randomTree(p, rng, maxDepth-1),
	}
}
