package individual

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/wildfunctions/stdgp/pkg/expr"
	"github.com/wildfunctions/stdgp/pkg/pool"
)

// Config is the immutable configuration every Individual carries. It is
// copied by value onto each offspring.
type Config struct {
	Pool        pool.Pool // operator and terminal sets
	MaxDepth    int
	ModelName   string
	FitnessType string
}

// Individual is one candidate program: a tree plus its configuration and a
// cached fitness. Size and depth are computed from the tree at construction
// and the tree is never reshaped afterwards, so they cannot go stale.
type Individual struct {
	ID uuid.UUID

	cfg   Config
	head  expr.ExprNode
	size  int
	depth int

	fitness   float64
	evaluated bool
}

// New wraps head in a fresh, unevaluated Individual.
func New(cfg Config, head expr.ExprNode) *Individual {
	return &Individual{
		ID:      uuid.New(),
		cfg:     cfg,
		head:    head,
		size:    head.NodeCount(),
		depth:   head.Depth(),
		fitness: WorstFitness,
	}
}

// Grow builds a random Individual whose tree is at most depth edges deep.
func Grow(cfg Config, rng *rand.Rand, depth int) *Individual {
	return New(cfg, cfg.Pool.RandomTree(rng, depth))
}

// CloneWith returns a new Individual with this one's configuration wrapping
// tree. Fitness is unset.
func (ind *Individual) CloneWith(tree expr.ExprNode) *Individual {
	return New(ind.cfg, tree)
}

// Clone returns a deep copy that keeps the ID and cached fitness, used when
// an elite is carried into the next generation.
func (ind *Individual) Clone() *Individual {
	cp := *ind
	cp.head = ind.head.Clone()
	return &cp
}

// Config returns the Individual's configuration.
func (ind *Individual) Config() Config { return ind.cfg }

// Head returns the root of the tree. Callers must not modify it; use
// CopyHead to obtain a tree that can be reshaped.
func (ind *Individual) Head() expr.ExprNode { return ind.head }

// CopyHead returns a deep copy of the tree.
func (ind *Individual) CopyHead() expr.ExprNode { return ind.head.Clone() }

// Size returns the node count of the tree.
func (ind *Individual) Size() int { return ind.size }

// Depth returns the depth of the tree in edges.
func (ind *Individual) Depth() int { return ind.depth }

// Fitness returns the cached fitness, WorstFitness until Evaluate runs.
// Higher is better for every fitness type.
func (ind *Individual) Fitness() float64 { return ind.fitness }

// Evaluated reports whether the fitness cache is filled.
func (ind *Individual) Evaluated() bool { return ind.evaluated }

// String returns a human-readable representation.
func (ind *Individual) String() string {
	return ind.head.String()
}

// LaTeX returns a LaTeX representation.
func (ind *Individual) LaTeX() string {
	return ind.head.LaTeX()
}

// Summary is a one-line description with size, depth and fitness.
func (ind *Individual) Summary() string {
	return fmt.Sprintf("size=%d depth=%d fitness=%.6g | %s", ind.size, ind.depth, ind.fitness, ind.String())
}
