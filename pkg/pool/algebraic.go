package pool

import (
	"math/rand"

	"github.com/wildfunctions/stdgp/pkg/expr"
)

func init() {
	Register("algebraic", func(terminals []string) Pool {
		return &AlgebraicPool{terminalSet: newTerminalSet(terminals, algebraicConstants)}
	})
}

// AlgebraicPool extends arithmetic with negation, abs, protected sqrt,
// max and min.
type AlgebraicPool struct {
	terminalSet
}

var algebraicConstants = []float64{0.5, 1, 2, 3, 5, 10}

func (p *AlgebraicPool) Name() string { return "algebraic" }

var algebraicUnary = []expr.UnaryOp{
	expr.OpNeg,
	expr.OpAbs,
	expr.OpSqrt,
}

func (p *AlgebraicPool) RandomUnary(rng *rand.Rand) (expr.UnaryOp, bool) {
	return algebraicUnary[rng.Intn(len(algebraicUnary))], true
}

var algebraicBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
	expr.OpDiv,
	expr.OpMax,
	expr.OpMin,
}

func (p *AlgebraicPool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return algebraicBinary[rng.Intn(len(algebraicBinary))]
}

func (p *AlgebraicPool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth)
}
