package pool

import (
	"math"
	"math/rand"

	"github.com/wildfunctions/stdgp/pkg/expr"
)

func init() {
	Register("kitchensink", func(terminals []string) Pool {
		return &KitchenSinkPool{terminalSet: newTerminalSet(terminals, kitchenSinkConstants)}
	})
}

// KitchenSinkPool extends algebraic with sin, cos, protected log and exp.
type KitchenSinkPool struct {
	terminalSet
}

var kitchenSinkConstants = []float64{0.5, 1, 2, 3, 5, 10, math.Pi}

func (p *KitchenSinkPool) Name() string { return "kitchensink" }

var kitchenSinkUnary = []expr.UnaryOp{
	expr.OpNeg,
	expr.OpAbs,
	expr.OpSqrt,
	expr.OpSin,
	expr.OpCos,
	expr.OpLog,
	expr.OpExp,
}

func (p *KitchenSinkPool) RandomUnary(rng *rand.Rand) (expr.UnaryOp, bool) {
	return kitchenSinkUnary[rng.Intn(len(kitchenSinkUnary))], true
}

var kitchenSinkBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
	expr.OpDiv,
	expr.OpMax,
	expr.OpMin,
}

func (p *KitchenSinkPool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return kitchenSinkBinary[rng.Intn(len(kitchenSinkBinary))]
}

func (p *KitchenSinkPool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth)
}
