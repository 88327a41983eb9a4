package pool

import (
	"math/rand"

	"github.com/wildfunctions/stdgp/pkg/expr"
)

func init() {
	Register("arithmetic", func(terminals []string) Pool {
		return &ArithmeticPool{terminalSet: newTerminalSet(terminals, arithmeticConstants)}
	})
}

// ArithmeticPool is the classic GP function set: +, -, * and protected /.
type ArithmeticPool struct {
	terminalSet
}

var arithmeticConstants = []float64{1, 2, 3, 4, 5}

func (p *ArithmeticPool) Name() string { return "arithmetic" }

func (p *ArithmeticPool) RandomUnary(rng *rand.Rand) (expr.UnaryOp, bool) {
	return 0, false
}

var arithmeticBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
	expr.OpDiv,
}

func (p *ArithmeticPool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return arithmeticBinary[rng.Intn(len(arithmeticBinary))]
}

func (p *ArithmeticPool) RandomTree(rng *rand.Rand, maxDepth int) expr.ExprNode {
	return randomTree(p, rng, maxDepth)
}
