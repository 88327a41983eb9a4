package expr

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertEval(t *testing.T, node ExprNode, row []float64, expected float64, tol float64) {
	t.Helper()
	got, ok := node.EvalF64(row)
	require.True(t, ok, "EvalF64 returned ok=false for row=%v", row)
	assert.InDelta(t, expected, got, tol, "EvalF64(%v)", row)
}

// sample builds (x0 + 2) * sin(x1).
func sample() ExprNode {
	return &BinaryNode{
		Op:    OpMul,
		Left:  &BinaryNode{Op: OpAdd, Left: &VarNode{Index: 0}, Right: &ConstNode{Val: 2}},
		Right: &UnaryNode{Op: OpSin, Child: &VarNode{Index: 1, Name: "t"}},
	}
}

func TestVarNode(t *testing.T) {
	v := &VarNode{Index: 1}
	assertEval(t, v, []float64{3, 5}, 5, 0)

	_, ok := v.EvalF64([]float64{3})
	assert.False(t, ok, "out-of-range feature should fail")

	assert.Equal(t, "x1", v.String())
	assert.Equal(t, "speed", (&VarNode{Index: 1, Name: "speed"}).String())
	assert.Equal(t, 1, v.NodeCount())
	assert.Equal(t, 0, v.Depth())
}

func TestConstNode(t *testing.T) {
	c := &ConstNode{Val: 0.5}
	assertEval(t, c, nil, 0.5, 0)
	assert.Equal(t, "0.5", c.String())
}

func TestBinaryOps(t *testing.T) {
	row := []float64{6, 3}
	x, y := &VarNode{Index: 0}, &VarNode{Index: 1}

	tests := []struct {
		op   BinaryOp
		want float64
	}{
		{OpAdd, 9},
		{OpSub, 3},
		{OpMul, 18},
		{OpDiv, 2},
		{OpMax, 6},
		{OpMin, 3},
	}
	for _, tt := range tests {
		assertEval(t, &BinaryNode{Op: tt.op, Left: x, Right: y}, row, tt.want, 1e-12)
	}
}

func TestProtectedOps(t *testing.T) {
	zero := &ConstNode{Val: 0}

	assertEval(t, &BinaryNode{Op: OpDiv, Left: &ConstNode{Val: 4}, Right: zero}, nil, 1, 0)
	assertEval(t, &UnaryNode{Op: OpLog, Child: zero}, nil, 0, 0)
	assertEval(t, &UnaryNode{Op: OpLog, Child: &ConstNode{Val: -math.E}}, nil, 1, 1e-12)
	assertEval(t, &UnaryNode{Op: OpSqrt, Child: &ConstNode{Val: -9}}, nil, 3, 1e-12)

	_, ok := (&UnaryNode{Op: OpExp, Child: &ConstNode{Val: 1000}}).EvalF64(nil)
	assert.False(t, ok, "exp overflow should fail")

	huge := &ConstNode{Val: math.MaxFloat64}
	_, ok = (&BinaryNode{Op: OpMul, Left: huge, Right: huge}).EvalF64(nil)
	assert.False(t, ok, "overflow should fail")
}

func TestSizeAndDepth(t *testing.T) {
	tree := sample()
	assert.Equal(t, 6, tree.NodeCount())
	assert.Equal(t, 2, tree.Depth())
	assert.True(t, ContainsVar(tree))
	assert.False(t, ContainsVar(&UnaryNode{Op: OpAbs, Child: &ConstNode{Val: 1}}))
}

func TestString(t *testing.T) {
	assert.Equal(t, "((x0 + 2) * sin(t))", sample().String())
	assert.Equal(t, "max(x0, (-1))",
		(&BinaryNode{Op: OpMax, Left: &VarNode{}, Right: &UnaryNode{Op: OpNeg, Child: &ConstNode{Val: 1}}}).String())
	assert.Equal(t, "{{x_{0}} + {2}} \\cdot {\\sin{(\\mathit{t})}}", sample().LaTeX())
}

func TestClone_Independent(t *testing.T) {
	orig := sample()
	cp := orig.Clone()
	require.Equal(t, orig.String(), cp.String())

	cp.(*BinaryNode).Left = &ConstNode{Val: 9}
	assert.Equal(t, "((x0 + 2) * sin(t))", orig.String(), "mutating the clone must not touch the original")
}

func TestCollectSlots_PreOrder(t *testing.T) {
	root := sample()
	slots := CollectSlots(&root)
	require.Len(t, slots, root.NodeCount())
	assert.Equal(t, []string{"*", "+", "x0", "2", "sin", "t"}, Symbols(root))
	assert.Same(t, &root, slots[0])
}

func TestRandomSlot_CoversEveryNode(t *testing.T) {
	root := sample()
	rng := rand.New(rand.NewSource(7))

	seen := map[*ExprNode]bool{}
	for i := 0; i < 500; i++ {
		seen[RandomSlot(&root, rng)] = true
	}
	assert.Len(t, seen, root.NodeCount())
}

func TestSwap_AcrossTrees(t *testing.T) {
	a := sample()
	var b ExprNode = &BinaryNode{Op: OpSub, Left: &ConstNode{Val: 1}, Right: &VarNode{Index: 2}}

	sa := CollectSlots(&a)
	sb := CollectSlots(&b)
	Swap(sa[4], sb[1]) // sin(t) <-> 1

	assert.Equal(t, "((x0 + 2) * 1)", a.String())
	assert.Equal(t, "(sin(t) - x2)", b.String())
}

func TestSwap_Roots(t *testing.T) {
	var a ExprNode = &ConstNode{Val: 1}
	var b ExprNode = &VarNode{Index: 0}
	Swap(&a, &b)
	assert.Equal(t, "x0", a.String())
	assert.Equal(t, "1", b.String())
}
