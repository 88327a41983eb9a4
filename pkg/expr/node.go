package expr

// ExprNode is the interface for all program tree nodes.
type ExprNode interface {
	EvalF64(row []float64) (float64, bool)
	String() string
	LaTeX() string
	Symbol() string
	Clone() ExprNode
	NodeCount() int
	Depth() int
}

// UnaryOp identifies a unary operator.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpSin
	OpCos
	OpLog // protected: log(|x|), 0 at x == 0
	OpExp
	OpSqrt // protected: sqrt(|x|)
	OpAbs
)

// BinaryOp identifies a binary operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv // protected: 1 when the divisor is 0
	OpMax
	OpMin
)

// VarNode is a terminal reading one feature of the input row.
type VarNode struct {
	Index int
	Name  string
}

// ConstNode is a constant terminal.
type ConstNode struct {
	Val float64
}

// UnaryNode applies a unary operator to a child expression.
type UnaryNode struct {
	Op    UnaryOp
	Child ExprNode
}

// BinaryNode applies a binary operator to two child expressions.
type BinaryNode struct {
	Op          BinaryOp
	Left, Right ExprNode
}
