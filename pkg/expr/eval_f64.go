package expr

import "math"

// expLimit keeps exp() finite in float64.
const expLimit = 700.0

// EvalF64 for VarNode returns the feature at Index.
func (v *VarNode) EvalF64(row []float64) (float64, bool) {
	if v.Index < 0 || v.Index >= len(row) {
		return 0, false
	}
	return row[v.Index], true
}

// EvalF64 for ConstNode returns the constant value.
func (c *ConstNode) EvalF64(row []float64) (float64, bool) {
	return c.Val, true
}

// EvalF64 for UnaryNode dispatches on op.
func (u *UnaryNode) EvalF64(row []float64) (float64, bool) {
	child, ok := u.Child.EvalF64(row)
	if !ok {
		return 0, false
	}

	switch u.Op {
	case OpNeg:
		return -child, true

	case OpSin:
		return math.Sin(child), true

	case OpCos:
		return math.Cos(child), true

	case OpLog:
		if child == 0 {
			return 0, true
		}
		return math.Log(math.Abs(child)), true

	case OpExp:
		if child > expLimit {
			return 0, false
		}
		return math.Exp(child), true

	case OpSqrt:
		return math.Sqrt(math.Abs(child)), true

	case OpAbs:
		return math.Abs(child), true

	default:
		return 0, false
	}
}

// EvalF64 for BinaryNode dispatches on op.
func (b *BinaryNode) EvalF64(row []float64) (float64, bool) {
	left, ok := b.Left.EvalF64(row)
	if !ok {
		return 0, false
	}
	right, ok := b.Right.EvalF64(row)
	if !ok {
		return 0, false
	}

	var r float64
	switch b.Op {
	case OpAdd:
		r = left + right
	case OpSub:
		r = left - right
	case OpMul:
		r = left * right
	case OpDiv:
		if right == 0 {
			return 1, true
		}
		r = left / right
	case OpMax:
		r = math.Max(left, right)
	case OpMin:
		r = math.Min(left, right)
	default:
		return 0, false
	}
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, false
	}
	return r, true
}
