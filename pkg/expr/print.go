package expr

import (
	"fmt"
	"strconv"
)

var unaryOpNames = map[UnaryOp]string{
	OpNeg:  "neg",
	OpSin:  "sin",
	OpCos:  "cos",
	OpLog:  "log",
	OpExp:  "exp",
	OpSqrt: "sqrt",
	OpAbs:  "abs",
}

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMax: "max",
	OpMin: "min",
}

// Symbol methods name the node alone, without its children.

func (v *VarNode) Symbol() string {
	if v.Name != "" {
		return v.Name
	}
	return fmt.Sprintf("x%d", v.Index)
}

func (c *ConstNode) Symbol() string {
	return strconv.FormatFloat(c.Val, 'g', -1, 64)
}

func (u *UnaryNode) Symbol() string {
	return unaryOpNames[u.Op]
}

func (b *BinaryNode) Symbol() string {
	return binaryOpSymbols[b.Op]
}

// String methods

func (v *VarNode) String() string {
	return v.Symbol()
}

func (c *ConstNode) String() string {
	return c.Symbol()
}

func (u *UnaryNode) String() string {
	child := u.Child.String()
	if u.Op == OpNeg {
		return fmt.Sprintf("(-%s)", child)
	}
	return fmt.Sprintf("%s(%s)", unaryOpNames[u.Op], child)
}

func (b *BinaryNode) String() string {
	left := b.Left.String()
	right := b.Right.String()
	sym := binaryOpSymbols[b.Op]
	switch b.Op {
	case OpMax, OpMin:
		return fmt.Sprintf("%s(%s, %s)", sym, left, right)
	default:
		return fmt.Sprintf("(%s %s %s)", left, sym, right)
	}
}

// LaTeX methods

func (v *VarNode) LaTeX() string {
	if v.Name != "" {
		return fmt.Sprintf("\\mathit{%s}", v.Name)
	}
	return fmt.Sprintf("x_{%d}", v.Index)
}

func (c *ConstNode) LaTeX() string {
	return c.Symbol()
}

func (u *UnaryNode) LaTeX() string {
	child := u.Child.LaTeX()
	switch u.Op {
	case OpNeg:
		return fmt.Sprintf("-{%s}", child)
	case OpSin:
		return fmt.Sprintf("\\sin{(%s)}", child)
	case OpCos:
		return fmt.Sprintf("\\cos{(%s)}", child)
	case OpLog:
		return fmt.Sprintf("\\ln{|%s|}", child)
	case OpExp:
		return fmt.Sprintf("e^{%s}", child)
	case OpSqrt:
		return fmt.Sprintf("\\sqrt{|%s|}", child)
	case OpAbs:
		return fmt.Sprintf("|%s|", child)
	default:
		return child
	}
}

func (b *BinaryNode) LaTeX() string {
	left := b.Left.LaTeX()
	right := b.Right.LaTeX()
	switch b.Op {
	case OpAdd:
		return fmt.Sprintf("{%s} + {%s}", left, right)
	case OpSub:
		return fmt.Sprintf("{%s} - {%s}", left, right)
	case OpMul:
		return fmt.Sprintf("{%s} \\cdot {%s}", left, right)
	case OpDiv:
		return fmt.Sprintf("\\frac{%s}{%s}", left, right)
	case OpMax:
		return fmt.Sprintf("\\max({%s}, {%s})", left, right)
	case OpMin:
		return fmt.Sprintf("\\min({%s}, {%s})", left, right)
	default:
		return ""
	}
}
