package ir

import "fmt"

// Expression is a non-evaluating binary tree over nodes, serialized
// textually at print time with operator precedence. Grounded on go-corset's
// AIR/MIR expression trees (pkg/ir/add.go, pkg/ir/mul.go et al.) and
// spec.md 3.1/4.2.
type Expression struct {
	baseNode
	Op    Operator
	Left  Node
	Right Node
}

// NewExpression builds an Expression node over two operand nodes. The
// result's type is inferred: two integer operands yield an integer
// expression; an integer combined with a vector width node still yields an
// integer expression (widths are themselves integer-typed nodes).
func NewExpression(op Operator, left, right Node) *Expression {
	typ := inferExpressionType(left, right)
	e := &Expression{baseNode: newBaseNode(exprName(op, left, right), ExpressionKind, typ), Op: op, Left: left, Right: right}
	e.self = e
	return e
}

func exprName(op Operator, left, right Node) string {
	return fmt.Sprintf("(%s %s %s)", left.Name(), op, right.Name())
}

func inferExpressionType(left, right Node) Type {
	if left.Type().ID() == IntegerTypeID || right.Type().ID() == IntegerTypeID {
		return IntegerType()
	}
	return left.Type()
}

// AppendReferences returns the operand nodes plus anything they transitively
// reference, treating Expressions as transparent per invariant 3.2-2.
func (e *Expression) AppendReferences() []Node {
	refs := []Node{e.Left, e.Right}
	refs = append(refs, e.Left.AppendReferences()...)
	refs = append(refs, e.Right.AppendReferences()...)
	return refs
}

// String renders "lhs <op> rhs", parenthesizing operands whose own operator
// binds more loosely than e.Op.
func (e *Expression) String() string {
	return fmt.Sprintf("%s %s %s", operandString(e.Left, e.Op), e.Op, operandString(e.Right, e.Op))
}

func operandString(n Node, parentOp Operator) string {
	if sub, ok := n.(*Expression); ok && sub.Op.precedence() < parentOp.precedence() {
		return "(" + sub.String() + ")"
	}
	return n.Name()
}

// AddExpr, SubExpr, MulExpr and DivExpr construct an Expression node
// applying the Add, Sub, Mul or Div operator to two operand nodes. Sugar over NewExpression, mirroring
// cerata's `+`, `-`, `*`, `/` node operator overloads.
func AddExpr(l, r Node) *Expression { return NewExpression(Add, l, r) }
func SubExpr(l, r Node) *Expression { return NewExpression(Sub, l, r) }
func MulExpr(l, r Node) *Expression { return NewExpression(Mul, l, r) }
func DivExpr(l, r Node) *Expression { return NewExpression(Div, l, r) }

// NegateExpr builds unary negation as sugar over Sub(0, x), per
// original_source's note that it deliberately keeps the operator set small.
func NegateExpr(n Node) *Expression { return SubExpr(NewIntLiteral(0), n) }
