package logic

import (
	"context"

	"github.com/pkg/errors"
)

// ExprNode is a node of an arithmetic or comparison expression tree. The
// grammar (spec.md §6) is: equality < comparison < additive <
// multiplicative < primary, established by the external parser's
// recursive descent; ExprNode only models the resulting tree.
type ExprNode interface {
	bindNames(b *Binding) ExprNode
	String() string
}

// NumExpr is a numeric literal leaf.
type NumExpr struct{ Value float64 }

// Num constructs a numeric leaf.
func Num(v float64) *NumExpr { return &NumExpr{Value: v} }

func (n *NumExpr) bindNames(b *Binding) ExprNode { return n }
func (n *NumExpr) String() string                { return (&Number{Value: n.Value}).String() }

// VarExpr is a variable leaf, referenced by name rather than by identity:
// the parser assigns fresh *Variable instances per clause, but an
// expression's own internal references are names, so the expression
// binder matches them against binding-map keys by name (spec.md §4.E).
type VarExpr struct{ Name string }

// ExprVar constructs a variable leaf referenced by name.
func ExprVar(name string) *VarExpr { return &VarExpr{Name: name} }

func (v *VarExpr) bindNames(b *Binding) ExprNode {
	for _, e := range b.Entries() {
		if e.Var.Name() != v.Name {
			continue
		}
		switch t := e.Term.(type) {
		case *Number:
			return &NumExpr{Value: t.Value}
		case *Variable:
			return &VarExpr{Name: t.Name()}
		}
	}
	return v
}

func (v *VarExpr) String() string { return v.Name }

// ArithOp identifies a binary arithmetic operator.
type ArithOp byte

const (
	OpAdd ArithOp = '+'
	OpSub ArithOp = '-'
	OpMul ArithOp = '*'
	OpDiv ArithOp = '/'
)

// ArithExpr is a binary arithmetic node.
type ArithExpr struct {
	Op          ArithOp
	Left, Right ExprNode
}

func Add(l, r ExprNode) *ArithExpr { return &ArithExpr{Op: OpAdd, Left: l, Right: r} }
func Sub(l, r ExprNode) *ArithExpr { return &ArithExpr{Op: OpSub, Left: l, Right: r} }
func Mul(l, r ExprNode) *ArithExpr { return &ArithExpr{Op: OpMul, Left: l, Right: r} }
func Div(l, r ExprNode) *ArithExpr { return &ArithExpr{Op: OpDiv, Left: l, Right: r} }

func (a *ArithExpr) bindNames(b *Binding) ExprNode {
	return &ArithExpr{Op: a.Op, Left: a.Left.bindNames(b), Right: a.Right.bindNames(b)}
}

func (a *ArithExpr) String() string {
	return "(" + a.Left.String() + " " + string(byte(a.Op)) + " " + a.Right.String() + ")"
}

// CompareOp identifies a binary comparison operator.
type CompareOp string

const (
	OpEq    CompareOp = "=="
	OpNeq   CompareOp = "=/"
	OpLeq   CompareOp = "=<"
	OpLt    CompareOp = "<"
	OpGeq   CompareOp = ">="
	OpGt    CompareOp = ">"
)

// CompareExpr is a binary comparison node; its operands are arithmetic
// expressions, its result is a truth value (spec.md §4.E).
type CompareExpr struct {
	Op          CompareOp
	Left, Right ExprNode
}

func Compare(op CompareOp, l, r ExprNode) *CompareExpr {
	return &CompareExpr{Op: op, Left: l, Right: r}
}

func (c *CompareExpr) bindNames(b *Binding) ExprNode {
	return &CompareExpr{Op: c.Op, Left: c.Left.bindNames(b), Right: c.Right.bindNames(b)}
}

func (c *CompareExpr) String() string {
	return "(" + c.Left.String() + " " + string(c.Op) + " " + c.Right.String() + ")"
}

// EvalMath evaluates an arithmetic expression tree to a float64. Every leaf
// must resolve to a Number; an unbound VarExpr or a division by zero is an
// ArithmeticError.
func EvalMath(n ExprNode) (float64, error) {
	switch v := n.(type) {
	case *NumExpr:
		return v.Value, nil
	case *VarExpr:
		return 0, ArithmeticError{errors.Errorf("unbound variable %q in arithmetic expression", v.Name)}
	case *ArithExpr:
		l, err := EvalMath(v.Left)
		if err != nil {
			return 0, err
		}
		r, err := EvalMath(v.Right)
		if err != nil {
			return 0, err
		}
		switch v.Op {
		case OpAdd:
			return l + r, nil
		case OpSub:
			return l - r, nil
		case OpMul:
			return l * r, nil
		case OpDiv:
			if r == 0 {
				return 0, ArithmeticError{errors.New("division by zero")}
			}
			return l / r, nil
		default:
			return 0, ArithmeticError{errors.Errorf("unknown arithmetic operator %q", byte(v.Op))}
		}
	case *CompareExpr:
		return 0, ArithmeticError{errors.New("comparison used where an arithmetic value was expected")}
	default:
		return 0, ArithmeticError{errors.Errorf("unsupported expression node %T", n)}
	}
}

// EvalLogic evaluates a comparison expression to a boolean.
func EvalLogic(c *CompareExpr) (bool, error) {
	l, err := EvalMath(c.Left)
	if err != nil {
		return false, err
	}
	r, err := EvalMath(c.Right)
	if err != nil {
		return false, err
	}
	switch c.Op {
	case OpEq:
		return l == r, nil
	case OpNeq:
		return l != r, nil
	case OpLeq:
		return l <= r, nil
	case OpLt:
		return l < r, nil
	case OpGeq:
		return l >= r, nil
	case OpGt:
		return l > r, nil
	default:
		return false, ArithmeticError{errors.Errorf("unknown comparison operator %q", c.Op)}
	}
}

// ArithBinding is the `Var is Expr` term: when reached as a conjunction
// goal it evaluates Expr under the current bindings and unifies the
// resulting Number with Var.
type ArithBinding struct {
	Var  *Variable
	Expr ExprNode
}

// NewArithmetic constructs a `Var is Expr` binding term.
func NewArithmetic(v *Variable, e ExprNode) *ArithBinding {
	return &ArithBinding{Var: v, Expr: e}
}

func (a *ArithBinding) Match(other Term) (*Binding, bool) {
	val, err := EvalMath(a.Expr)
	if err != nil {
		return nil, false
	}
	n := NewNumber(val)
	if ov, ok := other.(*Variable); ok {
		return ov.Match(n)
	}
	if _, ok := other.(*ArithBinding); ok {
		// Matching against another ArithBinding happens when this goal sits
		// inside a Conjunction: the driver's answer is the same expression
		// substituted under its own result bindings, so there is nothing to
		// reconcile beyond reporting a.Var's computed value.
		return EmptyBinding().Extend(a.Var, n), true
	}
	return n.Match(other)
}

func (a *ArithBinding) Substitute(b *Binding) Term {
	v := a.Var
	if sv, ok := a.Var.Substitute(b).(*Variable); ok {
		v = sv
	}
	return &ArithBinding{Var: v, Expr: a.Expr.bindNames(b)}
}

func (a *ArithBinding) Query(ctx context.Context, rt *Runtime) *Stream { return rt.Execute(ctx, a) }

func (a *ArithBinding) String() string { return a.Var.String() + " is " + a.Expr.String() }

// LogicExpr is a bare comparison used as a goal (`X =< Y`, `X == Y`, ...).
type LogicExpr struct {
	Expr *CompareExpr
}

// NewLogicExpr constructs a comparison goal.
func NewLogicExpr(c *CompareExpr) *LogicExpr { return &LogicExpr{Expr: c} }

func (l *LogicExpr) Match(other Term) (*Binding, bool) {
	res, err := EvalLogic(l.Expr)
	if err != nil {
		return nil, false
	}
	var val Term = False{}
	if res {
		val = True{}
	}
	if ov, ok := other.(*Variable); ok {
		return ov.Match(val)
	}
	if _, ok := other.(*LogicExpr); ok {
		// As with ArithBinding, matching two LogicExpr instances happens
		// inside a Conjunction's own Match against its substituted answer;
		// a comparison binds nothing, so success here just confirms shape.
		return EmptyBinding(), true
	}
	return val.Match(other)
}

func (l *LogicExpr) Substitute(b *Binding) Term {
	return &LogicExpr{Expr: l.Expr.bindNames(b).(*CompareExpr)}
}

func (l *LogicExpr) Query(ctx context.Context, rt *Runtime) *Stream { return rt.Execute(ctx, l) }

func (l *LogicExpr) String() string { return l.Expr.String() }
