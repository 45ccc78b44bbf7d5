package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalMathPrecedence(t *testing.T) {
	// 2 + 3 * 4 = 14, not 20: multiplication binds tighter, matching the
	// external parser's precedence climbing (spec.md §6).
	expr := Add(Num(2), Mul(Num(3), Num(4)))
	val, err := EvalMath(expr)
	require.NoError(t, err)
	assert.Equal(t, 14.0, val)
}

func TestEvalMathDivisionByZero(t *testing.T) {
	_, err := EvalMath(Div(Num(1), Num(0)))
	require.Error(t, err)
	var arithErr ArithmeticError
	assert.ErrorAs(t, err, &arithErr)
}

func TestEvalMathUnboundVariable(t *testing.T) {
	_, err := EvalMath(ExprVar("X"))
	assert.Error(t, err)
}

func TestEvalLogicComparisons(t *testing.T) {
	cases := []struct {
		op   CompareOp
		l, r float64
		want bool
	}{
		{OpEq, 3, 3, true},
		{OpEq, 3, 4, false},
		{OpNeq, 3, 4, true},
		{OpLt, 3, 4, true},
		{OpLt, 4, 3, false},
		{OpLeq, 3, 3, true},
		{OpGt, 5, 3, true},
		{OpGeq, 3, 3, true},
	}
	for _, c := range cases {
		res, err := EvalLogic(Compare(c.op, Num(c.l), Num(c.r)))
		require.NoError(t, err)
		assert.Equal(t, c.want, res)
	}
}

func TestArithBindingMatchBindsVariable(t *testing.T) {
	x := NewVar("X")
	ab := NewArithmetic(x, Add(Num(1), Num(2)))

	b, ok := ab.Match(x)
	require.True(t, ok)
	assert.Equal(t, "3.0", x.Substitute(b).String())
}

func TestVarExprBindNamesByName(t *testing.T) {
	x := NewVar("X")
	b := EmptyBinding().Extend(x, NewNumber(5))

	bound := ExprVar("X").bindNames(b)
	num, ok := bound.(*NumExpr)
	require.True(t, ok)
	assert.Equal(t, 5.0, num.Value)
}
