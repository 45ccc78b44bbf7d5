package logic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectAnswers(t *testing.T, rt *Runtime, goal Term) []Term {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	return rt.Execute(ctx, NewQuery(goal)).Collect(ctx, -1)
}

func TestExecuteResolvesFactsByVariableQuery(t *testing.T) {
	db := NewDatabase(
		NewFact(NewCompound("color", NewAtom("sky"), NewAtom("blue"))),
		NewFact(NewCompound("color", NewAtom("grass"), NewAtom("green"))),
	)
	rt := NewRuntime(WithDatabase(db))

	answers := collectAnswers(t, rt, NewCompound("color", NewAtom("sky"), NewVar("C")))
	require.Len(t, answers, 1)
	assert.Equal(t, "##(blue)", answers[0].String())
}

func TestExecuteResolvesRuleWithConjunctionBody(t *testing.T) {
	x := NewVar("X")
	y := NewVar("Y")
	z := NewVar("Z")
	db := NewDatabase(
		NewFact(NewCompound("parent", NewAtom("alice"), NewAtom("bob"))),
		NewFact(NewCompound("parent", NewAtom("bob"), NewAtom("carol"))),
		NewRule(
			NewCompound("grandparent", x, z),
			NewConjunction(
				NewCompound("parent", x, y),
				NewCompound("parent", y, z),
			),
		),
	)
	rt := NewRuntime(WithDatabase(db))

	answers := collectAnswers(t, rt, NewCompound("grandparent", NewAtom("alice"), NewVar("Who")))
	require.Len(t, answers, 1)
	assert.Equal(t, "##(carol)", answers[0].String())
}

// Clause renaming-apart must keep a recursive predicate's invocations from
// leaking bindings into one another (spec.md §9's open question, resolved
// in SPEC_FULL.md §12.1): descendant(alice, carol) should succeed through
// two distinct activations of the same rule.
func TestExecuteRenamesClausesApartAcrossRecursion(t *testing.T) {
	baseX := NewVar("X")
	baseY := NewVar("Y")
	recX := NewVar("X")
	recY := NewVar("Y")
	recZ := NewVar("Z")
	db := NewDatabase(
		NewFact(NewCompound("parent", NewAtom("alice"), NewAtom("bob"))),
		NewFact(NewCompound("parent", NewAtom("bob"), NewAtom("carol"))),
		NewRule(
			NewCompound("descendant", baseX, baseY),
			NewCompound("parent", baseX, baseY),
		),
		NewRule(
			NewCompound("descendant", recX, recZ),
			NewConjunction(
				NewCompound("parent", recX, recY),
				NewCompound("descendant", recY, recZ),
			),
		),
	)
	rt := NewRuntime(WithDatabase(db))

	answers := collectAnswers(t, rt, NewCompound("descendant", NewAtom("alice"), NewVar("Who")))
	var got []string
	for _, a := range answers {
		got = append(got, a.String())
	}
	assert.ElementsMatch(t, []string{"##(bob)", "##(carol)"}, got)
}

func TestExecuteArithmeticPrecedence(t *testing.T) {
	rt := NewRuntime()
	r := NewVar("R")

	answers := collectAnswers(t, rt, NewArithmetic(r, Add(Num(2), Mul(Num(3), Num(4)))))
	require.Len(t, answers, 1)
	assert.Equal(t, "##(14.0)", answers[0].String())
}

// c_to_f(C, F) :- F is C * 9 / 5 + 32.
func TestExecuteCelsiusToFahrenheitRule(t *testing.T) {
	c := NewVar("C")
	f := NewVar("F")
	db := NewDatabase(
		NewRule(
			NewCompound("c_to_f", c, f),
			NewConjunction(NewArithmetic(f, Add(Div(Mul(ExprVar("C"), Num(9)), Num(5)), Num(32)))),
		),
	)
	rt := NewRuntime(WithDatabase(db))

	answers := collectAnswers(t, rt, NewCompound("c_to_f", NewNumber(100), NewVar("F")))
	require.Len(t, answers, 1)
	assert.Equal(t, "##(212.0)", answers[0].String())
}

// cut commits to the first matching clause: choose(X) should report only
// the clause guarded by `!`, never backtracking into the facts beneath it.
func TestExecuteCutPrunesRemainingClauses(t *testing.T) {
	db := NewDatabase(
		NewRule(NewCompound("choose", NewNumber(1)), Cut{}),
		NewFact(NewCompound("choose", NewNumber(2))),
		NewFact(NewCompound("choose", NewNumber(3))),
	)
	rt := NewRuntime(WithDatabase(db))

	answers := collectAnswers(t, rt, NewCompound("choose", NewVar("X")))
	require.Len(t, answers, 1)
	assert.Equal(t, "##(1.0)", answers[0].String())
}

// A cut only prunes choicepoints to its left within the same clause body;
// goals after it still explore their own alternatives normally.
func TestExecuteCutDoesNotPruneGoalsAfterIt(t *testing.T) {
	x := NewVar("X")
	db := NewDatabase(
		NewFact(NewCompound("data", NewNumber(1))),
		NewFact(NewCompound("data", NewNumber(2))),
		NewRule(
			NewCompound("a", NewAtom("first")),
			Cut{},
		),
		NewFact(NewCompound("a", NewAtom("second"))),
		NewRule(
			NewCompound("b", x),
			NewConjunction(Cut{}, NewCompound("data", x)),
		),
	)
	rt := NewRuntime(WithDatabase(db))

	aAnswers := collectAnswers(t, rt, NewCompound("a", NewVar("X")))
	require.Len(t, aAnswers, 1)
	assert.Equal(t, "##(first)", aAnswers[0].String())

	bAnswers := collectAnswers(t, rt, NewCompound("b", NewVar("X")))
	require.Len(t, bAnswers, 2)
}

func TestExecuteDatabaseMutationRoundTrip(t *testing.T) {
	rt := NewRuntime()
	ctx := context.Background()

	rt.Execute(ctx, NewQuery(NewAssertZ(NewCompound("here", NewAtom("kitchen"))))).Collect(ctx, 1)

	before := collectAnswers(t, rt, NewCompound("here", NewVar("X")))
	require.Len(t, before, 1)
	assert.Equal(t, "##(kitchen)", before[0].String())

	rt.Execute(ctx, NewQuery(NewRetract(NewCompound("here", NewAtom("kitchen"))))).Collect(ctx, 1)
	rt.Execute(ctx, NewQuery(NewAssertZ(NewCompound("here", NewAtom("hallway"))))).Collect(ctx, 1)

	after := collectAnswers(t, rt, NewCompound("here", NewVar("X")))
	require.Len(t, after, 1)
	assert.Equal(t, "##(hallway)", after[0].String())
}

func TestExecuteWriteGoalAppendsToOutput(t *testing.T) {
	rt := NewRuntime()
	ctx := context.Background()

	rt.Execute(ctx, NewQuery(NewConjunction(NewWrite(NewAtom("hi")), NlGoal{}))).Collect(ctx, 1)
	assert.Equal(t, "hi\n", rt.Output.Read())
}

// fail produces no solution: the only item on the stream is the FALSE
// sentinel, which Execute forwards unchanged.
func TestExecuteFailYieldsOnlyFalseSentinel(t *testing.T) {
	rt := NewRuntime()
	answers := collectAnswers(t, rt, Fail{})
	assert.Equal(t, []Term{False{}}, answers)
}
