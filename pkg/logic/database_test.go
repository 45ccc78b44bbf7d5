package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func factClause(name string, args ...Term) *Clause {
	return NewFact(NewCompound(name, args...))
}

func TestInsertLeftPrependsWithinPredicateGroup(t *testing.T) {
	db := NewDatabase(
		factClause("p", NewNumber(1)),
		factClause("p", NewNumber(2)),
		factClause("q", NewNumber(9)),
	)
	db.InsertLeft(factClause("p", NewNumber(0)))

	snap := db.Snapshot()
	require.Len(t, snap, 4)
	assert.Equal(t, "p(0.0).", snap[0].String())
	assert.Equal(t, "p(1.0).", snap[1].String())
	assert.Equal(t, "p(2.0).", snap[2].String())
	assert.Equal(t, "q(9.0).", snap[3].String())
}

func TestInsertLeftAppendsWhenPredicateAbsent(t *testing.T) {
	db := NewDatabase(factClause("p", NewNumber(1)))
	db.InsertLeft(factClause("r", NewNumber(2)))

	snap := db.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "r(2.0).", snap[1].String())
}

func TestInsertRightAppendsWithinPredicateGroup(t *testing.T) {
	db := NewDatabase(
		factClause("p", NewNumber(1)),
		factClause("p", NewNumber(2)),
		factClause("q", NewNumber(9)),
	)
	db.InsertRight(factClause("p", NewNumber(3)))

	snap := db.Snapshot()
	require.Len(t, snap, 4)
	assert.Equal(t, "p(1.0).", snap[0].String())
	assert.Equal(t, "p(2.0).", snap[1].String())
	assert.Equal(t, "p(3.0).", snap[2].String())
	assert.Equal(t, "q(9.0).", snap[3].String())
}

func TestRetractRemovesFirstShallowMatch(t *testing.T) {
	db := NewDatabase(
		factClause("here", NewCompound("room", NewAtom("kitchen"))),
		factClause("here", NewCompound("room", NewAtom("hallway"))),
	)
	removed := db.Retract(NewCompound("here", NewCompound("room", NewVar("X"))))
	assert.True(t, removed)
	assert.Len(t, db.Snapshot(), 1)
	assert.Equal(t, "here(room(hallway)).", db.Snapshot()[0].String())
}

func TestRetractIsNoOpWhenNothingMatches(t *testing.T) {
	db := NewDatabase(factClause("here", NewAtom("kitchen")))
	removed := db.Retract(NewCompound("absent", NewAtom("x")))
	assert.False(t, removed)
	assert.Len(t, db.Snapshot(), 1)
}

func TestAllRulesAppendsSyntheticQueryClause(t *testing.T) {
	db := NewDatabase(factClause("p", NewNumber(1)))
	q := NewQuery(NewCompound("p", NewVar("X")))

	rules := db.AllRules(q)
	require.Len(t, rules, 2)
	assert.Same(t, q.Head, rules[1].Head)
}

func TestAllRulesSnapshotIsIndependentOfLaterMutation(t *testing.T) {
	db := NewDatabase(factClause("p", NewNumber(1)))
	snap := db.AllRules(NewCompound("p", NewVar("X")))
	db.InsertRight(factClause("p", NewNumber(2)))

	assert.Len(t, snap, 1)
	assert.Len(t, db.Snapshot(), 2)
}
