package logic

import "sync"

// Database is the mutable rule store: an ordered sequence of clauses.
// Every mutation (InsertLeft, InsertRight, Retract) preserves the
// grouping of clauses by predicate name that asserta/assertz rely on.
// Reads take a shallow snapshot under lock so a goal's iteration over the
// clause list is unaffected by mutations a sub-goal performs deeper in the
// same proof (spec.md §4.F, §5).
type Database struct {
	mu      sync.RWMutex
	clauses []*Clause
}

// NewDatabase creates a database seeded with the given clauses, in order.
func NewDatabase(clauses ...*Clause) *Database {
	db := &Database{clauses: make([]*Clause, len(clauses))}
	copy(db.clauses, clauses)
	return db
}

// AllRules returns a snapshot of the clause list. If query is a *Query, its
// synthetic `##(...) :- goal` clause is appended so the resolver can treat
// a top-level query uniformly with any other clause (spec.md §4.F).
func (db *Database) AllRules(query Term) []*Clause {
	db.mu.RLock()
	snapshot := make([]*Clause, len(db.clauses))
	copy(snapshot, db.clauses)
	db.mu.RUnlock()

	if q, ok := query.(*Query); ok {
		snapshot = append(snapshot, q.AsClause())
	}
	return snapshot
}

// InsertLeft places clause immediately before the first existing clause
// whose head predicate name matches, or appends it if no clause with that
// name exists yet. This implements asserta.
func (db *Database) InsertLeft(clause *Clause) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, c := range db.clauses {
		if c.Head.Name == clause.Head.Name {
			db.clauses = append(db.clauses[:i:i], append([]*Clause{clause}, db.clauses[i:]...)...)
			return
		}
	}
	db.clauses = append(db.clauses, clause)
}

// InsertRight places clause immediately after the last existing clause
// whose head predicate name matches, or appends it if no clause with that
// name exists yet. This implements assertz.
func (db *Database) InsertRight(clause *Clause) {
	db.mu.Lock()
	defer db.mu.Unlock()

	last := -1
	for i, c := range db.clauses {
		if c.Head.Name == clause.Head.Name {
			last = i
		}
	}
	if last == -1 {
		db.clauses = append(db.clauses, clause)
		return
	}
	i := last + 1
	db.clauses = append(db.clauses[:i:i], append([]*Clause{clause}, db.clauses[i:]...)...)
}

// Retract removes the first clause whose head has the same predicate name
// and arity as pattern and whose arguments are pairwise equal at the
// surface level: Compound arguments compare by predicate name only, Atom
// arguments by name, Number arguments by value, Variable arguments by
// name, anything else never matches (spec.md §4.F; decision recorded in
// SPEC_FULL.md §12.3). It reports
// whether a clause was actually removed; finding nothing to retract is a
// silent no-op, never an error (spec.md §7).
func (db *Database) Retract(pattern *Compound) bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, c := range db.clauses {
		if retractMatches(c.Head, pattern) {
			db.clauses = append(db.clauses[:i], db.clauses[i+1:]...)
			return true
		}
	}
	return false
}

func retractMatches(head, pattern *Compound) bool {
	if head.Name != pattern.Name || len(head.Args) != len(pattern.Args) {
		return false
	}
	for i := range head.Args {
		if !shallowArgEqual(head.Args[i], pattern.Args[i]) {
			return false
		}
	}
	return true
}

func shallowArgEqual(a, b Term) bool {
	switch av := a.(type) {
	case *Compound:
		bv, ok := b.(*Compound)
		return ok && av.Name == bv.Name
	case *Variable:
		bv, ok := b.(*Variable)
		return ok && av.name == bv.name
	case *Atom:
		bv, ok := b.(*Atom)
		return ok && av.Name == bv.Name
	case *Number:
		bv, ok := b.(*Number)
		return ok && av.Value == bv.Value
	default:
		return false
	}
}

// Snapshot returns a copy of every clause currently in the database, for
// tests and for callers that want to compare database state before and
// after a sequence of asserta/retract operations.
func (db *Database) Snapshot() []*Clause {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]*Clause, len(db.clauses))
	copy(out, db.clauses)
	return out
}
