package logic

import (
	"context"

	"github.com/hashicorp/go-hclog"
)

// Runtime is the resolver: a database of clauses plus the ambient state
// (output buffer, extension registry, trace logger) a proof walks through.
// It is not safe for concurrent use by multiple goroutines issuing queries
// at once — resolution is single-threaded and cooperative by design
// (spec.md §5; SPEC_FULL.md §5 justifies dropping the teacher's worker
// pool rather than adapting it here).
type Runtime struct {
	db         *Database
	Output     *OutputStream
	extensions *ExtensionRegistry
	logger     hclog.Logger
}

// NewRuntime builds a Runtime with an empty database, a fresh output
// buffer, an empty extension registry, and a null logger, then applies
// opts in order.
func NewRuntime(opts ...Option) *Runtime {
	rt := &Runtime{
		db:         NewDatabase(),
		Output:     NewOutputStream(),
		extensions: NewExtensionRegistry(),
		logger:     hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Database returns the runtime's clause store, for callers (and built-ins)
// that need to mutate it directly.
func (rt *Runtime) Database() *Database { return rt.db }

// Execute is the resolver's entry point (spec.md §4.G): it resolves goal
// against every clause in the database (renaming each apart, per
// SPEC_FULL.md §12.1) and streams one answer per solution of each matching
// clause's body (a clause can contribute several), honoring cut and
// forwarding FALSE as an ordinary failed alternative rather than a special
// case further up.
//
// If query wraps a Query, matching proceeds against its synthetic ##(...)
// head rather than its Goal directly; AllRules appends the matching
// synthetic clause ##(...) :- Goal, so the loop below handles both a plain
// predicate call and a top-level free-variable query uniformly.
func (rt *Runtime) Execute(ctx context.Context, query Term) *Stream {
	if ab, ok := query.(*ArithBinding); ok {
		return rt.executeArith(ab)
	}
	if le, ok := query.(*LogicExpr); ok {
		return rt.executeLogic(le)
	}

	goal := query
	if q, ok := query.(*Query); ok {
		goal = q.Head
	}

	// A registered extension (spec.md §4.I) takes over the predicate
	// entirely: the database is never consulted for it.
	if c, ok := goal.(*Compound); ok {
		if fn, found := rt.extensions.Lookup(c.Name, c.Arity()); found {
			rt.logger.Trace("execute via extension", "goal", goal.String())
			return queryExtension(ctx, fn, c)
		}
	}

	out := NewStream()
	go func() {
		defer out.Close()
		rt.logger.Trace("execute", "goal", goal.String())
		for _, clause := range rt.db.AllRules(query) {
			if ctx.Err() != nil {
				return
			}
			if rt.runClause(ctx, clause, goal, out) {
				rt.logger.Trace("cut", "goal", goal.String())
				return
			}
		}
	}()
	return out
}

// executeArith evaluates a bare `Var is Expr` goal directly: it is not a
// predicate lookup, so it never touches the database. A single Number
// answer is produced on success; evaluation failure yields no answers,
// never an error value on the stream (spec.md §4.E, §7).
func (rt *Runtime) executeArith(ab *ArithBinding) *Stream {
	val, err := EvalMath(ab.Expr)
	if err != nil {
		rt.logger.Trace("arithmetic failed", "error", err)
		return empty()
	}
	return singleton(NewNumber(val))
}

// executeLogic evaluates a bare comparison goal (`X =< Y`) directly,
// succeeding with TRUE or failing with FALSE; an evaluation error (an
// unbound operand) produces no answer at all.
func (rt *Runtime) executeLogic(le *LogicExpr) *Stream {
	res, err := EvalLogic(le.Expr)
	if err != nil {
		rt.logger.Trace("comparison failed", "error", err)
		return empty()
	}
	if res {
		return singleton(True{})
	}
	return singleton(False{})
}

// runClause renames clause apart, matches its head against goal, and if
// it matches, proves its body. Each non-FALSE, non-CUT answer is written
// to out as goal's head rewritten under the proof's bindings. It returns
// true if a cut was encountered while proving the body, telling the
// caller to stop trying further clauses for this goal.
func (rt *Runtime) runClause(ctx context.Context, clause *Clause, goal Term, out *Stream) bool {
	renamed := clause.Rename()
	mu, ok := renamed.Head.Match(goal)
	if !ok {
		return false
	}
	head := renamed.Head.Substitute(mu)
	body := renamed.Body.Substitute(mu)

	// A rule whose entire body is `Var is Expr` binds the head's matching
	// argument directly rather than recursing into body.Query: there is
	// nothing further to prove, only a value to compute (spec.md §4.G
	// point 3; mirrors original_source/prolog/interpreter.py's
	// evaluate_rules treatment of arithmetic clause bodies).
	if ab, isArith := body.(*ArithBinding); isArith {
		val, err := EvalMath(ab.Expr)
		if err != nil {
			return false
		}
		bound := EmptyBinding().Extend(ab.Var, NewNumber(val))
		out.PutCtx(ctx, head.Substitute(bound))
		return false
	}

	// A rule whose entire body is `!` succeeds exactly once and commits:
	// there is no conjunction driver to forward a post-cut continuation
	// through, so the commit is applied directly.
	if _, isCut := body.(Cut); isCut {
		out.PutCtx(ctx, head)
		return true
	}

	sub := body.Query(ctx, rt)
	for {
		answer, ok := sub.Next(ctx)
		if !ok {
			return false
		}
		if _, isFalse := answer.(False); isFalse {
			out.PutCtx(ctx, answer)
			continue
		}
		if _, isCut := answer.(Cut); isCut {
			return true
		}
		m, ok := body.Match(answer)
		if !ok {
			continue
		}
		if !out.PutCtx(ctx, head.Substitute(m)) {
			return false
		}
	}
}

// Conjunction is the `,`-chained goal sequence a rule body (or a compound
// query) compiles to: A, B, C proves left to right, threading the
// bindings each goal produces into the next (spec.md §4.G).
type Conjunction struct {
	Goals []Term
}

// NewConjunction builds a conjunction of the given goals in order.
func NewConjunction(goals ...Term) *Conjunction { return &Conjunction{Goals: goals} }

func (c *Conjunction) Match(other Term) (*Binding, bool) {
	if ov, ok := other.(*Variable); ok {
		return ov.Match(c)
	}
	oc, ok := other.(*Conjunction)
	if !ok || len(oc.Goals) != len(c.Goals) {
		return nil, false
	}
	out := EmptyBinding()
	for i := range c.Goals {
		m, ok := c.Goals[i].Match(oc.Goals[i])
		if !ok {
			return nil, false
		}
		merged, ok := Merge(out, m)
		if !ok {
			return nil, false
		}
		out = merged
	}
	return out, true
}

func (c *Conjunction) Substitute(b *Binding) Term {
	goals := make([]Term, len(c.Goals))
	for i, g := range c.Goals {
		goals[i] = g.Substitute(b)
	}
	return &Conjunction{Goals: goals}
}

func (c *Conjunction) Query(ctx context.Context, rt *Runtime) *Stream {
	out := NewStream()
	go func() {
		defer out.Close()
		rt.solveConjunction(ctx, c, 0, EmptyBinding(), out)
	}()
	return out
}

func (c *Conjunction) String() string {
	s := ""
	for i, g := range c.Goals {
		if i > 0 {
			s += ", "
		}
		s += g.String()
	}
	return s
}

// solveConjunction is the conjunction driver from spec.md §4.G's
// solutions(i, bindings) pseudocode, implemented as a direct recursion
// rather than a generator: it dispatches on the substituted goal at index
// i and, for the general case, enumerates rt's answers for that goal,
// merging each into bindings before recursing to i+1.
//
// It returns true once a CUT has been produced (by this call or one it
// recursed into), telling every enclosing call — all the way up to
// Execute's clause loop — to stop trying further alternatives. The CUT
// sentinel itself is written to out exactly once, by the case that
// directly dispatches a Cut{} goal, after its own continuation has been
// fully explored: goals to the right of `!` still backtrack normally,
// only earlier choice points are pruned.
func (rt *Runtime) solveConjunction(ctx context.Context, conj *Conjunction, i int, b *Binding, out *Stream) bool {
	if ctx.Err() != nil {
		return true
	}
	if i >= len(conj.Goals) {
		out.PutCtx(ctx, conj.Substitute(b))
		return false
	}

	goal := conj.Goals[i].Substitute(b)
	switch g := goal.(type) {
	case Fail:
		out.PutCtx(ctx, False{})
		return false

	case *WriteGoal:
		g.display(rt)
		return rt.solveConjunction(ctx, conj, i+1, b, out)

	case NlGoal:
		g.display(rt)
		return rt.solveConjunction(ctx, conj, i+1, b, out)

	case TabGoal:
		g.display(rt)
		return rt.solveConjunction(ctx, conj, i+1, b, out)

	case *RetractGoal:
		g.apply(ctx, rt)
		return rt.solveConjunction(ctx, conj, i+1, b, out)

	case *AssertAGoal:
		g.apply(rt)
		return rt.solveConjunction(ctx, conj, i+1, b, out)

	case *AssertZGoal:
		g.apply(rt)
		return rt.solveConjunction(ctx, conj, i+1, b, out)

	case *ArithBinding:
		val, err := EvalMath(g.Expr)
		if err != nil {
			return false
		}
		merged, ok := Merge(b, EmptyBinding().Extend(g.Var, NewNumber(val)))
		if !ok {
			return false
		}
		return rt.solveConjunction(ctx, conj, i+1, merged, out)

	case *LogicExpr:
		res, err := EvalLogic(g.Expr)
		if err != nil || !res {
			return false
		}
		return rt.solveConjunction(ctx, conj, i+1, b, out)

	case Cut:
		rt.solveConjunction(ctx, conj, i+1, b, out)
		out.PutCtx(ctx, Cut{})
		return true

	default:
		sub := goal.Query(ctx, rt)
		for {
			item, ok := sub.Next(ctx)
			if !ok {
				return false
			}
			if _, isFalse := item.(False); isFalse {
				out.PutCtx(ctx, item)
				continue
			}
			if _, isCut := item.(Cut); isCut {
				// A nested predicate's own cut is absorbed at its call
				// boundary by Execute; seeing one here would mean a goal
				// returned it directly rather than through Execute, which
				// should not happen. Skip rather than propagate.
				continue
			}
			m, ok := goal.Match(item)
			if !ok {
				continue
			}
			merged, ok := Merge(b, m)
			if !ok {
				continue
			}
			if rt.solveConjunction(ctx, conj, i+1, merged, out) {
				return true
			}
		}
	}
}
