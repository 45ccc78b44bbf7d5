package logic

import "context"

// Clause is a fact (Body = True{}) or rule (Head :- Body). Head must be a
// Compound; its predicate name and arity identify the clause within the
// database.
type Clause struct {
	Head *Compound
	Body Term
}

// NewFact builds a fact clause.
func NewFact(head *Compound) *Clause { return &Clause{Head: head, Body: True{}} }

// NewRule builds a rule clause.
func NewRule(head *Compound, body Term) *Clause { return &Clause{Head: head, Body: body} }

func (c *Clause) String() string {
	if _, ok := c.Body.(True); ok {
		return c.Head.String() + "."
	}
	return c.Head.String() + " :- " + c.Body.String() + "."
}

// Rename returns a copy of the clause with every variable replaced by a
// freshly allocated one, preserving sharing of the same variable across
// Head and Body. This is what makes repeated selection of the same clause
// during a deep search safe: without renaming apart, reusing the same
// *Variable instances across invocations of a recursive predicate causes
// one call's bindings to leak into another's (spec.md §9's open question,
// resolved in SPEC_FULL.md §12.1).
func (c *Clause) Rename() *Clause {
	mapping := map[*Variable]*Variable{}
	return &Clause{
		Head: renameTerm(c.Head, mapping).(*Compound),
		Body: renameTerm(c.Body, mapping),
	}
}

// renameTerm walks t, replacing every *Variable with a fresh one allocated
// once per distinct original variable (consistent within one call via
// mapping).
func renameTerm(t Term, mapping map[*Variable]*Variable) Term {
	switch v := t.(type) {
	case *Variable:
		if nv, ok := mapping[v]; ok {
			return nv
		}
		nv := NewVar(v.name)
		mapping[v] = nv
		return nv
	case *Compound:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = renameTerm(a, mapping)
		}
		return &Compound{Name: v.Name, Args: args}
	case *Dot:
		return &Dot{Head: renameTerm(v.Head, mapping), Tail: renameTerm(v.Tail, mapping)}
	case *Bar:
		heads := make([]Term, len(v.Heads))
		for i, h := range v.Heads {
			heads[i] = renameTerm(h, mapping)
		}
		return &Bar{Heads: heads, Tail: renameTerm(v.Tail, mapping)}
	case *ArithBinding:
		var newVar *Variable
		if v.Var != nil {
			newVar = renameTerm(v.Var, mapping).(*Variable)
		}
		return &ArithBinding{Var: newVar, Expr: v.Expr}
	case *Conjunction:
		goals := make([]Term, len(v.Goals))
		for i, g := range v.Goals {
			goals[i] = renameTerm(g, mapping)
		}
		return &Conjunction{Goals: goals}
	case *WriteGoal:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = renameTerm(a, mapping)
		}
		return &WriteGoal{Args: args}
	case *RetractGoal:
		return &RetractGoal{Arg: renameTerm(v.Arg, mapping)}
	case *AssertAGoal:
		return &AssertAGoal{Arg: renameTerm(v.Arg, mapping)}
	case *AssertZGoal:
		return &AssertZGoal{Arg: renameTerm(v.Arg, mapping)}
	default:
		// Atom, Number, True, False, Cut, EmptyList, NlGoal, TabGoal,
		// Fail, and LogicExpr carry no variables of their own kind that
		// need renaming (LogicExpr's ExprVar leaves are resolved by name,
		// not by identity, so they are untouched here).
		return t
	}
}

// FreeVars returns the free variables of t in first-occurrence order, with
// duplicates removed by identity.
func FreeVars(t Term) []*Variable {
	seen := map[*Variable]bool{}
	var out []*Variable
	var walk func(Term)
	walk = func(t Term) {
		switch v := t.(type) {
		case *Variable:
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		case *Compound:
			for _, a := range v.Args {
				walk(a)
			}
		case *Dot:
			walk(v.Head)
			walk(v.Tail)
		case *Bar:
			for _, h := range v.Heads {
				walk(h)
			}
			walk(v.Tail)
		case *ArithBinding:
			if v.Var != nil {
				walk(v.Var)
			}
		case *Conjunction:
			for _, g := range v.Goals {
				walk(g)
			}
		case *WriteGoal:
			for _, a := range v.Args {
				walk(a)
			}
		case *RetractGoal:
			walk(v.Arg)
		case *AssertAGoal:
			walk(v.Arg)
		case *AssertZGoal:
			walk(v.Arg)
		}
	}
	walk(t)
	return out
}

// FreeVarsGoal builds the synthetic `##(V1, ..., Vn)` compound whose
// arguments are every free variable of goal, in first-occurrence order.
// Matching a query's original goal against an answer produced for this
// synthetic head is how a caller (a REPL, or a test) recovers the
// substitution for each free variable without tracking them separately
// (spec.md §3 invariant 4; SPEC_FULL.md §9).
func FreeVarsGoal(goal Term) *Compound {
	vars := FreeVars(goal)
	args := make([]Term, len(vars))
	for i, v := range vars {
		args[i] = v
	}
	return NewCompound("##", args...)
}

// Query pairs a goal with its synthetic free-variable head, letting the
// resolver treat it exactly like a rule whose head is `##(...)` and whose
// body is the original goal (spec.md §4.F's all_rules special case).
type Query struct {
	Head *Compound
	Goal Term
}

// NewQuery wraps goal as a query, deriving its ## head automatically.
func NewQuery(goal Term) *Query {
	return &Query{Head: FreeVarsGoal(goal), Goal: goal}
}

func (q *Query) AsClause() *Clause { return &Clause{Head: q.Head, Body: q.Goal} }

func (q *Query) Match(other Term) (*Binding, bool) { return q.Head.Match(other) }

func (q *Query) Substitute(b *Binding) Term {
	return &Query{Head: q.Head.Substitute(b).(*Compound), Goal: q.Goal.Substitute(b)}
}

func (q *Query) Query(ctx context.Context, rt *Runtime) *Stream { return rt.Execute(ctx, q) }

func (q *Query) String() string { return q.Head.String() + " :- " + q.Goal.String() }
