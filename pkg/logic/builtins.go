package logic

import "context"

// Fail is the `fail` goal: it always produces the FALSE sentinel, pruning
// the current alternative (spec.md §4.G's conjunction driver, FAIL case).
type Fail struct{}

func (Fail) Match(other Term) (*Binding, bool) {
	if _, ok := other.(Fail); ok {
		return EmptyBinding(), true
	}
	return nil, false
}

func (f Fail) Substitute(b *Binding) Term { return f }

func (f Fail) Query(ctx context.Context, rt *Runtime) *Stream { return singleton(False{}) }

func (Fail) String() string { return "fail" }

// WriteGoal is the `write(Args...)` goal: it appends the canonical string
// form of each argument to the runtime's output stream and succeeds once.
type WriteGoal struct{ Args []Term }

// NewWrite constructs a write/N goal.
func NewWrite(args ...Term) *WriteGoal { return &WriteGoal{Args: args} }

func (w *WriteGoal) Match(other Term) (*Binding, bool) {
	if _, ok := other.(*WriteGoal); ok {
		return EmptyBinding(), true
	}
	return nil, false
}

func (w *WriteGoal) Substitute(b *Binding) Term {
	args := make([]Term, len(w.Args))
	for i, a := range w.Args {
		args[i] = a.Substitute(b)
	}
	return &WriteGoal{Args: args}
}

func (w *WriteGoal) display(rt *Runtime) {
	for _, a := range w.Args {
		rt.Output.Write(a.String())
	}
}

func (w *WriteGoal) Query(ctx context.Context, rt *Runtime) *Stream {
	w.display(rt)
	return singleton(True{})
}

func (w *WriteGoal) String() string { return NewCompound("write", w.Args...).String() }

// NlGoal is the `nl` goal: it appends a newline to the output stream.
type NlGoal struct{}

func (NlGoal) Match(other Term) (*Binding, bool) {
	if _, ok := other.(NlGoal); ok {
		return EmptyBinding(), true
	}
	return nil, false
}

func (n NlGoal) Substitute(b *Binding) Term { return n }

func (n NlGoal) display(rt *Runtime) { rt.Output.Write("\n") }

func (n NlGoal) Query(ctx context.Context, rt *Runtime) *Stream {
	n.display(rt)
	return singleton(True{})
}

func (NlGoal) String() string { return "nl" }

// TabGoal is the `tab` goal: it appends a tab character to the output
// stream.
type TabGoal struct{}

func (TabGoal) Match(other Term) (*Binding, bool) {
	if _, ok := other.(TabGoal); ok {
		return EmptyBinding(), true
	}
	return nil, false
}

func (t TabGoal) Substitute(b *Binding) Term { return t }

func (t TabGoal) display(rt *Runtime) { rt.Output.Write("\t") }

func (t TabGoal) Query(ctx context.Context, rt *Runtime) *Stream {
	t.display(rt)
	return singleton(True{})
}

func (TabGoal) String() string { return "tab" }

// RuleLiteral carries a Head/Body pair through positions (chiefly
// asserta/assertz arguments) that expect a Term rather than a bare
// *Clause, so a rule — not just a fact — can be asserted at runtime.
type RuleLiteral struct {
	Head *Compound
	Body Term
}

func (r *RuleLiteral) Match(other Term) (*Binding, bool) {
	or, ok := other.(*RuleLiteral)
	if !ok {
		return nil, false
	}
	headB, ok := r.Head.Match(or.Head)
	if !ok {
		return nil, false
	}
	bodyB, ok := r.Body.Match(or.Body)
	if !ok {
		return nil, false
	}
	return Merge(headB, bodyB)
}

func (r *RuleLiteral) Substitute(b *Binding) Term {
	return &RuleLiteral{Head: r.Head.Substitute(b).(*Compound), Body: r.Body.Substitute(b)}
}

func (r *RuleLiteral) Query(ctx context.Context, rt *Runtime) *Stream { return rt.Execute(ctx, r) }

func (r *RuleLiteral) String() string { return r.Head.String() + " :- " + r.Body.String() }

// clauseFromTerm converts a ground term into the clause asserta/assertz/
// retract operate on: a bare Compound becomes a fact, a RuleLiteral
// becomes a rule. Anything else cannot be turned into a clause.
func clauseFromTerm(t Term) (*Clause, bool) {
	switch v := t.(type) {
	case *Compound:
		return NewFact(v), true
	case *RuleLiteral:
		return NewRule(v.Head, v.Body), true
	default:
		return nil, false
	}
}

// RetractGoal is the `retract(Arg)` goal.
type RetractGoal struct{ Arg Term }

// NewRetract constructs a retract/1 goal.
func NewRetract(arg Term) *RetractGoal { return &RetractGoal{Arg: arg} }

func (r *RetractGoal) Match(other Term) (*Binding, bool) {
	if _, ok := other.(*RetractGoal); ok {
		return EmptyBinding(), true
	}
	return nil, false
}

func (r *RetractGoal) Substitute(b *Binding) Term {
	return &RetractGoal{Arg: r.Arg.Substitute(b)}
}

// apply resolves Arg to a ground instance before removing it, mirroring
// the original interpreter's DatabaseOp.query, which queries its argument
// against the database first and only then removes the resulting clause
// — retracting the unresolved pattern directly (e.g. `retract(here(_))`
// with an unbound argument) would never match anything.
func (r *RetractGoal) apply(ctx context.Context, rt *Runtime) {
	c, ok := r.Arg.(*Compound)
	if !ok {
		rt.logger.Warn("retract: not a clause pattern", "error", newDatabaseError("cannot retract %T, expected a Compound", r.Arg))
		return
	}
	stream := rt.Execute(ctx, c)
	ground, ok := stream.Next(ctx)
	stream.Close()
	if !ok {
		return
	}
	if gc, ok := ground.(*Compound); ok {
		rt.Database().Retract(gc)
	}
}

func (r *RetractGoal) Query(ctx context.Context, rt *Runtime) *Stream {
	r.apply(ctx, rt)
	return singleton(True{})
}

func (r *RetractGoal) String() string { return "retract(" + r.Arg.String() + ")" }

// AssertAGoal is the `asserta(Arg)` goal.
type AssertAGoal struct{ Arg Term }

// NewAssertA constructs an asserta/1 goal.
func NewAssertA(arg Term) *AssertAGoal { return &AssertAGoal{Arg: arg} }

func (a *AssertAGoal) Match(other Term) (*Binding, bool) {
	if _, ok := other.(*AssertAGoal); ok {
		return EmptyBinding(), true
	}
	return nil, false
}

func (a *AssertAGoal) Substitute(b *Binding) Term {
	return &AssertAGoal{Arg: a.Arg.Substitute(b)}
}

func (a *AssertAGoal) apply(rt *Runtime) {
	c, ok := clauseFromTerm(a.Arg)
	if !ok {
		rt.logger.Warn("asserta: not a clause", "error", newDatabaseError("cannot assert %T as a clause", a.Arg))
		return
	}
	rt.Database().InsertLeft(c)
}

func (a *AssertAGoal) Query(ctx context.Context, rt *Runtime) *Stream {
	a.apply(rt)
	return singleton(True{})
}

func (a *AssertAGoal) String() string { return "asserta(" + a.Arg.String() + ")" }

// AssertZGoal is the `assertz(Arg)` goal.
type AssertZGoal struct{ Arg Term }

// NewAssertZ constructs an assertz/1 goal.
func NewAssertZ(arg Term) *AssertZGoal { return &AssertZGoal{Arg: arg} }

func (a *AssertZGoal) Match(other Term) (*Binding, bool) {
	if _, ok := other.(*AssertZGoal); ok {
		return EmptyBinding(), true
	}
	return nil, false
}

func (a *AssertZGoal) Substitute(b *Binding) Term {
	return &AssertZGoal{Arg: a.Arg.Substitute(b)}
}

func (a *AssertZGoal) apply(rt *Runtime) {
	c, ok := clauseFromTerm(a.Arg)
	if !ok {
		rt.logger.Warn("assertz: not a clause", "error", newDatabaseError("cannot assert %T as a clause", a.Arg))
		return
	}
	rt.Database().InsertRight(c)
}

func (a *AssertZGoal) Query(ctx context.Context, rt *Runtime) *Stream {
	a.apply(rt)
	return singleton(True{})
}

func (a *AssertZGoal) String() string { return "assertz(" + a.Arg.String() + ")" }
