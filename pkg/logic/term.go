package logic

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Term is the contract every node of the term algebra satisfies: structural
// matching against another term, rewriting under a binding, resolution as a
// goal, and a canonical string form.
type Term interface {
	// Match attempts to unify self with other, returning a binding that
	// makes them syntactically equal once applied via Substitute, or false
	// if they cannot be unified.
	Match(other Term) (*Binding, bool)

	// Substitute rewrites self under b, chasing variable bindings and
	// rebuilding compound structure. It never evaluates expressions.
	Substitute(b *Binding) Term

	// Query resolves self as a goal against rt, returning a lazy stream of
	// answers. The default for most term kinds is to delegate to the
	// resolver; built-ins (control, I/O, database) override it.
	Query(ctx context.Context, rt *Runtime) *Stream

	String() string
}

// Atom is a symbol with no arguments. Two atoms are equal iff their names
// are equal.
type Atom struct {
	Name string
}

// NewAtom constructs an Atom.
func NewAtom(name string) *Atom { return &Atom{Name: name} }

func (a *Atom) Match(other Term) (*Binding, bool) {
	switch o := other.(type) {
	case *Variable:
		return o.Match(a)
	case *Atom:
		if a.Name == o.Name {
			return EmptyBinding(), true
		}
		return nil, false
	default:
		return nil, false
	}
}

func (a *Atom) Substitute(b *Binding) Term { return a }

func (a *Atom) Query(ctx context.Context, rt *Runtime) *Stream {
	return rt.Execute(ctx, a)
}

func (a *Atom) String() string { return a.Name }

// Number is a numeric atom.
type Number struct {
	Value float64
}

// NewNumber constructs a Number.
func NewNumber(v float64) *Number { return &Number{Value: v} }

func (n *Number) Match(other Term) (*Binding, bool) {
	switch o := other.(type) {
	case *Variable:
		return o.Match(n)
	case *Number:
		if n.Value == o.Value {
			return EmptyBinding(), true
		}
		return nil, false
	default:
		return nil, false
	}
}

func (n *Number) Substitute(b *Binding) Term { return n }

func (n *Number) Query(ctx context.Context, rt *Runtime) *Stream {
	return rt.Execute(ctx, n)
}

func (n *Number) String() string {
	if n.Value == float64(int64(n.Value)) {
		return fmt.Sprintf("%.1f", n.Value)
	}
	return fmt.Sprintf("%g", n.Value)
}

var varCounter int64

// Variable is a named placeholder whose identity is the pointer itself —
// two textually identical variables allocated separately are distinct.
type Variable struct {
	id   int64
	name string
}

// NewVar allocates a fresh variable. Call this once per lexical occurrence
// within a clause the first time that name is seen; later occurrences of
// the same name within one clause should reuse the same *Variable.
func NewVar(name string) *Variable {
	return &Variable{id: atomic.AddInt64(&varCounter, 1), name: name}
}

// Name returns the variable's declared name (for display and for the
// by-name lookups the expression binder performs).
func (v *Variable) Name() string { return v.name }

func (v *Variable) Match(other Term) (*Binding, bool) {
	if ov, ok := other.(*Variable); ok && ov == v {
		return EmptyBinding(), true
	}
	return EmptyBinding().Extend(v, other), true
}

func (v *Variable) Substitute(b *Binding) Term {
	if t, ok := b.Lookup(v); ok {
		return t.Substitute(b)
	}
	return v
}

func (v *Variable) Query(ctx context.Context, rt *Runtime) *Stream {
	return rt.Execute(ctx, v)
}

func (v *Variable) String() string {
	if v.name != "" {
		return v.name
	}
	return fmt.Sprintf("_G%d", v.id)
}

// Compound is a predicate name plus an ordered, fixed-arity argument list.
type Compound struct {
	Name string
	Args []Term
}

// NewCompound constructs a Compound. A zero-arity Compound behaves like an
// Atom for matching and display purposes but keeps its own identity —
// callers that want a true nullary symbol should use NewAtom instead.
func NewCompound(name string, args ...Term) *Compound {
	return &Compound{Name: name, Args: args}
}

func (c *Compound) Arity() int { return len(c.Args) }

func (c *Compound) Match(other Term) (*Binding, bool) {
	if ov, ok := other.(*Variable); ok {
		return ov.Match(c)
	}
	oc, ok := other.(*Compound)
	if !ok || oc.Name != c.Name || len(oc.Args) != len(c.Args) {
		return nil, false
	}
	out := EmptyBinding()
	for i := range c.Args {
		m, ok := c.Args[i].Match(oc.Args[i])
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

func (c *Compound) Substitute(b *Binding) Term {
	args := make([]Term, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.Substitute(b)
	}
	return &Compound{Name: c.Name, Args: args}
}

func (c *Compound) Query(ctx context.Context, rt *Runtime) *Stream {
	return rt.Execute(ctx, c)
}

func (c *Compound) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	s := c.Name + "("
	for i, a := range c.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

// True is the neutral-success control marker; it is the body of a fact.
type True struct{}

func (True) Match(other Term) (*Binding, bool) {
	if ov, ok := other.(*Variable); ok {
		return ov.Match(True{})
	}
	if _, ok := other.(True); ok {
		return EmptyBinding(), true
	}
	return nil, false
}

func (t True) Substitute(b *Binding) Term { return t }

func (t True) Query(ctx context.Context, rt *Runtime) *Stream { return singleton(t) }

func (True) String() string { return "true" }

// False is the one-shot failure sentinel produced by `fail`. It is never
// stored in a binding; it flows through the answer stream to signal that
// the current alternative produced no usable solution.
type False struct{}

func (False) Match(other Term) (*Binding, bool) {
	if _, ok := other.(False); ok {
		return EmptyBinding(), true
	}
	return nil, false
}

func (f False) Substitute(b *Binding) Term { return f }

func (f False) Query(ctx context.Context, rt *Runtime) *Stream { return singleton(f) }

func (False) String() string { return "fail" }

// Cut is the commit marker produced by `!`. Reaching it in a clause body
// commits to every choice made since entering the current predicate.
type Cut struct{}

func (Cut) Match(other Term) (*Binding, bool) {
	if _, ok := other.(Cut); ok {
		return EmptyBinding(), true
	}
	return nil, false
}

func (c Cut) Substitute(b *Binding) Term { return c }

func (c Cut) Query(ctx context.Context, rt *Runtime) *Stream { return singleton(c) }

func (Cut) String() string { return "!" }
