package logic

// Binding is a persistent mapping from variable identity to term. Every
// operation that would "change" a Binding returns a new one; the receiver
// is never mutated. This plays the role of a most-general-unifier
// accumulator without a separate union-find structure.
type Binding struct {
	table map[*Variable]Term
}

// EmptyBinding returns a binding with no entries.
func EmptyBinding() *Binding {
	return &Binding{table: map[*Variable]Term{}}
}

// Lookup returns the term bound to v, if any.
func (b *Binding) Lookup(v *Variable) (Term, bool) {
	if b == nil {
		return nil, false
	}
	t, ok := b.table[v]
	return t, ok
}

// Extend returns a new Binding with v bound to t, keeping all existing
// entries. It does not check consistency with existing bindings — callers
// that need that check should go through Merge.
func (b *Binding) Extend(v *Variable, t Term) *Binding {
	out := &Binding{table: make(map[*Variable]Term, len(b.table)+1)}
	for k, v := range b.table {
		out.table[k] = v
	}
	out.table[v] = t
	return out
}

// Len reports the number of bindings.
func (b *Binding) Len() int {
	if b == nil {
		return 0
	}
	return len(b.table)
}

// Entries returns the binding's entries as a snapshot slice, for callers
// (such as the REPL) that need to enumerate variable/value pairs.
func (b *Binding) Entries() []struct {
	Var  *Variable
	Term Term
} {
	out := make([]struct {
		Var  *Variable
		Term Term
	}, 0, b.Len())
	if b == nil {
		return out
	}
	for v, t := range b.table {
		out = append(out, struct {
			Var  *Variable
			Term Term
		}{v, t})
	}
	return out
}

// Merge combines two bindings into a fresh one, or reports failure if they
// disagree on a variable's value. Starting from a copy of b1, every (v, t)
// in b2 is absorbed: if v is unbound in the result, it's inserted; if v is
// already bound to u, u and t must themselves unify, and their unifier is
// folded in. A nil argument makes the whole merge fail — nils are
// absorbing.
func Merge(b1, b2 *Binding) (*Binding, bool) {
	if b1 == nil || b2 == nil {
		return nil, false
	}

	out := &Binding{table: make(map[*Variable]Term, len(b1.table)+len(b2.table))}
	for k, v := range b1.table {
		out.table[k] = v
	}

	for v, t := range b2.table {
		existing, ok := out.table[v]
		if !ok {
			out.table[v] = t
			continue
		}
		absorbed, ok := existing.Match(t)
		if !ok {
			return nil, false
		}
		merged, ok := Merge(out, absorbed)
		if !ok {
			return nil, false
		}
		out = merged
	}

	return out, true
}
