package logic

import "context"

// EmptyList is the canonical terminator of a list. All empty lists compare
// equal; there is exactly one logical empty list, represented here as a
// stateless value type so equality is simple identity-of-kind.
type EmptyList struct{}

func (EmptyList) Match(other Term) (*Binding, bool) {
	if ov, ok := other.(*Variable); ok {
		return ov.Match(EmptyList{})
	}
	if _, ok := other.(EmptyList); ok {
		return EmptyBinding(), true
	}
	return nil, false
}

func (e EmptyList) Substitute(b *Binding) Term { return e }

func (e EmptyList) Query(ctx context.Context, rt *Runtime) *Stream { return singleton(e) }

func (EmptyList) String() string { return "[]" }

// Dot is a cons cell: Head followed by Tail. A chain of Dot cells
// terminated by EmptyList is a fully built list.
type Dot struct {
	Head Term
	Tail Term
}

// NewDot constructs a single cons cell.
func NewDot(head, tail Term) *Dot { return &Dot{Head: head, Tail: tail} }

// NewList builds a proper list out of the given elements, terminated by
// EmptyList (or by tail, if one is supplied) via NewListWithTail.
func NewList(elems ...Term) Term { return NewListWithTail(EmptyList{}, elems...) }

// NewListWithTail builds elems as a chain of Dot cells ending in tail,
// useful for constructing the [H|T] shape a parser would deliver.
func NewListWithTail(tail Term, elems ...Term) Term {
	out := tail
	for i := len(elems) - 1; i >= 0; i-- {
		out = NewDot(elems[i], out)
	}
	return out
}

func (d *Dot) Match(other Term) (*Binding, bool) {
	switch o := other.(type) {
	case *Variable:
		return o.Match(d)
	case *Dot:
		headB, ok := d.Head.Match(o.Head)
		if !ok {
			return nil, false
		}
		tailB, ok := d.Tail.Match(o.Tail)
		if !ok {
			return nil, false
		}
		return Merge(headB, tailB)
	case *Bar:
		return o.Match(d)
	default:
		return nil, false
	}
}

func (d *Dot) Substitute(b *Binding) Term {
	return &Dot{Head: d.Head.Substitute(b), Tail: d.Tail.Substitute(b)}
}

func (d *Dot) Query(ctx context.Context, rt *Runtime) *Stream { return rt.Execute(ctx, d) }

func (d *Dot) String() string {
	s := "[" + d.Head.String()
	tail := d.Tail
	for {
		switch t := tail.(type) {
		case *Dot:
			s += ", " + t.Head.String()
			tail = t.Tail
			continue
		case EmptyList:
			return s + "]"
		default:
			return s + "|" + t.String() + "]"
		}
	}
}

// Bar is the partial-list pattern [H1, ..., Hk | T] a parser produces for
// the "bar" list syntax. It only ever appears as a pattern being matched
// against a concrete list; it is never itself the result of substitution
// into a fully built list.
type Bar struct {
	Heads []Term
	Tail  Term
}

// NewBar constructs a Bar pattern.
func NewBar(tail Term, heads ...Term) *Bar { return &Bar{Heads: heads, Tail: tail} }

func (bar *Bar) Match(other Term) (*Binding, bool) {
	switch o := other.(type) {
	case *Variable:
		return o.Match(bar)
	case *Dot:
		elems, rest := flattenDots(o)
		if len(elems) < len(bar.Heads) {
			return nil, false
		}
		out := EmptyBinding()
		for i, h := range bar.Heads {
			m, ok := h.Match(elems[i])
			if !ok {
				return nil, false
			}
			merged, ok := Merge(out, m)
			if !ok {
				return nil, false
			}
			out = merged
		}
		suffix := NewListWithTail(rest, elems[len(bar.Heads):]...)
		tailB, ok := bar.Tail.Match(suffix)
		if !ok {
			return nil, false
		}
		return Merge(out, tailB)
	default:
		return nil, false
	}
}

func (bar *Bar) Substitute(b *Binding) Term {
	heads := make([]Term, len(bar.Heads))
	for i, h := range bar.Heads {
		heads[i] = h.Substitute(b)
	}
	return &Bar{Heads: heads, Tail: bar.Tail.Substitute(b)}
}

func (bar *Bar) Query(ctx context.Context, rt *Runtime) *Stream { return rt.Execute(ctx, bar) }

func (bar *Bar) String() string {
	s := "["
	for i, h := range bar.Heads {
		if i > 0 {
			s += ", "
		}
		s += h.String()
	}
	return s + "|" + bar.Tail.String() + "]"
}

// flattenDots walks a chain of Dot cells, returning its elements in order
// and whatever term terminates the chain (EmptyList, a Variable, or
// another non-Dot term if the chain is improper).
func flattenDots(d *Dot) ([]Term, Term) {
	var elems []Term
	var cur Term = d
	for {
		dc, ok := cur.(*Dot)
		if !ok {
			return elems, cur
		}
		elems = append(elems, dc.Head)
		cur = dc.Tail
	}
}

// ListToSlice returns a list term's elements and its final tail (EmptyList
// for a proper list). It understands Dot chains; any other term is
// returned as a zero-length prefix with itself as the tail.
func ListToSlice(t Term) ([]Term, Term) {
	d, ok := t.(*Dot)
	if !ok {
		return nil, t
	}
	return flattenDots(d)
}
