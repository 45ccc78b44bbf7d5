package logic

import (
	"context"
	"sync"
)

// Generator is a host-provided predicate: given the goal's argument
// terms, it lazily produces answer tuples (each the same length as args)
// on the returned channel, closing it when exhausted. Generators should
// respect ctx cancellation so a consumer that stops pulling early doesn't
// leak the goroutine driving the channel.
type Generator func(ctx context.Context, args []Term) <-chan []Term

type extensionKey struct {
	name  string
	arity int
}

// ExtensionRegistry holds host-provided generator predicates registered
// with RegisterFunction (spec.md §4.I).
type ExtensionRegistry struct {
	mu  sync.RWMutex
	fns map[extensionKey]Generator
}

// NewExtensionRegistry creates an empty registry.
func NewExtensionRegistry() *ExtensionRegistry {
	return &ExtensionRegistry{fns: map[extensionKey]Generator{}}
}

// RegisterFunction installs fn as the generator for predicateName/arity.
// A later registration for the same name/arity replaces the earlier one.
func (r *ExtensionRegistry) RegisterFunction(predicateName string, arity int, fn Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fns[extensionKey{predicateName, arity}] = fn
}

// Lookup returns the generator registered for name/arity, if any.
func (r *ExtensionRegistry) Lookup(name string, arity int) (Generator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.fns[extensionKey{name, arity}]
	return fn, ok
}

// queryExtension runs a registered generator against goal, packing each
// answer tuple into a fresh Compound with goal's predicate name and
// matching it against goal exactly like a database clause head would be
// matched.
func queryExtension(ctx context.Context, fn Generator, goal *Compound) *Stream {
	out := NewStream()
	go func() {
		defer out.Close()
		tuples := fn(ctx, goal.Args)
		for {
			select {
			case <-ctx.Done():
				return
			case tuple, ok := <-tuples:
				if !ok {
					return
				}
				answer := NewCompound(goal.Name, tuple...)
				if _, ok := goal.Match(answer); ok {
					out.Put(answer)
				}
			}
		}
	}()
	return out
}
