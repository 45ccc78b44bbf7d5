package logic

import "context"

// Stream is a lazy, pull-based sequence of answers produced by resolution.
// Producers push onto an unbuffered channel from a goroutine; consumers
// pull with Next until the stream reports it is done. Ceasing to pull
// releases the producer goroutine via ctx cancellation — the caller that
// owns ctx is responsible for cancelling it once it stops consuming.
type Stream struct {
	ch   chan Term
	done chan struct{}
}

// NewStream creates an empty, open stream.
func NewStream() *Stream {
	return &Stream{
		ch:   make(chan Term),
		done: make(chan struct{}),
	}
}

// Put pushes a term onto the stream. It blocks until the consumer pulls it
// or the stream is closed out from under the producer.
func (s *Stream) Put(t Term) {
	select {
	case s.ch <- t:
	case <-s.done:
	}
}

// PutCtx is Put with an additional cancellation path: it returns false
// without blocking further once ctx is done, so a producer driving a long
// search can unwind as soon as its caller stops consuming (spec.md §5).
func (s *Stream) PutCtx(ctx context.Context, t Term) bool {
	select {
	case s.ch <- t:
		return true
	case <-s.done:
		return false
	case <-ctx.Done():
		return false
	}
}

// Close marks the stream as exhausted. Safe to call more than once.
func (s *Stream) Close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// Next pulls the next answer from the stream. The second return value is
// false once the stream is exhausted or ctx is cancelled.
func (s *Stream) Next(ctx context.Context) (Term, bool) {
	select {
	case t, ok := <-s.ch:
		if !ok {
			return nil, false
		}
		return t, true
	case <-s.done:
		return nil, false
	case <-ctx.Done():
		return nil, false
	}
}

// Collect drains up to n answers (n <= 0 means unbounded) into a slice.
// Mainly used by tests and by the demo program in cmd/example.
func (s *Stream) Collect(ctx context.Context, n int) []Term {
	var out []Term
	for n <= 0 || len(out) < n {
		t, ok := s.Next(ctx)
		if !ok {
			break
		}
		out = append(out, t)
	}
	return out
}

// singleton returns a stream producing exactly t, then closing.
func singleton(t Term) *Stream {
	s := NewStream()
	go func() {
		defer s.Close()
		s.Put(t)
	}()
	return s
}

// empty returns a stream that closes immediately without producing.
func empty() *Stream {
	s := NewStream()
	s.Close()
	return s
}
