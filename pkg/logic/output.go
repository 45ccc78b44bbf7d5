package logic

import "strings"

// OutputStream is the per-runtime append-only text buffer write/nl/tab
// append to. The REPL (external) calls Read after each answer to obtain
// the text produced since the previous call, then Reset before issuing a
// fresh query (spec.md §4.H). It is not safe for concurrent use — the
// engine is single-threaded and cooperative (spec.md §5).
type OutputStream struct {
	buf strings.Builder
	pos int
}

// NewOutputStream creates an empty output stream.
func NewOutputStream() *OutputStream { return &OutputStream{} }

// Write appends text to the buffer.
func (o *OutputStream) Write(text string) { o.buf.WriteString(text) }

// Read returns the text written since the previous Read (or since the
// stream was created or last Reset), then advances the read cursor.
func (o *OutputStream) Read() string {
	full := o.buf.String()
	text := full[o.pos:]
	o.pos = len(full)
	return text
}

// Reset discards the buffer entirely and rewinds the read cursor, ready
// for a fresh query.
func (o *OutputStream) Reset() {
	o.buf.Reset()
	o.pos = 0
}
