package logic

import "github.com/hashicorp/go-hclog"

// Option configures a *Runtime at construction time, in the style of the
// teacher's worker-pool configuration (internal/parallel's
// NewDynamicWorkerPoolWithConfig): a small struct assembled by functional
// options rather than a long constructor argument list.
type Option func(*Runtime)

// WithDatabase seeds the runtime with an existing database instead of an
// empty one.
func WithDatabase(db *Database) Option {
	return func(rt *Runtime) { rt.db = db }
}

// WithLogger attaches a structured trace logger. Goal entry, dispatch to an
// extension, cut, and failed arithmetic/comparison evaluation are logged at
// trace level, and malformed assert/retract arguments at warn level;
// backtracking and successful database mutations are not logged. The
// default is a null logger, so this is zero-overhead unless set.
func WithLogger(l hclog.Logger) Option {
	return func(rt *Runtime) { rt.logger = l }
}

// WithExtensions seeds the runtime with an existing extension registry.
func WithExtensions(ext *ExtensionRegistry) Option {
	return func(rt *Runtime) { rt.extensions = ext }
}
