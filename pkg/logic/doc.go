// Package logic implements the core engine of a small Prolog-family
// interpreter: term representation, unification, substitution, and an
// SLD-style resolver with backtracking, cut, and mutable clause database.
//
// The package never parses program text. Callers (or an external parser)
// construct terms and clauses directly with the constructors in term.go,
// list.go, expr.go, and clause.go, then drive resolution through a
// *Runtime. This mirrors how the rest of a Prolog toolchain — the lexer,
// parser, and REPL — would sit outside this package.
package logic
