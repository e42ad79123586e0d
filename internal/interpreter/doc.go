// Package interpreter locates a specific major.minor Python interpreter
// through the host package manager.
//
// The resolver shells out to the package manager binary (Homebrew by
// default) rather than scanning well-known install locations, so the
// launcher picks exactly the interpreter the user sees from
// `brew --prefix python@X.Y`. Any manager that accepts the same
// `--prefix <formula>` query can be configured instead.
package interpreter
