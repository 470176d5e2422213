// Package mimic provides scoped command mocking for dispatch-table applications.
//
// # Core Interfaces
//
// - Dispatcher: the host's command table (resolves names to handlers, accepts an interception hook).
// - Scope: an isolation boundary for resolution and mocking (the script scope, or a module's internals).
//
// # Sessions
//
// A Session owns the mocking state of a single test context: the substitute
// registrations, the invocation recorder, and the verification engine. Sessions
// install themselves into a Dispatcher via its interception hook and never touch
// the dispatcher's own command table, so tearing a session down restores the
// original dispatch exactly.
//
// # Scopes
//
// Interception is keyed by (scope, command). A mock registered in a module's
// scope intercepts calls made by that module's own handlers; calls to the same
// command from the script scope are unaffected unless mocked there too.
package mimic

import (
	"context"
)

// Scope identifies an isolation boundary for command resolution and mocking.
// Implementations must be comparable (pointer types) so scopes can key maps.
type Scope interface {
	// Parent returns the enclosing scope, or nil for the script scope.
	Parent() Scope

	// String returns a human-readable scope label, e.g. "script" or "module:builder".
	String() string
}

// Handler is the uniform callable shape behind every command: original
// implementations and mock bodies alike take bound arguments and produce a
// single result or an error.
type Handler func(ctx context.Context, args Args) (any, error)

// Hook observes and may consume every dispatch flowing through a Dispatcher.
//
// scope is the call-site scope. next is the handler the dispatcher would have
// run (already bound to its defining scope), or nil when the command does not
// resolve. A hook that does not want the call runs next itself.
type Hook func(ctx context.Context, scope Scope, call Call, next Handler) (any, error)

// Dispatcher abstracts the host command-dispatch mechanism mimic intercepts
// (e.g. the in-memory table in package dispatch, or an application's own router).
type Dispatcher interface {
	// Root returns the script-level scope.
	Root() Scope

	// Module returns the scope of the named module, if defined.
	Module(name string) (Scope, bool)

	// Lookup resolves name from scope, walking outward to the script scope.
	// It reports whether the command exists in any resolvable form.
	Lookup(scope Scope, name string) (Handler, bool)

	// Intercept installs hook so that it sees every subsequent dispatch.
	// Only one hook may be active; a second install fails with ErrIntercepted
	// until the returned restore function is called.
	Intercept(hook Hook) (restore func(), err error)
}

// TestingT is the minimal surface mimic needs from a test framework.
// *testing.T satisfies it.
type TestingT interface {
	Errorf(format string, args ...any)
	Helper()
}

// cleanupRegistrar is detected by interface upgrade so sessions can tear
// themselves down when the test ends. Satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(func())
}
