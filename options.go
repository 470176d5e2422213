package mimic

import (
	"time"
)

// SessionConfig holds configuration derived from session options.
type SessionConfig struct {
	Now func() time.Time
}

// DefaultSessionConfig returns defaults.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Now: time.Now,
	}
}

// Option defines a functional option for a session.
type Option func(*SessionConfig)

// WithNow overrides the clock used to timestamp recorded invocations.
// Useful for deterministic history output in tests.
func WithNow(now func() time.Time) Option {
	return func(c *SessionConfig) {
		if now != nil {
			c.Now = now
		}
	}
}

// MockConfig holds configuration derived from mock options.
type MockConfig struct {
	Scope      Scope
	Module     string
	Filter     Filter
	Verifiable bool
}

// MockOption defines a functional option for a mock registration.
type MockOption func(*MockConfig)

// InScope registers the mock in the given scope instead of the script scope.
func InScope(scope Scope) MockOption {
	return func(c *MockConfig) {
		c.Scope = scope
	}
}

// InModule registers the mock inside the named module's scope, so calls made
// by that module's own handlers are intercepted.
func InModule(name string) MockOption {
	return func(c *MockConfig) {
		c.Module = name
	}
}

// WithFilter restricts the mock to calls whose arguments satisfy f.
func WithFilter(f Filter) MockOption {
	return func(c *MockConfig) {
		c.Filter = f
	}
}

// Verifiable marks the registration as an expectation: session verification
// fails unless the mock is invoked at least once.
func Verifiable() MockOption {
	return func(c *MockConfig) {
		c.Verifiable = true
	}
}

// CallConfig holds configuration derived from call-query options.
type CallConfig struct {
	Scope  Scope
	Module string
	Filter Filter
	Count  int  // Expected number of matching calls.
	Exact  bool // Exact count when true, lower bound otherwise.
}

// DefaultCallConfig returns defaults: at least one matching call, in any scope.
func DefaultCallConfig() CallConfig {
	return CallConfig{
		Count: 1,
	}
}

// CallOption defines a functional option for querying and asserting on
// recorded calls.
type CallOption func(*CallConfig)

// FromScope restricts the query to calls dispatched from the given scope.
func FromScope(scope Scope) CallOption {
	return func(c *CallConfig) {
		c.Scope = scope
	}
}

// FromModule restricts the query to calls dispatched from inside the named
// module's scope.
func FromModule(name string) CallOption {
	return func(c *CallConfig) {
		c.Module = name
	}
}

// MatchingArgs restricts the query to calls whose arguments satisfy f.
func MatchingArgs(f Filter) CallOption {
	return func(c *CallConfig) {
		c.Filter = f
	}
}

// Times expects exactly n matching calls. Times(0) asserts the command was
// never called.
func Times(n int) CallOption {
	return func(c *CallConfig) {
		if n < 0 {
			n = 0
		}

		c.Count = n
		c.Exact = true
	}
}

// AtLeast expects n or more matching calls.
func AtLeast(n int) CallOption {
	return func(c *CallConfig) {
		if n < 1 {
			n = 1
		}

		c.Count = n
		c.Exact = false
	}
}
