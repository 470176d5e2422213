package mimic

import (
	"strings"
)

// VerifyCalled checks the recorded history of command against an expected
// call count. With no count option it requires at least one matching call;
// Times(n) requires exactly n (Times(0) requires none); AtLeast(n) sets a
// lower bound. Scope and filter options narrow which records count.
//
// Verification is read-only: it can be repeated, interleaved with further
// dispatches, and never consumes records.
func (s *Session) VerifyCalled(command string, opts ...CallOption) error {
	cfg := DefaultCallConfig()
	for _, o := range opts {
		o(&cfg)
	}

	scope, err := s.queryScope(cfg)
	if err != nil {
		return err
	}

	cfg.Scope = scope

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrSessionClosed
	}

	actual := 0

	for _, inv := range s.log {
		if inv.matches(command, cfg) {
			actual++
		}
	}

	if cfg.Exact && actual != cfg.Count {
		return &CallCountMismatchError{Command: command, Expected: cfg.Count, Actual: actual, Exact: true}
	}

	if !cfg.Exact && actual < cfg.Count {
		return &CallCountMismatchError{Command: command, Expected: cfg.Count, Actual: actual}
	}

	return nil
}

// VerifyVerifiableMocks checks that every registration marked Verifiable has
// served at least one recorded call. Passing scopes restricts the check to
// registrations made in them. A failure reports every unmet registration at
// once as an *UnmetExpectationError.
func (s *Session) VerifyVerifiableMocks(scopes ...Scope) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrSessionClosed
	}

	var unmet []*Registration

	for _, reg := range s.regs {
		if !reg.Verifiable || reg.invoked {
			continue
		}

		if len(scopes) > 0 && !scopeIn(reg.Scope, scopes) {
			continue
		}

		unmet = append(unmet, reg)
	}

	if len(unmet) > 0 {
		return &UnmetExpectationError{Unmet: unmet}
	}

	return nil
}

// AssertCalled reports whether the call-count expectation for command holds,
// failing the test through the session's reporter when it does not. The
// failure message includes the command's recorded history.
func (s *Session) AssertCalled(command string, opts ...CallOption) bool {
	s.t.Helper()

	err := s.VerifyCalled(command, opts...)
	if err == nil {
		return true
	}

	s.failf(err, s.Calls(command))

	return false
}

// AssertNotCalled reports whether command was never called under the given
// options. It is Times(0) sugar.
func (s *Session) AssertNotCalled(command string, opts ...CallOption) bool {
	s.t.Helper()

	opts = append(opts[:len(opts):len(opts)], Times(0))

	err := s.VerifyCalled(command, opts...)
	if err == nil {
		return true
	}

	s.failf(err, s.Calls(command))

	return false
}

// AssertVerifiableMocks reports whether every verifiable registration
// (optionally restricted to the given scopes) has been invoked, failing the
// test through the session's reporter when one has not.
func (s *Session) AssertVerifiableMocks(scopes ...Scope) bool {
	s.t.Helper()

	err := s.VerifyVerifiableMocks(scopes...)
	if err == nil {
		return true
	}

	s.failf(err, s.History())

	return false
}

// failf reports a verification failure without stopping the test, appending
// the relevant slice of history when there is one.
func (s *Session) failf(err error, history []*Invocation) {
	s.t.Helper()

	var b strings.Builder

	b.WriteString(err.Error())

	if len(history) > 0 {
		b.WriteString("\nrecorded calls:\n")
		WriteHistory(&b, history)
	}

	s.t.Errorf("%s", b.String())
}

func scopeIn(scope Scope, scopes []Scope) bool {
	for _, s := range scopes {
		if s == scope {
			return true
		}
	}

	return false
}
