package mimic

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIntercepted indicates that the dispatcher already has an active
// interception hook, so another session cannot attach to it.
var ErrIntercepted = errors.New("dispatcher is already intercepted")

// ErrSessionClosed indicates that an operation was attempted on a closed session.
var ErrSessionClosed = errors.New("session is closed")

// UnknownCommandError indicates that a dispatched command resolved to nothing:
// no registration in the session matched it and the dispatcher has no original
// handler for it either.
type UnknownCommandError struct {
	Command string
	Scope   Scope
}

func (e *UnknownCommandError) Error() string {
	if e.Scope == nil {
		return fmt.Sprintf("unknown command %q", e.Command)
	}

	return fmt.Sprintf("unknown command %q in scope %s", e.Command, e.Scope)
}

// UnknownModuleError indicates that a named module is not defined on the
// session's dispatcher.
type UnknownModuleError struct {
	Module string
}

func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("unknown module %q", e.Module)
}

// UnmetExpectationError reports verifiable registrations that were never
// invoked. Unmet preserves registration order.
type UnmetExpectationError struct {
	Unmet []*Registration
}

func (e *UnmetExpectationError) Error() string {
	if len(e.Unmet) == 0 {
		return "unmet verifiable mocks"
	}

	labels := make([]string, 0, len(e.Unmet))
	for _, reg := range e.Unmet {
		labels = append(labels, reg.String())
	}

	return fmt.Sprintf("%d verifiable mock(s) were never invoked: %s",
		len(e.Unmet), strings.Join(labels, ", "))
}

// CallCountMismatchError indicates that the recorded number of matching calls
// does not satisfy a call-count assertion. Exact distinguishes an exact-count
// expectation from an at-least expectation.
type CallCountMismatchError struct {
	Command  string
	Expected int
	Actual   int
	Exact    bool
}

func (e *CallCountMismatchError) Error() string {
	if e.Exact {
		return fmt.Sprintf("command %q: expected exactly %d call(s), recorded %d",
			e.Command, e.Expected, e.Actual)
	}

	return fmt.Sprintf("command %q: expected at least %d call(s), recorded %d",
		e.Command, e.Expected, e.Actual)
}
