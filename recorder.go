package mimic

import (
	"fmt"
	"time"
)

// Registration is one substitute handler installed by Session.Mock. It is
// keyed by (Scope, Command); Seq orders it against other registrations and
// against recorded invocations.
type Registration struct {
	Command    string
	Scope      Scope
	Verifiable bool
	Seq        uint64

	body    Handler
	filter  Filter
	invoked bool
}

// Filtered reports whether the registration is restricted by an argument filter.
func (r *Registration) Filtered() bool {
	return r.filter != nil
}

// String returns a human-readable label for the registration.
func (r *Registration) String() string {
	if r.Filtered() {
		return fmt.Sprintf("%s (scope %s, filtered)", r.Command, r.Scope)
	}

	return fmt.Sprintf("%s (scope %s)", r.Command, r.Scope)
}

// matches reports whether the registration's filter accepts args.
func (r *Registration) matches(args Args) bool {
	return r.filter == nil || r.filter(args)
}

// Invocation is one recorded dispatch. Every call flowing through an
// intercepted dispatcher produces exactly one Invocation, whether a mock or
// the original handler ran it.
type Invocation struct {
	Command string
	Scope   Scope
	Args    Args
	Seq     uint64
	At      time.Time

	// Registration is the mock that handled the call, or nil when the
	// dispatcher's original handler (or no handler at all) ran.
	Registration *Registration
}

// Matched reports whether a mock registration handled the call.
func (inv *Invocation) Matched() bool {
	return inv.Registration != nil
}

// matches reports whether the invocation satisfies a call query for command.
func (inv *Invocation) matches(command string, cfg CallConfig) bool {
	if inv.Command != command {
		return false
	}

	if cfg.Scope != nil && inv.Scope != cfg.Scope {
		return false
	}

	if cfg.Filter != nil && !cfg.Filter(inv.Args) {
		return false
	}

	return true
}
