package dispatch

import (
	"github.com/ruffel/mimic"
)

// scope implements mimic.Scope. Pointer identity keys the command tables, so
// two environments never share a scope even when module names collide.
type scope struct {
	name   string
	parent *scope
}

// Parent returns the enclosing scope, or nil for the script scope.
func (s *scope) Parent() mimic.Scope {
	if s.parent == nil {
		return nil
	}

	return s.parent
}

// String returns the scope label, "script" or "module:<name>".
func (s *scope) String() string {
	return s.name
}
