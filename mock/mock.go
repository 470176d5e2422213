package mock

import (
	"github.com/ruffel/mimic"
	"github.com/stretchr/testify/mock"
)

// Dispatcher implements a mock mimic.Dispatcher using testify/mock.
type Dispatcher struct {
	mock.Mock
}

var _ mimic.Dispatcher = (*Dispatcher)(nil)

// New creates a new mock dispatcher.
func New() *Dispatcher {
	return &Dispatcher{}
}

// Root mocks returning the script-level scope.
func (m *Dispatcher) Root() mimic.Scope {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(mimic.Scope)
}

// Module mocks resolving a module scope by name.
func (m *Dispatcher) Module(name string) (mimic.Scope, bool) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}

	return args.Get(0).(mimic.Scope), args.Bool(1)
}

// Lookup mocks resolving a command from a scope.
func (m *Dispatcher) Lookup(scope mimic.Scope, name string) (mimic.Handler, bool) {
	args := m.Called(scope, name)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}

	return args.Get(0).(mimic.Handler), args.Bool(1)
}

// Intercept mocks installing the interception hook.
func (m *Dispatcher) Intercept(hook mimic.Hook) (func(), error) {
	args := m.Called(hook)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(func()), args.Error(1)
}

// Scope implements a mock mimic.Scope using testify/mock.
type Scope struct {
	mock.Mock
}

var _ mimic.Scope = (*Scope)(nil)

// Parent mocks returning the enclosing scope.
func (m *Scope) Parent() mimic.Scope {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(mimic.Scope)
}

// String mocks returning the scope label.
func (m *Scope) String() string {
	args := m.Called()

	return args.String(0)
}

// Restore is a helper returning a no-op restore function for Intercept
// expectations.
// Usage: d.On("Intercept", mock.Anything).Return(Restore(), nil).
func Restore() func() {
	return func() {}
}
