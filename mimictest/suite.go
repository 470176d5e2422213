package mimictest

import (
	"context"
	"fmt"
	"testing"

	"github.com/ruffel/mimic"
)

// Standard categories for grouping tests.
const (
	CategoryResolution   = "resolution"
	CategoryInterception = "interception"
	CategoryScopes       = "scopes"
)

// T is the minimal interface required for testify/assert and require.
type T interface {
	Errorf(format string, args ...any)
	FailNow()
	Context() context.Context
}

// Harness adapts a dispatch implementation to the contract suite: the
// dispatcher under verification plus the host operations the contracts drive
// it with.
type Harness struct {
	// Dispatcher is the implementation under verification.
	Dispatcher mimic.Dispatcher

	// DefineModule creates or returns the named module scope.
	DefineModule func(name string) (mimic.Scope, error)

	// Register defines a command in the given scope.
	Register func(scope mimic.Scope, name string, handler mimic.Handler) error

	// Export makes a module command callable from the script scope while its
	// body keeps resolving from the module.
	Export func(scope mimic.Scope, name string) error

	// Run dispatches a call, taking the call-site scope from ctx.
	Run func(ctx context.Context, call mimic.Call) (any, error)
}

// TestCase defines a single behavioral contract requirement.
type TestCase struct {
	Category    string
	Name        string
	Description string
	Run         func(t T, h Harness)
}

// ID returns the stable, globally unique contract identifier.
func (tc TestCase) ID() string {
	return fmt.Sprintf("%s/%s", tc.Category, tc.Name)
}

// Verify is the standard Go test entry point for dispatcher authors. Every
// contract runs against a fresh harness.
func Verify(t *testing.T, newHarness func() Harness) {
	t.Helper()

	for _, tc := range AllContracts() {
		t.Run(tc.ID(), func(t *testing.T) {
			tc.Run(t, newHarness())
		})
	}
}
