package mimic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnknownCommandError_Error(t *testing.T) {
	t.Parallel()

	t.Run("with scope", func(t *testing.T) {
		t.Parallel()

		e := &UnknownCommandError{Command: "Get-Widget", Scope: &testScope{name: "script"}}
		assert.Equal(t, `unknown command "Get-Widget" in scope script`, e.Error())
	})

	t.Run("without scope", func(t *testing.T) {
		t.Parallel()

		e := &UnknownCommandError{Command: "Get-Widget"}

		assert.NotPanics(t, func() {
			assert.Equal(t, `unknown command "Get-Widget"`, e.Error())
		})
	})
}

func TestUnknownModuleError_Error(t *testing.T) {
	t.Parallel()

	e := &UnknownModuleError{Module: "billing"}
	assert.Equal(t, `unknown module "billing"`, e.Error())
}

func TestUnmetExpectationError_Error(t *testing.T) {
	t.Parallel()

	t.Run("lists every unmet registration", func(t *testing.T) {
		t.Parallel()

		e := &UnmetExpectationError{Unmet: []*Registration{
			{Command: "Get-Widget", Scope: &testScope{name: "script"}},
			{Command: "Send-Mail", Scope: &testScope{name: "module:notify"}, filter: HasArg("to")},
		}}

		assert.Equal(t,
			"2 verifiable mock(s) were never invoked: "+
				"Get-Widget (scope script), Send-Mail (scope module:notify, filtered)",
			e.Error())
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		e := &UnmetExpectationError{}
		assert.Equal(t, "unmet verifiable mocks", e.Error())
	})
}

func TestCallCountMismatchError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *CallCountMismatchError
		want string
	}{
		{
			name: "exact",
			err:  &CallCountMismatchError{Command: "Get-Widget", Expected: 2, Actual: 3, Exact: true},
			want: `command "Get-Widget": expected exactly 2 call(s), recorded 3`,
		},
		{
			name: "at least",
			err:  &CallCountMismatchError{Command: "Get-Widget", Expected: 1, Actual: 0},
			want: `command "Get-Widget": expected at least 1 call(s), recorded 0`,
		},
		{
			name: "never",
			err:  &CallCountMismatchError{Command: "Get-Widget", Expected: 0, Actual: 2, Exact: true},
			want: `command "Get-Widget": expected exactly 0 call(s), recorded 2`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestRegistration_String(t *testing.T) {
	t.Parallel()

	plain := &Registration{Command: "Get-Widget", Scope: &testScope{name: "script"}}
	assert.Equal(t, "Get-Widget (scope script)", plain.String())
	assert.False(t, plain.Filtered())

	filtered := &Registration{Command: "Get-Widget", Scope: &testScope{name: "script"}, filter: HasArg("id")}
	assert.Equal(t, "Get-Widget (scope script, filtered)", filtered.String())
	assert.True(t, filtered.Filtered())
}
