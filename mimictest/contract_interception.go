package mimictest

import (
	"context"

	"github.com/ruffel/mimic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthrough is a hook that behaves exactly like no hook at all.
func passthrough(ctx context.Context, scope mimic.Scope, call mimic.Call, next mimic.Handler) (any, error) {
	if next == nil {
		return nil, &mimic.UnknownCommandError{Command: call.Command, Scope: scope}
	}

	return next(ctx, call.Args)
}

func interceptionContracts() []TestCase {
	return []TestCase{
		hookObservesDispatchesContract(),
		hookMayConsumeContract(),
		hookSeesUnresolvableContract(),
		singleHookSlotContract(),
		restoreReopensSlotContract(),
	}
}

func hookObservesDispatchesContract() TestCase {
	return TestCase{
		Category:    CategoryInterception,
		Name:        "hook-observes-dispatches",
		Description: "An installed hook must see every dispatch and may delegate to the original handler",
		Run: func(t T, h Harness) {
			require.NoError(t, h.Register(h.Dispatcher.Root(), "greet", constant("hello")))

			var calls []mimic.Call

			restore, err := h.Dispatcher.Intercept(func(ctx context.Context, _ mimic.Scope, call mimic.Call, next mimic.Handler) (any, error) {
				calls = append(calls, call)
				return next(ctx, call.Args)
			})
			require.NoError(t, err)

			defer restore()

			out, err := h.Run(t.Context(), mimic.NewCall("greet", mimic.Positional("bob")))
			require.NoError(t, err)
			assert.Equal(t, "hello", out)

			require.Len(t, calls, 1)
			assert.Equal(t, "greet", calls[0].Command)
			assert.Equal(t, []any{"bob"}, calls[0].Args.Positional())
		},
	}
}

func hookMayConsumeContract() TestCase {
	return TestCase{
		Category:    CategoryInterception,
		Name:        "hook-may-consume",
		Description: "A hook that does not run the original handler supplies the dispatch result itself",
		Run: func(t T, h Harness) {
			called := false

			require.NoError(t, h.Register(h.Dispatcher.Root(), "greet", func(context.Context, mimic.Args) (any, error) {
				called = true
				return "hello", nil
			}))

			restore, err := h.Dispatcher.Intercept(func(context.Context, mimic.Scope, mimic.Call, mimic.Handler) (any, error) {
				return "intercepted", nil
			})
			require.NoError(t, err)

			defer restore()

			out, err := h.Run(t.Context(), mimic.NewCall("greet"))
			require.NoError(t, err)

			assert.Equal(t, "intercepted", out)
			assert.False(t, called)
		},
	}
}

func hookSeesUnresolvableContract() TestCase {
	return TestCase{
		Category:    CategoryInterception,
		Name:        "hook-sees-unresolvable",
		Description: "Unresolvable dispatches still reach the hook, with a nil original handler",
		Run: func(t T, h Harness) {
			var sawNil bool

			restore, err := h.Dispatcher.Intercept(func(_ context.Context, _ mimic.Scope, _ mimic.Call, next mimic.Handler) (any, error) {
				sawNil = next == nil
				return "synthesized", nil
			})
			require.NoError(t, err)

			defer restore()

			out, err := h.Run(t.Context(), mimic.NewCall("no-such-command"))
			require.NoError(t, err)

			assert.Equal(t, "synthesized", out)
			assert.True(t, sawNil)
		},
	}
}

func singleHookSlotContract() TestCase {
	return TestCase{
		Category:    CategoryInterception,
		Name:        "single-hook-slot",
		Description: "A second Intercept while a hook is installed must wrap mimic.ErrIntercepted",
		Run: func(t T, h Harness) {
			restore, err := h.Dispatcher.Intercept(passthrough)
			require.NoError(t, err)

			defer restore()

			_, err = h.Dispatcher.Intercept(passthrough)
			require.ErrorIs(t, err, mimic.ErrIntercepted)
		},
	}
}

func restoreReopensSlotContract() TestCase {
	return TestCase{
		Category:    CategoryInterception,
		Name:        "restore-reopens-slot",
		Description: "After restore the hook is gone and the slot accepts a new hook",
		Run: func(t T, h Harness) {
			require.NoError(t, h.Register(h.Dispatcher.Root(), "greet", constant("hello")))

			count := 0

			restore, err := h.Dispatcher.Intercept(func(ctx context.Context, scope mimic.Scope, call mimic.Call, next mimic.Handler) (any, error) {
				count++
				return passthrough(ctx, scope, call, next)
			})
			require.NoError(t, err)

			restore()

			out, err := h.Run(t.Context(), mimic.NewCall("greet"))
			require.NoError(t, err)
			assert.Equal(t, "hello", out)
			assert.Zero(t, count)

			again, err := h.Dispatcher.Intercept(passthrough)
			require.NoError(t, err)

			again()
		},
	}
}
