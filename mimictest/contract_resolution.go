package mimictest

import (
	"context"

	"github.com/ruffel/mimic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constant builds a handler that ignores its arguments and returns v.
func constant(v any) mimic.Handler {
	return func(context.Context, mimic.Args) (any, error) {
		return v, nil
	}
}

func resolutionContracts() []TestCase {
	return []TestCase{
		{
			Category: CategoryResolution,
			Name:     "script-command-runs",
			Run: func(t T, h Harness) {
				require.NoError(t, h.Register(h.Dispatcher.Root(), "greet", constant("hello")))

				out, err := h.Run(t.Context(), mimic.NewCall("greet"))
				require.NoError(t, err)

				assert.Equal(t, "hello", out)
			},
		},
		{
			Category: CategoryResolution,
			Name:     "arguments-bound",
			Run: func(t T, h Harness) {
				echo := func(_ context.Context, args mimic.Args) (any, error) {
					return args.Get("message"), nil
				}
				require.NoError(t, h.Register(h.Dispatcher.Root(), "echo", echo))

				out, err := h.Run(t.Context(), mimic.NewCall("echo", mimic.Named("message", "ping")))
				require.NoError(t, err)

				assert.Equal(t, "ping", out)
			},
		},
		{
			Category:    CategoryResolution,
			Name:        "unknown-command-errors",
			Description: "Dispatching an unresolvable name must return *mimic.UnknownCommandError",
			Run: func(t T, h Harness) {
				_, err := h.Run(t.Context(), mimic.NewCall("no-such-command"))
				require.Error(t, err)

				var unknownErr *mimic.UnknownCommandError
				require.ErrorAs(t, err, &unknownErr)
				assert.Equal(t, "no-such-command", unknownErr.Command)
			},
		},
		{
			Category:    CategoryResolution,
			Name:        "module-falls-through-to-script",
			Description: "Module scopes resolve names they do not define against the script scope",
			Run: func(t T, h Harness) {
				mod, err := h.DefineModule("billing")
				require.NoError(t, err)

				require.NoError(t, h.Register(h.Dispatcher.Root(), "greet", constant("script")))

				out, err := h.Run(mimic.WithScope(t.Context(), mod), mimic.NewCall("greet"))
				require.NoError(t, err)

				assert.Equal(t, "script", out)
			},
		},
		{
			Category:    CategoryResolution,
			Name:        "module-shadows-script",
			Description: "A module definition wins over a script definition for calls made from the module",
			Run: func(t T, h Harness) {
				mod, err := h.DefineModule("billing")
				require.NoError(t, err)

				require.NoError(t, h.Register(h.Dispatcher.Root(), "amount", constant("script")))
				require.NoError(t, h.Register(mod, "amount", constant("module")))

				out, err := h.Run(mimic.WithScope(t.Context(), mod), mimic.NewCall("amount"))
				require.NoError(t, err)
				assert.Equal(t, "module", out)

				out, err = h.Run(t.Context(), mimic.NewCall("amount"))
				require.NoError(t, err)
				assert.Equal(t, "script", out)
			},
		},
		{
			Category:    CategoryResolution,
			Name:        "module-internals-hidden-from-script",
			Description: "Names defined only inside a module must not resolve from the script scope",
			Run: func(t T, h Harness) {
				mod, err := h.DefineModule("billing")
				require.NoError(t, err)

				require.NoError(t, h.Register(mod, "internal-rate", constant(42)))

				_, err = h.Run(t.Context(), mimic.NewCall("internal-rate"))

				var unknownErr *mimic.UnknownCommandError
				require.ErrorAs(t, err, &unknownErr)
			},
		},
	}
}
