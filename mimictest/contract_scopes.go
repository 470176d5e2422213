package mimictest

import (
	"context"

	"github.com/ruffel/mimic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scopeContracts() []TestCase {
	return []TestCase{
		{
			Category:    CategoryScopes,
			Name:        "parent-chain",
			Description: "Module scopes chain to the script scope; the script scope has no parent",
			Run: func(t T, h Harness) {
				root := h.Dispatcher.Root()
				require.NotNil(t, root)
				assert.Nil(t, root.Parent())
				assert.NotEmpty(t, root.String())

				mod, err := h.DefineModule("widgets")
				require.NoError(t, err)

				assert.Equal(t, root, mod.Parent())
				assert.NotEmpty(t, mod.String())
			},
		},
		{
			Category:    CategoryScopes,
			Name:        "module-scope-stable",
			Description: "Defining the same module twice yields the same scope",
			Run: func(t T, h Harness) {
				first, err := h.DefineModule("widgets")
				require.NoError(t, err)

				second, err := h.DefineModule("widgets")
				require.NoError(t, err)

				assert.Equal(t, first, second)

				byName, ok := h.Dispatcher.Module("widgets")
				require.True(t, ok)
				assert.Equal(t, first, byName)
			},
		},
		{
			Category:    CategoryScopes,
			Name:        "call-site-from-context",
			Description: "The scope carried by ctx is the call-site scope the hook observes",
			Run: func(t T, h Harness) {
				mod, err := h.DefineModule("billing")
				require.NoError(t, err)

				require.NoError(t, h.Register(mod, "amount", constant(42)))

				var seen mimic.Scope

				restore, err := h.Dispatcher.Intercept(func(ctx context.Context, scope mimic.Scope, call mimic.Call, next mimic.Handler) (any, error) {
					seen = scope
					return passthrough(ctx, scope, call, next)
				})
				require.NoError(t, err)

				defer restore()

				_, err = h.Run(mimic.WithScope(t.Context(), mod), mimic.NewCall("amount"))
				require.NoError(t, err)

				assert.Equal(t, mod, seen)
			},
		},
		{
			Category:    CategoryScopes,
			Name:        "exported-handler-bound-to-module",
			Description: "An exported module command's own dispatches resolve module-first, even when called from script",
			Run: func(t T, h Harness) {
				mod, err := h.DefineModule("billing")
				require.NoError(t, err)

				require.NoError(t, h.Register(h.Dispatcher.Root(), "amount", constant("script")))
				require.NoError(t, h.Register(mod, "amount", constant("module")))
				require.NoError(t, h.Register(mod, "invoice", func(ctx context.Context, _ mimic.Args) (any, error) {
					return h.Run(ctx, mimic.NewCall("amount"))
				}))
				require.NoError(t, h.Export(mod, "invoice"))

				out, err := h.Run(t.Context(), mimic.NewCall("invoice"))
				require.NoError(t, err)

				assert.Equal(t, "module", out)
			},
		},
	}
}
