package dispatch

import (
	"context"
	"testing"

	"github.com/ruffel/mimic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constant(v any) mimic.Handler {
	return func(context.Context, mimic.Args) (any, error) {
		return v, nil
	}
}

func TestEnv_Run(t *testing.T) {
	t.Parallel()

	env := New()
	ctx := context.Background()

	require.NoError(t, env.Register(env.Root(), "greet", constant("hello")))
	require.NoError(t, env.Register(env.Root(), "echo", func(_ context.Context, args mimic.Args) (any, error) {
		return args.Get("message"), nil
	}))

	tests := []struct {
		name    string
		call    mimic.Call
		want    any
		wantErr bool
	}{
		{
			name: "known command",
			call: mimic.NewCall("greet"),
			want: "hello",
		},
		{
			name: "named argument",
			call: mimic.NewCall("echo", mimic.Named("message", "ping")),
			want: "ping",
		},
		{
			name:    "unknown command",
			call:    mimic.NewCall("absent"),
			wantErr: true,
		},
		{
			name:    "empty command",
			call:    mimic.Call{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := env.Run(ctx, tt.call)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEnv_RunUnknownCommand(t *testing.T) {
	t.Parallel()

	env := New()

	_, err := env.Run(context.Background(), mimic.NewCall("absent"))
	require.Error(t, err)

	var unknownErr *mimic.UnknownCommandError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "absent", unknownErr.Command)
	assert.Equal(t, env.Root(), unknownErr.Scope)
}

func TestEnv_Modules(t *testing.T) {
	t.Parallel()

	env := New()

	mod, err := env.DefineModule("billing")
	require.NoError(t, err)
	assert.Equal(t, "module:billing", mod.String())
	assert.Equal(t, env.Root(), mod.Parent())

	again, err := env.DefineModule("billing")
	require.NoError(t, err)
	assert.Same(t, mod, again)

	byName, ok := env.Module("billing")
	require.True(t, ok)
	assert.Same(t, mod, byName)

	_, ok = env.Module("absent")
	assert.False(t, ok)

	_, err = env.DefineModule("  ")
	require.Error(t, err)
}

func TestEnv_ScopeResolution(t *testing.T) {
	t.Parallel()

	env := New()
	ctx := context.Background()

	mod, err := env.DefineModule("billing")
	require.NoError(t, err)

	require.NoError(t, env.Register(env.Root(), "greet", constant("hello")))
	require.NoError(t, env.Register(env.Root(), "amount", constant("script")))
	require.NoError(t, env.Register(mod, "amount", constant("module")))
	require.NoError(t, env.Register(mod, "rate", constant(42)))

	t.Run("module shadows script", func(t *testing.T) {
		t.Parallel()

		out, err := env.Run(mimic.WithScope(ctx, mod), mimic.NewCall("amount"))
		require.NoError(t, err)
		assert.Equal(t, "module", out)
	})

	t.Run("script unaffected by module definition", func(t *testing.T) {
		t.Parallel()

		out, err := env.Run(ctx, mimic.NewCall("amount"))
		require.NoError(t, err)
		assert.Equal(t, "script", out)
	})

	t.Run("module falls through to script", func(t *testing.T) {
		t.Parallel()

		out, err := env.Run(mimic.WithScope(ctx, mod), mimic.NewCall("greet"))
		require.NoError(t, err)
		assert.Equal(t, "hello", out)
	})

	t.Run("module internals hidden from script", func(t *testing.T) {
		t.Parallel()

		_, err := env.Run(ctx, mimic.NewCall("rate"))

		var unknownErr *mimic.UnknownCommandError
		require.ErrorAs(t, err, &unknownErr)
	})
}

func TestEnv_RegisterValidation(t *testing.T) {
	t.Parallel()

	env := New()
	other := New()

	tests := []struct {
		name    string
		scope   mimic.Scope
		cmd     string
		handler mimic.Handler
	}{
		{name: "nil scope", scope: nil, cmd: "greet", handler: constant(1)},
		{name: "foreign scope", scope: other.Root(), cmd: "greet", handler: constant(1)},
		{name: "empty name", scope: env.Root(), cmd: "  ", handler: constant(1)},
		{name: "nil handler", scope: env.Root(), cmd: "greet", handler: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Error(t, env.Register(tt.scope, tt.cmd, tt.handler))
		})
	}
}

func TestEnv_Export(t *testing.T) {
	t.Parallel()

	env := New()
	ctx := context.Background()

	mod, err := env.DefineModule("billing")
	require.NoError(t, err)

	require.NoError(t, env.Register(mod, "amount", constant("module")))
	require.NoError(t, env.Register(mod, "invoice", func(ctx context.Context, _ mimic.Args) (any, error) {
		return env.Run(ctx, mimic.NewCall("amount"))
	}))
	require.NoError(t, env.Export(mod, "invoice"))

	// Called from script, but the exported body still resolves inside the module.
	out, err := env.Run(ctx, mimic.NewCall("invoice"))
	require.NoError(t, err)
	assert.Equal(t, "module", out)

	require.Error(t, env.Export(mod, "absent"))
	require.Error(t, env.Export(nil, "invoice"))
}

func TestEnv_Intercept(t *testing.T) {
	t.Parallel()

	t.Run("hook consumes dispatch", func(t *testing.T) {
		t.Parallel()

		env := New()
		require.NoError(t, env.Register(env.Root(), "greet", constant("hello")))

		restore, err := env.Intercept(func(context.Context, mimic.Scope, mimic.Call, mimic.Handler) (any, error) {
			return "intercepted", nil
		})
		require.NoError(t, err)

		defer restore()

		out, err := env.Run(context.Background(), mimic.NewCall("greet"))
		require.NoError(t, err)
		assert.Equal(t, "intercepted", out)
	})

	t.Run("single slot", func(t *testing.T) {
		t.Parallel()

		env := New()

		restore, err := env.Intercept(func(ctx context.Context, _ mimic.Scope, call mimic.Call, next mimic.Handler) (any, error) {
			return next(ctx, call.Args)
		})
		require.NoError(t, err)

		defer restore()

		_, err = env.Intercept(func(context.Context, mimic.Scope, mimic.Call, mimic.Handler) (any, error) {
			return nil, nil
		})
		require.ErrorIs(t, err, mimic.ErrIntercepted)
	})

	t.Run("restore is idempotent", func(t *testing.T) {
		t.Parallel()

		env := New()

		first, err := env.Intercept(func(context.Context, mimic.Scope, mimic.Call, mimic.Handler) (any, error) {
			return nil, nil
		})
		require.NoError(t, err)

		first()

		second, err := env.Intercept(func(context.Context, mimic.Scope, mimic.Call, mimic.Handler) (any, error) {
			return "second", nil
		})
		require.NoError(t, err)

		defer second()

		// A stale restore must not evict the hook installed after it.
		first()

		require.NoError(t, env.Register(env.Root(), "greet", constant("hello")))

		out, err := env.Run(context.Background(), mimic.NewCall("greet"))
		require.NoError(t, err)
		assert.Equal(t, "second", out)
	})

	t.Run("nil hook rejected", func(t *testing.T) {
		t.Parallel()

		env := New()

		_, err := env.Intercept(nil)
		require.Error(t, err)
	})
}

func TestEnv_RunString(t *testing.T) {
	t.Parallel()

	env := New()

	require.NoError(t, env.Register(env.Root(), "echo", func(_ context.Context, args mimic.Args) (any, error) {
		return args.Get("message"), nil
	}))

	out, err := env.RunString(context.Background(), "echo -message ping")
	require.NoError(t, err)
	assert.Equal(t, "ping", out)

	_, err = env.RunString(context.Background(), "")
	require.Error(t, err)
}
