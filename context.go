package mimic

import "context"

type scopeContextKey struct{}

// WithScope returns a context whose dispatches resolve from the given scope.
// Dispatchers consult this when a call does not carry an explicit scope.
func WithScope(ctx context.Context, scope Scope) context.Context {
	return context.WithValue(ctx, scopeContextKey{}, scope)
}

// ScopeFromContext returns the scope bound to ctx, if any.
func ScopeFromContext(ctx context.Context) (Scope, bool) {
	scope, ok := ctx.Value(scopeContextKey{}).(Scope)
	return scope, ok
}
