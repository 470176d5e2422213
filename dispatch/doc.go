// Package dispatch provides an in-memory implementation of the
// mimic.Dispatcher interface: a scope-aware command table for applications
// that resolve command names dynamically at call time.
//
// It is the reference host for mimic sessions and the substrate the contract
// suite in mimictest is verified against. Commands live in the script scope
// or in named module scopes; resolution walks from the call-site scope
// outward to the script scope.
//
// Usage:
//
//	env := dispatch.New()
//	_ = env.Register(env.Root(), "greet", func(ctx context.Context, args mimic.Args) (any, error) {
//		return "hello", nil
//	})
//	out, _ := env.Run(ctx, mimic.NewCall("greet"))
//	_ = out
package dispatch
