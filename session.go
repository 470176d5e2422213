package mimic

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// regKey identifies one registration chain.
type regKey struct {
	scope   Scope
	command string
}

// Session owns the mocking state of a single test context: the substitute
// registrations, the invocation recorder, and the verification engine.
//
// A session attaches to a dispatcher through its interception hook and
// detaches on Close, leaving the dispatcher's command table exactly as it
// found it. Parallel test contexts must use independent session and
// dispatcher pairs; sequential contexts may reuse a dispatcher across
// sessions.
type Session struct {
	t          TestingT
	dispatcher Dispatcher
	now        func() time.Time

	mu      sync.RWMutex
	closed  bool
	restore func()
	seq     uint64
	chains  map[regKey][]*Registration
	regs    []*Registration // registration order, for verification
	log     []*Invocation
}

// New attaches a session to the dispatcher. Only one session can be attached
// at a time; attaching to an already-intercepted dispatcher fails with
// ErrIntercepted until the earlier session is closed.
//
// When t supports Cleanup (as *testing.T does), the session closes itself
// when the test ends, however it ends.
func New(t TestingT, dispatcher Dispatcher, opts ...Option) (*Session, error) {
	cfg := DefaultSessionConfig()
	for _, o := range opts {
		o(&cfg)
	}

	s := &Session{
		t:          t,
		dispatcher: dispatcher,
		now:        cfg.Now,
		chains:     make(map[regKey][]*Registration),
	}

	restore, err := dispatcher.Intercept(s.hook)
	if err != nil {
		return nil, fmt.Errorf("cannot attach session: %w", err)
	}

	s.restore = restore

	if c, ok := t.(cleanupRegistrar); ok {
		c.Cleanup(func() { _ = s.Close() })
	}

	return s, nil
}

// Dispatcher returns the dispatcher the session is attached to.
func (s *Session) Dispatcher() Dispatcher {
	return s.dispatcher
}

// Mock installs a substitute for command. The substitute intercepts calls
// made from the chosen scope (the script scope by default) and shadows
// earlier registrations for the same scope and command: dispatch tries the
// newest registration first and falls through, oldest last, to the original
// handler.
//
// Mock fails with *UnknownCommandError when the command does not resolve from
// the target scope, so a typo cannot silently install a substitute nothing
// will ever call. A nil body substitutes a no-op returning (nil, nil).
func (s *Session) Mock(command string, body Handler, opts ...MockOption) error {
	var cfg MockConfig
	for _, o := range opts {
		o(&cfg)
	}

	scope, err := s.mockScope(cfg)
	if err != nil {
		return err
	}

	if _, ok := s.dispatcher.Lookup(scope, command); !ok {
		return &UnknownCommandError{Command: command, Scope: scope}
	}

	if body == nil {
		body = func(context.Context, Args) (any, error) { return nil, nil }
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	reg := &Registration{
		Command:    command,
		Scope:      scope,
		Verifiable: cfg.Verifiable,
		Seq:        s.nextSeqLocked(),
		body:       body,
		filter:     cfg.Filter,
	}

	key := regKey{scope: scope, command: command}
	s.chains[key] = append(s.chains[key], reg)
	s.regs = append(s.regs, reg)

	return nil
}

// Unregister drops every registration made in scope, so calls from it reach
// the original handlers again. Recorded invocations are kept; only Close
// discards history.
func (s *Session) Unregister(scope Scope) {
	if scope == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	for key := range s.chains {
		if key.scope == scope {
			delete(s.chains, key)
		}
	}

	kept := s.regs[:0]

	for _, reg := range s.regs {
		if reg.Scope != scope {
			kept = append(kept, reg)
		}
	}

	s.regs = kept
}

// Close detaches the session from the dispatcher and discards registrations
// and recorded history. It is idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	s.chains = nil
	s.regs = nil
	s.log = nil

	if s.restore != nil {
		s.restore()
		s.restore = nil
	}

	return nil
}

// InModuleScope runs fn with ctx bound to the named module's scope, so
// dispatches made inside fn resolve, intercept, and record as if made by the
// module's own handlers.
func (s *Session) InModuleScope(ctx context.Context, module string, fn func(ctx context.Context) error) error {
	scope, ok := s.dispatcher.Module(module)
	if !ok {
		return &UnknownModuleError{Module: module}
	}

	return fn(WithScope(ctx, scope))
}

// Calls returns the recorded invocations of command in dispatch order,
// narrowed by any query options. The slice is a snapshot; the records it
// holds are never mutated.
//
// Calls returns nil after Close or when FromModule names an undefined module.
func (s *Session) Calls(command string, opts ...CallOption) []*Invocation {
	cfg := DefaultCallConfig()
	for _, o := range opts {
		o(&cfg)
	}

	scope, err := s.queryScope(cfg)
	if err != nil {
		return nil
	}

	cfg.Scope = scope

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil
	}

	var out []*Invocation

	for _, inv := range s.log {
		if inv.matches(command, cfg) {
			out = append(out, inv)
		}
	}

	return out
}

// History returns every recorded invocation in dispatch order.
func (s *Session) History() []*Invocation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Invocation, len(s.log))
	copy(out, s.log)

	return out
}

// hook is installed into the dispatcher by New. It selects the substitute for
// the call (newest matching registration first), records the invocation, and
// only then executes the chosen body or falls through to next. The session
// lock is never held while a body runs, so bodies may dispatch further calls.
func (s *Session) hook(ctx context.Context, scope Scope, call Call, next Handler) (any, error) {
	s.mu.Lock()

	if s.closed {
		// Close raced with an in-flight dispatch: let the call through untouched.
		s.mu.Unlock()
		return runOriginal(ctx, scope, call, next)
	}

	reg := s.selectLocked(scope, call)

	inv := &Invocation{
		Command:      call.Command,
		Scope:        scope,
		Args:         call.Args.Clone(),
		Seq:          s.nextSeqLocked(),
		At:           s.now(),
		Registration: reg,
	}
	s.log = append(s.log, inv)

	if reg != nil {
		reg.invoked = true
	}

	s.mu.Unlock()

	if reg != nil {
		return reg.body(WithScope(ctx, reg.Scope), call.Args)
	}

	return runOriginal(ctx, scope, call, next)
}

// selectLocked returns the newest registration for (scope, command) whose
// filter accepts the call's arguments, or nil when none applies.
func (s *Session) selectLocked(scope Scope, call Call) *Registration {
	chain := s.chains[regKey{scope: scope, command: call.Command}]

	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].matches(call.Args) {
			return chain[i]
		}
	}

	return nil
}

// nextSeqLocked hands out the next sequence number. Registrations and
// invocations draw from the same counter, so a record always carries a larger
// number than the registration that served it.
func (s *Session) nextSeqLocked() uint64 {
	s.seq++
	return s.seq
}

// mockScope resolves the target scope of a registration. The script scope is
// the default; InScope wins over InModule when both are given.
func (s *Session) mockScope(cfg MockConfig) (Scope, error) {
	if cfg.Scope != nil {
		return cfg.Scope, nil
	}

	if cfg.Module != "" {
		scope, ok := s.dispatcher.Module(cfg.Module)
		if !ok {
			return nil, &UnknownModuleError{Module: cfg.Module}
		}

		return scope, nil
	}

	return s.dispatcher.Root(), nil
}

// queryScope resolves the scope restriction of a call query. A nil result
// means the query spans every scope.
func (s *Session) queryScope(cfg CallConfig) (Scope, error) {
	if cfg.Scope != nil {
		return cfg.Scope, nil
	}

	if cfg.Module != "" {
		scope, ok := s.dispatcher.Module(cfg.Module)
		if !ok {
			return nil, &UnknownModuleError{Module: cfg.Module}
		}

		return scope, nil
	}

	return nil, nil
}

func runOriginal(ctx context.Context, scope Scope, call Call, next Handler) (any, error) {
	if next == nil {
		return nil, &UnknownCommandError{Command: call.Command, Scope: scope}
	}

	return next(ctx, call.Args)
}
