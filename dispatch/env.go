package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ruffel/mimic"
)

var _ mimic.Dispatcher = (*Env)(nil)

// binding is one command-table entry: the handler plus the scope its own
// dispatches resolve from.
type binding struct {
	handler mimic.Handler
	owner   *scope
}

// Env is an in-memory, scope-aware command table. Thread-safe; the zero value
// is not usable, construct with New.
type Env struct {
	mu       sync.RWMutex
	root     *scope
	modules  map[string]*scope
	handlers map[*scope]map[string]binding
	hook     mimic.Hook
}

// New creates an environment with an empty script scope and no modules.
func New() *Env {
	root := &scope{name: "script"}

	return &Env{
		root:     root,
		modules:  make(map[string]*scope),
		handlers: map[*scope]map[string]binding{root: {}},
	}
}

// Root returns the script-level scope.
func (e *Env) Root() mimic.Scope {
	return e.root
}

// DefineModule creates the named module scope as a child of the script scope,
// or returns the existing one. Module handlers registered in it shadow script
// commands of the same name for calls made from inside the module.
func (e *Env) DefineModule(name string) (mimic.Scope, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("module name cannot be empty")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if sc, ok := e.modules[name]; ok {
		return sc, nil
	}

	sc := &scope{name: "module:" + name, parent: e.root}
	e.modules[name] = sc
	e.handlers[sc] = make(map[string]binding)

	return sc, nil
}

// Module returns the scope of the named module, if defined.
func (e *Env) Module(name string) (mimic.Scope, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	sc, ok := e.modules[name]
	if !ok {
		return nil, false
	}

	return sc, true
}

// Register defines (or redefines) a command in the given scope. The scope
// must belong to this environment.
func (e *Env) Register(sc mimic.Scope, name string, handler mimic.Handler) error {
	target, ok := sc.(*scope)
	if !ok {
		return errors.New("scope does not belong to this environment")
	}

	if strings.TrimSpace(name) == "" {
		return errors.New("command name cannot be empty")
	}

	if handler == nil {
		return errors.New("command handler cannot be nil")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	table, ok := e.handlers[target]
	if !ok {
		return errors.New("scope does not belong to this environment")
	}

	table[name] = binding{handler: handler, owner: target}

	return nil
}

// Export makes a module command callable from the script scope. The body
// keeps resolving its own dispatches from the module, which is what makes
// module-internal mocking observable from script-level calls.
func (e *Env) Export(sc mimic.Scope, name string) error {
	target, ok := sc.(*scope)
	if !ok {
		return errors.New("scope does not belong to this environment")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	table, ok := e.handlers[target]
	if !ok {
		return errors.New("scope does not belong to this environment")
	}

	b, ok := table[name]
	if !ok {
		return fmt.Errorf("cannot export %q: not defined in %s", name, target)
	}

	e.handlers[e.root][name] = b

	return nil
}

// Lookup resolves name from sc, walking outward to the script scope. The
// returned handler is bound to its defining scope, so dispatches it makes
// itself resolve from there.
func (e *Env) Lookup(sc mimic.Scope, name string) (mimic.Handler, bool) {
	cur, ok := sc.(*scope)
	if !ok || name == "" {
		return nil, false
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	for ; cur != nil; cur = cur.parent {
		if b, ok := e.handlers[cur][name]; ok {
			return bindScope(b), true
		}
	}

	return nil, false
}

// Intercept installs hook into the environment's single interception slot.
// Every subsequent Run flows through it until the returned restore function
// is called. Restore is idempotent.
func (e *Env) Intercept(hook mimic.Hook) (func(), error) {
	if hook == nil {
		return nil, errors.New("hook cannot be nil")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.hook != nil {
		return nil, fmt.Errorf("cannot intercept dispatch: %w", mimic.ErrIntercepted)
	}

	e.hook = hook

	var once sync.Once

	restore := func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()

			e.hook = nil
		})
	}

	return restore, nil
}

// Run dispatches a call. The call-site scope is taken from ctx (script scope
// when ctx carries none); the hook, when installed, sees the dispatch first
// and may consume it. Unresolvable commands fail with
// *mimic.UnknownCommandError.
func (e *Env) Run(ctx context.Context, call mimic.Call) (any, error) {
	if err := call.Validate(); err != nil {
		return nil, err
	}

	site := e.callSite(ctx)

	e.mu.RLock()
	hook := e.hook
	e.mu.RUnlock()

	next, _ := e.Lookup(site, call.Command)

	if hook != nil {
		return hook(ctx, site, call, next)
	}

	if next == nil {
		return nil, &mimic.UnknownCommandError{Command: call.Command, Scope: site}
	}

	return next(ctx, call.Args)
}

// RunString parses a shell-style command line and dispatches it.
func (e *Env) RunString(ctx context.Context, line string) (any, error) {
	call, err := mimic.ParseCall(line)
	if err != nil {
		return nil, err
	}

	return e.Run(ctx, call)
}

// callSite returns the scope the call is made from: the one carried by ctx
// when it belongs to this environment, the script scope otherwise.
func (e *Env) callSite(ctx context.Context) *scope {
	if sc, ok := mimic.ScopeFromContext(ctx); ok {
		if own, ok := sc.(*scope); ok {
			return own
		}
	}

	return e.root
}

// bindScope fixes the scope a handler runs in, so a module handler's own
// dispatches resolve against its module before the script scope.
func bindScope(b binding) mimic.Handler {
	return func(ctx context.Context, args mimic.Args) (any, error) {
		return b.handler(mimic.WithScope(ctx, b.owner), args)
	}
}
