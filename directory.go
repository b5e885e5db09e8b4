package scenedi

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Directory is the process-wide scope index: the single global scope
// reference, the scene-key bindings, and the host attachments. It also owns
// the registration bus, the member injector, and the injection orchestrator,
// so one Directory value is a fully isolated instance of the system.
//
// Most programs use the Default directory; tests build their own with New
// or call Reset between scenarios.
type Directory struct {
	mu     sync.RWMutex
	global *Scope
	scenes map[SceneKey]*Scope
	hosts  map[Host]*Scope
	ran    map[Bootstrapper]bool
	world  World

	log      *zap.Logger
	bus      *bus
	injector *Injector
	orch     *Orchestrator
}

// Option configures a Directory under construction.
type Option func(*Directory)

// WithLogger sets the structured logger used for conflict reports, warn
// strategies, and sweep diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(d *Directory) { d.log = log }
}

// WithWorld attaches the host world used for scene-scope discovery and
// orchestrator sweeps.
func WithWorld(w World) Option {
	return func(d *Directory) { d.world = w }
}

// WithStrategy sets the initial injection error strategy.
func WithStrategy(s Strategy) Option {
	return func(d *Directory) { d.injector.SetStrategy(s) }
}

// WithDescriber swaps the member introspection capability.
func WithDescriber(desc Describer) Option {
	return func(d *Directory) { d.injector.describer = desc }
}

// New creates an isolated Directory. With no options it logs nowhere and
// warns on injection faults.
func New(opts ...Option) *Directory {
	d := &Directory{
		scenes: make(map[SceneKey]*Scope),
		hosts:  make(map[Host]*Scope),
		ran:    make(map[Bootstrapper]bool),
		log:    zap.NewNop(),
	}
	d.bus = newBus(d.log)
	d.injector = newInjector(d)
	d.orch = newOrchestrator(d)
	for _, opt := range opts {
		opt(d)
	}
	// Options may have replaced the logger after the bus captured it.
	d.bus.log = d.log
	return d
}

var (
	defaultOnce sync.Once
	defaultDir  *Directory
)

// Default returns the process-wide directory, created on first use.
func Default() *Directory {
	defaultOnce.Do(func() {
		defaultDir = New()
	})
	return defaultDir
}

// Reset clears all scope, bootstrap, subscription, and sweep state of the
// default directory. Intended for test isolation between scenario runs.
func Reset() {
	Default().Reset()
}

// Reset clears the directory's scope index, bootstrap markers, outstanding
// subscriptions, and orchestrator state. The world, logger, and strategy are
// kept.
func (d *Directory) Reset() {
	d.mu.Lock()
	d.global = nil
	d.scenes = make(map[SceneKey]*Scope)
	d.hosts = make(map[Host]*Scope)
	d.ran = make(map[Bootstrapper]bool)
	d.mu.Unlock()

	d.bus.reset()
	d.orch.reset()
}

// SetWorld attaches (or replaces) the host world.
func (d *Directory) SetWorld(w World) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.world = w
}

// Injector returns the directory's member injector.
func (d *Directory) Injector() *Injector {
	return d.injector
}

// Orchestrator returns the directory's injection orchestrator.
func (d *Directory) Orchestrator() *Orchestrator {
	return d.orch
}

// Subscribe registers fn for future registrations of serviceType anywhere
// in the directory. owner gives the subscription an identity: a second
// Subscribe with the same (owner, serviceType) is a no-op, and owner is the
// handle for Unsubscribe. A nil owner makes the subscription anonymous and
// permanent until Reset.
func (d *Directory) Subscribe(serviceType reflect.Type, owner any, fn Handler) {
	d.bus.subscribe(serviceType, owner, fn)
}

// Unsubscribe removes owner's subscription for serviceType, if present.
func (d *Directory) Unsubscribe(serviceType reflect.Type, owner any) {
	d.bus.unsubscribe(serviceType, owner)
}

// ── Scope creation and lookup ─────────────────────────────────────────────

// NewScope creates a scope attached to host (which may be nil for detached
// scopes) and records the attachment. A host already owning a scope keeps
// its first scope; the conflict is reported and the new scope stays
// detached.
func (d *Directory) NewScope(host Host) *Scope {
	s := newScope(d, host)
	if host == nil {
		return s
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if existing, ok := d.hosts[host]; ok {
		d.log.Warn("host already owns a scope, new scope left detached",
			zap.String("existing", existing.id),
			zap.String("scope", s.id))
		return s
	}
	d.hosts[host] = s
	return s
}

// ScopeOf returns the scope attached to exactly this host, or nil.
func (d *Directory) ScopeOf(host Host) *Scope {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.hosts[host]
}

// Global returns the current global scope, or nil if none has been
// configured yet.
func (d *Directory) Global() *Scope {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.global
}

// ScopeForScene locates the scope bound to a scene key. On a miss it scans
// the scene's root hosts for a bootstrap marker that has not run yet and
// triggers its one-time configuration, then re-checks the binding. If the
// scene still has no scope, resolution falls to the global scope,
// auto-created if necessary.
func (d *Directory) ScopeForScene(key SceneKey) *Scope {
	d.mu.RLock()
	s := d.scenes[key]
	world := d.world
	d.mu.RUnlock()
	if s != nil {
		return s
	}

	if world != nil {
		for _, root := range world.Roots(key) {
			b, ok := root.(Bootstrapper)
			if !ok {
				continue
			}
			d.mu.Lock()
			if d.ran[b] {
				d.mu.Unlock()
				continue
			}
			d.ran[b] = true
			d.mu.Unlock()

			// One-time configuration runs without directory locks held.
			b.ConfigureScope()

			d.mu.RLock()
			s = d.scenes[key]
			d.mu.RUnlock()
			if s != nil {
				return s
			}
		}
	}

	return d.ensureGlobal()
}

// ensureGlobal returns the global scope, creating a detached one through an
// implicit bootstrap if no explicit global configuration has happened yet.
func (d *Directory) ensureGlobal() *Scope {
	d.mu.Lock()
	if d.global != nil {
		g := d.global
		d.mu.Unlock()
		return g
	}
	g := newScope(d, nil)
	g.kind = kindGlobal
	d.global = g
	d.mu.Unlock()

	d.log.Info("global scope created by implicit bootstrap", zap.String("scope", g.id))
	return g
}

// ── Identity claims ───────────────────────────────────────────────────────

func (d *Directory) claimGlobal(s *Scope) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.global != nil && d.global != s {
		return &DuplicateScopeError{Identity: "global", Holder: d.global.id}
	}
	d.global = s
	return nil
}

func (d *Directory) claimScene(s *Scope) error {
	key := s.SceneKey()
	d.mu.Lock()
	defer d.mu.Unlock()
	if existing, ok := d.scenes[key]; ok && existing != s {
		return &DuplicateScopeError{Identity: "scene:" + string(key), Holder: existing.id}
	}
	d.scenes[key] = s
	return nil
}

// release removes every directory entry held by a torn-down scope.
func (d *Directory) release(s *Scope) {
	d.mu.Lock()
	if d.global == s {
		d.global = nil
	}
	if key := s.SceneKey(); d.scenes[key] == s {
		delete(d.scenes, key)
	}
	if s.host != nil && d.hosts[s.host] == s {
		delete(d.hosts, s.host)
	}
	d.mu.Unlock()

	d.orch.forget(s)
}

// ScopeFor computes the resolving scope for an arbitrary target: hosts get
// the nearest enclosing scope (own, ancestor, scene); anything else resolves
// against the global scope.
func (d *Directory) ScopeFor(target any) *Scope {
	if h, ok := target.(Host); ok {
		for cur := h; cur != nil; cur = cur.Parent() {
			if s := d.ScopeOf(cur); s != nil {
				return s
			}
		}
		return d.ScopeForScene(h.Scene())
	}
	return d.ensureGlobal()
}

// Scopes returns every scope currently indexed by the directory, for
// diagnostics: the global scope, scene scopes, and host-attached scopes,
// deduplicated.
func (d *Directory) Scopes() []*Scope {
	d.mu.RLock()
	defer d.mu.RUnlock()
	seen := make(map[*Scope]bool)
	var out []*Scope
	add := func(s *Scope) {
		if s != nil && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	add(d.global)
	for _, s := range d.scenes {
		add(s)
	}
	for _, s := range d.hosts {
		add(s)
	}
	return out
}
