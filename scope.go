package scenedi

import (
	"reflect"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// scopeKind is the identity a scope holds inside its directory.
type scopeKind int

const (
	kindAnonymous scopeKind = iota
	kindScene
	kindGlobal
)

func (k scopeKind) String() string {
	switch k {
	case kindScene:
		return "scene"
	case kindGlobal:
		return "global"
	default:
		return "anonymous"
	}
}

// Scope is one resolution context: a service registry plus the two lifecycle
// dispatchers, linked into the directory's scope tree. Lookups that miss
// locally walk outward: nearest host ancestor owning a scope, then the scene
// scope, then the global scope.
type Scope struct {
	id       string
	dir      *Directory
	host     Host
	registry *registry

	ticks    *tickDispatcher
	teardown *teardownDispatcher

	mu       sync.Mutex
	kind     scopeKind
	torndown bool
}

func newScope(dir *Directory, host Host) *Scope {
	return &Scope{
		id:       uuid.NewString(),
		dir:      dir,
		host:     host,
		registry: newRegistry(),
		ticks:    newTickDispatcher(),
		teardown: newTeardownDispatcher(),
	}
}

// ID returns the scope's stable identity token, used in logs and the
// inspector.
func (s *Scope) ID() string {
	return s.id
}

// Host returns the host object this scope is attached to, or nil.
func (s *Scope) Host() Host {
	return s.host
}

// SceneKey returns the scene the scope's host lives in, or the empty key for
// detached scopes.
func (s *Scope) SceneKey() SceneKey {
	if s.host == nil {
		return ""
	}
	return s.host.Scene()
}

// IsGlobal reports whether this scope currently holds the global identity.
func (s *Scope) IsGlobal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind == kindGlobal
}

func (s *Scope) kindOf() scopeKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind
}

// ── Registration ──────────────────────────────────────────────────────────

// RegisterType stores instance under serviceType in this scope's registry
// and publishes the registration on the directory's bus. An instance that
// does not satisfy serviceType is rejected with a TypeMismatchError. A
// duplicate registration keeps the first instance; the conflict is reported
// and returned, but callers are free to ignore it (first writer wins,
// non-fatal).
func (s *Scope) RegisterType(serviceType reflect.Type, instance any) error {
	if err := s.registry.insert(serviceType, instance, s.id); err != nil {
		s.dir.log.Warn("service registration rejected",
			zap.String("scope", s.id),
			zap.String("serviceType", serviceType.String()),
			zap.Error(err))
		return err
	}
	s.dir.bus.publish(serviceType, instance, s)
	return nil
}

// registerTickingType registers with the registry and the tick dispatcher
// for each requested phase. The capability for every phase is verified
// before anything is stored, so either both registrations happen or neither
// does.
func (s *Scope) registerTickingType(serviceType reflect.Type, instance any, phases ...TickPhase) error {
	for _, p := range phases {
		switch p {
		case PrePhysics:
			if _, ok := instance.(PrePhysicsTicker); !ok {
				return &CapabilityError{Phase: p.String(), Instance: reflect.TypeOf(instance)}
			}
		case Physics:
			if _, ok := instance.(PhysicsTicker); !ok {
				return &CapabilityError{Phase: p.String(), Instance: reflect.TypeOf(instance)}
			}
		case PostPhysics:
			if _, ok := instance.(PostPhysicsTicker); !ok {
				return &CapabilityError{Phase: p.String(), Instance: reflect.TypeOf(instance)}
			}
		}
	}
	if err := s.RegisterType(serviceType, instance); err != nil {
		return err
	}
	for _, p := range phases {
		if err := s.ticks.add(p, instance); err != nil {
			return err
		}
	}
	return nil
}

// registerDisposableType registers with the registry and the teardown
// dispatcher. Capability is verified first; either both registrations happen
// or neither does.
func (s *Scope) registerDisposableType(serviceType reflect.Type, instance any) error {
	if _, ok := instance.(Disposer); !ok {
		return &CapabilityError{Phase: "teardown", Instance: reflect.TypeOf(instance)}
	}
	if err := s.RegisterType(serviceType, instance); err != nil {
		return err
	}
	return s.teardown.add(instance)
}

// AddTicking subscribes instance to the given tick phases without touching
// the registry, for objects that tick but are not services. Capability is
// verified per phase; registering the same instance twice in one phase is a
// no-op.
func (s *Scope) AddTicking(instance any, phases ...TickPhase) error {
	for _, p := range phases {
		if err := s.ticks.add(p, instance); err != nil {
			return err
		}
	}
	return nil
}

// AddDisposable subscribes instance to scope teardown without touching the
// registry.
func (s *Scope) AddDisposable(instance any) error {
	return s.teardown.add(instance)
}

// ── Resolution ────────────────────────────────────────────────────────────

// Resolve returns the instance for serviceType from the first scope in the
// resolution chain that holds one. Fails with NotFoundError when the chain
// is exhausted.
func (s *Scope) Resolve(serviceType reflect.Type) (any, error) {
	if v, ok := s.TryResolve(serviceType); ok {
		return v, nil
	}
	return nil, &NotFoundError{Type: serviceType}
}

// TryResolve is the non-failing variant of Resolve.
func (s *Scope) TryResolve(serviceType reflect.Type) (any, bool) {
	if v, ok := s.registry.lookup(serviceType); ok {
		return v, true
	}
	if p := s.parentScope(); p != nil {
		return p.TryResolve(serviceType)
	}
	return nil, false
}

// parentScope computes the next scope in the resolution chain. The global
// scope is terminal. Otherwise the host hierarchy is walked upward for the
// nearest ancestor owning a scope; failing that, resolution falls to the
// scene scope, which itself falls to the global scope.
func (s *Scope) parentScope() *Scope {
	if s.kindOf() == kindGlobal {
		return nil
	}
	if s.host != nil {
		for h := s.host.Parent(); h != nil; h = h.Parent() {
			if p := s.dir.ScopeOf(h); p != nil && p != s {
				return p
			}
		}
		if p := s.dir.ScopeForScene(s.host.Scene()); p != s {
			return p
		}
		// This scope is its own scene scope; the chain continues at global.
		return s.dir.ensureGlobal()
	}
	if g := s.dir.ensureGlobal(); g != s {
		return g
	}
	return nil
}

// ── Identity configuration ────────────────────────────────────────────────

// ConfigureAsGlobal claims the global identity for this scope. A second
// claim while another scope holds it is reported and ignored: the first
// claim wins and the conflict never escalates.
func (s *Scope) ConfigureAsGlobal() {
	if err := s.dir.claimGlobal(s); err != nil {
		s.dir.log.Warn("global scope configuration rejected",
			zap.String("scope", s.id),
			zap.Error(err))
		return
	}
	s.mu.Lock()
	s.kind = kindGlobal
	s.mu.Unlock()
}

// ConfigureForScene binds this scope to its host's scene key. A second
// binding for an already-bound scene is reported and ignored; the first
// binding wins.
func (s *Scope) ConfigureForScene() {
	if err := s.dir.claimScene(s); err != nil {
		s.dir.log.Warn("scene scope configuration rejected",
			zap.String("scope", s.id),
			zap.String("scene", string(s.SceneKey())),
			zap.Error(err))
		return
	}
	s.mu.Lock()
	s.kind = kindScene
	s.mu.Unlock()
}

// ── Lifecycle ─────────────────────────────────────────────────────────────

// Tick drives one phase of this scope's tick dispatcher with the
// host-supplied elapsed time.
func (s *Scope) Tick(phase TickPhase, elapsed float64) {
	s.ticks.tick(phase, elapsed)
}

// Teardown fires the teardown dispatcher once, in registration order, then
// releases this scope's directory entries. Subsequent calls are no-ops.
func (s *Scope) Teardown() {
	s.mu.Lock()
	if s.torndown {
		s.mu.Unlock()
		return
	}
	s.torndown = true
	s.mu.Unlock()

	s.teardown.invoke()
	s.dir.release(s)
}

// ServiceTypes returns the types registered locally in this scope, for
// diagnostics.
func (s *Scope) ServiceTypes() []reflect.Type {
	return s.registry.keys()
}

// ── Generic surface ───────────────────────────────────────────────────────

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Register stores instance under the interface type T in scope s.
func Register[T any](s *Scope, instance T) error {
	return s.RegisterType(typeOf[T](), instance)
}

// RegisterTicking stores instance under T and subscribes it to the given
// tick phases. Either both registrations succeed or the call fails whole.
func RegisterTicking[T any](s *Scope, instance T, phases ...TickPhase) error {
	return s.registerTickingType(typeOf[T](), instance, phases...)
}

// RegisterDisposable stores instance under T and subscribes it to scope
// teardown. Either both registrations succeed or the call fails whole.
func RegisterDisposable[T any](s *Scope, instance T) error {
	return s.registerDisposableType(typeOf[T](), instance)
}

// Get resolves T through the scope chain, failing with NotFoundError on a
// full miss.
func Get[T any](s *Scope) (T, error) {
	var zero T
	v, err := s.Resolve(typeOf[T]())
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// TryGet resolves T through the scope chain without failing.
func TryGet[T any](s *Scope) (T, bool) {
	var zero T
	v, ok := s.TryResolve(typeOf[T]())
	if !ok {
		return zero, false
	}
	return v.(T), true
}
