package scenedi

import (
	"reflect"
	"sync"
)

// Lifecycle capabilities. A service may implement any combination; the
// dispatchers verify the capability for the requested phase at registration
// time.

// PrePhysicsTicker receives the pre-physics tick of every frame.
type PrePhysicsTicker interface {
	PrePhysicsTick(elapsed float64)
}

// PhysicsTicker receives the fixed physics tick.
type PhysicsTicker interface {
	PhysicsTick(elapsed float64)
}

// PostPhysicsTicker receives the post-physics tick, after all PrePhysicsTick
// and PhysicsTick callbacks of the frame have run.
type PostPhysicsTicker interface {
	PostPhysicsTick(elapsed float64)
}

// Disposer is called once when the owning scope is torn down.
type Disposer interface {
	Dispose()
}

// TickPhase selects one of the three ordered tick lists of a scope.
type TickPhase int

const (
	PrePhysics TickPhase = iota
	Physics
	PostPhysics
)

func (p TickPhase) String() string {
	switch p {
	case PrePhysics:
		return "pre-physics"
	case Physics:
		return "physics"
	case PostPhysics:
		return "post-physics"
	default:
		return "unknown"
	}
}

// tickDispatcher keeps one insertion-ordered handle list per phase.
// Registering the same instance twice in the same phase is a no-op
// (identity-checked). Handles fire in registration order.
type tickDispatcher struct {
	mu     sync.Mutex
	phases [3][]any
}

func newTickDispatcher() *tickDispatcher {
	return &tickDispatcher{}
}

// add verifies the phase capability and appends the instance to the phase
// list. Returns a CapabilityError if the instance does not implement the
// phase's callback interface.
func (d *tickDispatcher) add(phase TickPhase, instance any) error {
	switch phase {
	case PrePhysics:
		if _, ok := instance.(PrePhysicsTicker); !ok {
			return &CapabilityError{Phase: phase.String(), Instance: reflect.TypeOf(instance)}
		}
	case Physics:
		if _, ok := instance.(PhysicsTicker); !ok {
			return &CapabilityError{Phase: phase.String(), Instance: reflect.TypeOf(instance)}
		}
	case PostPhysics:
		if _, ok := instance.(PostPhysicsTicker); !ok {
			return &CapabilityError{Phase: phase.String(), Instance: reflect.TypeOf(instance)}
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.phases[phase] {
		if existing == instance {
			return nil
		}
	}
	d.phases[phase] = append(d.phases[phase], instance)
	return nil
}

// tick invokes the phase's handles in registration order, passing the
// host-supplied elapsed time. The list is snapshotted first so a handle may
// register further handles without disturbing the running dispatch.
func (d *tickDispatcher) tick(phase TickPhase, elapsed float64) {
	d.mu.Lock()
	snapshot := make([]any, len(d.phases[phase]))
	copy(snapshot, d.phases[phase])
	d.mu.Unlock()

	for _, h := range snapshot {
		switch phase {
		case PrePhysics:
			h.(PrePhysicsTicker).PrePhysicsTick(elapsed)
		case Physics:
			h.(PhysicsTicker).PhysicsTick(elapsed)
		case PostPhysics:
			h.(PostPhysicsTicker).PostPhysicsTick(elapsed)
		}
	}
}

func (d *tickDispatcher) count(phase TickPhase) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.phases[phase])
}

// teardownDispatcher keeps one insertion-ordered list of Disposers. invoke is
// not idempotent; the owning scope guarantees it runs exactly once.
type teardownDispatcher struct {
	mu      sync.Mutex
	handles []Disposer
}

func newTeardownDispatcher() *teardownDispatcher {
	return &teardownDispatcher{}
}

func (d *teardownDispatcher) add(instance any) error {
	disposer, ok := instance.(Disposer)
	if !ok {
		return &CapabilityError{Phase: "teardown", Instance: reflect.TypeOf(instance)}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handles = append(d.handles, disposer)
	return nil
}

// invoke calls every handle's Dispose in registration order.
func (d *teardownDispatcher) invoke() {
	d.mu.Lock()
	snapshot := make([]Disposer, len(d.handles))
	copy(snapshot, d.handles)
	d.mu.Unlock()

	for _, h := range snapshot {
		h.Dispose()
	}
}

func (d *teardownDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handles)
}
