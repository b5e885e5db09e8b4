package mock

import (
	"github.com/scenedi/scenedi"
)

// In-memory host world shared by the test suites.

// Host is a node of the fake object hierarchy.
type Host struct {
	name   string
	parent *Host
	scene  scenedi.SceneKey
}

// NewHost creates a host in scene, under parent (nil for a root).
func NewHost(name string, scene scenedi.SceneKey, parent *Host) *Host {
	return &Host{name: name, parent: parent, scene: scene}
}

func (h *Host) Name() string { return h.name }

func (h *Host) Parent() scenedi.Host {
	if h.parent == nil {
		return nil
	}
	return h.parent
}

func (h *Host) Scene() scenedi.SceneKey { return h.scene }

// World is an in-memory scenedi.World.
type World struct {
	roots   map[scenedi.SceneKey][]scenedi.Host
	objects map[scenedi.SceneKey][]any

	// ObjectCalls counts Objects enumerations, so tests can assert how many
	// sweeps ran.
	ObjectCalls int
}

func NewWorld() *World {
	return &World{
		roots:   make(map[scenedi.SceneKey][]scenedi.Host),
		objects: make(map[scenedi.SceneKey][]any),
	}
}

// AddRoot records h as a root-level host of its scene.
func (w *World) AddRoot(h scenedi.Host) {
	w.roots[h.Scene()] = append(w.roots[h.Scene()], h)
}

// AddObject records a live object in scene.
func (w *World) AddObject(scene scenedi.SceneKey, obj any) {
	w.objects[scene] = append(w.objects[scene], obj)
}

func (w *World) Roots(scene scenedi.SceneKey) []scenedi.Host {
	return w.roots[scene]
}

func (w *World) Objects(scene scenedi.SceneKey) []any {
	w.ObjectCalls++
	return w.objects[scene]
}

// Bootstrap is a root host acting as a scene-bootstrap marker. The directory
// runs Configure at most once during scene-scope discovery.
type Bootstrap struct {
	*Host
	Configure func()
	Runs      int
}

// NewBootstrap creates a bootstrap marker rooted in scene.
func NewBootstrap(name string, scene scenedi.SceneKey, configure func()) *Bootstrap {
	return &Bootstrap{Host: NewHost(name, scene, nil), Configure: configure}
}

func (b *Bootstrap) ConfigureScope() {
	b.Runs++
	if b.Configure != nil {
		b.Configure()
	}
}
