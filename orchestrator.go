package scenedi

import (
	"sync"

	"go.uber.org/zap"
)

// Orchestrator drives the one-time injection sweep over all live objects of
// a scope's scene. The external bootstrap collaborator calls SceneConfigured
// once its scope configuration has finished; the sweep never runs before
// that signal and never runs twice unless explicitly retriggered.
type Orchestrator struct {
	dir *Directory

	mu   sync.Mutex
	done map[*Scope]bool
}

func newOrchestrator(d *Directory) *Orchestrator {
	return &Orchestrator{
		dir:  d,
		done: make(map[*Scope]bool),
	}
}

// SceneConfigured marks scope's configuration as complete and performs the
// one-time injection sweep over its scene. Repeated calls for the same scope
// are no-ops.
func (o *Orchestrator) SceneConfigured(scope *Scope) {
	if scope == nil {
		return
	}
	o.mu.Lock()
	if o.done[scope] {
		o.mu.Unlock()
		return
	}
	o.done[scope] = true
	o.mu.Unlock()

	o.sweep(scope)
}

// Reinject clears the scope's already-injected flag and forces a fresh
// sweep. Used after later runtime registrations to complete objects that
// were missing services during the first pass.
func (o *Orchestrator) Reinject(scope *Scope) {
	if scope == nil {
		return
	}
	o.mu.Lock()
	o.done[scope] = true
	o.mu.Unlock()

	o.sweep(scope)
}

// ReinjectObject runs the member injector over a single target, resolving
// against the given scope.
func (o *Orchestrator) ReinjectObject(target any, scope *Scope) error {
	return o.dir.injector.Inject(target, scope)
}

// sweep injects every live object of the scope's scene. Hosts resolve
// against their own nearest scope; plain objects resolve against the swept
// scope. Per-object failures are reported and do not stop the sweep.
func (o *Orchestrator) sweep(scope *Scope) {
	o.dir.mu.RLock()
	world := o.dir.world
	o.dir.mu.RUnlock()
	if world == nil {
		o.dir.log.Warn("injection sweep skipped, no world attached",
			zap.String("scope", scope.id))
		return
	}

	scene := scope.SceneKey()
	objects := world.Objects(scene)
	for _, obj := range objects {
		target := scope
		if h, ok := obj.(Host); ok {
			target = o.dir.ScopeFor(h)
		}
		if err := o.dir.injector.Inject(obj, target); err != nil {
			o.dir.log.Warn("sweep injection failed",
				zap.String("scope", scope.id),
				zap.String("target", fmtTarget(obj)),
				zap.Error(err))
		}
	}
	o.dir.log.Debug("injection sweep complete",
		zap.String("scope", scope.id),
		zap.String("scene", string(scene)),
		zap.Int("objects", len(objects)))
}

// Swept reports whether the scope's one-time sweep has already run.
func (o *Orchestrator) Swept(scope *Scope) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.done[scope]
}

func (o *Orchestrator) forget(scope *Scope) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.done, scope)
}

func (o *Orchestrator) reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.done = make(map[*Scope]bool)
}
