package scenedi

// Package-external collaborators: the host object model. The registry never
// owns these objects; it only walks them during scope resolution and sweeps.

// SceneKey partitions the host world. Every host object belongs to exactly
// one scene at a time.
type SceneKey string

// Host is one node of the host object hierarchy. Implementations must be
// comparable (pointer types are) so scopes can be attached to them.
type Host interface {
	// Parent returns the enclosing host object, or nil at the root.
	Parent() Host

	// Scene returns the partition key of the scene this host lives in.
	Scene() SceneKey
}

// World enumerates the live host objects of a scene. It is consulted during
// scene-scope discovery and by the injection orchestrator's sweep.
type World interface {
	// Roots returns the root-level hosts of a scene, in host order.
	Roots(scene SceneKey) []Host

	// Objects returns every live object belonging to a scene, in host order.
	// Objects need not be Hosts themselves.
	Objects(scene SceneKey) []any
}

// Bootstrapper marks a root host that configures its scene's scope on
// demand. The directory invokes ConfigureScope at most once per marker, when
// a resolution reaches a scene that has no scope bound yet. ConfigureScope
// is expected to create a scope and call ConfigureForScene on it.
type Bootstrapper interface {
	Host
	ConfigureScope()
}
