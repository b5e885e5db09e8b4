package scenedi

import "reflect"

// Deferred ("runtime") injection: a freshly created object whose tagged
// members cannot all be resolved yet subscribes for the missing service
// types and is completed later, when a matching registration is published.

// BindDeferred scans target's tagged members and subscribes for every
// service type with a member that is currently unresolvable from its scope.
// One subscription covers all members of a type; a delivery fills the
// still-empty ones whose resolving scope matches the publishing scope
// (plain members resolve against the target's scope, forced-global ones
// against the global scope) and the subscription is removed once no member
// of that type is left waiting. Call ReleaseDeferred when the target is
// torn down.
func (in *Injector) BindDeferred(target any, scope *Scope) {
	if target == nil {
		return
	}
	if scope == nil {
		scope = in.dir.ScopeFor(target)
	}

	for _, m := range in.missingMembers(target, scope) {
		in.dir.bus.subscribe(m.Type, target, func(serviceType reflect.Type, _ any, origin *Scope) {
			if in.deliverDeferred(target, serviceType, scope, origin) == 0 {
				in.dir.bus.unsubscribe(serviceType, target)
			}
		})
	}
}

// ReleaseDeferred removes every outstanding deferred-injection subscription
// held by target.
func (in *Injector) ReleaseDeferred(target any) {
	in.dir.bus.dropOwner(target)
}

// PendingSubscriptions reports the number of outstanding subscriptions for a
// service type, for diagnostics and tests.
func (in *Injector) PendingSubscriptions(serviceType reflect.Type) int {
	return in.dir.bus.subscriberCount(serviceType)
}

// ── Default-directory surface ─────────────────────────────────────────────

// BindDeferred subscribes target for its missing services on the default
// directory.
func BindDeferred(target any, scope *Scope) {
	Default().Injector().BindDeferred(target, scope)
}

// ReleaseDeferred drops target's outstanding subscriptions on the default
// directory.
func ReleaseDeferred(target any) {
	Default().Injector().ReleaseDeferred(target)
}
