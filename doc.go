// Package scenedi is a hierarchical service registry with reflective member
// injection.
//
// Scopes form a tree: each scope owns a type-keyed single-instance registry
// plus tick and teardown dispatchers, and lookups that miss locally walk
// outward through the nearest host ancestor's scope, the scene scope, and
// finally the global scope. The injector populates struct fields tagged
// `inject:""` (or `inject:"global"` to force global resolution) from that
// chain, and objects whose services are not registered yet can subscribe for
// deferred delivery through the registration bus.
//
// A Directory indexes all scopes of one isolated instance of the system;
// most programs use Default(). Within a directory execution is cooperative
// and synchronous: ticks, teardowns, and bus callbacks all run to completion
// in registration order, against a snapshot taken before dispatch so
// callbacks may mutate the lists they were called from.
package scenedi
