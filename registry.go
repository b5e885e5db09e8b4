package scenedi

import (
	"reflect"
	"sync"
)

// registry is the type-keyed single-instance store owned by every scope.
// Entries are insertion-only: the first registration for a type wins and
// nothing is ever removed before the scope is torn down.
type registry struct {
	mu      sync.RWMutex
	entries map[reflect.Type]any
}

func newRegistry() *registry {
	return &registry{
		entries: make(map[reflect.Type]any, 8),
	}
}

// insert stores instance under serviceType if absent. A duplicate leaves the
// existing instance in place and returns a DuplicateRegistrationError for the
// caller to report; the registry itself never overwrites.
func (r *registry) insert(serviceType reflect.Type, instance any, scopeID string) error {
	if instance == nil {
		return &NilServiceError{Type: serviceType}
	}
	if v := reflect.ValueOf(instance); v.Kind() == reflect.Ptr && v.IsNil() {
		return &NilServiceError{Type: serviceType}
	}
	if got := reflect.TypeOf(instance); !got.AssignableTo(serviceType) {
		return &TypeMismatchError{Expected: serviceType, Got: got}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[serviceType]; exists {
		return &DuplicateRegistrationError{Type: serviceType, Scope: scopeID}
	}
	r.entries[serviceType] = instance
	return nil
}

// lookup returns the stored instance for serviceType, if any.
func (r *registry) lookup(serviceType reflect.Type) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[serviceType]
	return v, ok
}

// keys returns the registered service types, for diagnostics.
func (r *registry) keys() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]reflect.Type, 0, len(r.entries))
	for t := range r.entries {
		out = append(out, t)
	}
	return out
}
