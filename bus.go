package scenedi

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Handler receives a service registration event: the registered type, the
// instance, and the scope the registration happened in.
type Handler func(serviceType reflect.Type, instance any, origin *Scope)

type subscription struct {
	owner any
	fn    Handler
}

// bus is the registration event bus. Every successful service registration
// is published here; deferred-injection subscribers use it to pick up
// services that arrive after their own creation.
//
// Subscriptions carry an owner identity: a second Subscribe for the same
// (owner, type) pair is a no-op, and DropOwner removes every outstanding
// subscription of a torn-down owner in one call.
type bus struct {
	mu   sync.Mutex
	subs map[reflect.Type][]*subscription
	log  *zap.Logger
}

func newBus(log *zap.Logger) *bus {
	return &bus{
		subs: make(map[reflect.Type][]*subscription),
		log:  log,
	}
}

// subscribe appends fn for serviceType. Duplicate registration for the same
// (owner, type) is a no-op; owner may be nil for anonymous subscribers,
// which are never deduplicated.
func (b *bus) subscribe(serviceType reflect.Type, owner any, fn Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if owner != nil {
		for _, s := range b.subs[serviceType] {
			if s.owner == owner {
				return
			}
		}
	}
	b.subs[serviceType] = append(b.subs[serviceType], &subscription{owner: owner, fn: fn})
}

// unsubscribe removes the owner's subscription for serviceType, if any.
func (b *bus) unsubscribe(serviceType reflect.Type, owner any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[serviceType]
	for i, s := range list {
		if s.owner == owner {
			b.subs[serviceType] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// dropOwner removes every subscription held by owner, across all types.
func (b *bus) dropOwner(owner any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for t, list := range b.subs {
		kept := list[:0]
		for _, s := range list {
			if s.owner != owner {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			delete(b.subs, t)
		} else {
			b.subs[t] = kept
		}
	}
}

// publish invokes every subscriber of serviceType synchronously, in
// subscription order. The subscriber list is copied before iterating, so a
// callback may subscribe or unsubscribe without affecting the running
// dispatch. A panicking callback is recovered and reported; the remaining
// callbacks still run.
func (b *bus) publish(serviceType reflect.Type, instance any, origin *Scope) {
	b.mu.Lock()
	snapshot := make([]*subscription, len(b.subs[serviceType]))
	copy(snapshot, b.subs[serviceType])
	b.mu.Unlock()

	for _, s := range snapshot {
		b.dispatch(s, serviceType, instance, origin)
	}
}

func (b *bus) dispatch(s *subscription, serviceType reflect.Type, instance any, origin *Scope) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("registration subscriber panicked",
				zap.String("serviceType", serviceType.String()),
				zap.String("scope", origin.ID()),
				zap.Any("panic", r))
		}
	}()
	s.fn(serviceType, instance, origin)
}

// reset drops every subscription.
func (b *bus) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = make(map[reflect.Type][]*subscription)
}

// subscriberCount reports the number of outstanding subscriptions for a
// type, for diagnostics.
func (b *bus) subscriberCount(serviceType reflect.Type) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[serviceType])
}

// counts returns outstanding subscription counts per type, for diagnostics.
func (b *bus) counts() map[reflect.Type]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[reflect.Type]int, len(b.subs))
	for t, list := range b.subs {
		out[t] = len(list)
	}
	return out
}
