package scenedi

import (
	"reflect"
	"sync"
)

// Injector populates tagged members of arbitrary targets from the scope
// chain. One injector serves a whole directory; its error strategy is
// process-wide for that directory and swappable at any time.
type Injector struct {
	dir       *Directory
	describer Describer

	mu       sync.RWMutex
	strategy Strategy
}

func newInjector(d *Directory) *Injector {
	return &Injector{
		dir:       d,
		describer: newTagDescriber(),
	}
}

// SetStrategy swaps the active error strategy.
func (in *Injector) SetStrategy(s Strategy) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.strategy = s
}

// Strategy returns the active error strategy. Until a strategy is set
// explicitly, faults are warned through the directory's logger.
func (in *Injector) Strategy() Strategy {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if in.strategy == nil {
		return &WarnStrategy{Log: in.dir.log}
	}
	return in.strategy
}

// Inject resolves every tagged member of target through scope. A nil scope
// is replaced by the scope the directory computes for the target. Members
// already holding a value are left untouched, so injection is idempotent and
// manual pre-injection survives. Faults are routed through the active
// strategy; a strategy that aborts leaves the remaining members unattempted
// and the fault is returned. A nil target always fails fast, regardless of
// strategy.
func (in *Injector) Inject(target any, scope *Scope) error {
	if target == nil {
		return &NilTargetError{}
	}
	v := reflect.ValueOf(target)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return &NilTargetError{}
		}
		v = v.Elem()
	}

	return in.injectMembers(target, v, scope)
}

// injectMembers is the member loop shared by Inject and the sweep.
func (in *Injector) injectMembers(target any, v reflect.Value, scope *Scope) error {
	if scope == nil {
		scope = in.dir.ScopeFor(target)
	}

	for _, m := range in.describer.Describe(reflect.TypeOf(target)) {
		resolving := scope
		if m.Global {
			resolving = in.dir.ensureGlobal()
		}

		field := v.FieldByIndex(m.Index)
		if !field.IsZero() {
			continue
		}

		if !m.CanSet || !field.CanSet() {
			if err := in.fault(Fault{
				Target: target,
				Member: m.Name,
				Type:   m.Type,
				Scope:  resolving,
				Err:    &NoSetterError{Member: m.Name, Type: m.Type},
			}); err != nil {
				return err
			}
			continue
		}

		value, ok := resolving.TryResolve(m.Type)
		if !ok {
			if err := in.fault(Fault{
				Target: target,
				Member: m.Name,
				Type:   m.Type,
				Scope:  resolving,
				Err:    &NotFoundError{Type: m.Type},
			}); err != nil {
				return err
			}
			continue
		}

		field.Set(reflect.ValueOf(value))
	}
	return nil
}

func (in *Injector) fault(f Fault) error {
	return in.Strategy().OnInjectionFault(f)
}

// deliverDeferred fills the still-empty members of target declared with
// serviceType whose resolving scope is the publishing scope. Members of the
// same type may mix plain and forced-global declarations, so the resolving
// scope is derived per member here, not at subscription time. The returned
// count is the number of members of that type still waiting on another
// scope's registration.
func (in *Injector) deliverDeferred(target any, serviceType reflect.Type, scope, origin *Scope) int {
	v := reflect.ValueOf(target)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return 0
		}
		v = v.Elem()
	}

	remaining := 0
	for _, m := range in.describer.Describe(reflect.TypeOf(target)) {
		if m.Type != serviceType {
			continue
		}
		field := v.FieldByIndex(m.Index)
		if !field.IsZero() {
			continue
		}
		if !m.CanSet || !field.CanSet() {
			continue
		}

		want := scope
		if m.Global {
			want = in.dir.ensureGlobal()
		}
		if origin != want {
			remaining++
			continue
		}
		value, ok := want.TryResolve(m.Type)
		if !ok {
			remaining++
			continue
		}
		field.Set(reflect.ValueOf(value))
	}
	return remaining
}

// missingMembers returns the tagged members of target that neither hold a
// value nor resolve from their scope right now. Deferred injection
// subscribes for exactly these.
func (in *Injector) missingMembers(target any, scope *Scope) []Member {
	v := reflect.ValueOf(target)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if scope == nil {
		scope = in.dir.ScopeFor(target)
	}

	var out []Member
	for _, m := range in.describer.Describe(reflect.TypeOf(target)) {
		field := v.FieldByIndex(m.Index)
		if !field.IsZero() {
			continue
		}
		if !m.CanSet || !field.CanSet() {
			continue
		}
		resolving := scope
		if m.Global {
			resolving = in.dir.ensureGlobal()
		}
		if _, ok := resolving.TryResolve(m.Type); ok {
			continue
		}
		out = append(out, m)
	}
	return out
}

// ── Default-directory surface ─────────────────────────────────────────────

// Inject populates target's tagged members through the default directory.
func Inject(target any, scope *Scope) error {
	return Default().Injector().Inject(target, scope)
}

// SetErrorStrategy swaps the default directory's injection error strategy.
func SetErrorStrategy(s Strategy) {
	Default().Injector().SetStrategy(s)
}
