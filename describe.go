package scenedi

import (
	"reflect"
	"sync"
)

// InjectTag is the struct tag read by the default describer. A bare tag
// resolves through the target's scope chain; the value "global" forces
// resolution against the global scope.
const InjectTag = "inject"

const tagGlobal = "global"

// Member describes one injectable member of a target type.
type Member struct {
	// Name is the member's field name, qualified through embedded structs.
	Name string

	// Type is the declared service type of the member.
	Type reflect.Type

	// Index locates the field for reflect.Value.FieldByIndex.
	Index []int

	// Global forces resolution against the global scope, bypassing the
	// target's own chain.
	Global bool

	// CanSet reports whether the member has write access. Unexported fields
	// do not; they are reported through the error strategy instead of being
	// resolved.
	CanSet bool
}

// Describer is the introspection capability the injector runs on. The
// default implementation reads struct tags through reflection; generated
// code or a manually maintained table per type can stand in for it.
type Describer interface {
	// Describe returns the injectable members of t, in declaration order,
	// walking the full embedded-struct chain. t may be a pointer type.
	Describe(t reflect.Type) []Member
}

// tagDescriber is the reflection-backed default Describer, with a per-type
// cache.
type tagDescriber struct {
	cache sync.Map // reflect.Type → []Member
}

func newTagDescriber() *tagDescriber {
	return &tagDescriber{}
}

func (td *tagDescriber) Describe(t reflect.Type) []Member {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	if cached, ok := td.cache.Load(t); ok {
		return cached.([]Member)
	}
	members := collectMembers(t, "", nil)
	td.cache.Store(t, members)
	return members
}

// collectMembers walks t's fields in declaration order, descending into
// embedded value structs so inherited members are picked up. Embedded
// pointer structs are not descended into: a nil intermediate would make the
// member unreachable.
func collectMembers(t reflect.Type, prefix string, index []int) []Member {
	var out []Member
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fieldIndex := append(append([]int(nil), index...), i)

		tag, tagged := f.Tag.Lookup(InjectTag)
		if tagged {
			out = append(out, Member{
				Name:   prefix + f.Name,
				Type:   f.Type,
				Index:  fieldIndex,
				Global: tag == tagGlobal,
				CanSet: f.PkgPath == "",
			})
			continue
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			out = append(out, collectMembers(f.Type, prefix+f.Name+".", fieldIndex)...)
		}
	}
	return out
}
