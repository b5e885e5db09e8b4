package scenedi

import (
	"fmt"
	"reflect"
)

// NotFoundError represents a failed eager lookup: no scope in the resolution
// chain holds an instance for the requested service type.
type NotFoundError struct {
	Type reflect.Type
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no service registered for type: %s", e.Type)
}

// DuplicateRegistrationError represents a second registration for a service
// type already present in the same scope. The first registration wins.
type DuplicateRegistrationError struct {
	Type  reflect.Type
	Scope string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("duplicate registration for type %s in scope %s", e.Type, e.Scope)
}

// DuplicateScopeError represents a second claim on the global identity or on
// a scene key that is already bound. The first claim wins.
type DuplicateScopeError struct {
	Identity string
	Holder   string
}

func (e *DuplicateScopeError) Error() string {
	return fmt.Sprintf("scope identity %q already held by scope %s", e.Identity, e.Holder)
}

// NilServiceError represents an attempt to register a nil service instance.
type NilServiceError struct {
	Type reflect.Type
}

func (e *NilServiceError) Error() string {
	return fmt.Sprintf("nil service provided for type: %s", e.Type)
}

// TypeMismatchError represents a registration whose instance does not satisfy
// the declared service type.
type TypeMismatchError struct {
	Expected reflect.Type
	Got      reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Got)
}

// CapabilityError represents a lifecycle registration whose instance does not
// implement the callback interface required by the requested phase.
type CapabilityError struct {
	Phase    string
	Instance reflect.Type
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("instance of type %s does not implement the %s capability", e.Instance, e.Phase)
}

// NoSetterError represents a tagged member that cannot be written to, such as
// an unexported struct field.
type NoSetterError struct {
	Member string
	Type   reflect.Type
}

func (e *NoSetterError) Error() string {
	return fmt.Sprintf("tagged member %s (%s) has no write access", e.Member, e.Type)
}

// NilTargetError represents an injection request on a nil target.
type NilTargetError struct{}

func (e *NilTargetError) Error() string {
	return "injection requested on a nil target"
}

// InjectionError represents an aborted injection pass. It wraps the fault
// that caused the abort; members declared after the faulting one were left
// unattempted.
type InjectionError struct {
	Target reflect.Type
	Member string
	Err    error
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("injection of %s aborted at member %s: %v", e.Target, e.Member, e.Err)
}

func (e *InjectionError) Unwrap() error {
	return e.Err
}
